package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/shelfhq/shelf/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a name, email and password and creates a new account.
//
// On success the server's session is installed and persisted, so the user is
// logged in immediately. The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.auth.Register(ctx, name, email, string(password))
	if err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	fmt.Printf("Welcome, %s!\n", sess.User.Name)
	return nil
}

// Login prompts for credentials and authenticates against the server.
// The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	fmt.Printf("Welcome back, %s!\n", sess.User.Name)
	return nil
}

// Logout clears the persisted session and releases the viewer.
func (a *App) Logout(ctx context.Context) error {
	a.viewer.Close()
	a.auth.Logout()
	fmt.Println("Logged out.")
	return nil
}
