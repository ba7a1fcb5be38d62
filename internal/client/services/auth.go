// Package services contains the application services for the Shelf client:
// authentication, the document directory, the subscription gate and payment
// tracking. Each service is an interface over the API client so tests can
// substitute fakes.
package services

import (
	"context"
	"fmt"

	"github.com/shelfhq/shelf/internal/client/api"
	"github.com/shelfhq/shelf/internal/client/models"
	"github.com/shelfhq/shelf/internal/client/session"
	"github.com/shelfhq/shelf/internal/logging"
)

// AuthService owns the login/register/restore/logout lifecycle.
//
// Contract:
//   - Login/Register: authenticate against the server and atomically install
//     the session (token + profile, persisted before returning).
//   - Restore: load a previously persisted session, all-or-nothing.
//   - Logout: clear in-memory and persisted state; never fails.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Register(ctx context.Context, name, email, password string) (*models.Session, error)
	Restore() (*models.Session, error)
	Logout()
	CurrentUser() *models.User
	IsAuthenticated() bool
}

type authService struct {
	client api.Client
	store  *session.Store
	log    logging.Logger
}

// NewAuthService binds the service to the API client and the session store.
func NewAuthService(client api.Client, store *session.Store, log logging.Logger) AuthService {
	return &authService{client: client, store: store, log: log}
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	sess, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	// Persisting is part of login: a reload right after must find the session.
	if err := a.store.Set(*sess); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	a.log.Info(ctx, "logged in", "user", sess.User.Email)
	return sess, nil
}

func (a *authService) Register(ctx context.Context, name, email, password string) (*models.Session, error) {
	sess, err := a.client.Register(ctx, name, email, password)
	if err != nil {
		return nil, fmt.Errorf("register error: %w", err)
	}
	if err := a.store.Set(*sess); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	a.log.Info(ctx, "registered", "user", sess.User.Email)
	return sess, nil
}

func (a *authService) Restore() (*models.Session, error) {
	return a.store.Restore()
}

func (a *authService) Logout() {
	a.store.Clear()
}

func (a *authService) CurrentUser() *models.User {
	if sess := a.store.Current(); sess != nil {
		return &sess.User
	}
	return nil
}

func (a *authService) IsAuthenticated() bool {
	return a.store.IsAuthenticated()
}
