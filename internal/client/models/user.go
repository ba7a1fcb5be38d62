// Package models defines the client-side data types exchanged with the
// Shelf API and persisted locally.
package models

import "errors"

// User is the profile returned by the auth endpoints.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Validate performs the structural check applied when restoring a persisted
// profile: a positive numeric id and non-empty email/name. Anything else is
// treated as a corrupt session and discarded by the caller.
func (u User) Validate() error {
	if u.ID <= 0 {
		return errors.New("user id must be positive")
	}
	if u.Email == "" {
		return errors.New("user email is empty")
	}
	if u.Name == "" {
		return errors.New("user name is empty")
	}
	return nil
}

// Session couples the bearer token with the profile it belongs to. The two
// are always set and cleared together; a non-empty token implies a valid User.
type Session struct {
	Token string
	User  User
}
