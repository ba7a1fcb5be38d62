// Package session owns the current bearer token and user profile.
//
// The store is the single writer of session state: it is written through
// Set (login/register), Clear (logout and the 401 handler) and Restore at
// startup. Every other component only reads it. Both halves of the session
// are always set and cleared together.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/shelfhq/shelf/internal/client/models"
	"github.com/shelfhq/shelf/internal/common"
	"github.com/shelfhq/shelf/internal/filex"
)

// Store keeps the session in memory and mirrors it to two files under the
// state directory: the raw token and the profile as JSON. Writes happen
// synchronously before Set returns, so a crash right after login never
// loses the session.
type Store struct {
	mu      sync.RWMutex
	dir     string
	current *models.Session
}

// NewStore creates the state directory if needed and returns a store bound
// to it. No session is loaded; call Restore for that.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) tokenPath() string { return filepath.Join(s.dir, common.TokenFileName) }
func (s *Store) userPath() string  { return filepath.Join(s.dir, common.UserFileName) }

// Set installs a new session and persists both parts before returning.
// The profile must pass its structural check; a server response that does
// not yield a usable session is rejected without touching prior state.
func (s *Store) Set(sess models.Session) error {
	if sess.Token == "" {
		return errors.New("empty token")
	}
	if err := sess.User.Validate(); err != nil {
		return fmt.Errorf("invalid user profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	userData, err := json.Marshal(sess.User)
	if err != nil {
		return err
	}
	if err := filex.WriteFileAtomic(s.tokenPath(), []byte(sess.Token), 0o600); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	if err := filex.WriteFileAtomic(s.userPath(), userData, 0o600); err != nil {
		// Do not leave a token without a profile on disk.
		_ = os.Remove(s.tokenPath())
		return fmt.Errorf("persist user: %w", err)
	}

	s.current = &sess
	return nil
}

// Restore loads the persisted session at startup. If either file is missing,
// malformed, or the profile fails its structural check, both are discarded
// and common.ErrNoSession is returned: the store never restores partially.
func (s *Store) Restore() (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokenData, err := os.ReadFile(s.tokenPath())
	if err != nil {
		s.discardLocked()
		return nil, common.ErrNoSession
	}
	token := strings.TrimSpace(string(tokenData))
	if token == "" {
		s.discardLocked()
		return nil, common.ErrNoSession
	}

	userData, err := os.ReadFile(s.userPath())
	if err != nil {
		s.discardLocked()
		return nil, common.ErrNoSession
	}

	var user models.User
	if err := json.Unmarshal(userData, &user); err != nil {
		s.discardLocked()
		return nil, common.ErrNoSession
	}
	if err := user.Validate(); err != nil {
		s.discardLocked()
		return nil, common.ErrNoSession
	}

	s.current = &models.Session{Token: token, User: user}
	return s.current, nil
}

// Clear wipes in-memory and persisted state. Clearing an absent session is
// a no-op; Clear never fails.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discardLocked()
}

func (s *Store) discardLocked() {
	s.current = nil
	_ = os.Remove(s.tokenPath())
	_ = os.Remove(s.userPath())
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Current returns a copy of the active session, or nil when logged out.
func (s *Store) Current() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

// IsAuthenticated reports whether a session is active.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}
