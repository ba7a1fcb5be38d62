package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shelfhq/shelf/internal/common"
)

// APIError is the normalized form of a non-2xx response: the HTTP status
// plus the server's message (the backend wraps errors as {"error": "..."})
// or the status text when no message was sent.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Is maps well-known statuses onto the shared sentinels so callers can use
// errors.Is without inspecting status codes.
func (e *APIError) Is(target error) bool {
	switch e.Status {
	case http.StatusUnauthorized:
		return errors.Is(target, common.ErrUnauthorized)
	case http.StatusNotFound:
		return errors.Is(target, common.ErrNotFound)
	}
	return false
}
