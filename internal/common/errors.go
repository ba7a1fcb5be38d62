// Package common defines shared constants and sentinel errors used across
// the Shelf client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Transport-level errors.
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("server unavailable")

	// Auth errors (missing, invalid or expired token).
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotAuthenticated = errors.New("not authenticated")

	// Session persistence errors.
	ErrNoSession = errors.New("no session")

	// Client-side upload validation errors. These never reach the network.
	ErrInvalidFileType      = errors.New("only PDF files are supported")
	ErrSubscriptionRequired = errors.New("subscription required")
	ErrStorageLimitExceeded = errors.New("storage limit exceeded")

	// Render pipeline errors.
	ErrNotReady       = errors.New("document not ready")
	ErrPageOutOfRange = errors.New("page out of range")
	ErrSuperseded     = errors.New("superseded by a newer request")
	ErrInvalidPDF     = errors.New("not a valid PDF document")

	// Payment errors.
	ErrPaymentSettled = errors.New("payment already settled")
)
