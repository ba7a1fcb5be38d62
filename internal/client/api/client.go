// Package api implements the HTTP client for the Shelf backend.
//
// Every authenticated call carries the session's bearer token. A 401 from
// any call clears the session and fires a registered hook exactly once per
// expiry, so concurrent in-flight failures cannot stack redirects.
package api

import (
	"context"

	"github.com/shelfhq/shelf/internal/client/models"
)

// PaymentRequest is the payload for POST /payments/request.
type PaymentRequest struct {
	Amount       string `json:"amount"`
	PhoneNumber  string `json:"phone_number"`
	PayerMessage string `json:"payer_message"`
	PayeeNote    string `json:"payee_note"`
}

// Client defines the remote operations the Shelf services depend on.
//
// All methods honor context cancellation. Failures surface as *APIError for
// HTTP-level problems, or wrap common.ErrUnavailable when the server could
// not be reached at all.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Register(ctx context.Context, name, email, password string) (*models.Session, error)

	ListDocuments(ctx context.Context) ([]models.Document, error)
	UploadDocument(ctx context.Context, filename string, content []byte) (*models.Document, error)
	DownloadDocument(ctx context.Context, id int64) ([]byte, error)
	DeleteDocument(ctx context.Context, id int64) error

	GetSubscription(ctx context.Context) (*models.SubscriptionSnapshot, error)

	RequestPayment(ctx context.Context, req PaymentRequest) (string, error)
	PaymentStatus(ctx context.Context, referenceID string) (string, error)
}
