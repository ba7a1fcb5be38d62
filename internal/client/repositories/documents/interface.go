// Package documents persists the client's read-through cache of document
// metadata. The server is authoritative; the cache exists so listings are
// instant and survive restarts.
package documents

import (
	"context"

	"github.com/shelfhq/shelf/internal/client/models"
)

// Repository is the storage contract for cached document metadata.
type Repository interface {
	// ReplaceAll swaps the whole cache for the given set, atomically.
	ReplaceAll(ctx context.Context, docs []models.Document) error
	// Upsert inserts or updates a single record by id.
	Upsert(ctx context.Context, doc *models.Document) error
	// GetAll returns every cached record, newest first.
	GetAll(ctx context.Context) ([]models.Document, error)
	// GetByID returns one record or common.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.Document, error)
	// DeleteByID removes one record; deleting an absent id is an error.
	DeleteByID(ctx context.Context, id int64) error
}
