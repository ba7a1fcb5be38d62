package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shelfhq/shelf/internal/client/models"
	"github.com/shelfhq/shelf/internal/common"
	"github.com/shelfhq/shelf/internal/dbx"
)

// SQLiteRepository implements Repository over a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a repository bound to the given database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// ReplaceAll clears the cache and writes the given set in one transaction,
// so a concurrent reader never sees a half-replaced listing.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, docs []models.Document) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM documents`); err != nil {
			return fmt.Errorf("failed to clear documents: %w", err)
		}
		for i := range docs {
			if err := upsert(ctx, tx, &docs[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// Upsert inserts or updates one record by id.
func (r *SQLiteRepository) Upsert(ctx context.Context, doc *models.Document) error {
	return upsert(ctx, r.db, doc)
}

func upsert(ctx context.Context, db dbx.DBTX, doc *models.Document) error {
	query := `INSERT INTO documents (id, filename, size_bytes, mime_type, storage_key, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET filename = excluded.filename,
				size_bytes = excluded.size_bytes,
				mime_type = excluded.mime_type,
				storage_key = excluded.storage_key,
				created_at = excluded.created_at,
				updated_at = excluded.updated_at
	`
	_, err := db.ExecContext(ctx, query,
		doc.ID, doc.Filename, doc.SizeBytes, doc.MimeType, doc.StorageKey, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	return nil
}

// GetAll lists all cached documents, newest first.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Document, error) {
	query := `SELECT id, filename, size_bytes, mime_type, storage_key, created_at, updated_at
			FROM documents ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select documents: %w", err)
	}
	defer rows.Close()

	var result []models.Document
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.Filename, &d.SizeBytes, &d.MimeType, &d.StorageKey, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns a single cached document.
func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	query := `SELECT id, filename, size_bytes, mime_type, storage_key, created_at, updated_at
			FROM documents WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var d models.Document
	if err := row.Scan(&d.ID, &d.Filename, &d.SizeBytes, &d.MimeType, &d.StorageKey, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return &d, nil
}

// DeleteByID removes one record. It expects exactly one row to be affected.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return common.ErrNotFound
	}
	return nil
}
