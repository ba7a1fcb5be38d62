package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/shelfhq/shelf/internal/client/api"
	"github.com/shelfhq/shelf/internal/client/models"
	"github.com/shelfhq/shelf/internal/client/render"
	"github.com/shelfhq/shelf/internal/client/repositories/documents"
	"github.com/shelfhq/shelf/internal/common"
	"github.com/shelfhq/shelf/internal/logging"
)

// DocumentService manages the user's document directory. The server is the
// source of truth; a local cache mirrors it so listings are instant and
// survive restarts.
//
// Upload ordering is fixed: file validation first, then the subscription
// gate, and only then does anything reach the network. A rejected upload
// never produces an HTTP request.
type DocumentService interface {
	// Refresh fetches the directory from the server and replaces the cache
	// with exactly that set.
	Refresh(ctx context.Context) ([]models.Document, error)
	// Cached returns the local mirror without touching the network.
	Cached(ctx context.Context) ([]models.Document, error)
	// Get returns one cached record or common.ErrNotFound.
	Get(ctx context.Context, id int64) (*models.Document, error)
	// Upload validates content as a PDF, authorizes it against the
	// subscription, sends it, and appends the server's record to the cache.
	Upload(ctx context.Context, filename string, content []byte) (*models.Document, error)
	// Delete removes the document on the server, then drops it from the
	// cache. The cache entry survives a failed server call.
	Delete(ctx context.Context, id int64) error
	// Download returns the document's raw bytes.
	Download(ctx context.Context, id int64) ([]byte, error)
}

type documentService struct {
	client api.Client
	repo   documents.Repository
	gate   SubscriptionService
	log    logging.Logger
}

func NewDocumentService(client api.Client, repo documents.Repository, gate SubscriptionService, log logging.Logger) DocumentService {
	return &documentService{client: client, repo: repo, gate: gate, log: log}
}

func (s *documentService) Refresh(ctx context.Context) ([]models.Document, error) {
	docs, err := s.client.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("document list error: %w", err)
	}
	if err := s.repo.ReplaceAll(ctx, docs); err != nil {
		return nil, fmt.Errorf("cache update error: %w", err)
	}
	return docs, nil
}

func (s *documentService) Cached(ctx context.Context) ([]models.Document, error) {
	return s.repo.GetAll(ctx)
}

func (s *documentService) Get(ctx context.Context, id int64) (*models.Document, error) {
	return s.repo.GetByID(ctx, id)
}

// validatePDF is swappable in tests so upload flows can run without
// hand-crafting structurally valid PDF fixtures.
var validatePDF = ValidatePDF

func (s *documentService) Upload(ctx context.Context, filename string, content []byte) (*models.Document, error) {
	if err := validatePDF(filename, content); err != nil {
		return nil, err
	}
	if err := s.gate.AuthorizeUpload(ctx, int64(len(content))); err != nil {
		return nil, err
	}

	doc, err := s.client.UploadDocument(ctx, filename, content)
	if err != nil {
		return nil, fmt.Errorf("upload error: %w", err)
	}
	// Append without a full refetch; the next Refresh reconciles anyway.
	if err := s.repo.Upsert(ctx, doc); err != nil {
		s.log.Warn(ctx, "uploaded document not cached", "id", doc.ID, "error", err)
	}
	s.log.Info(ctx, "document uploaded", "id", doc.ID, "filename", doc.Filename)
	return doc, nil
}

func (s *documentService) Delete(ctx context.Context, id int64) error {
	if err := s.client.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("delete error: %w", err)
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil && !errors.Is(err, common.ErrNotFound) {
		s.log.Warn(ctx, "deleted document still cached", "id", id, "error", err)
	}
	return nil
}

func (s *documentService) Download(ctx context.Context, id int64) ([]byte, error) {
	data, err := s.client.DownloadDocument(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("download error: %w", err)
	}
	return data, nil
}

// ValidatePDF rejects content that is not a well-formed PDF before any bytes
// are spent on the wire: the extension must be .pdf, the body must carry the
// PDF signature, and the cross-reference structure must parse to at least
// one page. All violations wrap common.ErrInvalidFileType.
func ValidatePDF(filename string, content []byte) error {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return fmt.Errorf("%w: %s", common.ErrInvalidFileType, filename)
	}
	if err := render.ValidateSignature(content); err != nil {
		return fmt.Errorf("%w: %s", common.ErrInvalidFileType, filename)
	}
	pages, err := pdfapi.PageCount(bytes.NewReader(content), nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrInvalidFileType, filename, err)
	}
	if pages < 1 {
		return fmt.Errorf("%w: %s: no pages", common.ErrInvalidFileType, filename)
	}
	return nil
}
