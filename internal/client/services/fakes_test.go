package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/shelfhq/shelf/internal/client/api"
	"github.com/shelfhq/shelf/internal/client/models"
	"github.com/shelfhq/shelf/internal/common"
	"github.com/shelfhq/shelf/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, slog.LevelError)
}

// fakeClient is a scriptable api.Client. Zero values mean "succeed with
// nothing"; set the fields a test cares about.
type fakeClient struct {
	mu sync.Mutex

	session *models.Session
	authErr error

	docs      []models.Document
	listErr   error
	uploaded  *models.Document
	uploadErr error
	content   map[int64][]byte
	deleteErr error

	snapshot *models.SubscriptionSnapshot
	snapErr  error

	referenceID string
	requestErr  error
	statuses    []string
	statusErr   error

	listCalls    int
	uploadCalls  int
	deleteCalls  int
	snapCalls    int
	requestCalls int
	statusCalls  int
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.Session, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	return f.session, nil
}

func (f *fakeClient) Register(ctx context.Context, name, email, password string) (*models.Session, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	return f.session, nil
}

func (f *fakeClient) ListDocuments(ctx context.Context) ([]models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.docs, nil
}

func (f *fakeClient) UploadDocument(ctx context.Context, filename string, content []byte) (*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploadCalls++
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return f.uploaded, nil
}

func (f *fakeClient) DownloadDocument(ctx context.Context, id int64) ([]byte, error) {
	data, ok := f.content[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return data, nil
}

func (f *fakeClient) DeleteDocument(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	return f.deleteErr
}

func (f *fakeClient) GetSubscription(ctx context.Context) (*models.SubscriptionSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapCalls++
	if f.snapErr != nil {
		return nil, f.snapErr
	}
	return f.snapshot, nil
}

func (f *fakeClient) RequestPayment(ctx context.Context, req api.PaymentRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requestCalls++
	if f.requestErr != nil {
		return "", f.requestErr
	}
	return f.referenceID, nil
}

// PaymentStatus pops the next scripted status; the last one repeats.
func (f *fakeClient) PaymentStatus(ctx context.Context, referenceID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	if f.statusErr != nil {
		return "", f.statusErr
	}
	if len(f.statuses) == 0 {
		return "PENDING", nil
	}
	s := f.statuses[0]
	if len(f.statuses) > 1 {
		f.statuses = f.statuses[1:]
	}
	return s, nil
}

// memRepo is an in-memory documents.Repository.
type memRepo struct {
	mu   sync.Mutex
	byID map[int64]models.Document
}

func newMemRepo() *memRepo {
	return &memRepo{byID: make(map[int64]models.Document)}
}

func (r *memRepo) ReplaceAll(ctx context.Context, docs []models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = make(map[int64]models.Document, len(docs))
	for _, d := range docs {
		r.byID[d.ID] = d
	}
	return nil
}

func (r *memRepo) Upsert(ctx context.Context, doc *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[doc.ID] = *doc
	return nil
}

func (r *memRepo) GetAll(ctx context.Context) ([]models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Document, 0, len(r.byID))
	for _, d := range r.byID {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memRepo) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &d, nil
}

func (r *memRepo) DeleteByID(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
