package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/shelfhq/shelf/internal/client/models"
	"github.com/shelfhq/shelf/internal/client/session"
	"github.com/shelfhq/shelf/internal/common"
)

// HTTPClient talks JSON (and multipart for uploads) to the Shelf API.
//
// It reads the bearer token from the session store on every request and is
// the single place where auth expiry is handled: a 401 clears the store and
// invokes onUnauthorized once, re-armed by the next successful login.
type HTTPClient struct {
	baseURL         string
	http            *http.Client
	session         *session.Store
	onUnauthorized  func()
	expiredNotified atomic.Bool
}

// NewHTTPClient builds a client for the given base URL. onUnauthorized may
// be nil; when set it runs at most once per session expiry.
func NewHTTPClient(baseURL string, store *session.Store, onUnauthorized func()) *HTTPClient {
	return &HTTPClient{
		// No client-side timeout: a hung request stays pending until the
		// caller's context or the server gives up.
		baseURL:        strings.TrimRight(baseURL, "/"),
		http:           &http.Client{},
		session:        store,
		onUnauthorized: onUnauthorized,
	}
}

// do issues one request, attaching the bearer token when a session exists
// and a correlation id always. The response body is returned for 2xx;
// anything else is normalized into an error.
func (c *HTTPClient) do(ctx context.Context, method, path string, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(common.RequestIDHeader, uuid.NewString())
	if token := c.session.Token(); token != "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized()
	}
	return nil, &APIError{Status: resp.StatusCode, Message: serverMessage(resp, data)}
}

// handleUnauthorized clears the session (idempotent) and notifies the hook
// once. Concurrent 401s race on the CompareAndSwap; only the winner fires.
func (c *HTTPClient) handleUnauthorized() {
	c.session.Clear()
	if c.expiredNotified.CompareAndSwap(false, true) && c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

// serverMessage extracts the error message from a failure body, falling
// back to the HTTP status text.
func serverMessage(resp *http.Response, data []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	if len(bytes.TrimSpace(data)) > 0 && len(data) <= 200 {
		return string(bytes.TrimSpace(data))
	}
	return http.StatusText(resp.StatusCode)
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(body))
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (c *HTTPClient) sessionFromAuth(data []byte) (*models.Session, error) {
	var resp authResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("auth response carries no token")
	}
	if err := resp.User.Validate(); err != nil {
		return nil, fmt.Errorf("auth response user: %w", err)
	}
	// A fresh session re-arms the one-shot expiry notification.
	c.expiredNotified.Store(false)
	return &models.Session{Token: resp.Token, User: resp.User}, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.Session, error) {
	data, err := c.postJSON(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	return c.sessionFromAuth(data)
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (*models.Session, error) {
	data, err := c.postJSON(ctx, "/auth/register", map[string]string{
		"email":     email,
		"password":  password,
		"full_name": name,
	})
	if err != nil {
		return nil, err
	}
	return c.sessionFromAuth(data)
}

func (c *HTTPClient) ListDocuments(ctx context.Context) ([]models.Document, error) {
	data, err := c.do(ctx, http.MethodGet, "/documents", "", nil)
	if err != nil {
		return nil, err
	}
	var docs []models.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode document list: %w", err)
	}
	return docs, nil
}

func (c *HTTPClient) UploadDocument(ctx context.Context, filename string, content []byte) (*models.Document, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	data, err := c.do(ctx, http.MethodPost, "/documents", w.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode uploaded document: %w", err)
	}
	return &doc, nil
}

func (c *HTTPClient) DownloadDocument(ctx context.Context, id int64) ([]byte, error) {
	return c.do(ctx, http.MethodGet, fmt.Sprintf("/documents/%d", id), "", nil)
}

func (c *HTTPClient) DeleteDocument(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/documents/%d", id), "", nil)
	return err
}

func (c *HTTPClient) GetSubscription(ctx context.Context) (*models.SubscriptionSnapshot, error) {
	data, err := c.do(ctx, http.MethodGet, "/subscription", "", nil)
	if err != nil {
		return nil, err
	}
	var snap models.SubscriptionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode subscription: %w", err)
	}
	return &snap, nil
}

func (c *HTTPClient) RequestPayment(ctx context.Context, req PaymentRequest) (string, error) {
	data, err := c.postJSON(ctx, "/payments/request", req)
	if err != nil {
		return "", err
	}
	var resp struct {
		ReferenceID string `json:"reference_id"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decode payment response: %w", err)
	}
	if resp.ReferenceID == "" {
		return "", fmt.Errorf("payment response carries no reference id")
	}
	return resp.ReferenceID, nil
}

func (c *HTTPClient) PaymentStatus(ctx context.Context, referenceID string) (string, error) {
	data, err := c.do(ctx, http.MethodGet, "/payments/status/"+referenceID, "", nil)
	if err != nil {
		return "", err
	}
	var resp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decode payment status: %w", err)
	}
	return resp.Status, nil
}
