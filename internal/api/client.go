// Package api talks to the books/authors REST backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/shelf/internal/domain"
	"github.com/alexisbeaulieu97/shelf/internal/logger"
)

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Health is the decoded /health payload.
type Health map[string]any

// Status returns the "status" field or "unknown".
func (h Health) Status() string {
	if status, ok := h["status"].(string); ok && status != "" {
		return status
	}
	return "unknown"
}

// Client is an HTTP client for the backend. It sets no timeout of its own;
// callers bound requests through their context.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger attaches a logger for per-request debug entries.
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a Client rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health fetches /health.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var out Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = Health{}
	}
	return out, nil
}

// ListBooks fetches every book. A body that is not a JSON array yields an
// empty list.
func (c *Client) ListBooks(ctx context.Context) ([]domain.Book, error) {
	return list[domain.Book](ctx, c, "/api/books")
}

// GetBook fetches one book.
func (c *Client) GetBook(ctx context.Context, id domain.ID) (domain.Book, error) {
	var out domain.Book
	err := c.do(ctx, http.MethodGet, "/api/books/"+id.String(), nil, &out)
	return out, err
}

// CreateBook creates a book. The backend creates the author if needed.
func (c *Client) CreateBook(ctx context.Context, in domain.NewBook) (domain.Book, error) {
	var out domain.Book
	err := c.do(ctx, http.MethodPost, "/api/books", in, &out)
	return out, err
}

// UpdateBook sends only the fields present in patch.
func (c *Client) UpdateBook(ctx context.Context, id domain.ID, patch domain.BookPatch) (domain.Book, error) {
	var out domain.Book
	err := c.do(ctx, http.MethodPut, "/api/books/"+id.String(), patch, &out)
	return out, err
}

// DeleteBook removes a book.
func (c *Client) DeleteBook(ctx context.Context, id domain.ID) error {
	return c.do(ctx, http.MethodDelete, "/api/books/"+id.String(), nil, nil)
}

// ListAuthors fetches every author.
func (c *Client) ListAuthors(ctx context.Context) ([]domain.Author, error) {
	return list[domain.Author](ctx, c, "/api/authors")
}

// GetAuthor fetches one author.
func (c *Client) GetAuthor(ctx context.Context, id domain.ID) (domain.Author, error) {
	var out domain.Author
	err := c.do(ctx, http.MethodGet, "/api/authors/"+id.String(), nil, &out)
	return out, err
}

// CreateAuthor creates an author.
func (c *Client) CreateAuthor(ctx context.Context, in domain.NewAuthor) (domain.Author, error) {
	var out domain.Author
	err := c.do(ctx, http.MethodPost, "/api/authors", in, &out)
	return out, err
}

// UpdateAuthor sends only the fields present in patch.
func (c *Client) UpdateAuthor(ctx context.Context, id domain.ID, patch domain.AuthorPatch) (domain.Author, error) {
	var out domain.Author
	err := c.do(ctx, http.MethodPut, "/api/authors/"+id.String(), patch, &out)
	return out, err
}

// DeleteAuthor removes an author.
func (c *Client) DeleteAuthor(ctx context.Context, id domain.ID) error {
	return c.do(ctx, http.MethodDelete, "/api/authors/"+id.String(), nil, nil)
}

func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithFields(map[string]any{
			"method":      method,
			"path":        path,
			"request_id":  requestID,
			"duration_ms": time.Since(start).Milliseconds(),
		}).Error(err, "request failed")
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.log.WithFields(map[string]any{
		"method":      method,
		"path":        path,
		"status":      resp.StatusCode,
		"status_text": statusText(resp.StatusCode),
		"request_id":  requestID,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("request complete")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
