package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/shelf/internal/domain"
	"github.com/alexisbeaulieu97/shelf/internal/logger"
	"github.com/alexisbeaulieu97/shelf/internal/server"
)

func newBackend(t *testing.T) *Client {
	t.Helper()
	srv := server.New(server.NewLibrary(server.NewMemoryStore()), server.Options{})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return New(ts.URL + "/")
}

func stubBackend(t *testing.T, status int, contentType, body string) *Client {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return New(ts.URL)
}

func TestClientAgainstReferenceBackend(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := newBackend(t)

	health, err := client.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status())

	book, err := client.CreateBook(ctx, domain.NewBook{Title: "Dune", Author: "F. Herbert"})
	require.NoError(t, err)
	assert.Equal(t, domain.ID(1), book.ID)

	authors, err := client.ListAuthors(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, "F. Herbert", authors[0].Name)

	title := "Dune Messiah"
	updated, err := client.UpdateBook(ctx, book.ID, domain.BookPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	got, err := client.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	require.NoError(t, client.DeleteBook(ctx, book.ID))

	err = client.DeleteBook(ctx, book.ID)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Book not found", apiErr.Message)
	assert.True(t, IsStatus(err, http.StatusNotFound))

	books, err := client.ListBooks(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)
	assert.NotNil(t, books)
}

func TestAuthorEndpoints(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := newBackend(t)

	created, err := client.CreateAuthor(ctx, domain.NewAuthor{Name: "Mary Shelley"})
	require.NoError(t, err)

	_, err = client.CreateAuthor(ctx, domain.NewAuthor{Name: "mary shelley"})
	assert.EqualError(t, err, "Author already exists (case-insensitive).")
	assert.True(t, IsStatus(err, http.StatusConflict))

	name := "M. Shelley"
	renamed, err := client.UpdateAuthor(ctx, created.ID, domain.AuthorPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, renamed.Name)

	fetched, err := client.GetAuthor(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, renamed, fetched)

	require.NoError(t, client.DeleteAuthor(ctx, created.ID))
}

func TestErrorMessagePrecedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		want        string
	}{
		{"detail wins", 409, "application/json", `{"detail":"dup","message":"other"}`, "dup"},
		{"message when no detail", 400, "application/json", `{"message":"bad input"}`, "bad input"},
		{"structured detail is encoded", 422, "application/json", `{"detail":[{"loc":["body","title"],"msg":"field required"}]}`, `[{"loc":["body","title"],"msg":"field required"}]`},
		{"plain text body", 502, "text/plain", "upstream exploded", "upstream exploded"},
		{"json string body", 500, "application/json", `"boom"`, "boom"},
		{"empty body", 503, "", "", "HTTP 503"},
		{"object without text", 500, "application/json", `{"detail":""}`, "HTTP 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := stubBackend(t, tt.status, tt.contentType, tt.body)

			_, err := client.ListBooks(context.Background())
			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.want, apiErr.Message)
			assert.Equal(t, tt.status, apiErr.Status)
		})
	}
}

func TestNonArrayListBodyIsEmpty(t *testing.T) {
	t.Parallel()
	client := stubBackend(t, http.StatusOK, "application/json", `{"items":[1,2]}`)

	books, err := client.ListBooks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestHealthWithoutStatus(t *testing.T) {
	t.Parallel()
	client := stubBackend(t, http.StatusOK, "application/json", `{"db":"ok"}`)

	health, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "unknown", health.Status())
}

func TestRequestsCarryIDAndAreLoggedInVerboseMode(t *testing.T) {
	t.Parallel()

	seenCh := make(chan string, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenCh <- r.Header.Get(RequestIDHeader)
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(ts.Close)

	buf := &bytes.Buffer{}
	log, err := logger.New(logger.Options{Level: "info", Writer: buf, Verbose: true})
	require.NoError(t, err)

	client := New(ts.URL, WithLogger(log), WithHTTPClient(ts.Client()))
	_, err = client.ListAuthors(context.Background())
	require.NoError(t, err)

	seen := <-seenCh
	assert.Len(t, seen, 36)
	assert.Contains(t, buf.String(), `"path":"/api/authors"`)
	assert.Contains(t, buf.String(), seen)
}

func TestMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Create failed", Message(nil, "Create failed"))
	assert.Equal(t, "Create failed", Message(&Error{}, "Create failed"))
	assert.Equal(t, "boom", Message(errors.New("boom"), "Create failed"))
}

func TestDeleteSequentially(t *testing.T) {
	t.Parallel()

	var calls []domain.ID
	var failed []domain.ID
	del := func(_ context.Context, id domain.ID) error {
		calls = append(calls, id)
		if id == 2 {
			return errors.New("nope")
		}
		return nil
	}

	tally := DeleteSequentially(context.Background(), []domain.ID{3, 2, 1}, del, func(id domain.ID, _ error) {
		failed = append(failed, id)
	})

	assert.Equal(t, Tally{OK: 2, Failed: 1}, tally)
	assert.Equal(t, []domain.ID{3, 2, 1}, calls)
	assert.Equal(t, []domain.ID{2}, failed)
}
