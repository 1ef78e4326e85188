package admin

import (
	"context"

	"github.com/alexisbeaulieu97/shelf/internal/api"
	"github.com/alexisbeaulieu97/shelf/internal/domain"
)

// Backend exposes the REST operations the admin requires. *api.Client
// satisfies it.
type Backend interface {
	Health(ctx context.Context) (api.Health, error)

	ListBooks(ctx context.Context) ([]domain.Book, error)
	CreateBook(ctx context.Context, in domain.NewBook) (domain.Book, error)
	UpdateBook(ctx context.Context, id domain.ID, patch domain.BookPatch) (domain.Book, error)
	DeleteBook(ctx context.Context, id domain.ID) error

	ListAuthors(ctx context.Context) ([]domain.Author, error)
	CreateAuthor(ctx context.Context, in domain.NewAuthor) (domain.Author, error)
	UpdateAuthor(ctx context.Context, id domain.ID, patch domain.AuthorPatch) (domain.Author, error)
	DeleteAuthor(ctx context.Context, id domain.ID) error
}

// Preferences persists the debug flag. *prefs.Store satisfies it.
type Preferences interface {
	PersistDebug(on bool) error
}

var _ Backend = (*api.Client)(nil)
