package server

import (
	"context"

	"github.com/alexisbeaulieu97/shelf/internal/domain"
)

// Repository persists books and authors. Every unit of work runs inside
// WithTx so the case-insensitive uniqueness checks and the writes that follow
// them see a consistent view.
type Repository interface {
	WithTx(ctx context.Context, fn func(Tx) error) error
	Ping(ctx context.Context) error
	Close() error
}

// Tx is the set of primitive operations available inside a unit of work.
// Lookups that miss return found=false rather than an error.
type Tx interface {
	ListBooks() ([]domain.Book, error)
	GetBook(id domain.ID) (domain.Book, bool, error)
	// BookExists matches title and author case-insensitively, ignoring excludeID.
	BookExists(title, author string, excludeID domain.ID) (bool, error)
	InsertBook(title, author string) (domain.Book, error)
	SaveBook(book domain.Book) error
	DeleteBook(id domain.ID) error

	ListAuthors() ([]domain.Author, error)
	GetAuthor(id domain.ID) (domain.Author, bool, error)
	// FindAuthor matches name case-insensitively, ignoring excludeID.
	FindAuthor(name string, excludeID domain.ID) (domain.Author, bool, error)
	InsertAuthor(name string) (domain.Author, error)
	SaveAuthor(author domain.Author) error
	DeleteAuthor(id domain.ID) error
}
