package server

import (
	"context"
	"strings"

	"github.com/alexisbeaulieu97/shelf/internal/domain"
	shelferrors "github.com/alexisbeaulieu97/shelf/pkg/errors"
)

const (
	msgAuthorExists        = "Author already exists (case-insensitive)."
	msgAnotherAuthorExists = "Another author already exists with that name (case-insensitive)."
	msgBookExists          = "Book already exists (case-insensitive match on title + author)."
	msgAnotherBookExists   = "Another book already exists with the same title + author (case-insensitive)."
)

// Library applies the catalogue rules on top of a Repository: values are
// trimmed, author names are unique ignoring case, a book's author is created
// on demand and stored with its canonical casing, and a title may appear
// only once per author.
type Library struct {
	repo Repository
}

// NewLibrary wraps repo.
func NewLibrary(repo Repository) *Library {
	return &Library{repo: repo}
}

// Ping reports whether the backing store is reachable.
func (l *Library) Ping(ctx context.Context) error {
	return l.repo.Ping(ctx)
}

// ListBooks returns every book ordered by id.
func (l *Library) ListBooks(ctx context.Context) ([]domain.Book, error) {
	var out []domain.Book
	err := l.repo.WithTx(ctx, func(tx Tx) error {
		var err error
		out, err = tx.ListBooks()
		return err
	})
	return out, err
}

// GetBook returns one book.
func (l *Library) GetBook(ctx context.Context, id domain.ID) (domain.Book, error) {
	var out domain.Book
	err := l.repo.WithTx(ctx, func(tx Tx) error {
		book, found, err := tx.GetBook(id)
		if err != nil {
			return err
		}
		if !found {
			return shelferrors.NewNotFoundError("Book", int64(id))
		}
		out = book
		return nil
	})
	return out, err
}

// CreateBook stores a new book, creating its author when no author matches.
func (l *Library) CreateBook(ctx context.Context, in domain.NewBook) (domain.Book, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Book{}, shelferrors.NewValidationError("title", "Title is required", nil)
	}

	var out domain.Book
	err := l.repo.WithTx(ctx, func(tx Tx) error {
		author, err := getOrCreateAuthor(tx, in.Author)
		if err != nil {
			return err
		}

		exists, err := tx.BookExists(title, author.Name, 0)
		if err != nil {
			return err
		}
		if exists {
			return shelferrors.NewConflictError("book", msgBookExists)
		}

		out, err = tx.InsertBook(title, author.Name)
		return err
	})
	return out, err
}

// UpdateBook applies the fields present in patch.
func (l *Library) UpdateBook(ctx context.Context, id domain.ID, patch domain.BookPatch) (domain.Book, error) {
	var out domain.Book
	err := l.repo.WithTx(ctx, func(tx Tx) error {
		book, found, err := tx.GetBook(id)
		if err != nil {
			return err
		}
		if !found {
			return shelferrors.NewNotFoundError("Book", int64(id))
		}

		if patch.Title != nil {
			title := strings.TrimSpace(*patch.Title)
			if title == "" {
				return shelferrors.NewValidationError("title", "Title is required", nil)
			}
			book.Title = title
		}
		if patch.Author != nil {
			author, err := getOrCreateAuthor(tx, *patch.Author)
			if err != nil {
				return err
			}
			book.Author = author.Name
		}

		exists, err := tx.BookExists(book.Title, book.Author, id)
		if err != nil {
			return err
		}
		if exists {
			return shelferrors.NewConflictError("book", msgAnotherBookExists)
		}

		if err := tx.SaveBook(book); err != nil {
			return err
		}
		out = book
		return nil
	})
	return out, err
}

// DeleteBook removes a book.
func (l *Library) DeleteBook(ctx context.Context, id domain.ID) error {
	return l.repo.WithTx(ctx, func(tx Tx) error {
		_, found, err := tx.GetBook(id)
		if err != nil {
			return err
		}
		if !found {
			return shelferrors.NewNotFoundError("Book", int64(id))
		}
		return tx.DeleteBook(id)
	})
}

// ListAuthors returns every author ordered by id.
func (l *Library) ListAuthors(ctx context.Context) ([]domain.Author, error) {
	var out []domain.Author
	err := l.repo.WithTx(ctx, func(tx Tx) error {
		var err error
		out, err = tx.ListAuthors()
		return err
	})
	return out, err
}

// GetAuthor returns one author.
func (l *Library) GetAuthor(ctx context.Context, id domain.ID) (domain.Author, error) {
	var out domain.Author
	err := l.repo.WithTx(ctx, func(tx Tx) error {
		author, found, err := tx.GetAuthor(id)
		if err != nil {
			return err
		}
		if !found {
			return shelferrors.NewNotFoundError("Author", int64(id))
		}
		out = author
		return nil
	})
	return out, err
}

// CreateAuthor stores a new author with a unique name.
func (l *Library) CreateAuthor(ctx context.Context, in domain.NewAuthor) (domain.Author, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Author{}, shelferrors.NewValidationError("name", "Name is required", nil)
	}

	var out domain.Author
	err := l.repo.WithTx(ctx, func(tx Tx) error {
		_, exists, err := tx.FindAuthor(name, 0)
		if err != nil {
			return err
		}
		if exists {
			return shelferrors.NewConflictError("author", msgAuthorExists)
		}
		out, err = tx.InsertAuthor(name)
		return err
	})
	return out, err
}

// UpdateAuthor renames an author. Books keep the name they were saved with.
func (l *Library) UpdateAuthor(ctx context.Context, id domain.ID, patch domain.AuthorPatch) (domain.Author, error) {
	var out domain.Author
	err := l.repo.WithTx(ctx, func(tx Tx) error {
		author, found, err := tx.GetAuthor(id)
		if err != nil {
			return err
		}
		if !found {
			return shelferrors.NewNotFoundError("Author", int64(id))
		}

		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return shelferrors.NewValidationError("name", "Name is required", nil)
			}
			author.Name = name
		}

		_, exists, err := tx.FindAuthor(author.Name, id)
		if err != nil {
			return err
		}
		if exists {
			return shelferrors.NewConflictError("author", msgAnotherAuthorExists)
		}

		if err := tx.SaveAuthor(author); err != nil {
			return err
		}
		out = author
		return nil
	})
	return out, err
}

// DeleteAuthor removes an author. Books referencing the name are untouched.
func (l *Library) DeleteAuthor(ctx context.Context, id domain.ID) error {
	return l.repo.WithTx(ctx, func(tx Tx) error {
		_, found, err := tx.GetAuthor(id)
		if err != nil {
			return err
		}
		if !found {
			return shelferrors.NewNotFoundError("Author", int64(id))
		}
		return tx.DeleteAuthor(id)
	})
}

func getOrCreateAuthor(tx Tx, raw string) (domain.Author, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return domain.Author{}, shelferrors.NewValidationError("author", "Author is required", nil)
	}

	existing, found, err := tx.FindAuthor(name, 0)
	if err != nil {
		return domain.Author{}, err
	}
	if found {
		return existing, nil
	}
	return tx.InsertAuthor(name)
}
