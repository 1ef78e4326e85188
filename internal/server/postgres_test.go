package server

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/shelf/internal/domain"
	"github.com/alexisbeaulieu97/shelf/internal/logger"
)

// Set SHELF_TEST_DATABASE_URL to a disposable database to run these tests.
func openTestPostgres(t *testing.T) *PostgresStore {
	t.Helper()

	dsn := os.Getenv("SHELF_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("SHELF_TEST_DATABASE_URL not set")
	}

	store, err := OpenPostgres(context.Background(), dsn, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, Reset(store.DB().DB))
	return store
}

func TestPostgresStoreFollowsCatalogueRules(t *testing.T) {
	store := openTestPostgres(t)
	ctx := context.Background()
	lib := NewLibrary(store)

	require.NoError(t, lib.Ping(ctx))

	book, err := lib.CreateBook(ctx, domain.NewBook{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)
	assert.Equal(t, "Frank Herbert", book.Author)

	_, err = lib.CreateBook(ctx, domain.NewBook{Title: "dune", Author: "FRANK HERBERT"})
	require.Error(t, err)
	assert.True(t, isConflict(err))

	title := "Dune Messiah"
	updated, err := lib.UpdateBook(ctx, book.ID, domain.BookPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	authors, err := lib.ListAuthors(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 1)

	require.NoError(t, lib.DeleteBook(ctx, book.ID))
	assert.EqualError(t, lib.DeleteBook(ctx, book.ID), "Book not found")
}

func TestConflictOnUniqueMapsViolations(t *testing.T) {
	t.Parallel()

	err := conflictOnUnique(&pgconn.PgError{Code: "23505", ConstraintName: "authors_name_lower_key"}, "author", msgAuthorExists)
	assert.True(t, isConflict(err))
	assert.EqualError(t, err, msgAuthorExists)

	other := &pgconn.PgError{Code: "23502"}
	assert.Same(t, other, conflictOnUnique(other, "author", msgAuthorExists))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, conflictOnUnique(plain, "book", msgBookExists))
	assert.NoError(t, conflictOnUnique(nil, "book", msgBookExists))
}

func TestPostgresUniqueIndexesRejectRacingInserts(t *testing.T) {
	store := openTestPostgres(t)
	ctx := context.Background()

	// Writes straight through Tx skip the lookups a racing writer would
	// also have passed, leaving only the indexes to object.
	err := store.WithTx(ctx, func(tx Tx) error {
		if _, err := tx.InsertAuthor("Mary Shelley"); err != nil {
			return err
		}
		_, err := tx.InsertAuthor("MARY SHELLEY")
		return err
	})
	require.Error(t, err)
	assert.True(t, isConflict(err))
	assert.EqualError(t, err, msgAuthorExists)

	err = store.WithTx(ctx, func(tx Tx) error {
		if _, err := tx.InsertBook("Frankenstein", "Mary Shelley"); err != nil {
			return err
		}
		_, err := tx.InsertBook("frankenstein", "mary shelley")
		return err
	})
	require.Error(t, err)
	assert.True(t, isConflict(err))

	lib := NewLibrary(store)
	books, err := lib.ListBooks(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)
}
