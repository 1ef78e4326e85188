package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/shelf/internal/domain"
	shelferrors "github.com/alexisbeaulieu97/shelf/pkg/errors"
)

func strPtr(s string) *string { return &s }

func newTestLibrary(t *testing.T) *Library {
	t.Helper()
	return NewLibrary(NewMemoryStore())
}

func TestCreateBookCreatesAuthorOnDemand(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	lib := newTestLibrary(t)

	book, err := lib.CreateBook(ctx, domain.NewBook{Title: "  Dune ", Author: " F. Herbert "})
	require.NoError(t, err)
	assert.Equal(t, domain.Book{ID: 1, Title: "Dune", Author: "F. Herbert"}, book)

	authors, err := lib.ListAuthors(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.Author{{ID: 1, Name: "F. Herbert"}}, authors)
}

func TestCreateBookUsesCanonicalAuthorName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	lib := newTestLibrary(t)

	_, err := lib.CreateAuthor(ctx, domain.NewAuthor{Name: "Mary Shelley"})
	require.NoError(t, err)

	book, err := lib.CreateBook(ctx, domain.NewBook{Title: "Frankenstein", Author: "mary shelley"})
	require.NoError(t, err)
	assert.Equal(t, "Mary Shelley", book.Author)

	authors, err := lib.ListAuthors(ctx)
	require.NoError(t, err)
	assert.Len(t, authors, 1)
}

func TestCreateBookRejectsDuplicates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	lib := newTestLibrary(t)

	_, err := lib.CreateBook(ctx, domain.NewBook{Title: "Kindred", Author: "Octavia E. Butler"})
	require.NoError(t, err)

	_, err = lib.CreateBook(ctx, domain.NewBook{Title: "KINDRED", Author: "octavia e. butler"})
	var conflict *shelferrors.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Book already exists (case-insensitive match on title + author).", err.Error())
}

func TestCreateBookRequiresAuthor(t *testing.T) {
	t.Parallel()
	lib := newTestLibrary(t)

	_, err := lib.CreateBook(context.Background(), domain.NewBook{Title: "Orphan", Author: "   "})
	var validation *shelferrors.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Author is required", validation.Message)
}

func TestFailedUnitOfWorkLeavesNoTrace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	lib := newTestLibrary(t)

	book, err := lib.CreateBook(ctx, domain.NewBook{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)
	require.NoError(t, lib.DeleteAuthor(ctx, 1))

	// Re-creating the author succeeds inside the unit of work, then the
	// duplicate book check fails and the whole unit is discarded.
	_, err = lib.CreateBook(ctx, domain.NewBook{Title: book.Title, Author: book.Author})
	require.Error(t, err)

	authors, err := lib.ListAuthors(ctx)
	require.NoError(t, err)
	assert.Empty(t, authors)
}

func TestUpdateBook(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	lib := newTestLibrary(t)

	dune, err := lib.CreateBook(ctx, domain.NewBook{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)
	messiah, err := lib.CreateBook(ctx, domain.NewBook{Title: "Dune Messiah", Author: "Frank Herbert"})
	require.NoError(t, err)

	updated, err := lib.UpdateBook(ctx, dune.ID, domain.BookPatch{Author: strPtr("Brian Herbert")})
	require.NoError(t, err)
	assert.Equal(t, "Brian Herbert", updated.Author)
	assert.Equal(t, "Dune", updated.Title)

	_, err = lib.UpdateBook(ctx, messiah.ID, domain.BookPatch{Title: strPtr("dune"), Author: strPtr("brian herbert")})
	require.Error(t, err)
	assert.Equal(t, "Another book already exists with the same title + author (case-insensitive).", err.Error())

	_, err = lib.UpdateBook(ctx, 99, domain.BookPatch{Title: strPtr("x")})
	var notFound *shelferrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Book not found", err.Error())
}

func TestAuthorUniqueness(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	lib := newTestLibrary(t)

	le, err := lib.CreateAuthor(ctx, domain.NewAuthor{Name: "Ursula K. Le Guin"})
	require.NoError(t, err)
	butler, err := lib.CreateAuthor(ctx, domain.NewAuthor{Name: "Octavia E. Butler"})
	require.NoError(t, err)

	_, err = lib.CreateAuthor(ctx, domain.NewAuthor{Name: "ursula k. le guin"})
	require.Error(t, err)
	assert.Equal(t, "Author already exists (case-insensitive).", err.Error())

	_, err = lib.UpdateAuthor(ctx, butler.ID, domain.AuthorPatch{Name: strPtr("URSULA K. LE GUIN")})
	require.Error(t, err)
	assert.Equal(t, "Another author already exists with that name (case-insensitive).", err.Error())

	renamed, err := lib.UpdateAuthor(ctx, le.ID, domain.AuthorPatch{Name: strPtr("Ursula Le Guin")})
	require.NoError(t, err)
	assert.Equal(t, "Ursula Le Guin", renamed.Name)
}

func TestDeleteMissingRecords(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	lib := newTestLibrary(t)

	assert.EqualError(t, lib.DeleteBook(ctx, 5), "Book not found")
	assert.EqualError(t, lib.DeleteAuthor(ctx, 5), "Author not found")
}

func TestListsAreOrderedByID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	lib := newTestLibrary(t)

	require.NoError(t, Seed(ctx, lib))
	require.NoError(t, Seed(ctx, lib))

	books, err := lib.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, len(SeedBooks))
	assert.Equal(t, []domain.ID{1, 2, 3, 4, 5}, domain.IDs(books))

	authors, err := lib.ListAuthors(ctx)
	require.NoError(t, err)
	assert.Len(t, authors, len(SeedAuthors))
}
