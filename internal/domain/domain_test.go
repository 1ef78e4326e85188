package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiffBook(t *testing.T) {
	t.Parallel()

	current := Book{ID: 7, Title: "Dune", Author: "Frank Herbert"}

	t.Run("unchanged values produce empty patch", func(t *testing.T) {
		t.Parallel()
		patch := DiffBook(current, "Dune", "Frank Herbert")
		require.True(t, patch.IsEmpty())
	})

	t.Run("empty values are ignored", func(t *testing.T) {
		t.Parallel()
		patch := DiffBook(current, "", "")
		require.True(t, patch.IsEmpty())
	})

	t.Run("only changed fields are included", func(t *testing.T) {
		t.Parallel()
		patch := DiffBook(current, "Dune Messiah", "Frank Herbert")
		require.NotNil(t, patch.Title)
		require.Equal(t, "Dune Messiah", *patch.Title)
		require.Nil(t, patch.Author)

		data, err := json.Marshal(patch)
		require.NoError(t, err)
		require.JSONEq(t, `{"title":"Dune Messiah"}`, string(data))
	})
}

func TestDiffAuthor(t *testing.T) {
	t.Parallel()

	current := Author{ID: 3, Name: "Ursula K. Le Guin"}
	require.True(t, DiffAuthor(current, "Ursula K. Le Guin").IsEmpty())
	require.True(t, DiffAuthor(current, "").IsEmpty())

	patch := DiffAuthor(current, "Ursula Le Guin")
	require.False(t, patch.IsEmpty())
	require.Equal(t, "Ursula Le Guin", *patch.Name)
}

func TestFindAndIDs(t *testing.T) {
	t.Parallel()

	books := []Book{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}
	require.Equal(t, []ID{1, 2}, IDs(books))

	found, ok := Find(books, 2)
	require.True(t, ok)
	require.Equal(t, "B", found.Title)

	_, ok = Find(books, 9)
	require.False(t, ok)
}

func TestKindLabel(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Book", KindBook.Label())
	require.Equal(t, "Author", KindAuthor.Label())
	require.Equal(t, "books", KindBook.Plural())
	require.Equal(t, "authors", KindAuthor.Plural())
	require.Equal(t, "42", ID(42).String())
}
