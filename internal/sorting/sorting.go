// Package sorting orders list page rows by a selectable column.
package sorting

import (
	"slices"
	"strings"

	"github.com/alexisbeaulieu97/shelf/internal/domain"
)

// Direction is the order a column sorts in.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Arrow is the indicator drawn next to the active column header.
func (d Direction) Arrow() string {
	if d == Descending {
		return "▼"
	}
	return "▲"
}

// Spec names the active column and its direction.
type Spec struct {
	Key       string
	Direction Direction
}

// Default sorts by id ascending.
func Default() Spec {
	return Spec{Key: ColumnID, Direction: Ascending}
}

// Toggle reverses the direction when key is already active, otherwise it
// switches to key and resets to ascending.
func (s Spec) Toggle(key string) Spec {
	if s.Key == key {
		if s.Direction == Ascending {
			return Spec{Key: key, Direction: Descending}
		}
		return Spec{Key: key, Direction: Ascending}
	}
	return Spec{Key: key, Direction: Ascending}
}

// Value is a sortable cell. Exactly one of Text and Number is meaningful,
// chosen by IsText.
type Value struct {
	Text   string
	Number int64
	IsText bool
}

// Text builds a string cell.
func Text(s string) Value { return Value{Text: s, IsText: true} }

// Number builds a numeric cell.
func Number(n int64) Value { return Value{Number: n} }

// Compare orders two cells. Text compares case-insensitively.
func Compare(a, b Value) int {
	if a.IsText || b.IsText {
		return strings.Compare(strings.ToLower(a.Text), strings.ToLower(b.Text))
	}
	switch {
	case a.Number < b.Number:
		return -1
	case a.Number > b.Number:
		return 1
	default:
		return 0
	}
}

// Column extracts the sortable value of a row for one key.
type Column[T any] func(T) Value

// Apply returns a sorted copy of rows. Unknown keys leave the order untouched.
func Apply[T any](rows []T, spec Spec, columns map[string]Column[T]) []T {
	out := slices.Clone(rows)
	column, ok := columns[spec.Key]
	if !ok {
		return out
	}
	slices.SortStableFunc(out, func(a, b T) int {
		c := Compare(column(a), column(b))
		if spec.Direction == Descending {
			return -c
		}
		return c
	})
	return out
}

// Column keys.
const (
	ColumnID     = "id"
	ColumnTitle  = "title"
	ColumnAuthor = "author"
	ColumnName   = "name"
)

// BookColumns are the sortable columns of the books list.
var BookColumns = map[string]Column[domain.Book]{
	ColumnID:     func(b domain.Book) Value { return Number(int64(b.ID)) },
	ColumnTitle:  func(b domain.Book) Value { return Text(b.Title) },
	ColumnAuthor: func(b domain.Book) Value { return Text(b.Author) },
}

// AuthorColumns are the sortable columns of the authors list.
var AuthorColumns = map[string]Column[domain.Author]{
	ColumnID:   func(a domain.Author) Value { return Number(int64(a.ID)) },
	ColumnName: func(a domain.Author) Value { return Text(a.Name) },
}

// Books sorts books by spec.
func Books(books []domain.Book, spec Spec) []domain.Book {
	return Apply(books, spec, BookColumns)
}

// Authors sorts authors by spec.
func Authors(authors []domain.Author, spec Spec) []domain.Author {
	return Apply(authors, spec, AuthorColumns)
}
