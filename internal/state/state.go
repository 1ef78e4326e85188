// Package state holds the admin application state and the pure reducers
// that advance it. A reducer takes the current State plus an input and
// returns the next State together with the effects the runtime must run.
// Reducers never touch the network and never mutate shared slices.
package state

import (
	"time"

	"github.com/alexisbeaulieu97/shelf/internal/domain"
	"github.com/alexisbeaulieu97/shelf/internal/selection"
	"github.com/alexisbeaulieu97/shelf/internal/sorting"
)

// HealthChecking is shown until the first /health answer arrives.
const HealthChecking = "checking..."

// BookForm holds the buffers of a create or update book form.
type BookForm struct {
	Title  string
	Picker AuthorPicker
}

// AuthorForm holds the buffer of a create or update author form.
type AuthorForm struct {
	Name string
}

// State is the whole client state. It is a value; copy it freely.
type State struct {
	Page Page

	// Health
	Health        string
	HealthPayload map[string]any

	// Books
	Books         []domain.Book
	BooksLoading  bool
	BookSelection selection.Set
	BookSort      sorting.Spec
	BookCreate    BookForm
	BookUpdate    BookForm
	DeletingBooks bool

	// Authors
	Authors         []domain.Author
	AuthorsLoading  bool
	AuthorSelection selection.Set
	AuthorSort      sorting.Spec
	AuthorCreate    AuthorForm
	AuthorUpdate    AuthorForm
	DeletingAuthors bool

	// Messages
	Error   string
	Success string

	// Preferences
	Debug            bool
	Dark             bool
	SidebarCollapsed bool
}

// New returns the initial state.
func New(debug bool) State {
	return State{
		Page:       BooksList,
		Health:     HealthChecking,
		BookSort:   sorting.Default(),
		AuthorSort: sorting.Default(),
		Books:      []domain.Book{},
		Authors:    []domain.Author{},
		Debug:      debug,
	}
}

// Init issues the initial loads.
func (s State) Init() (State, []Effect) {
	return s.emit(LoadHealth{}, LoadAuthors{}, LoadBooks{})
}

// SelectedBook returns the book when exactly one is selected and still
// present in the snapshot.
func (s State) SelectedBook() (domain.Book, bool) {
	id, ok := s.BookSelection.Single()
	if !ok {
		return domain.Book{}, false
	}
	return domain.Find(s.Books, id)
}

// SelectedAuthor returns the author when exactly one is selected and still
// present in the snapshot.
func (s State) SelectedAuthor() (domain.Author, bool) {
	id, ok := s.AuthorSelection.Single()
	if !ok {
		return domain.Author{}, false
	}
	return domain.Find(s.Authors, id)
}

// SelectedBooks returns the selected books found in the snapshot, in
// selection order.
func (s State) SelectedBooks() []domain.Book {
	out := make([]domain.Book, 0, s.BookSelection.Len())
	for _, id := range s.BookSelection.IDs() {
		if book, ok := domain.Find(s.Books, id); ok {
			out = append(out, book)
		}
	}
	return out
}

// SelectedAuthors returns the selected authors found in the snapshot, in
// selection order.
func (s State) SelectedAuthors() []domain.Author {
	out := make([]domain.Author, 0, s.AuthorSelection.Len())
	for _, id := range s.AuthorSelection.IDs() {
		if author, ok := domain.Find(s.Authors, id); ok {
			out = append(out, author)
		}
	}
	return out
}

// VisibleBooks is the books snapshot in display order.
func (s State) VisibleBooks() []domain.Book {
	return sorting.Books(s.Books, s.BookSort)
}

// VisibleAuthors is the authors snapshot in display order.
func (s State) VisibleAuthors() []domain.Author {
	return sorting.Authors(s.Authors, s.AuthorSort)
}

// Loading reports whether the collection of kind is being fetched.
func (s State) Loading(kind domain.Kind) bool {
	if kind == domain.KindAuthor {
		return s.AuthorsLoading
	}
	return s.BooksLoading
}

// Deleting reports whether a batch delete of kind is running.
func (s State) Deleting(kind domain.Kind) bool {
	if kind == domain.KindAuthor {
		return s.DeletingAuthors
	}
	return s.DeletingBooks
}

// Selection returns the selection set of kind.
func (s State) Selection(kind domain.Kind) selection.Set {
	if kind == domain.KindAuthor {
		return s.AuthorSelection
	}
	return s.BookSelection
}

func (s State) clearMessages() State {
	s.Error = ""
	s.Success = ""
	return s
}

func (s State) fail(msg string) State {
	s.Error = msg
	s.Success = ""
	return s
}

func (s State) succeed(msg string) State {
	s.Success = msg
	s.Error = ""
	return s
}

// emit returns the effects, marking collections whose load it issues.
func (s State) emit(effects ...Effect) (State, []Effect) {
	for _, e := range effects {
		switch e.(type) {
		case LoadBooks:
			s.BooksLoading = true
		case LoadAuthors:
			s.AuthorsLoading = true
		}
	}
	return s, effects
}

func elapsedMillis(d time.Duration) int64 {
	return d.Round(time.Millisecond).Milliseconds()
}
