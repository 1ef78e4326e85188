package state

import (
	"fmt"
	"maps"
	"time"

	"github.com/alexisbeaulieu97/shelf/internal/api"
	"github.com/alexisbeaulieu97/shelf/internal/domain"
	"github.com/alexisbeaulieu97/shelf/internal/selection"
)

// HealthLoaded records a /health answer. The debug payload gains the round
// trip time under "_ms".
func (s State) HealthLoaded(payload api.Health, elapsed time.Duration) State {
	s.Health = payload.Status()
	next := make(map[string]any, len(payload)+1)
	maps.Copy(next, payload)
	next["_ms"] = elapsedMillis(elapsed)
	s.HealthPayload = next
	return s
}

// HealthFailed records a failed /health call. It is never shown as a message.
func (s State) HealthFailed(err error) State {
	s.Health = "error"
	s.HealthPayload = map[string]any{"error": api.Message(err, "unknown error")}
	return s
}

// BooksLoaded replaces the books snapshot and drops selected ids that no
// longer exist.
func (s State) BooksLoaded(books []domain.Book) State {
	if books == nil {
		books = []domain.Book{}
	}
	s.Books = books
	s.BookSelection = s.BookSelection.Prune(domain.IDs(books))
	s.BooksLoading = false
	return s
}

// BooksLoadFailed keeps the previous snapshot and reports the failure.
func (s State) BooksLoadFailed(err error) State {
	s.BooksLoading = false
	return s.fail(api.Message(err, "Failed to load books"))
}

// AuthorsLoaded replaces the authors snapshot, prunes the selection and
// brings the book form pickers in line with the new list.
func (s State) AuthorsLoaded(authors []domain.Author) State {
	if authors == nil {
		authors = []domain.Author{}
	}
	s.Authors = authors
	s.AuthorSelection = s.AuthorSelection.Prune(domain.IDs(authors))
	s.AuthorsLoading = false

	s.BookCreate.Picker = s.BookCreate.Picker.Reconcile(authors)
	if book, ok := s.SelectedBook(); ok && s.Page == BooksUpdate {
		s.BookUpdate.Picker = SeedPicker(book.Author, authors)
	} else {
		s.BookUpdate.Picker = s.BookUpdate.Picker.Reconcile(authors)
	}
	return s
}

// AuthorsLoadFailed keeps the previous snapshot and reports the failure.
func (s State) AuthorsLoadFailed(err error) State {
	s.AuthorsLoading = false
	return s.fail(api.Message(err, "Failed to load authors"))
}

// BookCreated reports success, clears the form and returns to the list
// after reloading authors (the backend may have created one) and books.
func (s State) BookCreated(book domain.Book) (State, []Effect) {
	s = s.succeed(fmt.Sprintf("Created book #%d", book.ID))
	s.BookCreate = BookForm{Picker: AuthorPicker{Mode: ModeSelect}.Reconcile(s.Authors)}
	return s.emit(LoadAuthors{}, LoadBooks{}, ShowPage{Page: BooksList})
}

// BookCreateFailed reports a rejected create.
func (s State) BookCreateFailed(err error) State {
	return s.fail(api.Message(err, msgCreateFailed))
}

// BookUpdated reports success and returns to the list after reloading.
func (s State) BookUpdated(book domain.Book) (State, []Effect) {
	s = s.succeed(fmt.Sprintf("Updated book #%d", book.ID))
	return s.emit(LoadAuthors{}, LoadBooks{}, ShowPage{Page: BooksList})
}

// BookUpdateFailed reports a rejected update.
func (s State) BookUpdateFailed(err error) State {
	return s.fail(api.Message(err, msgUpdateFailed))
}

// BooksDeleted reports a finished batch delete, clears the selection and
// returns to the reloaded list.
func (s State) BooksDeleted(tally api.Tally) (State, []Effect) {
	msg, clean := deleteOutcome(tally.OK, tally.Failed, "book")
	if clean {
		s = s.succeed(msg)
	} else {
		s = s.fail(msg)
	}
	s.BookSelection = selection.Set{}
	s.DeletingBooks = false
	return s.emit(LoadBooks{}, ShowPage{Page: BooksList})
}

// AuthorCreated reports success, clears the form and returns to the list.
func (s State) AuthorCreated(author domain.Author) (State, []Effect) {
	s = s.succeed(fmt.Sprintf("Created author #%d", author.ID))
	s.AuthorCreate = AuthorForm{}
	return s.emit(LoadAuthors{}, ShowPage{Page: AuthorsList})
}

// AuthorCreateFailed reports a rejected create.
func (s State) AuthorCreateFailed(err error) State {
	return s.fail(api.Message(err, msgCreateFailed))
}

// AuthorUpdated reports success and returns to the list.
func (s State) AuthorUpdated(author domain.Author) (State, []Effect) {
	s = s.succeed(fmt.Sprintf("Updated author #%d", author.ID))
	return s.emit(LoadAuthors{}, ShowPage{Page: AuthorsList})
}

// AuthorUpdateFailed reports a rejected update.
func (s State) AuthorUpdateFailed(err error) State {
	return s.fail(api.Message(err, msgUpdateFailed))
}

// AuthorsDeleted reports a finished batch delete, clears the selection and
// returns to the reloaded list.
func (s State) AuthorsDeleted(tally api.Tally) (State, []Effect) {
	msg, clean := deleteOutcome(tally.OK, tally.Failed, "author")
	if clean {
		s = s.succeed(msg)
	} else {
		s = s.fail(msg)
	}
	s.AuthorSelection = selection.Set{}
	s.DeletingAuthors = false
	return s.emit(LoadAuthors{}, ShowPage{Page: AuthorsList})
}
