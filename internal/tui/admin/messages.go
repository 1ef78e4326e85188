package admin

import (
	"time"

	"github.com/alexisbeaulieu97/shelf/internal/api"
	"github.com/alexisbeaulieu97/shelf/internal/domain"
	"github.com/alexisbeaulieu97/shelf/internal/state"
)

// Health Messages

// HealthLoadedMsg carries a /health answer and its round trip time.
type HealthLoadedMsg struct {
	Payload api.Health
	Elapsed time.Duration
}

// HealthFailedMsg indicates /health could not be reached.
type HealthFailedMsg struct {
	Err error
}

// Load Messages

// BooksLoadedMsg carries a fresh books snapshot.
type BooksLoadedMsg struct {
	Books []domain.Book
}

// BooksLoadFailedMsg indicates the books list failed to load.
type BooksLoadFailedMsg struct {
	Err error
}

// AuthorsLoadedMsg carries a fresh authors snapshot.
type AuthorsLoadedMsg struct {
	Authors []domain.Author
}

// AuthorsLoadFailedMsg indicates the authors list failed to load.
type AuthorsLoadFailedMsg struct {
	Err error
}

// Book Messages

// BookCreatedMsg carries the book the backend created.
type BookCreatedMsg struct {
	Book domain.Book
}

// BookCreateFailedMsg indicates a rejected create.
type BookCreateFailedMsg struct {
	Err error
}

// BookUpdatedMsg carries the updated book.
type BookUpdatedMsg struct {
	Book domain.Book
}

// BookUpdateFailedMsg indicates a rejected update.
type BookUpdateFailedMsg struct {
	Err error
}

// BooksDeletedMsg reports a finished batch delete.
type BooksDeletedMsg struct {
	Tally api.Tally
}

// Author Messages

// AuthorCreatedMsg carries the author the backend created.
type AuthorCreatedMsg struct {
	Author domain.Author
}

// AuthorCreateFailedMsg indicates a rejected create.
type AuthorCreateFailedMsg struct {
	Err error
}

// AuthorUpdatedMsg carries the updated author.
type AuthorUpdatedMsg struct {
	Author domain.Author
}

// AuthorUpdateFailedMsg indicates a rejected update.
type AuthorUpdateFailedMsg struct {
	Err error
}

// AuthorsDeletedMsg reports a finished batch delete.
type AuthorsDeletedMsg struct {
	Tally api.Tally
}

// Navigation Messages

// ShowPageMsg switches page once an action has completed.
type ShowPageMsg struct {
	Page state.Page
}

// Preference Messages

// DebugPersistedMsg reports the outcome of saving the debug flag.
type DebugPersistedMsg struct {
	On  bool
	Err error
}
