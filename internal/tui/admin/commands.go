package admin

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/shelf/internal/api"
	"github.com/alexisbeaulieu97/shelf/internal/domain"
	"github.com/alexisbeaulieu97/shelf/internal/logger"
	"github.com/alexisbeaulieu97/shelf/internal/state"
)

// runEffects turns reducer effects into commands that run one after another.
func (m Model) runEffects(effects []state.Effect) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, effect := range effects {
		if cmd := m.effectCmd(effect); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Sequence(cmds...)
	}
}

func (m Model) effectCmd(effect state.Effect) tea.Cmd {
	switch e := effect.(type) {
	case state.LoadHealth:
		return healthCmd(m.ctx, m.backend)
	case state.LoadBooks:
		return loadBooksCmd(m.ctx, m.backend, m.log)
	case state.LoadAuthors:
		return loadAuthorsCmd(m.ctx, m.backend, m.log)
	case state.CreateBook:
		return createBookCmd(m.ctx, m.backend, e.Input)
	case state.UpdateBook:
		return updateBookCmd(m.ctx, m.backend, e.ID, e.Patch)
	case state.DeleteBooks:
		return deleteBooksCmd(m.ctx, m.backend, e.IDs, m.log)
	case state.CreateAuthor:
		return createAuthorCmd(m.ctx, m.backend, e.Input)
	case state.UpdateAuthor:
		return updateAuthorCmd(m.ctx, m.backend, e.ID, e.Patch)
	case state.DeleteAuthors:
		return deleteAuthorsCmd(m.ctx, m.backend, e.IDs, m.log)
	case state.PersistDebug:
		return persistDebugCmd(m.prefs, e.On)
	case state.ShowPage:
		page := e.Page
		return func() tea.Msg { return ShowPageMsg{Page: page} }
	default:
		m.log.WithFields(map[string]any{"effect": effect}).Warn("unhandled effect")
		return nil
	}
}

// healthCmd queries /health and measures the round trip
func healthCmd(ctx context.Context, backend Backend) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		payload, err := backend.Health(ctx)
		if err != nil {
			return HealthFailedMsg{Err: err}
		}
		return HealthLoadedMsg{Payload: payload, Elapsed: time.Since(start)}
	}
}

// loadBooksCmd fetches the books snapshot
func loadBooksCmd(ctx context.Context, backend Backend, log *logger.Logger) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		books, err := backend.ListBooks(ctx)
		if err != nil {
			return BooksLoadFailedMsg{Err: err}
		}
		log.WithFields(map[string]any{
			"count":       len(books),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Debug("books loaded")
		return BooksLoadedMsg{Books: books}
	}
}

// loadAuthorsCmd fetches the authors snapshot
func loadAuthorsCmd(ctx context.Context, backend Backend, log *logger.Logger) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		authors, err := backend.ListAuthors(ctx)
		if err != nil {
			return AuthorsLoadFailedMsg{Err: err}
		}
		log.WithFields(map[string]any{
			"count":       len(authors),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Debug("authors loaded")
		return AuthorsLoadedMsg{Authors: authors}
	}
}

func createBookCmd(ctx context.Context, backend Backend, in domain.NewBook) tea.Cmd {
	return func() tea.Msg {
		book, err := backend.CreateBook(ctx, in)
		if err != nil {
			return BookCreateFailedMsg{Err: err}
		}
		return BookCreatedMsg{Book: book}
	}
}

func updateBookCmd(ctx context.Context, backend Backend, id domain.ID, patch domain.BookPatch) tea.Cmd {
	return func() tea.Msg {
		book, err := backend.UpdateBook(ctx, id, patch)
		if err != nil {
			return BookUpdateFailedMsg{Err: err}
		}
		return BookUpdatedMsg{Book: book}
	}
}

// deleteBooksCmd removes the books one at a time; individual failures are
// logged and counted, never aborting the batch
func deleteBooksCmd(ctx context.Context, backend Backend, ids []domain.ID, log *logger.Logger) tea.Cmd {
	return func() tea.Msg {
		tally := api.DeleteSequentially(ctx, ids, backend.DeleteBook, logDeleteFailure(log, domain.KindBook))
		return BooksDeletedMsg{Tally: tally}
	}
}

func createAuthorCmd(ctx context.Context, backend Backend, in domain.NewAuthor) tea.Cmd {
	return func() tea.Msg {
		author, err := backend.CreateAuthor(ctx, in)
		if err != nil {
			return AuthorCreateFailedMsg{Err: err}
		}
		return AuthorCreatedMsg{Author: author}
	}
}

func updateAuthorCmd(ctx context.Context, backend Backend, id domain.ID, patch domain.AuthorPatch) tea.Cmd {
	return func() tea.Msg {
		author, err := backend.UpdateAuthor(ctx, id, patch)
		if err != nil {
			return AuthorUpdateFailedMsg{Err: err}
		}
		return AuthorUpdatedMsg{Author: author}
	}
}

func deleteAuthorsCmd(ctx context.Context, backend Backend, ids []domain.ID, log *logger.Logger) tea.Cmd {
	return func() tea.Msg {
		tally := api.DeleteSequentially(ctx, ids, backend.DeleteAuthor, logDeleteFailure(log, domain.KindAuthor))
		return AuthorsDeletedMsg{Tally: tally}
	}
}

func logDeleteFailure(log *logger.Logger, kind domain.Kind) func(domain.ID, error) {
	return func(id domain.ID, err error) {
		log.WithFields(map[string]any{
			"kind":  string(kind),
			"id":    int64(id),
			"error": err.Error(),
		}).Debug("delete failed")
	}
}

// persistDebugCmd stores the debug flag
func persistDebugCmd(prefs Preferences, on bool) tea.Cmd {
	if prefs == nil {
		return nil
	}
	return func() tea.Msg {
		return DebugPersistedMsg{On: on, Err: prefs.PersistDebug(on)}
	}
}
