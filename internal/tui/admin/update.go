package admin

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/shelf/internal/domain"
	"github.com/alexisbeaulieu97/shelf/internal/sorting"
	"github.com/alexisbeaulieu97/shelf/internal/state"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// System messages
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	// Health
	case HealthLoadedMsg:
		m.install(m.state.HealthLoaded(msg.Payload, msg.Elapsed))
		return m, nil

	case HealthFailedMsg:
		m.log.Error(msg.Err, "health check failed")
		m.install(m.state.HealthFailed(msg.Err))
		return m, nil

	// Loads
	case BooksLoadedMsg:
		m.install(m.state.BooksLoaded(msg.Books))
		return m, nil

	case BooksLoadFailedMsg:
		m.log.Error(msg.Err, "load books failed")
		m.install(m.state.BooksLoadFailed(msg.Err))
		return m, nil

	case AuthorsLoadedMsg:
		m.install(m.state.AuthorsLoaded(msg.Authors))
		return m, nil

	case AuthorsLoadFailedMsg:
		m.log.Error(msg.Err, "load authors failed")
		m.install(m.state.AuthorsLoadFailed(msg.Err))
		return m, nil

	// Books
	case BookCreatedMsg:
		m.log.WithFields(map[string]any{"id": int64(msg.Book.ID)}).Info("book created")
		return m.apply(m.state.BookCreated(msg.Book))

	case BookCreateFailedMsg:
		m.log.Error(msg.Err, "create book failed")
		m.install(m.state.BookCreateFailed(msg.Err))
		return m, nil

	case BookUpdatedMsg:
		m.log.WithFields(map[string]any{"id": int64(msg.Book.ID)}).Info("book updated")
		return m.apply(m.state.BookUpdated(msg.Book))

	case BookUpdateFailedMsg:
		m.log.Error(msg.Err, "update book failed")
		m.install(m.state.BookUpdateFailed(msg.Err))
		return m, nil

	case BooksDeletedMsg:
		m.log.WithFields(map[string]any{"ok": msg.Tally.OK, "failed": msg.Tally.Failed}).Info("books deleted")
		return m.apply(m.state.BooksDeleted(msg.Tally))

	// Authors
	case AuthorCreatedMsg:
		m.log.WithFields(map[string]any{"id": int64(msg.Author.ID)}).Info("author created")
		return m.apply(m.state.AuthorCreated(msg.Author))

	case AuthorCreateFailedMsg:
		m.log.Error(msg.Err, "create author failed")
		m.install(m.state.AuthorCreateFailed(msg.Err))
		return m, nil

	case AuthorUpdatedMsg:
		m.log.WithFields(map[string]any{"id": int64(msg.Author.ID)}).Info("author updated")
		return m.apply(m.state.AuthorUpdated(msg.Author))

	case AuthorUpdateFailedMsg:
		m.log.Error(msg.Err, "update author failed")
		m.install(m.state.AuthorUpdateFailed(msg.Err))
		return m, nil

	case AuthorsDeletedMsg:
		m.log.WithFields(map[string]any{"ok": msg.Tally.OK, "failed": msg.Tally.Failed}).Info("authors deleted")
		return m.apply(m.state.AuthorsDeleted(msg.Tally))

	// Navigation and preferences
	case ShowPageMsg:
		m.install(m.state.ShowPage(msg.Page))
		return m, nil

	case DebugPersistedMsg:
		if msg.Err != nil {
			m.log.Error(msg.Err, "persist debug preference failed")
		}
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles global keys, then dispatches on the page action
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Dark):
		m.install(m.state.ToggleDark())
		return m, nil
	case key.Matches(msg, m.keys.Debug):
		return m.apply(m.state.ToggleDebug())
	case key.Matches(msg, m.keys.Sidebar):
		m.install(m.state.ToggleSidebar())
		return m, nil
	case key.Matches(msg, m.keys.Health):
		return m.apply(m.state.RefreshHealth())
	}

	page := m.state.Page
	if !page.IsForm() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Nav):
			return m.apply(m.state.Navigate(navTarget(page.Kind(), msg.String())))
		}
	}

	switch page.Action() {
	case state.ActionList:
		return m.handleListKeys(msg)
	case state.ActionDelete:
		return m.handleDeleteKeys(msg)
	default:
		if page.Kind() == domain.KindAuthor {
			return m.handleAuthorFormKeys(msg)
		}
		return m.handleBookFormKeys(msg)
	}
}

func navTarget(kind domain.Kind, pressed string) state.Page {
	actions := map[string]state.Action{
		"1": state.ActionList,
		"2": state.ActionCreate,
		"3": state.ActionUpdate,
		"4": state.ActionDelete,
	}
	return state.PageFor(kind, actions[pressed])
}

// handleListKeys handles keys on list pages
func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kind := m.state.Page.Kind()

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(kind, -1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(kind, 1)
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		id, ok := m.cursorID(kind)
		if !ok {
			return m, nil
		}
		if kind == domain.KindAuthor {
			m.install(m.state.ToggleAuthor(id))
		} else {
			m.install(m.state.ToggleBook(id))
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleAll):
		if kind == domain.KindAuthor {
			m.install(m.state.ToggleAllAuthors())
		} else {
			m.install(m.state.ToggleAllBooks())
		}
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		if kind == domain.KindAuthor {
			m.install(m.state.ClearAuthorSelection())
		} else {
			m.install(m.state.ClearBookSelection())
		}
		return m, nil

	case key.Matches(msg, m.keys.Create):
		return m.apply(m.state.Navigate(state.PageFor(kind, state.ActionCreate)))

	case key.Matches(msg, m.keys.Update):
		return m.apply(m.state.RequestUpdate(kind))

	case key.Matches(msg, m.keys.Delete):
		return m.apply(m.state.RequestDelete(kind))

	case key.Matches(msg, m.keys.Reload):
		return m.apply(m.state.Reload(kind))

	case key.Matches(msg, m.keys.Switch):
		other := domain.KindAuthor
		if kind == domain.KindAuthor {
			other = domain.KindBook
		}
		return m.apply(m.state.Navigate(state.PageFor(other, state.ActionList)))
	}

	if column, ok := m.sortColumn(kind, msg); ok {
		if kind == domain.KindAuthor {
			m.install(m.state.SortAuthors(column))
		} else {
			m.install(m.state.SortBooks(column))
		}
	}
	return m, nil
}

func (m Model) sortColumn(kind domain.Kind, msg tea.KeyMsg) (string, bool) {
	switch {
	case key.Matches(msg, m.keys.SortID):
		return sorting.ColumnID, true
	case kind == domain.KindBook && key.Matches(msg, m.keys.SortTitle):
		return sorting.ColumnTitle, true
	case kind == domain.KindBook && key.Matches(msg, m.keys.SortBy):
		return sorting.ColumnAuthor, true
	case kind == domain.KindAuthor && key.Matches(msg, m.keys.SortName):
		return sorting.ColumnName, true
	}
	return "", false
}

// handleDeleteKeys handles keys on delete confirmation pages
func (m Model) handleDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kind := m.state.Page.Kind()

	switch {
	case key.Matches(msg, m.keys.Confirm):
		if kind == domain.KindAuthor {
			return m.apply(m.state.ConfirmDeleteAuthors())
		}
		return m.apply(m.state.ConfirmDeleteBooks())

	case key.Matches(msg, m.keys.Cancel):
		if m.state.Deleting(kind) {
			return m, nil
		}
		return m.apply(m.state.Navigate(state.PageFor(kind, state.ActionList)))
	}
	return m, nil
}

// handleBookFormKeys handles keys on the create and update book pages
func (m Model) handleBookFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := m.bookForm()
	authors := m.state.Authors

	switch {
	case key.Matches(msg, m.keys.Back):
		return m.apply(m.state.Navigate(state.BooksList))

	case key.Matches(msg, m.keys.Submit):
		if m.state.Page == state.BooksUpdate {
			return m.apply(m.state.SubmitUpdateBook())
		}
		return m.apply(m.state.SubmitCreateBook())

	case key.Matches(msg, m.keys.Reset):
		if m.state.Page == state.BooksUpdate {
			m.install(m.state.ResetBookUpdateForm())
		} else {
			m.install(m.state.ResetBookCreateForm())
		}
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.focus = (m.focus + 1) % bookFieldCount
		m.applyFocus()
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.focus = (m.focus + bookFieldCount - 1) % bookFieldCount
		m.applyFocus()
		return m, nil
	}

	left, right := key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right)
	switch m.focus {
	case fieldMode:
		if left || right {
			mode := state.ModeNew
			if form.Picker.Mode == state.ModeNew {
				mode = state.ModeSelect
			}
			form.Picker = form.Picker.WithMode(mode, authors)
			m.install(m.withBookForm(form))
		}
		return m, nil

	case fieldAuthor:
		if form.Picker.Mode == state.ModeSelect {
			switch {
			case left:
				form.Picker = form.Picker.Step(-1, authors)
			case right:
				form.Picker = form.Picker.Step(1, authors)
			default:
				return m, nil
			}
			m.install(m.withBookForm(form))
			return m, nil
		}
		var cmd tea.Cmd
		m.newAuthor, cmd = m.newAuthor.Update(msg)
		form.Picker.NewName = m.newAuthor.Value()
		m.install(m.withBookForm(form))
		return m, cmd

	default:
		var cmd tea.Cmd
		m.titleInput, cmd = m.titleInput.Update(msg)
		form.Title = m.titleInput.Value()
		m.install(m.withBookForm(form))
		return m, cmd
	}
}

// handleAuthorFormKeys handles keys on the create and update author pages
func (m Model) handleAuthorFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.apply(m.state.Navigate(state.AuthorsList))

	case key.Matches(msg, m.keys.Submit):
		if m.state.Page == state.AuthorsUpdate {
			return m.apply(m.state.SubmitUpdateAuthor())
		}
		return m.apply(m.state.SubmitCreateAuthor())

	case key.Matches(msg, m.keys.Reset):
		if m.state.Page == state.AuthorsUpdate {
			m.install(m.state.ResetAuthorUpdateForm())
		} else {
			m.install(m.state.ResetAuthorCreateForm())
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	m.install(m.withAuthorName(m.nameInput.Value()))
	return m, cmd
}
