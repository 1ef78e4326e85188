package state

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/shelf/internal/domain"
	"github.com/alexisbeaulieu97/shelf/internal/selection"
)

const (
	msgSelectOneBook      = "Select exactly one book to update."
	msgSelectSomeBooks    = "Select one or more books to delete."
	msgSelectOneAuthor    = "Select exactly one author to update."
	msgSelectSomeAuthors  = "Select one or more authors to delete."
	msgNoBookChanges      = "No changes detected. Modify title and/or author before saving."
	msgNoAuthorChanges    = "No changes detected."
	msgCreateFailed       = "Create failed"
	msgUpdateFailed       = "Update failed"
	msgDeleteFailedSuffix = "Check debug logs."
)

// Navigate is a user-initiated page change. It clears messages, keeps the
// authors list fresh on book pages, reloads the collection of list pages and
// seeds update forms from the current selection.
func (s State) Navigate(page Page) (State, []Effect) {
	s = s.clearMessages()
	s.Page = page

	var effects []Effect
	if page.Kind() == domain.KindBook {
		effects = append(effects, LoadAuthors{})
	}

	switch page {
	case BooksList:
		effects = append(effects, LoadBooks{})
	case AuthorsList:
		effects = append(effects, LoadAuthors{})
	case BooksCreate:
		s.BookCreate.Picker = AuthorPicker{Mode: ModeSelect, NewName: s.BookCreate.Picker.NewName}.Reconcile(s.Authors)
	case BooksUpdate:
		s.BookUpdate = s.seedBookUpdate()
	case AuthorsUpdate:
		s.AuthorUpdate = s.seedAuthorUpdate()
	}

	return s.emit(effects...)
}

// ShowPage is the navigation that follows a completed action. The outcome
// message stays and nothing is reloaded because the action just did that.
func (s State) ShowPage(page Page) State {
	s.Page = page
	return s
}

func (s State) seedBookUpdate() BookForm {
	book, ok := s.SelectedBook()
	if !ok {
		return BookForm{}
	}
	return BookForm{Title: book.Title, Picker: SeedPicker(book.Author, s.Authors)}
}

func (s State) seedAuthorUpdate() AuthorForm {
	author, ok := s.SelectedAuthor()
	if !ok {
		return AuthorForm{}
	}
	return AuthorForm{Name: author.Name}
}

// RequestUpdate opens the update page of kind when exactly one row is selected.
func (s State) RequestUpdate(kind domain.Kind) (State, []Effect) {
	s = s.clearMessages()
	if s.Selection(kind).Len() != 1 {
		if kind == domain.KindAuthor {
			return s.fail(msgSelectOneAuthor), nil
		}
		return s.fail(msgSelectOneBook), nil
	}
	return s.Navigate(PageFor(kind, ActionUpdate))
}

// RequestDelete opens the delete page of kind when at least one row is selected.
func (s State) RequestDelete(kind domain.Kind) (State, []Effect) {
	s = s.clearMessages()
	if s.Selection(kind).IsEmpty() {
		if kind == domain.KindAuthor {
			return s.fail(msgSelectSomeAuthors), nil
		}
		return s.fail(msgSelectSomeBooks), nil
	}
	return s.Navigate(PageFor(kind, ActionDelete))
}

// Reload refetches the collection of kind unless a fetch is already running.
func (s State) Reload(kind domain.Kind) (State, []Effect) {
	if s.Loading(kind) {
		return s, nil
	}
	if kind == domain.KindAuthor {
		return s.emit(LoadAuthors{})
	}
	return s.emit(LoadBooks{})
}

// RefreshHealth re-queries /health.
func (s State) RefreshHealth() (State, []Effect) {
	return s.emit(LoadHealth{})
}

// Selection

// ToggleBook flips one book's membership in the selection.
func (s State) ToggleBook(id domain.ID) State {
	s = s.clearMessages()
	s.BookSelection = s.BookSelection.Toggle(id)
	return s
}

// ToggleAllBooks selects every visible book, or clears the selection when
// all of them are already selected.
func (s State) ToggleAllBooks() State {
	s = s.clearMessages()
	s.BookSelection = toggleAll(s.BookSelection, domain.IDs(s.VisibleBooks()))
	return s
}

// ClearBookSelection empties the books selection.
func (s State) ClearBookSelection() State {
	s = s.clearMessages()
	s.BookSelection = selection.Set{}
	return s
}

// ToggleAuthor flips one author's membership in the selection.
func (s State) ToggleAuthor(id domain.ID) State {
	s = s.clearMessages()
	s.AuthorSelection = s.AuthorSelection.Toggle(id)
	return s
}

// ToggleAllAuthors selects every visible author, or clears the selection
// when all of them are already selected.
func (s State) ToggleAllAuthors() State {
	s = s.clearMessages()
	s.AuthorSelection = toggleAll(s.AuthorSelection, domain.IDs(s.VisibleAuthors()))
	return s
}

// ClearAuthorSelection empties the authors selection.
func (s State) ClearAuthorSelection() State {
	s = s.clearMessages()
	s.AuthorSelection = selection.Set{}
	return s
}

func toggleAll(current selection.Set, visible []domain.ID) selection.Set {
	if len(visible) == 0 {
		return current
	}
	if current.HeaderState(visible) == selection.Checked {
		return selection.Set{}
	}
	return selection.Of(visible...)
}

// SortBooks toggles the books sort column.
func (s State) SortBooks(key string) State {
	s.BookSort = s.BookSort.Toggle(key)
	return s
}

// SortAuthors toggles the authors sort column.
func (s State) SortAuthors(key string) State {
	s.AuthorSort = s.AuthorSort.Toggle(key)
	return s
}

// Forms

// SetBookCreateForm replaces the create-book buffers.
func (s State) SetBookCreateForm(form BookForm) State {
	s.BookCreate = form
	return s
}

// SetBookUpdateForm replaces the update-book buffers.
func (s State) SetBookUpdateForm(form BookForm) State {
	s.BookUpdate = form
	return s
}

// SetAuthorCreateName replaces the create-author buffer.
func (s State) SetAuthorCreateName(name string) State {
	s.AuthorCreate.Name = name
	return s
}

// SetAuthorUpdateName replaces the update-author buffer.
func (s State) SetAuthorUpdateName(name string) State {
	s.AuthorUpdate.Name = name
	return s
}

// ResetBookCreateForm clears the create-book form.
func (s State) ResetBookCreateForm() State {
	s = s.clearMessages()
	s.BookCreate = BookForm{Picker: AuthorPicker{Mode: ModeSelect}.Reconcile(s.Authors)}
	return s
}

// ResetBookUpdateForm re-seeds the update-book form from the selected book.
func (s State) ResetBookUpdateForm() State {
	s = s.clearMessages()
	if _, ok := s.SelectedBook(); ok {
		s.BookUpdate = s.seedBookUpdate()
	}
	return s
}

// ResetAuthorCreateForm clears the create-author form.
func (s State) ResetAuthorCreateForm() State {
	s = s.clearMessages()
	s.AuthorCreate = AuthorForm{}
	return s
}

// ResetAuthorUpdateForm re-seeds the update-author form from the selected author.
func (s State) ResetAuthorUpdateForm() State {
	s = s.clearMessages()
	if _, ok := s.SelectedAuthor(); ok {
		s.AuthorUpdate = s.seedAuthorUpdate()
	}
	return s
}

// Submissions

// SubmitCreateBook posts the create-book form. Values are trimmed; the
// backend decides what is acceptable.
func (s State) SubmitCreateBook() (State, []Effect) {
	s = s.clearMessages()
	input := domain.NewBook{
		Title:  strings.TrimSpace(s.BookCreate.Title),
		Author: s.BookCreate.Picker.Effective(s.Authors),
	}
	return s, []Effect{CreateBook{Input: input}}
}

// SubmitUpdateBook sends only the non-empty fields that differ from the
// selected book.
func (s State) SubmitUpdateBook() (State, []Effect) {
	s = s.clearMessages()
	book, ok := s.SelectedBook()
	if !ok {
		return s.fail(msgSelectOneBook), nil
	}

	patch := domain.DiffBook(book,
		strings.TrimSpace(s.BookUpdate.Title),
		s.BookUpdate.Picker.Effective(s.Authors),
	)
	if patch.IsEmpty() {
		return s.fail(msgNoBookChanges), nil
	}
	return s, []Effect{UpdateBook{ID: book.ID, Patch: patch}}
}

// SubmitCreateAuthor posts the create-author form.
func (s State) SubmitCreateAuthor() (State, []Effect) {
	s = s.clearMessages()
	input := domain.NewAuthor{Name: strings.TrimSpace(s.AuthorCreate.Name)}
	return s, []Effect{CreateAuthor{Input: input}}
}

// SubmitUpdateAuthor sends the new name when it differs from the stored one.
func (s State) SubmitUpdateAuthor() (State, []Effect) {
	s = s.clearMessages()
	author, ok := s.SelectedAuthor()
	if !ok {
		return s.fail(msgSelectOneAuthor), nil
	}

	patch := domain.DiffAuthor(author, strings.TrimSpace(s.AuthorUpdate.Name))
	if patch.IsEmpty() {
		return s.fail(msgNoAuthorChanges), nil
	}
	return s, []Effect{UpdateAuthor{ID: author.ID, Patch: patch}}
}

// ConfirmDeleteBooks starts deleting the selected books in selection order.
func (s State) ConfirmDeleteBooks() (State, []Effect) {
	if s.DeletingBooks {
		return s, nil
	}
	s = s.clearMessages()
	if s.BookSelection.IsEmpty() {
		return s.fail(msgSelectSomeBooks), nil
	}
	s.DeletingBooks = true
	return s, []Effect{DeleteBooks{IDs: s.BookSelection.IDs()}}
}

// ConfirmDeleteAuthors starts deleting the selected authors in selection order.
func (s State) ConfirmDeleteAuthors() (State, []Effect) {
	if s.DeletingAuthors {
		return s, nil
	}
	s = s.clearMessages()
	if s.AuthorSelection.IsEmpty() {
		return s.fail(msgSelectSomeAuthors), nil
	}
	s.DeletingAuthors = true
	return s, []Effect{DeleteAuthors{IDs: s.AuthorSelection.IDs()}}
}

// Preferences

// ToggleDebug flips the debug flag, persists it and re-runs the initial loads.
func (s State) ToggleDebug() (State, []Effect) {
	s.Debug = !s.Debug
	return s.emit(PersistDebug{On: s.Debug}, LoadHealth{}, LoadAuthors{}, LoadBooks{})
}

// ToggleDark flips dark mode for this session.
func (s State) ToggleDark() State {
	s.Dark = !s.Dark
	return s
}

// ToggleSidebar collapses or expands the sidebar.
func (s State) ToggleSidebar() State {
	s.SidebarCollapsed = !s.SidebarCollapsed
	return s
}

func deleteOutcome(ok, failed int, noun string) (string, bool) {
	if failed == 0 {
		return fmt.Sprintf("Deleted %d %s(s).", ok, noun), true
	}
	return fmt.Sprintf("Deleted %d %s(s), failed to delete %d. %s", ok, noun, failed, msgDeleteFailedSuffix), false
}
