package admin

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/shelf/internal/api"
	"github.com/alexisbeaulieu97/shelf/internal/domain"
	"github.com/alexisbeaulieu97/shelf/internal/prefs"
	"github.com/alexisbeaulieu97/shelf/internal/server"
	"github.com/alexisbeaulieu97/shelf/internal/sorting"
	"github.com/alexisbeaulieu97/shelf/internal/state"
)

type fixture struct {
	client *api.Client
	prefs  *prefs.Store
	model  Model
}

func newFixture(t *testing.T, books ...domain.NewBook) *fixture {
	t.Helper()

	srv := server.New(server.NewLibrary(server.NewMemoryStore()), server.Options{})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	client := api.New(ts.URL)
	for _, b := range books {
		_, err := client.CreateBook(context.Background(), b)
		require.NoError(t, err)
	}

	store, err := prefs.Open(filepath.Join(t.TempDir(), "prefs.json"))
	require.NoError(t, err)

	m := NewModel(Options{Backend: client, Prefs: store, BaseURL: ts.URL})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)

	return &fixture{client: client, prefs: store, model: run(t, m, m.runEffects(m.initial))}
}

// run executes cmd and every command that follows from it, feeding each
// message back through Update. Spinner ticks are dropped.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()

	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 500, "command chain does not settle")

		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		msg := next()
		if cmds, ok := unwrap(msg); ok {
			queue = append(cmds, queue...)
			continue
		}
		switch msg.(type) {
		case nil, spinner.TickMsg, tea.QuitMsg:
			continue
		}

		updated, follow := m.Update(msg)
		m = updated.(Model)
		queue = append(queue, follow)
	}
	return m
}

// unwrap opens batch and sequence messages.
func unwrap(msg tea.Msg) ([]tea.Cmd, bool) {
	v := reflect.ValueOf(msg)
	if !v.IsValid() || v.Kind() != reflect.Slice || v.Type().Elem() != reflect.TypeOf(tea.Cmd(nil)) {
		return nil, false
	}
	cmds := make([]tea.Cmd, v.Len())
	for i := range cmds {
		cmds[i], _ = v.Index(i).Interface().(tea.Cmd)
	}
	return cmds, true
}

func (f *fixture) press(t *testing.T, keys ...tea.KeyMsg) {
	t.Helper()
	for _, k := range keys {
		updated, cmd := f.model.Update(k)
		f.model = run(t, updated.(Model), cmd)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

var catalogue = []domain.NewBook{
	{Title: "Dune", Author: "Frank Herbert"},
	{Title: "Frankenstein", Author: "Mary Shelley"},
}

func TestInitialLoad(t *testing.T) {
	f := newFixture(t, catalogue...)
	s := f.model.State()

	assert.Equal(t, "ok", s.Health)
	assert.Contains(t, s.HealthPayload, "_ms")
	assert.Len(t, s.Books, 2)
	assert.Len(t, s.Authors, 2)
	assert.False(t, s.BooksLoading)
	assert.False(t, s.AuthorsLoading)
}

func TestInitBatchesSpinnerAndLoads(t *testing.T) {
	m := NewModel(Options{Backend: api.New("http://127.0.0.1:0")})
	assert.True(t, m.State().BooksLoading)
	assert.True(t, m.State().AuthorsLoading)
	assert.NotNil(t, m.Init())
}

func TestUpdateRequiresSingleSelection(t *testing.T) {
	f := newFixture(t, catalogue...)

	f.press(t, runes("u"))
	assert.Equal(t, "Select exactly one book to update.", f.model.State().Error)
	assert.Equal(t, state.BooksList, f.model.State().Page)

	f.press(t, keySpace, runes("u"))
	s := f.model.State()
	require.Equal(t, state.BooksUpdate, s.Page)
	assert.Empty(t, s.Error)
	assert.Equal(t, "Dune", f.model.titleInput.Value())
	assert.Equal(t, "Frank Herbert", s.BookUpdate.Picker.Effective(s.Authors))
}

func TestUpdateBookTitle(t *testing.T) {
	f := newFixture(t, catalogue...)

	f.press(t, keySpace, runes("u"))
	f.press(t, keyEnter)
	assert.Equal(t, "No changes detected. Modify title and/or author before saving.", f.model.State().Error)

	f.press(t, runes(" Messiah"), keyEnter)
	s := f.model.State()
	assert.Equal(t, state.BooksList, s.Page)
	assert.Equal(t, "Updated book #1", s.Success)

	book, ok := domain.Find(s.Books, 1)
	require.True(t, ok)
	assert.Equal(t, "Dune Messiah", book.Title)
}

func TestCreateBookWithExistingAuthor(t *testing.T) {
	f := newFixture(t, catalogue...)

	f.press(t, runes("c"))
	require.Equal(t, state.BooksCreate, f.model.State().Page)

	f.press(t, runes("Children of Dune"), keyTab, keyTab, keyRight, keyEnter)
	s := f.model.State()
	assert.Equal(t, state.BooksList, s.Page)
	assert.Equal(t, "Created book #3", s.Success)

	book, ok := domain.Find(s.Books, 3)
	require.True(t, ok)
	assert.Equal(t, "Mary Shelley", book.Author, "right moves the dropdown to the second author")
	assert.Empty(t, s.BookCreate.Title)
}

func TestCreateBookWithNewAuthor(t *testing.T) {
	f := newFixture(t, catalogue...)

	f.press(t, runes("c"), runes("The Left Hand of Darkness"), keyTab, keyRight)
	require.Equal(t, state.ModeNew, f.model.State().BookCreate.Picker.Mode)

	f.press(t, keyTab, runes("Ursula K. Le Guin"), keyEnter)
	s := f.model.State()
	assert.Equal(t, "Created book #3", s.Success)
	assert.Len(t, s.Authors, 3, "the backend created the author")
}

func TestCreateDuplicateShowsBackendDetail(t *testing.T) {
	f := newFixture(t, catalogue...)

	f.press(t, runes("c"), runes("dune"), keyEnter)
	s := f.model.State()
	assert.Equal(t, state.BooksCreate, s.Page)
	assert.Equal(t, "Book already exists (case-insensitive match on title + author).", s.Error)
}

func TestMassDelete(t *testing.T) {
	f := newFixture(t, catalogue...)

	f.press(t, runes("a"), runes("d"))
	require.Equal(t, state.BooksDelete, f.model.State().Page)
	view := f.model.View()
	assert.Contains(t, view, "Confirm delete (2)")
	assert.Contains(t, view, "Deleting is permanent.")

	f.press(t, runes("y"))
	s := f.model.State()
	assert.Equal(t, state.BooksList, s.Page)
	assert.Equal(t, "Deleted 2 book(s).", s.Success)
	assert.Empty(t, s.Books)
	assert.True(t, s.BookSelection.IsEmpty())
	assert.Contains(t, f.model.View(), "No books yet.")
}

func TestDeleteReportsFailures(t *testing.T) {
	f := newFixture(t, catalogue...)

	f.press(t, runes("a"), runes("d"))
	require.NoError(t, f.client.DeleteBook(context.Background(), 2))

	f.press(t, keyEnter)
	s := f.model.State()
	assert.Equal(t, "Deleted 1 book(s), failed to delete 1. Check debug logs.", s.Error)
	assert.Empty(t, s.Success)
}

func TestDeleteCancel(t *testing.T) {
	f := newFixture(t, catalogue...)

	f.press(t, keySpace, runes("d"), keyEsc)
	s := f.model.State()
	assert.Equal(t, state.BooksList, s.Page)
	assert.Equal(t, 1, s.BookSelection.Len())
}

func TestSortKeys(t *testing.T) {
	f := newFixture(t, catalogue...)

	f.press(t, runes("t"), runes("t"))
	assert.Equal(t, sorting.Spec{Key: sorting.ColumnTitle, Direction: sorting.Descending}, f.model.State().BookSort)
	assert.Equal(t, "Frankenstein", f.model.State().VisibleBooks()[0].Title)

	f.press(t, keySpace)
	assert.True(t, f.model.State().BookSelection.Has(2), "space toggles the row under the cursor in display order")
}

func TestCursorMovesAndToggles(t *testing.T) {
	f := newFixture(t, catalogue...)

	f.press(t, keyDown, keySpace)
	assert.Equal(t, []domain.ID{2}, f.model.State().BookSelection.IDs())

	f.press(t, keyDown, keyDown, keySpace)
	assert.True(t, f.model.State().BookSelection.IsEmpty(), "cursor clamps at the last row")
}

func TestSwitchToAuthorsAndCreate(t *testing.T) {
	f := newFixture(t, catalogue...)

	f.press(t, keyTab)
	require.Equal(t, state.AuthorsList, f.model.State().Page)

	f.press(t, runes("c"), runes("Octavia E. Butler"), keyEnter)
	s := f.model.State()
	assert.Equal(t, state.AuthorsList, s.Page)
	assert.Equal(t, "Created author #3", s.Success)
	assert.Len(t, s.Authors, 3)
}

func TestAuthorDuplicateName(t *testing.T) {
	f := newFixture(t, catalogue...)

	f.press(t, keyTab, runes("c"), runes("FRANK HERBERT"), keyEnter)
	assert.Equal(t, "Author already exists (case-insensitive).", f.model.State().Error)
}

func TestNavigationKeys(t *testing.T) {
	f := newFixture(t, catalogue...)

	f.press(t, runes("3"))
	assert.Equal(t, state.BooksUpdate, f.model.State().Page)
	assert.Contains(t, f.model.View(), "Select exactly one book on the list to update it.")

	f.press(t, keyEsc, runes("4"))
	assert.Equal(t, state.BooksDelete, f.model.State().Page)
	assert.Contains(t, f.model.View(), "No books selected.")

	f.press(t, keyEsc, runes("2"))
	assert.Equal(t, state.BooksCreate, f.model.State().Page)
}

func TestQuitOnlyOutsideForms(t *testing.T) {
	f := newFixture(t, catalogue...)

	_, cmd := f.model.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	f.press(t, runes("c"))
	f.press(t, runes("q"))
	assert.Equal(t, "q", f.model.State().BookCreate.Title)
}

func TestPreferenceToggles(t *testing.T) {
	f := newFixture(t, catalogue...)

	f.press(t, tea.KeyMsg{Type: tea.KeyCtrlG})
	assert.True(t, f.model.State().Debug)
	assert.True(t, f.prefs.Debug())

	reopened, err := prefs.Open(f.prefs.Path())
	require.NoError(t, err)
	assert.True(t, reopened.Debug())

	f.press(t, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.True(t, f.model.Theme().Dark)

	f.press(t, tea.KeyMsg{Type: tea.KeyCtrlB})
	assert.True(t, f.model.State().SidebarCollapsed)
}

func TestLoadFailureKeepsSnapshot(t *testing.T) {
	f := newFixture(t, catalogue...)

	updated, _ := f.model.Update(BooksLoadFailedMsg{Err: &api.Error{Message: "HTTP 502", Status: 502}})
	m := updated.(Model)
	assert.Equal(t, "HTTP 502", m.State().Error)
	assert.Len(t, m.State().Books, 2)
}

func TestHealthFailure(t *testing.T) {
	m := NewModel(Options{Backend: api.New("http://127.0.0.1:1")})
	m = run(t, m, healthCmd(context.Background(), m.backend))
	assert.Equal(t, "error", m.State().Health)
	assert.Contains(t, m.State().HealthPayload, "error")
}
