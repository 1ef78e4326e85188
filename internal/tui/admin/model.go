// Package admin is the bubbletea program that drives the books and authors
// administration screens. All state transitions go through internal/state;
// this package owns widgets, key handling and effect execution.
package admin

import (
	"context"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/shelf/internal/domain"
	"github.com/alexisbeaulieu97/shelf/internal/logger"
	"github.com/alexisbeaulieu97/shelf/internal/state"
	"github.com/alexisbeaulieu97/shelf/internal/theme"
)

// Form field positions on book pages.
const (
	fieldTitle = iota
	fieldMode
	fieldAuthor
	bookFieldCount
)

// Options configures a Model.
type Options struct {
	Backend Backend
	Prefs   Preferences
	Logger  *logger.Logger
	BaseURL string
	Debug   bool
	Context context.Context
}

// Model is the admin program model
type Model struct {
	state   state.State
	theme   theme.Theme
	backend Backend
	prefs   Preferences
	log     *logger.Logger
	ctx     context.Context
	baseURL string

	// Widgets
	keys       keyMap
	help       help.Model
	spinner    spinner.Model
	titleInput textinput.Model
	newAuthor  textinput.Model
	nameInput  textinput.Model
	focus      int

	// List cursors
	bookCursor   int
	authorCursor int

	// Page the widgets were last synced for
	syncedPage state.Page

	// Effects of the initial state, run by Init
	initial []state.Effect

	// Dimensions
	width  int
	height int
}

// NewModel creates a new admin model
func NewModel(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := Model{
		state:      state.New(opts.Debug),
		theme:      theme.Resolve(false),
		backend:    opts.Backend,
		prefs:      opts.Prefs,
		log:        log,
		ctx:        ctx,
		baseURL:    opts.BaseURL,
		keys:       defaultKeyMap(),
		help:       help.New(),
		spinner:    s,
		titleInput: newInput("Book title"),
		newAuthor:  newInput("Author name"),
		nameInput:  newInput("Author name"),
		width:      80,
		height:     24,
	}
	m.log.SetVerbose(opts.Debug)
	m.applyTheme()
	m.state, m.initial = m.state.Init()
	m.syncWidgets()
	return m
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 255
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// Init issues the initial loads and starts the spinner
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runEffects(m.initial))
}

// State returns the current application state.
func (m Model) State() state.State {
	return m.state
}

// Theme returns the resolved theme.
func (m Model) Theme() theme.Theme {
	return m.theme
}

// apply installs a reducer result and schedules its effects.
func (m Model) apply(next state.State, effects []state.Effect) (Model, tea.Cmd) {
	m.install(next)
	return m, m.runEffects(effects)
}

// install replaces the state and keeps dependent pieces in line with it.
func (m *Model) install(next state.State) {
	if next.Debug != m.state.Debug {
		m.log.SetVerbose(next.Debug)
	}
	if next.Dark != m.theme.Dark {
		m.theme = theme.Resolve(next.Dark)
		m.applyTheme()
	}
	m.state = next
	m.clampCursors()
	m.syncWidgets()
}

// applyTheme restyles the bubbles widgets from the current theme.
func (m *Model) applyTheme() {
	styles := m.theme.Styles
	m.help.Styles.ShortKey = styles.Accent
	m.help.Styles.ShortDesc = styles.Muted
	m.help.Styles.ShortSeparator = styles.Muted
	m.help.Styles.Ellipsis = styles.Muted
	m.spinner.Style = styles.Accent
	for _, ti := range []*textinput.Model{&m.titleInput, &m.newAuthor, &m.nameInput} {
		ti.TextStyle = styles.App
		ti.PlaceholderStyle = styles.Muted
	}
}

// Cursors

func (m *Model) clampCursors() {
	m.bookCursor = clamp(m.bookCursor, len(m.state.Books))
	m.authorCursor = clamp(m.authorCursor, len(m.state.Authors))
}

func clamp(cursor, n int) int {
	if n == 0 {
		return 0
	}
	return min(max(cursor, 0), n-1)
}

func (m Model) cursor(kind domain.Kind) int {
	if kind == domain.KindAuthor {
		return m.authorCursor
	}
	return m.bookCursor
}

func (m *Model) moveCursor(kind domain.Kind, delta int) {
	if kind == domain.KindAuthor {
		m.authorCursor = clamp(m.authorCursor+delta, len(m.state.Authors))
		return
	}
	m.bookCursor = clamp(m.bookCursor+delta, len(m.state.Books))
}

// cursorID returns the id of the visible row under the cursor.
func (m Model) cursorID(kind domain.Kind) (domain.ID, bool) {
	var ids []domain.ID
	if kind == domain.KindAuthor {
		ids = domain.IDs(m.state.VisibleAuthors())
	} else {
		ids = domain.IDs(m.state.VisibleBooks())
	}
	c := m.cursor(kind)
	if c < 0 || c >= len(ids) {
		return 0, false
	}
	return ids[c], true
}

// Forms

func (m Model) bookForm() state.BookForm {
	if m.state.Page == state.BooksUpdate {
		return m.state.BookUpdate
	}
	return m.state.BookCreate
}

func (m Model) withBookForm(form state.BookForm) state.State {
	if m.state.Page == state.BooksUpdate {
		return m.state.SetBookUpdateForm(form)
	}
	return m.state.SetBookCreateForm(form)
}

func (m Model) authorName() string {
	if m.state.Page == state.AuthorsUpdate {
		return m.state.AuthorUpdate.Name
	}
	return m.state.AuthorCreate.Name
}

func (m Model) withAuthorName(name string) state.State {
	if m.state.Page == state.AuthorsUpdate {
		return m.state.SetAuthorUpdateName(name)
	}
	return m.state.SetAuthorCreateName(name)
}

// syncWidgets copies form buffers into the text inputs and resets focus
// when the page changed.
func (m *Model) syncWidgets() {
	if m.state.Page != m.syncedPage {
		m.syncedPage = m.state.Page
		m.focus = fieldTitle
	}

	switch m.state.Page.Kind() {
	case domain.KindBook:
		form := m.bookForm()
		setValue(&m.titleInput, form.Title)
		setValue(&m.newAuthor, form.Picker.NewName)
	case domain.KindAuthor:
		setValue(&m.nameInput, m.authorName())
	}
	m.applyFocus()
}

func setValue(ti *textinput.Model, value string) {
	if ti.Value() != value {
		ti.SetValue(value)
	}
}

func (m *Model) applyFocus() {
	m.titleInput.Blur()
	m.newAuthor.Blur()
	m.nameInput.Blur()
	if !m.state.Page.IsForm() {
		return
	}
	if m.state.Page.Kind() == domain.KindAuthor {
		m.nameInput.Focus()
		return
	}
	switch m.focus {
	case fieldTitle:
		m.titleInput.Focus()
	case fieldAuthor:
		if m.bookForm().Picker.Mode == state.ModeNew {
			m.newAuthor.Focus()
		}
	}
}
