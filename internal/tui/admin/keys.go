package admin

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/alexisbeaulieu97/shelf/internal/domain"
	"github.com/alexisbeaulieu97/shelf/internal/state"
)

type keyMap struct {
	// Global
	Quit      key.Binding
	ForceQuit key.Binding
	Dark      key.Binding
	Debug     key.Binding
	Sidebar   key.Binding
	Health    key.Binding
	Nav       key.Binding

	// Lists
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	ToggleAll key.Binding
	Clear     key.Binding
	Create    key.Binding
	Update    key.Binding
	Delete    key.Binding
	Reload    key.Binding
	Switch    key.Binding
	SortID    key.Binding
	SortTitle key.Binding
	SortBy    key.Binding
	SortName  key.Binding

	// Forms
	NextField key.Binding
	PrevField key.Binding
	Left      key.Binding
	Right     key.Binding
	Submit    key.Binding
	Reset     key.Binding
	Back      key.Binding

	// Delete pages
	Confirm key.Binding
	Cancel  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Dark:      key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "dark")),
		Debug:     key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "debug")),
		Sidebar:   key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "sidebar")),
		Health:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "health")),
		Nav:       key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "pages")),

		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "space", "enter"), key.WithHelp("space", "select")),
		ToggleAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all")),
		Clear:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear")),
		Create:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "create")),
		Update:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "update")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Switch:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "books/authors")),
		SortID:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "sort id")),
		SortTitle: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "sort title")),
		SortBy:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "sort author")),
		SortName:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "sort name")),

		NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Reset:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),

		Confirm: key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n/esc", "cancel")),
	}
}

// footer returns the bindings hinted on the given page. Update and delete
// hints only appear when the selection allows them, reload only while the
// list is idle.
func (k keyMap) footer(s state.State) []key.Binding {
	page := s.Page
	switch page.Action() {
	case state.ActionList:
		selected := s.Selection(page.Kind()).Len()
		update, del, reload := k.Update, k.Delete, k.Reload
		update.SetEnabled(selected == 1)
		del.SetEnabled(selected >= 1)
		reload.SetEnabled(!s.Loading(page.Kind()))

		// Actions lead so narrow footers truncate sort hints first.
		bindings := []key.Binding{k.Toggle, update, del, k.Create, reload, k.ToggleAll, k.Clear, k.SortID}
		if page.Kind() == domain.KindAuthor {
			bindings = append(bindings, k.SortName)
		} else {
			bindings = append(bindings, k.SortTitle, k.SortBy)
		}
		return append(bindings, k.Switch, k.Quit)
	case state.ActionDelete:
		confirm := k.Confirm
		confirm.SetEnabled(!s.Deleting(page.Kind()) && !s.Selection(page.Kind()).IsEmpty())
		return []key.Binding{confirm, k.Cancel}
	default:
		if page.Kind() == domain.KindBook {
			return []key.Binding{k.NextField, k.Left, k.Right, k.Submit, k.Reset, k.Back}
		}
		return []key.Binding{k.Submit, k.Reset, k.Back}
	}
}

// global returns the bindings available on every page.
func (k keyMap) global() []key.Binding {
	return []key.Binding{k.Nav, k.Dark, k.Debug, k.Sidebar, k.Health, k.ForceQuit}
}
