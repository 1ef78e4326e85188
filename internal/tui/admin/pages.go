package admin

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/shelf/internal/domain"
	"github.com/alexisbeaulieu97/shelf/internal/selection"
	"github.com/alexisbeaulieu97/shelf/internal/sorting"
	"github.com/alexisbeaulieu97/shelf/internal/state"
	"github.com/alexisbeaulieu97/shelf/internal/tui/components"
)

// Rows reserved for the header, title, banner and footer around a table.
const chromeHeight = 14

var (
	bookColumns = []components.Column{
		{Key: sorting.ColumnID, Title: "ID", Width: 6, SortKey: sorting.ColumnID},
		{Key: sorting.ColumnTitle, Title: "Title", SortKey: sorting.ColumnTitle},
		{Key: sorting.ColumnAuthor, Title: "Author", SortKey: sorting.ColumnAuthor},
	}
	authorColumns = []components.Column{
		{Key: sorting.ColumnID, Title: "ID", Width: 6, SortKey: sorting.ColumnID},
		{Key: sorting.ColumnName, Title: "Name", SortKey: sorting.ColumnName},
	}
)

func bookRows(books []domain.Book, sel selection.Set) []components.Row {
	rows := make([]components.Row, 0, len(books))
	for _, b := range books {
		rows = append(rows, components.Row{
			Cells:    []string{strconv.FormatInt(int64(b.ID), 10), b.Title, b.Author},
			Selected: sel.Has(b.ID),
		})
	}
	return rows
}

func authorRows(authors []domain.Author, sel selection.Set) []components.Row {
	rows := make([]components.Row, 0, len(authors))
	for _, a := range authors {
		rows = append(rows, components.Row{
			Cells:    []string{strconv.FormatInt(int64(a.ID), 10), a.Name},
			Selected: sel.Has(a.ID),
		})
	}
	return rows
}

// renderList renders a list page
func (m Model) renderList(width int) string {
	t := m.theme
	kind := m.state.Page.Kind()
	sel := m.state.Selection(kind)
	noun := kind.Plural()

	table := components.Table{
		Cursor: m.cursor(kind),
		Width:  width,
		Height: max(m.height-chromeHeight, 3),
	}
	var ids []domain.ID
	if kind == domain.KindAuthor {
		visible := m.state.VisibleAuthors()
		ids = domain.IDs(visible)
		table.Columns = authorColumns
		table.Rows = authorRows(visible, sel)
		table.Sort = m.state.AuthorSort
	} else {
		visible := m.state.VisibleBooks()
		ids = domain.IDs(visible)
		table.Columns = bookColumns
		table.Rows = bookRows(visible, sel)
		table.Sort = m.state.BookSort
	}
	table.Header = sel.HeaderState(ids)

	if len(ids) == 0 {
		if m.state.Loading(kind) {
			return m.spinner.View() + " " + t.Styles.Muted.Render(fmt.Sprintf("Loading %s...", noun))
		}
		return t.Styles.Muted.Render(fmt.Sprintf("No %s yet.", noun))
	}

	status := fmt.Sprintf("%d %s · %d selected", len(ids), noun, sel.Len())
	if m.state.Loading(kind) {
		status += " " + m.spinner.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		t.Styles.Muted.Render(status),
		table.View(t),
	)
}

// renderBookForm renders the create and update book pages
func (m Model) renderBookForm(width int) string {
	t := m.theme
	inputWidth := min(max(width-8, 20), 60)
	update := m.state.Page == state.BooksUpdate

	var lead string
	if update {
		book, ok := m.state.SelectedBook()
		if !ok {
			return m.renderNoSelection(domain.KindBook)
		}
		lead = t.Styles.Muted.Render(fmt.Sprintf("Editing book #%d", book.ID))
	}

	form := m.bookForm()
	authors := m.state.Authors

	parts := []string{}
	if lead != "" {
		parts = append(parts, lead)
	}
	parts = append(parts, components.Field{
		Label:   "Title",
		Input:   m.titleInput.View(),
		Focused: m.focus == fieldTitle,
		Width:   inputWidth,
	}.View(t))

	modeHint := ""
	if len(authors) == 0 {
		modeHint = "No authors yet. A new one will be created."
	}
	mode := 0
	if form.Picker.Mode == state.ModeNew {
		mode = 1
	}
	modeView := lipgloss.JoinVertical(lipgloss.Left,
		t.Styles.Label.Render("Author"),
		components.Choice(t, []string{"Select existing", "Create new"}, mode, m.focus == fieldMode),
	)
	if modeHint != "" {
		modeView = lipgloss.JoinVertical(lipgloss.Left, modeView, t.Styles.Muted.Render(modeHint))
	}
	parts = append(parts, modeView)

	if form.Picker.Mode == state.ModeSelect {
		parts = append(parts, components.Field{
			Label:   "Existing author",
			Input:   dropdown(form.Picker, authors),
			Hint:    "←/→ to choose",
			Focused: m.focus == fieldAuthor,
			Width:   inputWidth,
		}.View(t))
	} else {
		parts = append(parts, components.Field{
			Label:   "New author name",
			Input:   m.newAuthor.View(),
			Hint:    "Created automatically if it does not exist",
			Focused: m.focus == fieldAuthor,
			Width:   inputWidth,
		}.View(t))
	}

	submit := "Create"
	if update {
		submit = "Save"
	}
	parts = append(parts, buttons(t.Styles.PrimaryButton.Render(submit), t.Styles.HeaderButton.Render("Reset")))
	return lipgloss.JoinVertical(lipgloss.Left, joinSections(parts)...)
}

func dropdown(picker state.AuthorPicker, authors []domain.Author) string {
	sorted := state.SortedAuthors(authors)
	for i, a := range sorted {
		if a.ID == picker.SelectedID {
			return fmt.Sprintf("‹ %s › (%d/%d)", a.Name, i+1, len(sorted))
		}
	}
	return "‹ none ›"
}

// renderAuthorForm renders the create and update author pages
func (m Model) renderAuthorForm(width int) string {
	t := m.theme
	inputWidth := min(max(width-8, 20), 60)
	update := m.state.Page == state.AuthorsUpdate

	parts := []string{}
	submit := "Create"
	if update {
		author, ok := m.state.SelectedAuthor()
		if !ok {
			return m.renderNoSelection(domain.KindAuthor)
		}
		parts = append(parts, t.Styles.Muted.Render(fmt.Sprintf("Editing author #%d", author.ID)))
		submit = "Save"
	}

	parts = append(parts,
		components.Field{
			Label:   "Name",
			Input:   m.nameInput.View(),
			Focused: true,
			Width:   inputWidth,
		}.View(t),
		buttons(t.Styles.PrimaryButton.Render(submit), t.Styles.HeaderButton.Render("Reset")),
	)
	return lipgloss.JoinVertical(lipgloss.Left, joinSections(parts)...)
}

func (m Model) renderNoSelection(kind domain.Kind) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Styles.Warn.Render(fmt.Sprintf("Select exactly one %s on the list to update it.", kind)),
		m.theme.Styles.Muted.Render("Press esc to go back to the list."),
	)
}

// renderDelete renders the delete confirmation pages
func (m Model) renderDelete(width int) string {
	t := m.theme
	kind := m.state.Page.Kind()
	deleting := m.state.Deleting(kind)

	table := components.Table{Cursor: -1, Width: width, Header: selection.Checked}
	var count int
	if kind == domain.KindAuthor {
		selected := m.state.SelectedAuthors()
		count = len(selected)
		table.Columns = authorColumns
		table.Rows = authorRows(selected, m.state.AuthorSelection)
	} else {
		selected := m.state.SelectedBooks()
		count = len(selected)
		table.Columns = bookColumns
		table.Rows = bookRows(selected, m.state.BookSelection)
	}

	if count == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			t.Styles.Warn.Render(fmt.Sprintf("No %s selected.", kind.Plural())),
			t.Styles.Muted.Render("Press esc to go back to the list."),
		)
	}

	confirm := t.Styles.DangerButton.Render(fmt.Sprintf("Confirm delete (%d)", count))
	if deleting {
		confirm = t.Styles.DisabledButton.Render("Deleting...") + " " + m.spinner.View()
	}
	cancel := t.Styles.HeaderButton.Render("Cancel")
	if deleting {
		cancel = t.Styles.DisabledButton.Render("Cancel")
	}

	return lipgloss.JoinVertical(lipgloss.Left, joinSections([]string{
		t.Styles.Muted.Render(fmt.Sprintf("The following %s will be deleted:", kind.Plural())),
		table.View(t),
		t.Styles.Danger.Render("Deleting is permanent."),
		buttons(confirm, cancel),
	})...)
}

func buttons(items ...string) string {
	return lipgloss.JoinHorizontal(lipgloss.Center, joinWith(items, "  ")...)
}

func joinWith(items []string, sep string) []string {
	out := make([]string, 0, len(items)*2)
	for i, item := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, item)
	}
	return out
}
