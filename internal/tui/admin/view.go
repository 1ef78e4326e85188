package admin

import (
	"encoding/json"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/shelf/internal/domain"
	"github.com/alexisbeaulieu97/shelf/internal/state"
	"github.com/alexisbeaulieu97/shelf/internal/tui/components"
)

const appTitle = "Shelf Admin"

// View renders the current model state
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	header := m.renderHeader()
	sidebar := m.sidebar()
	mainWidth := max(m.width-sidebar.Width()-1, 20)
	contentWidth := mainWidth - 2

	sections := []string{
		m.theme.Styles.Title.Render(m.state.Page.Title()),
	}
	if banner := (components.Banner{Error: m.state.Error, Success: m.state.Success}).View(m.theme); banner != "" {
		sections = append(sections, banner)
	}
	sections = append(sections, m.renderPage(contentWidth))
	if m.state.Debug {
		sections = append(sections, m.renderDebugPanel(contentWidth))
	}
	sections = append(sections, m.renderFooter(contentWidth))

	main := lipgloss.NewStyle().
		Width(mainWidth).
		PaddingLeft(1).
		Render(lipgloss.JoinVertical(lipgloss.Left, joinSections(sections)...))

	bodyHeight := max(m.height-lipgloss.Height(header), lipgloss.Height(main))
	sidebar.Height = bodyHeight
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar.View(m.theme), main)

	return m.theme.Styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, header, body))
}

func joinSections(sections []string) []string {
	out := make([]string, 0, len(sections)*2)
	for i, s := range sections {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, s)
	}
	return out
}

// renderHeader renders the title strip with health and toggles
func (m Model) renderHeader() string {
	bar := components.HeaderBar{
		Title:   appTitle,
		BaseURL: m.baseURL,
		Health:  m.state.Health,
		Dark:    m.state.Dark,
		Debug:   m.state.Debug,
		Loading: m.state.BooksLoading || m.state.AuthorsLoading,
		Spinner: m.spinner.View(),
	}
	return bar.View(m.theme, m.width)
}

// sidebar builds the navigation column for the current page
func (m Model) sidebar() components.Sidebar {
	current := m.state.Page
	section := func(kind domain.Kind) components.SidebarSection {
		title := kind.Label() + "s"
		sec := components.SidebarSection{Title: title, Short: title[:1]}
		for i, action := range []state.Action{state.ActionList, state.ActionCreate, state.ActionUpdate, state.ActionDelete} {
			page := state.PageFor(kind, action)
			label := actionLabel(action)
			item := components.SidebarItem{
				Label:  label,
				Short:  label[:1],
				Active: page == current,
			}
			if kind == current.Kind() {
				item.Key = string(rune('1' + i))
			}
			sec.Items = append(sec.Items, item)
		}
		return sec
	}

	return components.Sidebar{
		Sections: []components.SidebarSection{
			section(domain.KindBook),
			section(domain.KindAuthor),
		},
		Collapsed: m.state.SidebarCollapsed,
	}
}

func actionLabel(action state.Action) string {
	switch action {
	case state.ActionCreate:
		return "Create"
	case state.ActionUpdate:
		return "Update"
	case state.ActionDelete:
		return "Delete"
	default:
		return "List"
	}
}

// renderPage renders the body of the current page
func (m Model) renderPage(width int) string {
	page := m.state.Page
	switch page.Action() {
	case state.ActionCreate, state.ActionUpdate:
		if page.Kind() == domain.KindAuthor {
			return m.renderAuthorForm(width)
		}
		return m.renderBookForm(width)
	case state.ActionDelete:
		return m.renderDelete(width)
	default:
		return m.renderList(width)
	}
}

// renderDebugPanel renders the state badges and the last health payload
func (m Model) renderDebugPanel(width int) string {
	t := m.theme
	inner := max(width-t.Styles.Card.GetHorizontalFrameSize(), 10)
	badges := components.BadgeRow(t, inner,
		components.Badge(t, "page", m.state.Page),
		components.Badge(t, "dark", m.state.Dark),
		components.Badge(t, "sidebarCollapsed", m.state.SidebarCollapsed),
		components.Badge(t, "sidebarWidth", m.sidebar().Width()),
		components.Badge(t, "booksCount", len(m.state.Books)),
		components.Badge(t, "authorsCount", len(m.state.Authors)),
		components.Badge(t, "bookSelected", m.state.BookSelection.Len()),
		components.Badge(t, "authorSelected", m.state.AuthorSelection.Len()),
	)

	payload := "null"
	if m.state.HealthPayload != nil {
		if encoded, err := json.MarshalIndent(m.state.HealthPayload, "", "  "); err == nil {
			payload = string(encoded)
		}
	}

	return t.Styles.Card.Width(inner + t.Styles.Card.GetHorizontalPadding()).Render(lipgloss.JoinVertical(lipgloss.Left,
		t.Styles.Label.Render("Debug"),
		badges,
		t.Styles.Muted.Render("/health"),
		t.Styles.Code.Render(payload),
	))
}

// renderFooter renders the key hints
func (m Model) renderFooter(width int) string {
	h := m.help
	h.Width = width
	lines := []string{
		h.ShortHelpView(m.keys.footer(m.state)),
		h.ShortHelpView(m.keys.global()),
	}
	return strings.Join(lines, "\n")
}
