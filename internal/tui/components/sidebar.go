package components

import (
	"strings"

	"github.com/alexisbeaulieu97/shelf/internal/theme"
)

const (
	// SidebarWidth is the width of the expanded sidebar.
	SidebarWidth = 24
	// SidebarCollapsedWidth is the width of the collapsed sidebar.
	SidebarCollapsedWidth = 5
)

// SidebarItem is one navigation entry.
type SidebarItem struct {
	Key    string
	Label  string
	Short  string
	Active bool
}

// SidebarSection groups items under a heading.
type SidebarSection struct {
	Title string
	Short string
	Items []SidebarItem
}

// Sidebar is the navigation column.
type Sidebar struct {
	Sections  []SidebarSection
	Collapsed bool
	Height    int
}

// Width returns the current sidebar width.
func (s Sidebar) Width() int {
	if s.Collapsed {
		return SidebarCollapsedWidth
	}
	return SidebarWidth
}

// View renders the sidebar.
func (s Sidebar) View(t theme.Theme) string {
	inner := s.Width() - t.Styles.Sidebar.GetHorizontalFrameSize()
	var lines []string

	if s.Collapsed {
		lines = append(lines, t.Styles.Title.Render("≡"), "")
	} else {
		lines = append(lines,
			t.Styles.Title.Render("Library"),
			t.Styles.Muted.Render("Books + Authors"),
			"",
		)
	}

	for i, section := range s.Sections {
		if i > 0 {
			lines = append(lines, "")
		}
		title := section.Title
		if s.Collapsed {
			title = section.Short
		}
		lines = append(lines, t.Styles.Muted.Bold(true).Render(title))

		for _, item := range section.Items {
			text := item.Label
			if item.Key != "" {
				text = item.Key + " " + item.Label
			}
			if s.Collapsed {
				text = item.Short
			}
			text = fit(text, inner)
			if item.Active {
				lines = append(lines, t.Styles.SidebarActive.Width(inner).Render(text))
			} else {
				lines = append(lines, t.Styles.SidebarItem.Width(inner).Render(text))
			}
		}
	}

	style := t.Styles.Sidebar.Width(s.Width() - t.Styles.Sidebar.GetHorizontalBorderSize())
	if s.Height > 0 {
		style = style.Height(s.Height - t.Styles.Sidebar.GetVerticalFrameSize())
	}
	return style.Render(strings.Join(lines, "\n"))
}
