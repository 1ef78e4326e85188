package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/shelf/internal/theme"
)

// HeaderBar is the strip across the top of the screen.
type HeaderBar struct {
	Title   string
	BaseURL string
	Health  string
	Dark    bool
	Debug   bool
	Loading bool
	Spinner string
}

// View renders the header at the given width.
func (h HeaderBar) View(t theme.Theme, width int) string {
	left := t.Styles.Title.Render(h.Title)
	if h.Loading && h.Spinner != "" {
		left += " " + h.Spinner
	}

	right := []string{
		t.Styles.Muted.Render("API ") + t.Styles.Code.Render(h.BaseURL),
		t.Styles.Muted.Render("health ") + healthStyle(t, h.Health).Render(h.Health),
		toggle(t, "dark", h.Dark),
		toggle(t, "debug", h.Debug),
	}
	rightView := lipgloss.JoinHorizontal(lipgloss.Center, joinSpaced(right, "  ")...)

	gap := width - visibleWidth(left) - visibleWidth(rightView)
	if gap < 2 {
		return lipgloss.JoinVertical(lipgloss.Left, left, rightView)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, left, strings.Repeat(" ", gap), rightView)
}

func healthStyle(t theme.Theme, health string) lipgloss.Style {
	switch health {
	case "ok":
		return t.Styles.Success
	case "error":
		return t.Styles.Danger
	default:
		return t.Styles.Warn
	}
}

func toggle(t theme.Theme, label string, on bool) string {
	if on {
		return t.Styles.HeaderButton.BorderForeground(t.Palette.Accent).Render(label + ": on")
	}
	return t.Styles.HeaderButton.Render(label + ": off")
}
