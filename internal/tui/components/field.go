package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/shelf/internal/theme"
)

// Field wraps an input with its label and an optional hint line.
type Field struct {
	Label   string
	Input   string
	Hint    string
	Focused bool
	Width   int
}

// View renders the label above the boxed input.
func (f Field) View(t theme.Theme) string {
	box := t.Styles.Input
	if f.Focused {
		box = t.Styles.InputFocused
	}
	if f.Width > 0 {
		box = box.Width(f.Width)
	}

	label := t.Styles.Label.Render(f.Label)
	if f.Focused {
		label = t.Styles.Accent.Bold(true).Render("› " + f.Label)
	}

	parts := []string{label, box.Render(f.Input)}
	if f.Hint != "" {
		parts = append(parts, t.Styles.Muted.Render(f.Hint))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Choice renders a one-line option group such as a mode switch, marking
// the active option.
func Choice(t theme.Theme, options []string, active int, focused bool) string {
	rendered := make([]string, 0, len(options))
	for i, opt := range options {
		mark := "( )"
		style := t.Styles.Muted
		if i == active {
			mark = "(•)"
			style = t.Styles.App
			if focused {
				style = t.Styles.Accent.Bold(true)
			}
		}
		rendered = append(rendered, style.Render(mark+" "+opt))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, joinSpaced(rendered, "   ")...)
}

func joinSpaced(items []string, sep string) []string {
	if len(items) < 2 {
		return items
	}
	out := make([]string, 0, len(items)*2-1)
	for i, item := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, item)
	}
	return out
}
