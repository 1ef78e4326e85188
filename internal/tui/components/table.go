package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/alexisbeaulieu97/shelf/internal/selection"
	"github.com/alexisbeaulieu97/shelf/internal/sorting"
	"github.com/alexisbeaulieu97/shelf/internal/theme"
)

// Column describes a table column. A zero Width takes the remaining space.
type Column struct {
	Key     string
	Title   string
	Width   int
	SortKey string
}

// Row is one table row.
type Row struct {
	Cells    []string
	Selected bool
}

// Table renders a selectable, sortable list with a checkbox column.
type Table struct {
	Columns []Column
	Rows    []Row
	Cursor  int
	Sort    sorting.Spec
	Header  selection.CheckState
	Width   int
	Height  int
	Offset  int
}

const checkboxWidth = 4

// Checkbox returns the glyph for a check state.
func Checkbox(state selection.CheckState) string {
	switch state {
	case selection.Checked:
		return "[x]"
	case selection.Indeterminate:
		return "[-]"
	default:
		return "[ ]"
	}
}

// VisibleRange returns the half-open row range that fits in Height, keeping
// the cursor on screen.
func (tb Table) VisibleRange() (int, int) {
	n := len(tb.Rows)
	if tb.Height <= 0 || n <= tb.Height {
		return 0, n
	}
	start := min(max(tb.Offset, 0), n-tb.Height)
	if tb.Cursor < start {
		start = tb.Cursor
	}
	if tb.Cursor >= start+tb.Height {
		start = tb.Cursor - tb.Height + 1
	}
	return start, start + tb.Height
}

// View renders the header and visible rows.
func (tb Table) View(t theme.Theme) string {
	widths := tb.columnWidths()

	header := []string{pad(Checkbox(tb.Header), checkboxWidth)}
	for i, col := range tb.Columns {
		title := col.Title
		if col.SortKey != "" && col.SortKey == tb.Sort.Key {
			title += " " + tb.Sort.Direction.Arrow()
		}
		header = append(header, pad(title, widths[i]))
	}
	lines := []string{t.Styles.TableHeader.Render(strings.Join(header, " "))}

	start, end := tb.VisibleRange()
	for i := start; i < end; i++ {
		row := tb.Rows[i]
		state := selection.Unchecked
		if row.Selected {
			state = selection.Checked
		}
		cells := []string{pad(Checkbox(state), checkboxWidth)}
		for c := range tb.Columns {
			value := ""
			if c < len(row.Cells) {
				value = row.Cells[c]
			}
			cells = append(cells, pad(value, widths[c]))
		}
		text := strings.Join(cells, " ")

		switch {
		case i == tb.Cursor:
			lines = append(lines, t.Styles.RowCursor.Render(text))
		case row.Selected:
			lines = append(lines, t.Styles.RowSelected.Render(text))
		default:
			lines = append(lines, t.Styles.Row.Render(text))
		}
	}

	if start > 0 || end < len(tb.Rows) {
		lines = append(lines, t.Styles.Muted.Render(scrollHint(start > 0, end < len(tb.Rows))))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (tb Table) columnWidths() []int {
	widths := make([]int, len(tb.Columns))
	fixed := checkboxWidth
	flexible := 0
	for i, col := range tb.Columns {
		widths[i] = col.Width
		if col.Width == 0 {
			flexible++
		} else {
			fixed += col.Width
		}
		fixed++
	}
	if flexible == 0 {
		return widths
	}
	rest := 16
	if tb.Width > fixed {
		rest = max((tb.Width-fixed)/flexible, 8)
	}
	for i := range widths {
		if widths[i] == 0 {
			widths[i] = rest
		}
	}
	return widths
}

func scrollHint(above, below bool) string {
	var parts []string
	if above {
		parts = append(parts, "▲ more above")
	}
	if below {
		parts = append(parts, "▼ more below")
	}
	return strings.Join(parts, "  ")
}

// pad truncates s to width display cells and right-fills it with spaces.
func pad(s string, width int) string {
	return runewidth.FillRight(fit(s, width), width)
}

func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

func visibleWidth(s string) int {
	return lipgloss.Width(s)
}
