// Package theme resolves the light and dark palettes and the styles derived
// from them. Resolution is pure: the same flag always yields the same Theme.
package theme

import "github.com/charmbracelet/lipgloss"

// Palette is the set of named colours every view draws from.
type Palette struct {
	Bg               lipgloss.Color
	Fg               lipgloss.Color
	Muted            lipgloss.Color
	Border           lipgloss.Color
	Card             lipgloss.Color
	ButtonBg         lipgloss.Color
	ButtonFg         lipgloss.Color
	CodeBg           lipgloss.Color
	SidebarBg        lipgloss.Color
	SidebarItemHover lipgloss.Color
	Accent           lipgloss.Color
	Warn             lipgloss.Color
	Danger           lipgloss.Color
	Success          lipgloss.Color
	RowHover         lipgloss.Color
	RowSelected      lipgloss.Color
}

// Light is the default palette.
func Light() Palette {
	return Palette{
		Bg:               "#ffffff",
		Fg:               "#111827",
		Muted:            "#4b5563",
		Border:           "#e5e7eb",
		Card:             "#ffffff",
		ButtonBg:         "#111827",
		ButtonFg:         "#ffffff",
		CodeBg:           "#f3f4f6",
		SidebarBg:        "#f9fafb",
		SidebarItemHover: "#f3f4f6",
		Accent:           "#2563eb",
		Warn:             "#b45309",
		Danger:           "#e11d48",
		Success:          "#059669",
		RowHover:         "#f9fafb",
		RowSelected:      "#eef2ff",
	}
}

// Dark is the palette used when dark mode is on.
func Dark() Palette {
	return Palette{
		Bg:               "#0b0f14",
		Fg:               "#e6edf3",
		Muted:            "#9aa4af",
		Border:           "#263142",
		Card:             "#111827",
		ButtonBg:         "#1f2937",
		ButtonFg:         "#e6edf3",
		CodeBg:           "#0f172a",
		SidebarBg:        "#0c1220",
		SidebarItemHover: "#111b2d",
		Accent:           "#60a5fa",
		Warn:             "#f59e0b",
		Danger:           "#fb7185",
		Success:          "#34d399",
		RowHover:         "#0f172a",
		RowSelected:      "#111b2d",
	}
}

// Styles are the reusable lipgloss styles built from a Palette.
type Styles struct {
	App   lipgloss.Style
	Title lipgloss.Style
	Muted lipgloss.Style
	Code  lipgloss.Style
	Card  lipgloss.Style

	Sidebar       lipgloss.Style
	SidebarItem   lipgloss.Style
	SidebarActive lipgloss.Style

	Label        lipgloss.Style
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	HeaderButton   lipgloss.Style
	PrimaryButton  lipgloss.Style
	DangerButton   lipgloss.Style
	DisabledButton lipgloss.Style

	TableHeader lipgloss.Style
	Row         lipgloss.Style
	RowCursor   lipgloss.Style
	RowSelected lipgloss.Style

	Badge   lipgloss.Style
	Accent  lipgloss.Style
	Success lipgloss.Style
	Warn    lipgloss.Style
	Danger  lipgloss.Style
}

// Theme bundles a palette with its derived styles.
type Theme struct {
	Dark    bool
	Palette Palette
	Styles  Styles
}

// Resolve returns the theme for the given mode.
func Resolve(dark bool) Theme {
	p := Light()
	if dark {
		p = Dark()
	}
	return Theme{Dark: dark, Palette: p, Styles: newStyles(p)}
}

func newStyles(p Palette) Styles {
	button := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border)

	primary := button.
		Background(p.ButtonBg).
		Foreground(p.ButtonFg).
		Bold(true)

	input := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Foreground(p.Fg)

	return Styles{
		App: lipgloss.NewStyle().
			Foreground(p.Fg),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Fg),
		Muted: lipgloss.NewStyle().
			Foreground(p.Muted),
		Code: lipgloss.NewStyle().
			Background(p.CodeBg).
			Foreground(p.Fg).
			Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),

		Sidebar: lipgloss.NewStyle().
			Background(p.SidebarBg).
			Foreground(p.Fg).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(p.Border).
			Padding(0, 1),
		SidebarItem: lipgloss.NewStyle().
			Foreground(p.Fg),
		SidebarActive: lipgloss.NewStyle().
			Background(p.SidebarItemHover).
			Foreground(p.Accent).
			Bold(true),

		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Fg),
		Input: input,
		InputFocused: input.
			BorderForeground(p.Accent),

		HeaderButton: button.
			Foreground(p.Fg),
		PrimaryButton: primary,
		DangerButton: primary.
			Background(p.Danger).
			BorderForeground(p.Danger),
		DisabledButton: button.
			Foreground(p.Muted).
			Faint(true),

		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Muted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(p.Border),
		Row: lipgloss.NewStyle().
			Foreground(p.Fg),
		RowCursor: lipgloss.NewStyle().
			Background(p.RowHover).
			Foreground(p.Accent).
			Bold(true),
		RowSelected: lipgloss.NewStyle().
			Background(p.RowSelected).
			Foreground(p.Fg),

		Badge: lipgloss.NewStyle().
			Padding(0, 1).
			Background(p.CodeBg).
			Foreground(p.Fg),
		Accent: lipgloss.NewStyle().
			Foreground(p.Accent),
		Success: lipgloss.NewStyle().
			Foreground(p.Success).
			Bold(true),
		Warn: lipgloss.NewStyle().
			Foreground(p.Warn).
			Bold(true),
		Danger: lipgloss.NewStyle().
			Foreground(p.Danger).
			Bold(true),
	}
}
