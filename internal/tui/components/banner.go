package components

import (
	"github.com/alexisbeaulieu97/shelf/internal/theme"
)

// Banner shows the page-level outcome message. An error wins over a
// success; with neither it renders nothing.
type Banner struct {
	Error   string
	Success string
}

// View renders the banner.
func (b Banner) View(t theme.Theme) string {
	switch {
	case b.Error != "":
		return t.Styles.Danger.Render("✗ " + b.Error)
	case b.Success != "":
		return t.Styles.Success.Render("✓ " + b.Success)
	default:
		return ""
	}
}
