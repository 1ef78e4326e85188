package components

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/shelf/internal/theme"
)

// Badge renders a compact key=value pill.
func Badge(t theme.Theme, key string, value any) string {
	return t.Styles.Badge.Render(fmt.Sprintf("%s=%v", key, value))
}

// BadgeRow renders badges separated by a space, wrapping to new lines once
// width is exceeded. A width of zero never wraps.
func BadgeRow(t theme.Theme, width int, badges ...string) string {
	var (
		lines   []string
		current []string
		used    int
	)
	for _, b := range badges {
		w := visibleWidth(b)
		if width > 0 && used > 0 && used+1+w > width {
			lines = append(lines, strings.Join(current, " "))
			current, used = nil, 0
		}
		if used > 0 {
			used++
		}
		current = append(current, b)
		used += w
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return strings.Join(lines, "\n")
}
