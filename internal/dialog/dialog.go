package dialog

import (
	"strings"

	"matchline/internal/layout"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Content is anything that can draw itself into a width x height cell box.
type Content interface {
	Render(width int, height int) string
}

// Dialog is a box drawn over an existing view. Margin is cleared around
// the content area with the background colour.
type Dialog struct {
	Content    Content
	Margin     layout.Margin
	Background string
}

// Paint returns view with the dialog drawn so that its content occupies area.
func (d Dialog) Paint(view string, area layout.Rect) string {
	if area.Empty() {
		return view
	}
	outer := area.Outset(d.Margin)

	body := ""
	if d.Content != nil {
		body = d.Content.Render(area.Width, area.Height)
	}

	box := lipgloss.NewStyle().
		Padding(d.Margin.Vertical, d.Margin.Horizontal).
		Width(outer.Width).
		Height(outer.Height).
		MaxWidth(outer.Width).
		MaxHeight(outer.Height)
	if d.Background != "" {
		box = box.Background(lipgloss.Color(d.Background))
	}

	return Splice(view, strings.Split(box.Render(body), "\n"), outer.X, outer.Y)
}

// Splice replaces the region of view starting at column x, row y with
// overlay lines. Escape sequences on both sides of the region are kept.
func Splice(view string, overlay []string, x int, y int) string {
	if len(overlay) == 0 {
		return view
	}
	x = max(x, 0)
	y = max(y, 0)

	lines := strings.Split(view, "\n")
	for len(lines) < y+len(overlay) {
		lines = append(lines, "")
	}

	for i, over := range overlay {
		row := y + i
		line := lines[row]
		lineW := ansi.StringWidth(line)
		overW := ansi.StringWidth(over)

		var b strings.Builder
		if lineW < x {
			b.WriteString(line)
			b.WriteString(strings.Repeat(" ", x-lineW))
		} else if x > 0 {
			b.WriteString(ansi.Truncate(line, x, ""))
		}
		b.WriteString("\x1b[0m")
		b.WriteString(over)
		b.WriteString("\x1b[0m")
		if end := x + overW; end < lineW {
			b.WriteString(ansi.TruncateLeft(line, end, ""))
		}
		lines[row] = b.String()
	}

	return strings.Join(lines, "\n")
}
