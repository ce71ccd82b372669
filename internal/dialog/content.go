package dialog

import (
	"strings"

	"matchline/internal/span"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
)

// Markdown renders markdown source with glamour.
type Markdown struct {
	Source string
	// Style is a glamour standard style name; empty means "dark".
	Style string
}

func (m Markdown) Render(width int, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	styleName := m.Style
	if styleName == "" {
		styleName = "dark"
	}

	text := m.Source
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styleName),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if out, err := r.Render(m.Source); err == nil {
			text = strings.Trim(out, "\n")
		}
	}
	return clip(strings.Split(text, "\n"), width, height)
}

// Lines shows pre-built fragment rows, each cut to the box width.
type Lines struct {
	Rows     [][]span.Fragment
	Ellipsis span.Fragment
}

func (l Lines) Render(width int, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	out := make([]string, 0, min(height, len(l.Rows)))
	for _, row := range l.Rows {
		if len(out) >= height {
			break
		}
		out = append(out, span.Render(span.TruncateByWidth(row, width, l.Ellipsis)))
	}
	return strings.Join(out, "\n")
}

func clip(lines []string, width int, height int) string {
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		if ansi.StringWidth(line) > width {
			lines[i] = ansi.Truncate(line, width, "")
		}
	}
	return strings.Join(lines, "\n")
}
