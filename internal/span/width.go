package span

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Metrics measures text in terminal display columns.
type Metrics struct {
	// Width returns the display width of s.
	Width func(s string) int
	// Truncate returns the longest prefix of s no wider than width.
	Truncate func(s string, width int) string
}

var DefaultMetrics = Metrics{
	Width:    DisplayWidth,
	Truncate: TruncateToWidth,
}

// DisplayWidth sums the column widths of the grapheme clusters in s.
func DisplayWidth(s string) int {
	if isASCIIPrintable(s) {
		return len(s)
	}
	w := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w += runewidth.StringWidth(g.Str())
	}
	return w
}

// TruncateToWidth never splits a grapheme cluster.
func TruncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if isASCIIPrintable(s) {
		if len(s) <= width {
			return s
		}
		return s[:width]
	}

	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := runewidth.StringWidth(g.Str())
		if used+w > width {
			from, _ := g.Positions()
			return s[:from]
		}
		used += w
	}
	return s
}

func TotalWidth(fragments []Fragment) int {
	return DefaultMetrics.totalWidth(fragments)
}

func (m Metrics) totalWidth(fragments []Fragment) int {
	total := 0
	for _, f := range fragments {
		total = satAdd(total, m.Width(f.Content))
	}
	return total
}

func isASCIIPrintable(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] >= 0x7f {
			return false
		}
	}
	return true
}
