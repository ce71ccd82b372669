package span

import (
	"math"
	"strings"

	"matchline/internal/style"
)

// Fragment is a contiguous piece of text carrying one style. An ordered
// slice of fragments is one logical line.
type Fragment struct {
	Content string
	Style   style.Style
}

// Plain wraps text in a single unstyled fragment, or nil for "".
func Plain(text string) []Fragment {
	if text == "" {
		return nil
	}
	return []Fragment{{Content: text}}
}

// Styled returns one fragment of text drawn in st.
func Styled(text string, st style.Style) Fragment {
	return Fragment{Content: text, Style: st}
}

// TotalLength is the byte length of the concatenated contents.
func TotalLength(fragments []Fragment) int {
	total := 0
	for _, f := range fragments {
		total = satAdd(total, len(f.Content))
	}
	return total
}

// Concat joins the contents, dropping styles.
func Concat(fragments []Fragment) string {
	var b strings.Builder
	b.Grow(TotalLength(fragments))
	for _, f := range fragments {
		b.WriteString(f.Content)
	}
	return b.String()
}

// Render draws the fragments with their styles.
func Render(fragments []Fragment) string {
	var b strings.Builder
	for _, f := range fragments {
		if f.Content == "" {
			continue
		}
		b.WriteString(f.Style.Render(f.Content))
	}
	return b.String()
}

func satAdd(a int, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func satSub(a int, b int) int {
	if b >= a {
		return 0
	}
	return a - b
}
