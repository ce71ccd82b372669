package main

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"matchline/internal/style"
	"matchline/internal/syntax"

	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

type ThemePalette struct {
	Name        string
	Text        string
	Background  string
	InputBG     string
	SelectionBG string
	Muted       string
	Dim         string
	PathDir     string
	PathFile    string
	PathMeta    string
	Header      string
	Accent      string
	Keyword     string
	Type        string
	Function    string
	String      string
	Number      string
	Comment     string
	Operator    string
	Error       string
}

var appTheme = mustDefaultTheme()

func SetTheme(name string) error {
	palette, err := LoadThemePalette(name)
	if err != nil {
		return err
	}
	appTheme = palette
	return nil
}

func LoadThemePalette(name string) (ThemePalette, error) {
	requested := strings.TrimSpace(name)
	if requested == "" {
		requested = "nord"
	}

	lookup := normalizeThemeName(requested)
	names := styles.Names()
	if !slices.Contains(names, lookup) {
		sort.Strings(names)
		return ThemePalette{}, fmt.Errorf("unknown theme %q. try one of: %s", requested, strings.Join(topThemeHints(names), ", "))
	}
	cs := styles.Get(lookup)

	baseBG := pickBackground(cs, "#2E3440", chroma.Background, chroma.LineHighlight)
	baseFG := pickForeground(cs, "#D8DEE9", chroma.Text, chroma.Background)
	comment := pickForeground(cs, adjustTone(baseFG, -60), chroma.Comment)

	return ThemePalette{
		Name:        lookup,
		Text:        baseFG,
		Background:  baseBG,
		InputBG:     adjustTone(baseBG, autoDelta(baseBG, 12, -12)),
		SelectionBG: pickBackground(cs, autoSelection(baseBG), chroma.LineHighlight),
		Muted:       pickForeground(cs, adjustTone(baseFG, -48), chroma.LineNumbers, chroma.Comment),
		Dim:         pickForeground(cs, adjustTone(comment, -10), chroma.Comment),
		PathDir:     pickForeground(cs, comment, chroma.Comment),
		PathFile:    pickForeground(cs, adjustTone(baseFG, -30), chroma.Name, chroma.NameNamespace),
		PathMeta:    pickForeground(cs, adjustTone(baseFG, -40), chroma.Comment, chroma.Text),
		Header:      pickForeground(cs, adjustTone(baseFG, -20), chroma.NameClass, chroma.Keyword),
		Accent:      pickForeground(cs, baseFG, chroma.NameFunction, chroma.Keyword),
		Keyword:     pickForeground(cs, baseFG, chroma.Keyword),
		Type:        pickForeground(cs, baseFG, chroma.KeywordType, chroma.NameClass),
		Function:    pickForeground(cs, baseFG, chroma.NameFunction, chroma.Name),
		String:      pickForeground(cs, baseFG, chroma.LiteralString),
		Number:      pickForeground(cs, baseFG, chroma.LiteralNumber),
		Comment:     comment,
		Operator:    pickForeground(cs, baseFG, chroma.Operator),
		Error:       pickForeground(cs, "#BF616A", chroma.Error),
	}, nil
}

// Token is the style of a syntax category. Operators are drawn faint and
// errors bold.
func (p ThemePalette) Token(cat syntax.Category) style.Style {
	st := style.New().Fg(p.Text)
	switch cat {
	case syntax.Keyword:
		return st.Fg(p.Keyword)
	case syntax.Type:
		return st.Fg(p.Type)
	case syntax.Function:
		return st.Fg(p.Function)
	case syntax.String:
		return st.Fg(p.String)
	case syntax.Number:
		return st.Fg(p.Number)
	case syntax.Comment:
		return st.Fg(p.Comment)
	case syntax.Operator:
		return st.Fg(p.Operator).AddModifier(style.Faint)
	case syntax.Error:
		return st.Fg(p.Error).AddModifier(style.Bold)
	default:
		return st
	}
}

func normalizeThemeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "solarized":
		return "solarized-dark"
	case "one-dark":
		return "onedark"
	default:
		return n
	}
}

func pickForeground(cs *chroma.Style, fallback string, types ...chroma.TokenType) string {
	for _, tt := range types {
		entry := cs.Get(tt)
		if entry.Colour.IsSet() {
			return entry.Colour.String()
		}
	}
	return fallback
}

func pickBackground(cs *chroma.Style, fallback string, types ...chroma.TokenType) string {
	for _, tt := range types {
		entry := cs.Get(tt)
		if entry.Background.IsSet() {
			return entry.Background.String()
		}
	}
	return fallback
}

func topThemeHints(all []string) []string {
	wanted := []string{"nord", "dracula", "monokai", "github", "github-dark", "solarized-dark", "solarized-light", "gruvbox", "onedark"}
	set := map[string]bool{}
	for _, n := range all {
		set[n] = true
	}
	out := make([]string, 0, len(wanted))
	for _, name := range wanted {
		if set[name] {
			out = append(out, name)
		}
	}
	if len(out) == 0 {
		limit := min(8, len(all))
		return all[:limit]
	}
	return out
}

func autoSelection(bg string) string {
	return adjustTone(bg, autoDelta(bg, 18, -18))
}

func autoDelta(bg string, darkDelta int, lightDelta int) int {
	r, g, b, ok := parseHexRGB(bg)
	if !ok {
		return darkDelta
	}
	l := 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
	if l < 128 {
		return darkDelta
	}
	return lightDelta
}

func adjustTone(hex string, delta int) string {
	r, g, b, ok := parseHexRGB(hex)
	if !ok {
		return hex
	}
	r = clamp8(r + delta)
	g = clamp8(g + delta)
	b = clamp8(b + delta)
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

func parseHexRGB(hex string) (int, int, int, bool) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	r := int((v >> 16) & 0xFF)
	g := int((v >> 8) & 0xFF)
	b := int(v & 0xFF)
	return r, g, b, true
}

func clamp8(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func mustDefaultTheme() ThemePalette {
	p, err := LoadThemePalette("nord")
	if err == nil {
		return p
	}
	return ThemePalette{
		Name:        "fallback",
		Text:        "#D8DEE9",
		Background:  "#2E3440",
		InputBG:     "#3B4252",
		SelectionBG: "#434C5E",
		Muted:       "#4C566A",
		Dim:         "#4C566A",
		PathDir:     "#4C566A",
		PathFile:    "#7B8598",
		PathMeta:    "#6B7280",
		Header:      "#8FBCBB",
		Accent:      "#88C0D0",
		Keyword:     "#81A1C1",
		Type:        "#8FBCBB",
		Function:    "#88C0D0",
		String:      "#A3BE8C",
		Number:      "#B48EAD",
		Comment:     "#4C566A",
		Operator:    "#D8DEE9",
		Error:       "#BF616A",
	}
}
