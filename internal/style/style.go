package style

import "github.com/charmbracelet/lipgloss"

type Modifier uint16

const (
	Bold Modifier = 1 << iota
	Faint
	Italic
	Underline
	Blink
	Reverse
	Strikethrough
)

var modifierNames = []struct {
	mod  Modifier
	name string
}{
	{Bold, "bold"},
	{Faint, "faint"},
	{Italic, "italic"},
	{Underline, "underline"},
	{Blink, "blink"},
	{Reverse, "reverse"},
	{Strikethrough, "strikethrough"},
}

// ModifierByName resolves a modifier name such as "bold" or "underline".
func ModifierByName(name string) (Modifier, bool) {
	for _, m := range modifierNames {
		if m.name == name {
			return m.mod, true
		}
	}
	return 0, false
}

func (m Modifier) String() string {
	out := ""
	for _, n := range modifierNames {
		if m&n.mod == 0 {
			continue
		}
		if out != "" {
			out += "|"
		}
		out += n.name
	}
	return out
}

// Style is a partially specified set of text attributes. Empty colours are
// unset; Add and Sub hold modifiers explicitly switched on and off.
type Style struct {
	Foreground string
	Background string
	Add        Modifier
	Sub        Modifier
}

func New() Style {
	return Style{}
}

func (s Style) Fg(color string) Style {
	s.Foreground = color
	return s
}

func (s Style) Bg(color string) Style {
	s.Background = color
	return s
}

func (s Style) AddModifier(m Modifier) Style {
	s.Add |= m
	s.Sub &^= m
	return s
}

func (s Style) RemoveModifier(m Modifier) Style {
	s.Sub |= m
	s.Add &^= m
	return s
}

func (s Style) IsZero() bool {
	return s == Style{}
}

// Compose patches base with every attribute set in overlay. Attributes
// overlay leaves unset keep the value from base.
func Compose(base Style, overlay Style) Style {
	out := base
	if overlay.Foreground != "" {
		out.Foreground = overlay.Foreground
	}
	if overlay.Background != "" {
		out.Background = overlay.Background
	}
	out.Add = (base.Add &^ overlay.Sub) | overlay.Add
	out.Sub = (base.Sub &^ overlay.Add) | overlay.Sub
	return out
}

func (s Style) Lipgloss() lipgloss.Style {
	ls := lipgloss.NewStyle()
	if s.Foreground != "" {
		ls = ls.Foreground(lipgloss.Color(s.Foreground))
	}
	if s.Background != "" {
		ls = ls.Background(lipgloss.Color(s.Background))
	}

	set := func(m Modifier, apply func(lipgloss.Style, bool) lipgloss.Style) {
		switch {
		case s.Add&m != 0:
			ls = apply(ls, true)
		case s.Sub&m != 0:
			ls = apply(ls, false)
		}
	}
	set(Bold, lipgloss.Style.Bold)
	set(Faint, lipgloss.Style.Faint)
	set(Italic, lipgloss.Style.Italic)
	set(Underline, lipgloss.Style.Underline)
	set(Blink, lipgloss.Style.Blink)
	set(Reverse, lipgloss.Style.Reverse)
	set(Strikethrough, lipgloss.Style.Strikethrough)
	return ls
}

func (s Style) Render(text string) string {
	if s.IsZero() {
		return text
	}
	return s.Lipgloss().Render(text)
}
