package keys

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

type Action int

const (
	None Action = iota
	Quit
	Up
	Down
	PageUp
	PageDown
	Home
	End
	Accept
	Copy
	Help
	TogglePreview
)

func (a Action) String() string {
	switch a {
	case Quit:
		return "quit"
	case Up:
		return "up"
	case Down:
		return "down"
	case PageUp:
		return "page up"
	case PageDown:
		return "page down"
	case Home:
		return "first"
	case End:
		return "last"
	case Accept:
		return "print selection"
	case Copy:
		return "copy selection"
	case Help:
		return "help"
	case TogglePreview:
		return "toggle preview"
	default:
		return "none"
	}
}

// Pattern matches one kind of key event.
type Pattern struct {
	Type tea.KeyType
	Rune rune
	Ctrl bool
}

func Code(t tea.KeyType) Pattern {
	return Pattern{Type: t}
}

// Char matches r whatever modifiers are held.
func Char(r rune) Pattern {
	return Pattern{Type: tea.KeyRunes, Rune: r}
}

// CtrlChar matches r only together with control and no other modifier.
func CtrlChar(r rune) Pattern {
	return Pattern{Type: tea.KeyRunes, Rune: r, Ctrl: true}
}

func (p Pattern) Match(msg tea.KeyMsg) bool {
	if p.Type != tea.KeyRunes || p.Rune == 0 {
		return msg.Type == p.Type
	}

	if ctrlType, ok := ctrlKeyType(p.Rune); ok && msg.Type == ctrlType {
		return !p.Ctrl || !msg.Alt
	}
	if p.Ctrl {
		return false
	}
	return msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && unicode.ToLower(msg.Runes[0]) == unicode.ToLower(p.Rune)
}

func ctrlKeyType(r rune) (tea.KeyType, bool) {
	r = unicode.ToLower(r)
	if r < 'a' || r > 'z' {
		return 0, false
	}
	return tea.KeyType(r - 'a' + 1), true
}

type Binding struct {
	Action   Action
	Keys     string
	Patterns []Pattern
}

var bindings = []Binding{
	{Quit, "esc, ctrl+c", []Pattern{Code(tea.KeyEsc), Code(tea.KeyCtrlC)}},
	{Up, "up, ctrl+p", []Pattern{Code(tea.KeyUp), CtrlChar('p')}},
	{Down, "down, ctrl+n", []Pattern{Code(tea.KeyDown), CtrlChar('n')}},
	{PageUp, "pgup, ctrl+u", []Pattern{Code(tea.KeyPgUp), CtrlChar('u')}},
	{PageDown, "pgdown, ctrl+d", []Pattern{Code(tea.KeyPgDown), CtrlChar('d')}},
	{Home, "home", []Pattern{Code(tea.KeyHome)}},
	{End, "end", []Pattern{Code(tea.KeyEnd)}},
	{Accept, "enter", []Pattern{Code(tea.KeyEnter)}},
	{Copy, "ctrl+y", []Pattern{CtrlChar('y')}},
	{Help, "f1, ctrl+g", []Pattern{Code(tea.KeyF1), CtrlChar('g')}},
	{TogglePreview, "tab", []Pattern{Code(tea.KeyTab)}},
}

func Bindings() []Binding {
	return bindings
}

// Classify maps a key event to the command it triggers, or None when the
// key should go to the query input.
func Classify(msg tea.KeyMsg) Action {
	for _, b := range bindings {
		for _, p := range b.Patterns {
			if p.Match(msg) {
				return b.Action
			}
		}
	}
	return None
}
