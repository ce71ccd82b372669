package keys

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestCodePattern(t *testing.T) {
	esc := tea.KeyMsg{Type: tea.KeyEsc}
	if !Code(tea.KeyEsc).Match(esc) {
		t.Fatalf("expected esc to match")
	}
	if Code(tea.KeyEnter).Match(esc) {
		t.Fatalf("expected enter not to match esc")
	}
	if !Code(tea.KeyF1).Match(tea.KeyMsg{Type: tea.KeyF1}) {
		t.Fatalf("expected f1 to match")
	}
}

func TestCharPattern(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		char     bool
		ctrlChar bool
	}{
		{"plain", runeKey('a'), true, false},
		{"other rune", runeKey('b'), false, false},
		{"ctrl", tea.KeyMsg{Type: tea.KeyCtrlA}, true, true},
		{"shift", runeKey('A'), true, false},
		{"ctrl+alt", tea.KeyMsg{Type: tea.KeyCtrlA, Alt: true}, true, false},
		{"alt", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}, Alt: true}, true, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Char('a').Match(tc.msg); got != tc.char {
				t.Fatalf("Char('a').Match = %v, want %v", got, tc.char)
			}
			if got := CtrlChar('a').Match(tc.msg); got != tc.ctrlChar {
				t.Fatalf("CtrlChar('a').Match = %v, want %v", got, tc.ctrlChar)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want Action
	}{
		{tea.KeyMsg{Type: tea.KeyEsc}, Quit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, Quit},
		{tea.KeyMsg{Type: tea.KeyUp}, Up},
		{tea.KeyMsg{Type: tea.KeyCtrlP}, Up},
		{tea.KeyMsg{Type: tea.KeyCtrlN}, Down},
		{tea.KeyMsg{Type: tea.KeyPgDown}, PageDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, Accept},
		{tea.KeyMsg{Type: tea.KeyCtrlY}, Copy},
		{tea.KeyMsg{Type: tea.KeyF1}, Help},
		{tea.KeyMsg{Type: tea.KeyTab}, TogglePreview},
		{runeKey('p'), None},
		{runeKey('?'), None},
	}

	for _, tc := range tests {
		if got := Classify(tc.msg); got != tc.want {
			t.Fatalf("Classify(%q) = %v, want %v", tc.msg.String(), got, tc.want)
		}
	}
}

func TestBindingsCoverEveryAction(t *testing.T) {
	seen := map[Action]bool{}
	for _, b := range Bindings() {
		seen[b.Action] = true
	}
	for a := Quit; a <= TogglePreview; a++ {
		if !seen[a] {
			t.Fatalf("action %v has no binding", a)
		}
	}
}
