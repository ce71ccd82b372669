package syntax

import (
	"slices"
	"unicode/utf8"

	"matchline/internal/lang"
	"matchline/internal/span"
	"matchline/internal/style"
)

// scaffoldLine wraps a single line in enough surrounding syntax that the
// grammar parses it as a statement rather than an error.
func scaffoldLine(id lang.ID, line string) ([]byte, int, int) {
	prefix := ""
	suffix := "\n"

	switch id {
	case lang.Go:
		prefix = "package p\nfunc _() {\n"
		suffix = "\n}\n"
	case lang.Rust:
		prefix = "fn _x() {\n"
		suffix = "\n}\n"
	case lang.JavaScript, lang.TypeScript, lang.TSX:
		prefix = "function _x() {\n"
		suffix = "\n}\n"
	case lang.C, lang.CPP:
		prefix = "void _x() {\n"
		suffix = "\n}\n"
	case lang.JSON:
		prefix = "{\n"
		suffix = "\n}\n"
	}

	source := []byte(prefix + line + suffix)
	start := len(prefix)
	return source, start, start + len(line)
}

// normalizeTokens clips tokens to [0,n), drops overlaps, fills gaps with
// Plain and joins neighbours of the same category.
func normalizeTokens(raw []Token, n int) []Token {
	if n <= 0 {
		return nil
	}

	clean := make([]Token, 0, len(raw))
	for _, tok := range raw {
		tok.Start = max(tok.Start, 0)
		tok.End = min(tok.End, n)
		if tok.End > tok.Start {
			clean = append(clean, tok)
		}
	}
	slices.SortStableFunc(clean, func(a, b Token) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.End - b.End
	})

	out := make([]Token, 0, len(clean)+2)
	cursor := 0
	for _, tok := range clean {
		start := max(tok.Start, cursor)
		if tok.End <= start {
			continue
		}
		if start > cursor {
			out = appendToken(out, cursor, start, Plain)
		}
		out = appendToken(out, start, tok.End, tok.Cat)
		cursor = tok.End
	}
	if cursor < n {
		out = appendToken(out, cursor, n, Plain)
	}
	return out
}

func appendToken(tokens []Token, start int, end int, cat Category) []Token {
	if len(tokens) > 0 {
		last := &tokens[len(tokens)-1]
		if last.End == start && last.Cat == cat {
			last.End = end
			return tokens
		}
	}
	return append(tokens, Token{Start: start, End: end, Cat: cat})
}

// Fragments cuts text at token boundaries into styled fragments. Tokens
// must cover text in order as Tokens returns them; boundaries that fall
// inside a multi-byte rune are moved forward to the next rune start.
func Fragments(text string, tokens []Token, styleFor func(Category) style.Style) []span.Fragment {
	if text == "" {
		return nil
	}
	if len(tokens) == 0 {
		return span.Plain(text)
	}

	out := make([]span.Fragment, 0, len(tokens))
	cursor := 0
	for _, tok := range tokens {
		end := runeBoundary(text, min(tok.End, len(text)))
		if end <= cursor {
			continue
		}
		st := style.Style{}
		if styleFor != nil {
			st = styleFor(tok.Cat)
		}
		out = append(out, span.Styled(text[cursor:end], st))
		cursor = end
	}
	if cursor < len(text) {
		out = append(out, span.Styled(text[cursor:], style.Style{}))
	}
	return out
}

func runeBoundary(s string, i int) int {
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return i
}
