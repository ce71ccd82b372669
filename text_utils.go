package main

import (
	"strings"

	"matchline/internal/span"
	"matchline/internal/style"
)

const tabWidth = 4

// sanitizeText makes a line safe to draw on one terminal row: tabs become
// spaces, newlines become single spaces and carriage returns and other
// control bytes are dropped. remap[i] is the offset in the result of byte
// i of s, so match positions can follow the text.
func sanitizeText(s string) (string, []int) {
	remap := make([]int, len(s)+1)
	if !needsSanitize(s) {
		for i := range remap {
			remap[i] = i
		}
		return s, remap
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		remap[i] = b.Len()
		c := s[i]
		switch {
		case c == '\t':
			b.WriteString(strings.Repeat(" ", tabWidth))
		case c == '\n':
			b.WriteByte(' ')
		case c < 0x20 || c == 0x7f:
		default:
			b.WriteByte(c)
		}
	}
	remap[len(s)] = b.Len()
	return b.String(), remap
}

func needsSanitize(s string) bool {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < 0x20 || c == 0x7f {
			return true
		}
	}
	return false
}

func remapPositions(positions []int, remap []int) []int {
	if len(positions) == 0 {
		return nil
	}
	out := make([]int, 0, len(positions))
	for _, p := range positions {
		if p >= 0 && p < len(remap) {
			out = append(out, remap[p])
		}
	}
	return out
}

// padRight fills a rendered line up to width columns with spaces drawn in
// st, so selection backgrounds span the whole row.
func padRight(line string, used int, width int, st style.Style) string {
	if used >= width {
		return line
	}
	return line + st.Render(strings.Repeat(" ", width-used))
}

func renderPadded(fragments []span.Fragment, width int, st style.Style) string {
	return padRight(span.Render(fragments), span.TotalWidth(fragments), width, st)
}

func clamp(v int, lo int, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// shouldRefine reports whether the matches for previous can be narrowed
// instead of filtering every candidate again.
func shouldRefine(current string, previous string, candidateN int, previousCandidateN int) bool {
	if current == "" || previous == "" {
		return false
	}
	if len(current) <= len(previous) || candidateN != previousCandidateN {
		return false
	}
	return strings.HasPrefix(current, previous)
}
