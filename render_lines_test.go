package main

import (
	"testing"

	"matchline/internal/candidate"
	"matchline/internal/lang"
	"matchline/internal/span"
	"matchline/internal/style"
)

var testMatched = style.New().AddModifier(style.Underline)

func newTestRenderer() rowRenderer {
	return rowRenderer{
		palette: mustDefaultTheme(),
		highlight: span.HighlightConfig{
			Matched:  testMatched,
			Ellipsis: "…",
		},
		ellipsis: span.Plain("…")[0],
	}
}

func matchedText(fragments []span.Fragment) string {
	out := ""
	for _, f := range fragments {
		if f.Style.Add&style.Underline != 0 {
			out += f.Content
		}
	}
	return out
}

func TestTextFragmentsFits(t *testing.T) {
	r := newTestRenderer()
	got := r.textFragments(lang.Plain, "abcdef", []int{1, 2}, 20, false)
	if span.Concat(got) != "abcdef" {
		t.Fatalf("got = %q, want %q", span.Concat(got), "abcdef")
	}
	if m := matchedText(got); m != "bc" {
		t.Fatalf("matched = %q, want %q", m, "bc")
	}
}

func TestTextFragmentsElidesHiddenMatch(t *testing.T) {
	r := newTestRenderer()
	got := r.textFragments(lang.Plain, "abcdefghij", []int{9}, 6, false)
	if span.Concat(got) != "abcde…" {
		t.Fatalf("got = %q, want %q", span.Concat(got), "abcde…")
	}
	if m := matchedText(got); m != "…" {
		t.Fatalf("matched = %q, want the ellipsis", m)
	}
	if w := span.TotalWidth(got); w != 6 {
		t.Fatalf("width = %d, want 6", w)
	}
}

func TestTextFragmentsEllipsisUnmatchedWithoutHiddenMatch(t *testing.T) {
	r := newTestRenderer()
	got := r.textFragments(lang.Plain, "abcdefghij", []int{0}, 6, false)
	if m := matchedText(got); m != "a" {
		t.Fatalf("matched = %q, want %q", m, "a")
	}
	last := got[len(got)-1]
	if last.Content != "…" || last.Style.Add&style.Underline != 0 {
		t.Fatalf("last fragment = %+v, want plain ellipsis", last)
	}
}

func TestTextFragmentsFollowsSanitizedPositions(t *testing.T) {
	r := newTestRenderer()
	got := r.textFragments(lang.Plain, "\tab", []int{1}, 20, false)
	if span.Concat(got) != "    ab" {
		t.Fatalf("got = %q", span.Concat(got))
	}
	if m := matchedText(got); m != "a" {
		t.Fatalf("matched = %q, want %q", m, "a")
	}
}

func TestTextFragmentsWideRunes(t *testing.T) {
	r := newTestRenderer()
	got := r.textFragments(lang.Plain, "日本語のテキスト", nil, 7, false)
	if w := span.TotalWidth(got); w > 7 {
		t.Fatalf("width = %d, want <= 7", w)
	}
	if span.Concat(got) != "日本語…" {
		t.Fatalf("got = %q, want %q", span.Concat(got), "日本語…")
	}
}

func TestTextFragmentsSelectedBackground(t *testing.T) {
	r := newTestRenderer()
	got := r.textFragments(lang.Plain, "abc", []int{0}, 10, true)
	for _, f := range got {
		if f.Style.Background != r.palette.SelectionBG {
			t.Fatalf("fragment %q background = %q, want %q", f.Content, f.Style.Background, r.palette.SelectionBG)
		}
	}
}

func TestLocationFragmentsShortensDirectory(t *testing.T) {
	r := newTestRenderer()
	c := candidate.Candidate{File: "some/very/long/directory/file.go", Line: 12}
	got := r.locationFragments(c, "", 20, false)
	if s := span.Concat(got); s != "some/very…file.go:12" {
		t.Fatalf("got = %q, want %q", s, "some/very…file.go:12")
	}
}

func TestLocationFragmentsFitsUnchanged(t *testing.T) {
	r := newTestRenderer()
	c := candidate.Candidate{File: "pkg/file.go", Line: 3, Col: 9}
	got := r.locationFragments(c, "file", 40, false)
	if s := span.Concat(got); s != "pkg/file.go:3:9" {
		t.Fatalf("got = %q", s)
	}
	if m := matchedText(got); m != "file" {
		t.Fatalf("matched = %q, want %q", m, "file")
	}
}

func TestLocationFragmentsStdin(t *testing.T) {
	r := newTestRenderer()
	got := r.locationFragments(candidate.Candidate{Line: 3, Text: "x"}, "", 40, false)
	if s := span.Concat(got); s != "stdin:3" {
		t.Fatalf("got = %q, want %q", s, "stdin:3")
	}
}

func TestSplitAt(t *testing.T) {
	frags := []span.Fragment{{Content: "ab"}, {Content: "cd"}, {Content: "e"}}
	head, tail := splitAt(frags, 4)
	if span.Concat(head) != "abcd" || span.Concat(tail) != "e" {
		t.Fatalf("got = %q %q", span.Concat(head), span.Concat(tail))
	}
}
