package span

import (
	"reflect"
	"testing"

	"matchline/internal/style"
)

var (
	matchedStyle   = style.New().Fg("#ffff00").Bg("#0000ff").AddModifier(style.Bold)
	unmatchedStyle = style.New().Fg("#808080").AddModifier(style.Italic)
	redStyle       = style.New().Fg("#ff0000")
)

func frag(text string, st style.Style) Fragment {
	return Fragment{Content: text, Style: st}
}

func TestHighlightTextExampleA(t *testing.T) {
	cfg := HighlightConfig{Matched: matchedStyle, Unmatched: unmatchedStyle}
	got := HighlightText("abcdefghijklmn", []int{2, 3, 4, 7, 9, 10}, cfg)
	want := []Fragment{
		frag("ab", unmatchedStyle),
		frag("cde", matchedStyle),
		frag("fg", unmatchedStyle),
		frag("h", matchedStyle),
		frag("i", unmatchedStyle),
		frag("jk", matchedStyle),
		frag("lmn", unmatchedStyle),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("HighlightText = %#v, want %#v", got, want)
	}
}

func TestHighlightSingleRange(t *testing.T) {
	got := Highlight(Plain("abcdef"), SingleRange(2, 4), HighlightConfig{})
	want := []Fragment{frag("ab", style.Style{}), frag("cd", style.Style{}), frag("ef", style.Style{})}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Highlight = %#v, want %#v", got, want)
	}
}

func TestHighlightStyles(t *testing.T) {
	cfg := HighlightConfig{Matched: matchedStyle, Unmatched: unmatchedStyle}
	got := HighlightText("abcdef", []int{0, 1, 5}, cfg)
	want := []Fragment{
		frag("ab", matchedStyle),
		frag("cde", unmatchedStyle),
		frag("f", matchedStyle),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("HighlightText = %#v, want %#v", got, want)
	}
}

func TestHighlightEllipsis(t *testing.T) {
	tests := []struct {
		name    string
		indices []int
		want    []Fragment
	}{
		{
			name:    "match ends at limit leaves ellipsis unmatched",
			indices: []int{3, 4, 5},
			want: []Fragment{
				frag("abc", style.Style{}),
				frag("def", redStyle),
				frag("...", style.Style{}),
			},
		},
		{
			name:    "match crossing limit absorbs ellipsis",
			indices: []int{3, 4, 5, 6},
			want: []Fragment{
				frag("abc", style.Style{}),
				frag("def...", redStyle),
			},
		},
		{
			name:    "match inside tail marks ellipsis",
			indices: []int{0, 1, 7, 10, 11},
			want: []Fragment{
				frag("ab", redStyle),
				frag("cdef", style.Style{}),
				frag("...", redStyle),
			},
		},
		{
			name:    "out of range match starting at limit",
			indices: []int{3, 4, 5, 9, 10, 11},
			want: []Fragment{
				frag("abc", style.Style{}),
				frag("def", redStyle),
				frag("...", redStyle),
			},
		},
	}

	cfg := HighlightConfig{Matched: redStyle, Ellipsis: "...", Elide: true}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := HighlightText("abcdef...", tc.indices, cfg)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("HighlightText = %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestClipRanges(t *testing.T) {
	tests := []struct {
		name   string
		ranges []MatchRange
		want   []MatchRange
	}{
		{name: "before limit untouched", ranges: []MatchRange{{0, 2}, {3, 6}}, want: []MatchRange{{0, 2}, {3, 6}}},
		{name: "crossing keeps start", ranges: []MatchRange{{3, 7}}, want: []MatchRange{{3, 9}}},
		{name: "start equals limit", ranges: []MatchRange{{6, 7}}, want: []MatchRange{{6, 9}}},
		{name: "start past limit", ranges: []MatchRange{{7, 8}, {10, 12}}, want: []MatchRange{{6, 9}}},
		{name: "later ranges discarded", ranges: []MatchRange{{1, 2}, {5, 8}, {20, 30}}, want: []MatchRange{{1, 2}, {5, 9}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := clipRanges(tc.ranges, 6, 9)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("clipRanges = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestHighlightMatchStartingExactlyAtLimit(t *testing.T) {
	cfg := HighlightConfig{Matched: redStyle, Ellipsis: "...", Elide: true}
	got := Highlight(Plain("abcdef..."), []MatchRange{{6, 8}}, cfg)
	want := []Fragment{
		frag("abcdef", style.Style{}),
		frag("...", redStyle),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Highlight = %#v, want %#v", got, want)
	}
}

func TestHighlightEllipsisWithoutMatches(t *testing.T) {
	cfg := HighlightConfig{Unmatched: unmatchedStyle, Ellipsis: "..", Elide: true}
	got := Highlight(Plain("abcdefgh"), nil, cfg)
	want := []Fragment{
		frag("abcdef", unmatchedStyle),
		frag("..", unmatchedStyle),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Highlight = %#v, want %#v", got, want)
	}
}

func TestHighlightEllipsisLongerThanContent(t *testing.T) {
	cfg := HighlightConfig{Matched: redStyle, Ellipsis: "....", Elide: true}
	got := HighlightText("ab", []int{0}, cfg)
	want := []Fragment{frag("....", redStyle)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("HighlightText = %#v, want %#v", got, want)
	}
}

func TestHighlightEmptyContent(t *testing.T) {
	cfg := HighlightConfig{Matched: redStyle, Ellipsis: "...", Elide: true}
	if got := Highlight(nil, []MatchRange{{0, 2}}, cfg); got != nil {
		t.Fatalf("Highlight(nil) = %#v, want nil", got)
	}
	if got := Highlight([]Fragment{frag("", redStyle)}, nil, HighlightConfig{}); got != nil {
		t.Fatalf("Highlight(empty fragment) = %#v, want nil", got)
	}
}

func TestHighlightKeepsFragmentBoundaries(t *testing.T) {
	kw := style.New().Fg("#81a1c1")
	ident := style.New().Fg("#d8dee9").AddModifier(style.Italic)
	fragments := []Fragment{frag("func", kw), frag(" ", style.Style{}), frag("main", ident)}
	cfg := HighlightConfig{
		Matched:   style.New().AddModifier(style.Bold | style.Underline),
		Unmatched: style.New(),
	}

	got := Highlight(fragments, MergeRanges([]int{2, 3, 4, 5}), cfg)
	want := []Fragment{
		frag("fu", kw),
		frag("nc", kw.AddModifier(style.Bold|style.Underline)),
		frag(" ", style.New().AddModifier(style.Bold|style.Underline)),
		frag("m", ident.AddModifier(style.Bold|style.Underline)),
		frag("ain", ident),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Highlight = %#v, want %#v", got, want)
	}
}

func TestHighlightDoesNotMergeEqualNeighbours(t *testing.T) {
	got := Highlight([]Fragment{frag("ab", redStyle), frag("cd", redStyle)}, nil, HighlightConfig{})
	if len(got) != 2 {
		t.Fatalf("got %d fragments, want 2: %#v", len(got), got)
	}
}

func TestHighlightComposesWithOriginalStyle(t *testing.T) {
	base := style.New().Fg("#ff0000").Bg("#00ffff").AddModifier(style.Bold)
	cfg := HighlightConfig{
		Matched:   style.New().Fg("#ffff00"),
		Unmatched: style.New().RemoveModifier(style.Bold),
	}
	got := Highlight([]Fragment{frag("abcd", base)}, SingleRange(0, 2), cfg)
	want := []Fragment{
		frag("ab", style.Style{Foreground: "#ffff00", Background: "#00ffff", Add: style.Bold}),
		frag("cd", style.Style{Foreground: "#ff0000", Background: "#00ffff", Sub: style.Bold}),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Highlight = %#v, want %#v", got, want)
	}
}

func TestHighlightEllipsisAcrossFragments(t *testing.T) {
	fragments := []Fragment{frag("abc", redStyle), frag("def", style.Style{}), frag("...", style.Style{})}
	cfg := HighlightConfig{Matched: matchedStyle, Unmatched: style.New(), Ellipsis: "...", Elide: true}

	got := Highlight(fragments, MergeRanges([]int{4, 5, 6}), cfg)
	want := []Fragment{
		frag("abc", redStyle),
		frag("d", style.Style{}),
		frag("ef...", matchedStyle),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Highlight = %#v, want %#v", got, want)
	}
}

func TestHighlightIgnoresOutOfRangeMatches(t *testing.T) {
	got := HighlightText("abc", []int{1, 50, 51}, HighlightConfig{Matched: redStyle})
	want := []Fragment{frag("a", style.Style{}), frag("b", redStyle), frag("c", style.Style{})}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("HighlightText = %#v, want %#v", got, want)
	}
}

func TestHighlightContentPreserving(t *testing.T) {
	fragments := []Fragment{frag("héllo ", redStyle), frag("wörld", style.Style{}), frag("!", matchedStyle)}
	ranges := MergeRanges([]int{0, 1, 2, 7, 8, 12})
	got := Highlight(fragments, ranges, HighlightConfig{Matched: matchedStyle, Unmatched: unmatchedStyle})
	if Concat(got) != Concat(fragments) {
		t.Fatalf("Concat = %q, want %q", Concat(got), Concat(fragments))
	}
}

func TestHighlightWithoutRangesPatchesUnmatched(t *testing.T) {
	fragments := []Fragment{frag("abc", redStyle), frag("def", matchedStyle)}
	got := Highlight(fragments, nil, HighlightConfig{Matched: matchedStyle, Unmatched: unmatchedStyle})
	want := []Fragment{
		frag("abc", style.Compose(redStyle, unmatchedStyle)),
		frag("def", style.Compose(matchedStyle, unmatchedStyle)),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Highlight = %#v, want %#v", got, want)
	}
}

func TestHighlightKeepsRunesWhole(t *testing.T) {
	// "é" is two bytes; a match on its first byte covers the whole rune.
	got := HighlightText("aéb", []int{1}, HighlightConfig{Matched: redStyle})
	want := []Fragment{frag("a", style.Style{}), frag("é", redStyle), frag("b", style.Style{})}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("HighlightText = %#v, want %#v", got, want)
	}
}

func TestHighlightLimitInsideRune(t *testing.T) {
	// total 4 bytes, limit 2 falls inside "é" (bytes 1-2).
	cfg := HighlightConfig{Ellipsis: "..", Elide: true}
	got := HighlightText("aéb", nil, cfg)
	want := []Fragment{frag("a", style.Style{}), frag("..", style.Style{})}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("HighlightText = %#v, want %#v", got, want)
	}
}
