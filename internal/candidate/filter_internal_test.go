package candidate

import (
	"reflect"
	"testing"
)

func TestFilterEmptyQueryKeepsOrder(t *testing.T) {
	candidates := makeFixtureCandidates(5)
	got := Filter(candidates, "  ")
	want := []Match{{Index: 0}, {Index: 1}, {Index: 2}, {Index: 3}, {Index: 4}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got = %v, want %v", got, want)
	}
}

func TestFilterRanksAndReportsPositions(t *testing.T) {
	candidates := []Candidate{
		{Text: "azzzzbzzzzc"},
		{Text: "zzz"},
		{Text: "abc"},
	}

	res := Filter(candidates, "abc")
	if len(res) != 2 {
		t.Fatalf("got %d matches, want 2: %v", len(res), res)
	}
	if res[0].Index != 2 {
		t.Fatalf("best match = %d, want 2", res[0].Index)
	}
	if want := []int{0, 1, 2}; !reflect.DeepEqual(res[0].Positions, want) {
		t.Fatalf("positions = %v, want %v", res[0].Positions, want)
	}
	if want := []int{0, 5, 10}; !reflect.DeepEqual(res[1].Positions, want) {
		t.Fatalf("positions = %v, want %v", res[1].Positions, want)
	}
}

func TestFilterIsCaseInsensitive(t *testing.T) {
	candidates := []Candidate{{Text: "func MyFunc() {}"}}
	if res := Filter(candidates, "myfunc"); len(res) != 1 {
		t.Fatalf("got %d matches, want 1", len(res))
	}
}

func TestRefineMatchesFull(t *testing.T) {
	candidates := makeFixtureCandidates(8_000)

	base := Filter(candidates, "hand")
	full := Filter(candidates, "handler")
	refined := Refine(candidates, base, "handler")

	if !reflect.DeepEqual(refined, full) {
		t.Fatalf("refined filtering differs from full filtering: refined=%d full=%d", len(refined), len(full))
	}
}

func TestRefineWithoutPrevious(t *testing.T) {
	candidates := makeFixtureCandidates(10)
	if got := Refine(candidates, nil, "symbol"); got != nil {
		t.Fatalf("got = %v, want nil", got)
	}
	if got := Refine(candidates, nil, ""); len(got) != len(candidates) {
		t.Fatalf("got %d matches, want %d", len(got), len(candidates))
	}
}

func TestFilterParallelMatchesSerial(t *testing.T) {
	candidates := makeFixtureCandidates(12_000)

	oldThreshold := filterParallelThreshold
	oldChunk := filterMinChunkSize
	defer func() {
		filterParallelThreshold = oldThreshold
		filterMinChunkSize = oldChunk
	}()

	filterParallelThreshold = 1 << 30
	serial := Filter(candidates, "symbol")

	filterParallelThreshold = 1
	filterMinChunkSize = 1
	parallel := Filter(candidates, "symbol")

	if !reflect.DeepEqual(parallel, serial) {
		t.Fatalf("parallel filtering differs from serial filtering")
	}
}

func TestPositions(t *testing.T) {
	tests := []struct {
		text  string
		query string
		want  []int
	}{
		{"src/main.go", "mg", []int{4, 9}},
		{"Foo", "fo", []int{0, 1}},
		{"héllo", "hl", []int{0, 3}},
		{"héllo", "É", []int{1}},
		{"a bc", "a c", []int{0, 1, 3}},
		{"abc", "a c", nil},
		{"abc", "abd", nil},
		{"abc", "", nil},
		{"abc", "  ", nil},
	}

	for _, tc := range tests {
		if got := Positions(tc.text, tc.query); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("Positions(%q, %q) = %v, want %v", tc.text, tc.query, got, tc.want)
		}
	}
}

func TestPositionsAgreeWithFilter(t *testing.T) {
	candidates := []Candidate{
		{Text: "The Black Knight"},
		{Text: "internal/candidate/filter.go"},
		{Text: "fooBarBaz"},
	}
	queries := []string{"tk", "cfg", "bb", "filter"}
	for _, q := range queries {
		for _, m := range Filter(candidates, q) {
			text := candidates[m.Index].Text
			if got := Positions(text, q); !reflect.DeepEqual(got, m.Positions) {
				t.Fatalf("Positions(%q, %q) = %v, want %v", text, q, got, m.Positions)
			}
		}
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		c    Candidate
		want string
	}{
		{Candidate{Text: "from stdin"}, "from stdin"},
		{Candidate{File: "a.go", Line: 3, Text: "x"}, "a.go:3"},
		{Candidate{File: "a.go", Line: 3, Col: 7, Text: "x"}, "a.go:3:7"},
		{Candidate{File: "a.go"}, "a.go"},
	}
	for _, tc := range tests {
		if got := tc.c.Location(); got != tc.want {
			t.Fatalf("Location() = %q, want %q", got, tc.want)
		}
	}
}

func TestFilterRangeAndMergeMatchesFull(t *testing.T) {
	candidates := makeFixtureCandidates(10_000)

	split := 6_500
	old := FilterRange(candidates, 0, split, "handler")
	added := FilterRange(candidates, split, len(candidates), "handler")
	merged := MergeMatches(old, added)
	full := Filter(candidates, "handler")

	if !reflect.DeepEqual(merged, full) {
		t.Fatalf("range+merge filtering differs from full filtering: merged=%d full=%d", len(merged), len(full))
	}
}

func TestFilterRangeEmptyQuery(t *testing.T) {
	candidates := makeFixtureCandidates(4)
	got := FilterRange(candidates, 2, 10, "")
	want := []Match{{Index: 2}, {Index: 3}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got = %v, want %v", got, want)
	}
}
