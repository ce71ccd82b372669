package span

import (
	"math"
	"slices"
)

// MatchRange is a half-open [Start, End) byte range over the concatenated
// content of a fragment line.
type MatchRange struct {
	Start int
	End   int
}

// Len is the number of bytes covered, zero for an inverted range.
func (r MatchRange) Len() int {
	return satSub(r.End, r.Start)
}

// Contains reports whether offset lies in [Start, End).
func (r MatchRange) Contains(offset int) bool {
	return r.Start <= offset && offset < r.End
}

// MergeRanges turns match positions into the minimal sorted list of
// disjoint ranges covering exactly those positions. Negative positions are
// ignored.
func MergeRanges(indices []int) []MatchRange {
	if len(indices) == 0 {
		return nil
	}

	sorted := make([]int, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx == math.MaxInt {
			continue
		}
		sorted = append(sorted, idx)
	}
	if len(sorted) == 0 {
		return nil
	}
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	ranges := make([]MatchRange, 0, 4)
	cur := MatchRange{Start: sorted[0], End: sorted[0] + 1}
	for _, idx := range sorted[1:] {
		if idx == cur.End {
			cur.End = idx + 1
			continue
		}
		ranges = append(ranges, cur)
		cur = MatchRange{Start: idx, End: idx + 1}
	}
	return append(ranges, cur)
}

// SingleRange is the range list for one known contiguous match.
func SingleRange(start int, end int) []MatchRange {
	if start < 0 || start >= end {
		return nil
	}
	return []MatchRange{{Start: start, End: end}}
}

// Flatten lists every offset covered by ranges.
func Flatten(ranges []MatchRange) []int {
	n := 0
	for _, r := range ranges {
		n += r.Len()
	}
	out := make([]int, 0, n)
	for _, r := range ranges {
		for i := r.Start; i < r.End; i++ {
			out = append(out, i)
		}
	}
	return out
}
