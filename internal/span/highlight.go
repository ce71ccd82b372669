package span

import (
	"unicode/utf8"

	"matchline/internal/style"
)

// HighlightConfig is applied on top of each fragment's own style. With
// Elide set, the last len(Ellipsis) bytes of the line are replaced by the
// Ellipsis text.
type HighlightConfig struct {
	Matched   style.Style
	Unmatched style.Style
	Ellipsis  string
	Elide     bool
}

// HighlightText highlights the bytes at indices of a single unstyled string.
func HighlightText(text string, indices []int, cfg HighlightConfig) []Fragment {
	return Highlight(Plain(text), MergeRanges(indices), cfg)
}

// Highlight splits fragments wherever the match state changes and patches
// each piece with the matched or unmatched style. ranges must be sorted and
// disjoint, as returned by MergeRanges; offsets are global over the
// concatenation of fragments. Input fragment boundaries are always kept.
func Highlight(fragments []Fragment, ranges []MatchRange, cfg HighlightConfig) []Fragment {
	total := TotalLength(fragments)
	if total == 0 {
		return nil
	}

	limit := total
	if cfg.Elide {
		limit = satSub(total, len(cfg.Ellipsis))
		ranges = clipRanges(ranges, limit, total)
	}

	out := make([]Fragment, 0, len(fragments)+2*len(ranges)+1)
	ri := 0
	offset := 0
	matchedAtLimit := false
	for _, f := range fragments {
		fragStart := offset
		fragEnd := satAdd(offset, len(f.Content))
		offset = fragEnd
		if fragStart >= limit {
			break
		}

		end := min(fragEnd, limit)
		if end < fragEnd {
			end = fragStart + runeFloor(f.Content, end-fragStart)
		}

		for pos := fragStart; pos < end; {
			for ri < len(ranges) && ranges[ri].End <= pos {
				ri++
			}
			matched := ri < len(ranges) && ranges[ri].Start <= pos

			next := end
			if ri < len(ranges) {
				if matched {
					next = min(end, ranges[ri].End)
				} else {
					next = min(end, ranges[ri].Start)
				}
			}
			next = min(end, fragStart+runeCeil(f.Content, next-fragStart))

			overlay := cfg.Unmatched
			if matched {
				overlay = cfg.Matched
			}
			out = append(out, Fragment{
				Content: f.Content[pos-fragStart : next-fragStart],
				Style:   style.Compose(f.Style, overlay),
			})
			matchedAtLimit = matched && next == limit
			pos = next
		}
	}

	if !cfg.Elide || cfg.Ellipsis == "" {
		return out
	}

	inMatch := false
	if n := len(ranges); n > 0 {
		last := ranges[n-1]
		inMatch = last.Contains(limit)
		// A match running into the elided tail carries on through the ellipsis.
		if inMatch && last.Start < limit && matchedAtLimit {
			out[len(out)-1].Content += cfg.Ellipsis
			return out
		}
	}

	ellipsisStyle := cfg.Unmatched
	if inMatch {
		ellipsisStyle = cfg.Matched
	}
	return append(out, Fragment{Content: cfg.Ellipsis, Style: ellipsisStyle})
}

// clipRanges cuts ranges at the elision limit: the first range reaching past
// limit and everything after it collapse into one range ending at total.
func clipRanges(ranges []MatchRange, limit int, total int) []MatchRange {
	for i, r := range ranges {
		if r.End <= limit {
			continue
		}
		clipped := MatchRange{Start: limit, End: total}
		if r.Start < limit {
			clipped.Start = r.Start
		}
		out := make([]MatchRange, i, i+1)
		copy(out, ranges[:i])
		return append(out, clipped)
	}
	return ranges
}

func runeFloor(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

func runeCeil(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return i
}
