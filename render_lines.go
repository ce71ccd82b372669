package main

import (
	"path/filepath"
	"strconv"

	"matchline/internal/candidate"
	"matchline/internal/lang"
	"matchline/internal/span"
	"matchline/internal/style"
	"matchline/internal/syntax"
)

// rowRenderer turns candidates into styled terminal rows.
type rowRenderer struct {
	tokenizer *syntax.Tokenizer
	palette   ThemePalette
	highlight span.HighlightConfig
	// ellipsis is drawn where the location line is cut.
	ellipsis span.Fragment
}

func (r rowRenderer) selection(selected bool) style.Style {
	if !selected {
		return style.Style{}
	}
	return style.New().Bg(r.palette.SelectionBG)
}

// highlightConfig layers the row background over the configured match
// styles.
func (r rowRenderer) highlightConfig(selected bool, elide bool) span.HighlightConfig {
	cfg := r.highlight
	cfg.Elide = elide
	if selected {
		bg := r.selection(true)
		cfg.Matched = style.Compose(cfg.Matched, bg)
		cfg.Unmatched = style.Compose(cfg.Unmatched, bg)
	}
	return cfg
}

// textFragments renders one source line into at most width columns.
// positions are byte offsets of query matches in text. A line that does
// not fit is cut at a grapheme boundary and ends in the ellipsis, which is
// drawn matched when a hidden match lies under it.
func (r rowRenderer) textFragments(id lang.ID, text string, positions []int, width int, selected bool) []span.Fragment {
	if width <= 0 {
		return nil
	}
	clean, remap := sanitizeText(text)
	positions = remapPositions(positions, remap)

	line := clean
	elide := false
	if span.DisplayWidth(clean) > width {
		ellipsis := r.highlight.Ellipsis
		room := width - span.DisplayWidth(ellipsis)
		switch {
		case ellipsis == "":
			line = span.TruncateToWidth(clean, width)
		case room <= 0:
			return span.TruncateByWidth(span.Plain(clean), width, r.ellipsisFragment(selected))
		default:
			line = span.TruncateToWidth(clean, room) + ellipsis
			elide = true
		}
	}

	var tokens []syntax.Token
	if r.tokenizer != nil {
		tokens = r.tokenizer.Tokens(id, clean)
	}
	base := syntax.Fragments(line, tokens, r.palette.Token)
	return span.Highlight(base, span.MergeRanges(positions), r.highlightConfig(selected, elide))
}

func (r rowRenderer) ellipsisFragment(selected bool) span.Fragment {
	f := r.ellipsis
	f.Style = style.Compose(f.Style, r.selection(selected))
	return f
}

// locationFragments renders "dir/file:line[:col]". When it does not fit,
// the directory is shortened first so the file name stays visible.
func (r rowRenderer) locationFragments(c candidate.Candidate, query string, width int, selected bool) []span.Fragment {
	if width <= 0 {
		return nil
	}

	file := c.File
	if file == "" {
		file = "stdin"
	}
	dir, base := filepath.Split(file)
	suffix := ":" + strconv.Itoa(c.Line)
	if c.Col > 0 {
		suffix += ":" + strconv.Itoa(c.Col)
	}

	sel := r.selection(selected)
	parts := []span.Fragment{
		span.Styled(dir, style.Compose(style.New().Fg(r.palette.PathDir), sel)),
		span.Styled(base, style.Compose(style.New().Fg(r.palette.PathFile), sel)),
		span.Styled(suffix, style.Compose(style.New().Fg(r.palette.PathMeta), sel)),
	}
	if dir == "" {
		parts = parts[1:]
	}

	var positions []int
	if c.File != "" {
		positions = candidate.Positions(dir+base, query)
	}
	highlighted := span.Highlight(parts, span.MergeRanges(positions), r.highlightConfig(selected, false))

	tailW := span.DisplayWidth(base + suffix)
	if dir == "" || span.TotalWidth(highlighted) <= width || tailW >= width {
		return span.TruncateByWidth(highlighted, width, r.ellipsisFragment(selected))
	}

	dirParts, rest := splitAt(highlighted, len(dir))
	short := span.TruncateByWidth(dirParts, width-tailW, r.ellipsisFragment(selected))
	return append(short, rest...)
}

// splitAt divides fragments at byte offset n. Highlight never merges
// across input boundaries, so a boundary at n always exists when n is the
// length of a leading input fragment.
func splitAt(fragments []span.Fragment, n int) ([]span.Fragment, []span.Fragment) {
	offset := 0
	for i, f := range fragments {
		if offset >= n {
			return fragments[:i:i], fragments[i:]
		}
		offset += len(f.Content)
	}
	return fragments, nil
}
