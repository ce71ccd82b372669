package span

// TruncateByWidth limits fragments to maxWidth display columns using
// DefaultMetrics. See Metrics.TruncateByWidth.
func TruncateByWidth(fragments []Fragment, maxWidth int, ellipsis Fragment) []Fragment {
	return DefaultMetrics.TruncateByWidth(fragments, maxWidth, ellipsis)
}

// TruncateByWidth returns fragments unchanged when they fit in maxWidth.
// Otherwise it keeps as much leading content as fits next to the ellipsis,
// cutting at most one fragment, and appends the ellipsis. When the
// ellipsis alone does not fit, only its leading part is returned.
func (m Metrics) TruncateByWidth(fragments []Fragment, maxWidth int, ellipsis Fragment) []Fragment {
	maxWidth = max(maxWidth, 0)
	if m.totalWidth(fragments) <= maxWidth {
		return fragments
	}

	ellipsisW := m.Width(ellipsis.Content)
	if ellipsisW >= maxWidth {
		cut := m.Truncate(ellipsis.Content, maxWidth)
		if cut == "" {
			return nil
		}
		return []Fragment{{Content: cut, Style: ellipsis.Style}}
	}

	rest := maxWidth - ellipsisW
	out := make([]Fragment, 0, len(fragments)+1)
	for _, f := range fragments {
		w := m.Width(f.Content)
		if w <= rest {
			out = append(out, f)
			rest -= w
			continue
		}
		if cut := m.Truncate(f.Content, rest); cut != "" {
			out = append(out, Fragment{Content: cut, Style: f.Style})
		}
		break
	}

	if ellipsis.Content != "" {
		out = append(out, ellipsis)
	}
	return out
}
