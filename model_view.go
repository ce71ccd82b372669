package main

import (
	"fmt"
	"strings"

	"matchline/internal/candidate"
	"matchline/internal/keys"
	"matchline/internal/layout"
	"matchline/internal/span"
	"matchline/internal/style"

	"github.com/charmbracelet/lipgloss"
)

var dialogMargin = layout.Margin{Horizontal: 2, Vertical: 1}

func (m model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	header := m.renderHeader()
	listW, listH, previewW, previewH := m.layout()

	listView := m.renderList(listW, listH)
	main := listView
	if m.previewEnabled && previewW > 0 {
		previewView := m.renderPreview(previewW, previewH)
		main = lipgloss.JoinHorizontal(lipgloss.Top, listView, " ", previewView)
	}

	view := lipgloss.JoinVertical(lipgloss.Left, header, main, m.renderFooter())
	if m.overlay == overlayNone {
		return view
	}
	return m.dialog.Paint(view, m.overlayArea())
}

// overlayArea is the content box of the open dialog, centred on screen
// with room for its margin.
func (m model) overlayArea() layout.Rect {
	screen := layout.Rect{Width: m.width, Height: m.height}
	inner := screen.Inset(dialogMargin)

	w, h := min(64, inner.Width), min(len(keys.Bindings())+8, inner.Height)
	if m.overlay == overlayError {
		h = min(4, inner.Height)
	}
	return layout.Centered(screen, w, h)
}

func (m model) renderHeader() string {
	queryStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(appTheme.Text)).Background(lipgloss.Color(appTheme.InputBG)).Padding(0, 1)
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(appTheme.Muted))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(appTheme.Error))

	scanState := "reading"
	if m.scanDone {
		scanState = "done"
	}
	status := fmt.Sprintf("%s | candidates %d | visible %d", scanState, len(m.candidates), len(m.filtered))
	if m.status != "" {
		status += " | " + m.status
	}

	line1 := queryStyle.Render(m.input.View())
	line2 := statusStyle.Render(status)
	if m.errMsg != "" {
		line2 += "  " + errStyle.Render(m.errMsg)
	}
	return lipgloss.JoinVertical(lipgloss.Left, line1, truncateRendered(line2, m.width))
}

func (m model) renderFooter() string {
	footer := span.Plain("up/down move  pgup/pgdn jump  tab preview  ctrl+y copy  enter select  f1 help  esc quit")
	st := style.New().Fg(appTheme.Muted)
	for i := range footer {
		footer[i].Style = st
	}
	return span.Render(span.TruncateByWidth(footer, m.width, m.rows.ellipsis))
}

func (m model) renderList(width int, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	if len(m.filtered) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(appTheme.Muted)).Width(width).Height(height)
		return emptyStyle.Render("no matches")
	}

	start := max(m.offset, 0)
	end := min(len(m.filtered), start+max(1, height/2))

	lines := make([]string, 0, height)
	for i := start; i < end; i++ {
		match := m.filtered[i]
		lineA, lineB := m.renderCandidateLines(m.candidates[match.Index], match, i == m.cursor, width)
		lines = append(lines, lineA)
		if len(lines) < height {
			lines = append(lines, lineB)
		}
		if len(lines) >= height {
			break
		}
	}

	for len(lines) < height {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

func (m model) renderCandidateLines(c candidate.Candidate, match candidate.Match, selected bool, width int) (string, string) {
	pad := m.rows.selection(selected)
	loc := m.rows.locationFragments(c, m.query, width, selected)
	text := m.rows.textFragments(c.Lang, c.Text, match.Positions, width, selected)
	return renderPadded(loc, width, pad), renderPadded(text, width, pad)
}

func (m model) renderPreview(width int, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(appTheme.Header)).Bold(true)
	numStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(appTheme.Dim))
	box := lipgloss.NewStyle().Width(width).Height(height)

	if m.preview.Err != "" {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(appTheme.Error))
		msg := headerStyle.Render("preview") + "\n" + errStyle.Render(truncatePlain(m.preview.Err, width))
		return box.Render(msg)
	}
	if len(m.preview.Lines) == 0 {
		return box.Render("")
	}

	lines := make([]string, 0, height)
	lines = append(lines, headerStyle.Render(truncatePlain("preview  "+m.preview.File, width)))

	maxCode := max(0, width-7)
	for i := 0; i < height-1 && i < len(m.preview.Lines); i++ {
		lineNo := m.preview.StartLine + i
		selected := lineNo == m.preview.SelectedLine

		text := m.preview.Lines[i]
		code := m.rows.textFragments(m.preview.Lang, text, candidate.Positions(text, m.query), maxCode, selected)
		lines = append(lines, numStyle.Render(fmt.Sprintf("%6d ", lineNo))+renderPadded(code, maxCode, m.rows.selection(selected)))
	}

	return box.Render(strings.Join(lines, "\n"))
}

// errorRows lays out an error for dialog.Lines, one wrapped cause per row.
func (r rowRenderer) errorRows(err error) [][]span.Fragment {
	title := style.New().Fg(r.palette.Error).AddModifier(style.Bold)
	text := style.New().Fg(r.palette.Text)

	rows := [][]span.Fragment{{span.Styled("error", title)}}
	for _, part := range strings.SplitAfter(err.Error(), ": ") {
		rows = append(rows, []span.Fragment{span.Styled(strings.TrimSpace(part), text)})
	}
	return rows
}

func helpMarkdown(bindings []keys.Binding) string {
	var b strings.Builder
	b.WriteString("# Keys\n\n| Key | Action |\n| --- | --- |\n")
	for _, binding := range bindings {
		fmt.Fprintf(&b, "| `%s` | %s |\n", binding.Keys, binding.Action)
	}
	b.WriteString("\nType to filter. Matched characters are underlined.\n")
	return b.String()
}

func truncatePlain(s string, width int) string {
	clean, _ := sanitizeText(s)
	return span.TruncateToWidth(clean, width)
}

func truncateRendered(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
