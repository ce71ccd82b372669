package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"matchline/internal/candidate"
	"matchline/internal/dialog"
	"matchline/internal/keys"
	"matchline/internal/lang"
	"matchline/internal/readfile"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type previewState struct {
	File         string
	Lang         lang.ID
	StartLine    int
	Lines        []string
	SelectedLine int
	Err          string
}

type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayHelp
	overlayError
)

type model struct {
	opts options

	width  int
	height int

	input textinput.Model
	query string

	candidates []candidate.Candidate
	filtered   []candidate.Match

	cursor int
	offset int

	producerOut  <-chan candidate.Candidate
	producerDone <-chan error
	scanDone     bool

	filterPending          bool
	filterDue              time.Time
	resetSelectionOnFilter bool
	lastFilterQuery        string
	lastFilterCandidateN   int

	rows rowRenderer

	previewEnabled bool
	preview        previewState
	fileCache      map[string][]string
	previewKey     string

	overlay overlayKind
	dialog  dialog.Dialog

	// selection is printed to stdout once the program exits.
	selection string

	status string
	errMsg string
}

type tickMsg struct{}

type editorDoneMsg struct{ err error }

func tickCmd() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
}

func newModel(opts options, out <-chan candidate.Candidate, done <-chan error, rows rowRenderer) model {
	input := textinput.New()
	input.Prompt = "query> "
	input.Focus()
	input.CharLimit = 256
	input.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(appTheme.Accent))

	return model{
		opts:           opts,
		input:          input,
		producerOut:    out,
		producerDone:   done,
		rows:           rows,
		previewEnabled: opts.Preview,
		fileCache:      make(map[string][]string),
	}
}

func (m model) Init() tea.Cmd {
	return tickCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(16, m.width-16)
		m.previewKey = ""
		m.scheduleFilter(0)

	case tickMsg:
		m.drainProducer(4000)
		m.drainProducerDone()

		if m.filterPending && time.Now().After(m.filterDue) {
			m.applyFilter()
		}

		m.ensureCursor()
		m.updatePreview()
		return m, tickCmd()

	case editorDoneMsg:
		if msg.err != nil {
			m.status = "editor failed: " + msg.err.Error()
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyMsg:
		action := keys.Classify(msg)
		if m.overlay != overlayNone {
			if action == keys.Quit || action == keys.Help || action == keys.Accept {
				m.overlay = overlayNone
			}
			return m, nil
		}
		if cmd, handled := m.handleAction(action); handled {
			return m, cmd
		}

		prev := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if next := m.input.Value(); next != prev {
			m.query = next
			m.resetSelectionOnFilter = true
			m.scheduleFilter(m.opts.Debounce)
		}
		return m, cmd
	}

	return m, nil
}

func (m *model) handleAction(action keys.Action) (tea.Cmd, bool) {
	switch action {
	case keys.Quit:
		return tea.Quit, true
	case keys.Up:
		m.moveCursor(-1)
	case keys.Down:
		m.moveCursor(1)
	case keys.PageUp:
		m.moveCursor(-m.rowsPerPage())
	case keys.PageDown:
		m.moveCursor(m.rowsPerPage())
	case keys.Home:
		m.cursor = 0
		m.ensureCursor()
	case keys.End:
		m.cursor = len(m.filtered) - 1
		m.ensureCursor()
	case keys.TogglePreview:
		m.previewEnabled = !m.previewEnabled
		m.previewKey = ""
	case keys.Help:
		m.openHelp()
	case keys.Copy:
		cand, ok := m.selectedCandidate()
		if !ok {
			return nil, true
		}
		loc := cand.Location()
		if err := copyToClipboard(loc); err != nil {
			m.status = "copy failed: " + err.Error()
		} else {
			m.status = "copied " + loc
		}
	case keys.Accept:
		return m.accept(), true
	default:
		return nil, false
	}
	m.updatePreview()
	return nil, true
}

func (m *model) accept() tea.Cmd {
	cand, ok := m.selectedCandidate()
	if !ok {
		return nil
	}
	if strings.TrimSpace(m.opts.EditorCmd) == "" || cand.File == "" {
		m.selection = cand.Location()
		if cand.File == "" {
			m.selection = cand.Text
		}
		return tea.Quit
	}

	cmd, err := editorCommand(m.opts.EditorCmd, m.absPath(cand.File), cand.Line, cand.Col)
	if err != nil {
		m.status = "open failed: " + err.Error()
		return nil
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg { return editorDoneMsg{err: err} })
}

func (m *model) openHelp() {
	m.overlay = overlayHelp
	m.dialog = dialog.Dialog{
		Content:    dialog.Markdown{Source: helpMarkdown(keys.Bindings()), Style: m.opts.HelpStyle},
		Margin:     dialogMargin,
		Background: appTheme.InputBG,
	}
}

func (m *model) showError(err error) {
	m.errMsg = err.Error()
	m.overlay = overlayError
	m.dialog = dialog.Dialog{
		Content:    dialog.Lines{Rows: m.rows.errorRows(err), Ellipsis: m.rows.ellipsis},
		Margin:     dialogMargin,
		Background: appTheme.InputBG,
	}
}

func (m *model) moveCursor(delta int) {
	if len(m.filtered) == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(m.filtered)-1)
	m.ensureCursor()
}

func (m *model) ensureCursor() {
	if len(m.filtered) == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	m.cursor = clamp(m.cursor, 0, len(m.filtered)-1)

	page := m.rowsPerPage()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+page {
		m.offset = m.cursor - page + 1
	}
	m.offset = clamp(m.offset, 0, max(0, len(m.filtered)-page))
}

func (m *model) drainProducer(maxItems int) {
	needFilter := false
	defer func() {
		if needFilter && !m.resetSelectionOnFilter {
			m.scheduleFilter(0)
		}
	}()

	for range maxItems {
		select {
		case cand, ok := <-m.producerOut:
			if !ok {
				m.producerOut = nil
				return
			}
			m.candidates = append(m.candidates, cand)
			if strings.TrimSpace(m.query) == "" {
				m.filtered = append(m.filtered, candidate.Match{Index: len(m.candidates) - 1})
				m.lastFilterCandidateN = len(m.candidates)
			} else {
				needFilter = true
			}
		default:
			return
		}
	}
}

func (m *model) drainProducerDone() {
	if m.scanDone || m.producerDone == nil {
		return
	}
	select {
	case err, ok := <-m.producerDone:
		m.scanDone = true
		m.producerDone = nil
		if ok && err != nil {
			log.Printf("source failed: %v", err)
			m.showError(err)
			return
		}
		log.Printf("source done: %d candidates", len(m.candidates))
	default:
	}
}

func (m *model) scheduleFilter(delay time.Duration) {
	m.filterPending = true
	m.filterDue = time.Now().Add(delay)
}

func (m *model) applyFilter() {
	m.filterPending = false
	query := strings.TrimSpace(m.query)
	sameQuery := query == m.lastFilterQuery
	candidateN := len(m.candidates)
	if candidateN == m.lastFilterCandidateN && sameQuery {
		return
	}

	resetSelection := m.resetSelectionOnFilter
	m.resetSelectionOnFilter = false

	selectedID := 0
	if !resetSelection {
		if cand, ok := m.selectedCandidate(); ok {
			selectedID = cand.ID
		}
	}

	started := time.Now()
	switch {
	case !resetSelection && sameQuery && query != "" && candidateN > m.lastFilterCandidateN:
		added := candidate.FilterRange(m.candidates, m.lastFilterCandidateN, candidateN, query)
		m.filtered = candidate.MergeMatches(m.filtered, added)
	case shouldRefine(query, m.lastFilterQuery, candidateN, m.lastFilterCandidateN):
		m.filtered = candidate.Refine(m.candidates, m.filtered, query)
	default:
		m.filtered = candidate.Filter(m.candidates, query)
	}
	log.Printf("filter %q: %d of %d in %s", query, len(m.filtered), candidateN, time.Since(started))
	m.lastFilterQuery = query
	m.lastFilterCandidateN = candidateN

	m.cursor = 0
	m.offset = 0
	if len(m.filtered) == 0 {
		m.previewKey = ""
		return
	}
	if resetSelection || selectedID == 0 {
		return
	}
	for i, match := range m.filtered {
		if m.candidates[match.Index].ID == selectedID {
			m.cursor = i
			m.ensureCursor()
			return
		}
	}
}

func (m *model) updatePreview() {
	cand, ok := m.selectedCandidate()
	if !m.previewEnabled || !ok || cand.File == "" {
		m.preview = previewState{}
		m.previewKey = ""
		return
	}

	key := fmt.Sprintf("%s:%d:%d", cand.File, cand.Line, m.height)
	if key == m.previewKey {
		return
	}
	m.previewKey = key

	fileLines, err := m.loadFile(cand.File)
	if err != nil {
		m.preview = previewState{File: cand.File, Err: err.Error()}
		return
	}
	if len(fileLines) == 0 {
		m.preview = previewState{File: cand.File, Err: "empty file"}
		return
	}

	_, _, _, previewH := m.layout()
	visible := max(1, previewH-1)
	start := max(1, cand.Line-visible/4)
	end := min(len(fileLines), start+visible-1)
	if end-start+1 < visible {
		start = max(1, end-visible+1)
	}

	m.preview = previewState{
		File:         cand.File,
		Lang:         cand.Lang,
		StartLine:    start,
		Lines:        fileLines[start-1 : end],
		SelectedLine: cand.Line,
	}
}

func (m *model) loadFile(file string) ([]string, error) {
	if lines, ok := m.fileCache[file]; ok {
		return lines, nil
	}
	lines, err := readfile.Lines(m.absPath(file))
	if err != nil {
		return nil, err
	}
	m.fileCache[file] = lines
	return lines, nil
}

func (m model) absPath(file string) string {
	if filepath.IsAbs(file) || m.opts.Pattern == "" {
		return file
	}
	return filepath.Join(m.opts.Root, file)
}

func (m model) selectedCandidate() (candidate.Candidate, bool) {
	if len(m.filtered) == 0 || m.cursor < 0 || m.cursor >= len(m.filtered) {
		return candidate.Candidate{}, false
	}
	return m.candidates[m.filtered[m.cursor].Index], true
}

func (m model) rowsPerPage() int {
	_, listH, _, _ := m.layout()
	return max(1, listH/2)
}

func (m model) layout() (listWidth int, listHeight int, previewWidth int, previewHeight int) {
	headerHeight := 2
	footerHeight := 1
	contentH := max(m.height-headerHeight-footerHeight, 1)

	if !m.previewEnabled || m.width < 90 {
		return m.width, contentH, 0, 0
	}

	previewWidth = max(30, (m.width*9+10)/20)
	listWidth = m.width - previewWidth - 1
	if listWidth < 20 {
		return m.width, contentH, 0, 0
	}
	return listWidth, contentH, previewWidth, contentH
}
