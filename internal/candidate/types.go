package candidate

import (
	"io"
	"strconv"

	"matchline/internal/lang"
)

// Candidate is one line offered for selection.
type Candidate struct {
	ID   int
	File string
	Line int
	// Col is the 1-based byte column of the search hit, 0 when unknown.
	Col  int
	Text string
	Lang lang.ID
}

// Location is what the picker prints for a chosen candidate.
func (c Candidate) Location() string {
	switch {
	case c.File == "":
		return c.Text
	case c.Col > 0:
		return c.File + ":" + strconv.Itoa(c.Line) + ":" + strconv.Itoa(c.Col)
	case c.Line > 0:
		return c.File + ":" + strconv.Itoa(c.Line)
	default:
		return c.File
	}
}

// ProducerConfig selects the candidate source. A non-empty Pattern runs
// ripgrep under Root; otherwise Files are read line by line, "-" or an
// empty list meaning Stdin.
type ProducerConfig struct {
	Files  []string
	Stdin  io.Reader
	Follow bool

	Pattern  string
	Root     string
	Excludes []string
	NoIgnore bool
}

// Match is one filter hit. Positions are byte offsets into the
// candidate's Text.
type Match struct {
	Index     int
	Score     int
	Positions []int
}

var filterParallelThreshold = 20_000
var filterMinChunkSize = 4_096
