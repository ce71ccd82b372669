package candidate

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Positions returns the byte offsets in text that fuzzy matches for query,
// the same offsets Filter reports when text is a candidate line. It
// returns nil when query is blank or does not match.
func Positions(text string, query string) []int {
	query = strings.TrimSpace(query)
	if query == "" || text == "" {
		return nil
	}
	found := fuzzy.Find(query, []string{text})
	if len(found) == 0 {
		return nil
	}
	return found[0].MatchedIndexes
}
