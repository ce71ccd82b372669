package candidate

import (
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
)

// textSource exposes candidate texts to fuzzy, optionally through an index
// subset.
type textSource struct {
	candidates []Candidate
	indexes    []int
}

func (s textSource) String(i int) string {
	if s.indexes != nil {
		return s.candidates[s.indexes[i]].Text
	}
	return s.candidates[i].Text
}

func (s textSource) Len() int {
	if s.indexes != nil {
		return len(s.indexes)
	}
	return len(s.candidates)
}

func (s textSource) index(i int) int {
	if s.indexes != nil {
		return s.indexes[i]
	}
	return i
}

// Filter ranks candidates by fuzzy match of query against their text.
// An empty query keeps every candidate in input order.
func Filter(candidates []Candidate, query string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]Match, len(candidates))
		for i := range candidates {
			out[i] = Match{Index: i}
		}
		return out
	}
	return filterSource(textSource{candidates: candidates}, query)
}

// Refine filters only the candidates in prev. When query extends the query
// that produced prev the result equals Filter(candidates, query).
func Refine(candidates []Candidate, prev []Match, query string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return Filter(candidates, query)
	}
	if len(prev) == 0 {
		return nil
	}
	indexes := make([]int, 0, len(prev))
	for _, m := range prev {
		if m.Index >= 0 && m.Index < len(candidates) {
			indexes = append(indexes, m.Index)
		}
	}
	slices.Sort(indexes)
	return filterSource(textSource{candidates: candidates, indexes: indexes}, query)
}

func filterSource(src textSource, query string) []Match {
	n := src.Len()
	workers := filterWorkerCount(n)

	var out []Match
	if workers <= 1 {
		out = findRange(src, query, 0, n)
	} else {
		parts := make([][]Match, workers)
		var wg sync.WaitGroup
		for worker := 0; worker < workers; worker++ {
			start := worker * n / workers
			end := (worker + 1) * n / workers
			wg.Add(1)
			go func(slot int, start int, end int) {
				defer wg.Done()
				parts[slot] = findRange(src, query, start, end)
			}(worker, start, end)
		}
		wg.Wait()
		out = slices.Concat(parts...)
	}

	sortMatches(out)
	return out
}

type rangeSource struct {
	src   textSource
	start int
	end   int
}

func (r rangeSource) String(i int) string { return r.src.String(r.start + i) }
func (r rangeSource) Len() int            { return r.end - r.start }

func findRange(src textSource, query string, start int, end int) []Match {
	if start >= end {
		return nil
	}
	found := fuzzy.FindFrom(query, rangeSource{src: src, start: start, end: end})
	out := make([]Match, 0, len(found))
	for _, f := range found {
		out = append(out, Match{
			Index:     src.index(start + f.Index),
			Score:     f.Score,
			Positions: f.MatchedIndexes,
		})
	}
	return out
}

func sortMatches(out []Match) {
	slices.SortStableFunc(out, compareMatches)
}

func compareMatches(a Match, b Match) int {
	if a.Score != b.Score {
		return b.Score - a.Score
	}
	return a.Index - b.Index
}

func filterWorkerCount(n int) int {
	if n < filterParallelThreshold {
		return 1
	}

	workers := runtime.GOMAXPROCS(0)
	maxUseful := n / filterMinChunkSize
	workers = min(workers, maxUseful)
	if workers < 2 {
		return 1
	}
	return workers
}

// FilterRange filters candidates[start:end] only, for appending newly
// streamed candidates to an existing result with MergeMatches.
func FilterRange(candidates []Candidate, start int, end int, query string) []Match {
	start = max(start, 0)
	end = min(end, len(candidates))
	if start >= end {
		return nil
	}
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]Match, 0, end-start)
		for i := start; i < end; i++ {
			out = append(out, Match{Index: i})
		}
		return out
	}

	indexes := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		indexes = append(indexes, i)
	}
	return filterSource(textSource{candidates: candidates, indexes: indexes}, query)
}

// MergeMatches merges two results that are each in Filter order.
func MergeMatches(left []Match, right []Match) []Match {
	if len(left) == 0 {
		return right
	}
	if len(right) == 0 {
		return left
	}

	out := make([]Match, 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		if compareMatches(left[i], right[j]) <= 0 {
			out = append(out, left[i])
			i++
		} else {
			out = append(out, right[j])
			j++
		}
	}
	out = append(out, left[i:]...)
	return append(out, right[j:]...)
}
