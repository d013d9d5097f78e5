package search

import (
	"sort"

	"github.com/kailas-cloud/lookup/internal/domain/search/result"
)

// merge concatenates per-category slots in slot order.
func merge(slots [][]result.Result) []result.Result {
	n := 0
	for _, s := range slots {
		n += len(s)
	}
	out := make([]result.Result, 0, n)
	for _, s := range slots {
		out = append(out, s...)
	}
	return out
}

// rank orders results by score descending, keeping input order for ties,
// and truncates to limit.
func rank(results []result.Result, limit int) []result.Result {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}
