// Package score implements the relevance heuristic used to order search
// candidates. It is a pure string-matching function: no index, no state.
package score

import "strings"

// Score weights.
const (
	// MaxScore is the upper bound of every score, including the token branch.
	MaxScore = 100
	// Substring is awarded when the query appears anywhere but the start.
	Substring = 80
	// TokenPrefix is added per candidate token starting with a query token.
	TokenPrefix = 60
	// TokenContains is added per candidate token containing a query token.
	TokenContains = 40
)

// Score rates how well candidate matches query, case-insensitively.
//
// A contiguous match at the start of candidate scores MaxScore, anywhere
// else Substring. Otherwise every (query token, candidate token) pair
// contributes TokenPrefix or TokenContains, and the sum is clamped to
// MaxScore. An empty query scores 0.
func Score(query, candidate string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0
	}
	text := strings.ToLower(candidate)

	if strings.Contains(text, q) {
		if strings.HasPrefix(text, q) {
			return MaxScore
		}
		return Substring
	}

	total := 0
	textTokens := strings.Fields(text)
	for _, qt := range strings.Fields(q) {
		for _, tt := range textTokens {
			switch {
			case strings.HasPrefix(tt, qt):
				total += TokenPrefix
			case strings.Contains(tt, qt):
				total += TokenContains
			}
		}
		if total >= MaxScore {
			return MaxScore
		}
	}
	return total
}

// Text joins the matchable fields of a candidate with single spaces,
// skipping empty ones, so the result can be passed to Score.
func Text(fields ...string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}
