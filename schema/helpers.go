package schema

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Slugify lowercases s, replaces runs of non-alphanumerics with "-", and
// trims leading and trailing dashes.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// NormalizeScore converts a fractional score to the 0-100 scale, rounded to
// two decimals. Non-finite scores pass through unchanged.
func NormalizeScore(score float64) float64 {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return score
	}
	return math.Round(score*100*100) / 100
}

// NormalizeSnapshot rescales every entry of a snapshot whose largest valid
// score is at most 1.0. Snapshots already on the 0-100 scale are left alone,
// including their small scores.
func NormalizeSnapshot(entries []ScoreEntry) {
	top, seen := 0.0, false
	for _, e := range entries {
		if math.IsNaN(e.Score) || math.IsInf(e.Score, 0) {
			continue
		}
		if !seen || e.Score > top {
			top, seen = e.Score, true
		}
	}
	if !seen || top > 1.0 {
		return
	}
	for i := range entries {
		entries[i].Score = NormalizeScore(entries[i].Score)
	}
}

// UniqueSorted returns the sorted set of non-empty values.
func UniqueSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// IsAllFilter reports whether a filter value disables filtering.
func IsAllFilter(v string) bool {
	return v == "" || v == AllFilter
}
