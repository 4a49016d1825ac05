package algo

import (
	"strings"

	"github.com/huangsam/benchboard/schema"
)

// SearchOptions returns the models whose name or publisher contains text,
// in their original order, capped at limit. A non-positive limit uses
// schema.MaxOptionResults.
func SearchOptions(models []schema.ModelIndexItem, text string, limit int) []schema.ModelIndexItem {
	if limit <= 0 {
		limit = schema.MaxOptionResults
	}
	needle := strings.ToLower(strings.TrimSpace(text))
	out := make([]schema.ModelIndexItem, 0, min(limit, len(models)))
	for _, m := range models {
		if len(out) >= limit {
			break
		}
		if needle == "" ||
			strings.Contains(strings.ToLower(m.Name), needle) ||
			strings.Contains(strings.ToLower(m.Publisher), needle) {
			out = append(out, m)
		}
	}
	return out
}

// CollectTags returns the sorted set of tags used by the benchmarks.
func CollectTags(benchmarks []schema.BenchmarkRecord) []string {
	var all []string
	for _, b := range benchmarks {
		all = append(all, b.Tags...)
	}
	return schema.UniqueSorted(all)
}

// CollectPublishers returns the sorted set of publishers of the models.
func CollectPublishers(models []schema.ModelRecord) []string {
	all := make([]string, 0, len(models))
	for _, m := range models {
		all = append(all, m.Publisher)
	}
	return schema.UniqueSorted(all)
}

// MaxScore is the largest valid score in a snapshot, or zero.
func MaxScore(entries []schema.ScoreEntry) float64 {
	var highest float64
	for _, e := range entries {
		if e.Valid() && e.Score > highest {
			highest = e.Score
		}
	}
	return highest
}
