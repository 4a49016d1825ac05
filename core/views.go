package core

import (
	"sort"
	"strings"

	"github.com/huangsam/benchboard/core/agg"
	"github.com/huangsam/benchboard/core/algo"
	"github.com/huangsam/benchboard/schema"
)

// BuildLeaderboard resolves a benchmark snapshot against the models of snap.
// Only the first valid entry of each known model is kept. Entries are ranked
// best first, following the benchmark's direction, and Percent is each
// score's share of the highest score.
func BuildLeaderboard(snap *schema.Snapshot, bench schema.BenchmarkRecord) schema.LeaderboardResult {
	entries := make([]schema.LeaderboardEntry, 0, len(bench.Snapshot))
	seen := make(map[string]struct{}, len(bench.Snapshot))
	resolved := make([]schema.ScoreEntry, 0, len(bench.Snapshot))
	for _, e := range bench.Snapshot {
		if !e.Valid() {
			continue
		}
		if _, dup := seen[e.ModelRef]; dup {
			continue
		}
		model, ok := snap.ModelByID(e.ModelRef)
		if !ok {
			continue
		}
		seen[e.ModelRef] = struct{}{}
		resolved = append(resolved, e)
		info := snap.PublisherInfo(model.Publisher)
		entries = append(entries, schema.LeaderboardEntry{
			ModelID:        model.ID,
			ModelName:      model.Name,
			Publisher:      model.Publisher,
			PublisherColor: info.Color,
			PublisherLogo:  info.Logo,
			Score:          e.Score,
		})
	}

	higher := bench.Metrics.IsBetterHigher
	sort.SliceStable(entries, func(i, j int) bool {
		if higher {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Score < entries[j].Score
	})

	maxScore := algo.MaxScore(resolved)
	for i := range entries {
		entries[i].Rank = i + 1
		if maxScore > 0 {
			entries[i].Percent = entries[i].Score / maxScore * 100
		}
	}

	summary := schema.NewBenchmarkSummary(bench)
	summary.ModelCount = len(entries)
	return schema.LeaderboardResult{
		Benchmark:      summary,
		Description:    bench.Description,
		Link:           bench.Link,
		IsBetterHigher: higher,
		IsFromAA:       bench.IsFromAA,
		AALink:         bench.AALink,
		MaxScore:       maxScore,
		ShowHeat:       bench.HeatScore() > 0,
		Entries:        entries,
	}
}

// matchesPublisher compares publisher names by case and by slug, so a name
// such as "Meta AI" also matches "meta-ai".
func matchesPublisher(a, b string) bool {
	return strings.EqualFold(a, b) || schema.Slugify(a) == schema.Slugify(b)
}

// BuildPublisherPage collects the models of the named publisher. It reports
// false when neither a model nor a publisher record carries the name.
func BuildPublisherPage(snap *schema.Snapshot, name string, sortKey schema.SortKey) (schema.PublisherResult, bool) {
	result := schema.PublisherResult{SortKey: sortKey, Models: []schema.ModelIndexItem{}}
	found := false
	for _, p := range snap.Publishers {
		if matchesPublisher(p.Name, name) || matchesPublisher(p.ID, name) {
			result.Name = p.Name
			result.Website = p.Website
			found = true
			break
		}
	}

	stats := agg.ComputeAllModelStats(snap.Benchmarks, snap.Models)
	for _, item := range agg.BuildModelIndex(snap, stats) {
		if !matchesPublisher(item.Publisher, name) {
			continue
		}
		if result.Name == "" {
			result.Name = item.Publisher
		}
		found = true
		result.Models = append(result.Models, item)
	}
	if !found {
		return schema.PublisherResult{}, false
	}

	info := snap.PublisherInfo(result.Name)
	result.Color = info.Color
	result.Logo = info.Logo
	algo.SortItems(result.Models, sortKey)
	return result, true
}

// BuildPublisherList summarizes every publisher named by a model or a
// publisher record, sorted by name.
func BuildPublisherList(snap *schema.Snapshot) []schema.PublisherSummary {
	names := algo.CollectPublishers(snap.Models)
	for _, p := range snap.Publishers {
		names = append(names, p.Name)
	}
	names = schema.UniqueSorted(names)

	out := make([]schema.PublisherSummary, 0, len(names))
	for _, name := range names {
		info := snap.PublisherInfo(name)
		summary := schema.PublisherSummary{Name: name, Color: info.Color, Logo: info.Logo}
		for _, m := range snap.Models {
			if m.Publisher == name {
				summary.ModelCount++
			}
		}
		for _, b := range snap.Benchmarks {
			if b.Publisher == name {
				summary.BenchmarkCount++
			}
		}
		out = append(out, summary)
	}
	return out
}

// BuildTagList counts the benchmarks of every tag, sorted by tag.
func BuildTagList(benchmarks []schema.BenchmarkRecord) []schema.TagSummary {
	tags := algo.CollectTags(benchmarks)
	out := make([]schema.TagSummary, len(tags))
	for i, tag := range tags {
		count := 0
		for _, b := range benchmarks {
			if b.HasTag(tag) {
				count++
			}
		}
		out[i] = schema.TagSummary{Tag: tag, BenchmarkCount: count, OnRadar: schema.IsAxisCategory(tag)}
	}
	return out
}
