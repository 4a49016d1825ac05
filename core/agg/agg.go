// Package agg computes per-model statistics from benchmark records.
package agg

import (
	"sort"

	"github.com/huangsam/benchboard/schema"
)

// bucket accumulates scores for one radar category.
type bucket struct {
	sum   float64
	count int
}

// ComputeModelStats derives the statistics of one model from the full list of
// benchmarks. For each benchmark only the first valid entry referencing the
// model counts. A benchmark contributes to every radar category it is tagged
// with. The function is pure and never fails; a model with no scores yields
// zero totals and a zeroed radar.
func ComputeModelStats(benchmarks []schema.BenchmarkRecord, modelID string) schema.ModelStats {
	buckets := make(map[string]*bucket, len(schema.CategoryAxis))
	for _, c := range schema.CategoryAxis {
		buckets[c] = &bucket{}
	}

	var total float64
	participated := make([]schema.ParticipatedBenchmark, 0)

	for _, b := range benchmarks {
		score, ok := b.ScoreFor(modelID)
		if !ok {
			continue
		}
		total += score

		tags := uniqueTags(b.Tags)
		for _, tag := range tags {
			if bk, found := buckets[tag]; found {
				bk.sum += score
				bk.count++
			}
		}

		participated = append(participated, schema.ParticipatedBenchmark{
			BenchmarkID: b.ID,
			Name:        b.Name,
			Score:       score,
			Tags:        tags,
		})
	}

	sort.SliceStable(participated, func(i, j int) bool {
		return participated[i].Score > participated[j].Score
	})

	radar := make([]schema.RadarPoint, len(schema.CategoryAxis))
	for i, c := range schema.CategoryAxis {
		bk := buckets[c]
		radar[i] = schema.RadarPoint{
			Category: c,
			Value:    schema.RoundMean(bk.sum, bk.count),
			FullMark: schema.RadarFullMark,
		}
	}

	return schema.ModelStats{
		ModelID:                modelID,
		TotalBenchmarks:        len(participated),
		AverageScore:           schema.RoundMean(total, len(participated)),
		RadarData:              radar,
		ParticipatedBenchmarks: participated,
	}
}

// ComputeAllModelStats computes statistics for every model in the list.
func ComputeAllModelStats(benchmarks []schema.BenchmarkRecord, models []schema.ModelRecord) map[string]schema.ModelStats {
	out := make(map[string]schema.ModelStats, len(models))
	for _, m := range models {
		if _, done := out[m.ID]; done {
			continue
		}
		out[m.ID] = ComputeModelStats(benchmarks, m.ID)
	}
	return out
}

// BuildModelIndex joins models with their derived averages and publisher colors.
// The result keeps the order of the model list.
func BuildModelIndex(snap *schema.Snapshot, stats map[string]schema.ModelStats) []schema.ModelIndexItem {
	items := make([]schema.ModelIndexItem, 0, len(snap.Models))
	for _, m := range snap.Models {
		st, ok := stats[m.ID]
		if !ok {
			st = ComputeModelStats(snap.Benchmarks, m.ID)
		}
		items = append(items, schema.ModelIndexItem{
			ID:              m.ID,
			Name:            m.Name,
			Publisher:       m.Publisher,
			PublisherColor:  snap.PublisherInfo(m.Publisher).Color,
			ReleaseDate:     m.ReleaseDate,
			Params:          m.Params,
			AverageScore:    st.AverageScore,
			TotalBenchmarks: st.TotalBenchmarks,
		})
	}
	return items
}

// BuildComparableModels prepares every model for the comparison engine.
func BuildComparableModels(snap *schema.Snapshot, stats map[string]schema.ModelStats) []schema.ComparableModel {
	out := make([]schema.ComparableModel, 0, len(snap.Models))
	for _, m := range snap.Models {
		st, ok := stats[m.ID]
		if !ok {
			st = ComputeModelStats(snap.Benchmarks, m.ID)
		}
		scores := make(map[string]float64, st.TotalBenchmarks)
		for _, b := range snap.Benchmarks {
			if _, seen := scores[b.ID]; seen {
				continue
			}
			if score, found := b.ScoreFor(m.ID); found {
				scores[b.ID] = score
			}
		}
		out = append(out, schema.ComparableModel{
			ID:        m.ID,
			Name:      m.Name,
			Publisher: m.Publisher,
			Color:     snap.PublisherInfo(m.Publisher).Color,
			Radar:     st.RadarData,
			Scores:    scores,
		})
	}
	return out
}

// BuildBenchmarkMeta extracts the table metadata of every benchmark, in order.
func BuildBenchmarkMeta(benchmarks []schema.BenchmarkRecord) []schema.BenchmarkMeta {
	out := make([]schema.BenchmarkMeta, len(benchmarks))
	for i, b := range benchmarks {
		out[i] = schema.BenchmarkMeta{
			ID:             b.ID,
			Name:           b.Name,
			Unit:           b.Metrics.Unit,
			IsBetterHigher: b.Metrics.IsBetterHigher,
		}
	}
	return out
}

// uniqueTags collapses duplicate tags while keeping first-seen order.
func uniqueTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
