package agg

import (
	"math"
	"testing"

	"github.com/huangsam/benchboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bench(id string, tags []string, entries ...schema.ScoreEntry) schema.BenchmarkRecord {
	return schema.BenchmarkRecord{
		ID:       id,
		Name:     id,
		Tags:     tags,
		Metrics:  schema.Metrics{Unit: "%", IsBetterHigher: true},
		Snapshot: entries,
	}
}

func entry(ref string, score float64) schema.ScoreEntry {
	return schema.ScoreEntry{ModelRef: ref, Score: score}
}

func radarMap(stats schema.ModelStats) map[string]int {
	out := make(map[string]int, len(stats.RadarData))
	for _, p := range stats.RadarData {
		out[p.Category] = p.Value
	}
	return out
}

func TestComputeModelStatsBasic(t *testing.T) {
	benchmarks := []schema.BenchmarkRecord{
		bench("B1", []string{"Coding"}, entry("M1", 80)),
		bench("B2", []string{"Coding", "Reasoning"}, entry("M1", 90)),
		bench("B3", []string{"Knowledge"}, entry("M2", 70)),
	}

	stats := ComputeModelStats(benchmarks, "M1")
	assert.Equal(t, "M1", stats.ModelID)
	assert.Equal(t, 2, stats.TotalBenchmarks)
	assert.Equal(t, 85, stats.AverageScore)

	radar := radarMap(stats)
	assert.Equal(t, 85, radar["Coding"])
	assert.Equal(t, 90, radar["Reasoning"])
	assert.Equal(t, 0, radar["Knowledge"])
	assert.Equal(t, 0, radar["Agent"])

	require.Len(t, stats.ParticipatedBenchmarks, 2)
	assert.Equal(t, "B2", stats.ParticipatedBenchmarks[0].BenchmarkID)
	assert.Equal(t, 90.0, stats.ParticipatedBenchmarks[0].Score)
	assert.Equal(t, "B1", stats.ParticipatedBenchmarks[1].BenchmarkID)
}

func TestComputeModelStatsRadarShape(t *testing.T) {
	stats := ComputeModelStats(nil, "nobody")

	require.Len(t, stats.RadarData, len(schema.CategoryAxis))
	for i, c := range schema.CategoryAxis {
		assert.Equal(t, c, stats.RadarData[i].Category)
		assert.Equal(t, 0, stats.RadarData[i].Value)
		assert.Equal(t, schema.RadarFullMark, stats.RadarData[i].FullMark)
	}
	assert.Equal(t, 0, stats.TotalBenchmarks)
	assert.Equal(t, 0, stats.AverageScore)
	assert.NotNil(t, stats.ParticipatedBenchmarks)
	assert.Empty(t, stats.ParticipatedBenchmarks)
}

func TestComputeModelStatsFirstMatchWins(t *testing.T) {
	benchmarks := []schema.BenchmarkRecord{
		bench("B1", []string{"Coding"}, entry("M1", 60), entry("M1", 95)),
	}

	stats := ComputeModelStats(benchmarks, "M1")
	assert.Equal(t, 1, stats.TotalBenchmarks)
	assert.Equal(t, 60, stats.AverageScore)
	assert.Equal(t, 60, radarMap(stats)["Coding"])
}

func TestComputeModelStatsSkipsMalformed(t *testing.T) {
	benchmarks := []schema.BenchmarkRecord{
		bench("B1", []string{"Coding"}, entry("", 99), entry("M1", math.NaN()), entry("M1", 70)),
		bench("B2", []string{"Coding"}, entry("M1", math.Inf(1))),
		bench("B3", []string{"Agent"}, entry("M2", 10)),
	}

	stats := ComputeModelStats(benchmarks, "M1")
	assert.Equal(t, 1, stats.TotalBenchmarks)
	assert.Equal(t, 70, stats.AverageScore)
	assert.Equal(t, 0, radarMap(stats)["Agent"])
}

func TestComputeModelStatsRounding(t *testing.T) {
	benchmarks := []schema.BenchmarkRecord{
		bench("B1", []string{"Agent"}, entry("M1", 70)),
		bench("B2", []string{"Agent"}, entry("M1", 71)),
	}

	stats := ComputeModelStats(benchmarks, "M1")
	assert.Equal(t, 71, stats.AverageScore)
	assert.Equal(t, 71, radarMap(stats)["Agent"])
}

func TestComputeModelStatsIgnoresNonAxisAndDuplicateTags(t *testing.T) {
	benchmarks := []schema.BenchmarkRecord{
		bench("B1", []string{"Math", "Coding", "Coding"}, entry("M1", 50)),
		bench("B2", []string{"Coding"}, entry("M1", 100)),
	}

	stats := ComputeModelStats(benchmarks, "M1")
	assert.Equal(t, 75, radarMap(stats)["Coding"])
	assert.Equal(t, []string{"Math", "Coding"}, stats.ParticipatedBenchmarks[1].Tags)
}

func TestComputeModelStatsStableOrderOnTies(t *testing.T) {
	benchmarks := []schema.BenchmarkRecord{
		bench("B1", nil, entry("M1", 50)),
		bench("B2", nil, entry("M1", 50)),
		bench("B3", nil, entry("M1", 50)),
	}

	stats := ComputeModelStats(benchmarks, "M1")
	ids := make([]string, 0, 3)
	for _, p := range stats.ParticipatedBenchmarks {
		ids = append(ids, p.BenchmarkID)
	}
	assert.Equal(t, []string{"B1", "B2", "B3"}, ids)
}

func TestComputeModelStatsDeterministic(t *testing.T) {
	benchmarks := []schema.BenchmarkRecord{
		bench("B1", []string{"Coding", "Agent"}, entry("M1", 33.3)),
		bench("B2", []string{"Reasoning"}, entry("M1", 66.6)),
	}
	assert.Equal(t, ComputeModelStats(benchmarks, "M1"), ComputeModelStats(benchmarks, "M1"))
}

func TestComputeAllModelStats(t *testing.T) {
	benchmarks := []schema.BenchmarkRecord{
		bench("B1", []string{"Coding"}, entry("M1", 80), entry("M2", 60)),
	}
	models := []schema.ModelRecord{{ID: "M1"}, {ID: "M2"}, {ID: "M3"}}

	all := ComputeAllModelStats(benchmarks, models)
	require.Len(t, all, 3)
	assert.Equal(t, 80, all["M1"].AverageScore)
	assert.Equal(t, 60, all["M2"].AverageScore)
	assert.Equal(t, 0, all["M3"].TotalBenchmarks)
}

func TestBuildModelIndexAndComparables(t *testing.T) {
	snap := &schema.Snapshot{
		Benchmarks: []schema.BenchmarkRecord{
			bench("B1", []string{"Coding"}, entry("openai/gpt", 80)),
		},
		Models: []schema.ModelRecord{
			{ID: "openai/gpt", Name: "GPT", Publisher: "OpenAI", ReleaseDate: "2025-01-01"},
			{ID: "acme/x", Name: "X", Publisher: "Acme"},
		},
	}
	stats := ComputeAllModelStats(snap.Benchmarks, snap.Models)

	index := BuildModelIndex(snap, stats)
	require.Len(t, index, 2)
	assert.Equal(t, "#1f1f1f", index[0].PublisherColor)
	assert.Equal(t, 80, index[0].AverageScore)
	assert.Equal(t, schema.DefaultPublisher.Color, index[1].PublisherColor)

	comparables := BuildComparableModels(snap, stats)
	require.Len(t, comparables, 2)
	assert.Equal(t, map[string]float64{"B1": 80}, comparables[0].Scores)
	assert.Empty(t, comparables[1].Scores)
	assert.Len(t, comparables[1].Radar, len(schema.CategoryAxis))

	meta := BuildBenchmarkMeta(snap.Benchmarks)
	assert.Equal(t, []schema.BenchmarkMeta{{ID: "B1", Name: "B1", Unit: "%", IsBetterHigher: true}}, meta)
}
