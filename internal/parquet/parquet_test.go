package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/benchboard/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readBack[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[T](file)
	defer reader.Close()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	return rows[:n]
}

func TestStructTags(t *testing.T) {
	tests := []struct {
		name    string
		row     any
		columns []string
	}{
		{"Run", new(Run), []string{"run_id", "run_key", "command", "start_time", "end_time", "run_duration_ms", "total_items", "config_params"}},
		{"RunItem", new(RunItem), []string{"run_id", "item_rank", "item_id", "item_kind", "score", "item_time"}},
		{"ModelRow", new(ModelRow), []string{"rank", "model_id", "name", "publisher", "average_score", "total_benchmarks", "label"}},
		{"BenchmarkRow", new(BenchmarkRow), []string{"rank", "benchmark_id", "tags", "heat_score", "model_count"}},
		{"LeaderboardRow", new(LeaderboardRow), []string{"benchmark_id", "rank", "model_id", "score", "percent"}},
		{"ComparisonCellRow", new(ComparisonCellRow), []string{"benchmark_id", "model_id", "score", "winner"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sch := parquet.SchemaOf(tt.row)
			require.NotNil(t, sch)
			for _, colName := range tt.columns {
				_, ok := sch.Lookup(colName)
				assert.True(t, ok, "Column %s should exist in schema", colName)
			}
		})
	}
}

func TestWriteRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")

	now := time.Now()
	end := now.Add(2 * time.Second)
	duration := int64(2000)
	total := int32(5)
	config := `{"command":"models"}`
	records := []schema.RunRecord{
		{RunID: 1, RunKey: "k1", Command: "models", StartTime: now, EndTime: &end, RunDuration: &duration, TotalItems: &total, ConfigParams: &config},
		{RunID: 2, RunKey: "k2", Command: "compare", StartTime: now},
	}

	data := ConvertRunRecords(records)
	require.NoError(t, WriteRunsParquet(data, outputPath))

	rows := readBack[Run](t, outputPath)
	require.Len(t, rows, 2)
	assert.Equal(t, "models", rows[0].Command)
	require.NotNil(t, rows[0].EndTime)
	assert.WithinDuration(t, end, *rows[0].EndTime, time.Nanosecond)
	require.NotNil(t, rows[0].RunDurationMs)
	assert.Equal(t, duration, *rows[0].RunDurationMs)
	require.NotNil(t, rows[0].ConfigParams)
	assert.Equal(t, config, *rows[0].ConfigParams)

	assert.Nil(t, rows[1].EndTime)
	assert.Nil(t, rows[1].RunDurationMs)
	assert.Nil(t, rows[1].TotalItems)
	assert.Nil(t, rows[1].ConfigParams)
}

func TestWriteRunItemsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "run_items.parquet")

	score := 74.9
	records := []schema.RunItemRecord{
		{RunID: 1, Rank: 1, ItemID: "openai/gpt-5", ItemKind: "model", Score: &score, ItemTime: time.Now()},
		{RunID: 1, Rank: 2, ItemID: "mystery/model-x", ItemKind: "entry"},
	}
	require.NoError(t, WriteRunItemsParquet(ConvertRunItemRecords(records), outputPath))

	rows := readBack[RunItem](t, outputPath)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].Score)
	assert.InDelta(t, 74.9, *rows[0].Score, 1e-9)
	assert.Nil(t, rows[1].Score)
	assert.Equal(t, int32(2), rows[1].ItemRank)
}

func TestWriteModelsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "models.parquet")

	items := schema.EnrichModels([]schema.ModelIndexItem{
		{ID: "openai/gpt-5", Name: "GPT-5", Publisher: "OpenAI", AverageScore: 75, TotalBenchmarks: 6},
		{ID: "deepseek/deepseek-r1", Name: "DeepSeek R1", Publisher: "DeepSeek", AverageScore: 60, TotalBenchmarks: 2},
	}, 18)
	require.NoError(t, WriteModelsParquet(ConvertModels(items), outputPath))

	rows := readBack[ModelRow](t, outputPath)
	require.Len(t, rows, 2)
	assert.Equal(t, int32(19), rows[0].Rank)
	assert.Equal(t, "Strong", rows[0].Label)
	assert.Equal(t, int32(60), rows[1].AverageScore)
}

func TestWriteComparisonParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "compare.parquet")

	score := 81.4
	result := schema.ComparisonResult{
		Table: []schema.ComparisonRow{{
			BenchmarkID: "tau-bench",
			Name:        "TAU-bench",
			Cells: []schema.ScoreCell{
				{ModelID: "anthropic/claude-opus-4", Score: &score, Winner: true},
				{ModelID: "deepseek/deepseek-r1"},
			},
			Winners: []string{"anthropic/claude-opus-4"},
		}},
	}
	require.NoError(t, WriteComparisonParquet(ConvertComparison(result), outputPath))

	rows := readBack[ComparisonCellRow](t, outputPath)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Winner)
	require.NotNil(t, rows[0].Score)
	assert.False(t, rows[1].Winner)
	assert.Nil(t, rows[1].Score)
}

func TestConvertHelpers(t *testing.T) {
	benchmarks := ConvertBenchmarks([]schema.BenchmarkSummary{
		{ID: "mmmu", Name: "MMMU", Tags: []string{"Multimodal", "Reasoning"}, ModelCount: 4},
	}, 0)
	require.Len(t, benchmarks, 1)
	assert.Equal(t, int32(1), benchmarks[0].Rank)
	assert.Equal(t, "Multimodal,Reasoning", benchmarks[0].Tags)

	board := ConvertLeaderboard(schema.LeaderboardResult{
		Benchmark: schema.BenchmarkSummary{ID: "mmmu"},
		Entries:   []schema.LeaderboardEntry{{Rank: 1, ModelID: "openai/gpt-5", Score: 84.2, Percent: 100}},
	})
	require.Len(t, board, 1)
	assert.Equal(t, "mmmu", board[0].BenchmarkID)

	parts := ConvertParticipations("openai/gpt-5", schema.EnrichParticipations([]schema.ParticipatedBenchmark{
		{BenchmarkID: "mrcr", Name: "MRCR", Score: 95.2, Tags: []string{"Long-Context"}},
	}))
	require.Len(t, parts, 1)
	assert.Equal(t, "Elite", parts[0].Label)
	assert.Equal(t, "openai/gpt-5", parts[0].ModelID)
}

func TestWriteParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteRunsParquet([]Run{}, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteParquet_InvalidPath(t *testing.T) {
	err := WriteModelsParquet([]ModelRow{{Rank: 1}}, "/nonexistent/directory/output.parquet")
	require.Error(t, err, "Writing to invalid path should produce error")
}
