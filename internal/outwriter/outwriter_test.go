package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *contract.Config {
	return &contract.Config{
		Precision:    1,
		Width:        160,
		Output:       schema.TextOut,
		CacheBackend: schema.NoneBackend,
	}
}

func f64(v float64) *float64 { return &v }

func sampleComparison() schema.ComparisonResult {
	return schema.ComparisonResult{
		Selection: "openai/gpt-5,deepseek/deepseek-r1",
		Series: []schema.SeriesMeta{
			{ModelID: "openai/gpt-5", Name: "GPT-5", Color: "#1f1f1f"},
			{ModelID: "deepseek/deepseek-r1", Name: "DeepSeek R1", Color: "#2243e6"},
		},
		ChartSeries: []schema.ChartPoint{
			{Category: "Coding", FullMark: 100, Values: []schema.SeriesValue{{ModelID: "openai/gpt-5", Value: 75}, {ModelID: "deepseek/deepseek-r1", Value: 49}}},
		},
		Table: []schema.ComparisonRow{
			{
				BenchmarkID: "swe-bench-verified", Name: "SWE-bench Verified", Unit: "%",
				Cells:   []schema.ScoreCell{{ModelID: "openai/gpt-5", Score: f64(74.9), Winner: true}, {ModelID: "deepseek/deepseek-r1", Score: f64(49.2)}},
				Winners: []string{"openai/gpt-5"},
			},
			{
				BenchmarkID: "mmmu", Name: "MMMU",
				Cells:   []schema.ScoreCell{{ModelID: "openai/gpt-5", Score: f64(84.2), Winner: true}, {ModelID: "deepseek/deepseek-r1"}},
				Winners: []string{"openai/gpt-5"},
			},
		},
	}
}

func TestFormatCell(t *testing.T) {
	fmtFloat, _ := createFormatters(1)
	assert.Equal(t, noDataMark, formatCell(schema.ScoreCell{}, false, fmtFloat))
	assert.Equal(t, "0.0", formatCell(schema.ScoreCell{Score: f64(0)}, false, fmtFloat), "Zero is data, not a missing score")
	assert.Equal(t, "★ 74.9", formatCell(schema.ScoreCell{Score: f64(74.9), Winner: true}, false, fmtFloat))
}

func TestWriteComparisonTable(t *testing.T) {
	fmtFloat, _ := createFormatters(1)
	var buf bytes.Buffer
	require.NoError(t, writeComparisonTable(&buf, sampleComparison(), testConfig(), fmtFloat, time.Second))

	out := buf.String()
	assert.Contains(t, out, "Comparing: GPT-5 #1f1f1f, DeepSeek R1 #2243e6")
	assert.Contains(t, out, "★ 74.9")
	assert.Contains(t, out, "49.2")
	assert.Contains(t, out, noDataMark)
	assert.Contains(t, out, "2 benchmarks compared")
}

func TestWriteComparisonTable_Empty(t *testing.T) {
	fmtFloat, _ := createFormatters(1)
	var buf bytes.Buffer
	require.NoError(t, writeComparisonTable(&buf, schema.ComparisonResult{Empty: true}, testConfig(), fmtFloat, 0))
	assert.Contains(t, buf.String(), "No models selected")
}

func TestWriteComparisonCSV(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	var buf bytes.Buffer
	require.NoError(t, writeComparisonCSV(&buf, sampleComparison(), fmtFloat))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"benchmark_id", "benchmark", "unit", "openai/gpt-5", "deepseek/deepseek-r1", "winners"}, records[0])
	assert.Equal(t, []string{"swe-bench-verified", "SWE-bench Verified", "%", "74.90", "49.20", "openai/gpt-5"}, records[1])
	assert.Equal(t, "", records[2][4], "Missing scores are empty cells")
}

func TestWriteModelItems(t *testing.T) {
	items := schema.EnrichModels([]schema.ModelIndexItem{
		{ID: "openai/gpt-5", Name: "GPT-5", Publisher: "OpenAI", ReleaseDate: "2025-08-07", AverageScore: 75, TotalBenchmarks: 6},
		{ID: "deepseek/deepseek-r1", Name: "DeepSeek R1", Publisher: "DeepSeek", Params: "671B", AverageScore: 60, TotalBenchmarks: 2},
	}, 0)

	t.Run("table", func(t *testing.T) {
		cfg := testConfig()
		cfg.Detail = true
		var buf bytes.Buffer
		require.NoError(t, writeModelItemsTable(&buf, items, cfg, "Page 1 of 1 (2 models total)", time.Second))
		out := buf.String()
		assert.Contains(t, out, "GPT-5")
		assert.Contains(t, out, "Strong")
		assert.Contains(t, out, "671B")
		assert.Contains(t, out, "Page 1 of 1 (2 models total)")
	})

	t.Run("empty table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeModelItemsTable(&buf, nil, testConfig(), "Page 1 of 1 (0 models total)", 0))
		assert.Contains(t, buf.String(), "No models match")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeModelItemsCSV(&buf, items))
		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, []string{"1", "openai/gpt-5", "GPT-5", "OpenAI", "2025-08-07", "", "75", "Strong", "6"}, records[1])
	})
}

func TestWriteModelStats(t *testing.T) {
	result := schema.ModelStatsResult{
		Model:          schema.ModelRecord{ID: "openai/gpt-5", Name: "GPT-5", Publisher: "OpenAI"},
		PublisherColor: "#1f1f1f",
		Stats: schema.ModelStats{
			ModelID:         "openai/gpt-5",
			TotalBenchmarks: 1,
			AverageScore:    95,
			RadarData:       []schema.RadarPoint{{Category: "Long-Context", Value: 95, FullMark: 100}},
			ParticipatedBenchmarks: []schema.ParticipatedBenchmark{
				{BenchmarkID: "mrcr", Name: "MRCR", Score: 95.2, Tags: []string{"Long-Context"}},
			},
		},
	}
	parts := schema.EnrichParticipations(result.Stats.ParticipatedBenchmarks)
	fmtFloat, _ := createFormatters(1)

	var table bytes.Buffer
	require.NoError(t, writeModelStatsTable(&table, result, parts, testConfig(), fmtFloat, time.Second))
	assert.Contains(t, table.String(), "GPT-5 (openai/gpt-5)")
	assert.Contains(t, table.String(), "Average score: 95 (Elite) across 1 benchmarks")
	assert.Contains(t, table.String(), "95.2")

	var js bytes.Buffer
	require.NoError(t, writeModelStatsJSON(&js, result, parts))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	stats := decoded["stats"].(map[string]any)
	assert.Equal(t, "Elite", stats["label"])
	first := stats["participatedBenchmarks"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(1), first["rank"])
	assert.Equal(t, "mrcr", first["benchmarkId"])

	var c bytes.Buffer
	require.NoError(t, writeModelStatsCSV(&c, parts, fmtFloat))
	assert.Equal(t, "rank,benchmark_id,benchmark,score,label,tags\n1,mrcr,MRCR,95.2,Elite,Long-Context\n", c.String())
}

func TestWriteLeaderboard(t *testing.T) {
	result := schema.LeaderboardResult{
		Benchmark:      schema.BenchmarkSummary{ID: "mmmu", Name: "MMMU", Publisher: "MMMU", Tags: []string{"Multimodal"}, Unit: "%"},
		Description:    "Multimodal understanding.",
		IsBetterHigher: true,
		MaxScore:       84.2,
		Entries: []schema.LeaderboardEntry{
			{Rank: 1, ModelID: "openai/gpt-5", ModelName: "GPT-5", Publisher: "OpenAI", Score: 84.2, Percent: 100},
			{Rank: 2, ModelID: "openai/o3", ModelName: "o3", Publisher: "OpenAI", Score: 82.9, Percent: 98.46},
		},
	}
	fmtFloat, _ := createFormatters(1)
	cfg := testConfig()
	cfg.Detail = true

	var buf bytes.Buffer
	require.NoError(t, writeLeaderboardTable(&buf, result, cfg, fmtFloat, time.Second))
	out := buf.String()
	assert.Contains(t, out, "higher is better")
	assert.Contains(t, out, "Multimodal understanding.")
	assert.Contains(t, out, strings.Repeat("█", leaderboardBarWidth))
	assert.NotContains(t, out, "Heat:")

	var c bytes.Buffer
	require.NoError(t, writeLeaderboardCSV(&c, result, fmtFloat))
	assert.Contains(t, c.String(), "2,openai/o3,o3,OpenAI,82.9,98.5\n")
}

func TestWriteBenchmarkListCSV(t *testing.T) {
	fmtFloat, _ := createFormatters(1)
	items := []schema.BenchmarkSummary{
		{ID: "humanitys-last-exam", Name: "HLE", Publisher: "CAIS", Tags: []string{"Reasoning", "Knowledge"}, HeatScore: 2000, ModelCount: 4},
	}
	var buf bytes.Buffer
	require.NoError(t, writeBenchmarkListCSV(&buf, items, 18, fmtFloat))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "19", records[1][0], "Rank continues across pages")
	assert.Equal(t, "Reasoning|Knowledge", records[1][4])
	assert.Equal(t, "2000.0", records[1][7])
}

func TestCatalogTables(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writePublisherListTable(&buf, []schema.PublisherSummary{{Name: "OpenAI", Color: "#1f1f1f", ModelCount: 2, BenchmarkCount: 0}}, testConfig()))
	assert.Contains(t, buf.String(), "1 publishers")

	buf.Reset()
	require.NoError(t, writeTagsTable(&buf, []schema.TagSummary{{Tag: "Science", BenchmarkCount: 1}, {Tag: "Coding", BenchmarkCount: 1, OnRadar: true}}))
	assert.Contains(t, buf.String(), "Science")
	assert.Contains(t, buf.String(), "yes")

	cfg := testConfig()
	cfg.Output = schema.ParquetOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "tags.parquet")
	assert.Error(t, PrintTags(nil, cfg))
}

func TestPrintToFile(t *testing.T) {
	dir := t.TempDir()

	cfg := testConfig()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = filepath.Join(dir, "compare.json")
	require.NoError(t, NewOutWriter().WriteComparison(sampleComparison(), cfg, time.Second))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var decoded schema.ComparisonResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded.Table, 2)
	assert.Nil(t, decoded.Table[1].Cells[1].Score)

	cfg.Output = schema.ParquetOut
	cfg.OutputFile = filepath.Join(dir, "compare.parquet")
	require.NoError(t, NewOutWriter().WriteComparison(sampleComparison(), cfg, time.Second))
	info, err := os.Stat(cfg.OutputFile)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	cfg.OutputFile = ""
	assert.ErrorIs(t, NewOutWriter().WriteModelList(schema.ModelListResult{}, cfg, 0), errParquetNeedsFile)
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "", bar(0, 10))
	assert.Equal(t, "█", bar(1, 10), "Tiny values still show one block")
	assert.Equal(t, strings.Repeat("█", 5), bar(50, 10))
	assert.Equal(t, strings.Repeat("█", 10), bar(150, 10))

	r, g, b, ok := parseHexColor("#34a853")
	require.True(t, ok)
	assert.Equal(t, []int{0x34, 0xa8, 0x53}, []int{r, g, b})
	r, g, b, ok = parseHexColor("#fff")
	require.True(t, ok)
	assert.Equal(t, []int{255, 255, 255}, []int{r, g, b})
	_, _, _, ok = parseHexColor("blue")
	assert.False(t, ok)

	assert.Equal(t, "#1f1f1f", swatch("#1f1f1f", false))
	assert.Equal(t, "Page 1 of 1 (0 models total)", pageFooter(schema.Pagination{Page: 1}, "models"))

	cfg := testConfig()
	cfg.Width = 40
	assert.Equal(t, 15, getMaxTableNameWidth(cfg))
	cfg.Width = 300
	assert.Equal(t, 60, getMaxTableNameWidth(cfg))
}
