package core

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/internal/iocache"
	"github.com/huangsam/benchboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sampleContent = "../examples/content"

// testConfig returns a config over the sample content with no stores.
func testConfig(targets ...string) *contract.Config {
	return &contract.Config{
		DataPath:       sampleContent,
		Page:           1,
		PageSize:       schema.DefaultPageSize,
		Output:         schema.JSONOut,
		Precision:      1,
		CacheBackend:   schema.NoneBackend,
		HistoryBackend: schema.NoneBackend,
		Targets:        targets,
	}
}

// quietHeaders discards diagnostic headers for the duration of the test.
func quietHeaders(t *testing.T) {
	t.Helper()
	prev := headerOut
	headerOut = io.Discard
	t.Cleanup(func() { headerOut = prev })
}

// noStores returns a manager without cache or history.
func noStores() *iocache.MockCacheManager {
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetCacheStore").Return(nil)
	mgr.On("GetHistoryStore").Return(nil)
	return mgr
}

func TestGetModelStatsResult(t *testing.T) {
	quietHeaders(t)
	ctx := context.Background()

	result, _, err := GetModelStatsResult(ctx, testConfig("openai/gpt-5"), noStores())
	require.NoError(t, err)

	assert.Equal(t, "GPT-5", result.Model.Name)
	assert.Equal(t, "#1f1f1f", result.PublisherColor)
	assert.Equal(t, "/logos/openai.svg", result.PublisherLogo)
	assert.Equal(t, 75, result.Stats.AverageScore)
	assert.Equal(t, 6, result.Stats.TotalBenchmarks)
	require.Len(t, result.Stats.RadarData, len(schema.CategoryAxis))
	assert.Equal(t, "mrcr", result.Stats.ParticipatedBenchmarks[0].BenchmarkID)
	assert.Equal(t, 95.2, result.Stats.ParticipatedBenchmarks[0].Score)
}

func TestGetModelStatsResultErrors(t *testing.T) {
	quietHeaders(t)
	ctx := context.Background()

	_, _, err := GetModelStatsResult(ctx, testConfig(), noStores())
	assert.ErrorIs(t, err, ErrMissingTarget)

	_, _, err = GetModelStatsResult(ctx, testConfig("nobody/none"), noStores())
	assert.ErrorIs(t, err, ErrModelNotFound)

	cfg := testConfig("openai/gpt-5")
	cfg.DataPath = "/nonexistent/content"
	_, _, err = GetModelStatsResult(ctx, cfg, noStores())
	assert.Error(t, err)
}

func TestGetModelListResults(t *testing.T) {
	quietHeaders(t)
	ctx := context.Background()

	t.Run("default sort by score", func(t *testing.T) {
		result, _, err := GetModelListResults(ctx, testConfig(), noStores())
		require.NoError(t, err)

		var ids []string
		for _, m := range result.Items {
			ids = append(ids, m.ID)
		}
		assert.Equal(t, []string{
			"openai/gpt-5", "google/gemini-2.5-pro", "openai/o3", "anthropic/claude-opus-4", "deepseek/deepseek-r1",
		}, ids)
		assert.Equal(t, schema.ScoreSort, result.Query.SortKey)
		assert.Equal(t, schema.AllFilter, result.Query.Filter)
		assert.Equal(t, []string{"Anthropic", "DeepSeek", "Google", "OpenAI"}, result.Publishers)
		assert.Equal(t, 5, result.Pagination.TotalItems)
	})

	t.Run("publisher filter", func(t *testing.T) {
		cfg := testConfig()
		cfg.Publisher = "OpenAI"
		result, _, err := GetModelListResults(ctx, cfg, noStores())
		require.NoError(t, err)
		require.Len(t, result.Items, 2)
		assert.Equal(t, "openai/gpt-5", result.Items[0].ID)
	})

	t.Run("unknown publisher shows all", func(t *testing.T) {
		cfg := testConfig()
		cfg.Publisher = "Nobody"
		result, _, err := GetModelListResults(ctx, cfg, noStores())
		require.NoError(t, err)
		assert.Equal(t, schema.AllFilter, result.Query.Filter)
		assert.Len(t, result.Items, 5)
	})

	t.Run("pages clamp", func(t *testing.T) {
		cfg := testConfig()
		cfg.PageSize = 2
		cfg.Page = 9
		result, _, err := GetModelListResults(ctx, cfg, noStores())
		require.NoError(t, err)
		assert.Equal(t, 3, result.Pagination.Page)
		assert.Equal(t, 3, result.Pagination.TotalPages)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "deepseek/deepseek-r1", result.Items[0].ID)
	})

	t.Run("search", func(t *testing.T) {
		cfg := testConfig()
		cfg.SearchText = "gem"
		result, _, err := GetModelListResults(ctx, cfg, noStores())
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "google/gemini-2.5-pro", result.Items[0].ID)
	})
}

func TestGetModelOptions(t *testing.T) {
	quietHeaders(t)
	cfg := testConfig()
	cfg.SearchText = "openai"
	options, _, err := GetModelOptions(context.Background(), cfg, noStores())
	require.NoError(t, err)
	require.Len(t, options, 2)
	// Index order, not score order
	assert.Equal(t, "openai/gpt-5", options[0].ID)
	assert.Equal(t, "openai/o3", options[1].ID)
}

func TestGetBenchmarkListResults(t *testing.T) {
	quietHeaders(t)
	ctx := context.Background()

	t.Run("default sort by heat", func(t *testing.T) {
		result, _, err := GetBenchmarkListResults(ctx, testConfig(), noStores())
		require.NoError(t, err)

		var ids []string
		for _, b := range result.Items {
			ids = append(ids, b.ID)
		}
		assert.Equal(t, []string{
			"humanitys-last-exam", "swe-bench-verified", "gpqa-diamond", "tau-bench", "mrcr", "mmmu",
		}, ids)
		assert.Equal(t, schema.TrendingSort, result.Query.SortKey)
		assert.Contains(t, result.Tags, "Science")
	})

	t.Run("tag filter", func(t *testing.T) {
		cfg := testConfig()
		cfg.Tag = "Agent"
		result, _, err := GetBenchmarkListResults(ctx, cfg, noStores())
		require.NoError(t, err)
		require.Len(t, result.Items, 2)
		assert.Equal(t, "swe-bench-verified", result.Items[0].ID)
		assert.Equal(t, "tau-bench", result.Items[1].ID)
	})

	t.Run("unknown tag shows all", func(t *testing.T) {
		cfg := testConfig()
		cfg.Tag = "Cooking"
		result, _, err := GetBenchmarkListResults(ctx, cfg, noStores())
		require.NoError(t, err)
		assert.Equal(t, schema.AllFilter, result.Query.Filter)
		assert.Len(t, result.Items, 6)
	})

	t.Run("name sort", func(t *testing.T) {
		cfg := testConfig()
		cfg.SortKey = schema.NameSort
		result, _, err := GetBenchmarkListResults(ctx, cfg, noStores())
		require.NoError(t, err)
		assert.Equal(t, "gpqa-diamond", result.Items[0].ID)
	})
}

func TestGetLeaderboardResult(t *testing.T) {
	quietHeaders(t)
	ctx := context.Background()

	result, _, err := GetLeaderboardResult(ctx, testConfig("tau-bench"), noStores())
	require.NoError(t, err)

	// Entries for unknown models are skipped
	require.Len(t, result.Entries, 3)
	assert.Equal(t, "anthropic/claude-opus-4", result.Entries[0].ModelID)
	assert.Equal(t, 1, result.Entries[0].Rank)
	assert.InDelta(t, 100.0, result.Entries[0].Percent, 1e-9)
	assert.InDelta(t, 80.2/81.4*100, result.Entries[1].Percent, 1e-9)
	assert.Equal(t, 81.4, result.MaxScore)
	assert.True(t, result.ShowHeat)
	assert.Equal(t, 3, result.Benchmark.ModelCount)

	_, _, err = GetLeaderboardResult(ctx, testConfig("missing"), noStores())
	assert.ErrorIs(t, err, ErrBenchmarkNotFound)

	_, _, err = GetLeaderboardResult(ctx, testConfig(), noStores())
	assert.ErrorIs(t, err, ErrMissingTarget)
}

func TestGetLeaderboardResultFirstEntryWins(t *testing.T) {
	quietHeaders(t)
	result, _, err := GetLeaderboardResult(context.Background(), testConfig("mrcr"), noStores())
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, "openai/gpt-5", result.Entries[0].ModelID)
	assert.Equal(t, 95.2, result.Entries[0].Score)
}

func TestGetComparisonResults(t *testing.T) {
	quietHeaders(t)
	ctx := context.Background()

	cfg := testConfig("anthropic/claude-opus-4", "nobody/none")
	cfg.Selection = []string{"openai/gpt-5"}
	result, _, err := GetComparisonResults(ctx, cfg, noStores())
	require.NoError(t, err)

	assert.False(t, result.Empty)
	assert.Equal(t, "openai/gpt-5,anthropic/claude-opus-4", result.Selection)
	require.Len(t, result.Series, 2)
	require.Len(t, result.ChartSeries, len(schema.CategoryAxis))
	require.Len(t, result.Table, 6)

	rows := map[string]schema.ComparisonRow{}
	for _, row := range result.Table {
		rows[row.BenchmarkID] = row
	}
	assert.Equal(t, []string{"anthropic/claude-opus-4"}, rows["tau-bench"].Winners)
	assert.Equal(t, []string{"openai/gpt-5"}, rows["mrcr"].Winners)
	assert.Nil(t, rows["mrcr"].Cells[1].Score)

	empty, _, err := GetComparisonResults(ctx, testConfig(), noStores())
	require.NoError(t, err)
	assert.True(t, empty.Empty)
	assert.NotNil(t, empty.Table)
}

func TestGetPublisherResults(t *testing.T) {
	quietHeaders(t)
	ctx := context.Background()

	result, _, err := GetPublisherResults(ctx, testConfig("openai"), noStores())
	require.NoError(t, err)
	assert.Equal(t, "OpenAI", result.Name)
	assert.Equal(t, "https://openai.com", result.Website)
	require.Len(t, result.Models, 2)
	assert.Equal(t, "openai/gpt-5", result.Models[0].ID)

	cfg := testConfig("OpenAI")
	cfg.SortKey = schema.DateSort
	result, _, err = GetPublisherResults(ctx, cfg, noStores())
	require.NoError(t, err)
	assert.Equal(t, "openai/gpt-5", result.Models[0].ID)
	assert.Equal(t, "openai/o3", result.Models[1].ID)

	// Google's record has no color, so the registry fills it in
	result, _, err = GetPublisherResults(ctx, testConfig("Google"), noStores())
	require.NoError(t, err)
	assert.Equal(t, "#34a853", result.Color)

	cfg = testConfig("OpenAI")
	cfg.SortKey = schema.NameSort
	_, _, err = GetPublisherResults(ctx, cfg, noStores())
	assert.Error(t, err)

	_, _, err = GetPublisherResults(ctx, testConfig("Nobody"), noStores())
	assert.ErrorIs(t, err, ErrPublisherNotFound)
}

func TestGetPublisherListResults(t *testing.T) {
	quietHeaders(t)
	results, _, err := GetPublisherListResults(context.Background(), testConfig(), noStores())
	require.NoError(t, err)

	require.Len(t, results, 4)
	assert.Equal(t, "Anthropic", results[0].Name)
	assert.Equal(t, "OpenAI", results[3].Name)
	assert.Equal(t, 2, results[3].ModelCount)
	assert.Equal(t, 1, results[3].BenchmarkCount)
	assert.Equal(t, "#2243e6", results[1].Color)
}

func TestGetTagsResults(t *testing.T) {
	quietHeaders(t)
	results, _, err := GetTagsResults(context.Background(), testConfig(), noStores())
	require.NoError(t, err)

	counts := map[string]int{}
	for _, tag := range results {
		counts[tag.Tag] = tag.BenchmarkCount
		assert.Equal(t, tag.Tag != "Science", tag.OnRadar, tag.Tag)
	}
	assert.Equal(t, map[string]int{
		"Agent": 2, "Coding": 1, "Knowledge": 2, "Long-Context": 1, "Multimodal": 1, "Reasoning": 2, "Science": 1,
	}, counts)
}

func TestExecutorsWriteOutput(t *testing.T) {
	quietHeaders(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		exec    ExecutorFunc
		targets []string
	}{
		{"stats", ExecuteModelStats, []string{"openai/o3"}},
		{"models", ExecuteModelList, nil},
		{"benchmarks", ExecuteBenchmarkList, nil},
		{"leaderboard", ExecuteLeaderboard, []string{"gpqa-diamond"}},
		{"compare", ExecuteCompare, []string{"openai/o3", "openai/gpt-5"}},
		{"publisher", ExecutePublisher, []string{"anthropic"}},
		{"publishers", ExecutePublisherList, nil},
		{"tags", ExecuteTags, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig(tc.targets...)
			cfg.OutputFile = filepath.Join(t.TempDir(), tc.name+".json")
			require.NoError(t, tc.exec(ctx, cfg, noStores()))

			data, err := os.ReadFile(cfg.OutputFile)
			require.NoError(t, err)
			assert.True(t, json.Valid(data))
		})
	}
}

func TestExecutorsReturnErrors(t *testing.T) {
	quietHeaders(t)
	err := ExecuteModelStats(context.Background(), testConfig("nobody/none"), noStores())
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestHeaderSuppressed(t *testing.T) {
	var buf bytes.Buffer
	prev := headerOut
	headerOut = &buf
	t.Cleanup(func() { headerOut = prev })

	_, _, err := GetTagsResults(WithSuppressHeader(context.Background()), testConfig(), noStores())
	require.NoError(t, err)
	assert.Empty(t, buf.String())

	_, _, err = GetTagsResults(context.Background(), testConfig(), noStores())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "View: tags")
	assert.Contains(t, buf.String(), "Source: content")
}

func TestRunHistoryRecorded(t *testing.T) {
	quietHeaders(t)
	history := &iocache.MockHistoryStore{}
	history.On("BeginRun", mock.AnythingOfType("time.Time"), "leaderboard", mock.Anything).Return(int64(7), nil)
	history.On("RecordRunItems", int64(7), mock.MatchedBy(func(items []schema.RunItem) bool {
		return len(items) == 3 && items[0].Kind == schema.EntryItem && items[0].ItemID == "anthropic/claude-opus-4"
	})).Return(nil)
	history.On("EndRun", int64(7), mock.AnythingOfType("time.Time"), 3).Return(nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetCacheStore").Return(nil)
	mgr.On("GetHistoryStore").Return(history)

	_, _, err := GetLeaderboardResult(context.Background(), testConfig("tau-bench"), mgr)
	require.NoError(t, err)
	history.AssertExpectations(t)
}

func TestRunHistoryOnSQLite(t *testing.T) {
	quietHeaders(t)
	history, err := iocache.NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = history.Close() }()

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetCacheStore").Return(nil)
	mgr.On("GetHistoryStore").Return(history)

	_, _, err = GetModelListResults(context.Background(), testConfig(), mgr)
	require.NoError(t, err)

	runs, err := history.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "models", runs[0].Command)
	require.NotNil(t, runs[0].TotalItems)
	assert.Equal(t, int32(5), *runs[0].TotalItems)

	items, err := history.GetAllRunItems()
	require.NoError(t, err)
	assert.Len(t, items, 5)
}

func TestRunHistoryFailureIsNotFatal(t *testing.T) {
	quietHeaders(t)
	history := &iocache.MockHistoryStore{}
	history.On("BeginRun", mock.Anything, "tags", mock.Anything).Return(int64(0), assert.AnError)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetCacheStore").Return(nil)
	mgr.On("GetHistoryStore").Return(history)

	results, _, err := GetTagsResults(context.Background(), testConfig(), mgr)
	require.NoError(t, err)
	assert.NotEmpty(t, results)
	history.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything, mock.Anything)
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, pageOffset(schema.Pagination{Page: 1, PageSize: 18}))
	assert.Equal(t, 36, pageOffset(schema.Pagination{Page: 3, PageSize: 18}))
	assert.Equal(t, 0, pageOffset(schema.Pagination{}))
}

func TestSortOrDefault(t *testing.T) {
	assert.Equal(t, schema.ScoreSort, sortOrDefault("", schema.ScoreSort))
	assert.Equal(t, schema.NameSort, sortOrDefault(schema.NameSort, schema.ScoreSort))
}
