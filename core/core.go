// Package core has core logic for loading, aggregating and comparing benchmark records.
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/benchboard/core/agg"
	"github.com/huangsam/benchboard/core/algo"
	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/internal/outwriter"
	"github.com/huangsam/benchboard/schema"
)

// ExecutorFunc defines the function signature for executing different views.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

var (
	// ErrMissingTarget is returned when a view needs an id argument and none was given.
	ErrMissingTarget = errors.New("an id argument is required")

	// ErrModelNotFound is returned when the requested model does not exist.
	ErrModelNotFound = errors.New("model not found")

	// ErrBenchmarkNotFound is returned when the requested benchmark does not exist.
	ErrBenchmarkNotFound = errors.New("benchmark not found")

	// ErrPublisherNotFound is returned when the requested publisher has no models or record.
	ErrPublisherNotFound = errors.New("publisher not found")
)

// writer renders every result for the CLI.
var writer = outwriter.NewOutWriter()

// GetModelStatsResult computes the model page of cfg.Target().
func GetModelStatsResult(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.ModelStatsResult, time.Duration, error) {
	start := time.Now()
	id := cfg.Target()
	if id == "" {
		return schema.ModelStatsResult{}, 0, fmt.Errorf("stats: %w", ErrMissingTarget)
	}
	if !shouldSuppressHeader(ctx) {
		logHeader(cfg, "stats", id)
	}

	snap, err := loadSnapshot(ctx, cfg, mgr)
	if err != nil {
		return schema.ModelStatsResult{}, 0, err
	}
	model, ok := snap.ModelByID(id)
	if !ok {
		return schema.ModelStatsResult{}, 0, fmt.Errorf("%w: %s", ErrModelNotFound, id)
	}

	ctx = beginRun(ctx, cfg, mgr, "stats")
	info := snap.PublisherInfo(model.Publisher)
	result := schema.ModelStatsResult{
		Model:          model,
		PublisherColor: info.Color,
		PublisherLogo:  info.Logo,
		Stats:          agg.ComputeModelStats(snap.Benchmarks, model.ID),
	}
	endRun(ctx, mgr, participationRunItems(result.Stats.ParticipatedBenchmarks))
	return result, time.Since(start), nil
}

// ExecuteModelStats prints the model page of cfg.Target().
func ExecuteModelStats(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	result, duration, err := GetModelStatsResult(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return writer.WriteModelStats(result, cfg, duration)
}

// GetModelListResults computes one page of the model index. Models are
// filtered by publisher and sorted by average score unless cfg says otherwise.
func GetModelListResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.ModelListResult, time.Duration, error) {
	start := time.Now()
	snap, err := loadSnapshot(ctx, cfg, mgr)
	if err != nil {
		return schema.ModelListResult{}, 0, err
	}

	publishers := algo.CollectPublishers(snap.Models)
	query := schema.Query{
		SearchText:  cfg.SearchText,
		Filter:      resolveToken(cfg.Publisher, publishers),
		FilterField: schema.PublisherFilter,
		SortKey:     sortOrDefault(cfg.SortKey, schema.ScoreSort),
	}
	if !shouldSuppressHeader(ctx) {
		logHeader(cfg, "models", describeCriteria(cfg, query.Filter, query.SortKey))
	}

	ctx = beginRun(ctx, cfg, mgr, "models")
	index := agg.BuildModelIndex(snap, agg.ComputeAllModelStats(snap.Benchmarks, snap.Models))
	pager := algo.NewPager(cfg.PageSize)
	pager.SetQuery(query)
	pager.SetPage(cfg.Page)
	items, pagination := algo.PageOf(pager, index)

	endRun(ctx, mgr, modelRunItems(items, pageOffset(pagination)))
	return schema.ModelListResult{
		Query:      query,
		Items:      items,
		Pagination: pagination,
		Publishers: publishers,
	}, time.Since(start), nil
}

// ExecuteModelList prints one page of the model index.
func ExecuteModelList(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	result, duration, err := GetModelListResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return writer.WriteModelList(result, cfg, duration)
}

// GetModelOptions searches the models a comparison can pick from. The
// result keeps the index order and is capped at schema.MaxOptionResults.
func GetModelOptions(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.ModelIndexItem, time.Duration, error) {
	start := time.Now()
	snap, err := loadSnapshot(ctx, cfg, mgr)
	if err != nil {
		return nil, 0, err
	}
	index := agg.BuildModelIndex(snap, agg.ComputeAllModelStats(snap.Benchmarks, snap.Models))
	return algo.SearchOptions(index, cfg.SearchText, schema.MaxOptionResults), time.Since(start), nil
}

// GetBenchmarkListResults computes one page of the benchmark index. Benchmarks
// are filtered by tag and sorted by heat score unless cfg says otherwise.
func GetBenchmarkListResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.BenchmarkListResult, time.Duration, error) {
	start := time.Now()
	snap, err := loadSnapshot(ctx, cfg, mgr)
	if err != nil {
		return schema.BenchmarkListResult{}, 0, err
	}

	tags := algo.CollectTags(snap.Benchmarks)
	query := schema.Query{
		SearchText:  cfg.SearchText,
		Filter:      ResolveTagToken(cfg.Tag, tags),
		FilterField: schema.TagFilter,
		SortKey:     sortOrDefault(cfg.SortKey, schema.TrendingSort),
	}
	if !shouldSuppressHeader(ctx) {
		logHeader(cfg, "benchmarks", describeCriteria(cfg, query.Filter, query.SortKey))
	}

	ctx = beginRun(ctx, cfg, mgr, "benchmarks")
	pager := algo.NewPager(cfg.PageSize)
	pager.SetQuery(query)
	pager.SetPage(cfg.Page)
	records, pagination := algo.PageOf(pager, snap.Benchmarks)

	items := make([]schema.BenchmarkSummary, len(records))
	for i, b := range records {
		items[i] = schema.NewBenchmarkSummary(b)
	}

	endRun(ctx, mgr, benchmarkRunItems(items, pageOffset(pagination)))
	return schema.BenchmarkListResult{
		Query:      query,
		Items:      items,
		Pagination: pagination,
		Tags:       tags,
	}, time.Since(start), nil
}

// ExecuteBenchmarkList prints one page of the benchmark index.
func ExecuteBenchmarkList(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	result, duration, err := GetBenchmarkListResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return writer.WriteBenchmarkList(result, cfg, duration)
}

// GetLeaderboardResult computes the leaderboard of benchmark cfg.Target().
func GetLeaderboardResult(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.LeaderboardResult, time.Duration, error) {
	start := time.Now()
	id := cfg.Target()
	if id == "" {
		return schema.LeaderboardResult{}, 0, fmt.Errorf("leaderboard: %w", ErrMissingTarget)
	}
	if !shouldSuppressHeader(ctx) {
		logHeader(cfg, "leaderboard", id)
	}

	snap, err := loadSnapshot(ctx, cfg, mgr)
	if err != nil {
		return schema.LeaderboardResult{}, 0, err
	}
	bench, ok := snap.BenchmarkByID(id)
	if !ok {
		return schema.LeaderboardResult{}, 0, fmt.Errorf("%w: %s", ErrBenchmarkNotFound, id)
	}

	ctx = beginRun(ctx, cfg, mgr, "leaderboard")
	result := BuildLeaderboard(snap, bench)
	endRun(ctx, mgr, entryRunItems(result.Entries))
	return result, time.Since(start), nil
}

// ExecuteLeaderboard prints the leaderboard of benchmark cfg.Target().
func ExecuteLeaderboard(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	result, duration, err := GetLeaderboardResult(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return writer.WriteLeaderboard(result, cfg, duration)
}

// GetComparisonResults compares the models named by cfg.Selection and
// cfg.Targets, in that order. Unknown ids are dropped.
func GetComparisonResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.ComparisonResult, time.Duration, error) {
	start := time.Now()
	token := strings.Join(append(append([]string{}, cfg.Selection...), cfg.Targets...), ",")
	if !shouldSuppressHeader(ctx) {
		logHeader(cfg, "compare", token)
	}

	snap, err := loadSnapshot(ctx, cfg, mgr)
	if err != nil {
		return schema.ComparisonResult{}, 0, err
	}
	selection := ParseSelectionToken(token, func(id string) bool {
		_, ok := snap.ModelByID(id)
		return ok
	})

	ctx = beginRun(ctx, cfg, mgr, "compare")
	stats := agg.ComputeAllModelStats(snap.Benchmarks, snap.Models)
	result := BuildComparison(selection.IDs(), agg.BuildComparableModels(snap, stats), agg.BuildBenchmarkMeta(snap.Benchmarks))
	endRun(ctx, mgr, seriesRunItems(result.Series))
	return result, time.Since(start), nil
}

// ExecuteCompare prints the comparison of the selected models.
func ExecuteCompare(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	result, duration, err := GetComparisonResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return writer.WriteComparison(result, cfg, duration)
}

// GetPublisherResults computes the page of publisher cfg.Target(). Models are
// sorted by average score, or by release date when asked.
func GetPublisherResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.PublisherResult, time.Duration, error) {
	start := time.Now()
	name := cfg.Target()
	if name == "" {
		return schema.PublisherResult{}, 0, fmt.Errorf("publisher: %w", ErrMissingTarget)
	}
	sortKey := sortOrDefault(cfg.SortKey, schema.ScoreSort)
	if _, ok := schema.ValidPublisherSortKeys[sortKey]; !ok {
		return schema.PublisherResult{}, 0, fmt.Errorf("invalid publisher sort '%s'. must be score, date", sortKey)
	}
	if !shouldSuppressHeader(ctx) {
		logHeader(cfg, "publisher", name)
	}

	snap, err := loadSnapshot(ctx, cfg, mgr)
	if err != nil {
		return schema.PublisherResult{}, 0, err
	}

	ctx = beginRun(ctx, cfg, mgr, "publisher")
	result, ok := BuildPublisherPage(snap, name, sortKey)
	if !ok {
		endRun(ctx, mgr, nil)
		return schema.PublisherResult{}, 0, fmt.Errorf("%w: %s", ErrPublisherNotFound, name)
	}
	endRun(ctx, mgr, modelRunItems(result.Models, 0))
	return result, time.Since(start), nil
}

// ExecutePublisher prints the page of publisher cfg.Target().
func ExecutePublisher(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	result, duration, err := GetPublisherResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return writer.WritePublisher(result, cfg, duration)
}

// GetPublisherListResults lists every publisher with its model and benchmark counts.
func GetPublisherListResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.PublisherSummary, time.Duration, error) {
	start := time.Now()
	if !shouldSuppressHeader(ctx) {
		logHeader(cfg, "publishers", "")
	}
	snap, err := loadSnapshot(ctx, cfg, mgr)
	if err != nil {
		return nil, 0, err
	}
	ctx = beginRun(ctx, cfg, mgr, "publishers")
	results := BuildPublisherList(snap)
	endRun(ctx, mgr, nil)
	return results, time.Since(start), nil
}

// ExecutePublisherList prints every publisher.
func ExecutePublisherList(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	results, _, err := GetPublisherListResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return writer.WritePublisherList(results, cfg)
}

// GetTagsResults lists every tag with the number of benchmarks carrying it.
func GetTagsResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.TagSummary, time.Duration, error) {
	start := time.Now()
	if !shouldSuppressHeader(ctx) {
		logHeader(cfg, "tags", "")
	}
	snap, err := loadSnapshot(ctx, cfg, mgr)
	if err != nil {
		return nil, 0, err
	}
	ctx = beginRun(ctx, cfg, mgr, "tags")
	results := BuildTagList(snap.Benchmarks)
	endRun(ctx, mgr, nil)
	return results, time.Since(start), nil
}

// ExecuteTags prints every tag.
func ExecuteTags(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	results, _, err := GetTagsResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return writer.WriteTags(results, cfg)
}

// sortOrDefault returns key, or fallback when key is unset.
func sortOrDefault(key, fallback schema.SortKey) schema.SortKey {
	if key == "" {
		return fallback
	}
	return key
}

// pageOffset is the number of items on the pages before p.
func pageOffset(p schema.Pagination) int {
	return max((p.Page-1)*p.PageSize, 0)
}
