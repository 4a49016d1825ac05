package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/schema"
)

// beginRun opens a history run when a history store is configured. The run
// id travels in the returned context.
func beginRun(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, command string) context.Context {
	store := historyStore(mgr)
	if store == nil {
		return ctx
	}
	configParams := map[string]any{
		"data_path":        cfg.DataPath,
		"search":           cfg.SearchText,
		"tag":              cfg.Tag,
		"publisher":        cfg.Publisher,
		"sort":             string(cfg.SortKey),
		"page":             cfg.Page,
		"page_size":        cfg.PageSize,
		"models":           cfg.Selection,
		"targets":          cfg.Targets,
		"normalize_scores": cfg.NormalizeScores,
	}
	runID, err := store.BeginRun(time.Now(), command, configParams)
	if err != nil {
		contract.LogWarn("Run history initialization failed", err)
		return ctx
	}
	return withRunID(ctx, runID)
}

// endRun records the ranked items of a run and closes it.
func endRun(ctx context.Context, mgr contract.CacheManager, items []schema.RunItem) {
	store := historyStore(mgr)
	if store == nil {
		return
	}
	runID, ok := getRunID(ctx)
	if !ok {
		return
	}
	if len(items) > 0 {
		if err := store.RecordRunItems(runID, items); err != nil {
			logTrackingError("RecordRunItems", runID, err)
		}
	}
	if err := store.EndRun(runID, time.Now(), len(items)); err != nil {
		logTrackingError("EndRun", runID, err)
	}
}

func historyStore(mgr contract.CacheManager) contract.HistoryStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetHistoryStore()
}

// logTrackingError logs history errors to stderr without disrupting the command.
func logTrackingError(operation string, runID int64, err error) {
	contract.LogWarn(fmt.Sprintf("Run history failed for %s on run %d", operation, runID), err)
}

func scorePtr(v float64) *float64 { return &v }

func modelRunItems(items []schema.ModelIndexItem, offset int) []schema.RunItem {
	out := make([]schema.RunItem, len(items))
	for i, m := range items {
		out[i] = schema.RunItem{Rank: offset + i + 1, ItemID: m.ID, Kind: schema.ModelItem, Score: scorePtr(float64(m.AverageScore))}
	}
	return out
}

func benchmarkRunItems(items []schema.BenchmarkSummary, offset int) []schema.RunItem {
	out := make([]schema.RunItem, len(items))
	for i, b := range items {
		out[i] = schema.RunItem{Rank: offset + i + 1, ItemID: b.ID, Kind: schema.BenchmarkItem, Score: scorePtr(b.HeatScore)}
	}
	return out
}

func participationRunItems(items []schema.ParticipatedBenchmark) []schema.RunItem {
	out := make([]schema.RunItem, len(items))
	for i, p := range items {
		out[i] = schema.RunItem{Rank: i + 1, ItemID: p.BenchmarkID, Kind: schema.BenchmarkItem, Score: scorePtr(p.Score)}
	}
	return out
}

func entryRunItems(entries []schema.LeaderboardEntry) []schema.RunItem {
	out := make([]schema.RunItem, len(entries))
	for i, e := range entries {
		out[i] = schema.RunItem{Rank: e.Rank, ItemID: e.ModelID, Kind: schema.EntryItem, Score: scorePtr(e.Score)}
	}
	return out
}

func seriesRunItems(series []schema.SeriesMeta) []schema.RunItem {
	out := make([]schema.RunItem, len(series))
	for i, s := range series {
		out[i] = schema.RunItem{Rank: i + 1, ItemID: s.ModelID, Kind: schema.ModelItem}
	}
	return out
}
