// Package parquet provides data structures and functions for exporting benchboard
// views and run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/huangsam/benchboard/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single benchboard command run with metadata.
// This struct maps to the benchboard_runs database table.
type Run struct {
	// RunID is the database identifier of the run
	RunID int64 `parquet:"run_id,snappy"`

	// RunKey is the globally unique key of the run
	RunKey string `parquet:"run_key,snappy"`

	// Command is the command that produced the run
	Command string `parquet:"command,snappy"`

	// StartTime is when the run began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	// TotalItems is the number of items the run emitted (nullable)
	TotalItems *int32 `parquet:"total_items,optional,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// RunItem is one ranked item emitted by a run.
// This struct maps to the benchboard_run_items database table.
type RunItem struct {
	RunID    int64     `parquet:"run_id,snappy"`
	ItemRank int32     `parquet:"item_rank,snappy"`
	ItemID   string    `parquet:"item_id,snappy"`
	ItemKind string    `parquet:"item_kind,snappy"`
	Score    *float64  `parquet:"score,optional,snappy"`
	ItemTime time.Time `parquet:"item_time,snappy"`
}

// ModelRow is one model of the model index.
type ModelRow struct {
	Rank            int32  `parquet:"rank,snappy"`
	ModelID         string `parquet:"model_id,snappy"`
	Name            string `parquet:"name,snappy"`
	Publisher       string `parquet:"publisher,snappy"`
	ReleaseDate     string `parquet:"release_date,snappy"`
	Params          string `parquet:"params,snappy"`
	AverageScore    int32  `parquet:"average_score,snappy"`
	TotalBenchmarks int32  `parquet:"total_benchmarks,snappy"`
	Label           string `parquet:"label,snappy"`
}

// BenchmarkRow is one benchmark of the benchmark index.
type BenchmarkRow struct {
	Rank        int32   `parquet:"rank,snappy"`
	BenchmarkID string  `parquet:"benchmark_id,snappy"`
	Name        string  `parquet:"name,snappy"`
	Publisher   string  `parquet:"publisher,snappy"`
	Tags        string  `parquet:"tags,snappy"`
	Unit        string  `parquet:"unit,snappy"`
	LastUpdated string  `parquet:"last_updated,snappy"`
	HeatScore   float64 `parquet:"heat_score,snappy"`
	ModelCount  int32   `parquet:"model_count,snappy"`
}

// ParticipationRow is one benchmark score of a single model.
type ParticipationRow struct {
	ModelID     string  `parquet:"model_id,snappy"`
	Rank        int32   `parquet:"rank,snappy"`
	BenchmarkID string  `parquet:"benchmark_id,snappy"`
	Name        string  `parquet:"name,snappy"`
	Score       float64 `parquet:"score,snappy"`
	Tags        string  `parquet:"tags,snappy"`
	Label       string  `parquet:"label,snappy"`
}

// LeaderboardRow is one entry on a benchmark leaderboard.
type LeaderboardRow struct {
	BenchmarkID string  `parquet:"benchmark_id,snappy"`
	Rank        int32   `parquet:"rank,snappy"`
	ModelID     string  `parquet:"model_id,snappy"`
	ModelName   string  `parquet:"model_name,snappy"`
	Publisher   string  `parquet:"publisher,snappy"`
	Score       float64 `parquet:"score,snappy"`
	Percent     float64 `parquet:"percent,snappy"`
}

// ComparisonCellRow is one model's cell in a comparison table.
type ComparisonCellRow struct {
	BenchmarkID string   `parquet:"benchmark_id,snappy"`
	Name        string   `parquet:"name,snappy"`
	Unit        string   `parquet:"unit,snappy"`
	ModelID     string   `parquet:"model_id,snappy"`
	Score       *float64 `parquet:"score,optional,snappy"`
	Winner      bool     `parquet:"winner,snappy"`
}

// writeParquet writes rows of any struct type to a Parquet file. The schema is
// derived from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteRunsParquet writes run records to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteRunItemsParquet writes run items to a Parquet file.
func WriteRunItemsParquet(data []RunItem, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteModelsParquet writes model index rows to a Parquet file.
func WriteModelsParquet(data []ModelRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteBenchmarksParquet writes benchmark index rows to a Parquet file.
func WriteBenchmarksParquet(data []BenchmarkRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteParticipationsParquet writes per-model benchmark scores to a Parquet file.
func WriteParticipationsParquet(data []ParticipationRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteLeaderboardParquet writes leaderboard entries to a Parquet file.
func WriteLeaderboardParquet(data []LeaderboardRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteComparisonParquet writes comparison cells to a Parquet file.
func WriteComparisonParquet(data []ComparisonCellRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:         record.RunID,
			RunKey:        record.RunKey,
			Command:       record.Command,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDuration,
			TotalItems:    record.TotalItems,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertRunItemRecords converts schema.RunItemRecord to RunItem for Parquet export.
func ConvertRunItemRecords(records []schema.RunItemRecord) []RunItem {
	result := make([]RunItem, len(records))
	for i, record := range records {
		result[i] = RunItem{
			RunID:    record.RunID,
			ItemRank: record.Rank,
			ItemID:   record.ItemID,
			ItemKind: record.ItemKind,
			Score:    record.Score,
			ItemTime: record.ItemTime,
		}
	}
	return result
}

// ConvertModels converts enriched model items to ModelRow.
func ConvertModels(items []schema.EnrichedModelItem) []ModelRow {
	result := make([]ModelRow, len(items))
	for i, m := range items {
		result[i] = ModelRow{
			Rank:            int32(m.Rank),
			ModelID:         m.ID,
			Name:            m.Name,
			Publisher:       m.Publisher,
			ReleaseDate:     m.ReleaseDate,
			Params:          m.Params,
			AverageScore:    int32(m.AverageScore),
			TotalBenchmarks: int32(m.TotalBenchmarks),
			Label:           m.Label,
		}
	}
	return result
}

// ConvertBenchmarks converts benchmark summaries to BenchmarkRow. Rank
// continues across pages through offset.
func ConvertBenchmarks(items []schema.BenchmarkSummary, offset int) []BenchmarkRow {
	result := make([]BenchmarkRow, len(items))
	for i, b := range items {
		result[i] = BenchmarkRow{
			Rank:        int32(offset + i + 1),
			BenchmarkID: b.ID,
			Name:        b.Name,
			Publisher:   b.Publisher,
			Tags:        strings.Join(b.Tags, ","),
			Unit:        b.Unit,
			LastUpdated: b.LastUpdated,
			HeatScore:   b.HeatScore,
			ModelCount:  int32(b.ModelCount),
		}
	}
	return result
}

// ConvertParticipations converts a model's enriched benchmark scores to ParticipationRow.
func ConvertParticipations(modelID string, items []schema.EnrichedParticipation) []ParticipationRow {
	result := make([]ParticipationRow, len(items))
	for i, p := range items {
		result[i] = ParticipationRow{
			ModelID:     modelID,
			Rank:        int32(p.Rank),
			BenchmarkID: p.BenchmarkID,
			Name:        p.Name,
			Score:       p.Score,
			Tags:        strings.Join(p.Tags, ","),
			Label:       p.Label,
		}
	}
	return result
}

// ConvertLeaderboard converts a leaderboard to LeaderboardRow.
func ConvertLeaderboard(result schema.LeaderboardResult) []LeaderboardRow {
	rows := make([]LeaderboardRow, len(result.Entries))
	for i, e := range result.Entries {
		rows[i] = LeaderboardRow{
			BenchmarkID: result.Benchmark.ID,
			Rank:        int32(e.Rank),
			ModelID:     e.ModelID,
			ModelName:   e.ModelName,
			Publisher:   e.Publisher,
			Score:       e.Score,
			Percent:     e.Percent,
		}
	}
	return rows
}

// ConvertComparison flattens a comparison table into one row per cell.
func ConvertComparison(result schema.ComparisonResult) []ComparisonCellRow {
	var rows []ComparisonCellRow
	for _, row := range result.Table {
		for _, cell := range row.Cells {
			rows = append(rows, ComparisonCellRow{
				BenchmarkID: row.BenchmarkID,
				Name:        row.Name,
				Unit:        row.Unit,
				ModelID:     cell.ModelID,
				Score:       cell.Score,
				Winner:      cell.Winner,
			})
		}
	}
	return rows
}
