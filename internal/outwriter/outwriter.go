// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteModelStats prints a model page using the configured output format.
func (ow *OutWriter) WriteModelStats(result schema.ModelStatsResult, cfg *contract.Config, duration time.Duration) error {
	return PrintModelStats(result, cfg, duration)
}

// WriteModelList prints a page of the model index using the configured output format.
func (ow *OutWriter) WriteModelList(result schema.ModelListResult, cfg *contract.Config, duration time.Duration) error {
	return PrintModelList(result, cfg, duration)
}

// WriteBenchmarkList prints a page of the benchmark index using the configured output format.
func (ow *OutWriter) WriteBenchmarkList(result schema.BenchmarkListResult, cfg *contract.Config, duration time.Duration) error {
	return PrintBenchmarkList(result, cfg, duration)
}

// WriteLeaderboard prints a benchmark leaderboard using the configured output format.
func (ow *OutWriter) WriteLeaderboard(result schema.LeaderboardResult, cfg *contract.Config, duration time.Duration) error {
	return PrintLeaderboard(result, cfg, duration)
}

// WriteComparison prints a model comparison using the configured output format.
func (ow *OutWriter) WriteComparison(result schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	return PrintComparison(result, cfg, duration)
}

// WritePublisher prints a publisher page using the configured output format.
func (ow *OutWriter) WritePublisher(result schema.PublisherResult, cfg *contract.Config, duration time.Duration) error {
	return PrintPublisher(result, cfg, duration)
}

// WritePublisherList prints the publisher list using the configured output format.
func (ow *OutWriter) WritePublisherList(results []schema.PublisherSummary, cfg *contract.Config) error {
	return PrintPublisherList(results, cfg)
}

// WriteTags prints the tag list using the configured output format.
func (ow *OutWriter) WriteTags(results []schema.TagSummary, cfg *contract.Config) error {
	return PrintTags(results, cfg)
}

// getMaxTableNameWidth calculates the maximum width for the name column in
// table output based on terminal width and table configuration.
func getMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + Publisher + Score + Label + Count with borders/padding
	baseWidth := 55
	if cfg.Detail {
		baseWidth += 30 // Date and params columns
	}

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}
