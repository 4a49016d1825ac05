package cmd

import (
	"github.com/huangsam/benchboard/core"
	"github.com/huangsam/benchboard/internal/contract"
	"github.com/spf13/cobra"
)

// runView executes a view and exits on failure.
func runView(msg string, executeFunc core.ExecutorFunc) func(*cobra.Command, []string) {
	return func(_ *cobra.Command, _ []string) {
		if err := executeFunc(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal(msg, err)
		}
	}
}

// modelsCmd lists the model index.
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models ranked by average score.",
	Long: `List every model with its average score across the benchmarks it was scored on.

Models can be searched by name or publisher, filtered to one publisher and
sorted by score, release date, name or trending. Results are paginated.

Examples:
  # Top models by average score
  benchboard models

  # Only OpenAI models, newest first
  benchboard models --publisher OpenAI --sort date

  # Second page of models matching "gem"
  benchboard models --search gem --page 2 --page-size 10`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run:     runView("Cannot list models", core.ExecuteModelList),
}

// statsCmd shows one model page.
var statsCmd = &cobra.Command{
	Use:   "stats <model-id>",
	Short: "Show a model's average score, radar values and per-benchmark ranks.",
	Long: `Show the statistics of one model.

Displays:
- Average score (rounded) and tier label
- Radar values for each category axis
- Every benchmark the model was scored on, with its rank there

Examples:
  benchboard stats openai/gpt-5
  benchboard stats anthropic/claude-opus-4 --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runView("Cannot compute model stats", core.ExecuteModelStats),
}

// benchmarksCmd lists the benchmark index.
var benchmarksCmd = &cobra.Command{
	Use:   "benchmarks",
	Short: "List benchmarks ranked by popularity.",
	Long: `List every benchmark with its tags, publisher and model count.

Benchmarks are sorted by heat (trending) unless another sort key is given and
can be filtered to one tag. An unknown tag shows all benchmarks.

Examples:
  # Trending benchmarks
  benchboard benchmarks

  # Coding benchmarks by name
  benchboard benchmarks --tag Coding --sort name

  # Show the leaderboard of one benchmark
  benchboard benchmarks show gpqa-diamond`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run:     runView("Cannot list benchmarks", core.ExecuteBenchmarkList),
}

// benchmarksShowCmd prints one leaderboard.
var benchmarksShowCmd = &cobra.Command{
	Use:   "show <benchmark-id>",
	Short: "Show the leaderboard of one benchmark.",
	Long: `Rank every model scored on a benchmark.

Scores are ranked best first, descending unless lower is better for that
benchmark. Relative bars are scaled to the best score.

Examples:
  benchboard benchmarks show tau-bench
  benchboard benchmarks show mrcr --output csv --output-file mrcr.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runView("Cannot build leaderboard", core.ExecuteLeaderboard),
}

// compareCmd compares selected models.
var compareCmd = &cobra.Command{
	Use:   "compare [model-id...]",
	Short: "Compare models side by side.",
	Long: `Compare models across the category axes and every benchmark.

Models come from --models (a shared comparison token) followed by positional
ids. Unknown and duplicate ids are dropped; the order of the rest is kept.
The best score of each benchmark is marked as the winner.

Examples:
  # Compare two models
  benchboard compare openai/gpt-5 google/gemini-2.5-pro

  # Reuse a comparison token
  benchboard compare --models openai/gpt-5,openai/o3,anthropic/claude-opus-4`,
	PreRunE: sharedSetupWrapper,
	Run:     runView("Cannot compare models", core.ExecuteCompare),
}

// publishersCmd lists every publisher.
var publishersCmd = &cobra.Command{
	Use:   "publishers",
	Short: "List publishers with their model and benchmark counts.",
	Long: `List every publisher seen in model records or publisher records.

Examples:
  benchboard publishers
  benchboard publishers show OpenAI --sort date`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run:     runView("Cannot list publishers", core.ExecutePublisherList),
}

// publishersShowCmd prints one publisher page.
var publishersShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the models of one publisher.",
	Long: `Show a publisher's models with their average scores.

Models are sorted by score (default) or release date.

Examples:
  benchboard publishers show Google
  benchboard publishers show openai --sort date`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runView("Cannot build publisher page", core.ExecutePublisher),
}

// tagsCmd lists every benchmark tag.
var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List benchmark tags with their benchmark counts.",
	Long: `List every tag used by a benchmark. Tags that are also radar
categories are marked.

Examples:
  benchboard tags
  benchboard tags --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run:     runView("Cannot list tags", core.ExecuteTags),
}
