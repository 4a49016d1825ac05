// Package cmd defines the command-line interface for benchboard.
package cmd

import (
	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(benchmarksCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(publishersCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(historyCmd)

	// Add the show subcommands to their listing commands
	benchmarksCmd.AddCommand(benchmarksShowCmd)
	publishersCmd.AddCommand(publishersShowCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("data", "d", contract.DefaultDataPath, "Path to the content directory or a bundle file")
	rootCmd.PersistentFlags().Bool("strict", false, "Fail on the first invalid record instead of skipping it")
	rootCmd.PersistentFlags().Bool("normalize-scores", false, "Scale fractional scores (at most 1.0) to the 0-100 range")
	rootCmd.PersistentFlags().StringP("search", "s", "", "Case-insensitive text matched against name and publisher")
	rootCmd.PersistentFlags().String("sort", "", "Sort key: trending or date or name or score")
	rootCmd.PersistentFlags().IntP("page", "p", 1, "1-based page number")
	rootCmd.PersistentFlags().Int("page-size", contract.DefaultPageSize, "Number of results per page")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().Bool("detail", false, "Print extra columns such as release dates and links")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or redis or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Connection string for mysql/postgresql/redis (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.NoneBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Connection string for run history (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of modelsCmd to Viper
	modelsCmd.Flags().String("publisher", "", "Only models of this publisher")
	if err := viper.BindPFlags(modelsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding models flags", err)
	}

	// Bind all flags of benchmarksCmd to Viper
	benchmarksCmd.Flags().StringP("tag", "t", "", "Only benchmarks with this tag")
	if err := viper.BindPFlags(benchmarksCmd.Flags()); err != nil {
		contract.LogFatal("Error binding benchmarks flags", err)
	}

	// Bind all flags of compareCmd to Viper
	compareCmd.Flags().StringP("models", "m", "", "Comma-separated model ids, as in a shared comparison link")
	if err := viper.BindPFlags(compareCmd.Flags()); err != nil {
		contract.LogFatal("Error binding compare flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultServeAddr, "Listen address for the HTTP API")
	serveCmd.Flags().String("cors-origins", "", "Comma-separated allowed CORS origins (empty = any)")
	serveCmd.Flags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	serveCmd.Flags().String("log-file", "", "Rotated log file path (empty = stderr)")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
