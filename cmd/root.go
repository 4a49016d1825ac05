package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/internal/iocache"
	"github.com/huangsam/benchboard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Build metadata, overridden with -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is shared by every command run.
var rootCtx = context.Background()

// cfg is the validated configuration every view reads.
var cfg = &contract.Config{}

// input receives the merged file, env and flag values before validation.
var input = &contract.ConfigRawInput{}

// cacheManager hands the snapshot cache and history store to the views.
var cacheManager contract.CacheManager

// rootCmd is the parent of every benchboard command.
var rootCmd = &cobra.Command{
	Use:                "benchboard",
	Short:              "Aggregate and compare AI model benchmark scores.",
	Long:               `Benchboard reads benchmark and model records from a content directory and ranks, filters and compares models across benchmarks.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig wires the config file location, env lookup and defaults.
func initConfig() {
	setConfigLocation()

	// BENCHBOARD_PAGE_SIZE maps to --page-size
	viper.SetEnvPrefix("BENCHBOARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("data", contract.DefaultDataPath)
	viper.SetDefault("page", 1)
	viper.SetDefault("page-size", contract.DefaultPageSize)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("cache-backend", schema.SQLiteBackend)
	viper.SetDefault("cache-db-connect", "")
	viper.SetDefault("history-backend", schema.NoneBackend)
	viper.SetDefault("history-db-connect", "")
	viper.SetDefault("color", "yes")
	viper.SetDefault("addr", contract.DefaultServeAddr)
	viper.SetDefault("log-level", contract.DefaultLogLevel)
}

// setConfigLocation points viper at --config or the default search paths.
func setConfigLocation() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".benchboard") // Name of config file (without extension)
	viper.SetConfigType("yaml")        // We'll use YAML format
	viper.AddConfigPath(".")           // Look in the current directory
	viper.AddConfigPath("$HOME")       // Look in the home directory
}

// sharedSetup resolves the configuration of a view command and opens its stores.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// Positional ids are not known to viper
	input.Targets = args

	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	if err := iocache.InitStores(cfg.CacheBackend, cfg.CacheDBConnect, cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}

	return nil
}

// sharedSetupWrapper adapts sharedSetup to cobra's PreRunE signature.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile reads the config file if one exists.
func loadConfigFile() error {
	setConfigLocation()
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetCacheManager installs the store manager used by every view.
func SetCacheManager(mgr contract.CacheManager) {
	cacheManager = mgr
}
