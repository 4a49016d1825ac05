package contract

import (
	"fmt"
	"slices"
	"strings"

	"github.com/huangsam/benchboard/schema"
)

// Default values for configuration.
const (
	DefaultDataPath  = "content"
	DefaultPageSize  = schema.DefaultPageSize
	MaxPageSize      = 200
	DefaultPrecision = 1
	DefaultServeAddr = "127.0.0.1:8080"
	DefaultLogLevel  = "info"
)

// Config is the final, validated configuration used by every command.
type Config struct {
	// Record source
	DataPath        string
	Strict          bool
	NormalizeScores bool

	// View criteria
	SearchText string
	Tag        string
	Publisher  string
	SortKey    schema.SortKey
	Page       int
	PageSize   int
	Selection  []string
	Targets    []string

	// Output
	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int
	Detail     bool
	UseColors  bool

	// Stores
	CacheBackend     schema.DatabaseBackend
	CacheDBConnect   string
	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string

	// Server
	ServeAddr   string
	CORSOrigins []string
	LogLevel    string
	LogFile     string
}

// ConfigRawInput holds values straight from flags, env and config file,
// before validation.
type ConfigRawInput struct {
	Data             string `mapstructure:"data"`
	Strict           bool   `mapstructure:"strict"`
	NormalizeScores  bool   `mapstructure:"normalize-scores"`
	Search           string `mapstructure:"search"`
	Tag              string `mapstructure:"tag"`
	Publisher        string `mapstructure:"publisher"`
	Sort             string `mapstructure:"sort"`
	Page             int    `mapstructure:"page"`
	PageSize         int    `mapstructure:"page-size"`
	Models           string `mapstructure:"models"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Precision        int    `mapstructure:"precision"`
	Width            int    `mapstructure:"width"`
	Detail           bool   `mapstructure:"detail"`
	Color            string `mapstructure:"color"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	Addr             string `mapstructure:"addr"`
	CORSOrigins      string `mapstructure:"cors-origins"`
	LogLevel         string `mapstructure:"log-level"`
	LogFile          string `mapstructure:"log-file"`

	Targets []string `mapstructure:"-"`
}

// Clone returns a deep copy of the configuration so callers such as the MCP
// and HTTP handlers can adjust criteria per request.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Selection = slices.Clone(c.Selection)
	clone.Targets = slices.Clone(c.Targets)
	clone.CORSOrigins = slices.Clone(c.CORSOrigins)
	return &clone
}

// Target returns the first positional argument, or an empty string.
func (c *Config) Target() string {
	if len(c.Targets) == 0 {
		return ""
	}
	return c.Targets[0]
}

// ProcessAndValidate converts the raw input into cfg, reporting the first
// invalid value.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processViewCriteria(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	processServerInputs(cfg, input)
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL, PostgreSQL and Redis backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	case schema.RedisBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.HasPrefix(connStr, "redis://") && !strings.HasPrefix(connStr, "rediss://") {
			return fmt.Errorf("Redis connection string must be a redis:// or rediss:// URL")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates the output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.DataPath = strings.TrimSpace(input.Data)
	if cfg.DataPath == "" {
		cfg.DataPath = DefaultDataPath
	}
	cfg.Strict = input.Strict
	cfg.NormalizeScores = input.NormalizeScores
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Width = input.Width
	cfg.Targets = slices.Clone(input.Targets)

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	if cfg.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", cfg.Width)
	}
	return nil
}

// processViewCriteria validates search, filter, sort and paging inputs.
func processViewCriteria(cfg *Config, input *ConfigRawInput) error {
	cfg.SearchText = strings.TrimSpace(input.Search)
	cfg.Tag = strings.TrimSpace(input.Tag)
	cfg.Publisher = strings.TrimSpace(input.Publisher)
	cfg.Selection = SplitToken(input.Models)

	cfg.SortKey = schema.SortKey(strings.ToLower(strings.TrimSpace(input.Sort)))
	if cfg.SortKey != "" {
		if _, ok := schema.ValidSortKeys[cfg.SortKey]; !ok {
			return fmt.Errorf("invalid sort '%s'. must be trending, date, name, score", input.Sort)
		}
	}

	if input.Page < 0 {
		return fmt.Errorf("page cannot be negative (received %d)", input.Page)
	}
	cfg.Page = max(input.Page, 1)

	if input.PageSize <= 0 || input.PageSize > MaxPageSize {
		return fmt.Errorf("page size must be greater than 0 and cannot exceed %d (received %d)", MaxPageSize, input.PageSize)
	}
	cfg.PageSize = input.PageSize
	return nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, redis, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		cfg.HistoryBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidHistoryBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	if cfg.CacheBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		cachePath := cfg.CacheDBConnect
		if cachePath == "" {
			cachePath = GetCacheDBFilePath()
		}
		historyPath := cfg.HistoryDBConnect
		if historyPath == "" {
			historyPath = GetHistoryDBFilePath()
		}
		if cachePath == historyPath {
			return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cachePath)
		}
	}
	return nil
}

// processServerInputs copies the HTTP server settings.
func processServerInputs(cfg *Config, input *ConfigRawInput) {
	cfg.ServeAddr = strings.TrimSpace(input.Addr)
	if cfg.ServeAddr == "" {
		cfg.ServeAddr = DefaultServeAddr
	}
	cfg.CORSOrigins = SplitToken(input.CORSOrigins)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(input.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	cfg.LogFile = input.LogFile
}
