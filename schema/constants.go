package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// SortKey represents the ordering applied to an index listing.
	SortKey string

	// FilterField represents which attribute the filter selection applies to.
	FilterField string

	// DatabaseBackend represents the database backend for caching and history.
	DatabaseBackend string

	// ItemKind represents the kind of item recorded in run history.
	ItemKind string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All sort keys supported.
const (
	TrendingSort SortKey = "trending" // default for benchmarks
	DateSort     SortKey = "date"
	NameSort     SortKey = "name"
	ScoreSort    SortKey = "score" // default for models
)

// All filter fields supported.
const (
	TagFilter       FilterField = "tag"
	PublisherFilter FilterField = "publisher"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	RedisBackend      DatabaseBackend = "redis" // cache only
	NoneBackend       DatabaseBackend = "none"
)

// All item kinds recorded in run history.
const (
	ModelItem     ItemKind = "model"
	BenchmarkItem ItemKind = "benchmark"
	EntryItem     ItemKind = "entry"
)

// AllFilter is the filter value that disables tag or publisher filtering.
const AllFilter = "All"

// DefaultPageSize is the number of items shown per index page.
const DefaultPageSize = 18

// MaxOptionResults caps the comparator option search.
const MaxOptionResults = 50

// RadarFullMark is the upper bound of every radar axis.
const RadarFullMark = 100

// CategoryAxis is the fixed, ordered list of radar categories.
var CategoryAxis = []string{
	"Agent",
	"Coding",
	"Knowledge",
	"Long-Context",
	"Multimodal",
	"Reasoning",
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidSortKeys lists all valid sort keys.
var ValidSortKeys = map[SortKey]struct{}{
	TrendingSort: {},
	DateSort:     {},
	NameSort:     {},
	ScoreSort:    {},
}

// ValidPublisherSortKeys lists the sort keys available on a publisher page.
var ValidPublisherSortKeys = map[SortKey]struct{}{
	ScoreSort: {},
	DateSort:  {},
}

// ValidDatabaseBackends lists all valid cache backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	RedisBackend:      {},
	NoneBackend:       {},
}

// ValidHistoryBackends lists all valid run history backends.
var ValidHistoryBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// IsAxisCategory reports whether the tag is one of the radar categories.
func IsAxisCategory(tag string) bool {
	for _, c := range CategoryAxis {
		if c == tag {
			return true
		}
	}
	return false
}
