package schema

import "math"

// RadarPoint is one axis value of a model's radar chart.
type RadarPoint struct {
	Category string `json:"category"`
	Value    int    `json:"value"`
	FullMark int    `json:"fullMark"`
}

// ParticipatedBenchmark is a benchmark the model holds a score on.
type ParticipatedBenchmark struct {
	BenchmarkID string   `json:"benchmarkId"`
	Name        string   `json:"name"`
	Score       float64  `json:"score"`
	Tags        []string `json:"tags"`
}

// ModelStats is the derived, per-call view of a single model.
// RadarData always has one entry per CategoryAxis element, in axis order.
type ModelStats struct {
	ModelID                string                  `json:"modelId"`
	TotalBenchmarks        int                     `json:"totalBenchmarks"`
	AverageScore           int                     `json:"averageScore"`
	RadarData              []RadarPoint            `json:"radarData"`
	ParticipatedBenchmarks []ParticipatedBenchmark `json:"participatedBenchmarks"`
}

// RadarValue returns the radar value for a category, or zero.
func (s ModelStats) RadarValue(category string) int {
	for _, p := range s.RadarData {
		if p.Category == category {
			return p.Value
		}
	}
	return 0
}

// ModelStatsResult is a model page: the model record with its publisher
// presentation and derived statistics.
type ModelStatsResult struct {
	Model          ModelRecord `json:"model"`
	PublisherColor string      `json:"publisherColor"`
	PublisherLogo  string      `json:"publisherLogo"`
	Stats          ModelStats  `json:"stats"`
}

// ModelIndexItem is a model together with its derived aggregates,
// as listed on index and publisher pages.
type ModelIndexItem struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Publisher       string `json:"publisher"`
	PublisherColor  string `json:"publisherColor"`
	ReleaseDate     string `json:"releaseDate,omitempty"`
	Params          string `json:"params,omitempty"`
	AverageScore    int    `json:"averageScore"`
	TotalBenchmarks int    `json:"totalBenchmarks"`
}

// GetName returns the model name.
func (m ModelIndexItem) GetName() string { return m.Name }

// GetPublisher returns the model publisher.
func (m ModelIndexItem) GetPublisher() string { return m.Publisher }

// GetTags returns nil; models are not tagged.
func (m ModelIndexItem) GetTags() []string { return nil }

// GetDate returns the release date string.
func (m ModelIndexItem) GetDate() string { return m.ReleaseDate }

// GetHeat returns zero; models carry no trending counters.
func (m ModelIndexItem) GetHeat() float64 { return 0 }

// GetScore returns the average score.
func (m ModelIndexItem) GetScore() float64 { return float64(m.AverageScore) }

// BenchmarkSummary is the list view of a benchmark.
type BenchmarkSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	FullName    string   `json:"fullName,omitempty"`
	Publisher   string   `json:"publisher"`
	Tags        []string `json:"tags"`
	Unit        string   `json:"unit"`
	LastUpdated string   `json:"lastUpdated"`
	HeatScore   float64  `json:"heatScore"`
	ModelCount  int      `json:"modelCount"`
}

// NewBenchmarkSummary builds the list view of a benchmark record.
func NewBenchmarkSummary(b BenchmarkRecord) BenchmarkSummary {
	count := 0
	for _, e := range b.Snapshot {
		if e.Valid() {
			count++
		}
	}
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	return BenchmarkSummary{
		ID:          b.ID,
		Name:        b.Name,
		FullName:    b.FullName,
		Publisher:   b.Publisher,
		Tags:        tags,
		Unit:        b.Metrics.Unit,
		LastUpdated: b.LastUpdated,
		HeatScore:   b.HeatScore(),
		ModelCount:  count,
	}
}

// Pagination describes the page that was returned.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
}

// Query holds the filter and sort criteria of an index view.
type Query struct {
	SearchText  string      `json:"search"`
	Filter      string      `json:"filter"`
	FilterField FilterField `json:"filterField"`
	SortKey     SortKey     `json:"sort"`
}

// ModelListResult is one page of the model index.
type ModelListResult struct {
	Query      Query            `json:"query"`
	Items      []ModelIndexItem `json:"items"`
	Pagination Pagination       `json:"pagination"`
	Publishers []string         `json:"publishers"`
}

// BenchmarkListResult is one page of the benchmark index.
type BenchmarkListResult struct {
	Query      Query              `json:"query"`
	Items      []BenchmarkSummary `json:"items"`
	Pagination Pagination         `json:"pagination"`
	Tags       []string           `json:"tags"`
}

// LeaderboardEntry is one bar of a benchmark leaderboard.
type LeaderboardEntry struct {
	Rank           int     `json:"rank"`
	ModelID        string  `json:"modelId"`
	ModelName      string  `json:"modelName"`
	Publisher      string  `json:"publisher"`
	PublisherColor string  `json:"publisherColor"`
	PublisherLogo  string  `json:"publisherLogo"`
	Score          float64 `json:"score"`
	Percent        float64 `json:"percent"`
}

// LeaderboardResult is a benchmark with its snapshot resolved for display.
type LeaderboardResult struct {
	Benchmark       BenchmarkSummary   `json:"benchmark"`
	Description     string             `json:"description"`
	DescriptionHTML string             `json:"descriptionHtml,omitempty"`
	Link            string             `json:"link"`
	IsBetterHigher  bool               `json:"isBetterHigher"`
	IsFromAA        bool               `json:"isFromAA,omitempty"`
	AALink          string             `json:"AALink,omitempty"`
	MaxScore        float64            `json:"maxScore"`
	ShowHeat        bool               `json:"showHeat"`
	Entries         []LeaderboardEntry `json:"entries"`
}

// PublisherResult is a publisher page.
type PublisherResult struct {
	Name    string           `json:"name"`
	Color   string           `json:"color"`
	Logo    string           `json:"logo"`
	Website string           `json:"website,omitempty"`
	SortKey SortKey          `json:"sort"`
	Models  []ModelIndexItem `json:"models"`
}

// PublisherSummary is one row of the publisher list.
type PublisherSummary struct {
	Name           string `json:"name"`
	Color          string `json:"color"`
	Logo           string `json:"logo"`
	ModelCount     int    `json:"modelCount"`
	BenchmarkCount int    `json:"benchmarkCount"`
}

// TagSummary is one row of the tag list.
type TagSummary struct {
	Tag            string `json:"tag"`
	BenchmarkCount int    `json:"benchmarkCount"`
	OnRadar        bool   `json:"onRadar"`
}

// RoundMean returns the mean of sum over count rounded half away from zero,
// or zero when count is zero.
func RoundMean(sum float64, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(sum / float64(count)))
}
