package schema

// ComparableModel is a model prepared for comparison: its radar values and a
// lookup from benchmark id to score.
type ComparableModel struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Publisher string             `json:"publisher"`
	Color     string             `json:"color"`
	Radar     []RadarPoint       `json:"radar"`
	Scores    map[string]float64 `json:"scores"`
}

// BenchmarkMeta is the part of a benchmark the comparison table needs.
type BenchmarkMeta struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Unit           string `json:"unit"`
	IsBetterHigher bool   `json:"isBetterHigher"`
}

// SeriesMeta describes one selected model in the chart legend.
type SeriesMeta struct {
	ModelID string `json:"modelId"`
	Name    string `json:"name"`
	Color   string `json:"color"`
}

// SeriesValue is one model's value at a chart point.
type SeriesValue struct {
	ModelID string `json:"modelId"`
	Value   int    `json:"value"`
}

// ChartPoint is one radar category with a value per selected model.
type ChartPoint struct {
	Category string        `json:"category"`
	FullMark int           `json:"fullMark"`
	Values   []SeriesValue `json:"values"`
}

// ScoreCell is one model's cell in a comparison row. A nil Score means the
// model has no data on the benchmark, which is distinct from a score of zero.
type ScoreCell struct {
	ModelID string   `json:"modelId"`
	Score   *float64 `json:"score"`
	Winner  bool     `json:"winner"`
}

// ComparisonRow is one benchmark in the comparison table.
type ComparisonRow struct {
	BenchmarkID string      `json:"benchmarkId"`
	Name        string      `json:"name"`
	Unit        string      `json:"unit"`
	Cells       []ScoreCell `json:"cells"`
	Winners     []string    `json:"winners"`
}

// ComparisonResult is the side-by-side view of the selected models.
type ComparisonResult struct {
	Selection   string          `json:"selection"`
	Series      []SeriesMeta    `json:"series"`
	ChartSeries []ChartPoint    `json:"chartSeries"`
	Table       []ComparisonRow `json:"table"`
	Empty       bool            `json:"empty"`
}
