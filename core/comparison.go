package core

import (
	"strings"

	"github.com/huangsam/benchboard/schema"
)

// BuildComparison lines up the selected models against each other: one chart
// point per radar category and one table row per benchmark. Selected ids that
// do not match a model are skipped. The winners of a row are all models tied
// at the row maximum, provided that maximum is above zero.
func BuildComparison(selected []string, allModels []schema.ComparableModel, benchmarks []schema.BenchmarkMeta) schema.ComparisonResult {
	byID := make(map[string]schema.ComparableModel, len(allModels))
	for _, m := range allModels {
		if _, dup := byID[m.ID]; !dup {
			byID[m.ID] = m
		}
	}

	models := make([]schema.ComparableModel, 0, len(selected))
	seen := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		m, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		models = append(models, m)
	}

	result := schema.ComparisonResult{
		Series:      make([]schema.SeriesMeta, 0, len(models)),
		ChartSeries: []schema.ChartPoint{},
		Table:       []schema.ComparisonRow{},
		Empty:       len(models) == 0,
	}
	if result.Empty {
		return result
	}

	ids := make([]string, len(models))
	for i, m := range models {
		ids[i] = m.ID
		result.Series = append(result.Series, schema.SeriesMeta{ModelID: m.ID, Name: m.Name, Color: m.Color})
	}
	result.Selection = strings.Join(ids, ",")

	for _, category := range schema.CategoryAxis {
		point := schema.ChartPoint{
			Category: category,
			FullMark: schema.RadarFullMark,
			Values:   make([]schema.SeriesValue, len(models)),
		}
		for i, m := range models {
			point.Values[i] = schema.SeriesValue{ModelID: m.ID, Value: radarValue(m.Radar, category)}
		}
		result.ChartSeries = append(result.ChartSeries, point)
	}

	for _, b := range benchmarks {
		result.Table = append(result.Table, buildRow(b, models))
	}
	return result
}

// buildRow scores one benchmark for every selected model and marks the winners.
func buildRow(b schema.BenchmarkMeta, models []schema.ComparableModel) schema.ComparisonRow {
	row := schema.ComparisonRow{
		BenchmarkID: b.ID,
		Name:        b.Name,
		Unit:        b.Unit,
		Cells:       make([]schema.ScoreCell, len(models)),
		Winners:     []string{},
	}

	var best float64
	for i, m := range models {
		row.Cells[i] = schema.ScoreCell{ModelID: m.ID}
		score, ok := m.Scores[b.ID]
		if !ok {
			continue
		}
		row.Cells[i].Score = &score
		if score > best {
			best = score
		}
	}
	if best <= 0 {
		return row
	}

	for i := range row.Cells {
		if s := row.Cells[i].Score; s != nil && *s == best {
			row.Cells[i].Winner = true
			row.Winners = append(row.Winners, row.Cells[i].ModelID)
		}
	}
	return row
}

func radarValue(radar []schema.RadarPoint, category string) int {
	for _, p := range radar {
		if p.Category == category {
			return p.Value
		}
	}
	return 0
}
