package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/internal/parquet"
	"github.com/huangsam/benchboard/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// radarBarWidth is the width of the bars drawn next to radar values.
const radarBarWidth = 20

// PrintModelStats outputs a model page, dispatching based on the output format configured.
func PrintModelStats(result schema.ModelStatsResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	participations := schema.EnrichParticipations(result.Stats.ParticipatedBenchmarks)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeModelStatsJSON(w, result, participations)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeModelStatsCSV(w, participations, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, func(path string) error {
			return parquet.WriteParticipationsParquet(parquet.ConvertParticipations(result.Model.ID, participations), path)
		})
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeModelStatsTable(w, result, participations, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

func writeModelStatsJSON(w io.Writer, result schema.ModelStatsResult, participations []schema.EnrichedParticipation) error {
	type jsonStats struct {
		ModelID                string                         `json:"modelId"`
		TotalBenchmarks        int                            `json:"totalBenchmarks"`
		AverageScore           int                            `json:"averageScore"`
		Label                  string                         `json:"label"`
		RadarData              []schema.RadarPoint            `json:"radarData"`
		ParticipatedBenchmarks []schema.EnrichedParticipation `json:"participatedBenchmarks"`
	}
	return writeJSON(w, struct {
		Model          schema.ModelRecord `json:"model"`
		PublisherColor string             `json:"publisherColor"`
		PublisherLogo  string             `json:"publisherLogo"`
		Stats          jsonStats          `json:"stats"`
	}{
		Model:          result.Model,
		PublisherColor: result.PublisherColor,
		PublisherLogo:  result.PublisherLogo,
		Stats: jsonStats{
			ModelID:                result.Stats.ModelID,
			TotalBenchmarks:        result.Stats.TotalBenchmarks,
			AverageScore:           result.Stats.AverageScore,
			Label:                  schema.GetPlainLabel(float64(result.Stats.AverageScore)),
			RadarData:              result.Stats.RadarData,
			ParticipatedBenchmarks: participations,
		},
	})
}

func writeModelStatsCSV(w io.Writer, participations []schema.EnrichedParticipation, fmtFloat func(float64) string) error {
	header := []string{"rank", "benchmark_id", "benchmark", "score", "label", "tags"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, p := range participations {
			rec := []string{
				strconv.Itoa(p.Rank),
				p.BenchmarkID,
				p.Name,
				fmtFloat(p.Score),
				p.Label,
				strings.Join(p.Tags, "|"),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeModelStatsTable(w io.Writer, result schema.ModelStatsResult, participations []schema.EnrichedParticipation, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	m := result.Model
	stats := result.Stats
	lines := []string{
		fmt.Sprintf("%s (%s)", m.Name, m.ID),
		fmt.Sprintf("Publisher: %s %s", m.Publisher, swatch(result.PublisherColor, cfg.UseColors)),
	}
	if m.ReleaseDate != "" {
		lines = append(lines, "Released: "+m.ReleaseDate)
	}
	if cfg.Detail {
		if m.Params != "" {
			lines = append(lines, "Params: "+m.Params)
		}
		if m.License != "" {
			lines = append(lines, "License: "+m.License)
		}
		if m.Website != "" {
			lines = append(lines, "Website: "+m.Website)
		}
	}
	lines = append(lines, fmt.Sprintf("Average score: %d (%s) across %d benchmarks",
		stats.AverageScore, tierLabel(float64(stats.AverageScore), cfg.UseColors), stats.TotalBenchmarks))
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	radar := tablewriter.NewWriter(w)
	radar.Header([]string{"Category", "Value", ""})
	radar.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})
	var radarRows [][]string
	for _, p := range stats.RadarData {
		radarRows = append(radarRows, []string{p.Category, strconv.Itoa(p.Value), bar(float64(p.Value)*100/float64(p.FullMark), radarBarWidth)})
	}
	if err := radar.Bulk(radarRows); err != nil {
		return err
	}
	if err := radar.Render(); err != nil {
		return err
	}

	if len(participations) == 0 {
		_, err := fmt.Fprintln(w, "No benchmark scores recorded for this model.")
		return err
	}

	table := tablewriter.NewWriter(w)
	headers := []string{"Rank", "Benchmark", "Score", "Label"}
	if cfg.Detail {
		headers = append(headers, "Tags")
	}
	table.Header(headers)
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	nameWidth := getMaxTableNameWidth(cfg)
	for _, p := range participations {
		row := []string{
			strconv.Itoa(p.Rank),
			contract.TruncateText(p.Name, nameWidth),
			fmtFloat(p.Score),
			tierLabel(p.Score, cfg.UseColors),
		}
		if cfg.Detail {
			row = append(row, strings.Join(p.Tags, ", "))
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return err
}

// PrintModelList outputs a page of the model index, dispatching based on the output format configured.
func PrintModelList(result schema.ModelListResult, cfg *contract.Config, duration time.Duration) error {
	offset := (result.Pagination.Page - 1) * result.Pagination.PageSize
	items := schema.EnrichModels(result.Items, max(offset, 0))
	footer := pageFooter(result.Pagination, "models")
	return printModelItems(items, cfg, duration, footer, func(w io.Writer) error {
		return writeJSON(w, struct {
			Query      schema.Query              `json:"query"`
			Items      []schema.EnrichedModelItem `json:"items"`
			Pagination schema.Pagination         `json:"pagination"`
			Publishers []string                  `json:"publishers"`
		}{result.Query, items, result.Pagination, result.Publishers})
	})
}

// PrintPublisher outputs a publisher page, dispatching based on the output format configured.
func PrintPublisher(result schema.PublisherResult, cfg *contract.Config, duration time.Duration) error {
	items := schema.EnrichModels(result.Models, 0)
	footer := fmt.Sprintf("%s %s: %d models sorted by %s", result.Name, swatch(result.Color, cfg.UseColors), len(items), result.SortKey)
	if result.Website != "" {
		footer += "\nWebsite: " + result.Website
	}
	return printModelItems(items, cfg, duration, footer, func(w io.Writer) error {
		return writeJSON(w, struct {
			Name    string                     `json:"name"`
			Color   string                     `json:"color"`
			Logo    string                     `json:"logo"`
			Website string                     `json:"website,omitempty"`
			SortKey schema.SortKey             `json:"sort"`
			Models  []schema.EnrichedModelItem `json:"models"`
		}{result.Name, result.Color, result.Logo, result.Website, result.SortKey, items})
	})
}

// printModelItems dispatches model rows shared by the index and publisher pages.
func printModelItems(items []schema.EnrichedModelItem, cfg *contract.Config, duration time.Duration, footer string, jsonWriter func(io.Writer) error) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, jsonWriter, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeModelItemsCSV(w, items)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, func(path string) error {
			return parquet.WriteModelsParquet(parquet.ConvertModels(items), path)
		})
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeModelItemsTable(w, items, cfg, footer, duration)
		}, "Wrote table")
	}
}

func writeModelItemsCSV(w io.Writer, items []schema.EnrichedModelItem) error {
	header := []string{"rank", "model_id", "name", "publisher", "release_date", "params", "average_score", "label", "total_benchmarks"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, m := range items {
			rec := []string{
				strconv.Itoa(m.Rank),
				m.ID,
				m.Name,
				m.Publisher,
				m.ReleaseDate,
				m.Params,
				strconv.Itoa(m.AverageScore),
				m.Label,
				strconv.Itoa(m.TotalBenchmarks),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeModelItemsTable(w io.Writer, items []schema.EnrichedModelItem, cfg *contract.Config, footer string, duration time.Duration) error {
	if len(items) == 0 {
		if _, err := fmt.Fprintln(w, "No models match the current criteria."); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, footer)
		return err
	}

	table := tablewriter.NewWriter(w)
	headers := []string{"Rank", "Model", "Publisher", "Avg", "Label", "Benchmarks"}
	if cfg.Detail {
		headers = append(headers, "Released", "Params")
	}
	table.Header(headers)
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for _, m := range items {
		row := []string{
			strconv.Itoa(m.Rank),
			contract.TruncateText(m.Name, nameWidth),
			m.Publisher,
			strconv.Itoa(m.AverageScore),
			tierLabel(float64(m.AverageScore), cfg.UseColors),
			strconv.Itoa(m.TotalBenchmarks),
		}
		if cfg.Detail {
			row = append(row, m.ReleaseDate, m.Params)
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, footer); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return err
}
