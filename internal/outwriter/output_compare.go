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

// Placeholders used in comparison cells.
const (
	noDataMark = "—"
	winnerMark = "★"
)

// PrintComparison outputs a model comparison, dispatching based on the output format configured.
func PrintComparison(result schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonCSV(w, result, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, func(path string) error {
			return parquet.WriteComparisonParquet(parquet.ConvertComparison(result), path)
		})
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonTable(w, result, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeComparisonCSV writes one row per benchmark with a score column per model.
// Missing scores are empty cells.
func writeComparisonCSV(w io.Writer, result schema.ComparisonResult, fmtFloat func(float64) string) error {
	header := []string{"benchmark_id", "benchmark", "unit"}
	for _, s := range result.Series {
		header = append(header, s.ModelID)
	}
	header = append(header, "winners")

	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, row := range result.Table {
			rec := []string{row.BenchmarkID, row.Name, row.Unit}
			for _, cell := range row.Cells {
				if cell.Score == nil {
					rec = append(rec, "")
					continue
				}
				rec = append(rec, fmtFloat(*cell.Score))
			}
			rec = append(rec, strings.Join(row.Winners, "|"))
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// formatCell renders a comparison cell for the table view.
func formatCell(cell schema.ScoreCell, useColors bool, fmtFloat func(float64) string) string {
	if cell.Score == nil {
		return noDataMark
	}
	value := fmtFloat(*cell.Score)
	if !cell.Winner {
		return value
	}
	value = winnerMark + " " + value
	if useColors {
		return contract.WinnerColor.Sprint(value)
	}
	return value
}

func writeComparisonTable(w io.Writer, result schema.ComparisonResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if result.Empty {
		_, err := fmt.Fprintln(w, "No models selected. Pass model ids with --models or as arguments.")
		return err
	}

	names := make([]string, len(result.Series))
	legend := make([]string, len(result.Series))
	for i, s := range result.Series {
		names[i] = s.Name
		legend[i] = fmt.Sprintf("%s %s", s.Name, swatch(s.Color, cfg.UseColors))
	}
	if _, err := fmt.Fprintf(w, "Comparing: %s\n", strings.Join(legend, ", ")); err != nil {
		return err
	}

	chart := tablewriter.NewWriter(w)
	chart.Header(append([]string{"Category"}, names...))
	chart.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})
	var chartRows [][]string
	for _, p := range result.ChartSeries {
		row := []string{p.Category}
		for _, v := range p.Values {
			row = append(row, strconv.Itoa(v.Value))
		}
		chartRows = append(chartRows, row)
	}
	if err := chart.Bulk(chartRows); err != nil {
		return err
	}
	if err := chart.Render(); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	headers := []string{"Benchmark"}
	if cfg.Detail {
		headers = append(headers, "Unit")
	}
	table.Header(append(headers, names...))
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for _, row := range result.Table {
		rec := []string{contract.TruncateText(row.Name, nameWidth)}
		if cfg.Detail {
			rec = append(rec, row.Unit)
		}
		for _, cell := range row.Cells {
			rec = append(rec, formatCell(cell, cfg.UseColors, fmtFloat))
		}
		data = append(data, rec)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d benchmarks compared (%s marks the best score). Completed in %v\n", len(result.Table), winnerMark, duration)
	return err
}
