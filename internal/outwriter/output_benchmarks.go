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

// leaderboardBarWidth is the width of a full leaderboard bar.
const leaderboardBarWidth = 24

// PrintBenchmarkList outputs a page of the benchmark index, dispatching based on the output format configured.
func PrintBenchmarkList(result schema.BenchmarkListResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	offset := max((result.Pagination.Page-1)*result.Pagination.PageSize, 0)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBenchmarkListCSV(w, result.Items, offset, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, func(path string) error {
			return parquet.WriteBenchmarksParquet(parquet.ConvertBenchmarks(result.Items, offset), path)
		})
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBenchmarkListTable(w, result, offset, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

func writeBenchmarkListCSV(w io.Writer, items []schema.BenchmarkSummary, offset int, fmtFloat func(float64) string) error {
	header := []string{"rank", "benchmark_id", "name", "publisher", "tags", "unit", "last_updated", "heat_score", "model_count"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, b := range items {
			rec := []string{
				strconv.Itoa(offset + i + 1),
				b.ID,
				b.Name,
				b.Publisher,
				strings.Join(b.Tags, "|"),
				b.Unit,
				b.LastUpdated,
				fmtFloat(b.HeatScore),
				strconv.Itoa(b.ModelCount),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeBenchmarkListTable(w io.Writer, result schema.BenchmarkListResult, offset int, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	footer := pageFooter(result.Pagination, "benchmarks")
	if len(result.Items) == 0 {
		if _, err := fmt.Fprintln(w, "No benchmarks match the current criteria."); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, footer)
		return err
	}

	table := tablewriter.NewWriter(w)
	headers := []string{"Rank", "Benchmark", "Publisher", "Tags", "Models", "Heat"}
	if cfg.Detail {
		headers = append(headers, "Updated", "Unit")
	}
	table.Header(headers)
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for i, b := range result.Items {
		row := []string{
			strconv.Itoa(offset + i + 1),
			contract.TruncateText(b.Name, nameWidth),
			b.Publisher,
			strings.Join(b.Tags, ", "),
			strconv.Itoa(b.ModelCount),
			fmtFloat(b.HeatScore),
		}
		if cfg.Detail {
			row = append(row, b.LastUpdated, b.Unit)
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

// PrintLeaderboard outputs a benchmark leaderboard, dispatching based on the output format configured.
func PrintLeaderboard(result schema.LeaderboardResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLeaderboardCSV(w, result, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, func(path string) error {
			return parquet.WriteLeaderboardParquet(parquet.ConvertLeaderboard(result), path)
		})
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLeaderboardTable(w, result, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

func writeLeaderboardCSV(w io.Writer, result schema.LeaderboardResult, fmtFloat func(float64) string) error {
	header := []string{"rank", "model_id", "model", "publisher", "score", "percent"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, e := range result.Entries {
			rec := []string{
				strconv.Itoa(e.Rank),
				e.ModelID,
				e.ModelName,
				e.Publisher,
				fmtFloat(e.Score),
				fmtFloat(e.Percent),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeLeaderboardTable(w io.Writer, result schema.LeaderboardResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	b := result.Benchmark
	title := b.Name
	if b.FullName != "" {
		title = fmt.Sprintf("%s (%s)", b.Name, b.FullName)
	}
	direction := "higher is better"
	if !result.IsBetterHigher {
		direction = "lower is better"
	}
	lines := []string{
		title,
		fmt.Sprintf("Publisher: %s | Tags: %s | %s", b.Publisher, strings.Join(b.Tags, ", "), direction),
	}
	if result.ShowHeat {
		lines = append(lines, "Heat: "+fmtFloat(b.HeatScore))
	}
	if b.LastUpdated != "" {
		lines = append(lines, "Last updated: "+b.LastUpdated)
	}
	if cfg.Detail {
		if result.Description != "" {
			lines = append(lines, "", result.Description, "")
		}
		if result.Link != "" {
			lines = append(lines, "Link: "+result.Link)
		}
		if result.IsFromAA && result.AALink != "" {
			lines = append(lines, "Source: "+result.AALink)
		}
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if len(result.Entries) == 0 {
		_, err := fmt.Fprintln(w, "No scores recorded for this benchmark.")
		return err
	}

	unit := b.Unit
	scoreHeader := "Score"
	if unit != "" {
		scoreHeader = fmt.Sprintf("Score (%s)", unit)
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Model", "Publisher", scoreHeader, ""})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for _, e := range result.Entries {
		data = append(data, []string{
			strconv.Itoa(e.Rank),
			contract.TruncateText(e.ModelName, nameWidth),
			e.Publisher,
			fmtFloat(e.Score),
			bar(e.Percent, leaderboardBarWidth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d models scored. Completed in %v. Cache backend: %s\n", len(result.Entries), duration, cfg.CacheBackend)
	return err
}
