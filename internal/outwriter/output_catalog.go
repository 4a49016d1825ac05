package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintPublisherList outputs the publisher list, dispatching based on the output format configured.
func PrintPublisherList(results []schema.PublisherSummary, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"name", "color", "logo", "model_count", "benchmark_count"}, func(cw *csv.Writer) error {
				for _, p := range results {
					if err := cw.Write([]string{p.Name, p.Color, p.Logo, strconv.Itoa(p.ModelCount), strconv.Itoa(p.BenchmarkCount)}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for the publisher list")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePublisherListTable(w, results, cfg)
		}, "Wrote table")
	}
}

func writePublisherListTable(w io.Writer, results []schema.PublisherSummary, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Publisher", "Color", "Models", "Benchmarks"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, p := range results {
		data = append(data, []string{p.Name, swatch(p.Color, cfg.UseColors), strconv.Itoa(p.ModelCount), strconv.Itoa(p.BenchmarkCount)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d publishers\n", len(results))
	return err
}

// PrintTags outputs the tag list, dispatching based on the output format configured.
func PrintTags(results []schema.TagSummary, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"tag", "benchmark_count", "on_radar"}, func(cw *csv.Writer) error {
				for _, t := range results {
					if err := cw.Write([]string{t.Tag, strconv.Itoa(t.BenchmarkCount), strconv.FormatBool(t.OnRadar)}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for the tag list")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTagsTable(w, results)
		}, "Wrote table")
	}
}

func writeTagsTable(w io.Writer, results []schema.TagSummary) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Tag", "Benchmarks", "Radar"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, t := range results {
		radar := ""
		if t.OnRadar {
			radar = "yes"
		}
		data = append(data, []string{t.Tag, strconv.Itoa(t.BenchmarkCount), radar})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
