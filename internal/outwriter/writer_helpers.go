package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/schema"
)

// errParquetNeedsFile is returned when parquet output has nowhere to go.
var errParquetNeedsFile = errors.New("parquet output requires --output-file")

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeParquetFile runs a parquet writer against the configured output file.
func writeParquetFile(outputFile string, write func(string) error) error {
	if outputFile == "" {
		return errParquetNeedsFile
	}
	if err := write(outputFile); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", outputFile)
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	numFmt := "%.*f"
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf(numFmt, precision, v)
	}
	return fmtFloat, intFmt
}

// tierLabel returns the tier label for a score, colored when enabled.
func tierLabel(score float64, useColors bool) string {
	label := schema.GetPlainLabel(score)
	if useColors {
		return contract.GetColorLabel(label)
	}
	return label
}

// swatch renders a hex publisher color as a colored block when enabled.
func swatch(hex string, useColors bool) string {
	if !useColors {
		return hex
	}
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return hex
	}
	return color.RGB(r, g, b).Sprint("■") + " " + hex
}

// parseHexColor reads #rgb or #rrggbb colors.
func parseHexColor(hex string) (int, int, int, bool) {
	h := strings.TrimPrefix(hex, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return 0, 0, 0, false
	}
	var r, g, b int
	if _, err := fmt.Sscanf(h, "%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0, false
	}
	return r, g, b, true
}

// bar renders a horizontal bar for a percentage of the given width.
func bar(percent float64, width int) string {
	if percent <= 0 || width <= 0 {
		return ""
	}
	n := int(percent/100*float64(width) + 0.5)
	n = min(max(n, 1), width)
	return strings.Repeat("█", n)
}

// pageFooter describes the page that was printed.
func pageFooter(p schema.Pagination, noun string) string {
	return fmt.Sprintf("Page %d of %d (%d %s total)", p.Page, max(p.TotalPages, 1), p.TotalItems, noun)
}
