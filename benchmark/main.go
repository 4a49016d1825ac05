// Package main times the benchboard CLI against one or more content
// directories. Every view runs without a cache first, then against a fresh
// SQLite cache where the first run is cold and the rest are averaged as warm.
// The timings land in a CSV file under the temp directory.
//
// The benchboard binary must be on PATH.
//
//	go run benchmark/main.go [content-dir...]
//
// The content directory defaults to examples/content.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// timing holds what one view measured on one source. A zero duration means
// no run finished.
type timing struct {
	source  string
	view    string
	uncache time.Duration
	cold    time.Duration
	warm    time.Duration
}

type harness struct {
	sources  []string
	views    []string
	timeout  time.Duration
	bareRuns int
	hotRuns  int
}

func main() {
	h := harness{
		sources:  os.Args[1:],
		views:    []string{"models", "benchmarks", "tags", "publishers"},
		timeout:  time.Minute,
		bareRuns: 3,
		hotRuns:  4,
	}
	if len(h.sources) == 0 {
		h.sources = []string{"examples/content"}
	}

	if err := h.preflight(); err != nil {
		fmt.Fprintf(os.Stderr, "cannot start: %v\n", err)
		os.Exit(1)
	}

	var timings []timing
	for _, source := range h.sources {
		for _, view := range h.views {
			timings = append(timings, h.measure(source, view))
		}
	}

	path, err := writeCSV(timings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot save timings: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Timings written to %s\n", path)
}

func (h harness) preflight() error {
	if _, err := exec.LookPath("benchboard"); err != nil {
		return fmt.Errorf("benchboard is not on PATH")
	}
	for _, source := range h.sources {
		if _, err := os.Stat(source); err != nil {
			return fmt.Errorf("content source %s: %w", source, err)
		}
	}
	return nil
}

func (h harness) measure(source, view string) timing {
	t := timing{source: source, view: view}

	dir, err := os.MkdirTemp("", "benchboard-bench-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s/%s skipped: %v\n", source, view, err)
		return t
	}
	defer func() { _ = os.RemoveAll(dir) }()

	bare := h.repeat(h.bareRuns, source, view, "--cache-backend", "none")
	t.uncache = mean(bare)

	hot := h.repeat(h.hotRuns, source, view, "--cache-backend", "sqlite", "--cache-db-connect", filepath.Join(dir, "cache.db"))
	if len(hot) > 0 {
		t.cold = hot[0]
		t.warm = mean(hot[1:])
	}

	fmt.Printf("%-24s %-12s none=%s cold=%s warm=%s\n", source, view, seconds(t.uncache), seconds(t.cold), seconds(t.warm))
	return t
}

// repeat runs the view n times and keeps the durations of runs that succeeded
// with output.
func (h harness) repeat(n int, source, view string, extra ...string) []time.Duration {
	args := append([]string{view, "--data", source, "--output", "json"}, extra...)

	var out []time.Duration
	for range n {
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		start := time.Now()
		body, err := exec.CommandContext(ctx, "benchboard", args...).Output()
		took := time.Since(start)
		cancel()
		if err == nil && len(body) > 0 {
			out = append(out, took)
		}
	}
	return out
}

func mean(ds []time.Duration) time.Duration {
	if len(ds) == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range ds {
		sum += d
	}
	return sum / time.Duration(len(ds))
}

func seconds(d time.Duration) string {
	if d == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

func writeCSV(timings []timing) (string, error) {
	path := filepath.Join(os.TempDir(), "benchboard_timings_"+time.Now().Format("20060102_150405")+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	w := csv.NewWriter(f)
	rows := [][]string{{"source", "view", "no_cache", "cold", "warm"}}
	for _, t := range timings {
		rows = append(rows, []string{t.source, t.view, seconds(t.uncache), seconds(t.cold), seconds(t.warm)})
	}
	if err := w.WriteAll(rows); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, f.Close()
}
