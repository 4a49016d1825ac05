package core

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/schema"
)

// headerOut is where diagnostic headers go. Tests swap it out.
var headerOut io.Writer = os.Stderr

// logHeader prints a concise, 2-line header for a command.
func logHeader(cfg *contract.Config, command, detail string) {
	source := filepath.Base(cfg.DataPath)
	if source == "" || source == "." {
		source = "current"
	}

	// Line 1: the record source and cache backend
	_, _ = fmt.Fprintf(headerOut, "🔎 Source: %s (Cache: %s)\n", source, cfg.CacheBackend)

	// Line 2: the command and its criteria
	if detail == "" {
		_, _ = fmt.Fprintf(headerOut, "📊 View: %s\n", command)
		return
	}
	_, _ = fmt.Fprintf(headerOut, "📊 View: %s → %s\n", command, detail)
}

// describeCriteria summarizes the search, filter and sort of an index view.
func describeCriteria(cfg *contract.Config, filter string, sortKey schema.SortKey) string {
	var parts []string
	if cfg.SearchText != "" {
		parts = append(parts, fmt.Sprintf("search %q", cfg.SearchText))
	}
	if filter != "" {
		parts = append(parts, "filter "+filter)
	}
	parts = append(parts, "sort "+string(sortKey), fmt.Sprintf("page %d", cfg.Page))
	return strings.Join(parts, ", ")
}
