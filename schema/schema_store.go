package schema

import "time"

// RunRecord represents a row from the benchboard_runs table.
type RunRecord struct {
	RunID        int64
	RunKey       string
	Command      string
	StartTime    time.Time
	EndTime      *time.Time
	RunDuration  *int64
	TotalItems   *int32
	ConfigParams *string
}

// RunItem is one ranked item emitted by a run.
type RunItem struct {
	Rank   int
	ItemID string
	Kind   ItemKind
	Score  *float64
}

// RunItemRecord represents a row from the benchboard_run_items table.
type RunItemRecord struct {
	RunID    int64
	Rank     int32
	ItemID   string
	ItemKind string
	Score    *float64
	ItemTime time.Time
}
