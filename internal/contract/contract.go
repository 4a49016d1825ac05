// Package contract provides interfaces and shared utilities for the internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/benchboard/schema"
)

// CacheManager defines the interface for managing cache and history stores.
// This allows the store layer to be mocked for testing.
type CacheManager interface {
	GetCacheStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for the record snapshot cache.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for the opt-in run history.
type HistoryStore interface {
	BeginRun(startTime time.Time, command string, configParams map[string]any) (int64, error)
	EndRun(runID int64, endTime time.Time, totalItems int) error
	RecordRunItems(runID int64, items []schema.RunItem) error
	GetStatus() (schema.HistoryStatus, error)
	GetAllRuns() ([]schema.RunRecord, error)
	GetAllRunItems() ([]schema.RunItemRecord, error)
	Close() error
}
