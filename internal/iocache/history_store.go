package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/schema"
)

// Table names for run history.
const (
	runsTable     = "benchboard_runs"
	runItemsTable = "benchboard_run_items"
)

// SQLHistoryStore implements contract.HistoryStore on a SQL database.
type SQLHistoryStore struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	connStr string
}

var _ contract.HistoryStore = &SQLHistoryStore{} // Compile-time check

// NewHistoryStore creates the run history store for the backend. The none
// backend yields a store that records nothing.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	switch backend {
	case schema.NoneBackend:
		return &SQLHistoryStore{backend: backend}, nil
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend:
	default:
		return nil, fmt.Errorf("unsupported history backend: %s", backend)
	}

	db, err := openDatabase(backend, connStr, contract.GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}
	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLHistoryStore{db: db, backend: backend, connStr: connStr}, nil
}

// createHistoryTables creates the run history tables.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{runsTable, getCreateRunsQuery(backend)},
		{runItemsTable, getCreateRunItemsQuery(backend)},
	}
	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for benchboard_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quoted := quoteTableName(runsTable, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				run_key VARCHAR(36) NOT NULL,
				command VARCHAR(64) NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms BIGINT,
				total_items INT,
				config_params TEXT
			);
		`, quoted)
	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				run_key TEXT NOT NULL,
				command TEXT NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms BIGINT,
				total_items INT,
				config_params TEXT
			);
		`, quoted)
	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_key TEXT NOT NULL,
				command TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_items INTEGER,
				config_params TEXT
			);
		`, quoted)
	}
}

// getCreateRunItemsQuery returns the CREATE TABLE query for benchboard_run_items.
func getCreateRunItemsQuery(backend schema.DatabaseBackend) string {
	quoted := quoteTableName(runItemsTable, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				item_rank INT NOT NULL,
				item_id VARCHAR(255) NOT NULL,
				item_kind VARCHAR(32) NOT NULL,
				score DOUBLE,
				item_time DATETIME(6) NOT NULL,
				PRIMARY KEY (run_id, item_kind, item_id)
			);
		`, quoted)
	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				item_rank INT NOT NULL,
				item_id TEXT NOT NULL,
				item_kind TEXT NOT NULL,
				score DOUBLE PRECISION,
				item_time TIMESTAMPTZ NOT NULL,
				PRIMARY KEY (run_id, item_kind, item_id)
			);
		`, quoted)
	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				item_rank INTEGER NOT NULL,
				item_id TEXT NOT NULL,
				item_kind TEXT NOT NULL,
				score REAL,
				item_time TEXT NOT NULL,
				PRIMARY KEY (run_id, item_kind, item_id)
			);
		`, quoted)
	}
}

// BeginRun creates a new run and returns its ID. Each run also gets a UUID
// key so exports from different databases can be merged.
func (hs *SQLHistoryStore) BeginRun(startTime time.Time, command string, configParams map[string]any) (int64, error) {
	if hs.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}
	runKey := uuid.New().String()
	quoted := quoteTableName(runsTable, hs.backend)

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (run_key, command, start_time, config_params) VALUES ($1, $2, $3, $4) RETURNING run_id`, quoted)
		err = hs.db.QueryRow(query, runKey, command, startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (run_key, command, start_time, config_params) VALUES (?, ?, ?, ?)`, quoted)
		var result sql.Result
		result, err = hs.db.Exec(query, runKey, command, formatTime(startTime, hs.backend), string(configJSON))
		if err != nil {
			return 0, fmt.Errorf("failed to insert run: %w", err)
		}
		runID, err = result.LastInsertId()
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return runID, nil
}

// EndRun stores completion data for a run.
func (hs *SQLHistoryStore) EndRun(runID int64, endTime time.Time, totalItems int) error {
	if hs.db == nil {
		return nil
	}

	quoted := quoteTableName(runsTable, hs.backend)
	row := hs.db.QueryRow(fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quoted, placeholder(hs.backend, 1)), runID)
	startTime, err := scanTime(row, hs.backend)
	if err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()
	query := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_items = %s WHERE run_id = %s`,
		quoted,
		placeholder(hs.backend, 1), placeholder(hs.backend, 2), placeholder(hs.backend, 3), placeholder(hs.backend, 4))
	if _, err := hs.db.Exec(query, formatTime(endTime, hs.backend), durationMs, totalItems, runID); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// RecordRunItems stores the ranked items of a run in one transaction.
func (hs *SQLHistoryStore) RecordRunItems(runID int64, items []schema.RunItem) error {
	if hs.db == nil || len(items) == 0 {
		return nil
	}

	tx, err := hs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := fmt.Sprintf(`INSERT INTO %s (run_id, item_rank, item_id, item_kind, score, item_time) VALUES (%s, %s, %s, %s, %s, %s)`,
		quoteTableName(runItemsTable, hs.backend),
		placeholder(hs.backend, 1), placeholder(hs.backend, 2), placeholder(hs.backend, 3),
		placeholder(hs.backend, 4), placeholder(hs.backend, 5), placeholder(hs.backend, 6))
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare run item insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := formatTime(time.Now(), hs.backend)
	for _, item := range items {
		if _, err := stmt.Exec(runID, item.Rank, item.ItemID, string(item.Kind), item.Score, now); err != nil {
			return fmt.Errorf("failed to record run item %s: %w", item.ItemID, err)
		}
	}
	return tx.Commit()
}

// Close closes the underlying DB connection.
func (hs *SQLHistoryStore) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *SQLHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}
	if hs.db == nil {
		return status, nil
	}

	quotedRuns := quoteTableName(runsTable, hs.backend)
	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedRuns)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		row := hs.db.QueryRow(fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", quotedRuns))
		var lastStart any
		if hs.backend == schema.SQLiteBackend {
			var s string
			lastStart = &s
		} else {
			lastStart = &status.LastRunTime
		}
		if err := row.Scan(&status.LastRunID, lastStart); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		if s, ok := lastStart.(*string); ok {
			t, err := time.Parse(time.RFC3339Nano, *s)
			if err != nil {
				return status, fmt.Errorf("failed to parse last run time: %w", err)
			}
			status.LastRunTime = t
		}

		oldest, err := scanTime(hs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quotedRuns)), hs.backend)
		if err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldest

		if err := hs.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(total_items), 0) FROM %s", quotedRuns)).Scan(&status.TotalItems); err != nil {
			return status, fmt.Errorf("failed to get total items: %w", err)
		}
	}

	for _, table := range []string{runsTable, runItemsTable} {
		var count int64
		if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend))).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	return status, nil
}

// GetAllRuns retrieves every run ordered by ID.
func (hs *SQLHistoryStore) GetAllRuns() ([]schema.RunRecord, error) {
	if hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT run_id, run_key, command, start_time, end_time, run_duration_ms, total_items, config_params FROM %s ORDER BY run_id",
		quoteTableName(runsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord
		switch hs.backend {
		case schema.SQLiteBackend:
			var startStr string
			var endStr *string
			if err := rows.Scan(&record.RunID, &record.RunKey, &record.Command, &startStr, &endStr, &record.RunDuration, &record.TotalItems, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
			start, err := time.Parse(time.RFC3339Nano, startStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			record.StartTime = start
			if endStr != nil {
				end, err := time.Parse(time.RFC3339Nano, *endStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &end
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.RunKey, &record.Command, &record.StartTime, &record.EndTime, &record.RunDuration, &record.TotalItems, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetAllRunItems retrieves every run item ordered by run and rank.
func (hs *SQLHistoryStore) GetAllRunItems() ([]schema.RunItemRecord, error) {
	if hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT run_id, item_rank, item_id, item_kind, score, item_time FROM %s ORDER BY run_id, item_kind, item_rank",
		quoteTableName(runItemsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query run items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunItemRecord
	for rows.Next() {
		var record schema.RunItemRecord
		switch hs.backend {
		case schema.SQLiteBackend:
			var timeStr string
			if err := rows.Scan(&record.RunID, &record.Rank, &record.ItemID, &record.ItemKind, &record.Score, &timeStr); err != nil {
				return nil, fmt.Errorf("failed to scan run item: %w", err)
			}
			t, err := time.Parse(time.RFC3339Nano, timeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse item_time: %w", err)
			}
			record.ItemTime = t
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.Rank, &record.ItemID, &record.ItemKind, &record.Score, &record.ItemTime); err != nil {
				return nil, fmt.Errorf("failed to scan run item: %w", err)
			}
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run items: %w", err)
	}
	return results, nil
}

// scanTime reads a single time column, which SQLite stores as RFC3339 text.
func scanTime(row *sql.Row, backend schema.DatabaseBackend) (time.Time, error) {
	if backend == schema.SQLiteBackend {
		var s string
		if err := row.Scan(&s); err != nil {
			return time.Time{}, err
		}
		return time.Parse(time.RFC3339Nano, s)
	}
	var t time.Time
	err := row.Scan(&t)
	return t, err
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	if backend == schema.SQLiteBackend {
		return t.Format(time.RFC3339Nano)
	}
	return t
}
