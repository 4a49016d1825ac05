package iocache

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/schema"
)

// cacheTable is the table holding cached record snapshots.
const cacheTable = "benchboard_record_cache"

// snapshotColumnTypes lists key, payload, version and stored_at types.
var snapshotColumnTypes = map[schema.DatabaseBackend][4]string{
	schema.MySQLBackend:      {"VARCHAR(255)", "LONGBLOB", "INT", "BIGINT"},
	schema.PostgreSQLBackend: {"TEXT", "BYTEA", "INTEGER", "BIGINT"},
	schema.SQLiteBackend:     {"TEXT", "BLOB", "INTEGER", "INTEGER"},
}

// SnapshotTable keeps compressed snapshots in one SQL table, one row per
// fingerprint key.
type SnapshotTable struct {
	db      *sql.DB
	table   string
	backend schema.DatabaseBackend
	conn    string
}

var _ contract.CacheStore = &SnapshotTable{}

// NewCacheStore opens the snapshot store for the backend. The none backend
// yields a store that never hits and drops every write.
func NewCacheStore(tableName string, backend schema.DatabaseBackend, connStr string) (contract.CacheStore, error) {
	if err := validateTableName(tableName); err != nil {
		return nil, err
	}

	switch backend {
	case schema.NoneBackend:
		return &SnapshotTable{table: tableName, backend: backend}, nil
	case schema.RedisBackend:
		store, err := NewRedisCacheStore(tableName, connStr)
		if err != nil {
			return nil, err
		}
		return store, nil
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend:
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s. Must be sqlite, mysql, postgresql, redis, or none", backend)
	}

	db, err := openDatabase(backend, connStr, contract.GetCacheDBFilePath())
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(snapshotTableDDL(tableName, backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cannot create snapshot table %s: %w", tableName, err)
	}
	return &SnapshotTable{db: db, table: tableName, backend: backend, conn: connStr}, nil
}

func snapshotTableDDL(tableName string, backend schema.DatabaseBackend) string {
	t := snapshotColumnTypes[backend]
	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (snapshot_key %s PRIMARY KEY, payload %s NOT NULL, format_version %s NOT NULL, stored_at %s NOT NULL)",
		quoteTableName(tableName, backend), t[0], t[1], t[2], t[3])
}

// Get returns the payload, format version and unix store time of key.
// A missing key surfaces as sql.ErrNoRows.
func (st *SnapshotTable) Get(key string) ([]byte, int, int64, error) {
	if st.db == nil {
		return nil, 0, 0, sql.ErrNoRows
	}

	var (
		payload  []byte
		format   int
		storedAt int64
	)
	query := fmt.Sprintf("SELECT payload, format_version, stored_at FROM %s WHERE snapshot_key = %s",
		quoteTableName(st.table, st.backend), placeholder(st.backend, 1))
	if err := st.db.QueryRow(query, key).Scan(&payload, &format, &storedAt); err != nil {
		return nil, 0, 0, err
	}
	return payload, format, storedAt, nil
}

// Set writes the snapshot under key, replacing any older row.
func (st *SnapshotTable) Set(key string, value []byte, version int, timestamp int64) error {
	if st.db == nil {
		return nil
	}
	_, err := st.db.Exec(st.replaceQuery(), key, value, version, timestamp)
	return err
}

func (st *SnapshotTable) replaceQuery() string {
	insert := fmt.Sprintf("INSERT INTO %s (snapshot_key, payload, format_version, stored_at) VALUES ",
		quoteTableName(st.table, st.backend))
	switch st.backend {
	case schema.MySQLBackend:
		return insert + "(?, ?, ?, ?) AS incoming ON DUPLICATE KEY UPDATE " +
			"payload = incoming.payload, format_version = incoming.format_version, stored_at = incoming.stored_at"
	case schema.PostgreSQLBackend:
		return insert + "($1, $2, $3, $4) ON CONFLICT (snapshot_key) DO UPDATE SET " +
			"payload = EXCLUDED.payload, format_version = EXCLUDED.format_version, stored_at = EXCLUDED.stored_at"
	default:
		return insert + "(?, ?, ?, ?) ON CONFLICT (snapshot_key) DO UPDATE SET " +
			"payload = excluded.payload, format_version = excluded.format_version, stored_at = excluded.stored_at"
	}
}

func (st *SnapshotTable) Close() error {
	if st.db == nil {
		return nil
	}
	return st.db.Close()
}

// GetStatus counts the stored snapshots and reports the newest and oldest
// store times.
func (st *SnapshotTable) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{Backend: string(st.backend), Connected: st.db != nil}
	if st.db == nil {
		return status, nil
	}

	quoted := quoteTableName(st.table, st.backend)
	var newest, oldest sql.NullInt64
	row := st.db.QueryRow(fmt.Sprintf("SELECT COUNT(*), MAX(stored_at), MIN(stored_at) FROM %s", quoted))
	if err := row.Scan(&status.TotalEntries, &newest, &oldest); err != nil {
		return status, fmt.Errorf("cannot summarize snapshot table: %w", err)
	}
	if status.TotalEntries == 0 {
		return status, nil
	}
	status.LastEntryTime = time.Unix(newest.Int64, 0)
	status.OldestEntryTime = time.Unix(oldest.Int64, 0)
	status.TableSizeBytes = tableSizeBytes(st.db, st.backend, st.conn, st.table, status.TotalEntries)
	return status, nil
}
