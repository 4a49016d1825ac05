package iocache

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/schema"
)

//go:embed migrations
var migrationsFS embed.FS

// historyMigrator binds the embedded migrations of backend to db.
func historyMigrator(db *sql.DB, backend schema.DatabaseBackend) (*migrate.Migrate, error) {
	var (
		target database.Driver
		err    error
	)
	switch backend {
	case schema.SQLiteBackend:
		target, err = sqlite.WithInstance(db, &sqlite.Config{})
	case schema.MySQLBackend:
		target, err = mysql.WithInstance(db, &mysql.Config{})
	case schema.PostgreSQLBackend:
		target, err = postgres.WithInstance(db, &postgres.Config{})
	default:
		return nil, fmt.Errorf("history migrations need sqlite, mysql or postgresql, got %q", backend)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot attach %s migration driver: %w", backend, err)
	}

	scripts, err := fs.Sub(migrationsFS, "migrations/"+string(backend))
	if err != nil {
		return nil, fmt.Errorf("no embedded migrations for %s: %w", backend, err)
	}
	source, err := iofs.New(scripts, ".")
	if err != nil {
		return nil, fmt.Errorf("cannot read embedded migrations: %w", err)
	}
	return migrate.NewWithInstance("iofs", source, "benchboard", target)
}

// MigrateHistory moves the history schema to targetVersion. A negative
// target means the newest version and zero removes every table.
func MigrateHistory(backend schema.DatabaseBackend, connStr string, targetVersion int) error {
	if _, ok := schema.ValidHistoryBackends[backend]; !ok || backend == schema.NoneBackend {
		return fmt.Errorf("history migrations need sqlite, mysql or postgresql, got %q", backend)
	}

	db, err := openDatabase(backend, connStr, contract.GetHistoryDBFilePath())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	m, err := historyMigrator(db, backend)
	if err != nil {
		return err
	}

	from, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("cannot read schema version: %w", err)
	}
	if dirty {
		return fmt.Errorf("history schema is dirty at version %d; repair it before migrating", from)
	}

	var step func() error
	switch {
	case targetVersion < 0:
		step = m.Up
	case targetVersion == 0:
		step = m.Down
	default:
		step = func() error { return m.Migrate(uint(targetVersion)) }
	}

	err = step()
	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Printf("History schema already at version %d.\n", from)
		return nil
	}
	if err != nil {
		return fmt.Errorf("history migration from version %d failed: %w", from, err)
	}

	to, _, verr := m.Version()
	if errors.Is(verr, migrate.ErrNilVersion) {
		to = 0
	}
	fmt.Printf("History schema moved from version %d to %d.\n", from, to)
	return nil
}
