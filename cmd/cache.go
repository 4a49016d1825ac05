package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/internal/iocache"
	"github.com/huangsam/benchboard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// openSnapshotCache resolves only the cache settings and opens the snapshot
// store. History is left closed.
func openSnapshotCache(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	conn := viper.GetString("cache-db-connect")
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, redis, none", backend)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, conn); err != nil {
		return err
	}
	if err := iocache.InitStores(backend, conn, "", ""); err != nil {
		return fmt.Errorf("cannot open snapshot cache: %w", err)
	}

	cfg.CacheBackend, cfg.CacheDBConnect = backend, conn
	return nil
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or reset the record snapshot cache",
	Long: `Work with the cache of decoded record snapshots.

A snapshot holds the parsed records of one content directory and is keyed
by a fingerprint of its files. A warm run skips decoding and validation.
Statistics, rankings and comparisons are always recomputed.

Backends: sqlite (default), mysql, postgresql, redis, none.

  benchboard cache status
  BENCHBOARD_CACHE_BACKEND=redis BENCHBOARD_CACHE_DB_CONNECT="redis://localhost:6379/0" benchboard cache clear`,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached snapshot",
	Long: `Drop every cached snapshot from the configured backend.

sqlite removes the database file. mysql and postgresql drop the table.
redis deletes the snapshot keys.`,
	PreRunE: openSnapshotCache,
	Run: func(_ *cobra.Command, _ []string) {
		// The sqlite file cannot be removed while a handle is open
		iocache.CloseStores()
		if err := iocache.ClearCache(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Cannot clear snapshot cache", err)
		}
		fmt.Println("Snapshot cache cleared.")
	},
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the backend, entry count and age of the snapshot cache",
	PreRunE: openSnapshotCache,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetCacheStore()
		if store == nil {
			contract.LogFatal("Cannot read snapshot cache", errors.New("cache backend is none"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Cannot read snapshot cache", err)
		}
		iocache.PrintCacheStatus(os.Stdout, status)
	},
}
