package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/internal/recordstore"
	"github.com/huangsam/benchboard/schema"
	"github.com/klauspost/compress/zstd"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// maxCacheAge is how long a cached snapshot stays valid
const maxCacheAge = 24 * time.Hour

var (
	codecOnce sync.Once
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	codecErr  error
)

// codecs returns the shared zstd encoder and decoder.
func codecs() (*zstd.Encoder, *zstd.Decoder, error) {
	codecOnce.Do(func() {
		encoder, codecErr = zstd.NewWriter(nil)
		if codecErr != nil {
			return
		}
		decoder, codecErr = zstd.NewReader(nil)
	})
	return encoder, decoder, codecErr
}

// loadSnapshot reads the records under cfg.DataPath, going through the
// record cache when one is configured.
func loadSnapshot(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.Snapshot, error) {
	var cache contract.CacheStore
	if mgr != nil {
		cache = mgr.GetCacheStore()
	}
	if cache == nil {
		// Fallback to direct loading
		return loadRecords(ctx, cfg)
	}

	fingerprint, err := recordstore.Fingerprint(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("cannot fingerprint record source: %w", err)
	}
	key := generateCacheKey(cfg, fingerprint)

	// Check for cache hit
	if snap := checkCacheHit(cache, key); snap != nil {
		return snap, nil
	}

	// Cache miss: load and store
	return computeAndStore(ctx, cfg, cache, key)
}

// loadRecords reads the record store, reporting skipped documents as warnings.
func loadRecords(ctx context.Context, cfg *contract.Config) (*schema.Snapshot, error) {
	return recordstore.Load(ctx, cfg.DataPath, recordstore.Options{
		Strict:          cfg.Strict,
		NormalizeScores: cfg.NormalizeScores,
		Warn: func(path string, err error) {
			contract.LogWarn("Skipped record "+path, err)
		},
	})
}

// checkCacheHit attempts to retrieve and validate a cached snapshot
func checkCacheHit(cache contract.CacheStore, key string) *schema.Snapshot {
	data, version, ts, err := cache.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version != currentCacheVersion || time.Since(time.Unix(ts, 0)) > maxCacheAge {
		return nil // Cache miss (stale or version mismatch)
	}

	_, dec, err := codecs()
	if err != nil {
		return nil
	}
	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil
	}
	var snap schema.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil
	}
	return &snap // Cache hit
}

// computeAndStore loads the snapshot and stores it in cache
func computeAndStore(ctx context.Context, cfg *contract.Config, cache contract.CacheStore, key string) (*schema.Snapshot, error) {
	snap, err := loadRecords(ctx, cfg)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return snap, nil
	}
	enc, _, err := codecs()
	if err != nil {
		return snap, nil
	}
	if err := cache.Set(key, enc.EncodeAll(data, nil), currentCacheVersion, time.Now().Unix()); err != nil {
		contract.LogWarn("Failed to store record cache", err)
	}
	return snap, nil
}

// generateCacheKey creates a unique key based on the record source and load options
func generateCacheKey(cfg *contract.Config, fingerprint string) string {
	key := fmt.Sprintf("%s:%s:%t:%t",
		cfg.DataPath,
		fingerprint,
		cfg.NormalizeScores,
		cfg.Strict,
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
