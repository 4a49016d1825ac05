// Package iocache is for caching record snapshots and keeping run history.
package iocache

import (
	"sync"

	"github.com/huangsam/benchboard/internal/contract"
)

// StoreManager holds the active cache and history stores.
type StoreManager struct {
	mu      sync.RWMutex
	cache   contract.CacheStore
	history contract.HistoryStore
}

var _ contract.CacheManager = &StoreManager{} // Compile-time check

// GetCacheStore returns the record snapshot cache, or nil.
func (sm *StoreManager) GetCacheStore() contract.CacheStore {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.cache
}

// GetHistoryStore returns the run history store, or nil.
func (sm *StoreManager) GetHistoryStore() contract.HistoryStore {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.history
}

func (sm *StoreManager) set(cache contract.CacheStore, history contract.HistoryStore) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.cache = cache
	sm.history = history
}
