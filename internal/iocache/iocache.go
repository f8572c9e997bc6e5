// Package iocache is for caching I/O calls to remote record sources.
package iocache

import (
	"sync"

	"github.com/huangsam/burndown/internal/contract"
)

// CacheStoreManager manages the source CacheStore instance.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	source       contract.CacheStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetSourceStore returns the source CacheStore.
func (mgr *CacheStoreManager) GetSourceStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.source
}
