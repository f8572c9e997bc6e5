package agg

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/burndown/internal/contract"
	"github.com/huangsam/burndown/schema"
)

// currentCacheVersion defines the version of the cached record payload.
const currentCacheVersion = 1

// CachedLoadRecords loads records from the source, going through the source cache
// for remote sources. Local file sources are always read directly.
func CachedLoadRecords(ctx context.Context, src contract.RecordSource, mgr contract.CacheManager, ttl time.Duration) ([]schema.TicketRecord, error) {
	if !src.Kind().IsRemote() || mgr == nil {
		return src.Load(ctx)
	}

	store := mgr.GetSourceStore()
	if store == nil {
		// Fallback to direct fetch
		return src.Load(ctx)
	}

	key := generateCacheKey(src)

	// Check for cache hit
	if records, ok := checkCacheHit(store, key, ttl); ok {
		return records, nil
	}

	// Cache miss: fetch and store
	return fetchAndStore(ctx, src, store, key)
}

// checkCacheHit attempts to retrieve and validate a cached record list.
func checkCacheHit(store contract.CacheStore, key string, ttl time.Duration) ([]schema.TicketRecord, bool) {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil, false // Cache miss
	}

	// Validate version and staleness
	if version != currentCacheVersion {
		return nil, false
	}
	if time.Since(time.Unix(ts, 0)) > ttl {
		return nil, false
	}

	var records []schema.TicketRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false
	}
	return records, true
}

// fetchAndStore loads the records from the source and stores them in cache.
func fetchAndStore(ctx context.Context, src contract.RecordSource, store contract.CacheStore, key string) ([]schema.TicketRecord, error) {
	records, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(records); err == nil {
		if err := store.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
			contract.LogWarn("Cannot store records in cache", err)
		}
	}

	return records, nil
}

// generateCacheKey creates a unique key from the source kind and its description.
func generateCacheKey(src contract.RecordSource) string {
	key := fmt.Sprintf("%s:%s", src.Kind(), src.Describe())
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
