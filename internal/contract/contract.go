// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/burndown/schema"
)

// RecordSource loads ticket records from a file or a remote tracker.
// This allows the burndown pipeline to be tested without real files or network access.
type RecordSource interface {
	// Kind returns the concrete kind of the source (never AutoSource).
	Kind() schema.SourceKind

	// Describe returns a stable, human-readable identity of the source
	// (file path, endpoint plus query). It doubles as the cache key input.
	Describe() string

	// Load reads every record from the source.
	Load(ctx context.Context) ([]schema.TicketRecord, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetSourceStore() CacheStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}
