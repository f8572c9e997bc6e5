package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/burndown/internal/contract"
	"github.com/huangsam/burndown/internal/iocache"
	"github.com/huangsam/burndown/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadCacheConfig reads only the cache settings needed by cache commands.
func loadCacheConfig() error {
	if err := readConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	if _, ok := schema.ValidCacheBackends[backend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("cache-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	return nil
}

// cacheSetup loads minimal configuration and opens the source cache.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadCacheConfig(); err != nil {
		return err
	}
	if err := iocache.InitStores(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by burndown commands. This avoids input validation
// for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the remote source cache",
	Long: `Manage the cache of records fetched from Jira and GitHub.

Remote sources are slow to page through. Burndown stores the decoded records
per source and query, and reuses them until --cache-ttl expires.
File sources are always read directly.

Supported backends: SQLite, MySQL, PostgreSQL, or None (default, no caching)

Subcommands:
  status  - Show cache statistics and connection info
  clear   - Remove all cached data
  migrate - Run database schema migrations

Examples:
  # Check cache status
  burndown cache status --cache-backend sqlite

  # Clear cache after bulk ticket edits
  burndown cache clear --cache-backend sqlite`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached source records",
	Long: `Delete all cached source records from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  # Clear SQLite cache
  burndown cache clear --cache-backend sqlite

  # Clear MySQL cache (set connection string via env variable)
  BURNDOWN_CACHE_BACKEND=mysql BURNDOWN_CACHE_DB_CONNECT="..." burndown cache clear`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadCacheConfig()
	},
	Run: func(_ *cobra.Command, _ []string) {
		dbFilePath := cfg.CacheDBConnect
		if dbFilePath == "" {
			dbFilePath = contract.GetCacheDBFilePath()
		}
		if err := iocache.ClearCache(cfg.CacheBackend, dbFilePath, cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the source cache.

Displays:
- Backend type and connection status
- Total number of cached entries
- Last and oldest cache entry timestamps
- Cache table size

Examples:
  # Check cache status
  burndown cache status --cache-backend sqlite`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetSourceStore()
		if store == nil {
			contract.LogFatal("Failed to get cache status", fmt.Errorf("cache is not initialized"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(os.Stdout, status)
	},
}

// cacheMigrateCmd runs database migrations for the source cache.
var cacheMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Apply the embedded schema migrations of the source cache.

Use --target-version to pick a version:
  -1 migrates to the latest version (default)
   0 rolls back every migration
   N migrates up or down to version N

Examples:
  # Migrate a PostgreSQL cache to the latest schema
  BURNDOWN_CACHE_BACKEND=postgresql BURNDOWN_CACHE_DB_CONNECT="host=... dbname=..." burndown cache migrate

  # Roll back the timestamp index
  burndown cache migrate --cache-backend sqlite --target-version 1`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadCacheConfig()
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.MigrateCache(cfg.CacheBackend, cfg.CacheDBConnect, viper.GetInt("target-version")); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
