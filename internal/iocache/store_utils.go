package iocache

import (
	"fmt"
	"regexp"

	"github.com/huangsam/burndown/schema"
)

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// validateTableName ensures the table name only contains safe characters.
func validateTableName(name string) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("invalid table name: %s (must match pattern ^[a-zA-Z_][a-zA-Z0-9_]*$)", name)
	}
	return nil
}

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("\"%s\"", name)
	}
}

// driverFor returns the database/sql driver name registered for the backend.
func driverFor(backend schema.DatabaseBackend) (string, bool) {
	switch backend {
	case schema.SQLiteBackend:
		return "sqlite", true
	case schema.MySQLBackend:
		return "mysql", true
	case schema.PostgreSQLBackend:
		return "pgx", true
	default:
		return "", false
	}
}
