package database

import (
	"context"
	"fmt"
	"strings"
)

// Config holds database configuration.
type Config struct {
	// URL is the connection string. Empty selects local SQLite mode.
	URL string

	// MaxConns is the maximum number of connections (PostgreSQL only).
	MaxConns int
}

// NewConnection creates a database connection based on configuration,
// detecting the driver from the URL.
func NewConnection(ctx context.Context, cfg Config) (Connection, error) {
	switch DetectDriver(cfg.URL) {
	case DriverPostgres:
		return NewPostgresConnection(ctx, cfg.URL, cfg.MaxConns)
	case DriverSQLite:
		return NewSQLiteConnection(ctx, sqlitePathFromURL(cfg.URL))
	default:
		return nil, fmt.Errorf("unsupported database URL: %s", cfg.URL)
	}
}

func sqlitePathFromURL(url string) string {
	path := strings.TrimPrefix(url, "sqlite://")
	return strings.TrimPrefix(path, "file:")
}
