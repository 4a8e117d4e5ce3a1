// Package sqlite provides an embedded SQLite client on modernc.org/sqlite (no cgo)
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"adperf/internal/platform/store/sqltrace"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Config configures the database file and tracing
type Config struct {
	// Path is the database file; parent directories are created
	Path string
	// BusyTimeoutMs bounds how long a writer waits on a locked database
	BusyTimeoutMs int
	SlowMs        int
}

// DB is a sqlite handle with an optional tracer
type DB struct {
	SQL    *sql.DB
	Tracer sqltrace.QueryTracer
	SlowMs int
}

// DSN builds the modernc connection string for cfg
func DSN(cfg Config) string {
	busy := cfg.BusyTimeoutMs
	if busy <= 0 {
		busy = 5000
	}
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_txlock=immediate",
		filepath.ToSlash(filepath.Clean(cfg.Path)), busy)
}

// Open opens (creating if needed) the database at cfg.Path and pings it
func Open(ctx context.Context, cfg Config, tracer sqltrace.QueryTracer) (*DB, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("sqlite: path is required")
	}
	if dir := filepath.Dir(filepath.Clean(cfg.Path)); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// one writer at a time, readers share the same connection
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	return &DB{SQL: db, Tracer: tracer, SlowMs: cfg.SlowMs}, nil
}

// Close closes the database
func (d *DB) Close() error {
	if d == nil || d.SQL == nil {
		return nil
	}
	return d.SQL.Close()
}
