// Package sqlite implements core.Store on a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aretw0/inkpad/pkg/core"
)

// Store implements core.Store using SQLite.
type Store struct {
	Path   string
	db     *sql.DB
	config Config
	logger *slog.Logger

	mu      sync.RWMutex
	version int
}

// Config holds the configuration for the SQLite store.
type Config struct {
	Path        string
	Logger      *slog.Logger
	BusyTimeout time.Duration
	// SchemaVersion caps the migrations applied by Initialize.
	// Zero means the latest version.
	SchemaVersion int
}

var _ core.Store = (*Store)(nil)

// New opens the database file, creating its directory when needed.
// The schema is not touched until Initialize.
func New(config Config) (*Store, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("store path cannot be empty")
	}
	if config.BusyTimeout <= 0 {
		config.BusyTimeout = 5 * time.Second
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if config.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(config.Path), 0755); err != nil {
			return nil, core.NewStorageError("open", "", fmt.Errorf("failed to create data directory: %w", err))
		}
	}

	db, err := sql.Open("sqlite", dsn(config))
	if err != nil {
		return nil, core.NewStorageError("open", "", err)
	}
	// A single connection serializes the background writer and readers,
	// and keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	return &Store{
		Path:   config.Path,
		db:     db,
		config: config,
		logger: logger,
	}, nil
}

func dsn(config Config) string {
	params := []string{
		fmt.Sprintf("_pragma=busy_timeout(%d)", config.BusyTimeout.Milliseconds()),
		"_pragma=foreign_keys(1)",
	}
	if config.Path != ":memory:" {
		params = append(params, "_pragma=journal_mode(WAL)")
	}
	return config.Path + "?" + strings.Join(params, "&")
}

// Initialize creates or upgrades the schema.
func (s *Store) Initialize(ctx context.Context) error {
	target := s.config.SchemaVersion
	if target <= 0 || target > latestVersion {
		target = latestVersion
	}
	if err := s.migrate(ctx, target); err != nil {
		return core.NewStorageError("migrate", "", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SchemaVersion returns the version recorded by the last migration.
func (s *Store) SchemaVersion() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	s.logger.Debug("sql exec", "query", query)
	start := time.Now()
	res, err := s.db.ExecContext(ctx, query, args...)
	s.logger.Debug("sql exec done", "duration_ms", time.Since(start).Milliseconds(), "err", err)
	return res, err
}

func (s *Store) queryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	s.logger.Debug("sql query", "query", query)
	return s.db.QueryContext(ctx, query, args...)
}

func (s *Store) queryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	s.logger.Debug("sql query row", "query", query)
	return s.db.QueryRowContext(ctx, query, args...)
}

func (s *Store) beginTx(ctx context.Context, name string) (*sql.Tx, error) {
	s.logger.Debug("sql tx begin", "op", name)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("sql tx begin failed", "op", name, "err", err)
		return nil, err
	}
	return tx, nil
}

func (s *Store) rollbackTx(tx *sql.Tx, name string) {
	err := tx.Rollback()
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		s.logger.Warn("sql tx rollback failed", "op", name, "err", err)
	}
}
