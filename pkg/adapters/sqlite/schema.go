package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aretw0/inkpad/pkg/core"
)

type migration struct {
	version int
	table   string
	sql     string
}

// migrations are applied in order; each creates one table.
var migrations = []migration{
	{
		version: 1,
		table:   core.TableNotes,
		sql: `CREATE TABLE IF NOT EXISTS notes (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	content TEXT NOT NULL,
	tags TEXT NOT NULL DEFAULT '[]'
)`,
	},
	{
		version: 1,
		table:   core.TableCurrent,
		sql: `CREATE TABLE IF NOT EXISTS current_note (
	key TEXT PRIMARY KEY,
	note_id TEXT NOT NULL
)`,
	},
	{
		version: 1,
		table:   core.TableTemplates,
		sql: `CREATE TABLE IF NOT EXISTS templates (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	content TEXT NOT NULL,
	created_at INTEGER NOT NULL
)`,
	},
	{
		version: 2,
		table:   core.TableSettings,
		sql: `CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	editor TEXT NOT NULL
)`,
	},
}

const latestVersion = 2

const schemaVersionSQL = `CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
)`

func (s *Store) migrate(ctx context.Context, target int) error {
	if _, err := s.execContext(ctx, schemaVersionSQL); err != nil {
		return err
	}
	current, err := s.readVersion(ctx)
	if err != nil {
		return err
	}

	tx, err := s.beginTx(ctx, "migrate")
	if err != nil {
		return err
	}
	defer s.rollbackTx(tx, "migrate")

	for _, m := range migrations {
		if m.version > target {
			continue
		}
		// Tables of already-applied versions are re-asserted; the statements are idempotent.
		if _, err := tx.ExecContext(ctx, m.sql); err != nil {
			return fmt.Errorf("create table %s: %w", m.table, err)
		}
	}
	if target > current {
		if err := writeVersion(ctx, tx, target); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.mu.Lock()
	if target > current {
		s.version = target
	} else {
		s.version = current
	}
	s.mu.Unlock()

	if target > current {
		s.logger.Info("schema migrated", "from", current, "to", target, "path", s.Path)
	}
	return nil
}

// EnsureTable adds a table that is missing from an older schema by bumping
// the schema version to the one that introduced it. Existing tables and rows
// are left untouched.
func (s *Store) EnsureTable(ctx context.Context, table string) error {
	exists, err := s.tableExists(ctx, table)
	if err != nil {
		return core.NewStorageError("ensure", table, err)
	}
	if exists {
		return nil
	}

	var target *migration
	for i := range migrations {
		if migrations[i].table == table {
			target = &migrations[i]
			break
		}
	}
	if target == nil {
		return core.NewStorageError("ensure", table, fmt.Errorf("unknown table"))
	}

	version := target.version
	if current := s.SchemaVersion(); current > version {
		version = current
	}
	s.logger.Info("adding missing table", "table", table, "schema_version", version)
	if err := s.migrate(ctx, version); err != nil {
		return core.NewStorageError("ensure", table, err)
	}
	return nil
}

func (s *Store) tableExists(ctx context.Context, table string) (bool, error) {
	var name string
	err := s.queryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) readVersion(ctx context.Context) (int, error) {
	var v int
	err := s.queryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return v, nil
}

func writeVersion(ctx context.Context, tx *sql.Tx, v int) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM schema_version"); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, "INSERT INTO schema_version(version) VALUES(?)", v)
	return err
}
