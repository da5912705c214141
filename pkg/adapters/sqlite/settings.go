package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/inkpad/pkg/core"
)

// GetSettings reads the settings row. A schema that predates the settings
// table reads as "not found".
func (s *Store) GetSettings(ctx context.Context) (core.Settings, bool, error) {
	exists, err := s.tableExists(ctx, core.TableSettings)
	if err != nil {
		return core.Settings{}, false, core.NewStorageError("get", core.TableSettings, err)
	}
	if !exists {
		return core.Settings{}, false, nil
	}

	var raw string
	err = s.queryRowContext(ctx,
		"SELECT editor FROM settings WHERE key = ?", core.SettingsKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Settings{}, false, nil
	}
	if err != nil {
		return core.Settings{}, false, core.NewStorageError("get", core.TableSettings, err)
	}

	var settings core.Settings
	if err := json.Unmarshal([]byte(raw), &settings.Editor); err != nil {
		return core.Settings{}, false, core.NewStorageError("get", core.TableSettings, fmt.Errorf("decode settings: %w", err))
	}
	return settings, true, nil
}

// PutSettings writes the settings row, adding the table first if the
// schema does not have it yet.
func (s *Store) PutSettings(ctx context.Context, settings core.Settings) error {
	if err := s.EnsureTable(ctx, core.TableSettings); err != nil {
		return err
	}
	raw, err := json.Marshal(settings.Editor)
	if err != nil {
		return core.NewStorageError("put", core.TableSettings, fmt.Errorf("encode settings: %w", err))
	}
	_, err = s.execContext(ctx,
		`INSERT INTO settings (key, editor) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET editor = excluded.editor`, core.SettingsKey, string(raw))
	if err != nil {
		return core.NewStorageError("put", core.TableSettings, err)
	}
	return nil
}
