package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/inkpad/pkg/core"
)

// PutTemplate creates or replaces a template.
func (s *Store) PutTemplate(ctx context.Context, t core.Template) error {
	if t.ID == "" {
		return core.NewStorageError("put", core.TableTemplates, fmt.Errorf("template has no ID"))
	}
	_, err := s.execContext(ctx,
		`INSERT INTO templates (id, name, content, created_at) VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET name = excluded.name, content = excluded.content, created_at = excluded.created_at`,
		t.ID, t.Name, t.Content, t.CreatedAt.UnixMilli())
	if err != nil {
		return core.NewStorageError("put", core.TableTemplates, err)
	}
	return nil
}

// GetTemplate retrieves a template by id.
func (s *Store) GetTemplate(ctx context.Context, id string) (core.Template, bool, error) {
	var t core.Template
	var created int64
	err := s.queryRowContext(ctx,
		"SELECT id, name, content, created_at FROM templates WHERE id = ?", id).
		Scan(&t.ID, &t.Name, &t.Content, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Template{}, false, nil
	}
	if err != nil {
		return core.Template{}, false, core.NewStorageError("get", core.TableTemplates, err)
	}
	t.CreatedAt = time.UnixMilli(created)
	return t, true, nil
}

// ListTemplates returns templates, oldest first.
func (s *Store) ListTemplates(ctx context.Context) ([]core.Template, error) {
	rows, err := s.queryContext(ctx,
		"SELECT id, name, content, created_at FROM templates ORDER BY created_at, id")
	if err != nil {
		return nil, core.NewStorageError("list", core.TableTemplates, err)
	}
	defer rows.Close()

	var templates []core.Template
	for rows.Next() {
		var t core.Template
		var created int64
		if err := rows.Scan(&t.ID, &t.Name, &t.Content, &created); err != nil {
			return nil, core.NewStorageError("list", core.TableTemplates, err)
		}
		t.CreatedAt = time.UnixMilli(created)
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, core.NewStorageError("list", core.TableTemplates, err)
	}
	return templates, nil
}

// DeleteTemplate removes a template.
func (s *Store) DeleteTemplate(ctx context.Context, id string) error {
	if _, err := s.execContext(ctx, "DELETE FROM templates WHERE id = ?", id); err != nil {
		return core.NewStorageError("delete", core.TableTemplates, err)
	}
	return nil
}
