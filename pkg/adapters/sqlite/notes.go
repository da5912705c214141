package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/inkpad/pkg/core"
)

const upsertNoteSQL = `INSERT INTO notes (id, name, content, tags) VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET name = excluded.name, content = excluded.content, tags = excluded.tags`

// PutNote creates or replaces a note.
func (s *Store) PutNote(ctx context.Context, n core.Note) error {
	if n.ID == "" {
		return core.NewStorageError("put", core.TableNotes, fmt.Errorf("note has no ID"))
	}
	tags, err := encodeTags(n.Tags)
	if err != nil {
		return core.NewStorageError("put", core.TableNotes, err)
	}
	if _, err := s.execContext(ctx, upsertNoteSQL, n.ID, n.Name, n.Content, tags); err != nil {
		return core.NewStorageError("put", core.TableNotes, err)
	}
	return nil
}

// BulkPutNotes upserts all notes inside a single transaction.
func (s *Store) BulkPutNotes(ctx context.Context, notes []core.Note) error {
	if len(notes) == 0 {
		return nil
	}
	tx, err := s.beginTx(ctx, "bulk-put-notes")
	if err != nil {
		return core.NewStorageError("bulk-put", core.TableNotes, err)
	}
	defer s.rollbackTx(tx, "bulk-put-notes")

	stmt, err := tx.PrepareContext(ctx, upsertNoteSQL)
	if err != nil {
		return core.NewStorageError("bulk-put", core.TableNotes, err)
	}
	defer stmt.Close()

	for _, n := range notes {
		if n.ID == "" {
			return core.NewStorageError("bulk-put", core.TableNotes, fmt.Errorf("note has no ID"))
		}
		tags, err := encodeTags(n.Tags)
		if err != nil {
			return core.NewStorageError("bulk-put", core.TableNotes, err)
		}
		if _, err := stmt.ExecContext(ctx, n.ID, n.Name, n.Content, tags); err != nil {
			return core.NewStorageError("bulk-put", core.TableNotes, fmt.Errorf("note %s: %w", n.ID, err))
		}
	}
	if err := tx.Commit(); err != nil {
		return core.NewStorageError("bulk-put", core.TableNotes, err)
	}
	return nil
}

// GetNote retrieves a note by id.
func (s *Store) GetNote(ctx context.Context, id string) (core.Note, bool, error) {
	var n core.Note
	var tags string
	err := s.queryRowContext(ctx,
		"SELECT id, name, content, tags FROM notes WHERE id = ?", id).
		Scan(&n.ID, &n.Name, &n.Content, &tags)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Note{}, false, nil
	}
	if err != nil {
		return core.Note{}, false, core.NewStorageError("get", core.TableNotes, err)
	}
	if n.Tags, err = decodeTags(tags); err != nil {
		return core.Note{}, false, core.NewStorageError("get", core.TableNotes, err)
	}
	return n, true, nil
}

// ListNotes returns every note, oldest first.
func (s *Store) ListNotes(ctx context.Context) ([]core.Note, error) {
	rows, err := s.queryContext(ctx,
		"SELECT id, name, content, tags FROM notes ORDER BY length(id), id")
	if err != nil {
		return nil, core.NewStorageError("list", core.TableNotes, err)
	}
	defer rows.Close()

	var notes []core.Note
	for rows.Next() {
		var n core.Note
		var tags string
		if err := rows.Scan(&n.ID, &n.Name, &n.Content, &tags); err != nil {
			return nil, core.NewStorageError("list", core.TableNotes, err)
		}
		if n.Tags, err = decodeTags(tags); err != nil {
			return nil, core.NewStorageError("list", core.TableNotes, fmt.Errorf("note %s: %w", n.ID, err))
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, core.NewStorageError("list", core.TableNotes, err)
	}
	return notes, nil
}

// DeleteNote removes a note. Deleting a missing note is not an error.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	if _, err := s.execContext(ctx, "DELETE FROM notes WHERE id = ?", id); err != nil {
		return core.NewStorageError("delete", core.TableNotes, err)
	}
	return nil
}

// ClearNotes removes every note.
func (s *Store) ClearNotes(ctx context.Context) error {
	if _, err := s.execContext(ctx, "DELETE FROM notes"); err != nil {
		return core.NewStorageError("clear", core.TableNotes, err)
	}
	return nil
}

// GetCurrent returns the id stored in the current-note row.
func (s *Store) GetCurrent(ctx context.Context) (string, bool, error) {
	var id string
	err := s.queryRowContext(ctx,
		"SELECT note_id FROM current_note WHERE key = ?", core.CurrentKey).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, core.NewStorageError("get", core.TableCurrent, err)
	}
	return id, true, nil
}

// PutCurrent points the current-note row at noteID.
func (s *Store) PutCurrent(ctx context.Context, noteID string) error {
	_, err := s.execContext(ctx,
		`INSERT INTO current_note (key, note_id) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET note_id = excluded.note_id`, core.CurrentKey, noteID)
	if err != nil {
		return core.NewStorageError("put", core.TableCurrent, err)
	}
	return nil
}

// ClearCurrent removes the current-note row.
func (s *Store) ClearCurrent(ctx context.Context) error {
	if _, err := s.execContext(ctx, "DELETE FROM current_note WHERE key = ?", core.CurrentKey); err != nil {
		return core.NewStorageError("clear", core.TableCurrent, err)
	}
	return nil
}

func encodeTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

func decodeTags(raw string) ([]string, error) {
	if raw == "" || raw == "[]" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return tags, nil
}
