package core

import "context"

// Table names of the persistent store.
const (
	TableNotes     = "notes"
	TableCurrent   = "current_note"
	TableTemplates = "templates"
	TableSettings  = "settings"
)

// NoteStore persists notes.
// Get methods report a missing row with found == false and a nil error.
type NoteStore interface {
	// PutNote creates or replaces a note.
	PutNote(ctx context.Context, n Note) error

	// BulkPutNotes upserts every note in one unit of work.
	BulkPutNotes(ctx context.Context, notes []Note) error

	GetNote(ctx context.Context, id string) (Note, bool, error)

	// ListNotes returns all notes ordered by id.
	ListNotes(ctx context.Context) ([]Note, error)

	DeleteNote(ctx context.Context, id string) error
	ClearNotes(ctx context.Context) error
}

// CurrentStore persists the current-note pointer.
type CurrentStore interface {
	GetCurrent(ctx context.Context) (string, bool, error)
	PutCurrent(ctx context.Context, noteID string) error
	ClearCurrent(ctx context.Context) error
}

// TemplateStore persists templates.
type TemplateStore interface {
	PutTemplate(ctx context.Context, t Template) error
	GetTemplate(ctx context.Context, id string) (Template, bool, error)
	ListTemplates(ctx context.Context) ([]Template, error)
	DeleteTemplate(ctx context.Context, id string) error
}

// SettingsStore persists the settings singleton.
type SettingsStore interface {
	GetSettings(ctx context.Context) (Settings, bool, error)
	PutSettings(ctx context.Context, s Settings) error
}

// Store defines the contract for the durable mirror of the session state.
// Adhering to this interface keeps the session independent of the
// underlying storage mechanism.
type Store interface {
	NoteStore
	CurrentStore
	TemplateStore
	SettingsStore

	// Initialize ensures the underlying storage is ready (schema migration).
	Initialize(ctx context.Context) error

	Close() error
}
