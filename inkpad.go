package inkpad

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/inkpad/internal/platform"
	"github.com/aretw0/inkpad/pkg/core"
	"github.com/aretw0/inkpad/pkg/notes"
	"github.com/aretw0/inkpad/pkg/session"
)

// --- Types ---

// Note is a public alias for the note model.
type Note = core.Note

// Template is a public alias for the template model.
type Template = core.Template

// Settings is a public alias for the settings singleton.
type Settings = core.Settings

// Seed carries the optional initial values of a new note.
type Seed = notes.Seed

// Session is an open editing session that owns its store.
type Session = platform.Session

// Clipboard receives copied note content.
type Clipboard = session.Clipboard

// --- Configuration ---

// Option defines a functional option for configuring inkpad.
type Option = platform.Option

// WithLogger sets the logger for the session and its store.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStore injects a custom storage adapter.
func WithStore(store core.Store) Option {
	return platform.WithStore(store)
}

// WithAdapter selects the storage adapter by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithNotifier sets where user-facing messages go.
func WithNotifier(n core.Notifier) Option {
	return platform.WithNotifier(n)
}

// WithClipboard sets the clipboard used by Copy.
func WithClipboard(cb Clipboard) Option {
	return platform.WithClipboard(cb)
}

// WithClock sets the time source for note ids and dates.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithRecreateDelay sets how long the collection may stay empty after the
// last note is deleted.
func WithRecreateDelay(d time.Duration) Option {
	return platform.WithRecreateDelay(d)
}

// WithBusyTimeout sets how long SQLite waits on a locked database.
func WithBusyTimeout(d time.Duration) Option {
	return platform.WithBusyTimeout(d)
}

// WithForceTemp forces the database into a temporary directory.
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the sandbox used under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// --- Factory ---

// Open loads a session from the database at path.
func Open(ctx context.Context, path string, opts ...Option) (*Session, error) {
	return platform.New(ctx, path, opts...)
}

// DefaultDBPath returns the database used when none is configured.
func DefaultDBPath(startDir string) (string, error) {
	return platform.DefaultDBPath(startDir)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}
