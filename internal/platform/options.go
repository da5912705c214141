package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/inkpad/pkg/core"
	"github.com/aretw0/inkpad/pkg/session"
)

// options holds the internal configuration for an inkpad session.
type options struct {
	store     core.Store
	logger    *slog.Logger
	adapter   string
	notifier  core.Notifier
	clipboard session.Clipboard
	clock     func() time.Time
	config    map[string]interface{}
}

// Option defines a functional option for configuring inkpad.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: "sqlite",
		config:  make(map[string]interface{}),
	}
}

// WithLogger sets the logger for the session and its store.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStore injects a custom store. The adapter and path are then ignored.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithAdapter selects the storage adapter by name. Defaults to "sqlite".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithNotifier sets where user-facing messages go.
func WithNotifier(n core.Notifier) Option {
	return func(o *options) {
		o.notifier = n
	}
}

// WithClipboard sets the clipboard used by Copy.
func WithClipboard(cb session.Clipboard) Option {
	return func(o *options) {
		o.clipboard = cb
	}
}

// WithClock sets the time source for note ids and dates.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

// WithRecreateDelay sets how long the collection may stay empty after the
// last note is deleted. Zero recreates the default note immediately.
func WithRecreateDelay(d time.Duration) Option {
	return func(o *options) {
		o.config["recreate_delay"] = d
	}
}

// WithBusyTimeout sets how long SQLite waits on a locked database.
func WithBusyTimeout(d time.Duration) Option {
	return func(o *options) {
		o.config["busy_timeout"] = d
	}
}

// WithForceTemp forces the database into a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.config["temp_dir"] = force
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or `go test`.
// By default (true) the database is moved under the temp directory.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.config["dev_safety"] = enabled
	}
}
