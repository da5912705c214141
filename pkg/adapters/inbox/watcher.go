// Package inbox imports files dropped into a directory.
package inbox

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/inkpad/pkg/core"
)

// DefaultPattern accepts every file; the importer decides what is supported.
const DefaultPattern = "*"

// DefaultSettle is how long a file must stay quiet before it is imported.
const DefaultSettle = 100 * time.Millisecond

// Importer turns a file into a note.
type Importer interface {
	ImportFile(path string) (core.Note, error)
}

// Config configures a Watcher.
type Config struct {
	// Dir is the watched directory. Subdirectories are not watched.
	Dir string
	// Pattern is a doublestar pattern matched against names relative to Dir.
	Pattern string
	// Settle debounces the create and write events of one file.
	Settle time.Duration
	Logger *slog.Logger
	// ErrorHandler receives watcher and import failures.
	ErrorHandler func(error)
}

// Watcher imports files created in a directory.
type Watcher struct {
	*worker.BaseWorker
	config    Config
	importer  Importer
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc

	// done holds the paths already imported; later writes are ignored.
	done     sync.Map
	imported atomic.Int64
	failed   atomic.Int64
}

// New creates a Watcher. Start begins watching.
func New(importer Importer, config Config) (*Watcher, error) {
	if config.Dir == "" {
		return nil, fmt.Errorf("inbox directory is required")
	}
	if config.Pattern == "" {
		config.Pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(config.Pattern) {
		return nil, fmt.Errorf("invalid inbox pattern %q", config.Pattern)
	}
	if config.Settle <= 0 {
		config.Settle = DefaultSettle
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Watcher{
		BaseWorker: worker.NewBaseWorker("inbox-watcher"),
		config:     config,
		importer:   importer,
	}, nil
}

// Start watches the directory until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("inbox watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(w.config.Dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", w.config.Dir, err)
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(w.config.Settle)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	w.config.Logger.Debug("inbox watching", "dir", w.config.Dir, "pattern", w.config.Pattern)
	return w.StartFunc(runCtx, w.run)
}

// Stop ends the watch loop.
func (w *Watcher) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}
	return w.BaseWorker.Stop(ctx)
}

// State reports the worker status with import counters.
func (w *Watcher) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
			"dir":               w.config.Dir,
			"imported":          fmt.Sprint(w.imported.Load()),
			"failed":            fmt.Sprint(w.failed.Load()),
		}
	})
}

// Imported returns how many files were imported.
func (w *Watcher) Imported() int64 {
	return w.imported.Load()
}

func (w *Watcher) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("inbox panic: %v", recovered)
			if w.config.Logger.Enabled(ctx, slog.LevelDebug) {
				w.config.Logger.Error("inbox panic", "error", err, "stack", string(debug.Stack()))
			} else {
				w.config.Logger.Error("inbox panic", "error", err)
			}
		}
	}()
	defer w.watcher.Close()

	err = w.loop(ctx)
	w.debouncer.stopAndWait(5 * time.Second)
	return err
}

func (w *Watcher) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.handle(event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.config.Logger.Error("fsnotify error", "error", wErr)
			w.reportError(wErr)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if !w.matches(event.Name) {
		return
	}

	path := event.Name
	w.debouncer.add(path, func() { w.importFile(path) })
}

func (w *Watcher) matches(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	rel, err := filepath.Rel(w.config.Dir, path)
	if err != nil {
		return false
	}
	ok, err := doublestar.Match(w.config.Pattern, filepath.ToSlash(rel))
	return err == nil && ok
}

func (w *Watcher) importFile(path string) {
	if _, seen := w.done.LoadOrStore(path, struct{}{}); seen {
		return
	}
	n, err := w.importer.ImportFile(path)
	if err != nil {
		w.failed.Add(1)
		w.config.Logger.Warn("inbox import failed", "path", path, "error", err)
		w.reportError(err)
		return
	}
	w.imported.Add(1)
	w.config.Logger.Info("inbox imported", "path", path, "id", n.ID)
}

func (w *Watcher) reportError(err error) {
	if w.config.ErrorHandler != nil {
		w.config.ErrorHandler(err)
	}
}
