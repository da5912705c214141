// Package session coordinates an editing session: the note collection,
// the current selection, user settings, text expansion and file exchange.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/inkpad/pkg/core"
	"github.com/aretw0/inkpad/pkg/expand"
	"github.com/aretw0/inkpad/pkg/notes"
	"github.com/aretw0/inkpad/pkg/preview"
	"github.com/aretw0/inkpad/pkg/toc"
)

// Controller owns the state of one editing session. The settings singleton
// and the selection live here and are shared with the repository.
type Controller struct {
	store     core.Store
	repo      *notes.Repository
	selection *notes.Selection
	engine    *expand.Engine
	renderer  *preview.Renderer
	clipboard Clipboard
	notifier  core.Notifier
	logger    *slog.Logger
	now       func() time.Time

	recreateDelay time.Duration

	mu       sync.RWMutex
	settings core.Settings
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for the controller and its collaborators.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithNotifier sets where user-facing messages go.
func WithNotifier(n core.Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithClock sets the time source for ids, dates and templates.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithEngine replaces the expansion engine.
func WithEngine(e *expand.Engine) Option {
	return func(c *Controller) { c.engine = e }
}

// WithRenderer replaces the Markdown renderer.
func WithRenderer(r *preview.Renderer) Option {
	return func(c *Controller) { c.renderer = r }
}

// WithClipboard sets the clipboard used by Copy.
func WithClipboard(cb Clipboard) Option {
	return func(c *Controller) { c.clipboard = cb }
}

// WithRecreateDelay sets how long the collection may stay empty after the
// last note is deleted.
func WithRecreateDelay(d time.Duration) Option {
	return func(c *Controller) { c.recreateDelay = d }
}

// New wires a controller over store. Call Open before use.
func New(store core.Store, opts ...Option) *Controller {
	c := &Controller{
		store:     store,
		selection: &notes.Selection{},
		now:       time.Now,
		settings:  core.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.notifier == nil {
		c.notifier = core.NotifierFunc(func(core.Notification) {})
	}
	if c.engine == nil {
		c.engine = expand.New(expand.WithClock(c.now), expand.WithLogger(c.logger))
	}
	if c.renderer == nil {
		c.renderer = preview.New(preview.WithLogger(c.logger))
	}

	c.repo = notes.New(store,
		notes.WithSelection(c.selection),
		notes.WithClock(c.now),
		notes.WithDefaultName(c.defaultNoteName),
		notes.WithRecreateDelay(c.recreateDelay),
		notes.WithLogger(c.logger),
		notes.WithNotifier(c.notifier),
	)
	return c
}

// Open prepares the store and loads settings and notes. Storage failures
// are reported and returned, but the session stays usable in memory.
func (c *Controller) Open(ctx context.Context) error {
	var errs []error

	if err := c.store.Initialize(ctx); err != nil {
		err = core.NewStorageError("initialize", "", err)
		c.report(core.LevelError, "Could not open local storage", err)
		errs = append(errs, err)
	}

	settings, found, err := c.store.GetSettings(ctx)
	switch {
	case err != nil:
		err = core.NewStorageError("get", core.TableSettings, err)
		c.report(core.LevelWarning, "Could not load settings, using defaults", err)
		errs = append(errs, err)
	case found:
		c.mu.Lock()
		c.settings = settings.Normalize()
		c.mu.Unlock()
	}

	if err := c.repo.Load(ctx); err != nil {
		errs = append(errs, err)
	}

	c.logger.Debug("session opened", "notes", c.repo.Len(), "current", c.selection.Get())
	return errors.Join(errs...)
}

// Flush waits for queued writes to reach the store.
func (c *Controller) Flush(ctx context.Context) error {
	return c.repo.Flush(ctx)
}

// Close drains pending writes. The store is left open for its owner.
func (c *Controller) Close(ctx context.Context) error {
	return c.repo.Close(ctx)
}

// Repository exposes the note collection for read access.
func (c *Controller) Repository() *notes.Repository {
	return c.repo
}

// Engine returns the expansion engine.
func (c *Controller) Engine() *expand.Engine {
	return c.engine
}

// HandleChange runs an edit of the current note through the expansion
// engine and stores the result as the note's content.
func (c *Controller) HandleChange(ctx context.Context, text string, caret int) (expand.Result, error) {
	if err := ctx.Err(); err != nil {
		return expand.Result{}, err
	}
	id := c.selection.Get()
	if _, ok := c.repo.Get(id); !ok {
		return expand.Result{}, core.ErrNoteNotFound
	}

	res := c.engine.Expand(text, caret)
	if err := c.repo.UpdateContent(id, res.Text); err != nil {
		return expand.Result{}, err
	}
	return res, nil
}

// Select makes an existing note current.
func (c *Controller) Select(id string) error {
	if _, ok := c.repo.Get(id); !ok {
		return fmt.Errorf("select %q: %w", id, core.ErrNoteNotFound)
	}
	c.repo.SetCurrent(id)
	return nil
}

// Current returns the current note.
func (c *Controller) Current() (core.Note, bool) {
	return c.repo.Current()
}

// Note returns a note by id.
func (c *Controller) Note(id string) (core.Note, error) {
	n, ok := c.repo.Get(id)
	if !ok {
		return core.Note{}, fmt.Errorf("note %q: %w", id, core.ErrNoteNotFound)
	}
	return n, nil
}

// Notes lists the collection.
func (c *Controller) Notes(order notes.Order) []core.Note {
	return c.repo.List(order)
}

// NewNote creates a note, optionally seeded, and makes it current.
func (c *Controller) NewNote(seed *notes.Seed) core.Note {
	return c.repo.AddNote(seed)
}

// Rename sets a note's display name.
func (c *Controller) Rename(id, name string) error {
	return c.repo.RenameNote(id, name)
}

// SetContent replaces a note's content without running expansion.
func (c *Controller) SetContent(id, content string) error {
	return c.repo.UpdateContent(id, content)
}

// Delete removes a note.
func (c *Controller) Delete(id string) error {
	return c.repo.RemoveNote(id)
}

// DeleteAll removes every note. A fresh default note follows.
func (c *Controller) DeleteAll() {
	c.repo.DeleteAll()
	c.report(core.LevelInfo, "All notes deleted", nil)
}

// TOC builds a table of contents from every heading of a note.
func (c *Controller) TOC(id string) (string, error) {
	n, err := c.Note(id)
	if err != nil {
		return "", err
	}
	return toc.Generate(toc.Triggers[0] + "\n" + n.Content), nil
}

// Preview renders a note as HTML.
func (c *Controller) Preview(id string) (string, error) {
	n, err := c.Note(id)
	if err != nil {
		return "", err
	}
	return c.renderer.Render(n.Content)
}

func (c *Controller) defaultNoteName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings.Editor.DefaultNoteName
}

func (c *Controller) report(level core.Level, msg string, err error) {
	switch level {
	case core.LevelError:
		c.logger.Error(msg, "error", err)
	case core.LevelWarning:
		c.logger.Warn(msg, "error", err)
	default:
		c.logger.Info(msg)
	}
	c.notifier.Notify(core.Notification{Level: level, Message: msg, Err: err})
}
