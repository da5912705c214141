// Package notes owns the in-memory note collection and mirrors every change
// to a persistent store in the background.
package notes

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/inkpad/pkg/core"
)

// DefaultWriteTimeout bounds a single background store operation.
const DefaultWriteTimeout = 5 * time.Second

// Order selects how List arranges notes.
type Order int

const (
	// OrderInsertion keeps the order notes entered the collection.
	OrderInsertion Order = iota
	// OrderNewest sorts by creation time, newest first.
	OrderNewest
	// OrderOldest sorts by creation time, oldest first.
	OrderOldest
)

// ParseOrder maps "newest", "oldest" and "" (insertion) to an Order.
func ParseOrder(s string) (Order, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "insertion", "default":
		return OrderInsertion, true
	case "newest", "recent":
		return OrderNewest, true
	case "oldest":
		return OrderOldest, true
	}
	return OrderInsertion, false
}

// Seed carries the optional initial values of a new note.
type Seed struct {
	Name    string
	Content string
	Tags    []string
}

// Repository is the authoritative note collection of a session.
// Mutations return immediately; persistence is queued in order on a
// background writer and failures are reported through the notifier.
type Repository struct {
	mu    sync.Mutex
	notes map[string]core.Note
	order []string
	// lastID guarantees strictly increasing ids within a session.
	lastID int64

	selection *Selection
	writer    *writer
	store     Persister

	now           func() time.Time
	defaultName   func() string
	recreateDelay time.Duration
	recreateTimer *time.Timer
	recreateGen   uint64

	logger       *slog.Logger
	notifier     core.Notifier
	writeTimeout time.Duration
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) { r.logger = logger }
}

// WithNotifier sets where persistence failures are reported.
func WithNotifier(n core.Notifier) Option {
	return func(r *Repository) { r.notifier = n }
}

// WithSelection shares the current-note pointer with the caller.
func WithSelection(s *Selection) Option {
	return func(r *Repository) { r.selection = s }
}

// WithClock sets the time source used to mint note ids.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithDefaultName sets the provider of the name given to unnamed notes.
func WithDefaultName(fn func() string) Option {
	return func(r *Repository) { r.defaultName = fn }
}

// WithRecreateDelay sets how long the collection may stay empty before a
// fresh default note is created. Zero recreates synchronously.
func WithRecreateDelay(d time.Duration) Option {
	return func(r *Repository) { r.recreateDelay = d }
}

// WithWriteTimeout bounds each background store operation.
func WithWriteTimeout(d time.Duration) Option {
	return func(r *Repository) { r.writeTimeout = d }
}

// New creates an empty repository writing through to store.
// Call Load to populate it.
func New(store Persister, opts ...Option) *Repository {
	r := &Repository{
		notes:        make(map[string]core.Note),
		store:        store,
		now:          time.Now,
		writeTimeout: DefaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.notifier == nil {
		r.notifier = core.NotifierFunc(func(core.Notification) {})
	}
	if r.selection == nil {
		r.selection = &Selection{}
	}
	if r.defaultName == nil {
		r.defaultName = func() string { return core.DefaultNoteName }
	}
	r.writer = newWriter(store, r.logger, r.notifier, r.writeTimeout)
	return r
}

// Selection returns the current-note pointer.
func (r *Repository) Selection() *Selection {
	return r.selection
}

// Load replaces the collection with the stored notes and restores the
// current pointer. An empty store yields a single default note.
// A read failure is reported and the session continues with what could
// be loaded, so the collection is never left empty.
func (r *Repository) Load(ctx context.Context) error {
	stored, err := r.store.ListNotes(ctx)
	if err != nil {
		err = core.NewStorageError("list", core.TableNotes, err)
		r.report("Could not load notes from local storage", err)
		stored = nil
	}

	currentID, found, curErr := "", false, error(nil)
	if err == nil {
		currentID, found, curErr = r.store.GetCurrent(ctx)
		if curErr != nil {
			curErr = core.NewStorageError("get", core.TableCurrent, curErr)
			r.report("Could not restore the current note", curErr)
			found = false
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.cancelRecreateLocked()
	r.notes = make(map[string]core.Note, len(stored))
	r.order = r.order[:0]
	r.lastID = 0

	for _, n := range stored {
		if _, dup := r.notes[n.ID]; dup {
			continue
		}
		r.notes[n.ID] = n.Clone()
		r.order = append(r.order, n.ID)
		if ms, perr := strconv.ParseInt(n.ID, 10, 64); perr == nil && ms > r.lastID {
			r.lastID = ms
		}
	}

	switch {
	case len(r.order) == 0:
		r.addLocked(nil)
	case !found || !r.hasLocked(currentID):
		r.setCurrentLocked(r.order[0])
	default:
		r.selection.Set(currentID)
	}

	r.logger.Debug("notes loaded", "count", len(r.order), "current", r.selection.Get())
	if err != nil {
		return err
	}
	return curErr
}

// AddNote creates a note from seed, makes it current and returns it.
// A nil seed yields an empty note with the default name.
// A pending empty-collection recreation is cancelled.
func (r *Repository) AddNote(seed *Seed) core.Note {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cancelRecreateLocked()
	return r.addLocked(seed)
}

// AddNotes creates several notes in one batch and persists them together.
// The last one becomes current.
func (r *Repository) AddNotes(seeds []Seed) []core.Note {
	if len(seeds) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.cancelRecreateLocked()
	created := make([]core.Note, 0, len(seeds))
	for i := range seeds {
		n := r.newNoteLocked(&seeds[i])
		r.notes[n.ID] = n
		r.order = append(r.order, n.ID)
		created = append(created, n.Clone())
	}

	batch := make([]core.Note, len(created))
	for i, n := range created {
		batch[i] = n.Clone()
	}
	r.writer.bulkPut(batch)
	r.setCurrentLocked(created[len(created)-1].ID)
	return created
}

// RemoveNote deletes a note. When it was current, the next note in order
// becomes current, else the previous one. Removing the last note schedules
// the creation of a fresh default note.
func (r *Repository) RemoveNote(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return core.ErrNoteNotFound
	}

	delete(r.notes, id)
	r.order = append(r.order[:idx], r.order[idx+1:]...)
	r.writer.deleteNote(id)

	if r.selection.Get() == id {
		next := ""
		switch {
		case idx < len(r.order):
			next = r.order[idx]
		case idx > 0:
			next = r.order[idx-1]
		}
		r.setCurrentLocked(next)
	}

	if len(r.order) == 0 {
		r.scheduleRecreateLocked()
	}
	return nil
}

// DeleteAll empties the collection, clears the current pointer and
// schedules a fresh default note.
func (r *Repository) DeleteAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cancelRecreateLocked()
	r.notes = make(map[string]core.Note)
	r.order = r.order[:0]
	r.writer.clearNotes()
	r.setCurrentLocked("")
	r.scheduleRecreateLocked()
}

// RenameNote sets the display name of a note.
func (r *Repository) RenameNote(id, name string) error {
	return r.update(id, func(n *core.Note) error {
		n.Name = name
		return nil
	})
}

// UpdateContent replaces the content of a note.
func (r *Repository) UpdateContent(id, content string) error {
	return r.update(id, func(n *core.Note) error {
		n.Content = content
		return nil
	})
}

// UpdateTags replaces the tag list of a note. Blank and repeated tags are
// dropped.
func (r *Repository) UpdateTags(id string, tags []string) error {
	return r.update(id, func(n *core.Note) error {
		n.Tags = normalizeTags(tags)
		return nil
	})
}

// AddTag appends a tag to a note.
func (r *Repository) AddTag(id, tag string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return core.ErrEmptyTag
	}
	return r.update(id, func(n *core.Note) error {
		if n.HasTag(tag) {
			return core.ErrDuplicateTag
		}
		n.Tags = append(n.Tags, tag)
		return nil
	})
}

// RemoveTag drops a tag from a note. Removing an absent tag is a no-op.
func (r *Repository) RemoveTag(id, tag string) error {
	tag = strings.TrimSpace(tag)
	return r.update(id, func(n *core.Note) error {
		kept := n.Tags[:0]
		for _, t := range n.Tags {
			if t != tag {
				kept = append(kept, t)
			}
		}
		n.Tags = kept
		return nil
	})
}

func (r *Repository) update(id string, fn func(n *core.Note) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notes[id]
	if !ok {
		return core.ErrNoteNotFound
	}
	n = n.Clone()
	if err := fn(&n); err != nil {
		return err
	}
	r.notes[id] = n
	r.writer.putNote(n)
	return nil
}

// SetCurrent moves the current pointer. The id is not checked against the
// collection; Current treats an unknown id as no selection.
func (r *Repository) SetCurrent(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.setCurrentLocked(id)
}

// Current returns the note the pointer designates.
func (r *Repository) Current() (core.Note, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notes[r.selection.Get()]
	if !ok {
		return core.Note{}, false
	}
	return n.Clone(), true
}

// Get returns a note by id.
func (r *Repository) Get(id string) (core.Note, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notes[id]
	if !ok {
		return core.Note{}, false
	}
	return n.Clone(), true
}

// Len returns the number of notes.
func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.order)
}

// List returns a snapshot of the collection.
func (r *Repository) List(order Order) []core.Note {
	r.mu.Lock()
	out := make([]core.Note, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.notes[id].Clone())
	}
	r.mu.Unlock()

	switch order {
	case OrderNewest:
		sort.SliceStable(out, func(i, j int) bool { return idLess(out[j].ID, out[i].ID) })
	case OrderOldest:
		sort.SliceStable(out, func(i, j int) bool { return idLess(out[i].ID, out[j].ID) })
	}
	return out
}

// RecreatePending reports whether an empty-collection recreation is waiting
// on its timer.
func (r *Repository) RecreatePending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.recreateTimer != nil
}

// Flush blocks until every queued write has reached the store.
func (r *Repository) Flush(ctx context.Context) error {
	return r.writer.flush(ctx)
}

// Close settles a pending recreation, drains the write queue and stops the
// background writer. It does not close the store.
func (r *Repository) Close(ctx context.Context) error {
	r.mu.Lock()
	if r.recreateTimer != nil {
		r.cancelRecreateLocked()
		if len(r.order) == 0 {
			r.addLocked(nil)
		}
	}
	r.mu.Unlock()

	return r.writer.close(ctx)
}

func (r *Repository) addLocked(seed *Seed) core.Note {
	n := r.newNoteLocked(seed)
	r.notes[n.ID] = n
	r.order = append(r.order, n.ID)
	r.writer.putNote(n)
	r.setCurrentLocked(n.ID)
	return n.Clone()
}

func (r *Repository) newNoteLocked(seed *Seed) core.Note {
	n := core.Note{ID: r.nextIDLocked()}
	if seed != nil {
		n.Name = seed.Name
		n.Content = seed.Content
		n.Tags = normalizeTags(seed.Tags)
	}
	if n.Name == "" {
		n.Name = r.defaultName()
	}
	return n
}

// nextIDLocked mints a millisecond id, bumping it past any id already used.
func (r *Repository) nextIDLocked() string {
	ms := r.now().UnixMilli()
	if ms <= r.lastID {
		ms = r.lastID + 1
	}
	for {
		id := strconv.FormatInt(ms, 10)
		if _, taken := r.notes[id]; !taken {
			r.lastID = ms
			return id
		}
		ms++
	}
}

func (r *Repository) setCurrentLocked(id string) {
	r.selection.Set(id)
	r.writer.putCurrent(id)
}

func (r *Repository) scheduleRecreateLocked() {
	if r.recreateDelay <= 0 {
		r.addLocked(nil)
		return
	}

	r.recreateGen++
	gen := r.recreateGen
	r.recreateTimer = time.AfterFunc(r.recreateDelay, func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		if gen != r.recreateGen {
			return
		}
		r.recreateTimer = nil
		if len(r.order) > 0 {
			return
		}
		n := r.addLocked(nil)
		r.logger.Debug("recreated default note", "id", n.ID)
	})
}

func (r *Repository) cancelRecreateLocked() {
	r.recreateGen++
	if r.recreateTimer != nil {
		r.recreateTimer.Stop()
		r.recreateTimer = nil
	}
}

func (r *Repository) indexLocked(id string) int {
	for i, v := range r.order {
		if v == id {
			return i
		}
	}
	return -1
}

func (r *Repository) hasLocked(id string) bool {
	_, ok := r.notes[id]
	return ok
}

func (r *Repository) report(msg string, err error) {
	r.logger.Error(msg, "error", err)
	r.notifier.Notify(core.Notification{Level: core.LevelError, Message: msg, Err: err})
}

// idLess compares numeric ids without parsing them.
func idLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
