package notes

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/inkpad/pkg/core"
)

// Persister is the part of the store the repository writes through to.
type Persister interface {
	core.NoteStore
	core.CurrentStore
}

var errWriterClosed = errors.New("write-through queue is closed")

type writeOp struct {
	name string
	fn   func(ctx context.Context) error
	done chan struct{}
}

// writer applies store operations in submission order on one goroutine.
// Enqueueing never blocks the caller.
type writer struct {
	store    Persister
	logger   *slog.Logger
	notifier core.Notifier
	timeout  time.Duration

	mu     sync.Mutex
	queue  []writeOp
	closed bool
	wake   chan struct{}
	done   chan struct{}
}

func newWriter(store Persister, logger *slog.Logger, notifier core.Notifier, timeout time.Duration) *writer {
	w := &writer{
		store:    store,
		logger:   logger,
		notifier: notifier,
		timeout:  timeout,
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	lifecycle.Go(context.Background(), func(ctx context.Context) error {
		defer close(w.done)
		w.run(ctx)
		return nil
	})
	return w
}

func (w *writer) enqueue(op writeOp) bool {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		w.logger.Warn("write-through dropped, queue closed", "op", op.name)
		return false
	}
	w.queue = append(w.queue, op)
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
	return true
}

func (w *writer) submit(name string, fn func(ctx context.Context) error) {
	w.enqueue(writeOp{name: name, fn: fn})
}

func (w *writer) run(ctx context.Context) {
	for {
		w.mu.Lock()
		if len(w.queue) == 0 {
			closed := w.closed
			w.mu.Unlock()
			if closed {
				return
			}
			select {
			case <-w.wake:
				continue
			case <-ctx.Done():
				return
			}
		}
		op := w.queue[0]
		w.queue[0] = writeOp{}
		w.queue = w.queue[1:]
		w.mu.Unlock()

		w.apply(ctx, op)
	}
}

func (w *writer) apply(ctx context.Context, op writeOp) {
	if op.done != nil {
		defer close(op.done)
	}
	if op.fn == nil {
		return
	}

	opCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	if err := op.fn(opCtx); err != nil {
		err = core.NewStorageError(op.name, "", err)
		w.logger.Error("write-through failed", "op", op.name, "error", err)
		if w.notifier != nil {
			w.notifier.Notify(core.Notification{
				Level:   core.LevelError,
				Message: "Could not save changes to local storage",
				Err:     err,
			})
		}
	}
}

// flush waits until everything enqueued before the call has been applied.
func (w *writer) flush(ctx context.Context) error {
	done := make(chan struct{})
	if !w.enqueue(writeOp{name: "flush", done: done}) {
		return errWriterClosed
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close drains the queue and stops the goroutine.
func (w *writer) close(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *writer) putNote(n core.Note) {
	n = n.Clone()
	w.submit("put-note", func(ctx context.Context) error {
		return w.store.PutNote(ctx, n)
	})
}

func (w *writer) bulkPut(notes []core.Note) {
	w.submit("bulk-put-notes", func(ctx context.Context) error {
		return w.store.BulkPutNotes(ctx, notes)
	})
}

func (w *writer) deleteNote(id string) {
	w.submit("delete-note", func(ctx context.Context) error {
		return w.store.DeleteNote(ctx, id)
	})
}

func (w *writer) clearNotes() {
	w.submit("clear-notes", func(ctx context.Context) error {
		return w.store.ClearNotes(ctx)
	})
}

func (w *writer) putCurrent(id string) {
	if id == "" {
		w.submit("clear-current", func(ctx context.Context) error {
			return w.store.ClearCurrent(ctx)
		})
		return
	}
	w.submit("put-current", func(ctx context.Context) error {
		return w.store.PutCurrent(ctx, id)
	})
}
