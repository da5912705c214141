// Package lifecycle exposes session notifications as a lifecycle.Source.
package lifecycle

import (
	"context"
	"sync"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/inkpad/pkg/core"
)

// DefaultBuffer is the notification backlog kept before new ones are dropped.
const DefaultBuffer = 64

// Notifier queues notifications for a Source. Notify never blocks; when the
// buffer is full the notification is dropped and counted.
type Notifier struct {
	mu      sync.Mutex
	ch      chan core.Notification
	closed  bool
	dropped int
}

// NewNotifier creates a Notifier holding up to size pending notifications.
func NewNotifier(size int) *Notifier {
	if size <= 0 {
		size = DefaultBuffer
	}
	return &Notifier{ch: make(chan core.Notification, size)}
}

// Notify implements core.Notifier.
func (n *Notifier) Notify(note core.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	select {
	case n.ch <- note:
	default:
		n.dropped++
	}
}

// Dropped reports how many notifications did not fit the buffer.
func (n *Notifier) Dropped() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.dropped
}

// Close ends the stream. Later notifications are ignored.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.closed {
		n.closed = true
		close(n.ch)
	}
}

// Source returns a lifecycle.Source over the queued notifications.
func (n *Notifier) Source() lifecycle.Source {
	return NewSource(n.ch)
}

type notificationSource struct {
	events <-chan core.Notification
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits session notifications.
// The output channel closes when events closes or the context ends.
func NewSource(events <-chan core.Notification) lifecycle.Source {
	return &notificationSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *notificationSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *notificationSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				// core.Notification implements lifecycle.Event (has String())
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
