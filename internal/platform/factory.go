package platform

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/inkpad/pkg/core"
	"github.com/aretw0/inkpad/pkg/session"
)

// Session is an open editing session together with the store it owns.
type Session struct {
	*session.Controller
	store core.Store
}

// Store returns the underlying store.
func (s *Session) Store() core.Store {
	return s.store
}

// Close drains queued writes, then closes the store.
func (s *Session) Close(ctx context.Context) error {
	return errors.Join(s.Controller.Close(ctx), s.store.Close())
}

// New opens the store at uri and loads a session from it.
//
//	sess, err := inkpad.Open(ctx, "~/.config/inkpad/inkpad.db", inkpad.WithLogger(logger))
//
// A storage failure while loading is reported through the notifier and
// returned alongside a usable session; only a store that cannot be opened
// yields a nil session.
func New(ctx context.Context, uri string, opts ...Option) (*Session, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	store, err := initStore(ctx, uri, o)
	if err != nil {
		return nil, err
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	sessOpts := []session.Option{session.WithLogger(logger)}
	if o.notifier != nil {
		sessOpts = append(sessOpts, session.WithNotifier(o.notifier))
	}
	if o.clipboard != nil {
		sessOpts = append(sessOpts, session.WithClipboard(o.clipboard))
	}
	if o.clock != nil {
		sessOpts = append(sessOpts, session.WithClock(o.clock))
	}
	if d, ok := o.config["recreate_delay"].(time.Duration); ok {
		sessOpts = append(sessOpts, session.WithRecreateDelay(d))
	}

	ctl := session.New(store, sessOpts...)
	s := &Session{Controller: ctl, store: store}
	return s, ctl.Open(ctx)
}
