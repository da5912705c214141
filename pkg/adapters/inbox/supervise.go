package inbox

import (
	"time"

	"github.com/aretw0/lifecycle/pkg/core/supervisor"
	"github.com/aretw0/lifecycle/pkg/core/worker"
)

// DefaultBackoff bounds how often a failing watcher is restarted.
var DefaultBackoff = supervisor.Backoff{
	InitialInterval: 100 * time.Millisecond,
	MaxInterval:     5 * time.Second,
	Multiplier:      2,
	ResetDuration:   time.Minute,
	MaxRestarts:     5,
	MaxDuration:     10 * time.Minute,
}

// Spec describes a watcher that a supervisor restarts on failure.
// Each restart builds a fresh Watcher from the same config.
// onStart, when set, receives every new instance.
func Spec(importer Importer, config Config, onStart func(*Watcher)) supervisor.Spec {
	return supervisor.Spec{
		Name: "inbox-watcher",
		Type: string(worker.TypeGoroutine),
		Factory: func() (worker.Worker, error) {
			w, err := New(importer, config)
			if err != nil {
				return nil, err
			}
			if onStart != nil {
				onStart(w)
			}
			return w, nil
		},
		Backoff:       DefaultBackoff,
		RestartPolicy: supervisor.RestartOnFailure,
	}
}

