package platform

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/inkpad/pkg/adapters/sqlite"
	"github.com/aretw0/inkpad/pkg/core"
)

// Init opens and migrates the store selected by the options.
// The uri is adapter-specific (a database path for "sqlite").
func Init(ctx context.Context, uri string, opts ...Option) (core.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return initStore(ctx, uri, o)
}

func initStore(ctx context.Context, uri string, o *options) (core.Store, error) {
	// 1. Check for injected store
	if o.store != nil {
		return o.store, nil
	}

	// 2. Initialize based on adapter
	var (
		store core.Store
		err   error
	)
	switch o.adapter {
	case "sqlite":
		store, err = initSQLite(uri, o)
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
	if err != nil {
		return nil, err
	}

	// 3. Run migrations
	if err := store.Initialize(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// initSQLite resolves the database path and opens the SQLite adapter.
func initSQLite(path string, o *options) (core.Store, error) {
	tempDir, _ := o.config["temp_dir"].(bool)
	busyTimeout, _ := o.config["busy_timeout"].(time.Duration)

	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}

	useTemp := tempDir || (IsDevRun() && devSafety)
	resolved := ResolveDBPath(path, useTemp)

	if o.logger != nil && useTemp && resolved != path {
		o.logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", path, "resolved_path", resolved)
	}

	return sqlite.New(sqlite.Config{
		Path:        resolved,
		Logger:      o.logger,
		BusyTimeout: busyTimeout,
	})
}
