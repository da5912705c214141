package session

import (
	"context"

	"github.com/aretw0/inkpad/pkg/core"
)

// Settings returns a copy of the active settings.
func (c *Controller) Settings() core.Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// UpdateSettings applies fn to the settings and persists the result. The
// settings row is created on first write. A storage failure keeps the new
// values for this session and is reported.
func (c *Controller) UpdateSettings(ctx context.Context, fn func(s *core.Settings)) (core.Settings, error) {
	c.mu.Lock()
	next := c.settings
	fn(&next)
	next = next.Normalize()
	c.settings = next
	c.mu.Unlock()

	if err := c.store.PutSettings(ctx, next); err != nil {
		err = core.NewStorageError("put", core.TableSettings, err)
		c.report(core.LevelError, "Could not save settings", err)
		return next, err
	}
	return next, nil
}
