package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/inkpad/internal/storetest"
	inklifecycle "github.com/aretw0/inkpad/pkg/adapters/lifecycle"
	"github.com/aretw0/inkpad/pkg/core"
	"github.com/aretw0/inkpad/pkg/session"
)

func TestSource_EmitsSessionNotifications(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n := inklifecycle.NewNotifier(8)
	src := n.Source()
	require.NoError(t, src.Start(ctx))

	ctl := session.New(storetest.NewMemory(), session.WithNotifier(n), session.WithRecreateDelay(0))
	require.NoError(t, ctl.Open(ctx))
	t.Cleanup(func() { _ = ctl.Close(context.Background()) })

	ctl.DeleteAll()

	select {
	case e := <-src.Events():
		assert.Equal(t, "[info] All notes deleted", e.String())
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for notification")
	}

	n.Close()
	select {
	case _, ok := <-src.Events():
		assert.False(t, ok, "events close with the notifier")
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for close")
	}
}

func TestNotifier_DropsWhenFull(t *testing.T) {
	n := inklifecycle.NewNotifier(1)
	n.Notify(core.Notification{Level: core.LevelInfo, Message: "one"})
	n.Notify(core.Notification{Level: core.LevelInfo, Message: "two"})
	assert.Equal(t, 1, n.Dropped())

	n.Close()
	n.Notify(core.Notification{Level: core.LevelInfo, Message: "late"})
	assert.Equal(t, 1, n.Dropped())
}

func TestSource_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	n := inklifecycle.NewNotifier(0)
	src := n.Source()
	require.NoError(t, src.Start(ctx))

	cancel()
	select {
	case _, ok := <-src.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for close")
	}
}
