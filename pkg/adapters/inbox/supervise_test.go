package inbox_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/supervisor"
	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/inkpad/internal/storetest"
	"github.com/aretw0/inkpad/pkg/adapters/inbox"
	"github.com/aretw0/inkpad/pkg/notes"
	"github.com/aretw0/inkpad/pkg/session"
)

func TestSpec_SupervisedWatcherImports(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := t.TempDir()
	ctl := session.New(storetest.NewMemory())
	require.NoError(t, ctl.Open(ctx))
	t.Cleanup(func() { _ = ctl.Close(context.Background()) })

	created := make(chan *inbox.Watcher, 4)
	spec := inbox.Spec(ctl, inbox.Config{Dir: dir, Settle: 20 * time.Millisecond}, func(w *inbox.Watcher) {
		created <- w
	})
	assert.Equal(t, "inbox-watcher", spec.Name)

	sup := supervisor.New("inbox-test", supervisor.StrategyOneForOne, spec)
	require.NoError(t, sup.Start(ctx))
	t.Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer stopCancel()
		_ = sup.Stop(stopCtx)
	})

	var w *inbox.Watcher
	select {
	case w = <-created:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for watcher")
	}

	require.Eventually(t, func() bool {
		return w.State().Status == worker.StatusRunning
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "todo.txt"), []byte("milk"), 0o644))

	require.Eventually(t, func() bool {
		return len(ctl.Notes(notes.OrderInsertion)) == 2
	}, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, int64(1), w.Imported())
}
