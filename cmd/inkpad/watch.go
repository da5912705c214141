package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/supervisor"
	"github.com/spf13/cobra"

	"github.com/aretw0/inkpad"
	"github.com/aretw0/inkpad/pkg/adapters/inbox"
	inklifecycle "github.com/aretw0/inkpad/pkg/adapters/lifecycle"
)

var (
	watchPattern string
	watchSettle  time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Import files dropped into a directory",
	Long: `Watch a directory and import every new .md or .txt file as a note.
Runs until interrupted. The watcher is restarted if it fails.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Notifications arrive from the watcher goroutines; print them here.
		feed := inklifecycle.NewNotifier(inklifecycle.DefaultBuffer)
		events := feed.Source()
		if err := events.Start(ctx); err != nil {
			fatal("Failed to start notifications", err)
		}

		sess := openSession(ctx, inkpad.WithNotifier(feed))

		spec := inbox.Spec(sess, inbox.Config{
			Dir:     args[0],
			Pattern: watchPattern,
			Settle:  watchSettle,
			Logger:  slog.Default(),
			ErrorHandler: func(err error) {
				slog.Debug("inbox import failed", "error", err)
			},
		}, func(w *inbox.Watcher) {
			slog.Debug("inbox watcher started", "dir", args[0])
		})

		sup := supervisor.New("inkpad-watch", supervisor.StrategyOneForOne, spec)
		if err := sup.Start(ctx); err != nil {
			closeSession(context.Background(), sess)
			fatal("Failed to start watcher", err)
		}
		fmt.Fprintf(os.Stderr, "Watching %s (Ctrl+C to stop)\n", args[0])

		for e := range events.Events() {
			if quiet && strings.HasPrefix(e.String(), "[info]") {
				continue
			}
			fmt.Fprintln(os.Stderr, e.String())
		}

		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sup.Stop(stopCtx); err != nil {
			slog.Warn("watcher stop", "error", err)
		}
		closeSession(stopCtx, sess)
		feed.Close()
		if n := feed.Dropped(); n > 0 {
			slog.Warn("notifications dropped", "count", n)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchPattern, "pattern", inbox.DefaultPattern, "Doublestar pattern of files to import")
	watchCmd.Flags().DurationVar(&watchSettle, "settle", inbox.DefaultSettle, "Quiet period before a file is imported")
}
