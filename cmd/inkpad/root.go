package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/aretw0/inkpad"
	"github.com/aretw0/inkpad/pkg/core"
	"github.com/aretw0/inkpad/pkg/session"
)

// EnvDB overrides the default database location.
const EnvDB = "INKPAD_DB"

var (
	verbose       bool
	dbPath        string
	recreateDelay time.Duration
	quiet         bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "inkpad",
	Short: "A local-first Markdown notepad with slash commands",
	Long: `Inkpad keeps your notes in a local SQLite database.
Type /table, /tlist or /toc on a line of its own and the command expands
into Markdown; write [[next friday]] and it becomes a date.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Hide informational messages")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (default: $"+EnvDB+", the project .inkpad dir or the user config dir)")
	rootCmd.PersistentFlags().DurationVar(&recreateDelay, "recreate-delay", 0, "How long an emptied collection waits before a new note is created")
}

// resolveDB picks the database from the flag, the environment or the defaults.
func resolveDB() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if env := os.Getenv(EnvDB); env != "" {
		return env, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return inkpad.DefaultDBPath(wd)
}

// stderrNotifier prints user-facing messages next to the log output.
func stderrNotifier() core.Notifier {
	return core.NotifierFunc(func(n core.Notification) {
		if quiet && n.Level == core.LevelInfo {
			return
		}
		fmt.Fprintln(os.Stderr, n.String())
	})
}

// openSession opens the configured database or exits.
// Later options override the defaults.
func openSession(ctx context.Context, extra ...inkpad.Option) *inkpad.Session {
	path, err := resolveDB()
	if err != nil {
		fatal("Failed to resolve database path", err)
	}

	opts := []inkpad.Option{
		inkpad.WithLogger(slog.Default()),
		inkpad.WithNotifier(stderrNotifier()),
		inkpad.WithClipboard(session.ClipboardFunc(clipboard.WriteAll)),
		inkpad.WithRecreateDelay(recreateDelay),
	}
	sess, err := inkpad.Open(ctx, path, append(opts, extra...)...)
	if sess == nil {
		fatal("Failed to open database", err)
	}
	if err != nil {
		slog.Warn("session opened with errors", "error", err)
	}
	return sess
}

// closeSession drains pending writes. Failures are fatal so the exit status
// reflects lost edits.
func closeSession(ctx context.Context, sess *inkpad.Session) {
	if err := sess.Close(ctx); err != nil {
		fatal("Failed to save changes", err)
	}
}

// withSession runs fn against an open session and closes it afterwards.
func withSession(fn func(ctx context.Context, sess *inkpad.Session, args []string) error) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		sess := openSession(ctx)
		err := fn(ctx, sess, args)
		closeSession(ctx, sess)
		if err != nil {
			fatal(cmd.Name(), err)
		}
	}
}
