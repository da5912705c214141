package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/inkpad"
	"github.com/aretw0/inkpad/pkg/core"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change editor settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the settings as YAML",
	Args:  cobra.NoArgs,
	Run: withSession(func(ctx context.Context, sess *inkpad.Session, args []string) error {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(sess.Settings()); err != nil {
			return err
		}
		return enc.Close()
	}),
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key>=<value>...",
	Short: "Change settings",
	Long: `Change editor settings. Keys: defaultNoteName, defaultFileType,
defaultPreviewMode, showRecentNotes.`,
	Args: cobra.MinimumNArgs(1),
	Run: withSession(func(ctx context.Context, sess *inkpad.Session, args []string) error {
		edits := make([]func(*core.EditorSettings), 0, len(args))
		for _, arg := range args {
			edit, err := parseSetting(arg)
			if err != nil {
				return err
			}
			edits = append(edits, edit)
		}
		_, err := sess.UpdateSettings(ctx, func(s *core.Settings) {
			for _, edit := range edits {
				edit(&s.Editor)
			}
		})
		return err
	}),
}

// parseSetting turns key=value into an edit of the editor settings.
func parseSetting(assignment string) (func(*core.EditorSettings), error) {
	key, value, ok := strings.Cut(assignment, "=")
	if !ok {
		return nil, fmt.Errorf("expected key=value, got %q", assignment)
	}
	switch key {
	case "defaultNoteName":
		return func(e *core.EditorSettings) { e.DefaultNoteName = value }, nil
	case "defaultFileType":
		return func(e *core.EditorSettings) { e.DefaultFileType = value }, nil
	case "defaultPreviewMode", "showRecentNotes":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		if key == "defaultPreviewMode" {
			return func(e *core.EditorSettings) { e.DefaultPreviewMode = b }, nil
		}
		return func(e *core.EditorSettings) { e.ShowRecentNotes = b }, nil
	default:
		return nil, fmt.Errorf("unknown setting %q", key)
	}
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
}
