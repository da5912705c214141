package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/inkpad"
	"github.com/aretw0/inkpad/pkg/notes"
)

var (
	searchSort string
	searchJSON bool
)

var tagCmd = &cobra.Command{
	Use:   "tag <tag> [id]",
	Short: "Add a tag to a note (the current one by default)",
	Args:  cobra.RangeArgs(1, 2),
	Run: withSession(func(ctx context.Context, sess *inkpad.Session, args []string) error {
		id, err := noteID(sess, args[1:])
		if err != nil {
			return err
		}
		return sess.AddTag(id, args[0])
	}),
}

var untagCmd = &cobra.Command{
	Use:   "untag <tag> [id]",
	Short: "Remove a tag from a note (the current one by default)",
	Args:  cobra.RangeArgs(1, 2),
	Run: withSession(func(ctx context.Context, sess *inkpad.Session, args []string) error {
		id, err := noteID(sess, args[1:])
		if err != nil {
			return err
		}
		return sess.RemoveTag(id, args[0])
	}),
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags with their note counts",
	Args:  cobra.NoArgs,
	Run: withSession(func(ctx context.Context, sess *inkpad.Session, args []string) error {
		for _, tc := range sess.TagCounts() {
			fmt.Printf("%4d  %s\n", tc.Count, tc.Tag)
		}
		return nil
	}),
}

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Find notes by name, content or tag",
	Long: `Find notes whose name or content contains every term of the query.
Terms written as tag:name or #name match tags instead.`,
	Args: cobra.MinimumNArgs(1),
	Run: withSession(func(ctx context.Context, sess *inkpad.Session, args []string) error {
		order, ok := notes.ParseOrder(searchSort)
		if !ok {
			return fmt.Errorf("unknown sort order %q", searchSort)
		}
		found := sess.Search(strings.Join(args, " "), order)
		if searchJSON {
			return printJSON(found)
		}
		cur, _ := sess.Current()
		printNotes(found, cur.ID)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(tagCmd, untagCmd, tagsCmd, searchCmd)
	searchCmd.Flags().StringVar(&searchSort, "sort", "newest", "Sort order: insertion, newest or oldest")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
}
