package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/inkpad"
	"github.com/aretw0/inkpad/pkg/core"
	"github.com/aretw0/inkpad/pkg/notes"
)

var (
	newName     string
	newContent  string
	newTags     []string
	newTemplate string

	listJSON  bool
	filterTag string
	listSort  string

	showJSON bool

	editText  string
	editFile  string
	editCaret int

	rmAllYes bool
)

// noteID returns the id in args, or the current note's.
func noteID(sess *inkpad.Session, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	cur, ok := sess.Current()
	if !ok {
		return "", core.ErrNoteNotFound
	}
	return cur.ID, nil
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printNotes(list []core.Note, current string) {
	for _, n := range list {
		marker := " "
		if n.ID == current {
			marker = "*"
		}
		tags := ""
		if len(n.Tags) > 0 {
			tags = " #" + strings.Join(n.Tags, " #")
		}
		fmt.Printf("%s %s  %s%s\n", marker, n.ID, n.Name, tags)
	}
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a note and make it current",
	Args:  cobra.NoArgs,
	Run: withSession(func(ctx context.Context, sess *inkpad.Session, args []string) error {
		var (
			n   core.Note
			err error
		)
		if newTemplate != "" {
			n, err = sess.NewNoteFromTemplate(ctx, newTemplate)
			if err != nil {
				return err
			}
			if newName != "" {
				if err := sess.Rename(n.ID, newName); err != nil {
					return err
				}
			}
		} else {
			n = sess.NewNote(&inkpad.Seed{Name: newName, Content: newContent, Tags: newTags})
		}
		fmt.Println(n.ID)
		return nil
	}),
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes",
	Args:  cobra.NoArgs,
	Run: withSession(func(ctx context.Context, sess *inkpad.Session, args []string) error {
		order, ok := notes.ParseOrder(listSort)
		if !ok {
			return fmt.Errorf("unknown sort order %q", listSort)
		}

		list := sess.Notes(order)
		if filterTag != "" {
			list = sess.Search("tag:"+filterTag, order)
		}

		if listJSON {
			return printJSON(list)
		}
		cur, _ := sess.Current()
		printNotes(list, cur.ID)
		return nil
	}),
}

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a note (the current one by default)",
	Args:  cobra.MaximumNArgs(1),
	Run: withSession(func(ctx context.Context, sess *inkpad.Session, args []string) error {
		id, err := noteID(sess, args)
		if err != nil {
			return err
		}
		n, err := sess.Note(id)
		if err != nil {
			return err
		}
		if showJSON {
			return printJSON(n)
		}
		fmt.Print(n.Content)
		if n.Content != "" && !strings.HasSuffix(n.Content, "\n") {
			fmt.Println()
		}
		return nil
	}),
}

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Replace a note's text, expanding slash commands and dates",
	Long: `Replace the text of a note as if it had been typed into the editor.
The text comes from --text, --file or standard input. Slash commands on a
line of their own and [[date]] expressions are expanded before saving.`,
	Args: cobra.MaximumNArgs(1),
	Run: withSession(func(ctx context.Context, sess *inkpad.Session, args []string) error {
		if len(args) > 0 {
			if err := sess.Select(args[0]); err != nil {
				return err
			}
		}

		text, err := readEditText()
		if err != nil {
			return err
		}
		caret := editCaret
		if caret < 0 || caret > len(text) {
			caret = len(text)
		}

		res, err := sess.HandleChange(ctx, text, caret)
		if err != nil {
			return err
		}
		if res.Command != "" {
			fmt.Fprintf(os.Stderr, "expanded /%s\n", res.Command)
		}
		if res.Dates > 0 {
			fmt.Fprintf(os.Stderr, "resolved %d date(s)\n", res.Dates)
		}
		fmt.Print(res.Text)
		if !strings.HasSuffix(res.Text, "\n") {
			fmt.Println()
		}
		return nil
	}),
}

func readEditText() (string, error) {
	switch {
	case editText != "":
		return editText, nil
	case editFile != "":
		data, err := os.ReadFile(editFile)
		return string(data), err
	default:
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
}

var renameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a note",
	Args:  cobra.ExactArgs(2),
	Run: withSession(func(ctx context.Context, sess *inkpad.Session, args []string) error {
		return sess.Rename(args[0], args[1])
	}),
}

var selectCmd = &cobra.Command{
	Use:   "select <id>",
	Short: "Make a note current",
	Args:  cobra.ExactArgs(1),
	Run: withSession(func(ctx context.Context, sess *inkpad.Session, args []string) error {
		return sess.Select(args[0])
	}),
}

var rmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a note (the current one by default)",
	Args:  cobra.MaximumNArgs(1),
	Run: withSession(func(ctx context.Context, sess *inkpad.Session, args []string) error {
		id, err := noteID(sess, args)
		if err != nil {
			return err
		}
		if err := sess.Delete(id); err != nil {
			return err
		}
		fmt.Printf("Note '%s' deleted.\n", id)
		return nil
	}),
}

var rmAllCmd = &cobra.Command{
	Use:   "rm-all",
	Short: "Delete every note",
	Long:  `Delete every note. A fresh empty note takes their place before the command exits.`,
	Args:  cobra.NoArgs,
	Run: withSession(func(ctx context.Context, sess *inkpad.Session, args []string) error {
		if !rmAllYes {
			return fmt.Errorf("refusing to delete %d notes without --yes", len(sess.Notes(notes.OrderInsertion)))
		}
		sess.DeleteAll()
		return nil
	}),
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently created notes",
	Args:  cobra.NoArgs,
	Run: withSession(func(ctx context.Context, sess *inkpad.Session, args []string) error {
		cur, _ := sess.Current()
		printNotes(sess.RecentNotes(recentLimit), cur.ID)
		return nil
	}),
}

var recentLimit int

func init() {
	rootCmd.AddCommand(newCmd, listCmd, showCmd, editCmd, renameCmd, selectCmd, rmCmd, rmAllCmd, recentCmd)

	newCmd.Flags().StringVarP(&newName, "name", "n", "", "Note name (default: the configured default name)")
	newCmd.Flags().StringVarP(&newContent, "content", "c", "", "Initial content")
	newCmd.Flags().StringSliceVarP(&newTags, "tag", "t", nil, "Tags")
	newCmd.Flags().StringVar(&newTemplate, "template", "", "Create from a saved template id")

	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&filterTag, "tag", "", "Filter notes by tag")
	listCmd.Flags().StringVar(&listSort, "sort", "insertion", "Sort order: insertion, newest or oldest")

	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")

	editCmd.Flags().StringVar(&editText, "text", "", "New text")
	editCmd.Flags().StringVarP(&editFile, "file", "f", "", "Read the new text from a file")
	editCmd.Flags().IntVar(&editCaret, "caret", -1, "Caret byte offset (default: end of text)")

	rmAllCmd.Flags().BoolVar(&rmAllYes, "yes", false, "Confirm deleting every note")

	recentCmd.Flags().IntVar(&recentLimit, "limit", 5, "Maximum number of notes")
}
