package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/inkpad"
)

var templateFromNote string

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage note templates",
}

var templateAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Save a note's content as a template (the current note by default)",
	Args:  cobra.ExactArgs(1),
	Run: withSession(func(ctx context.Context, sess *inkpad.Session, args []string) error {
		var from []string
		if templateFromNote != "" {
			from = []string{templateFromNote}
		}
		id, err := noteID(sess, from)
		if err != nil {
			return err
		}
		n, err := sess.Note(id)
		if err != nil {
			return err
		}
		t, err := sess.SaveTemplate(ctx, args[0], n.Content)
		if err != nil {
			return err
		}
		fmt.Println(t.ID)
		return nil
	}),
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved templates",
	Args:  cobra.NoArgs,
	Run: withSession(func(ctx context.Context, sess *inkpad.Session, args []string) error {
		list, err := sess.Templates(ctx)
		if err != nil {
			return err
		}
		for _, t := range list {
			fmt.Printf("%s  %s\n", t.ID, t.Name)
		}
		return nil
	}),
}

var templateRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a template",
	Args:  cobra.ExactArgs(1),
	Run: withSession(func(ctx context.Context, sess *inkpad.Session, args []string) error {
		return sess.DeleteTemplate(ctx, args[0])
	}),
}

var templateUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Create a note from a template",
	Args:  cobra.ExactArgs(1),
	Run: withSession(func(ctx context.Context, sess *inkpad.Session, args []string) error {
		n, err := sess.NewNoteFromTemplate(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Println(n.ID)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(templateCmd)
	templateCmd.AddCommand(templateAddCmd, templateListCmd, templateRmCmd, templateUseCmd)
	templateAddCmd.Flags().StringVar(&templateFromNote, "from", "", "Note id to copy")
}
