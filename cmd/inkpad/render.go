package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/inkpad"
)

var tocCmd = &cobra.Command{
	Use:   "toc [id]",
	Short: "Print a table of contents for a note's headings",
	Args:  cobra.MaximumNArgs(1),
	Run: withSession(func(ctx context.Context, sess *inkpad.Session, args []string) error {
		id, err := noteID(sess, args)
		if err != nil {
			return err
		}
		out, err := sess.TOC(id)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}),
}

var previewCmd = &cobra.Command{
	Use:   "preview [id]",
	Short: "Render a note as HTML",
	Args:  cobra.MaximumNArgs(1),
	Run: withSession(func(ctx context.Context, sess *inkpad.Session, args []string) error {
		id, err := noteID(sess, args)
		if err != nil {
			return err
		}
		html, err := sess.Preview(id)
		if err != nil {
			return err
		}
		fmt.Print(html)
		return nil
	}),
}

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the slash commands",
	Args:  cobra.NoArgs,
	Run: withSession(func(ctx context.Context, sess *inkpad.Session, args []string) error {
		for _, c := range sess.Engine().Registry().Commands() {
			fmt.Printf("/%-14s %s\n", c.Name, c.Description)
			for _, a := range c.Aliases {
				fmt.Printf("  /%s\n", a)
			}
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(tocCmd, previewCmd, commandsCmd)
}
