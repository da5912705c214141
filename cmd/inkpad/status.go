package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/inkpad"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the session and store state as JSON",
	Args:  cobra.NoArgs,
	Run: withSession(func(ctx context.Context, sess *inkpad.Session, args []string) error {
		return printJSON(sess.State())
	}),
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
