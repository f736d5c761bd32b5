package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete backups older than the retention window",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		deleted, err := a.wf.Prune(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("deleted %d expired backup(s)\n", deleted)
		return nil
	},
}
