package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	restoreTimestamp string
	restoreTarget    string
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore a backup into a database",
	Long: `restore downloads the archive identified by --timestamp, validates
and unpacks it, and loads it with the restore tool. Existing collections
in the target are dropped first. Without --target the original database
name is used.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.wf.Restore(ctx, restoreTimestamp, restoreTarget); err != nil {
			return err
		}
		fmt.Printf("restored backup %s\n", restoreTimestamp)
		return nil
	},
}

func init() {
	restoreCmd.Flags().StringVar(&restoreTimestamp, "timestamp", "", "timestamp identifier of the backup to restore")
	restoreCmd.Flags().StringVar(&restoreTarget, "target", "", "database to restore into (default: the original database)")
	_ = restoreCmd.MarkFlagRequired("timestamp")
}
