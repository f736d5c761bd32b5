package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Verify tools, credentials, and database connectivity",
	Long: `test fetches the credential bundle, checks the client tools are
installed, and pings the database. No backup is produced.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		info, err := a.wf.Test(ctx)
		if err != nil {
			return err
		}

		fmt.Println("connection OK")
		if info.Version != "" {
			fmt.Printf("  server version: %s\n", info.Version)
			fmt.Printf("  collections:    %d\n", info.Collections)
			fmt.Printf("  documents:      %d\n", info.Objects)
		}
		return nil
	},
}
