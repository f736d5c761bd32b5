// Command mongo-backup backs up a MongoDB database into object storage
// and restores from it. Credentials come from a secret store; running
// with no subcommand performs one backup.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mongo-backup/internal/errdefs"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(errdefs.ExitCode(err))
	}
}
