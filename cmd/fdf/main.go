package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gingerrexayers/fdf-go/internal/fdf/types"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCommand()
	rootCmd.AddCommand(NewCompletionCommand())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(exitCode(rootCmd.Usage, err))
	}
}

// exitCode maps an error onto the process exit status: 2 for an invalid
// invocation, 1 for anything else that aborted the scan.
func exitCode(usage func() error, err error) int {
	if errors.Is(err, types.ErrNoInput) {
		usage()
		return 2
	}
	return 1
}
