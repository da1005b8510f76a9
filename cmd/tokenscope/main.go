// Command tokenscope browses token pages of a Blockscout explorer.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/tokenscope/internal/cli"
	"github.com/rshade/tokenscope/pkg/version"
)

// Exit codes.
const (
	exitOK         = 0
	exitError      = 1
	exitPageFailed = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return exitCode(err)
}

// exitCode maps a command error to the process exit status. A page that
// rendered its own error exits with exitPageFailed.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, cli.ErrPageFailed):
		return exitPageFailed
	default:
		return exitError
	}
}
