// Command gomdmark parses Markdown files into positioned mdast trees.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/yaklabco/gomdmark/internal/cli"
	"github.com/yaklabco/gomdmark/internal/logging"
)

// Set with -ldflags "-X main.version=...".
//
//nolint:gochecknoglobals // ldflags targets.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

// run executes the command tree and maps its error to an exit code.
// Interrupts cancel ctx, which stops the parse workers.
func run(ctx context.Context) int {
	root := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: date})

	err := root.ExecuteContext(ctx)
	if err == nil {
		return cli.ExitSuccess
	}
	// Per-file failures are already in the report.
	if !errors.Is(err, cli.ErrParseFailed) {
		logging.Default().Error("gomdmark failed", logging.FieldError, err)
	}
	return cli.ExitCodeFromError(err)
}
