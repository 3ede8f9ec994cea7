// internal/appshell/shell.go
// Shared process shell: signal-aware context, exit-code normalization.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Main wires OS signals and streams into a RunContext-style entry point and
// exits with its code. Both binaries run with defaults when called bare, so
// an empty argv is passed through unchanged.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	// Normalize cancellation exit code.
	if ctx.Err() != nil && code == 0 {
		code = 130
	}

	stop()
	os.Exit(code)
}
