package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// cmdContext returns a context canceled when the operator interrupts the
// process. Cancellation is the only way to abort a long engine operation;
// no step enforces its own timeout.
func cmdContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx
}
