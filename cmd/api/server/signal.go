package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// ShutdownSignals are the signals that end the serve loop.
var ShutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// ShutdownOnSignal derives a context that is canceled on the first
// shutdown signal. The returned stop both unregisters the handler and
// cancels the context, so calling it ends everything derived from ctx.
func ShutdownOnSignal(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, ShutdownSignals...)
}
