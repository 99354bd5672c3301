//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// notifyContext derives the build context. Ctrl-C cancels it; Windows has no
// SIGTERM.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
