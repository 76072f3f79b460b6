package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := newRootCommand(buildApp, os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()

	os.Exit(reportError(os.Stderr, err))
}
