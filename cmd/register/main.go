// Command register assembles the document-register services and keeps them
// running until the process receives SIGINT or SIGTERM. Transport surfaces
// (HTTP, messaging) mount on top of the assembled App.
//
// Exit codes: 0 = clean shutdown, 1 = startup error.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/millbrookqa/docregister/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx)
	if err != nil {
		log.Fatalf("start: %v", err)
	}
	defer a.Close()

	a.Log.Info("document register ready")

	<-ctx.Done()

	a.Log.Info("shutting down")
}
