// rigcalc plans DMX lighting rigs: it patches fixtures into universes,
// flags address overlaps and universes over 512 channels, and totals the
// electrical load on each circuit.
//
// The serve command runs the HTTP API and browser panel. The report and
// catalog commands print the stored rig and the fixture catalogue.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Version information, set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
