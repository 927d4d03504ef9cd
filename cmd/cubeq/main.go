// Command cubeq searches for move sequences that restore edge orientation
// using amplitude amplification on the built-in simulator.
//
//	cubeq selftest
//	cubeq search --config search.yaml --shots 2000
//	cubeq solutions --config search.yaml
//	cubeq qasm --config search.yaml > search.qasm
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
