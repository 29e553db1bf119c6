package main

import (
	"fmt"
	"os"

	"github.com/andrescamacho/fuelrouter-go/internal/adapters/cli"
)

// Standalone server binary; equivalent to "fuelrouter serve".
func main() {
	cmd := cli.NewServeCommand()
	cmd.SilenceUsage = true
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
