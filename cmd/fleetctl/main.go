// Package main provides fleetctl, the operator CLI for the fleet backend.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "fleetctl",
	Short:         "Fleet maintenance backend",
	Long:          "fleetctl runs the fleet maintenance API and offers operator commands for roster imports and job review.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
