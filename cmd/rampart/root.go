package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "rampart",
	Short: "Rampart - request validation and resource protection toolkit",
	Long: `Rampart is a toolkit for protecting service endpoints from abusive
or malformed input.

It provides:
  - Fixed-window rate limiting with per-key counters
  - Input sanitization for HTML, URLs, paths, JSON, and numbers
  - Sensitive-field redaction for safe structured logging
  - Prefixed cryptographically random identifier generation`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
