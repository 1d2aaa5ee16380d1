package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"rampart-hq/rampart/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and validate configuration files",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a configuration file",
	Long: `Load a configuration file, apply defaults and environment overrides,
and run the semantic checks: rate limit bounds, the {waitTime} placeholder,
duplicate identifier prefixes, and the audit prune schedule.

Examples:
  rampart config validate config.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configValidateCmd)
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithEnv(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("✓ %s is valid\n", args[0])
	if verbose {
		fmt.Printf("  rate limit: %d requests per %s\n",
			cfg.RateLimit.MaxRequests, cfg.RateLimit.LimiterConfig().Window)
		fmt.Printf("  sensitive fields: %d configured\n", len(cfg.Sanitize.SensitiveFields))
		fmt.Printf("  identifier prefixes: %d registered\n", len(cfg.Identifier.Prefixes))
		fmt.Printf("  audit enabled: %t\n", cfg.Audit.Enabled)
	}
	return nil
}
