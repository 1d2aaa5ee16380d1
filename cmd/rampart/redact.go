package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"rampart-hq/rampart/pkg/config"
	"rampart-hq/rampart/pkg/sanitize"
)

var redactFlags struct {
	pretty bool
}

var redactCmd = &cobra.Command{
	Use:   "redact",
	Short: "Redact sensitive fields from a JSON document",
	Long: `Read a JSON document on stdin and print a copy with sensitive fields
replaced by the redaction marker. Field names matching the built-in
sensitive set (password, token, secret, and friends) or the configured
sanitize.sensitive_fields list are redacted at any nesting depth.

Examples:
  cat payload.json | rampart redact
  cat payload.json | rampart redact --pretty --config config.yaml`,
	RunE: runRedact,
}

func init() {
	rootCmd.AddCommand(redactCmd)

	redactCmd.Flags().BoolVar(&redactFlags.pretty, "pretty", false, "indent the output")
}

func runRedact(cmd *cobra.Command, args []string) error {
	var opts []sanitize.Option
	if cfgFile != "" {
		cfg, err := config.LoadWithEnv(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		opts = append(opts, sanitize.WithSensitiveFields(cfg.Sanitize.SensitiveFields...))
	}
	sanitizer := sanitize.New(opts...)

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	parsed, err := sanitizer.SanitizeJSON(string(input), 0)
	if err != nil {
		return err
	}

	redacted := sanitizer.SanitizeForLogging(parsed)

	var out []byte
	if redactFlags.pretty {
		out, err = sonic.ConfigDefault.MarshalIndent(redacted, "", "  ")
	} else {
		out, err = sonic.Marshal(redacted)
	}
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
