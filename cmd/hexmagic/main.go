// Hexmagic is a byte-pattern decoding utility.
//
// It loads struct layouts from YAML files, matches them against binary
// input, and prints the captured fields. Layouts describe fixed-width
// byte patterns with literal bytes, wildcard bytes, and wildcard
// nibbles, plus converters for the captured values.
//
// Usage:
//
//	hexmagic [command] [flags]
//
// Running without arguments launches the interactive shell.
// See 'hexmagic --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hexmagic/hexmagic-go/internal/logging"
	"github.com/hexmagic/hexmagic-go/internal/version"
)

func main() {
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hexmagic",
	Short: "Byte-pattern decoding utility",
	Long: `A utility for decoding binary data against declarative byte layouts.

Layouts are YAML files of named structs. Each struct is an ordered list
of byte patterns: literal hex pairs, "_" wildcard nibbles, and typed
captures. Hexmagic pulls exact-width windows from the input, checks the
constraints, and prints the captured fields.

If no command is specified, the interactive shell will launch automatically.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the repl when no subcommand provided
		return runRepl(cmd, args)
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}
		return logging.Initialize(cfg.LogLevel)
	},
	SilenceUsage: true,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (TOML)")
	rootCmd.PersistentFlags().StringVarP(&layoutPath, "layout", "l", "", "Layout file (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hexmagic %s\n", version.Full())
	},
}
