// Package cli wires configuration, logging and the update loop behind the
// coinsheet command tree.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rickgao/coinsheet/internal/loop"
	"github.com/rickgao/coinsheet/internal/version"
)

// Process exit codes.
const (
	ExitOK        = 0
	ExitStartup   = 1 // config, credentials, health check or one-shot failure
	ExitExhausted = 2 // retry budget exhausted
)

// RootConfig holds the persistent flags.
type RootConfig struct {
	ConfigPath string
	LogLevel   string
}

// NewRootCmd builds the coinsheet command tree.
func NewRootCmd() *cobra.Command {
	rc := &RootConfig{}

	cmd := &cobra.Command{
		Use:           "coinsheet",
		Short:         "Publish top cryptocurrency market data to a spreadsheet",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error (overrides config)")

	// Bare "coinsheet" runs the loop, sharing run's --dry-run flag.
	run := newRunCmd(rc)
	cmd.RunE = run.RunE
	cmd.Flags().AddFlag(run.Flags().Lookup("dry-run"))

	cmd.AddCommand(
		run,
		newOnceCmd(rc),
		newCheckCmd(rc),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	})

	return cmd
}

// ExitCode maps a command error onto the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, loop.ErrRetryBudgetExhausted):
		return ExitExhausted
	default:
		return ExitStartup
	}
}

// Execute runs the root command and exits the process.
func Execute() {
	err := NewRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(ExitCode(err))
}
