// Package cmd defines and implements the CLI commands for the webmapper
// executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webmapper",
		Short: "Enumerates the same-domain pages reachable from a seed URL.",
		Long: `webmapper recursively discovers the pages of a single site by
following relative links from a seed URL, up to a bounded depth, waiting a
configurable delay between requests.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	cmd.AddCommand(newMapCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
