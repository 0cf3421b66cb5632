package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	xlog "github.com/nao1215/xreport/internal/log"
)

// NewRootCmd creates the root command for xreport.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xreport",
		Short: "Build static HTML reports from tables and plots",
		Long: `xreport builds static HTML reports from a YAML report definition.

Every page of the definition becomes one HTML file. Tables are read from
TSV files, charts and heat maps are rendered to PNG (and optionally SVG)
next to the pages. An index page, a README.md and a manifest.json are
written alongside.

Builds are recorded in a catalog in the XDG data directory, so that
earlier reports can be listed and served again.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewBuildCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewLsCmd())
	cmd.AddCommand(NewRmCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the process logger and makes it the default.
func setupLogger(w io.Writer, verbose bool) *slog.Logger {
	logger := xlog.NewLogger(w, verbose)
	slog.SetDefault(logger)
	return logger
}
