package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/xreport/internal/linkcheck"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <report-dir>",
		Short: "Check the links of a written report",
		Long: `Check crawls a written report from its index page and reports relative
links and images whose target file is missing, and pages no other page
links to. External links are counted but not fetched.

The command fails when a broken link is found.

Examples:
  xreport check report
  xreport check --json report`,
		Args: cobra.ExactArgs(1),
		RunE: runCheckCmd,
	}

	cmd.Flags().String("entry", linkcheck.DefaultEntry, "Page the crawl starts at")
	cmd.Flags().BoolP("json", "j", false, "Output the result as JSON")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))

	entry, err := cmd.Flags().GetString("entry")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	res, err := linkcheck.New(linkcheck.WithEntry(entry), linkcheck.WithLogger(logger)).Check(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "Checked %d pages, %d external links not checked\n", len(res.Visited), res.External)
		for _, b := range res.Broken {
			fmt.Fprintf(out, "broken: %s\n", b)
		}
		for _, o := range res.Orphans {
			fmt.Fprintf(out, "orphan: %s\n", o)
		}
	}

	if !res.OK() {
		return fmt.Errorf("%d broken links in %s", len(res.Broken), args[0])
	}
	return nil
}
