package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/xreport/internal/config"
)

//go:embed templates/xreport.yaml
var definitionTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new report definition file",
		Long: `Init creates a new xreport.yaml report definition in the current directory.

The generated file includes:
- A report name, title, description and parameters
- An overview page with text, list and key-value sections
- Commented examples for table, chart and heat map sections

Examples:
  # Create xreport.yaml in current directory
  xreport init

  # Create the definition at a specific path
  xreport init -o analysis/weekly.yaml

  # Force overwrite existing file
  xreport init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the report definition")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing report definition")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("report definition already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := definitionTemplate.ReadFile("templates/xreport.yaml")
	if err != nil {
		return fmt.Errorf("failed to read definition template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write report definition: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created report definition: %s\n", outputPath)
	fmt.Fprintln(out, "\nBuild the example report with:")
	fmt.Fprintf(out, "  xreport build -c %s\n", outputPath)

	return nil
}
