package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nao1215/xreport/internal/catalog"
	"github.com/nao1215/xreport/internal/config"
	"github.com/nao1215/xreport/internal/report"
)

// shortIDLength is the number of build ID characters shown by ls.
const shortIDLength = 8

// NewLsCmd creates the ls command.
func NewLsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls [report-name]",
		Short: "List recorded report builds",
		Long: `List shows the builds recorded in the catalog, newest first.

Examples:
  # List every build
  xreport ls

  # List the last five builds of the "weekly" report
  xreport ls weekly -n 5

  # Machine-readable output
  xreport ls --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLsCmd,
	}

	cmd.Flags().IntP("limit", "n", 0, "Maximum number of builds to list (0 lists all)")
	cmd.Flags().BoolP("json", "j", false, "Output builds as JSON")
	cmd.Flags().String("db-dir", "", "Catalog directory (default: XDG data directory)")

	return cmd
}

// runLsCmd executes the ls command.
func runLsCmd(cmd *cobra.Command, args []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	var name string
	if len(args) == 1 {
		name = args[0]
	}

	cat, err := openCatalog(cmd)
	if errors.Is(err, errNoCatalog) {
		fmt.Fprintln(cmd.OutOrStdout(), "No builds recorded yet.")
		return nil
	}
	if err != nil {
		return err
	}
	defer cat.Close()

	builds, err := cat.ListBuilds(cmd.Context(), name, limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		if builds == nil {
			builds = []catalog.Build{}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(builds)
	}

	if len(builds) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No builds recorded yet.")
		return nil
	}
	_, err = io.WriteString(cmd.OutOrStdout(), renderBuilds(builds, report.DefaultStyles()))
	return err
}

// renderBuilds formats builds as a terminal table.
func renderBuilds(builds []catalog.Build, s report.Styles) string {
	rows := make([][]string, 0, len(builds))
	for _, b := range builds {
		rows = append(rows, []string{
			shortID(b.ID),
			b.Name,
			humanize.Time(b.CreatedAt),
			strconv.Itoa(b.Pages),
			humanize.Comma(int64(b.Pictures)),
			humanize.Bytes(uint64(max(b.Size, 0))),
			b.Dir,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			return s.TableCell
		}).
		Headers("ID", "NAME", "CREATED", "PAGES", "PICTURES", "SIZE", "DIRECTORY").
		Rows(rows...)
	return t.String() + "\n"
}

// shortID abbreviates a build ID for display.
func shortID(id string) string {
	if len(id) > shortIDLength {
		return id[:shortIDLength]
	}
	return id
}

// errNoCatalog is returned by openCatalog when no build was ever recorded.
var errNoCatalog = errors.New("no catalog")

// openCatalog opens the existing catalog selected by the --db-dir flag.
func openCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	cfg := config.NewConfig()
	if err := applyDBDir(cmd, cfg); err != nil {
		return nil, err
	}

	if _, err := os.Stat(filepath.Join(cfg.DBDir, catalog.FileName)); os.IsNotExist(err) {
		return nil, errNoCatalog
	}
	return catalog.Open(cfg.DBDir, catalog.Options{EnableWAL: true})
}
