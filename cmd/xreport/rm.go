package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/xreport/internal/catalog"
)

// errEmptyBuildID is returned for an empty ID prefix, which would match
// every build.
var errEmptyBuildID = errors.New("build id must not be empty")

// NewRmCmd creates the rm command.
func NewRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <build-id>...",
		Short: "Remove builds from the catalog",
		Long: `Remove deletes builds from the catalog. A unique prefix of the ID as shown
by "xreport ls" is enough.

The report files are kept unless --files is given.

Examples:
  # Forget a build
  xreport rm 3f2a9c1e

  # Forget a build and delete its output directory
  xreport rm --files 3f2a9c1e`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRmCmd,
	}

	cmd.Flags().Bool("files", false, "Also delete the report directory")
	cmd.Flags().String("db-dir", "", "Catalog directory (default: XDG data directory)")

	return cmd
}

// runRmCmd executes the rm command.
func runRmCmd(cmd *cobra.Command, args []string) error {
	removeFiles, err := cmd.Flags().GetBool("files")
	if err != nil {
		return err
	}
	for _, prefix := range args {
		if strings.TrimSpace(prefix) == "" {
			return errEmptyBuildID
		}
	}

	cat, err := openCatalog(cmd)
	if errors.Is(err, errNoCatalog) {
		return fmt.Errorf("%w: %s", catalog.ErrBuildNotFound, args[0])
	}
	if err != nil {
		return err
	}
	defer cat.Close()

	ctx := cmd.Context()
	builds, err := cat.ListBuilds(ctx, "", 0)
	if err != nil {
		return err
	}

	// Resolve every prefix before deleting anything.
	matched := make([]*catalog.Build, 0, len(args))
	for _, prefix := range args {
		b, err := matchBuild(builds, prefix)
		if err != nil {
			return err
		}
		matched = append(matched, b)
	}

	for _, b := range matched {
		if err := cat.DeleteBuild(ctx, b.ID); err != nil {
			return err
		}
		if removeFiles {
			if err := os.RemoveAll(b.Dir); err != nil {
				return fmt.Errorf("failed to remove %s: %w", b.Dir, err)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed build %s (%s)\n", shortID(b.ID), b.Name)
	}
	return nil
}

// matchBuild returns the single build whose ID starts with prefix.
func matchBuild(builds []catalog.Build, prefix string) (*catalog.Build, error) {
	if strings.TrimSpace(prefix) == "" {
		return nil, errEmptyBuildID
	}
	var found *catalog.Build
	for i := range builds {
		if !strings.HasPrefix(builds[i].ID, prefix) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("build id %q is ambiguous", prefix)
		}
		found = &builds[i]
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", catalog.ErrBuildNotFound, prefix)
	}
	return found, nil
}
