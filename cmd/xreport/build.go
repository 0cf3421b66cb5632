package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/xreport/internal/catalog"
	"github.com/nao1215/xreport/internal/config"
	"github.com/nao1215/xreport/internal/linkcheck"
	"github.com/nao1215/xreport/internal/pipeline"
	"github.com/nao1215/xreport/internal/report"
)

// NewBuildCmd creates the build command.
func NewBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build an HTML report from a report definition",
		Long: `Build reads a report definition and writes one HTML page per defined
page, plus an index page, a README.md and a manifest.json.

Pictures and plain-text tables are written next to the pages. All links
are relative, so the output directory can be moved or archived as a whole.

Sections that cannot be built (a missing data file, a ragged table) are
shown as error blocks on their page. Use --strict to fail instead.

Examples:
  # Build xreport.yaml from the current directory into ./report
  xreport build

  # Use a definition elsewhere and a custom output directory
  xreport build -c analysis/xreport.yaml -o out/weekly

  # Also write SVG files for every picture
  xreport build --svg

  # Print the manifest as JSON instead of the summary
  xreport build --json

Definition file (xreport.yaml) example:
  name: weekly
  title: Weekly expression report
  pages:
    - name: expression
      title: Expression
      sections:
        - type: table
          title: Top genes
          file: data/top.tsv
          plainText: true
        - type: heatmap
          title: Expression by sample
          file: data/matrix.tsv`,
		Args: cobra.NoArgs,
		RunE: runBuildCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Report definition path (default: xreport.yaml in current or config directory)")
	cmd.Flags().StringP("output", "o", config.DefaultOutputDir,
		"Output directory (created if needed)")
	cmd.Flags().Bool("svg", false,
		"Write an SVG rendition next to every PNG picture")
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers,
		"Number of pages built and written concurrently")
	cmd.Flags().Int("width", config.DefaultChartWidth,
		"Default chart width in pixels")
	cmd.Flags().Int("height", config.DefaultChartHeight,
		"Default chart height in pixels")
	cmd.Flags().Bool("strict", false,
		"Fail the build when a section cannot be built")
	cmd.Flags().Bool("no-db", false,
		"Do not record the build in the catalog")
	cmd.Flags().String("db-dir", "",
		"Catalog directory (default: XDG data directory)")
	cmd.Flags().BoolP("json", "j", false,
		"Print the manifest as JSON instead of the summary")

	return cmd
}

// runBuildCmd executes the build command.
func runBuildCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	var out report.ResultWriter = report.NewSummaryWriter(cmd.OutOrStdout())
	if jsonOutput {
		out = report.NewJSONWriter(cmd.OutOrStdout(), report.WithPrettyPrint())
	}

	_, err = runBuild(ctx, cfg, logger, out)
	return err
}

// buildConfig creates a Config from cobra command flags and loads the
// report definition.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg.OutputDir, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.SVG, err = cmd.Flags().GetBool("svg")
	if err != nil {
		return nil, err
	}

	cfg.Workers, err = cmd.Flags().GetInt("workers")
	if err != nil {
		return nil, err
	}

	cfg.ChartWidth, err = cmd.Flags().GetInt("width")
	if err != nil {
		return nil, err
	}

	cfg.ChartHeight, err = cmd.Flags().GetInt("height")
	if err != nil {
		return nil, err
	}

	cfg.Strict, err = cmd.Flags().GetBool("strict")
	if err != nil {
		return nil, err
	}

	noDB, err := cmd.Flags().GetBool("no-db")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noDB

	if err := applyDBDir(cmd, cfg); err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// An explicit path must exist; otherwise search the default locations.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath == "" {
		if cfg.ConfigFilePath != "" {
			return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
		}
		return nil, fmt.Errorf("%w: run 'xreport init' to create %s", config.ErrConfigNotFound, config.DefaultConfigFile)
	}

	cfg.Definition, err = config.LoadDefinition(configPath)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDBDir sets cfg.DBDir from the --db-dir flag when it is given.
func applyDBDir(cmd *cobra.Command, cfg *config.Config) error {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}
	return nil
}

// runBuild builds, writes and records the report described by cfg.
func runBuild(ctx context.Context, cfg *config.Config, logger *slog.Logger, out report.ResultWriter) (*report.Result, error) {
	logger.Info("starting build",
		"definition", cfg.Definition.ReportName(),
		"output", cfg.OutputDir,
		"workers", cfg.Workers,
	)

	builder := pipeline.NewBuilder(cfg.Definition, cfg.OutputDir,
		pipeline.WithBuilderLogger(logger),
		pipeline.WithConcurrency(cfg.Workers),
		pipeline.WithChartSize(cfg.ChartWidth, cfg.ChartHeight),
		pipeline.WithSVG(cfg.SVG),
		pipeline.WithStrict(cfg.Strict),
	)
	r, err := builder.Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}

	writer := report.NewWriter(
		report.WithLogger(logger),
		report.WithWorkers(cfg.Workers),
	)
	res, err := writer.WriteAll(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}

	checkLinks(ctx, res.Dir, logger)

	if cfg.SaveToDB {
		if err := saveBuild(ctx, cfg.DBDir, res, logger); err != nil {
			// The report is on disk; a catalog failure only loses the record.
			logger.Error("failed to record build", "error", err)
		}
	}

	if out != nil {
		if _, err := out.Write(res); err != nil {
			return res, fmt.Errorf("failed to print result: %w", err)
		}
	}
	return res, nil
}

// checkLinks logs every broken link of the written report.
func checkLinks(ctx context.Context, dir string, logger *slog.Logger) {
	lc, err := linkcheck.New(linkcheck.WithLogger(logger)).Check(ctx, dir)
	if err != nil {
		logger.Warn("link check failed", "error", err)
		return
	}
	for _, b := range lc.Broken {
		logger.Warn("broken link", "page", b.Page, "target", b.Target)
	}
}

// saveBuild records res in the catalog in dbDir.
func saveBuild(ctx context.Context, dbDir string, res *report.Result, logger *slog.Logger) (err error) {
	cat, err := catalog.Open(dbDir, catalog.DefaultOptions())
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, cat.Close())
	}()

	id, err := cat.RecordBuild(ctx, res)
	if err != nil {
		return err
	}

	logger.Info("build recorded", "id", id, "catalog", cat.Path())
	return nil
}
