package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/xreport/internal/catalog"
	"github.com/nao1215/xreport/internal/config"
	"github.com/nao1215/xreport/internal/server"
)

// shutdownTimeout bounds the graceful shutdown of the report server.
const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [report-dir]",
		Short: "Serve reports over HTTP",
		Long: `Serve starts a local HTTP server for written reports.

The given directory is served at "/". Recorded builds are served under
"/builds/<id>/" and listed as JSON at "/api/builds". With --latest the
newest build of the named report is served at "/" instead of a directory.

Examples:
  # Serve ./report at http://127.0.0.1:8080/
  xreport serve report

  # Serve the newest "weekly" build on another port
  xreport serve --latest weekly --addr 127.0.0.1:9000`,
		Args: cobra.MaximumNArgs(1),
		RunE: runServeCmd,
	}

	cmd.Flags().String("addr", config.DefaultServeAddr, "Listen address")
	cmd.Flags().String("latest", "", "Serve the newest build of this report at /")
	cmd.Flags().String("db-dir", "", "Catalog directory (default: XDG data directory)")
	cmd.Flags().Bool("no-db", false, "Do not serve builds from the catalog")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))

	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return err
	}
	latest, err := cmd.Flags().GetString("latest")
	if err != nil {
		return err
	}
	noDB, err := cmd.Flags().GetBool("no-db")
	if err != nil {
		return err
	}

	var root string
	if len(args) == 1 {
		root = args[0]
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			return fmt.Errorf("report directory not found: %s", root)
		}
	}
	if root != "" && latest != "" {
		return errors.New("give either a report directory or --latest, not both")
	}

	opts := []server.Option{server.WithLogger(logger)}

	if !noDB {
		cat, err := openCatalog(cmd)
		switch {
		case errors.Is(err, errNoCatalog):
			logger.Debug("no catalog, serving without builds")
		case err != nil:
			return err
		default:
			defer cat.Close()
			opts = append(opts, server.WithBuildStore(cat))

			if latest != "" {
				b, err := cat.LatestBuild(cmd.Context(), latest)
				if err != nil {
					return err
				}
				root = b.Dir
			}
		}
	}
	if latest != "" && root == "" {
		return fmt.Errorf("%w: %s", catalog.ErrBuildNotFound, latest)
	}
	if root != "" {
		opts = append(opts, server.WithRoot(root))
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.New(opts...),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return serve(cmd.Context(), httpServer, logger, func(url string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Serving reports at %s (Ctrl+C to stop)\n", url)
	})
}

// serve runs srv until ctx is cancelled or an interrupt arrives.
func serve(ctx context.Context, srv *http.Server, logger *slog.Logger, started func(url string)) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting report server", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()
	started("http://" + srv.Addr + "/")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down report server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
