package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/xreport/internal/htmldoc"
	"github.com/nao1215/xreport/internal/page"
)

// File names of the generated side files.
const (
	ReadmeFile   = "README.md"
	ManifestFile = "manifest.json"
)

// ResultWriter presents a written report in some format.
type ResultWriter interface {
	// Write outputs res to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(res *Result) (int, error)
}

// MultiWriter writes to multiple ResultWriters in order.
// This is useful for printing a summary while also saving a manifest.
type MultiWriter struct {
	writers []ResultWriter
}

// NewMultiWriter creates a ResultWriter that writes to all provided writers.
func NewMultiWriter(writers ...ResultWriter) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs res to all configured writers.
// Returns the total bytes written. Stops on first error encountered.
func (m *MultiWriter) Write(res *Result) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(res)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for result writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// Writer writes reports to disk.
type Writer struct {
	logger   *slog.Logger
	workers  int
	index    bool
	readme   bool
	manifest bool
	pageOpts []page.Option
	now      func() time.Time
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) WriterOption {
	return func(w *Writer) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithWorkers sets how many pages are written concurrently.
func WithWorkers(n int) WriterOption {
	return func(w *Writer) {
		if n > 0 {
			w.workers = n
		}
	}
}

// WithoutIndex disables the generated index page.
func WithoutIndex() WriterOption {
	return func(w *Writer) {
		w.index = false
	}
}

// WithReadme enables or disables README.md.
func WithReadme(enabled bool) WriterOption {
	return func(w *Writer) {
		w.readme = enabled
	}
}

// WithManifest enables or disables manifest.json.
func WithManifest(enabled bool) WriterOption {
	return func(w *Writer) {
		w.manifest = enabled
	}
}

// WithIndexOptions passes page options to the generated index page.
func WithIndexOptions(opts ...page.Option) WriterOption {
	return func(w *Writer) {
		w.pageOpts = append(w.pageOpts, opts...)
	}
}

// NewWriter creates a Writer. By default it writes an index page, a
// README.md and a manifest.json with four workers.
func NewWriter(opts ...WriterOption) *Writer {
	w := &Writer{
		logger:   slog.Default(),
		workers:  4,
		index:    true,
		readme:   true,
		manifest: true,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteAll writes every page of r, the stylesheet and the side files into
// r.Dir. Pages are written concurrently; each page is still written by
// exactly one goroutine. The first page error cancels the remaining pages.
func (w *Writer) WriteAll(ctx context.Context, r *Report) (*Result, error) {
	start := w.now()

	if err := os.MkdirAll(r.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}
	css := filepath.Join(r.Dir, htmldoc.DefaultStylesheet)
	if err := os.WriteFile(css, htmldoc.Stylesheet, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write stylesheet: %w", err)
	}

	pages := r.Pages()
	if w.index {
		pages = append(pages, NewIndexPage(r, w.pageOpts...))
	}

	w.logger.Info("writing report",
		"report", r.Name,
		"pages", len(pages),
		"workers", w.workers,
	)

	results := make([]PageResult, len(pages))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.workers)
	for i, pg := range pages {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			path, err := pg.WriteFile(r.Dir)
			if err != nil {
				return err
			}
			res, err := pageResult(pg, path)
			if err != nil {
				return err
			}
			results[i] = res

			w.logger.Debug("page written",
				"page", pg.Name(),
				"pictures", len(res.Pictures),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		Name:      r.Name,
		Title:     r.Title,
		Dir:       r.Dir,
		Pages:     results,
		CreatedAt: r.CreatedAt,
	}
	res.Elapsed = w.now().Sub(start)

	if w.readme {
		if err := writeSideFile(filepath.Join(r.Dir, ReadmeFile), func(f io.Writer) ResultWriter {
			return NewMarkdownWriter(f)
		}, res); err != nil {
			return nil, err
		}
	}
	if w.manifest {
		if err := writeSideFile(filepath.Join(r.Dir, ManifestFile), func(f io.Writer) ResultWriter {
			return NewJSONWriter(f, WithPrettyPrint())
		}, res); err != nil {
			return nil, err
		}
	}

	w.logger.Info("report written",
		"report", r.Name,
		"dir", r.Dir,
		"elapsed", res.Elapsed,
	)
	return res, nil
}

// pageResult stats the files written for pg.
func pageResult(pg *page.Page, path string) (PageResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return PageResult{}, fmt.Errorf("failed to stat page: %w", err)
	}
	res := PageResult{
		Name:     pg.Name(),
		Title:    pg.Title(),
		File:     pg.FileName(),
		Size:     info.Size(),
		Pictures: pg.PictureFiles(),
	}
	for _, pf := range res.Pictures {
		for _, p := range []string{pf.Path, pf.SVGPath} {
			if p == "" {
				continue
			}
			if fi, err := os.Stat(p); err == nil {
				res.PictureSize += fi.Size()
			}
		}
	}
	return res, nil
}

func writeSideFile(path string, newWriter func(io.Writer) ResultWriter, res *Result) (err error) {
	f, err := os.Create(path) //nolint:gosec // report directory is chosen by the user
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(path), err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if _, err := newWriter(f).Write(res); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
