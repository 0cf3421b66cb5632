package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/xreport/internal/config"
	"github.com/nao1215/xreport/internal/page"
	"github.com/nao1215/xreport/internal/report"
)

// Builder creates the pages of a report definition concurrently.
type Builder struct {
	def *config.Definition

	// dir is the output directory pictures and tables are written to.
	dir string

	// concurrency is the maximum number of pages built at once.
	concurrency int

	width  int
	height int
	svg    bool

	// strict makes step failures abort the build.
	strict bool

	logger   *slog.Logger
	pageOpts []page.Option
	now      func() time.Time
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithBuilderLogger sets the logger used by the builder, its pipelines
// and its pages.
func WithBuilderLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of pages built at once.
func WithConcurrency(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithChartSize sets the default picture dimensions.
func WithChartSize(width, height int) BuilderOption {
	return func(b *Builder) {
		if width > 0 && height > 0 {
			b.width, b.height = width, height
		}
	}
}

// WithSVG requests SVG renditions for sections that do not decide themselves.
func WithSVG(enabled bool) BuilderOption {
	return func(b *Builder) {
		b.svg = enabled
	}
}

// WithStrict makes a failing section abort the build instead of showing
// an error block.
func WithStrict(strict bool) BuilderOption {
	return func(b *Builder) {
		b.strict = strict
	}
}

// WithPageOptions passes options to every page the builder creates.
func WithPageOptions(opts ...page.Option) BuilderOption {
	return func(b *Builder) {
		b.pageOpts = append(b.pageOpts, opts...)
	}
}

// NewBuilder creates a Builder for def writing pictures into dir.
func NewBuilder(def *config.Definition, dir string, opts ...BuilderOption) *Builder {
	b := &Builder{
		def:         def,
		dir:         dir,
		concurrency: config.DefaultWorkers,
		width:       config.DefaultChartWidth,
		height:      config.DefaultChartHeight,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = slog.Default()
	}

	return b
}

// Build creates every page of the definition and returns the report.
// Pages are built concurrently but appear in definition order.
func (b *Builder) Build(ctx context.Context) (*report.Report, error) {
	if err := b.def.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(b.dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	r := report.New(b.def.ReportName(), b.def.ReportTitle(), b.dir)
	r.CreatedAt = b.now()
	r.Description = b.def.Description
	r.Parameters = KeyValTable(b.def.Parameters)

	b.logger.Info("building report",
		"report", r.Name,
		"pages", len(b.def.Pages),
		"concurrency", b.concurrency,
	)
	startTime := time.Now()

	pages := make([]*page.Page, len(b.def.Pages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, pd := range b.def.Pages {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			p, err := b.buildPage(ctx, pd, r.CreatedAt)
			if err != nil {
				return err
			}
			// Each goroutine owns its own slot.
			pages[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, p := range pages {
		if err := r.AddPage(p); err != nil {
			return nil, err
		}
	}

	b.logger.Info("report built",
		"report", r.Name,
		"pictures", len(r.PictureFiles()),
		"elapsed", time.Since(startTime),
	)

	return r, nil
}

// BuildPage creates a single page of the definition.
func (b *Builder) BuildPage(ctx context.Context, pd config.PageDefinition) (*page.Page, error) {
	return b.buildPage(ctx, pd, b.now())
}

func (b *Builder) buildPage(ctx context.Context, pd config.PageDefinition, createdAt time.Time) (*page.Page, error) {
	steps, err := NewSteps(pd.Sections)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", pd.Name, err)
	}

	title := pd.Title
	if title == "" {
		title = pd.Name
	}

	opts := append([]page.Option{
		page.WithLogger(b.logger),
		page.WithGeneratedAt(createdAt),
	}, b.pageOpts...)
	p := page.New(pd.Name, title, opts...)

	pl := New(WithLogger(b.logger), WithContinueOnError(!b.strict))
	pl.AddSteps(steps...)

	job := &Job{
		Def:    b.def,
		Page:   p,
		Dir:    b.dir,
		Width:  b.width,
		Height: b.height,
		SVG:    b.svg,
	}
	if err := pl.Execute(ctx, job); err != nil {
		return nil, err
	}

	b.logger.Debug("page built",
		"page", p.Name(),
		"pictures", len(p.PictureFiles()),
	)
	return p, nil
}
