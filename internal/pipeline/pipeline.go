package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nao1215/xreport/internal/config"
	"github.com/nao1215/xreport/internal/page"
)

// Job is the state shared by the steps of one page.
type Job struct {
	// Def is the report definition. Relative files resolve against it.
	Def *config.Definition

	// Page is the page under construction.
	Page *page.Page

	// Dir is the output directory for pictures and plain-text tables.
	Dir string

	// Width and Height are the default picture dimensions.
	Width  int
	Height int

	// SVG is the build-wide SVG setting.
	SVG bool

	// files holds the lower-cased names of side files already written
	// for the page.
	files map[string]struct{}
}

// claimFile reserves a side-file name for the page. A name taken by an
// earlier section gets a numeric suffix before ext.
func (j *Job) claimFile(base, ext string) string {
	if j.files == nil {
		j.files = make(map[string]struct{})
	}
	name := base + ext
	for i := 2; ; i++ {
		key := strings.ToLower(name)
		if _, taken := j.files[key]; !taken {
			j.files[key] = struct{}{}
			return name
		}
		name = fmt.Sprintf("%s_%d%s", base, i, ext)
	}
}

// Step defines the interface that all pipeline steps must implement.
type Step interface {
	// Do adds the step's content to job.Page.
	Do(ctx context.Context, job *Job) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline runs the steps of one page in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether to continue executing steps
	// after one fails. Failures are then shown on the page.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to continue execution
// even when a step fails. The failure becomes an error block on the page.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in sequence against job.
// Cancellation is checked between steps.
func (p *Pipeline) Execute(ctx context.Context, job *Job) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"page", job.Page.Name(),
		)

		if err := step.Do(ctx, job); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"page", job.Page.Name(),
				"error", err,
			)

			if !p.continueOnError {
				return fmt.Errorf("page %s: %s: %w", job.Page.Name(), step.Name(), err)
			}
			job.Page.AddError(fmt.Sprintf("Could not add %s", step.Name()), err)
		}
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
