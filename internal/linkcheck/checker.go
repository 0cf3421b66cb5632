package linkcheck

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/nao1215/xreport/internal/naming"
)

// DefaultEntry is the page the crawl starts at.
const DefaultEntry = "index" + naming.HTML

// BrokenLink is a relative reference whose target does not exist.
type BrokenLink struct {
	// Page is the report-relative path of the page holding the reference.
	Page string `json:"page"`

	// Target is the reference as written in the page.
	Target string `json:"target"`
}

func (b BrokenLink) String() string {
	return b.Page + " -> " + b.Target
}

// Result is the outcome of a check.
type Result struct {
	// Visited lists the pages reached from the entry page, in crawl order.
	Visited []string `json:"visited"`

	// Broken lists references to missing files.
	Broken []BrokenLink `json:"broken,omitempty"`

	// Orphans lists HTML files of the directory that no visited page links to.
	Orphans []string `json:"orphans,omitempty"`

	// External counts absolute links, which are not checked.
	External int `json:"external"`
}

// OK reports whether no broken link was found.
func (r *Result) OK() bool {
	return len(r.Broken) == 0
}

// Checker crawls a report directory.
type Checker struct {
	entry  string
	logger *slog.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithEntry sets the page the crawl starts at.
func WithEntry(name string) Option {
	return func(c *Checker) {
		if name != "" {
			c.entry = name
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Checker.
func New(opts ...Option) *Checker {
	c := &Checker{
		entry:  DefaultEntry,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check crawls dir breadth-first from the entry page.
// Only links to HTML files are followed; all other references are
// checked for existence.
func (c *Checker) Check(ctx context.Context, dir string) (*Result, error) {
	if _, err := os.Stat(filepath.Join(dir, c.entry)); err != nil {
		return nil, fmt.Errorf("entry page %s: %w", c.entry, err)
	}

	result := &Result{}
	visited := map[string]bool{c.entry: true}
	queue := []string{c.entry}

	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		current := queue[0]
		queue = queue[1:]
		result.Visited = append(result.Visited, current)

		links, err := parseFile(filepath.Join(dir, filepath.FromSlash(current)))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", current, err)
		}
		result.External += len(links.External)

		base := path.Dir(current)
		for _, ref := range links.Refs() {
			target := path.Clean(path.Join(base, ref))
			if strings.HasPrefix(target, "../") || target == ".." {
				result.Broken = append(result.Broken, BrokenLink{Page: current, Target: ref})
				continue
			}

			// Directory links, like the "Report folder" entry, are valid.
			info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(target)))
			if err != nil {
				c.logger.Debug("broken link", "page", current, "target", ref)
				result.Broken = append(result.Broken, BrokenLink{Page: current, Target: ref})
				continue
			}
			if info.IsDir() {
				continue
			}

			if path.Ext(target) == naming.HTML && !visited[target] {
				visited[target] = true
				queue = append(queue, target)
			}
		}
	}

	orphans, err := findOrphans(dir, visited)
	if err != nil {
		return nil, err
	}
	result.Orphans = orphans

	return result, nil
}

func parseFile(name string) (*PageLinks, error) {
	f, err := os.Open(name) //nolint:gosec // pages of the checked report
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// findOrphans returns the top-level HTML files of dir not in visited.
func findOrphans(dir string, visited map[string]bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read report directory: %w", err)
	}
	var orphans []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != naming.HTML {
			continue
		}
		if !visited[e.Name()] {
			orphans = append(orphans, e.Name())
		}
	}
	slices.Sort(orphans)
	return orphans, nil
}
