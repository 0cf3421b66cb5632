package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/xreport/internal/htmldoc"
	"github.com/nao1215/xreport/internal/model"
	"github.com/nao1215/xreport/internal/page"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestReport creates a report with two pages, one with a chart.
func createTestReport(t *testing.T) *Report {
	t.Helper()

	dir := t.TempDir()
	r := New("gsea", "GSEA Report", dir)
	r.CreatedAt = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	r.Description = "Results of the **weighted** run."
	r.Parameters.Add("nperm", 1000)

	summary := page.New("summary", "Summary", page.WithLogger(quietLogger()))
	summary.AddText("Two gene sets were enriched.")
	summary.AddChart(&model.Chart{
		Title:  "Running score",
		Series: []model.Series{{Values: []float64{0, 0.4, 0.1}}},
	}, 200, 150, dir, false)

	details := page.New("details", "Details", page.WithLogger(quietLogger()))
	details.AddKeyValueTable("Set", htmldoc.NewKeyValTable().Add("size", 42))

	for _, p := range []*page.Page{summary, details} {
		if err := r.AddPage(p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	return r
}

// TestReport tests page bookkeeping.
func TestReport(t *testing.T) {
	t.Parallel()

	t.Run("keeps page order", func(t *testing.T) {
		t.Parallel()

		r := createTestReport(t)
		pages := r.Pages()
		if len(pages) != 2 || pages[0].Name() != "summary" || pages[1].Name() != "details" {
			t.Errorf("unexpected pages %v", pages)
		}
	})

	t.Run("rejects duplicate pages", func(t *testing.T) {
		t.Parallel()

		r := createTestReport(t)
		err := r.AddPage(page.New("summary", "Again"))
		if !errors.Is(err, ErrDuplicatePage) {
			t.Errorf("expected ErrDuplicatePage, got %v", err)
		}
	})

	t.Run("rejects index page name", func(t *testing.T) {
		t.Parallel()

		r := New("r", "R", t.TempDir())
		err := r.AddPage(page.New(IndexPageName, "Index"))
		if !errors.Is(err, ErrReservedPageName) {
			t.Errorf("expected ErrReservedPageName, got %v", err)
		}
	})

	t.Run("collects pictures", func(t *testing.T) {
		t.Parallel()

		r := createTestReport(t)
		if n := len(r.PictureFiles()); n != 1 {
			t.Errorf("expected 1 picture, got %d", n)
		}
	})
}

// TestNewIndexPage tests the generated landing page.
func TestNewIndexPage(t *testing.T) {
	t.Parallel()

	r := createTestReport(t)
	idx := NewIndexPage(r, page.WithLogger(quietLogger()))
	if idx.Name() != IndexPageName {
		t.Errorf("expected index name, got %s", idx.Name())
	}

	var buf closeBuffer
	if err := idx.Write(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`<a href="summary.html">Summary</a>`,
		`<a href="details.html">Details</a>`,
		"<strong>weighted</strong>",
		"nperm",
		"2024-05-06 07:08:09 UTC",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected index to contain %q", want)
		}
	}
}

// TestWriter_WriteAll tests writing a report directory.
func TestWriter_WriteAll(t *testing.T) {
	t.Parallel()

	t.Run("writes pages and side files", func(t *testing.T) {
		t.Parallel()

		r := createTestReport(t)
		res, err := NewWriter(WithLogger(quietLogger()), WithWorkers(2)).WriteAll(context.Background(), r)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, name := range []string{"summary.html", "details.html", "index.html", "xreport.css", ReadmeFile, ManifestFile} {
			if _, err := os.Stat(filepath.Join(r.Dir, name)); err != nil {
				t.Errorf("expected %s to exist: %v", name, err)
			}
		}

		if len(res.Pages) != 3 {
			t.Fatalf("expected 3 pages, got %d", len(res.Pages))
		}
		if res.Pages[0].Name != "summary" || res.Pages[2].Name != IndexPageName {
			t.Errorf("unexpected page order: %s, %s", res.Pages[0].Name, res.Pages[2].Name)
		}
		if res.PictureCount() != 1 {
			t.Errorf("expected 1 picture, got %d", res.PictureCount())
		}
		if res.Pages[0].PictureSize == 0 {
			t.Error("expected picture size to be counted")
		}
		if res.TotalSize() <= res.Pages[0].Size {
			t.Error("expected total size to include all pages")
		}
	})

	t.Run("without index and side files", func(t *testing.T) {
		t.Parallel()

		r := createTestReport(t)
		res, err := NewWriter(
			WithLogger(quietLogger()),
			WithoutIndex(),
			WithReadme(false),
			WithManifest(false),
		).WriteAll(context.Background(), r)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Pages) != 2 {
			t.Errorf("expected 2 pages, got %d", len(res.Pages))
		}
		for _, name := range []string{"index.html", ReadmeFile, ManifestFile} {
			if _, err := os.Stat(filepath.Join(r.Dir, name)); !os.IsNotExist(err) {
				t.Errorf("expected %s not to exist", name)
			}
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewWriter(WithLogger(quietLogger())).WriteAll(ctx, createTestReport(t))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("unwritable directory", func(t *testing.T) {
		t.Parallel()

		file := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(file, nil, 0o600); err != nil {
			t.Fatal(err)
		}
		r := New("r", "R", filepath.Join(file, "sub"))
		if _, err := NewWriter(WithLogger(quietLogger())).WriteAll(context.Background(), r); err == nil {
			t.Error("expected error")
		}
	})
}

// writtenResult writes the test report and returns its result.
func writtenResult(t *testing.T) *Result {
	t.Helper()

	res, err := NewWriter(
		WithLogger(quietLogger()),
		WithReadme(false),
		WithManifest(false),
	).WriteAll(context.Background(), createTestReport(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return res
}

// TestMarkdownWriter tests the README writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n, err := NewMarkdownWriter(&buf).Write(writtenResult(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n == 0 {
		t.Error("expected bytes written")
	}

	output := buf.String()
	for _, want := range []string{
		"# GSEA Report",
		"## Pages",
		"[Summary](summary.html)",
		"## Pictures",
		"summary_Running_score_001.png",
		"Generated by xreport",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
	if strings.Contains(output, "mermaid") {
		t.Error("expected no pie chart with a single illustrated page")
	}
}

// TestJSONWriter tests the manifest writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes valid JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(writtenResult(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var m Manifest
		if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
			t.Fatalf("failed to parse JSON: %v", err)
		}
		if m.Generator != "xreport" {
			t.Errorf("expected generator xreport, got %s", m.Generator)
		}
		if m.Report.Name != "gsea" || len(m.Report.Pages) != 3 {
			t.Errorf("unexpected manifest %+v", m.Report)
		}
	})

	t.Run("pretty print", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(writtenResult(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"report\"") {
			t.Error("expected indented output")
		}
	})
}

// TestSummaryWriter tests the terminal summary.
func TestSummaryWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewSummaryWriter(&buf).Write(writtenResult(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"GSEA Report", "summary.html", "index.html", "PICTURES"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

// TestMultiWriter tests writing to several writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	res := writtenResult(t)

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var md, js bytes.Buffer
		n, err := NewMultiWriter(NewMarkdownWriter(&md), NewJSONWriter(&js)).Write(res)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if md.Len() == 0 || js.Len() == 0 {
			t.Error("expected both writers to receive output")
		}
		if n < js.Len() {
			t.Errorf("expected total of at least %d bytes, got %d", js.Len(), n)
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var js bytes.Buffer
		_, err := NewMultiWriter(NewJSONWriter(errWriter{}), NewJSONWriter(&js)).Write(res)
		if err == nil {
			t.Error("expected error")
		}
		if js.Len() != 0 {
			t.Error("expected second writer to be skipped")
		}
	})
}

type closeBuffer struct {
	bytes.Buffer
}

func (c *closeBuffer) Close() error { return nil }

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, errors.New("write failed") }
