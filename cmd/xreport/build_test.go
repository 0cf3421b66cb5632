package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/xreport/internal/catalog"
	"github.com/nao1215/xreport/internal/config"
	xlog "github.com/nao1215/xreport/internal/log"
	"github.com/nao1215/xreport/internal/report"
)

const testDefinition = `name: weekly
title: Weekly report
description: Numbers of the week.
parameters:
  - key: Genome
    value: hg38
pages:
  - name: tables
    title: Tables
    sections:
      - type: text
        text: Introduction
      - type: table
        title: Expression
        file: expr.tsv
        plainText: true
  - name: plots
    title: Plots
    sections:
      - type: heatmap
        title: Heat
        file: expr.tsv
      - type: table
        file: missing.tsv
`

const testTSV = "gene\tcontrol\ttreated\nBRCA1\t1.5\t3.25\nTP53\t2\t0.125\n"

// writeDefinition writes the test definition and its data into a new
// directory and returns the definition path.
func writeDefinition(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "expr.tsv"), []byte(testTSV), 0600); err != nil {
		t.Fatalf("failed to write data: %v", err)
	}
	path := filepath.Join(dir, config.DefaultConfigFile)
	if err := os.WriteFile(path, []byte(testDefinition), 0600); err != nil {
		t.Fatalf("failed to write definition: %v", err)
	}
	return path
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestNewBuildCmd(t *testing.T) {
	t.Parallel()

	cmd := NewBuildCmd()
	for _, name := range []string{"config", "output", "svg", "workers", "width", "height", "strict", "no-db", "db-dir", "json"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}
	if def := cmd.Flags().Lookup("output").DefValue; def != config.DefaultOutputDir {
		t.Errorf("expected output default %q, got %q", config.DefaultOutputDir, def)
	}
}

func TestBuildCmd(t *testing.T) {
	t.Parallel()

	t.Run("writes report and records build", func(t *testing.T) {
		t.Parallel()

		outDir := filepath.Join(t.TempDir(), "out")
		dbDir := t.TempDir()

		out, err := execute(t, "build", "-c", writeDefinition(t), "-o", outDir, "--db-dir", dbDir, "--svg")
		if err != nil {
			t.Fatalf("build failed: %v", err)
		}
		if !strings.Contains(out, "Weekly report") {
			t.Errorf("summary should show the title, got:\n%s", out)
		}

		for _, name := range []string{"index.html", "tables.html", "plots.html", "tables_Expression.tsv", report.ReadmeFile, report.ManifestFile} {
			if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
				t.Errorf("expected %s: %v", name, err)
			}
		}

		plots, err := os.ReadFile(filepath.Join(outDir, "plots.html"))
		if err != nil {
			t.Fatalf("failed to read plots page: %v", err)
		}
		if !strings.Contains(string(plots), `<div class="error">`) {
			t.Error("missing data file should produce an error block")
		}

		out, err = execute(t, "check", outDir)
		if err != nil {
			t.Errorf("written report has broken links: %v\n%s", err, out)
		}

		cat, err := catalog.Open(dbDir, catalog.Options{})
		if err != nil {
			t.Fatalf("catalog not created: %v", err)
		}
		defer cat.Close()
		builds, err := cat.ListBuilds(context.Background(), "weekly", 0)
		if err != nil {
			t.Fatalf("ListBuilds() error = %v", err)
		}
		if len(builds) != 1 {
			t.Fatalf("expected 1 recorded build, got %d", len(builds))
		}
		if builds[0].Pages != 3 {
			t.Errorf("expected 3 pages recorded, got %d", builds[0].Pages)
		}
	})

	t.Run("json output", func(t *testing.T) {
		t.Parallel()

		out, err := execute(t, "build", "-c", writeDefinition(t), "-o", t.TempDir(), "--no-db", "--json")
		if err != nil {
			t.Fatalf("build failed: %v", err)
		}

		var m report.Manifest
		if err := json.Unmarshal([]byte(out), &m); err != nil {
			t.Fatalf("output is not a manifest: %v\n%s", err, out)
		}
		if m.Report == nil || m.Report.Name != "weekly" {
			t.Errorf("unexpected manifest: %+v", m)
		}
	})

	t.Run("strict build fails", func(t *testing.T) {
		t.Parallel()

		_, err := execute(t, "build", "-c", writeDefinition(t), "-o", t.TempDir(), "--no-db", "--strict")
		if err == nil {
			t.Fatal("expected strict build to fail")
		}
		if !strings.Contains(err.Error(), "missing.tsv") {
			t.Errorf("error should name the missing file: %v", err)
		}
	})

	t.Run("missing definition", func(t *testing.T) {
		t.Parallel()

		_, err := execute(t, "build", "-c", filepath.Join(t.TempDir(), "none.yaml"), "--no-db")
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid workers", func(t *testing.T) {
		t.Parallel()

		_, err := execute(t, "build", "-c", writeDefinition(t), "-o", t.TempDir(), "--no-db", "-w", "0")
		if !errors.Is(err, config.ErrInvalidWorkers) {
			t.Errorf("expected ErrInvalidWorkers, got %v", err)
		}
	})
}

func TestLsAndRmCmd(t *testing.T) {
	t.Parallel()

	dbDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")

	t.Run("empty catalog", func(t *testing.T) {
		t.Parallel()

		out, err := execute(t, "ls", "--db-dir", t.TempDir())
		if err != nil {
			t.Fatalf("ls failed: %v", err)
		}
		if !strings.Contains(out, "No builds recorded") {
			t.Errorf("unexpected output: %q", out)
		}
	})

	if _, err := execute(t, "build", "-c", writeDefinition(t), "-o", outDir, "--db-dir", dbDir); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	out, err := execute(t, "ls", "--db-dir", dbDir)
	if err != nil {
		t.Fatalf("ls failed: %v", err)
	}
	if !strings.Contains(out, "weekly") || !strings.Contains(out, "PAGES") {
		t.Errorf("unexpected ls output:\n%s", out)
	}

	out, err = execute(t, "ls", "weekly", "--db-dir", dbDir, "--json")
	if err != nil {
		t.Fatalf("ls --json failed: %v", err)
	}
	var builds []catalog.Build
	if err := json.Unmarshal([]byte(out), &builds); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(builds) != 1 {
		t.Fatalf("expected 1 build, got %d", len(builds))
	}

	if _, err := execute(t, "rm", "no-such-build", "--db-dir", dbDir); !errors.Is(err, catalog.ErrBuildNotFound) {
		t.Errorf("expected ErrBuildNotFound, got %v", err)
	}

	if _, err := execute(t, "rm", "", "--files", "--db-dir", dbDir); !errors.Is(err, errEmptyBuildID) {
		t.Errorf("expected errEmptyBuildID, got %v", err)
	}
	if _, err := execute(t, "rm", shortID(builds[0].ID), "no-such-build", "--files", "--db-dir", dbDir); !errors.Is(err, catalog.ErrBuildNotFound) {
		t.Errorf("expected ErrBuildNotFound, got %v", err)
	}
	if _, err := os.Stat(outDir); err != nil {
		t.Fatalf("report directory should survive rejected rm: %v", err)
	}

	out, err = execute(t, "rm", shortID(builds[0].ID), "--files", "--db-dir", dbDir)
	if err != nil {
		t.Fatalf("rm failed: %v", err)
	}
	if !strings.Contains(out, "Removed build") {
		t.Errorf("unexpected rm output: %q", out)
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Error("--files should delete the report directory")
	}
}

func TestMatchBuild(t *testing.T) {
	t.Parallel()

	builds := []catalog.Build{{ID: "abc123"}, {ID: "abd456"}}

	if b, err := matchBuild(builds, "abc"); err != nil || b.ID != "abc123" {
		t.Errorf("matchBuild(abc) = %v, %v", b, err)
	}
	if _, err := matchBuild(builds, "ab"); err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Errorf("expected ambiguous error, got %v", err)
	}
	if _, err := matchBuild(builds, "zzz"); !errors.Is(err, catalog.ErrBuildNotFound) {
		t.Errorf("expected ErrBuildNotFound, got %v", err)
	}
	if _, err := matchBuild(builds[:1], ""); !errors.Is(err, errEmptyBuildID) {
		t.Errorf("expected errEmptyBuildID for an empty prefix, got %v", err)
	}
}

func TestCheckCmd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	page := `<a href="index.html">self</a><img src="missing.png">`
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(page), 0600); err != nil {
		t.Fatalf("failed to write page: %v", err)
	}

	out, err := execute(t, "check", dir)
	if err == nil || !strings.Contains(err.Error(), "1 broken links") {
		t.Errorf("expected broken link error, got %v", err)
	}
	if !strings.Contains(out, "broken: index.html -> missing.png") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestServeCmd(t *testing.T) {
	t.Parallel()

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := execute(t, "serve", filepath.Join(t.TempDir(), "none"), "--no-db")
		if err == nil || !strings.Contains(err.Error(), "not found") {
			t.Errorf("expected not found error, got %v", err)
		}
	})

	t.Run("directory and latest are exclusive", func(t *testing.T) {
		t.Parallel()

		_, err := execute(t, "serve", t.TempDir(), "--latest", "weekly", "--no-db")
		if err == nil {
			t.Error("expected error")
		}
	})

	t.Run("latest without catalog", func(t *testing.T) {
		t.Parallel()

		_, err := execute(t, "serve", "--latest", "weekly", "--no-db")
		if !errors.Is(err, catalog.ErrBuildNotFound) {
			t.Errorf("expected ErrBuildNotFound, got %v", err)
		}
	})
}

func TestServeShutdown(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	var url string
	err := serve(ctx, srv, xlog.NewLogger(&bytes.Buffer{}, false), func(u string) {
		url = u
		cancel()
	})
	if err != nil {
		t.Fatalf("serve() error = %v", err)
	}
	if url != "http://127.0.0.1:0/" {
		t.Errorf("unexpected url %q", url)
	}
}
