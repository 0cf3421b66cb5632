package htmldoc

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func render(t *testing.T, d *Document) string {
	t.Helper()
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return buf.String()
}

func TestNew(t *testing.T) {
	t.Parallel()

	generated := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	d := New("GSEA <Report>", Chrome{
		Stylesheet:  "style.css",
		IndexHref:   "index.html",
		GeneratedAt: generated,
	})
	out := render(t, d)

	t.Run("starts with doctype", func(t *testing.T) {
		t.Parallel()
		if !strings.HasPrefix(out, "<!DOCTYPE html>") {
			t.Errorf("expected doctype, got %q", out[:min(len(out), 30)])
		}
	})

	t.Run("escapes title", func(t *testing.T) {
		t.Parallel()
		if !strings.Contains(out, "<title>GSEA &lt;Report&gt;</title>") {
			t.Errorf("expected escaped title in %s", out)
		}
	})

	t.Run("links stylesheet", func(t *testing.T) {
		t.Parallel()
		if !strings.Contains(out, `href="style.css"`) {
			t.Errorf("expected stylesheet link in %s", out)
		}
	})

	t.Run("has navigation", func(t *testing.T) {
		t.Parallel()
		if !strings.Contains(out, `<a href="index.html">Home</a>`) {
			t.Errorf("expected home link in %s", out)
		}
		if !strings.Contains(out, `<a href="./">Report folder</a>`) {
			t.Errorf("expected folder link in %s", out)
		}
	})

	t.Run("has footer with timestamp", func(t *testing.T) {
		t.Parallel()
		if !strings.Contains(out, "Generated by xreport on 2024-03-01 12:00:00 UTC") {
			t.Errorf("expected footer in %s", out)
		}
	})
}

func TestNew_MinimalChrome(t *testing.T) {
	t.Parallel()

	out := render(t, New("t", Chrome{}))
	if strings.Contains(out, "stylesheet") {
		t.Error("expected no stylesheet link")
	}
	if strings.Contains(out, "Home") {
		t.Error("expected no home link")
	}
	if !strings.Contains(out, "Generated by xreport<") {
		t.Errorf("expected footer without timestamp in %s", out)
	}
}

func TestDocument_AppendBody(t *testing.T) {
	t.Parallel()

	d := New("t", DefaultChrome())
	d.AppendBody(Div("first", Text("one")))
	d.AppendBody(Div("second", Text("two")))

	out := render(t, d)
	first := strings.Index(out, "one")
	second := strings.Index(out, "two")
	footer := strings.Index(out, "Generated by")
	if first < 0 || second < 0 || footer < 0 {
		t.Fatalf("missing content in %s", out)
	}
	if !(first < second && second < footer) {
		t.Errorf("expected blocks in call order before footer, got %d %d %d", first, second, footer)
	}
}

func TestDocument_AppendRaw(t *testing.T) {
	t.Parallel()

	d := New("t", DefaultChrome())
	d.AppendRaw(`<script>var x = "<b>";</script>`)
	out := render(t, d)
	if !strings.Contains(out, `<script>var x = "<b>";</script>`) {
		t.Errorf("expected raw markup unescaped in %s", out)
	}
}

func TestDocument_RenderParses(t *testing.T) {
	t.Parallel()

	d := New("t", DefaultChrome())
	d.AppendBody(Div(ClassText, Paragraph("hello")))
	out := render(t, d)

	root, err := html.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if len(FindAll(root, atom.Body)) != 1 {
		t.Error("expected exactly one body")
	}
	paras := FindAll(root, atom.P)
	if len(paras) != 1 || TextContent(paras[0]) != "hello" {
		t.Errorf("expected one paragraph with text, got %d", len(paras))
	}
}

func TestDocument_Accessors(t *testing.T) {
	t.Parallel()

	d := New("t", DefaultChrome())
	if d.Root().Type != html.DocumentNode {
		t.Error("expected document node root")
	}
	if d.Head().DataAtom != atom.Head {
		t.Error("expected head element")
	}
	if d.Body().DataAtom != atom.Body {
		t.Error("expected body element")
	}
}
