package htmldoc

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func renderNode(t *testing.T, n *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return buf.String()
}

func TestTD(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		color string
		link  string
		want  string
	}{
		{name: "plain", text: "1.5", want: "<td>1.5</td>"},
		{name: "escaped", text: "a<b", want: "<td>a&lt;b</td>"},
		{name: "colored", text: "x", color: "#ff0000", want: `<td style="background-color:#ff0000">x</td>`},
		{name: "linked", text: "TP53", link: "gene_TP53.html", want: `<td><a href="gene_TP53.html">TP53</a></td>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := renderNode(t, TD(tt.text, tt.color, tt.link)); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestCells(t *testing.T) {
	t.Parallel()

	if got := renderNode(t, RichTH("NES")); got != `<th class="richTable">NES</th>` {
		t.Errorf("unexpected th %s", got)
	}
	if got := renderNode(t, LessenTD("3")); got != `<td class="lessen">3</td>` {
		t.Errorf("unexpected lessen td %s", got)
	}
	if got := renderNode(t, EmptyTD()); got != "<td></td>" {
		t.Errorf("unexpected empty td %s", got)
	}
}

func TestTableCaption(t *testing.T) {
	t.Parallel()

	got := renderNode(t, TableCaption("Top sets", Text("\u00a0"), Anchor("sets.tsv", PlainTextLabel)))
	want := "<caption class=\"table\">Top sets\u00a0<a href=\"sets.tsv\">[plain text format]</a></caption>"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestImageDiv(t *testing.T) {
	t.Parallel()

	t.Run("with svg and caption", func(t *testing.T) {
		t.Parallel()
		got := renderNode(t, ImageDiv("p_001.png", "Plot", "A caption", "p_001.svg"))
		if !strings.Contains(got, `<a href="p_001.svg"><img src="p_001.png" alt="Plot" title="Plot"/></a>`) {
			t.Errorf("expected linked image, got %s", got)
		}
		if !strings.Contains(got, "<p>A caption</p>") {
			t.Errorf("expected caption, got %s", got)
		}
	})

	t.Run("png only", func(t *testing.T) {
		t.Parallel()
		got := renderNode(t, ImageDiv("p_001.png", "Plot", "", ""))
		if strings.Contains(got, "<a") || strings.Contains(got, "<p>") {
			t.Errorf("expected bare image, got %s", got)
		}
	})
}

func TestTable(t *testing.T) {
	t.Parallel()

	tbl := Table(1, 4)
	if GetAttr(tbl, "border") != "1" || GetAttr(tbl, "cols") != "4" {
		t.Errorf("unexpected attributes %v", tbl.Attr)
	}
	if GetAttr(Table(0, 0), "cols") != "" {
		t.Error("expected no cols attribute")
	}
}

func TestSetAttr(t *testing.T) {
	t.Parallel()

	n := Element(atom.Td)
	SetAttr(n, "align", "left")
	SetAttr(n, "align", "right")
	if len(n.Attr) != 1 || GetAttr(n, "align") != "right" {
		t.Errorf("expected single replaced attribute, got %v", n.Attr)
	}
}

func TestHasClass(t *testing.T) {
	t.Parallel()

	n := Div("error wide")
	if !HasClass(n, "error") || !HasClass(n, "wide") {
		t.Error("expected both classes")
	}
	if HasClass(n, "err") {
		t.Error("expected no partial match")
	}
}

func TestUL(t *testing.T) {
	t.Parallel()

	got := renderNode(t, UL("a", "b"))
	if got != "<ul><li>a</li><li>b</li></ul>" {
		t.Errorf("unexpected list %s", got)
	}
}

func TestKeyValTable(t *testing.T) {
	t.Parallel()

	kv := NewKeyValTable().
		Add("Permutations", 1000).
		Add("Seed", int64(149)).
		AddLink("Parameters", "rpt", "params.rpt")
	if kv.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", kv.Len())
	}

	tbl := kv.Table()
	rows := FindAll(tbl, atom.Tr)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if TextContent(rows[0]) != "Permutations1000" {
		t.Errorf("unexpected first row %q", TextContent(rows[0]))
	}
	links := FindAll(rows[2], atom.A)
	if len(links) != 1 || GetAttr(links[0], "href") != "params.rpt" {
		t.Error("expected link in last row")
	}

	if kv.Table() == tbl {
		t.Error("expected a fresh table on every call")
	}
}

func TestParseFragment(t *testing.T) {
	t.Parallel()

	nodes, err := ParseFragment("<p>one</p><p>two <em>x</em></p>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}
	if TextContent(nodes[1]) != "two x" {
		t.Errorf("unexpected text %q", TextContent(nodes[1]))
	}
	for _, n := range nodes {
		if n.Parent != nil {
			t.Error("expected detached nodes")
		}
	}
}

func TestStylesheetEmbedded(t *testing.T) {
	t.Parallel()

	if !bytes.Contains(Stylesheet, []byte(".error")) {
		t.Error("expected embedded stylesheet to define .error")
	}
}
