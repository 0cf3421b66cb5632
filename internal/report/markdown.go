package report

import (
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/xreport/internal/htmldoc"
)

// MarkdownWriter outputs results as the README.md of a report directory.
// Links are relative, so the README works wherever the directory is
// copied to, including repository browsers that render markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs res in Markdown format.
func (w *MarkdownWriter) Write(res *Result) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, res)
	w.writePages(md, res)
	w.writePictures(md, res)
	w.writeFooter(md, res)

	return len(md.String()), md.Build()
}

// writeHeader writes the report title and build information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, res *Result) {
	md.H1(res.Title)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Report", "`" + res.Name + "`"},
			{"Created", res.CreatedAt.Format("2006-01-02 15:04:05 MST")},
			{"Pages", strconv.Itoa(len(res.Pages))},
			{"Pictures", strconv.Itoa(res.PictureCount())},
			{"Size", humanize.Bytes(uint64(max(res.TotalSize(), 0)))},
		},
	})
	md.PlainText("")
}

// writePages writes a table linking to every page.
func (w *MarkdownWriter) writePages(md *markdown.Markdown, res *Result) {
	md.H2("Pages")
	md.PlainText("")

	rows := make([][]string, len(res.Pages))
	for i, p := range res.Pages {
		rows[i] = []string{
			markdown.Link(p.Title, p.File),
			strconv.Itoa(len(p.Pictures)),
			humanize.Bytes(uint64(max(p.Size, 0))),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Page", "Pictures", "Size"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writePictures lists pictures per page, with a mermaid pie chart of
// their distribution when more than one page has pictures.
func (w *MarkdownWriter) writePictures(md *markdown.Markdown, res *Result) {
	if res.PictureCount() == 0 {
		return
	}

	md.H2("Pictures")
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Pictures per page"),
		piechart.WithShowData(true),
	)
	var withPictures int
	for _, p := range res.Pages {
		if len(p.Pictures) == 0 {
			continue
		}
		withPictures++
		chart.LabelAndIntValue(p.Title, uint64(len(p.Pictures)))
	}
	if withPictures > 1 {
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	}

	for _, p := range res.Pages {
		if len(p.Pictures) == 0 {
			continue
		}
		md.H3(p.Title)
		md.PlainText("")
		items := make([]string, 0, len(p.Pictures))
		for _, pf := range p.Pictures {
			title := pf.Title
			if title == "" {
				title = pf.Src()
			}
			item := markdown.Link(title, pf.Src())
			if pf.HasSVG() {
				item += " (" + markdown.Link("svg", pf.SVGSrc()) + ")"
			}
			items = append(items, item)
		}
		md.BulletList(items...)
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown, res *Result) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by %s in %s*", htmldoc.Generator, res.Elapsed.Round(time.Millisecond))
}
