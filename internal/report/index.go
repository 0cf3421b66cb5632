package report

import (
	"strconv"

	"github.com/nao1215/xreport/internal/htmldoc"
	"github.com/nao1215/xreport/internal/page"
)

// NewIndexPage creates the landing page of r: its description, its
// parameters and a table linking to every page.
func NewIndexPage(r *Report, opts ...page.Option) *page.Page {
	opts = append([]page.Option{page.WithGeneratedAt(r.CreatedAt)}, opts...)
	idx := page.New(IndexPageName, r.Title, opts...)

	if r.Description != "" {
		if err := idx.AddMarkdown(r.Description); err != nil {
			idx.AddError("Could not render the report description", err)
		}
	}

	if r.Parameters != nil && r.Parameters.Len() > 0 {
		idx.AddKeyValueTable("Parameters", r.Parameters)
	}

	table := htmldoc.Table(1, 2)
	header := htmldoc.TR()
	header.AppendChild(htmldoc.RichTH("Page"))
	header.AppendChild(htmldoc.RichTH("Pictures"))
	table.AppendChild(header)
	for _, p := range r.pages {
		tr := htmldoc.TR()
		tr.AppendChild(htmldoc.TD(p.Title(), "", p.FileName()))
		tr.AppendChild(htmldoc.TD(strconv.Itoa(len(p.PictureFiles())), "", ""))
		table.AppendChild(tr)
	}
	idx.AddTable("Pages", table)

	return idx
}
