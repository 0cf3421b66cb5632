package report

import (
	"fmt"
	"time"

	"github.com/nao1215/xreport/internal/htmldoc"
	"github.com/nao1215/xreport/internal/model"
	"github.com/nao1215/xreport/internal/page"
)

// IndexPageName is the name of the generated index page.
const IndexPageName = "index"

// Report is an ordered set of pages written to one directory.
type Report struct {
	// Name identifies the report in the catalog.
	Name string

	// Title is shown on the index page.
	Title string

	// Dir is the output directory of pages, pictures and data files.
	Dir string

	// Description is markdown shown at the top of the index page.
	Description string

	// Parameters are listed on the index page.
	Parameters *htmldoc.KeyValTable

	// CreatedAt is shown in page footers and the README.
	CreatedAt time.Time

	pages []*page.Page
	names map[string]bool
}

// New creates an empty report.
func New(name, title, dir string) *Report {
	return &Report{
		Name:       name,
		Title:      title,
		Dir:        dir,
		Parameters: htmldoc.NewKeyValTable(),
		CreatedAt:  time.Now(),
		names:      make(map[string]bool),
	}
}

// AddPage appends p. Page names must be unique within a report.
func (r *Report) AddPage(p *page.Page) error {
	switch {
	case p.Name() == IndexPageName:
		return fmt.Errorf("%w: %s", ErrReservedPageName, p.Name())
	case r.names[p.Name()]:
		return fmt.Errorf("%w: %s", ErrDuplicatePage, p.Name())
	}
	if r.names == nil {
		r.names = make(map[string]bool)
	}
	r.names[p.Name()] = true
	r.pages = append(r.pages, p)
	return nil
}

// Pages returns the pages in the order they were added.
func (r *Report) Pages() []*page.Page {
	out := make([]*page.Page, len(r.pages))
	copy(out, r.pages)
	return out
}

// PictureFiles returns the pictures of all pages in page order.
func (r *Report) PictureFiles() []*model.PictureFile {
	var out []*model.PictureFile
	for _, p := range r.pages {
		out = append(out, p.PictureFiles()...)
	}
	return out
}
