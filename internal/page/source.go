package page

import (
	"io"

	"github.com/nao1215/xreport/internal/model"
	"golang.org/x/net/html"
)

// Document is the HTML document a page appends its blocks to.
// htmldoc.Document is the default implementation.
type Document interface {
	// AppendBody appends n to the document body, after all earlier blocks.
	AppendBody(n *html.Node)

	// AppendRaw attaches markup to the root element without escaping.
	AppendRaw(markup string)

	// Render serializes the document.
	Render(w io.Writer) error
}

// ChartRenderer renders a chart to image files.
type ChartRenderer interface {
	RenderChart(c *model.Chart, req model.RenderRequest) (*model.PictureFile, error)
}

// HeatMapRenderer renders a heat map to image files. The title and caption
// are carried into the returned PictureFile.
type HeatMapRenderer interface {
	RenderHeatMap(title, caption string, hm *model.HeatMap, req model.RenderRequest) (*model.PictureFile, error)
}

// TabularDataSource is a typed two-dimensional data source rendered by
// AddRichTable.
type TabularDataSource interface {
	NumRows() int
	NumCols() int
	ColumnName(c int) string
	RowName(r int) string

	// Value returns the cell value; nil means the cell is empty.
	// An error reports a malformed source, e.g. a ragged row.
	Value(r, c int) (any, error)

	// Color and Link return optional per-cell annotations, "" when unset.
	Color(r, c int) string
	Link(r, c int) string

	// MetaData returns optional formatting metadata, or nil.
	MetaData() MetaData
}

// MetaData carries optional formatting policy for a TabularDataSource.
type MetaData interface {
	// AdjustPrecision returns v formatted for column col.
	AdjustPrecision(v any, col int) any

	// ColumnAlignment returns the HTML alignment for column col, or "".
	ColumnAlignment(col int) string

	// Title returns the table title, or "".
	Title() string
}
