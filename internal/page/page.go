package page

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	goerrors "github.com/go-errors/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"

	"github.com/nao1215/xreport/internal/chart"
	"github.com/nao1215/xreport/internal/heatmap"
	"github.com/nao1215/xreport/internal/htmldoc"
	xlog "github.com/nao1215/xreport/internal/log"
	"github.com/nao1215/xreport/internal/model"
	"github.com/nao1215/xreport/internal/naming"
)

// ErrAttachedBlock is reported for a block that is nil or already part of a
// tree. A node can only be appended once.
var ErrAttachedBlock = errors.New("block is nil or already attached")

const (
	// ImageErrorMessage is the error block text for a picture that could
	// not be rendered.
	ImageErrorMessage = "Trouble saving image"

	// NotApplicable replaces missing table titles.
	NotApplicable = "na"

	// RowNameHeader is the header of the row-name column of rich tables.
	RowNameHeader = "Name"

	// BlockErrorMessage is the error block text for a block that could not
	// be appended.
	BlockErrorMessage = "Could not add block"

	// firstPictureID is the sequence number of a page's first picture.
	firstPictureID = 1
)

// Page is one HTML report page.
type Page struct {
	name  string
	title string

	doc    Document
	chrome htmldoc.Chrome

	logger          *slog.Logger
	chartRenderer   ChartRenderer
	heatMapRenderer HeatMapRenderer
	markdown        goldmark.Markdown

	// pictureCount is the sequence number the next picture gets.
	pictureCount int
	pictures     []*model.PictureFile
}

// Option configures a Page.
type Option func(*Page)

// WithLogger sets the logger errors are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Page) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithDocument replaces the default htmldoc.Document. The document is used
// as given; chrome options have no effect on it.
func WithDocument(doc Document) Option {
	return func(p *Page) {
		p.doc = doc
	}
}

// WithChartRenderer replaces the default chart renderer.
func WithChartRenderer(r ChartRenderer) Option {
	return func(p *Page) {
		if r != nil {
			p.chartRenderer = r
		}
	}
}

// WithHeatMapRenderer replaces the default heat map renderer.
func WithHeatMapRenderer(r HeatMapRenderer) Option {
	return func(p *Page) {
		if r != nil {
			p.heatMapRenderer = r
		}
	}
}

// WithStylesheet sets the stylesheet href. An empty href omits the link.
func WithStylesheet(href string) Option {
	return func(p *Page) {
		p.chrome.Stylesheet = href
	}
}

// WithIndexHref sets the navigation link to the report index.
// An empty href omits the link, which the index page itself uses.
func WithIndexHref(href string) Option {
	return func(p *Page) {
		p.chrome.IndexHref = href
	}
}

// WithGeneratedAt sets the timestamp printed in the footer.
func WithGeneratedAt(t time.Time) Option {
	return func(p *Page) {
		p.chrome.GeneratedAt = t
	}
}

// New creates a page. name must be safe for use as a file name; title is
// shown in the browser title bar and as the page heading.
func New(name, title string, opts ...Option) *Page {
	p := &Page{
		name:            name,
		title:           title,
		chrome:          htmldoc.DefaultChrome(),
		logger:          slog.Default(),
		chartRenderer:   chart.NewRenderer(),
		heatMapRenderer: heatmap.NewRenderer(),
		pictureCount:    firstPictureID,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.doc == nil {
		p.doc = htmldoc.New(title, p.chrome)
	}
	return p
}

// Name returns the short, file-safe page name.
func (p *Page) Name() string { return p.name }

// Title returns the page title.
func (p *Page) Title() string { return p.title }

// Ext returns the file extension of serialized pages.
func (p *Page) Ext() string { return naming.HTML }

// FileName returns the file name the page is written to.
func (p *Page) FileName() string { return p.name + p.Ext() }

// AddBlock appends div to the page followed by a line break.
func (p *Page) AddBlock(div *html.Node) {
	p.AddBlockBreak(div, true)
}

// AddBlockBreak appends div to the page, followed by a line break when
// breakAfter is set. A nil or already attached div is replaced by an error
// block.
func (p *Page) AddBlockBreak(div *html.Node, breakAfter bool) {
	if attached(div) {
		p.AddError(BlockErrorMessage, ErrAttachedBlock)
		return
	}
	p.doc.AppendBody(div)
	if breakAfter {
		p.doc.AppendBody(htmldoc.BR())
	}
}

func attached(n *html.Node) bool {
	return n == nil || n.Parent != nil || n.PrevSibling != nil || n.NextSibling != nil
}

// AddBreak appends a bare line break.
func (p *Page) AddBreak() {
	p.doc.AppendBody(htmldoc.BR())
}

// AddError logs msg and appends an error block holding msg and, if cause
// is not nil, its full trace.
func (p *Page) AddError(msg string, cause error) {
	if cause != nil {
		p.logger.Error(msg, "page", p.name, "error", cause)
	} else {
		p.logger.Error(msg, "page", p.name)
	}

	div := htmldoc.ErrorDiv()
	div.AppendChild(htmldoc.Text(msg))
	if cause != nil {
		div.AppendChild(htmldoc.BR())
		div.AppendChild(htmldoc.Pre(xlog.Trace(cause)))
	}
	p.AddBlock(div)
}

// AddText appends a text block. Blank lines separate paragraphs.
func (p *Page) AddText(text string) {
	div := htmldoc.Div(htmldoc.ClassText)
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		div.AppendChild(htmldoc.Paragraph(para))
	}
	p.AddBlock(div)
}

// AddBulletList appends a block with one bullet per item.
func (p *Page) AddBulletList(items ...string) {
	p.AddBlock(htmldoc.Div(htmldoc.ClassText, htmldoc.UL(items...)))
}

// AddMarkdown renders src as GitHub flavored markdown and appends the
// result as a text block. Raw HTML inside src is not passed through.
func (p *Page) AddMarkdown(src string) error {
	if p.markdown == nil {
		p.markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	}

	var buf bytes.Buffer
	if err := p.markdown.Convert([]byte(src), &buf); err != nil {
		return fmt.Errorf("failed to convert markdown: %w", err)
	}
	nodes, err := htmldoc.ParseFragment(buf.String())
	if err != nil {
		return err
	}
	p.AddBlock(htmldoc.Div(htmldoc.ClassText, nodes...))
	return nil
}

// AddChart renders c into dir and appends the image. On failure the page
// gets an error block instead and no picture is recorded.
func (p *Page) AddChart(c *model.Chart, width, height int, dir string, svg bool) {
	pf, err := p.render(func(req model.RenderRequest) (*model.PictureFile, error) {
		if c == nil {
			return nil, goerrors.New("chart is nil")
		}
		return p.chartRenderer.RenderChart(c, req)
	}, width, height, dir, svg)
	if err != nil {
		p.AddError(ImageErrorMessage, err)
		return
	}
	p.addPicture(pf)
}

// AddComboChart flattens combo into one chart and adds it like AddChart.
func (p *Page) AddComboChart(combo *model.ComboChart, width, height int, dir string, svg bool) {
	if combo == nil {
		p.AddError(ImageErrorMessage, goerrors.New("combo chart is nil"))
		return
	}
	p.AddChart(combo.Combined(), width, height, dir, svg)
}

// AddHeatMap renders hm into dir and appends the image. The file name is
// derived from title. Failures are handled as in AddChart.
func (p *Page) AddHeatMap(title, caption string, hm *model.HeatMap, dir string, svg bool) {
	pf, err := p.render(func(req model.RenderRequest) (*model.PictureFile, error) {
		if hm == nil {
			return nil, goerrors.New("heat map is nil")
		}
		return p.heatMapRenderer.RenderHeatMap(title, caption, hm, req)
	}, 0, 0, dir, svg)
	if err != nil {
		p.AddError(ImageErrorMessage, err)
		return
	}
	p.addPicture(pf)
}

// render runs fn with the request for the next picture, turning panics and
// missing results into errors. The picture counter is not touched.
func (p *Page) render(fn func(model.RenderRequest) (*model.PictureFile, error), width, height int, dir string, svg bool) (pf *model.PictureFile, err error) {
	req := model.RenderRequest{
		Prefix: p.name,
		Seq:    p.pictureCount,
		Width:  width,
		Height: height,
		Dir:    dir,
		SVG:    svg,
	}

	defer func() {
		if r := recover(); r != nil {
			pf = nil
			err = goerrors.Wrap(r, 2)
		}
	}()

	pf, err = fn(req)
	if err != nil {
		return nil, err
	}
	if pf == nil {
		return nil, goerrors.New("renderer returned no picture")
	}
	return pf, nil
}

// addPicture records pf and appends its image block.
func (p *Page) addPicture(pf *model.PictureFile) {
	p.pictureCount++
	p.pictures = append(p.pictures, pf)
	p.AddBlock(htmldoc.ImageDiv(pf.Src(), pf.Title, pf.Caption, pf.SVGSrc()))
}

// AddKeyValueTable appends kv in a titled key-value block. An empty title
// is shown as "na".
func (p *Page) AddKeyValueTable(title string, kv *htmldoc.KeyValTable) {
	if kv == nil {
		kv = htmldoc.NewKeyValTable()
	}
	table := kv.Table()
	table.InsertBefore(htmldoc.TableCaption(noNull(title)), table.FirstChild)
	div := htmldoc.KeyValDiv()
	div.AppendChild(table)
	p.AddBlock(div)
}

// AddTable appends a pre-built <table> in a titled data block. An empty
// title is shown as "na".
func (p *Page) AddTable(title string, table *html.Node) {
	if table == nil {
		table = htmldoc.Table(1, 0)
	}
	if attached(table) {
		p.AddError(BlockErrorMessage, ErrAttachedBlock)
		return
	}
	table.InsertBefore(htmldoc.TableCaption(noNull(title)), table.FirstChild)
	div := htmldoc.DataTableDiv()
	div.AppendChild(table)
	p.AddBlock(div)
}

// AddRichTable renders src as a table.
//
// numberRows adds a leading column with 1-based row numbers and
// showRowNames a column with the source's row names. Empty cells stay
// empty; other values pass through the source's precision policy. When
// plainTextFile is set, the title links to it.
//
// Errors from src are returned as is and nothing is appended.
func (p *Page) AddRichTable(src TabularDataSource, plainTextFile string, showRowNames, numberRows bool) error {
	if src == nil {
		return errors.New("rich table source is nil")
	}
	meta := src.MetaData()

	ncols := src.NumCols()
	if numberRows {
		ncols++
	}
	if showRowNames {
		ncols++
	}
	table := htmldoc.Table(1, ncols)

	header := htmldoc.TR()
	if numberRows {
		header.AppendChild(htmldoc.RichTH(""))
	}
	if showRowNames {
		header.AppendChild(htmldoc.RichTH(RowNameHeader))
	}
	for c := 0; c < src.NumCols(); c++ {
		header.AppendChild(htmldoc.RichTH(src.ColumnName(c)))
	}
	table.AppendChild(header)

	for r := 0; r < src.NumRows(); r++ {
		tr := htmldoc.TR()
		if numberRows {
			tr.AppendChild(htmldoc.LessenTD(strconv.Itoa(r + 1)))
		}
		if showRowNames {
			tr.AppendChild(htmldoc.TD(src.RowName(r), "", ""))
		}
		for c := 0; c < src.NumCols(); c++ {
			td, err := richCell(src, meta, r, c)
			if err != nil {
				return fmt.Errorf("rich table row %d column %d: %w", r, c, err)
			}
			tr.AppendChild(td)
		}
		table.AppendChild(tr)
	}

	title := NotApplicable
	if meta != nil {
		title = noNull(meta.Title())
	}
	var extra []*html.Node
	if plainTextFile != "" {
		extra = append(extra, htmldoc.Text("\u00a0"), htmldoc.Anchor(plainTextFile, htmldoc.PlainTextLabel))
	}
	table.InsertBefore(htmldoc.TableCaption(title, extra...), table.FirstChild)

	div := htmldoc.RichTableDiv()
	div.AppendChild(table)
	p.AddBlock(div)
	return nil
}

// richCell builds the cell for (r, c).
func richCell(src TabularDataSource, meta MetaData, r, c int) (*html.Node, error) {
	v, err := src.Value(r, c)
	if err != nil {
		return nil, err
	}

	var td *html.Node
	if v == nil {
		td = htmldoc.EmptyTD()
	} else {
		if meta != nil {
			v = meta.AdjustPrecision(v, c)
		}
		td = htmldoc.TD(fmt.Sprint(v), src.Color(r, c), src.Link(r, c))
	}

	if meta != nil {
		if align := meta.ColumnAlignment(c); align != "" {
			htmldoc.SetAttr(td, "align", align)
		}
	}
	return td, nil
}

// AddHTML appends markup to the document root as is.
//
// The markup is neither escaped nor validated. Only pass trusted content.
func (p *Page) AddHTML(markup string) {
	p.doc.AppendRaw(markup)
}

// PictureFiles returns the pictures added so far, in addition order.
// The returned slice is a copy.
func (p *Page) PictureFiles() []*model.PictureFile {
	out := make([]*model.PictureFile, len(p.pictures))
	copy(out, p.pictures)
	return out
}

// PictureCount returns the sequence number the next picture will get.
// It starts at 1 and grows by one per successfully added picture.
func (p *Page) PictureCount() int { return p.pictureCount }

// Write renders the page to w and closes w. Render and close errors are
// both returned. The page must not be modified afterwards.
func (p *Page) Write(w io.WriteCloser) error {
	renderErr := p.doc.Render(w)
	closeErr := w.Close()
	return errors.Join(renderErr, closeErr)
}

// WriteFile writes the page to dir/FileName() and returns the path.
func (p *Page) WriteFile(dir string) (string, error) {
	path := filepath.Join(dir, p.FileName())
	f, err := os.Create(path) //nolint:gosec // report directory is chosen by the user
	if err != nil {
		return "", fmt.Errorf("failed to create page file: %w", err)
	}
	if err := p.Write(f); err != nil {
		return "", fmt.Errorf("failed to write page %s: %w", p.name, err)
	}
	return path, nil
}

func noNull(s string) string {
	if s == "" {
		return NotApplicable
	}
	return s
}
