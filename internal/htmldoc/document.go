package htmldoc

import (
	"fmt"
	"io"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultStylesheet is the stylesheet file every page links to. The report
// writer copies Stylesheet next to the pages under this name.
const DefaultStylesheet = "xreport.css"

// DefaultIndexHref is the link target of the "Home" navigation entry.
const DefaultIndexHref = "index.html"

// Generator is the product name shown in page footers.
const Generator = "xreport"

// Chrome configures the markup shared by every page.
type Chrome struct {
	// Stylesheet is the relative href of the stylesheet.
	Stylesheet string

	// IndexHref is the relative link to the report's index page.
	IndexHref string

	// GeneratedAt is the timestamp printed in the footer.
	GeneratedAt time.Time
}

// DefaultChrome returns the chrome used when a page does not customize it.
func DefaultChrome() Chrome {
	return Chrome{
		Stylesheet:  DefaultStylesheet,
		IndexHref:   DefaultIndexHref,
		GeneratedAt: time.Now(),
	}
}

// Document is an HTML document under construction.
type Document struct {
	root   *html.Node
	html   *html.Node
	head   *html.Node
	body   *html.Node
	footer *html.Node
}

// New creates an empty document with the given title and chrome.
func New(title string, chrome Chrome) *Document {
	d := &Document{
		root: &html.Node{Type: html.DocumentNode},
		html: Element(atom.Html, Attr("lang", "en")),
		head: Element(atom.Head),
		body: Element(atom.Body),
	}
	d.root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	d.root.AppendChild(d.html)
	d.html.AppendChild(d.head)
	d.html.AppendChild(d.body)

	ApplyCommonChrome(d, title, chrome)
	return d
}

// ApplyCommonChrome adds the title, stylesheet link, navigation bar and
// footer to d. It is called by New; calling it twice duplicates the chrome.
func ApplyCommonChrome(d *Document, title string, chrome Chrome) {
	d.head.AppendChild(Element(atom.Meta, Attr("charset", "utf-8")))
	titleNode := Element(atom.Title)
	titleNode.AppendChild(Text(title))
	d.head.AppendChild(titleNode)
	if chrome.Stylesheet != "" {
		d.head.AppendChild(Element(atom.Link,
			Attr("rel", "stylesheet"),
			Attr("type", "text/css"),
			Attr("href", chrome.Stylesheet),
		))
	}

	nav := Div("nav")
	if chrome.IndexHref != "" {
		nav.AppendChild(Anchor(chrome.IndexHref, "Home"))
		nav.AppendChild(Text(" | "))
	}
	nav.AppendChild(Anchor("./", "Report folder"))
	d.body.AppendChild(nav)

	heading := Element(atom.H1)
	heading.AppendChild(Text(title))
	d.body.AppendChild(heading)

	d.footer = Div("footer")
	d.footer.AppendChild(Element(atom.Hr))
	generated := "Generated by " + Generator
	if !chrome.GeneratedAt.IsZero() {
		generated += " on " + chrome.GeneratedAt.Format("2006-01-02 15:04:05 MST")
	}
	d.footer.AppendChild(Text(generated))
	d.body.AppendChild(d.footer)
}

// AppendBody appends n to the body, after every previously appended block
// and before the footer.
func (d *Document) AppendBody(n *html.Node) {
	if d.footer != nil && d.footer.Parent == d.body {
		d.body.InsertBefore(n, d.footer)
		return
	}
	d.body.AppendChild(n)
}

// AppendRaw appends markup to the <html> element without escaping or
// validation.
func (d *Document) AppendRaw(markup string) {
	d.html.AppendChild(&html.Node{Type: html.RawNode, Data: markup})
}

// Render writes the document to w.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}
	return nil
}

// Root returns the document node.
func (d *Document) Root() *html.Node { return d.root }

// Head returns the <head> element.
func (d *Document) Head() *html.Node { return d.head }

// Body returns the <body> element.
func (d *Document) Body() *html.Node { return d.body }
