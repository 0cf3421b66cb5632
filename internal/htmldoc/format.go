package htmldoc

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CSS classes understood by the default stylesheet.
const (
	ClassError       = "error"
	ClassKeyValTable = "keyValTable"
	ClassDataTable   = "dataTable"
	ClassRichTable   = "richTable"
	ClassImage       = "image"
	ClassText        = "text"
	ClassLessen      = "lessen"
	ClassTableTitle  = "table"
)

// PlainTextLabel is the link text pointing to a table's plain-text file.
const PlainTextLabel = "[plain text format]"

// Element creates an element node for the given atom.
func Element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a, Attr: attrs}
}

// Attr builds an attribute.
func Attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// SetAttr sets key on n, replacing an existing value.
func SetAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, Attr(key, val))
}

// GetAttr returns the value of key on n, or "".
func GetAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// Text creates a text node. The content is escaped when rendered.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Div creates a <div> with the given class and children.
func Div(class string, children ...*html.Node) *html.Node {
	var div *html.Node
	if class == "" {
		div = Element(atom.Div)
	} else {
		div = Element(atom.Div, Attr("class", class))
	}
	for _, c := range children {
		div.AppendChild(c)
	}
	return div
}

// ErrorDiv creates an empty error block.
func ErrorDiv() *html.Node { return Div(ClassError) }

// KeyValDiv creates an empty container for key-value tables.
func KeyValDiv() *html.Node { return Div(ClassKeyValTable) }

// DataTableDiv creates an empty container for plain tables.
func DataTableDiv() *html.Node { return Div(ClassDataTable) }

// RichTableDiv creates an empty container for rich tables.
func RichTableDiv() *html.Node { return Div(ClassRichTable) }

// BR creates a line break.
func BR() *html.Node { return Element(atom.Br) }

// Pre creates a preformatted block holding s.
func Pre(s string) *html.Node {
	pre := Element(atom.Pre)
	pre.AppendChild(Text(s))
	return pre
}

// Paragraph creates a <p> holding s.
func Paragraph(s string) *html.Node {
	p := Element(atom.P)
	p.AppendChild(Text(s))
	return p
}

// Anchor creates a link to href with the given text.
func Anchor(href, text string) *html.Node {
	a := Element(atom.A, Attr("href", href))
	a.AppendChild(Text(text))
	return a
}

// Image creates an <img> element.
func Image(src, alt string) *html.Node {
	return Element(atom.Img, Attr("src", src), Attr("alt", alt), Attr("title", alt))
}

// ImageDiv creates an image block: the image, linked to svgHref when one is
// given, followed by a caption paragraph when caption is non-empty.
func ImageDiv(src, alt, caption, svgHref string) *html.Node {
	div := Div(ClassImage)
	img := Image(src, alt)
	if svgHref != "" {
		link := Element(atom.A, Attr("href", svgHref))
		link.AppendChild(img)
		div.AppendChild(link)
	} else {
		div.AppendChild(img)
	}
	if caption != "" {
		div.AppendChild(Paragraph(caption))
	}
	return div
}

// UL creates an unordered list with one item per string.
func UL(items ...string) *html.Node {
	ul := Element(atom.Ul)
	for _, item := range items {
		li := Element(atom.Li)
		li.AppendChild(Text(item))
		ul.AppendChild(li)
	}
	return ul
}

// Table creates a <table>. A zero cols omits the cols attribute.
func Table(border, cols int) *html.Node {
	t := Element(atom.Table, Attr("border", strconv.Itoa(border)))
	if cols > 0 {
		SetAttr(t, "cols", strconv.Itoa(cols))
	}
	return t
}

// TR creates an empty table row.
func TR() *html.Node { return Element(atom.Tr) }

// TableCaption creates the title caption of a table. Extra nodes are
// appended after the title text.
func TableCaption(title string, extra ...*html.Node) *html.Node {
	c := Element(atom.Caption, Attr("class", ClassTableTitle))
	c.AppendChild(Text(title))
	for _, n := range extra {
		c.AppendChild(n)
	}
	return c
}

// RichTH creates a header cell for rich tables.
func RichTH(s string) *html.Node {
	th := Element(atom.Th, Attr("class", ClassRichTable))
	th.AppendChild(Text(s))
	return th
}

// TD creates a data cell. A non-empty color becomes the cell background and
// a non-empty link wraps the text in an anchor.
func TD(s, color, link string) *html.Node {
	td := Element(atom.Td)
	if color != "" {
		SetAttr(td, "style", "background-color:"+color)
	}
	if link != "" {
		td.AppendChild(Anchor(link, s))
	} else {
		td.AppendChild(Text(s))
	}
	return td
}

// LessenTD creates a de-emphasized cell, used for row numbers.
func LessenTD(s string) *html.Node {
	td := Element(atom.Td, Attr("class", ClassLessen))
	td.AppendChild(Text(s))
	return td
}

// EmptyTD creates an empty cell that keeps columns aligned.
func EmptyTD() *html.Node { return Element(atom.Td) }

// TextContent returns the concatenated text of n and its descendants.
func TextContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// FindAll returns every element below n (n included) with the given atom,
// in document order.
func FindAll(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == a {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// HasClass reports whether n carries the CSS class.
func HasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(GetAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
