package linkcheck

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PageLinks contains the references found in one HTML page.
type PageLinks struct {
	// Title is the page title from the <title> tag.
	Title string

	// Links are the relative href targets of <a> elements.
	Links []string

	// Images are the relative src targets of <img> elements.
	Images []string

	// Stylesheets are the relative href targets of <link rel="stylesheet">.
	Stylesheets []string

	// External are absolute URLs, which are not checked.
	External []string
}

// Refs returns every relative reference of the page.
func (p *PageLinks) Refs() []string {
	refs := make([]string, 0, len(p.Links)+len(p.Images)+len(p.Stylesheets))
	refs = append(refs, p.Links...)
	refs = append(refs, p.Images...)
	refs = append(refs, p.Stylesheets...)
	return refs
}

// Parse extracts the references of an HTML page.
func Parse(content io.Reader) (*PageLinks, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	result := &PageLinks{}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			processElement(n, result)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return result, nil
}

// processElement handles HTML element nodes.
func processElement(n *html.Node, result *PageLinks) {
	switch n.DataAtom {
	case atom.Title:
		if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
			result.Title = strings.TrimSpace(n.FirstChild.Data)
		}

	case atom.A:
		classify(getAttr(n, "href"), &result.Links, result)

	case atom.Img:
		classify(getAttr(n, "src"), &result.Images, result)

	case atom.Link:
		if strings.EqualFold(getAttr(n, "rel"), "stylesheet") {
			classify(getAttr(n, "href"), &result.Stylesheets, result)
		}
	}
}

// classify appends ref to local when it points into the report and to
// result.External when it is absolute. Fragments, queries and pseudo
// schemes are dropped.
func classify(ref string, local *[]string, result *PageLinks) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") {
		return
	}

	u, err := url.Parse(ref)
	if err != nil {
		return
	}
	switch u.Scheme {
	case "javascript", "mailto", "tel", "data":
		return
	}
	if u.Scheme != "" || u.Host != "" {
		result.External = append(result.External, ref)
		return
	}
	if u.Path == "" {
		return
	}
	*local = append(*local, u.Path)
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
