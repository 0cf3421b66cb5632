// Package htmldoc implements the HTML document model used by report pages.
//
// A Document is a golang.org/x/net/html node tree with the common page
// chrome already in place: title, stylesheet link, navigation bar and
// footer. Blocks appended to the body are inserted before the footer, in
// call order. Render serializes the whole tree with html.Render.
//
// The element helpers in this package (Div, TD, RichTH, TableCaption, ...)
// produce the markup conventions the stylesheet expects, so callers never
// spell out class names themselves.
package htmldoc
