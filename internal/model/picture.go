package model

import (
	"path/filepath"
)

// PictureFile describes one image written to disk by a renderer.
// A page owns the PictureFile once it has been added.
type PictureFile struct {
	// ID is the sequence number the page assigned to this picture.
	ID int `json:"id"`

	// Title is the title of the source chart or heat map.
	Title string `json:"title"`

	// Caption is an optional longer description shown under the image.
	Caption string `json:"caption,omitempty"`

	// Path is the location of the PNG file on disk.
	Path string `json:"path"`

	// SVGPath is the location of the SVG rendition.
	// Empty when no SVG was produced.
	SVGPath string `json:"svg_path,omitempty"`

	// Width and Height are the pixel dimensions of the PNG file.
	Width  int `json:"width"`
	Height int `json:"height"`
}

// HasSVG reports whether an SVG rendition was produced.
func (p *PictureFile) HasSVG() bool {
	return p.SVGPath != ""
}

// Src returns the relative link used in HTML to reference the PNG file.
// Pages are written next to their images, so only the base name is used.
func (p *PictureFile) Src() string {
	return filepath.Base(p.Path)
}

// SVGSrc returns the relative link to the SVG file, or "" if there is none.
func (p *PictureFile) SVGSrc() string {
	if !p.HasSVG() {
		return ""
	}
	return filepath.Base(p.SVGPath)
}

// RenderRequest carries everything a renderer needs besides the source
// object itself.
type RenderRequest struct {
	// Prefix is prepended to the output file name, normally the page name.
	Prefix string

	// Seq is the picture sequence number used as a disambiguating suffix.
	Seq int

	// Width and Height are the requested pixel dimensions.
	// Heat map renderers may derive their own size from the matrix when zero.
	Width  int
	Height int

	// Dir is the directory the image files are written to.
	Dir string

	// SVG requests an additional SVG rendition.
	SVG bool
}
