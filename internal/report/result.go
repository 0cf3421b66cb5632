package report

import (
	"time"

	"github.com/nao1215/xreport/internal/model"
)

// Result describes a written report.
type Result struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Dir   string `json:"dir"`

	// Pages lists the written pages in report order, the index page last.
	Pages []PageResult `json:"pages"`

	CreatedAt time.Time     `json:"created_at"`
	Elapsed   time.Duration `json:"elapsed_ns"`
}

// PageResult describes one written page.
type PageResult struct {
	Name  string `json:"name"`
	Title string `json:"title"`

	// File is the page file name relative to the report directory.
	File string `json:"file"`

	// Size is the size of the page file in bytes.
	Size int64 `json:"size"`

	Pictures []*model.PictureFile `json:"pictures,omitempty"`

	// PictureSize is the total size of the page's image files in bytes.
	PictureSize int64 `json:"picture_size"`
}

// PictureCount returns the number of pictures over all pages.
func (r *Result) PictureCount() int {
	var n int
	for _, p := range r.Pages {
		n += len(p.Pictures)
	}
	return n
}

// TotalSize returns the bytes written for pages and pictures.
func (r *Result) TotalSize() int64 {
	var n int64
	for _, p := range r.Pages {
		n += p.Size + p.PictureSize
	}
	return n
}
