package config

import (
	"fmt"
	"path/filepath"
)

// IndexPageName is the name of the generated index page. Definitions may
// not use it for their own pages.
const IndexPageName = "index"

// SectionType names the kind of block a section adds to its page.
type SectionType string

// Section types understood by the pipeline.
const (
	// SectionText is a plain text block. Blank lines separate paragraphs.
	SectionText SectionType = "text"
	// SectionList is a bullet list built from Items.
	SectionList SectionType = "list"
	// SectionMarkdown is rendered from Text or File as markdown.
	SectionMarkdown SectionType = "markdown"
	// SectionTable is a rich table read from a TSV File.
	SectionTable SectionType = "table"
	// SectionKeyValue is a two-column table built from Entries.
	SectionKeyValue SectionType = "keyvalue"
	// SectionHeatMap is a heat map of the numeric TSV File.
	SectionHeatMap SectionType = "heatmap"
	// SectionChart plots every column of the TSV File as a series.
	SectionChart SectionType = "chart"
	// SectionHTML inserts Text or File as raw, unescaped markup.
	SectionHTML SectionType = "html"
)

// KeyValue is one entry of a key-value table or of the report parameters.
type KeyValue struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
	// Link turns the value into a hyperlink.
	Link string `yaml:"link,omitempty"`
}

// Section describes one block of a page.
// Which fields are used depends on Type.
type Section struct {
	Type    SectionType `yaml:"type"`
	Title   string      `yaml:"title,omitempty"`
	Caption string      `yaml:"caption,omitempty"`

	// Text is inline content for text, markdown and html sections.
	Text string `yaml:"text,omitempty"`

	// Items are the bullets of a list section.
	Items []string `yaml:"items,omitempty"`

	// Entries are the rows of a keyvalue section.
	Entries []KeyValue `yaml:"entries,omitempty"`

	// File is the data source, relative to the definition file.
	File string `yaml:"file,omitempty"`

	// PlainText copies a table's data next to the page as TSV and links it.
	PlainText bool `yaml:"plainText,omitempty"`

	// RowNames and NumberRows add leading columns to a rich table.
	RowNames   bool `yaml:"rowNames,omitempty"`
	NumberRows bool `yaml:"numberRows,omitempty"`

	// Precision is the number of decimals shown for floating point cells.
	Precision *int `yaml:"precision,omitempty"`

	// Kind is the chart kind: line, bar or scatter.
	Kind string `yaml:"kind,omitempty"`

	// Scheme is the heat map color scheme: row (default) or global.
	Scheme string `yaml:"scheme,omitempty"`

	// Width and Height override the default picture size.
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`

	// SVG overrides the build-wide SVG setting for this picture.
	SVG *bool `yaml:"svg,omitempty"`
}

// Defaults contains settings applied to every section unless the section
// sets its own.
type Defaults struct {
	Width     int   `yaml:"width,omitempty"`
	Height    int   `yaml:"height,omitempty"`
	SVG       *bool `yaml:"svg,omitempty"`
	Precision *int  `yaml:"precision,omitempty"`
}

// PageDefinition describes one page of the report.
type PageDefinition struct {
	// Name is the file name of the page without extension.
	Name     string    `yaml:"name"`
	Title    string    `yaml:"title"`
	Sections []Section `yaml:"sections"`
}

// Definition represents the structure of a report definition file.
type Definition struct {
	// Name is the report name, used for the output directory listing and
	// the catalog.
	Name string `yaml:"name"`

	// Title is shown on the index page.
	Title string `yaml:"title"`

	// Description is markdown shown at the top of the index page.
	Description string `yaml:"description,omitempty"`

	// Parameters are listed on the index page in order.
	Parameters []KeyValue `yaml:"parameters,omitempty"`

	Defaults Defaults         `yaml:"defaults,omitempty"`
	Pages    []PageDefinition `yaml:"pages"`

	// BaseDir is the directory of the definition file. Relative section
	// files are resolved against it. Set by LoadDefinition.
	BaseDir string `yaml:"-"`
}

// Validate checks page names and sections.
func (d *Definition) Validate() error {
	if len(d.Pages) == 0 {
		return ErrNoPages
	}

	seen := make(map[string]bool, len(d.Pages))
	for _, pg := range d.Pages {
		switch {
		case pg.Name == "":
			return ErrEmptyPageName
		case pg.Name == IndexPageName:
			return fmt.Errorf("%w: %s", ErrReservedPageName, pg.Name)
		case seen[pg.Name]:
			return fmt.Errorf("%w: %s", ErrDuplicatePage, pg.Name)
		}
		seen[pg.Name] = true

		for i, s := range pg.Sections {
			if err := s.Validate(); err != nil {
				return fmt.Errorf("page %s section %d: %w", pg.Name, i+1, err)
			}
		}
	}
	return nil
}

// Validate checks that the section has a known type and the content that
// type needs.
func (s Section) Validate() error {
	switch s.Type {
	case SectionText, SectionMarkdown, SectionHTML:
		if s.Text == "" && s.File == "" {
			return fmt.Errorf("%w: %s needs text or file", ErrMissingSource, s.Type)
		}
	case SectionTable, SectionHeatMap, SectionChart:
		if s.File == "" {
			return fmt.Errorf("%w: %s needs file", ErrMissingSource, s.Type)
		}
	case SectionList, SectionKeyValue:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSection, s.Type)
	}
	return nil
}

// ReportName returns Name, or "report" when it is empty.
func (d *Definition) ReportName() string {
	if d.Name == "" {
		return "report"
	}
	return d.Name
}

// ReportTitle returns Title, falling back to the report name.
func (d *Definition) ReportTitle() string {
	if d.Title == "" {
		return d.ReportName()
	}
	return d.Title
}

// Resolve returns path relative to the definition file's directory.
// Absolute paths are returned unchanged.
func (d *Definition) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || d.BaseDir == "" {
		return path
	}
	return filepath.Join(d.BaseDir, path)
}

// SectionSettings returns s merged with the definition defaults.
// Values set on the section win.
func (d *Definition) SectionSettings(s Section) Section {
	result := s
	if result.Width == 0 {
		result.Width = d.Defaults.Width
	}
	if result.Height == 0 {
		result.Height = d.Defaults.Height
	}
	if result.SVG == nil {
		result.SVG = d.Defaults.SVG
	}
	if result.Precision == nil {
		result.Precision = d.Defaults.Precision
	}
	return result
}
