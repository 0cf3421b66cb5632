package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/net/html/atom"

	"github.com/nao1215/xreport/internal/config"
	"github.com/nao1215/xreport/internal/dataframe"
	"github.com/nao1215/xreport/internal/htmldoc"
	"github.com/nao1215/xreport/internal/model"
	"github.com/nao1215/xreport/internal/naming"
	"github.com/nao1215/xreport/internal/page"
)

// NewStep returns the step that adds section s to a page.
func NewStep(s config.Section) (Step, error) {
	base := sectionStep{section: s}
	switch s.Type {
	case config.SectionText:
		return &TextStep{base}, nil
	case config.SectionList:
		return &ListStep{base}, nil
	case config.SectionMarkdown:
		return &MarkdownStep{base}, nil
	case config.SectionTable:
		return &TableStep{base}, nil
	case config.SectionKeyValue:
		return &KeyValueStep{base}, nil
	case config.SectionHeatMap:
		return &HeatMapStep{base}, nil
	case config.SectionChart:
		return &ChartStep{base}, nil
	case config.SectionHTML:
		return &HTMLStep{base}, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownSection, s.Type)
	}
}

// NewSteps returns one step per section, in order.
func NewSteps(sections []config.Section) ([]Step, error) {
	steps := make([]Step, 0, len(sections))
	for i, s := range sections {
		step, err := NewStep(s)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i+1, err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// sectionStep holds the section shared by all step types.
type sectionStep struct {
	section config.Section
}

// Name returns the section type, followed by its title when there is one.
func (s sectionStep) Name() string {
	if s.section.Title == "" {
		return string(s.section.Type)
	}
	return fmt.Sprintf("%s %q", s.section.Type, s.section.Title)
}

// settings returns the section merged with the definition defaults.
func (s sectionStep) settings(job *Job) config.Section {
	if job.Def == nil {
		return s.section
	}
	return job.Def.SectionSettings(s.section)
}

// size returns the picture size of the section.
func (s sectionStep) size(job *Job) (width, height int) {
	set := s.settings(job)
	width, height = set.Width, set.Height
	if width <= 0 {
		width = job.Width
	}
	if height <= 0 {
		height = job.Height
	}
	return width, height
}

// svg reports whether the section's picture gets an SVG rendition.
func (s sectionStep) svg(job *Job) bool {
	if set := s.settings(job); set.SVG != nil {
		return *set.SVG
	}
	return job.SVG
}

// resolve returns the section file relative to the definition.
func (s sectionStep) resolve(job *Job) string {
	if job.Def == nil {
		return s.section.File
	}
	return job.Def.Resolve(s.section.File)
}

// source returns the inline text, or the contents of the section file.
func (s sectionStep) source(job *Job) (string, error) {
	if s.section.Text != "" {
		return s.section.Text, nil
	}
	data, err := os.ReadFile(s.resolve(job))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", s.section.File, err)
	}
	return string(data), nil
}

// frame reads the section file as a TSV table.
func (s sectionStep) frame(job *Job) (*dataframe.Frame, error) {
	f, err := os.Open(s.resolve(job))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.section.File, err)
	}
	defer f.Close()

	frame, err := dataframe.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.section.File, err)
	}
	return frame, nil
}

// heading appends the section title as a heading, if it has one.
func (s sectionStep) heading(p *page.Page) {
	if s.section.Title == "" {
		return
	}
	h := htmldoc.Element(atom.H2)
	h.AppendChild(htmldoc.Text(s.section.Title))
	p.AddBlock(h)
}

// TextStep adds plain text paragraphs.
type TextStep struct{ sectionStep }

// Do implements Step.
func (s *TextStep) Do(_ context.Context, job *Job) error {
	text, err := s.source(job)
	if err != nil {
		return err
	}
	s.heading(job.Page)
	job.Page.AddText(text)
	return nil
}

// ListStep adds a bullet list.
type ListStep struct{ sectionStep }

// Do implements Step.
func (s *ListStep) Do(_ context.Context, job *Job) error {
	s.heading(job.Page)
	job.Page.AddBulletList(s.section.Items...)
	return nil
}

// MarkdownStep adds rendered markdown.
type MarkdownStep struct{ sectionStep }

// Do implements Step.
func (s *MarkdownStep) Do(_ context.Context, job *Job) error {
	src, err := s.source(job)
	if err != nil {
		return err
	}
	s.heading(job.Page)
	return job.Page.AddMarkdown(src)
}

// HTMLStep adds raw markup.
type HTMLStep struct{ sectionStep }

// Do implements Step.
func (s *HTMLStep) Do(_ context.Context, job *Job) error {
	markup, err := s.source(job)
	if err != nil {
		return err
	}
	s.heading(job.Page)
	job.Page.AddHTML(markup)
	return nil
}

// KeyValueStep adds a two-column table of the section entries.
type KeyValueStep struct{ sectionStep }

// Do implements Step.
func (s *KeyValueStep) Do(_ context.Context, job *Job) error {
	job.Page.AddKeyValueTable(s.section.Title, KeyValTable(s.section.Entries))
	return nil
}

// KeyValTable converts definition entries into a key-value table.
func KeyValTable(entries []config.KeyValue) *htmldoc.KeyValTable {
	kv := htmldoc.NewKeyValTable()
	for _, e := range entries {
		if e.Link != "" {
			kv.AddLink(e.Key, e.Value, e.Link)
			continue
		}
		kv.Add(e.Key, e.Value)
	}
	return kv
}

// TableStep adds a rich table read from a TSV file.
// With PlainText the table is also written next to the page as TSV.
type TableStep struct{ sectionStep }

// Do implements Step.
func (s *TableStep) Do(_ context.Context, job *Job) error {
	frame, err := s.frame(job)
	if err != nil {
		return err
	}

	set := s.settings(job)
	meta := dataframe.NewMeta(s.section.Title)
	if set.Precision != nil {
		meta.SetDefaultPrecision(*set.Precision)
	}
	frame.SetMeta(meta)

	var plainText string
	if s.section.PlainText {
		plainText, err = s.writePlainText(job, frame)
		if err != nil {
			return err
		}
	}

	if err := job.Page.AddRichTable(frame, plainText, s.section.RowNames, s.section.NumberRows); err != nil {
		return err
	}
	if s.section.Caption != "" {
		job.Page.AddText(s.section.Caption)
	}
	return nil
}

// writePlainText writes frame to job.Dir and returns the file name.
func (s *TableStep) writePlainText(job *Job, frame *dataframe.Frame) (string, error) {
	title := s.section.Title
	if title == "" {
		title = s.section.File
	}
	name := job.claimFile(naming.SafeFileName(job.Page.Name()+"_"+title), naming.TSV)

	f, err := os.Create(filepath.Join(job.Dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", name, err)
	}
	if err := frame.WriteTSV(f); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", name, err)
	}
	return name, nil
}

// HeatMapStep adds a heat map of a numeric TSV file.
type HeatMapStep struct{ sectionStep }

// Do implements Step.
func (s *HeatMapStep) Do(_ context.Context, job *Job) error {
	scheme, err := ParseScheme(s.section.Scheme)
	if err != nil {
		return err
	}
	frame, err := s.frame(job)
	if err != nil {
		return err
	}
	hm, err := frame.HeatMap(scheme)
	if err != nil {
		return fmt.Errorf("failed to build heat map from %s: %w", s.section.File, err)
	}

	// Width is the width of the whole map; the renderer wants a cell size.
	if w := s.settings(job).Width; w > 0 {
		if _, cols := hm.Dims(); cols > 0 {
			hm.CellSize = max(1, w/cols)
		}
	}

	title := s.section.Title
	if title == "" {
		title = s.section.File
	}
	job.Page.AddHeatMap(title, s.section.Caption, hm, job.Dir, s.svg(job))
	return nil
}

// ParseScheme converts a scheme name from a definition file.
func ParseScheme(name string) (model.ColorScheme, error) {
	switch name {
	case "", "row":
		return model.SchemeRowRelative, nil
	case "global":
		return model.SchemeGlobal, nil
	default:
		return 0, fmt.Errorf("unknown heat map scheme %q", name)
	}
}

// ChartStep plots every column of a TSV file as one series.
type ChartStep struct{ sectionStep }

// Do implements Step.
func (s *ChartStep) Do(_ context.Context, job *Job) error {
	kind, ok := model.ParseChartKind(s.section.Kind)
	if !ok {
		return fmt.Errorf("unknown chart kind %q", s.section.Kind)
	}
	frame, err := s.frame(job)
	if err != nil {
		return err
	}
	series, err := frame.Series()
	if err != nil {
		return fmt.Errorf("failed to read series from %s: %w", s.section.File, err)
	}

	title := s.section.Title
	if title == "" {
		title = s.section.File
	}
	width, height := s.size(job)
	job.Page.AddChart(&model.Chart{
		Title:   title,
		Caption: s.section.Caption,
		Kind:    kind,
		Series:  series,
	}, width, height, job.Dir, s.svg(job))
	return nil
}
