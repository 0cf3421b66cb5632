package chart

import (
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"

	goerrors "github.com/go-errors/errors"
	"github.com/llgcode/draw2d"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	"github.com/llgcode/draw2d/draw2dsvg"

	"github.com/nao1215/xreport/internal/model"
	"github.com/nao1215/xreport/internal/naming"
)

const (
	// DefaultWidth and DefaultHeight are used when a request leaves the
	// size at zero.
	DefaultWidth  = 500
	DefaultHeight = 400

	margin      = 24.0
	lineWidth   = 2.0
	pointRadius = 3.0
	barFill     = 0.8
)

var (
	backgroundColor = color.White
	axisColor       = color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
	zeroColor       = color.RGBA{R: 0xbb, G: 0xbb, B: 0xbb, A: 0xff}
)

// Renderer draws charts. The zero value is not usable; use NewRenderer.
type Renderer struct {
	palette *Palette
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPalette sets the palette for series without an explicit color.
func WithPalette(p *Palette) Option {
	return func(r *Renderer) {
		if p != nil {
			r.palette = p
		}
	}
}

// NewRenderer creates a chart renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{palette: NewPalette()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderChart writes c to req.Dir as "<prefix>_<name>_<seq>.png", plus an
// SVG file with the same base name when req.SVG is set.
func (r *Renderer) RenderChart(c *model.Chart, req model.RenderRequest) (*model.PictureFile, error) {
	width, height := req.Width, req.Height
	if width == 0 {
		width = DefaultWidth
	}
	if height == 0 {
		height = DefaultHeight
	}
	if float64(width) <= 2*margin || float64(height) <= 2*margin {
		return nil, goerrors.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	plot, err := newLayout(c, float64(width), float64(height))
	if err != nil {
		return nil, goerrors.Errorf("chart %q: %w", c.Title, err)
	}

	if err := os.MkdirAll(req.Dir, 0o750); err != nil {
		return nil, goerrors.Errorf("failed to create image directory: %w", err)
	}
	base := filepath.Join(req.Dir, naming.PictureBase(req.Prefix, c.FileName(), req.Seq))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	r.draw(draw2dimg.NewGraphicContext(img), c, plot)
	pf := &model.PictureFile{
		ID:      req.Seq,
		Title:   c.Title,
		Caption: c.Caption,
		Path:    base + naming.PNG,
		Width:   width,
		Height:  height,
	}
	if err := draw2dimg.SaveToPngFile(pf.Path, img); err != nil {
		return nil, goerrors.Errorf("failed to save chart %s: %w", pf.Path, err)
	}

	if req.SVG {
		svg := draw2dsvg.NewSvg()
		r.draw(draw2dsvg.NewGraphicContext(svg), c, plot)
		pf.SVGPath = base + naming.SVG
		if err := draw2dsvg.SaveToSvgFile(pf.SVGPath, svg); err != nil {
			return nil, goerrors.Errorf("failed to save chart %s: %w", pf.SVGPath, err)
		}
	}
	return pf, nil
}

// layout maps data coordinates to pixels.
type layout struct {
	width, height            float64
	left, top, right, bottom float64
	lo, hi                   float64
	points                   int
}

func newLayout(c *model.Chart, width, height float64) (*layout, error) {
	l := &layout{
		width:  width,
		height: height,
		left:   margin,
		top:    margin,
		right:  width - margin,
		bottom: height - margin,
		lo:     math.Inf(1),
		hi:     math.Inf(-1),
	}
	for _, s := range c.Series {
		l.points = max(l.points, len(s.Values))
		for _, v := range s.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			l.lo = math.Min(l.lo, v)
			l.hi = math.Max(l.hi, v)
		}
	}
	if math.IsInf(l.lo, 1) {
		return nil, ErrNoData
	}
	if c.Kind == model.ChartBar {
		// Bars grow from zero.
		l.lo = math.Min(l.lo, 0)
		l.hi = math.Max(l.hi, 0)
	}
	if l.lo == l.hi {
		l.lo--
		l.hi++
	}
	return l, nil
}

// y returns the pixel row of value v.
func (l *layout) y(v float64) float64 {
	return l.bottom - (v-l.lo)/(l.hi-l.lo)*(l.bottom-l.top)
}

// x returns the pixel column of point i for line and scatter charts.
func (l *layout) x(i int) float64 {
	if l.points <= 1 {
		return (l.left + l.right) / 2
	}
	return l.left + float64(i)/float64(l.points-1)*(l.right-l.left)
}

func (r *Renderer) draw(gc draw2d.GraphicContext, c *model.Chart, l *layout) {
	gc.SetFillColor(backgroundColor)
	gc.BeginPath()
	draw2dkit.Rectangle(gc, 0, 0, l.width, l.height)
	gc.Fill()

	if l.lo < 0 && l.hi > 0 {
		strokeLine(gc, zeroColor, 1, l.left, l.y(0), l.right, l.y(0))
	}

	switch c.Kind {
	case model.ChartBar:
		r.drawBars(gc, c, l)
	case model.ChartScatter:
		r.drawPoints(gc, c, l)
	default:
		r.drawLines(gc, c, l)
	}

	strokeLine(gc, axisColor, 1, l.left, l.top, l.left, l.bottom)
	strokeLine(gc, axisColor, 1, l.left, l.bottom, l.right, l.bottom)
}

func (r *Renderer) drawLines(gc draw2d.GraphicContext, c *model.Chart, l *layout) {
	for i, s := range c.Series {
		gc.SetStrokeColor(r.palette.Color(i, s.Color))
		gc.SetLineWidth(lineWidth)
		gc.BeginPath()
		pen := false
		for j, v := range s.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				pen = false
				continue
			}
			if pen {
				gc.LineTo(l.x(j), l.y(v))
			} else {
				gc.MoveTo(l.x(j), l.y(v))
				pen = true
			}
		}
		gc.Stroke()
	}
}

func (r *Renderer) drawPoints(gc draw2d.GraphicContext, c *model.Chart, l *layout) {
	for i, s := range c.Series {
		gc.SetFillColor(r.palette.Color(i, s.Color))
		for j, v := range s.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			gc.BeginPath()
			draw2dkit.Circle(gc, l.x(j), l.y(v), pointRadius)
			gc.Fill()
		}
	}
}

func (r *Renderer) drawBars(gc draw2d.GraphicContext, c *model.Chart, l *layout) {
	if l.points == 0 || len(c.Series) == 0 {
		return
	}
	group := (l.right - l.left) / float64(l.points)
	bar := group * barFill / float64(len(c.Series))
	zero := l.y(0)
	for i, s := range c.Series {
		gc.SetFillColor(r.palette.Color(i, s.Color))
		for j, v := range s.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			x0 := l.left + float64(j)*group + group*(1-barFill)/2 + float64(i)*bar
			gc.BeginPath()
			draw2dkit.Rectangle(gc, x0, math.Min(zero, l.y(v)), x0+bar, math.Max(zero, l.y(v)))
			gc.Fill()
		}
	}
}

func strokeLine(gc draw2d.GraphicContext, c color.Color, width, x0, y0, x1, y1 float64) {
	gc.SetStrokeColor(c)
	gc.SetLineWidth(width)
	gc.BeginPath()
	gc.MoveTo(x0, y0)
	gc.LineTo(x1, y1)
	gc.Stroke()
}
