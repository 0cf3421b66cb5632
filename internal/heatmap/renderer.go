package heatmap

import (
	"image"
	"os"
	"path/filepath"

	goerrors "github.com/go-errors/errors"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	"github.com/llgcode/draw2d/draw2dsvg"
	"golang.org/x/image/draw"

	"github.com/nao1215/xreport/internal/model"
	"github.com/nao1215/xreport/internal/naming"
)

// DefaultCellSize is the edge length of one cell in pixels.
const DefaultCellSize = 16

// Renderer draws heat maps.
type Renderer struct {
	gradient *Gradient
	cellSize int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithGradient sets the color gradient.
func WithGradient(g *Gradient) Option {
	return func(r *Renderer) {
		if g != nil {
			r.gradient = g
		}
	}
}

// WithCellSize sets the default cell size. Heat maps with their own
// CellSize keep it.
func WithCellSize(px int) Option {
	return func(r *Renderer) {
		if px > 0 {
			r.cellSize = px
		}
	}
}

// NewRenderer creates a heat map renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		gradient: DefaultGradient(),
		cellSize: DefaultCellSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderHeatMap writes hm to req.Dir as "<prefix>_<title>_<seq>.png", plus
// an SVG file when req.SVG is set.
//
// The cell size is taken from hm, else derived from req.Width when set,
// else the renderer default.
func (r *Renderer) RenderHeatMap(title, caption string, hm *model.HeatMap, req model.RenderRequest) (*model.PictureFile, error) {
	if hm == nil {
		return nil, goerrors.Errorf("heat map %q: %w", title, model.ErrEmptyHeatMap)
	}
	if err := hm.Validate(); err != nil {
		return nil, goerrors.Errorf("heat map %q: %w", title, err)
	}
	rows, cols := hm.Dims()
	cell := r.cellFor(hm, req, cols)
	pos := scale(hm.Values, hm.Scheme == model.SchemeRowRelative)

	// One pixel per cell, scaled up without smoothing so cell edges
	// stay sharp.
	small := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for y, row := range pos {
		for x, t := range row {
			small.Set(x, y, r.gradient.At(t))
		}
	}
	bounds := image.Rect(0, 0, cols*cell, rows*cell)
	img := image.NewRGBA(bounds)
	draw.NearestNeighbor.Scale(img, bounds, small, small.Bounds(), draw.Src, nil)

	if err := os.MkdirAll(req.Dir, 0o750); err != nil {
		return nil, goerrors.Errorf("failed to create image directory: %w", err)
	}
	base := filepath.Join(req.Dir, naming.PictureBase(req.Prefix, title, req.Seq))
	pf := &model.PictureFile{
		ID:      req.Seq,
		Title:   title,
		Caption: caption,
		Path:    base + naming.PNG,
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
	}
	if err := draw2dimg.SaveToPngFile(pf.Path, img); err != nil {
		return nil, goerrors.Errorf("failed to save heat map %s: %w", pf.Path, err)
	}

	if req.SVG {
		pf.SVGPath = base + naming.SVG
		if err := r.saveSVG(pf.SVGPath, pos, cell); err != nil {
			return nil, err
		}
	}
	return pf, nil
}

func (r *Renderer) cellFor(hm *model.HeatMap, req model.RenderRequest, cols int) int {
	switch {
	case hm.CellSize > 0:
		return hm.CellSize
	case req.Width > 0 && req.Width >= cols:
		return req.Width / cols
	default:
		return r.cellSize
	}
}

func (r *Renderer) saveSVG(path string, pos [][]float64, cell int) error {
	svg := draw2dsvg.NewSvg()
	gc := draw2dsvg.NewGraphicContext(svg)
	size := float64(cell)
	for y, row := range pos {
		for x, t := range row {
			gc.SetFillColor(r.gradient.At(t))
			gc.BeginPath()
			draw2dkit.Rectangle(gc, float64(x)*size, float64(y)*size, float64(x+1)*size, float64(y+1)*size)
			gc.Fill()
		}
	}
	if err := draw2dsvg.SaveToSvgFile(path, svg); err != nil {
		return goerrors.Errorf("failed to save heat map %s: %w", path, err)
	}
	return nil
}
