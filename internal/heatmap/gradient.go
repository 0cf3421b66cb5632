package heatmap

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Gradient maps values in [0, 1] to colors through a middle color.
type Gradient struct {
	low, mid, high colorful.Color
	missing        color.Color
}

// DefaultGradient returns the blue-white-red gradient.
func DefaultGradient() *Gradient {
	g, _ := NewGradient("#2166ac", "#f7f7f7", "#b2182b")
	return g
}

// NewGradient creates a gradient from three CSS hex colors.
func NewGradient(low, mid, high string) (*Gradient, error) {
	var (
		g   = &Gradient{missing: color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}}
		err error
	)
	if g.low, err = colorful.Hex(low); err != nil {
		return nil, err
	}
	if g.mid, err = colorful.Hex(mid); err != nil {
		return nil, err
	}
	if g.high, err = colorful.Hex(high); err != nil {
		return nil, err
	}
	return g, nil
}

// At returns the color for t. t is clamped to [0, 1]; NaN gives the
// color used for missing values.
func (g *Gradient) At(t float64) color.Color {
	if math.IsNaN(t) {
		return g.missing
	}
	t = math.Max(0, math.Min(1, t))
	if t < 0.5 {
		return g.low.BlendLab(g.mid, t*2).Clamped()
	}
	return g.mid.BlendLab(g.high, (t-0.5)*2).Clamped()
}

// scale returns the position of every cell of hm in [0, 1], NaN for
// values that are not finite.
func scale(hm [][]float64, rowRelative bool) [][]float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	if !rowRelative {
		for _, row := range hm {
			rlo, rhi := bounds(row)
			lo, hi = math.Min(lo, rlo), math.Max(hi, rhi)
		}
	}

	out := make([][]float64, len(hm))
	for r, row := range hm {
		if rowRelative {
			lo, hi = bounds(row)
		}
		out[r] = make([]float64, len(row))
		for c, v := range row {
			switch {
			case math.IsNaN(v) || math.IsInf(v, 0):
				out[r][c] = math.NaN()
			case hi == lo:
				out[r][c] = 0.5
			default:
				out[r][c] = (v - lo) / (hi - lo)
			}
		}
	}
	return out
}

// bounds returns the finite minimum and maximum of row.
func bounds(row []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range row {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
