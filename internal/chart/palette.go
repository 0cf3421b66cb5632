package chart

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// defaultPalette holds the colors assigned to series without an explicit
// color, in order.
var defaultPalette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Palette picks series colors.
type Palette struct {
	colors []colorful.Color
}

// NewPalette creates a palette from CSS hex colors. Invalid entries are
// skipped; an empty result falls back to the default palette.
func NewPalette(hexes ...string) *Palette {
	p := &Palette{}
	for _, h := range hexes {
		if c, err := colorful.Hex(h); err == nil {
			p.colors = append(p.colors, c)
		}
	}
	if len(p.colors) == 0 {
		for _, h := range defaultPalette {
			c, _ := colorful.Hex(h)
			p.colors = append(p.colors, c)
		}
	}
	return p
}

// Color returns the color for the i-th series. hex overrides the palette
// when it is a valid CSS hex color. Past the end of the palette, colors
// continue around the hue circle with the lightness of the last entry.
func (p *Palette) Color(i int, hex string) color.Color {
	if hex != "" {
		if c, err := colorful.Hex(hex); err == nil {
			return c
		}
	}
	if i < len(p.colors) {
		return p.colors[i]
	}
	last := p.colors[len(p.colors)-1]
	_, c, l := last.Hcl()
	h := float64((i-len(p.colors))*47%360) + 15
	return colorful.Hcl(h, c, l).Clamped()
}

// Len returns the number of base colors.
func (p *Palette) Len() int { return len(p.colors) }
