package model

// ChartKind selects how a Chart's series are drawn.
type ChartKind int

const (
	// ChartLine connects the points of each series with a line.
	ChartLine ChartKind = iota

	// ChartBar draws one bar per value, series side by side.
	ChartBar

	// ChartScatter draws unconnected points.
	ChartScatter
)

// String returns a human-readable name for the chart kind.
func (k ChartKind) String() string {
	switch k {
	case ChartLine:
		return "line"
	case ChartBar:
		return "bar"
	case ChartScatter:
		return "scatter"
	default:
		return "unknown"
	}
}

// ParseChartKind converts a name produced by String back to a ChartKind.
// Unknown names yield ChartLine and false.
func ParseChartKind(s string) (ChartKind, bool) {
	switch s {
	case "line", "":
		return ChartLine, true
	case "bar":
		return ChartBar, true
	case "scatter":
		return ChartScatter, true
	default:
		return ChartLine, false
	}
}

// Series is one named sequence of values. Values are plotted against
// their index.
type Series struct {
	Name   string
	Values []float64

	// Color is a CSS hex color ("#1f77b4"). Empty picks from the palette.
	Color string
}

// Chart describes a single plot.
type Chart struct {
	// Name is used to derive the output file name. Defaults to Title.
	Name string

	Title   string
	Caption string
	Kind    ChartKind
	Series  []Series
}

// FileName returns the name the chart's image files are derived from.
func (c *Chart) FileName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Title
}

// ComboChart groups several charts that share an axis and are shown as
// one picture.
type ComboChart struct {
	Name    string
	Title   string
	Caption string
	Charts  []*Chart
}

// Combined flattens the combo into a single chart. Series keep the order
// of the sub-charts; the kind of the first sub-chart wins.
func (c *ComboChart) Combined() *Chart {
	out := &Chart{
		Name:    c.Name,
		Title:   c.Title,
		Caption: c.Caption,
	}
	for i, sub := range c.Charts {
		if sub == nil {
			continue
		}
		if i == 0 {
			out.Kind = sub.Kind
		}
		out.Series = append(out.Series, sub.Series...)
	}
	return out
}
