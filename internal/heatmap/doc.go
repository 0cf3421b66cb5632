// Package heatmap renders model.HeatMap matrices as images.
//
// Values are mapped onto a diverging blue-white-red gradient blended in
// CIE L*a*b* space. With model.SchemeRowRelative every row is scaled to
// its own range, which is how expression profiles are usually compared;
// model.SchemeGlobal uses one range for the whole matrix.
package heatmap
