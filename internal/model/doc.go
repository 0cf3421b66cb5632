// Package model defines the data structures shared by the report page and
// its rendering collaborators.
//
// This package contains the following main types:
//   - PictureFile: metadata for one rendered image (chart or heat map)
//   - RenderRequest: where and how a renderer writes an image
//   - Chart, Series, ComboChart: plot descriptions consumed by the chart renderer
//   - HeatMap: a labelled numeric matrix consumed by the heat map renderer
//
// The page package and the renderer packages both import model; keeping
// these types here avoids an import cycle between them.
package model
