// Package page implements Page, an append-only builder for one HTML report
// page.
//
// A page accumulates blocks (text, tables, images, error notices) in call
// order and serializes the whole document on Write. It hides the HTML
// library behind the Document interface and the image libraries behind
// ChartRenderer and HeatMapRenderer, so report code only deals with
// results: charts, heat maps and tabular data.
//
// # Error policy
//
// Image failures degrade: AddChart, AddComboChart and AddHeatMap never
// fail, they log the problem and append an error block with the message
// "Trouble saving image" instead of the picture. The rest of the page
// stays usable.
//
// Data failures propagate: AddRichTable returns the first error reported
// by its TabularDataSource and appends nothing.
//
// # Lifecycle
//
//	pg := page.New("gsea_report", "GSEA Report", page.WithLogger(logger))
//	pg.AddKeyValueTable("Parameters", params)
//	pg.AddChart(chart, 500, 400, outDir, true)
//	if err := pg.AddRichTable(frame, "sets.tsv", true, true); err != nil {
//	    return err
//	}
//	return pg.Write(file) // renders and closes file
//
// A page has a single owner and is not safe for concurrent use. Write is
// terminal; mutating a page after Write is not supported.
package page
