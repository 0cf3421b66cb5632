package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
)

// SummaryWriter prints a short, styled overview of a written report for
// the terminal.
type SummaryWriter struct {
	baseWriter
	styles Styles
}

// NewSummaryWriter creates a SummaryWriter that outputs to the given writer.
func NewSummaryWriter(output io.Writer) *SummaryWriter {
	return &SummaryWriter{
		baseWriter: newBaseWriter(output),
		styles:     DefaultStyles(),
	}
}

// Write outputs the summary of res.
func (w *SummaryWriter) Write(res *Result) (int, error) {
	s := w.styles
	var b strings.Builder

	fmt.Fprintln(&b, s.Header.Render(res.Title))
	w.line(&b, "Directory", res.Dir)
	w.line(&b, "Pages", strconv.Itoa(len(res.Pages)))
	w.line(&b, "Pictures", humanize.Comma(int64(res.PictureCount())))
	w.line(&b, "Size", humanize.Bytes(uint64(max(res.TotalSize(), 0))))
	w.line(&b, "Elapsed", res.Elapsed.Round(time.Millisecond).String())

	if len(res.Pages) > 0 {
		rows := make([][]string, 0, len(res.Pages))
		for _, p := range res.Pages {
			rows = append(rows, []string{
				p.File,
				strconv.Itoa(len(p.Pictures)),
				humanize.Bytes(uint64(max(p.Size+p.PictureSize, 0))),
			})
		}
		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(s.Border).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return s.TableHeader
				}
				return s.TableCell
			}).
			Headers("PAGE", "PICTURES", "SIZE").
			Rows(rows...)
		fmt.Fprintln(&b, t)
	}

	fmt.Fprintln(&b, s.Muted.Render("open "+res.Dir+"/index.html or run 'xreport serve "+res.Dir+"'"))
	return io.WriteString(w.output, b.String())
}

func (w *SummaryWriter) line(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s %s\n", w.styles.SummaryLabel.Render(label), w.styles.SummaryValue.Render(value))
}
