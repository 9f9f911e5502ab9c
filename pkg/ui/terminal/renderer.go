// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"

	"github.com/arthur-debert/stylelint-loader/pkg/report"
	"github.com/arthur-debert/stylelint-loader/pkg/ui/styles"
)

// SummaryFormat is the line printed after a run
const SummaryFormat = "%d file(s) linted: %d warning(s), %d error(s)"

// Renderer styles the run summary by its worst finding
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

// RenderReports does nothing, the loader echoed every file already
func (r *Renderer) RenderReports([]report.FileReport) error {
	return nil
}

// RenderSummary renders the totals in red, yellow or muted gray
func (r *Renderer) RenderSummary(s report.Summary) error {
	style := styles.Muted
	switch {
	case s.Errors > 0:
		style = styles.Error
	case s.Warnings > 0:
		style = styles.Warning
	}
	line := fmt.Sprintf(SummaryFormat, s.Files, s.Warnings, s.Errors)
	_, err := fmt.Fprintln(r.output, styles.Render(styles.Bold, styles.Render(style, line)))
	return err
}
