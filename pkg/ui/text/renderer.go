// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/stylelint-loader/pkg/report"
	"github.com/arthur-debert/stylelint-loader/pkg/ui/terminal"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderReports does nothing, the loader echoed every file already
func (r *Renderer) RenderReports([]report.FileReport) error {
	return nil
}

// RenderSummary renders the totals as plain text
func (r *Renderer) RenderSummary(s report.Summary) error {
	_, err := fmt.Fprintf(r.output, terminal.SummaryFormat+"\n", s.Files, s.Warnings, s.Errors)
	return err
}
