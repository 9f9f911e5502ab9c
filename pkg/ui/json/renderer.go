// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/stylelint-loader/pkg/report"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	output  io.Writer
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{
		output:  output,
		encoder: encoder,
	}
}

// RenderReports renders every file report as one JSON array
func (r *Renderer) RenderReports(reports []report.FileReport) error {
	if reports == nil {
		reports = []report.FileReport{}
	}
	return r.encoder.Encode(reports)
}

// RenderSummary does nothing so the output stays a single document
func (r *Renderer) RenderSummary(report.Summary) error {
	return nil
}
