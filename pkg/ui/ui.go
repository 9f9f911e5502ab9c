// Package ui renders the outcome of a lint run in different formats.
// It supports terminal (rich), text (plain), JSON and checkstyle output.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/stylelint-loader/pkg/report"
	"github.com/arthur-debert/stylelint-loader/pkg/ui/checkstyle"
	"github.com/arthur-debert/stylelint-loader/pkg/ui/json"
	"github.com/arthur-debert/stylelint-loader/pkg/ui/terminal"
	"github.com/arthur-debert/stylelint-loader/pkg/ui/text"
)

// Renderer is the common interface for all output renderers.
//
// Terminal and text renderers only print the summary: per-file diagnostics
// were already echoed by the loader while linting. Machine-readable
// renderers print the reports and nothing else.
type Renderer interface {
	// RenderReports renders the diagnostics collected per file
	RenderReports(reports []report.FileReport) error

	// RenderSummary renders the totals of a run
	RenderSummary(summary report.Summary) error
}

// NewRenderer creates a new renderer based on the specified format.
// It automatically detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		// If not a file, default to text format
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	case FormatCheckstyle:
		return checkstyle.New(output), nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}

// IsMachineReadable reports whether f must not be mixed with console echo
func IsMachineReadable(f Format) bool {
	return f == FormatJSON || f == FormatCheckstyle
}
