// Package checkstyle provides checkstyle XML output for CI tooling
package checkstyle

import (
	"io"
	"strconv"

	"github.com/beevik/etree"

	"github.com/arthur-debert/stylelint-loader/pkg/report"
)

// Version is the checkstyle format version CI parsers expect
const Version = "4.3"

// Renderer writes checkstyle XML
type Renderer struct {
	output io.Writer
}

// New creates a new checkstyle renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderReports renders every file report as one checkstyle document.
// Files without findings are listed so CI marks them as passing.
func (r *Renderer) RenderReports(reports []report.FileReport) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("checkstyle")
	root.CreateAttr("version", Version)

	for _, fr := range reports {
		file := root.CreateElement("file")
		file.CreateAttr("name", fr.Path)

		for _, e := range fr.Entries {
			el := file.CreateElement("error")
			if d := e.Diagnostic; d != nil {
				if d.Line > 0 {
					el.CreateAttr("line", strconv.Itoa(d.Line))
				}
				if d.Column > 0 {
					el.CreateAttr("column", strconv.Itoa(d.Column))
				}
			}
			el.CreateAttr("severity", e.Severity)
			el.CreateAttr("message", message(e))
			el.CreateAttr("source", source(e))
		}
	}

	doc.Indent(2)
	_, err := doc.WriteTo(r.output)
	return err
}

func message(e report.Entry) string {
	if e.Diagnostic != nil {
		return e.Diagnostic.Text
	}
	return e.Message
}

func source(e report.Entry) string {
	if e.Diagnostic == nil {
		return "stylelint-loader"
	}
	if e.Diagnostic.Rule != "" {
		return "stylelint.rules." + e.Diagnostic.Rule
	}
	return "stylelint." + string(e.Diagnostic.Kind)
}

// RenderSummary does nothing so the output stays a single document
func (r *Renderer) RenderSummary(report.Summary) error {
	return nil
}
