package types

import (
	"fmt"
	"strconv"
)

// Severity is the severity reported by the linter for a diagnostic
type Severity string

const (
	// SeverityWarning is stylelint's canonical warning severity
	SeverityWarning Severity = "warning"

	// SeverityWarn is the short form accepted in rule configs
	SeverityWarn Severity = "warn"

	// SeverityError marks a diagnostic for the host's error channel
	SeverityError Severity = "error"

	// SeverityNone means the linter did not report a severity
	SeverityNone Severity = ""
)

// IsWarning reports whether s routes to the warning channel
func (s Severity) IsWarning() bool {
	return s == SeverityWarning || s == SeverityWarn
}

// Kind tells which part of a lint result a diagnostic came from
type Kind string

const (
	KindRule          Kind = "rule"
	KindDeprecation   Kind = "deprecation"
	KindInvalidOption Kind = "invalidOption"
)

// Diagnostic is a single linter finding
type Diagnostic struct {
	// Line is 1-based; 0 means the linter gave no line
	Line int `json:"line,omitempty"`

	// Column is 1-based; 0 means the linter gave no column
	Column int `json:"column,omitempty"`

	// Rule is the stylelint rule name, if any
	Rule string `json:"rule,omitempty"`

	Severity Severity `json:"severity,omitempty"`
	Text     string   `json:"text"`
	Kind     Kind     `json:"kind"`
}

// Location renders "line:column". Diagnostics about the configuration
// rather than the source carry symbolic positions instead.
func (d Diagnostic) Location() string {
	line := "config"
	if d.Line > 0 {
		line = strconv.Itoa(d.Line)
	} else if d.Kind == KindRule {
		line = "0"
	}

	var column string
	switch {
	case d.Column > 0:
		column = strconv.Itoa(d.Column)
	case d.Kind == KindDeprecation:
		column = "deprecated"
	case d.Kind == KindInvalidOption:
		column = "invalid"
	default:
		column = "0"
	}
	return line + ":" + column
}

// Message is the text handed to the host channels
func (d Diagnostic) Message() string {
	return fmt.Sprintf("%s %s", d.Location(), d.Text)
}

// LintResult is the linter's result for one file
type LintResult struct {
	Source                string       `json:"source"`
	Errored               bool         `json:"errored"`
	Warnings              []Diagnostic `json:"warnings"`
	Deprecations          []Diagnostic `json:"deprecations"`
	InvalidOptionWarnings []Diagnostic `json:"invalidOptionWarnings"`
}

// Empty reports whether there is nothing to report
func (r *LintResult) Empty() bool {
	return r == nil ||
		len(r.Warnings) == 0 && len(r.Deprecations) == 0 && len(r.InvalidOptionWarnings) == 0
}

// Diagnostics returns every finding in reporting order: deprecations
// (always warnings), invalid options (always errors), then rule warnings
// with the severity the linter gave them.
func (r *LintResult) Diagnostics() []Diagnostic {
	if r == nil {
		return nil
	}

	out := make([]Diagnostic, 0, len(r.Deprecations)+len(r.InvalidOptionWarnings)+len(r.Warnings))
	for _, d := range r.Deprecations {
		d.Severity = SeverityWarn
		d.Kind = KindDeprecation
		out = append(out, d)
	}
	for _, d := range r.InvalidOptionWarnings {
		d.Severity = SeverityError
		d.Kind = KindInvalidOption
		out = append(out, d)
	}
	for _, d := range r.Warnings {
		d.Kind = KindRule
		out = append(out, d)
	}
	return out
}
