package stylelint

import (
	"context"

	"github.com/arthur-debert/stylelint-loader/pkg/types"
)

// Request is one file to lint
type Request struct {
	// Path is the resource path reported to the linter
	Path string

	// Content is linted instead of the file on disk when non-nil
	Content []byte

	Options types.Options
}

// Linter lints one file
type Linter interface {
	Lint(ctx context.Context, req Request) (*types.LintResult, error)
}

// LinterFunc adapts a function to the Linter interface
type LinterFunc func(ctx context.Context, req Request) (*types.LintResult, error)

// Lint calls f
func (f LinterFunc) Lint(ctx context.Context, req Request) (*types.LintResult, error) {
	return f(ctx, req)
}
