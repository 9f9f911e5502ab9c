package stylelint

import (
	"bytes"
	"encoding/json"

	"github.com/arthur-debert/stylelint-loader/pkg/errors"
	"github.com/arthur-debert/stylelint-loader/pkg/types"
)

// ParseReport decodes the JSON formatter output and returns the first
// result. Missing or null warnings, deprecations and invalid option
// warnings decode to empty lists; a missing severity stays empty.
func ParseReport(data []byte, path string) (*types.LintResult, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New(errors.ErrLintOutput, "stylelint produced no report")
	}

	var results []types.LintResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, errors.Wrap(err, errors.ErrLintOutput, "failed to decode stylelint report")
	}

	if len(results) == 0 {
		return &types.LintResult{Source: path}, nil
	}

	result := results[0]
	if result.Source == "" {
		result.Source = path
	}
	return &result, nil
}
