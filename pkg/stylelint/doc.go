// Package stylelint runs the external stylelint linter and decodes its
// JSON report into types.LintResult.
//
// The linter is driven through its CLI: the file content goes to stdin with
// --stdin-filename, the report comes back through --formatter json. Inline
// configOverrides are written to a temporary config that extends the
// configured file.
package stylelint
