// Package testutil provides utilities for testing stylelint-loader components.
//
// Key components:
//   - file helpers that fail the test instead of returning errors
//   - Project: an isolated project root with its own log directory
//   - a shell script standing in for stylelint, printing a canned report
//
// Tests that run the stand-in are skipped where /bin/sh is unavailable.
package testutil
