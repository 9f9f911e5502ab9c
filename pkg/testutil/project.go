package testutil

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

// fakeStylelint discards stdin and prints the report stored next to it.
// stylelint exits with 2 when it found problems.
const fakeStylelint = `#!/bin/sh
cat > /dev/null
cat "$(dirname "$0")/report.json"
exit ${FAKE_STYLELINT_EXIT:-2}
`

// Project is an isolated project root for end-to-end tests
type Project struct {
	t    *testing.T
	Root string
}

// NewProject creates an empty project root and points the log file at a
// temporary state directory
func NewProject(t *testing.T) *Project {
	t.Helper()

	t.Setenv("XDG_STATE_HOME", t.TempDir())
	return &Project{t: t, Root: TempDir(t)}
}

// Path joins name to the project root
func (p *Project) Path(name string) string {
	return filepath.Join(p.Root, name)
}

// WriteFile creates a file relative to the project root
func (p *Project) WriteFile(name, content string) string {
	p.t.Helper()
	return CreateFile(p.t, p.Root, name, content)
}

// UseFakeStylelint installs a stand-in for stylelint that prints report,
// and a project file selecting it. extra lines are appended to the
// project file.
func (p *Project) UseFakeStylelint(report string, extra ...string) {
	p.t.Helper()
	RequireShell(p.t)

	script := p.WriteFile(".bin/stylelint.sh", fakeStylelint)
	p.SetReport(report)

	lines := []string{
		fmt.Sprintf("command = [%q, %q]", "sh", script),
		`timeout = "10s"`,
	}
	lines = append(lines, extra...)
	p.WriteFile(".stylelint-loader.toml", strings.Join(lines, "\n")+"\n")
}

// SetReport replaces the report the stand-in prints
func (p *Project) SetReport(report string) {
	p.t.Helper()
	p.WriteFile(".bin/report.json", report)
}
