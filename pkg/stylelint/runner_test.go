// pkg/stylelint/runner_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: /bin/sh
// PURPOSE: Drive Runner against a shell script standing in for stylelint

package stylelint

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/stylelint-loader/pkg/errors"
	"github.com/arthur-debert/stylelint-loader/pkg/types"
)

const fakeStylelint = `#!/bin/sh
printf '%s\n' "$@" > "$ARGS_FILE"
cat > "$STDIN_FILE"
if [ -n "$REPORT_TO_STDERR" ]; then
  cat "$REPORT_FILE" >&2
else
  cat "$REPORT_FILE"
fi
if [ -n "$FAIL_MESSAGE" ]; then
  echo "$FAIL_MESSAGE" >&2
fi
exit ${EXIT_CODE:-0}
`

type fakeEnv struct {
	dir     string
	script  string
	args    string
	stdin   string
	report  string
	options types.Options
}

func newFakeEnv(t *testing.T, report string) *fakeEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	dir := t.TempDir()
	f := &fakeEnv{
		dir:    dir,
		script: filepath.Join(dir, "stylelint.sh"),
		args:   filepath.Join(dir, "args.txt"),
		stdin:  filepath.Join(dir, "stdin.txt"),
		report: filepath.Join(dir, "report.json"),
	}
	require.NoError(t, os.WriteFile(f.script, []byte(fakeStylelint), 0755))
	require.NoError(t, os.WriteFile(f.report, []byte(report), 0644))
	f.options = types.Options{
		Command: []string{"sh", f.script},
		Timeout: 10 * time.Second,
	}
	return f
}

func (f *fakeEnv) runner(extra ...string) *Runner {
	r := NewRunner(f.dir)
	r.Env = append([]string{
		"ARGS_FILE=" + f.args,
		"STDIN_FILE=" + f.stdin,
		"REPORT_FILE=" + f.report,
	}, extra...)
	return r
}

func (f *fakeEnv) readArgs(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(f.args)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

const oneWarning = `[{"source":"/src/a.scss","errored":false,"warnings":[{"line":1,"column":3,"rule":"block-no-empty","severity":"warning","text":"Unexpected empty block (block-no-empty)"}]}]`

func TestRunner_LintsContentFromStdin(t *testing.T) {
	f := newFakeEnv(t, oneWarning)

	result, err := f.runner().Lint(context.Background(), Request{
		Path:    "/src/a.scss",
		Content: []byte("a {}"),
		Options: f.options,
	})
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "block-no-empty", result.Warnings[0].Rule)

	stdin, err := os.ReadFile(f.stdin)
	require.NoError(t, err)
	assert.Equal(t, "a {}", string(stdin))

	assert.Equal(t, []string{
		"--formatter", "json",
		"--custom-syntax", "postcss-scss",
		"--stdin-filename", "/src/a.scss",
	}, f.readArgs(t))
}

func TestRunner_PassesConfigFlags(t *testing.T) {
	f := newFakeEnv(t, "[]")
	opts := f.options
	opts.Command = append(opts.Command, "--cache")
	opts.ConfigFile = "/project/.stylelintrc.json"
	opts.ConfigBasedir = "/project"
	opts.CustomSyntax = "postcss-html"
	opts.Quiet = true

	_, err := f.runner().Lint(context.Background(), Request{Path: "/src/a.css", Options: opts})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"--cache",
		"--formatter", "json",
		"--config", "/project/.stylelintrc.json",
		"--config-basedir", "/project",
		"--custom-syntax", "postcss-html",
		"--quiet",
		"/src/a.css",
	}, f.readArgs(t))
}

func TestRunner_OverridesUseTemporaryConfig(t *testing.T) {
	f := newFakeEnv(t, "[]")
	opts := f.options
	opts.ConfigOverrides = map[string]interface{}{
		"rules": map[string]interface{}{"unit-disallowed-list": []interface{}{"em"}},
	}

	_, err := f.runner().Lint(context.Background(), Request{Path: "/src/a.css", Content: []byte(""), Options: opts})
	require.NoError(t, err)

	args := f.readArgs(t)
	require.Contains(t, args, "--config")
	configPath := args[indexOf(args, "--config")+1]
	assert.Contains(t, filepath.Base(configPath), "stylelint-loader-")
	assert.Equal(t, f.dir, args[indexOf(args, "--config-basedir")+1])

	_, err = os.Stat(configPath)
	assert.True(t, os.IsNotExist(err), "temporary config should be removed")
}

func TestRunner_ProblemsExitCode(t *testing.T) {
	f := newFakeEnv(t, oneWarning)

	result, err := f.runner("EXIT_CODE=2").Lint(context.Background(), Request{
		Path: "/src/a.scss", Content: []byte("a {}"), Options: f.options,
	})
	require.NoError(t, err)
	assert.Len(t, result.Warnings, 1)
}

func TestRunner_ReportOnStderr(t *testing.T) {
	f := newFakeEnv(t, oneWarning)

	result, err := f.runner("EXIT_CODE=2", "REPORT_TO_STDERR=1").Lint(context.Background(), Request{
		Path: "/src/a.scss", Content: []byte("a {}"), Options: f.options,
	})
	require.NoError(t, err)
	assert.Len(t, result.Warnings, 1)
}

func TestRunner_Failure(t *testing.T) {
	f := newFakeEnv(t, "")

	_, err := f.runner("EXIT_CODE=78", "FAIL_MESSAGE=No configuration provided").Lint(context.Background(), Request{
		Path: "/src/a.css", Content: []byte(""), Options: f.options,
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLint))
	assert.Contains(t, err.Error(), "No configuration provided")
	assert.Equal(t, 78, errors.GetErrorDetails(err)["exitCode"])
}

func TestRunner_MissingCommand(t *testing.T) {
	r := NewRunner(t.TempDir())
	_, err := r.Lint(context.Background(), Request{
		Path:    "a.css",
		Options: types.Options{Command: []string{"stylelint-loader-does-not-exist"}},
	})
	assert.True(t, errors.IsErrorCode(err, errors.ErrLint))

	_, err = r.Lint(context.Background(), Request{Path: "a.css"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
}

func TestRunner_Timeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
	r := NewRunner(t.TempDir())
	_, err := r.Lint(context.Background(), Request{
		Path: "a.css",
		Options: types.Options{
			Command: []string{"sh", "-c", "exec sleep 5"},
			Timeout: 100 * time.Millisecond,
		},
	})
	assert.True(t, errors.IsErrorCode(err, errors.ErrLintTimeout))
}

func TestWriteOverrideConfig(t *testing.T) {
	path, err := writeOverrideConfig("/project/.stylelintrc.json", map[string]interface{}{
		"extends": "stylelint-config-standard",
		"rules":   map[string]interface{}{"color-hex-case": "lower"},
	})
	require.NoError(t, err)
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var config map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &config))
	assert.Equal(t, []interface{}{"/project/.stylelintrc.json", "stylelint-config-standard"}, config["extends"])
	assert.Equal(t, map[string]interface{}{"color-hex-case": "lower"}, config["rules"])
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
