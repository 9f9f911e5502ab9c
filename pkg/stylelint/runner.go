package stylelint

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/stylelint-loader/pkg/errors"
	"github.com/arthur-debert/stylelint-loader/pkg/logging"
	"github.com/arthur-debert/stylelint-loader/pkg/types"
)

// exitProblems is stylelint's exit code when the report contains errors
const exitProblems = 2

// Runner lints by executing the configured stylelint command
type Runner struct {
	// Dir is the working directory of the linter, usually the project root
	Dir string

	// Env is appended to the current environment
	Env []string

	logger zerolog.Logger
}

// NewRunner creates a Runner working in dir
func NewRunner(dir string) *Runner {
	return &Runner{
		Dir:    dir,
		logger: logging.GetLogger("stylelint"),
	}
}

// Lint runs stylelint for one file and returns its result
func (r *Runner) Lint(ctx context.Context, req Request) (*types.LintResult, error) {
	opts := req.Options
	if len(opts.Command) == 0 {
		return nil, errors.New(errors.ErrConfigInvalid, "no stylelint command configured")
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	args, cleanup, err := r.buildArgs(req)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	cmd := exec.CommandContext(ctx, opts.Command[0], args...)
	cmd.Dir = r.Dir
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}
	if req.Content != nil {
		cmd.Stdin = bytes.NewReader(req.Content)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.LogCommand(r.logger, opts.Command[0], args)
	done := logging.LogOperationStart(r.logger, "stylelint "+req.Path)
	runErr := cmd.Run()
	done()

	if ctx.Err() == context.DeadlineExceeded {
		return nil, errors.Newf(errors.ErrLintTimeout, "stylelint timed out after %s", opts.Timeout).
			WithDetail("path", req.Path)
	}

	exitCode := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if !stderrors.As(runErr, &exitErr) {
			return nil, errors.Wrapf(runErr, errors.ErrLint, "failed to run %s", opts.Command[0])
		}
		exitCode = exitErr.ExitCode()
	}

	if exitCode != 0 && exitCode != exitProblems {
		return nil, lintFailure(exitCode, stderr.String(), req.Path)
	}

	report := stdout.Bytes()
	if len(bytes.TrimSpace(report)) == 0 {
		report = stderr.Bytes()
	}

	result, err := ParseReport(report, req.Path)
	if err != nil {
		if exitCode != 0 {
			return nil, lintFailure(exitCode, stderr.String(), req.Path)
		}
		return nil, err
	}

	r.logger.Debug().
		Str("path", req.Path).
		Int("exitCode", exitCode).
		Int("warnings", len(result.Warnings)).
		Bool("errored", result.Errored).
		Msg("stylelint finished")

	return result, nil
}

func lintFailure(exitCode int, stderr, path string) error {
	msg := strings.TrimSpace(stderr)
	if msg == "" {
		msg = "no output"
	}
	return errors.Newf(errors.ErrLint, "stylelint exited with code %d: %s", exitCode, msg).
		WithDetail("path", path).
		WithDetail("exitCode", exitCode)
}

// buildArgs assembles the linter arguments. The returned cleanup removes
// any temporary config and must always be called.
func (r *Runner) buildArgs(req Request) ([]string, func(), error) {
	opts := req.Options
	cleanup := func() {}

	args := append([]string{}, opts.Command[1:]...)
	args = append(args, "--formatter", "json")

	configBasedir := opts.ConfigBasedir
	switch {
	case len(opts.ConfigOverrides) > 0:
		path, err := writeOverrideConfig(opts.ConfigFile, opts.ConfigOverrides)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = func() { _ = os.Remove(path) }
		args = append(args, "--config", path)
		// Plugins and extends named in the overrides must resolve from the
		// project, not from the temp directory
		if configBasedir == "" {
			configBasedir = r.Dir
		}
	case opts.ConfigFile != "":
		args = append(args, "--config", opts.ConfigFile)
	}

	if configBasedir != "" {
		args = append(args, "--config-basedir", configBasedir)
	}
	if syntax := CustomSyntax(req.Path, opts.CustomSyntax); syntax != "" {
		args = append(args, "--custom-syntax", syntax)
	}
	if opts.Quiet {
		args = append(args, "--quiet")
	}

	if req.Content != nil {
		args = append(args, "--stdin-filename", req.Path)
	} else {
		args = append(args, req.Path)
	}
	return args, cleanup, nil
}

// writeOverrideConfig writes a stylelint config that extends configFile (if
// any) with overrides laid on top
func writeOverrideConfig(configFile string, overrides map[string]interface{}) (string, error) {
	config := make(map[string]interface{}, len(overrides)+1)
	for k, v := range overrides {
		config[k] = v
	}
	if configFile != "" {
		extends := []interface{}{configFile}
		switch existing := config["extends"].(type) {
		case string:
			extends = append(extends, existing)
		case []interface{}:
			extends = append(extends, existing...)
		case []string:
			for _, e := range existing {
				extends = append(extends, e)
			}
		}
		config["extends"] = extends
	}

	data, err := json.Marshal(config)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrConfigInvalid, "configOverrides cannot be encoded")
	}

	f, err := os.CreateTemp("", "stylelint-loader-*.json")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to create temporary config")
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(data); err != nil {
		_ = os.Remove(f.Name())
		return "", errors.Wrap(err, errors.ErrInternal, "failed to write temporary config")
	}
	return f.Name(), nil
}
