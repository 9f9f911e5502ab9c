package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/stylelint-loader/pkg/config"
	"github.com/arthur-debert/stylelint-loader/pkg/errors"
	"github.com/arthur-debert/stylelint-loader/pkg/loader"
	"github.com/arthur-debert/stylelint-loader/pkg/logging"
	"github.com/arthur-debert/stylelint-loader/pkg/report"
	"github.com/arthur-debert/stylelint-loader/pkg/stylelint"
	"github.com/arthur-debert/stylelint-loader/pkg/ui"
	"github.com/arthur-debert/stylelint-loader/pkg/watch"
)

// relintQuery makes re-lints of changed files bypass the dedup cache
const relintQuery = "?ignoreCache"

type lintOptions struct {
	format      string
	watch       bool
	concurrency int
}

func newLintCmd(g *globalOptions) *cobra.Command {
	opts := lintOptions{}

	cmd := &cobra.Command{
		Use:     "lint [paths...]",
		Short:   MsgLintShort,
		Long:    MsgLintLong,
		Example: MsgLintExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, g, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "auto", MsgFlagFormat)
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, MsgFlagWatch)
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "j", 0, MsgFlagConcurrency)

	return cmd
}

func runLint(cmd *cobra.Command, g *globalOptions, opts lintOptions, args []string) error {
	logger := logging.GetLogger("cli.lint")

	format, err := ui.ParseFormat(opts.format)
	if err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "invalid --format")
	}
	format = ui.Resolve(format, os.Stdout)

	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "invalid --format")
	}

	host := g.hostOptions(cmd)
	if ui.IsMachineReadable(format) {
		// the console echo would corrupt machine-readable output
		host[config.KeyDisplayOutput] = false
	}
	if format == ui.FormatText {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	l, err := g.newLoader(host, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"."}
	}
	files, err := collectStylesheets(args)
	if err != nil {
		return err
	}
	logger.Info().Int("files", len(files)).Str("format", format.String()).Msg("Linting stylesheets")

	if len(files) == 0 && !opts.watch {
		fmt.Fprintln(cmd.ErrOrStderr(), MsgNoFiles)
		return nil
	}

	reports, err := lintFiles(cmd.Context(), l, files, "", opts.concurrency)
	if err != nil {
		return err
	}
	summary, err := render(renderer, reports)
	if err != nil {
		return err
	}

	if opts.watch {
		return watchAndLint(cmd, l, args, renderer, opts.concurrency)
	}

	if summary.Errors > 0 {
		return errors.Newf(errors.ErrLint, MsgErrLintErrors, summary.Errors)
	}
	return nil
}

func render(renderer ui.Renderer, reports []report.FileReport) (report.Summary, error) {
	summary := report.Summarize(reports)
	if err := renderer.RenderReports(reports); err != nil {
		return summary, errors.Wrap(err, errors.ErrInternal, "failed to render reports")
	}
	if err := renderer.RenderSummary(summary); err != nil {
		return summary, errors.Wrap(err, errors.ErrInternal, "failed to render summary")
	}
	return summary, nil
}

// fileContext is the loader host for one file linted from the CLI
type fileContext struct {
	*report.Collector
	path  string
	query string
}

func (c *fileContext) ResourcePath() string { return c.path }
func (c *fileContext) Query() string        { return c.query }

// lintFiles runs the loader over files with bounded concurrency. Reports
// keep the order of files.
func lintFiles(ctx context.Context, l *loader.Loader, files []string, query string, limit int) ([]report.FileReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	reports := make([]report.FileReport, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			content, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", path)
			}

			host := &fileContext{Collector: report.NewCollector(path), path: path, query: query}
			if _, err := l.Load(gctx, content, host); err != nil {
				return err
			}
			reports[i] = host.Report()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// collectStylesheets expands directories into the stylesheets they hold.
// Files named explicitly are kept whatever their extension.
func collectStylesheets(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	ignored := make(map[string]bool, len(watch.DefaultIgnore))
	for _, name := range watch.DefaultIgnore {
		ignored[name] = true
	}

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid path %s", p)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileRead, "cannot access %s", p)
		}
		if !info.IsDir() {
			add(abs)
			continue
		}

		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != abs && ignored[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			if stylelint.IsStylesheet(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to walk %s", p)
		}
	}

	sort.Strings(files)
	return files, nil
}

func watchAndLint(cmd *cobra.Command, l *loader.Loader, roots []string, renderer ui.Renderer, limit int) error {
	logger := logging.GetLogger("cli.watch")
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	w, err := watch.New(roots, func(paths []string) {
		reports, err := lintFiles(ctx, l, paths, relintQuery, limit)
		if err != nil {
			logger.Error().Err(err).Msg("Lint failed")
			return
		}
		if _, err := render(renderer, reports); err != nil {
			logger.Error().Err(err).Msg("Failed to render report")
		}
	}, watch.Options{})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.ErrOrStderr(), MsgWatching)
	return w.Run(ctx)
}
