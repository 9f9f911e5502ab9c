// Package loader is the adapter between a host bundler and stylelint.
//
// For every stylesheet the host hands over, Load resolves options, skips
// files already linted in this process, checks the configured stylelint
// config, runs the linter and reports its diagnostics through the host's
// warning and error channels. The content is always returned unchanged.
package loader

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/stylelint-loader/pkg/cache"
	"github.com/arthur-debert/stylelint-loader/pkg/config"
	"github.com/arthur-debert/stylelint-loader/pkg/errors"
	"github.com/arthur-debert/stylelint-loader/pkg/logging"
	"github.com/arthur-debert/stylelint-loader/pkg/report"
	"github.com/arthur-debert/stylelint-loader/pkg/stylelint"
	"github.com/arthur-debert/stylelint-loader/pkg/types"
)

// Context is what the host provides for one module
type Context interface {
	types.Emitter

	// ResourcePath is the absolute path of the file being loaded
	ResourcePath() string

	// Query is the inline option string of the import, e.g. "?-displayOutput"
	Query() string
}

// Options configures a Loader
type Options struct {
	// Resolver supplies options; required
	Resolver *config.Resolver

	// Linter defaults to a stylelint.Runner in the project root
	Linter stylelint.Linter

	// Cache defaults to the process-wide cache
	Cache *cache.Cache

	// Console receives colored output when displayOutput is on
	Console io.Writer
}

// Loader lints stylesheets on behalf of a host
type Loader struct {
	resolver *config.Resolver
	linter   stylelint.Linter
	cache    *cache.Cache
	reporter *report.Reporter
	logger   zerolog.Logger
}

// New creates a Loader
func New(opts Options) (*Loader, error) {
	if opts.Resolver == nil {
		return nil, errors.New(errors.ErrInvalidInput, "loader requires a config resolver")
	}

	l := &Loader{
		resolver: opts.Resolver,
		linter:   opts.Linter,
		cache:    opts.Cache,
		reporter: report.New(opts.Console),
		logger:   logging.GetLogger("loader"),
	}
	if l.cache == nil {
		l.cache = cache.Default()
	}
	if l.linter == nil {
		l.linter = stylelint.NewRunner(opts.Resolver.Root())
	}
	return l, nil
}

// Load lints content for the module described by host. It returns content
// unchanged, or an error when the linter itself failed.
func (l *Loader) Load(ctx context.Context, content []byte, host Context) ([]byte, error) {
	path := host.ResourcePath()
	logger := l.logger.With().Str("path", path).Logger()

	opts, err := l.resolver.Resolve(host.Query())
	if err != nil {
		return nil, err
	}

	if !opts.IgnoreCache && !l.cache.MarkIfNew(path) {
		logger.Debug().Msg("Already linted, skipping")
		return content, nil
	}

	if err := config.CheckConfigFile(opts); err != nil {
		logger.Warn().Err(err).Msg("Stylelint config file unavailable, skipping lint")
		l.reporter.Warn(config.MissingConfigMessage(opts), opts, host)
		return content, nil
	}

	result, err := l.linter.Lint(ctx, stylelint.Request{
		Path:    path,
		Content: content,
		Options: opts,
	})
	if err != nil {
		if errors.GetErrorCode(err) == errors.ErrUnknown {
			err = errors.Wrapf(err, errors.ErrLint, "failed to lint %s", path)
		}
		return nil, err
	}

	logger.Debug().
		Int("warnings", len(result.Warnings)).
		Int("deprecations", len(result.Deprecations)).
		Int("invalidOptions", len(result.InvalidOptionWarnings)).
		Msg("Lint finished")

	l.reporter.Report(path, result, opts, host)

	return content, nil
}
