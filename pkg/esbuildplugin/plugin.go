// Package esbuildplugin hooks the loader into esbuild builds.
//
// The plugin registers an OnLoad callback for stylesheets. It never returns
// contents, so esbuild (or the next plugin) still loads the file itself;
// the callback only contributes warnings and errors.
package esbuildplugin

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/arthur-debert/stylelint-loader/pkg/errors"
	"github.com/arthur-debert/stylelint-loader/pkg/loader"
	"github.com/arthur-debert/stylelint-loader/pkg/types"
)

// Name is the plugin name esbuild shows next to its messages
const Name = "stylelint"

// DefaultFilter matches the stylesheet extensions stylelint can parse
const DefaultFilter = `\.(css|scss|sass|less|sss)$`

// Options configures the plugin
type Options struct {
	// Filter is the esbuild path regexp; DefaultFilter when empty
	Filter string

	// Context bounds linter runs; context.Background when nil
	Context context.Context
}

// New returns an esbuild plugin that lints stylesheets with l
func New(l *loader.Loader, opts Options) api.Plugin {
	filter := opts.Filter
	if filter == "" {
		filter = DefaultFilter
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	return api.Plugin{
		Name: Name,
		Setup: func(build api.PluginBuild) {
			build.OnLoad(api.OnLoadOptions{Filter: filter, Namespace: "file"},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					content, err := os.ReadFile(args.Path)
					if err != nil {
						return api.OnLoadResult{}, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", args.Path)
					}

					host := newLoadContext(args, content)
					if _, err := l.Load(ctx, content, host); err != nil {
						return api.OnLoadResult{}, err
					}
					return host.result(), nil
				})
		},
	}
}

// loadContext adapts esbuild's OnLoad arguments to loader.Context and
// collects the emitted messages
type loadContext struct {
	args    api.OnLoadArgs
	content []byte

	mu       sync.Mutex
	warnings []api.Message
	errors   []api.Message
}

var _ types.DiagnosticEmitter = (*loadContext)(nil)

func newLoadContext(args api.OnLoadArgs, content []byte) *loadContext {
	return &loadContext{args: args, content: content}
}

func (c *loadContext) ResourcePath() string { return c.args.Path }
func (c *loadContext) Query() string        { return c.args.Suffix }

// Plain messages carry no location; esbuild points them at the import
// that pulled the file in.
func (c *loadContext) EmitWarning(message string) {
	c.add(types.ChannelWarning, api.Message{Text: message})
}

func (c *loadContext) EmitError(message string) {
	c.add(types.ChannelError, api.Message{Text: message})
}

func (c *loadContext) EmitDiagnostic(channel types.Channel, d types.Diagnostic) {
	msg := api.Message{Text: d.Text, Location: c.location(d)}
	if d.Rule != "" {
		msg.ID = d.Rule
	}
	if d.Line == 0 {
		// configuration diagnostics have no place in the source
		msg.Text = d.Message()
	}
	c.add(channel, msg)
}

func (c *loadContext) add(channel types.Channel, msg api.Message) {
	msg.PluginName = Name
	c.mu.Lock()
	defer c.mu.Unlock()
	if channel == types.ChannelError {
		c.errors = append(c.errors, msg)
		return
	}
	c.warnings = append(c.warnings, msg)
}

// location converts a 1-based stylelint position to esbuild's 1-based
// line and 0-based column
func (c *loadContext) location(d types.Diagnostic) *api.Location {
	loc := &api.Location{File: c.args.Path, Namespace: c.args.Namespace}
	if d.Line <= 0 {
		return loc
	}
	loc.Line = d.Line
	if d.Column > 0 {
		loc.Column = d.Column - 1
	}
	loc.LineText = lineText(c.content, d.Line)
	return loc
}

func (c *loadContext) result() api.OnLoadResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return api.OnLoadResult{
		PluginName: Name,
		Warnings:   c.warnings,
		Errors:     c.errors,
	}
}

func lineText(content []byte, line int) string {
	lines := strings.Split(string(content), "\n")
	if line > len(lines) {
		return ""
	}
	return strings.TrimSuffix(lines[line-1], "\r")
}
