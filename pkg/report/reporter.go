// Package report routes lint diagnostics to the host's warning and error
// channels and echoes them on the console.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/stylelint-loader/pkg/logging"
	"github.com/arthur-debert/stylelint-loader/pkg/types"
	"github.com/arthur-debert/stylelint-loader/pkg/ui/styles"
)

// Reporter dispatches diagnostics. Console output for one file is written
// in a single block so concurrent loads do not interleave.
type Reporter struct {
	out    io.Writer
	mu     sync.Mutex
	logger zerolog.Logger
}

// New creates a Reporter echoing to out (os.Stdout when nil)
func New(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{
		out:    out,
		logger: logging.GetLogger("report"),
	}
}

// Report sends every diagnostic of result to emitter
func (r *Reporter) Report(path string, result *types.LintResult, opts types.Options, emitter types.Emitter) {
	diags := result.Diagnostics()
	if len(diags) == 0 {
		return
	}

	var console bytes.Buffer
	if opts.DisplayOutput {
		fmt.Fprintln(&console, styles.Render(styles.FilePath, RelativePath(opts.RelativeTo, path)))
	}

	for _, d := range diags {
		var (
			channel types.Channel
			style   string
			text    = d.Message()
		)
		switch {
		case d.Severity.IsWarning():
			channel, style = types.ChannelWarning, styles.Warning
		case d.Severity == types.SeverityError:
			channel, style = types.ChannelError, styles.Error
		case d.Severity == types.SeverityNone:
			// only the bare text is echoed, the host still gets the location
			channel, style = types.ChannelError, styles.Error
			text = d.Text
		default:
			r.logger.Debug().
				Str("path", path).
				Str("severity", string(d.Severity)).
				Msg("Skipping diagnostic with unknown severity")
			continue
		}

		if opts.DisplayOutput {
			fmt.Fprintln(&console, styles.Render(style, text))
		}
		emit(emitter, channel, d)
	}

	if opts.DisplayOutput {
		fmt.Fprintln(&console)
		r.write(console.Bytes())
	}
}

// Warn reports a message that is not tied to a diagnostic, such as a
// missing config file
func (r *Reporter) Warn(message string, opts types.Options, emitter types.Emitter) {
	if opts.DisplayOutput {
		r.write([]byte(styles.Render(styles.Warning, message) + "\n"))
	}
	emitter.EmitWarning(message)
}

func (r *Reporter) write(p []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.out.Write(p); err != nil {
		r.logger.Warn().Err(err).Msg("Failed to write console output")
	}
}

func emit(emitter types.Emitter, channel types.Channel, d types.Diagnostic) {
	if de, ok := emitter.(types.DiagnosticEmitter); ok {
		de.EmitDiagnostic(channel, d)
		return
	}
	if channel == types.ChannelError {
		emitter.EmitError(d.Message())
		return
	}
	emitter.EmitWarning(d.Message())
}

// RelativePath replaces a leading base directory with "."
func RelativePath(base, path string) string {
	sep := string(filepath.Separator)
	base = strings.TrimRight(base, sep)
	switch {
	case base == "":
		return path
	case path == base:
		return "."
	case strings.HasPrefix(path, base+sep):
		return "." + path[len(base):]
	}
	return path
}
