package report

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/stylelint-loader/pkg/types"
)

// plainEmitter records rendered messages only
type plainEmitter struct {
	warnings []string
	errors   []string
}

func (e *plainEmitter) EmitWarning(m string) { e.warnings = append(e.warnings, m) }
func (e *plainEmitter) EmitError(m string)   { e.errors = append(e.errors, m) }

func sampleResult() *types.LintResult {
	return &types.LintResult{
		Deprecations: []types.Diagnostic{
			{Text: "'unit-blacklist' has been deprecated"},
		},
		InvalidOptionWarnings: []types.Diagnostic{
			{Text: "Invalid option value \"x\" for rule \"color-hex-case\""},
		},
		Warnings: []types.Diagnostic{
			{Line: 1, Column: 3, Severity: types.SeverityWarning, Text: "Unexpected empty block"},
			{Line: 2, Column: 1, Severity: types.SeverityError, Text: "Expected \"#FFF\" to be \"#fff\""},
			{Line: 4, Column: 2, Text: "CssSyntaxError"},
			{Line: 5, Column: 2, Severity: "info", Text: "ignored"},
		},
	}
}

func TestReport_Channels(t *testing.T) {
	var out bytes.Buffer
	emitter := &plainEmitter{}

	New(&out).Report("/proj/src/a.scss", sampleResult(), types.Options{}, emitter)

	assert.Equal(t, []string{
		"config:deprecated 'unit-blacklist' has been deprecated",
		"1:3 Unexpected empty block",
	}, emitter.warnings)
	assert.Equal(t, []string{
		"config:invalid Invalid option value \"x\" for rule \"color-hex-case\"",
		"2:1 Expected \"#FFF\" to be \"#fff\"",
		"4:2 CssSyntaxError",
	}, emitter.errors)
	assert.Empty(t, out.String(), "nothing is echoed without displayOutput")
}

func TestReport_Console(t *testing.T) {
	var out bytes.Buffer
	emitter := &plainEmitter{}
	opts := types.Options{DisplayOutput: true, RelativeTo: "/proj"}

	New(&out).Report("/proj/src/a.scss", sampleResult(), opts, emitter)

	lines := strings.Split(out.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 7)
	assert.Contains(t, lines[0], "./src/a.scss")
	assert.Contains(t, lines[1], "config:deprecated")
	assert.Contains(t, lines[3], "1:3 Unexpected empty block")
	// a diagnostic without severity echoes its bare text
	assert.Contains(t, lines[5], "CssSyntaxError")
	assert.NotContains(t, lines[5], "4:2")
	assert.Equal(t, "", lines[6])
	assert.NotContains(t, out.String(), "ignored")
}

func TestReport_EmptyResultPrintsNothing(t *testing.T) {
	var out bytes.Buffer
	emitter := &plainEmitter{}

	New(&out).Report("/proj/a.css", &types.LintResult{}, types.Options{DisplayOutput: true}, emitter)

	assert.Empty(t, out.String())
	assert.Empty(t, emitter.warnings)
	assert.Empty(t, emitter.errors)
}

func TestReport_DiagnosticEmitter(t *testing.T) {
	c := NewCollector("/proj/a.scss")
	New(&bytes.Buffer{}).Report("/proj/a.scss", sampleResult(), types.Options{}, c)

	fr := c.Report()
	require.Len(t, fr.Entries, 5)
	assert.Equal(t, 2, fr.Count(types.ChannelWarning))
	assert.Equal(t, 3, fr.Count(types.ChannelError))
	require.NotNil(t, fr.Entries[2].Diagnostic)
	assert.Equal(t, 1, fr.Entries[2].Diagnostic.Line)
	assert.Equal(t, "warning", fr.Entries[2].Severity)
}

var headerPattern = regexp.MustCompile(`\./src/f(\d{2})\.scss`)

// chunkWriter keeps every Write call as its own chunk
type chunkWriter struct {
	mu     sync.Mutex
	chunks []string
}

func (w *chunkWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.chunks = append(w.chunks, string(p))
	return len(p), nil
}

func TestReport_ConcurrentBlocksDoNotInterleave(t *testing.T) {
	const files = 20
	out := &chunkWriter{}
	r := New(out)
	opts := types.Options{DisplayOutput: true, RelativeTo: "/proj"}

	var wg sync.WaitGroup
	for i := 0; i < files; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tag := fmt.Sprintf("file-%02d|", i)
			result := &types.LintResult{Warnings: []types.Diagnostic{
				{Line: 1, Column: 1, Severity: types.SeverityWarning, Text: tag + "first"},
				{Line: 2, Column: 1, Severity: types.SeverityError, Text: tag + "second"},
				{Line: 3, Column: 1, Severity: types.SeverityWarning, Text: tag + "third"},
			}}
			r.Report(fmt.Sprintf("/proj/src/f%02d.scss", i), result, opts, &plainEmitter{})
		}(i)
	}
	wg.Wait()

	require.Len(t, out.chunks, files, "one write per file")
	seen := make(map[string]bool)
	for _, chunk := range out.chunks {
		lines := strings.Split(strings.TrimSuffix(chunk, "\n\n"), "\n")
		require.Len(t, lines, 4, "header plus three diagnostics: %q", chunk)

		header := lines[0]
		m := headerPattern.FindStringSubmatch(header)
		require.NotNil(t, m, "header %q", header)
		tag := "file-" + m[1] + "|"
		for _, line := range lines[1:] {
			assert.Contains(t, line, tag, "block for %s mixes lines of another file", header)
		}
		seen[tag] = true
	}
	assert.Len(t, seen, files)
}

func TestWarn(t *testing.T) {
	var out bytes.Buffer
	emitter := &plainEmitter{}

	New(&out).Warn("Configuration File x cannot be found/read", types.Options{DisplayOutput: true}, emitter)

	assert.Equal(t, []string{"Configuration File x cannot be found/read"}, emitter.warnings)
	assert.Contains(t, out.String(), "Configuration File x cannot be found/read")
}

func TestRelativePath(t *testing.T) {
	sep := string(filepath.Separator)
	base := sep + "proj"

	tests := []struct {
		base, path, want string
	}{
		{base, base + sep + "src" + sep + "a.css", "." + sep + "src" + sep + "a.css"},
		{base + sep, base + sep + "a.css", "." + sep + "a.css"},
		{base, base, "."},
		{base, sep + "project" + sep + "a.css", sep + "project" + sep + "a.css"},
		{"", base + sep + "a.css", base + sep + "a.css"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RelativePath(tt.base, tt.path), "RelativePath(%q, %q)", tt.base, tt.path)
	}
}
