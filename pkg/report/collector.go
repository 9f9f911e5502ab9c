package report

import (
	"sync"

	"github.com/arthur-debert/stylelint-loader/pkg/types"
)

// Entry is one message the host received
type Entry struct {
	Channel    types.Channel     `json:"-"`
	Severity   string            `json:"severity"`
	Message    string            `json:"message"`
	Diagnostic *types.Diagnostic `json:"diagnostic,omitempty"`
}

// FileReport holds everything reported for one file
type FileReport struct {
	Path    string  `json:"path"`
	Entries []Entry `json:"entries"`
}

// Count returns how many entries went to channel
func (f FileReport) Count(channel types.Channel) int {
	n := 0
	for _, e := range f.Entries {
		if e.Channel == channel {
			n++
		}
	}
	return n
}

// Collector is an Emitter that records what it receives
type Collector struct {
	mu     sync.Mutex
	report FileReport
}

// NewCollector creates a Collector for path
func NewCollector(path string) *Collector {
	return &Collector{report: FileReport{Path: path}}
}

func (c *Collector) EmitWarning(message string) {
	c.add(Entry{Channel: types.ChannelWarning, Message: message})
}

func (c *Collector) EmitError(message string) {
	c.add(Entry{Channel: types.ChannelError, Message: message})
}

func (c *Collector) EmitDiagnostic(channel types.Channel, d types.Diagnostic) {
	c.add(Entry{Channel: channel, Message: d.Message(), Diagnostic: &d})
}

func (c *Collector) add(e Entry) {
	e.Severity = e.Channel.String()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.report.Entries = append(c.report.Entries, e)
}

// Report returns a copy of the collected report
func (c *Collector) Report() FileReport {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.report
	out.Entries = append([]Entry(nil), c.report.Entries...)
	return out
}

// Summary counts what a lint run reported
type Summary struct {
	Files    int `json:"files"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// Summarize totals reports
func Summarize(reports []FileReport) Summary {
	s := Summary{Files: len(reports)}
	for _, r := range reports {
		s.Warnings += r.Count(types.ChannelWarning)
		s.Errors += r.Count(types.ChannelError)
	}
	return s
}
