package types

// Emitter is the host bundler's reporting channel
type Emitter interface {
	EmitWarning(message string)
	EmitError(message string)
}

// Channel is the host channel a diagnostic is routed to
type Channel int

const (
	ChannelWarning Channel = iota
	ChannelError
)

func (c Channel) String() string {
	if c == ChannelError {
		return "error"
	}
	return "warning"
}

// DiagnosticEmitter is implemented by hosts that want the structured
// diagnostic instead of its rendered message. The reporter calls
// EmitDiagnostic in place of EmitWarning/EmitError for such hosts.
type DiagnosticEmitter interface {
	Emitter
	EmitDiagnostic(channel Channel, d Diagnostic)
}
