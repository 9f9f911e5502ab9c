package types

import "time"

// Options is the fully resolved loader configuration for one file
type Options struct {
	// DisplayOutput echoes diagnostics to the console in color
	DisplayOutput bool `koanf:"displayOutput" toml:"displayOutput"`

	// IgnoreCache lints every pass, even for files already seen
	IgnoreCache bool `koanf:"ignoreCache" toml:"ignoreCache"`

	// ConfigFile is an explicit stylelint config; it must exist when set
	ConfigFile string `koanf:"configFile" toml:"configFile,omitempty"`

	ConfigBasedir string `koanf:"configBasedir" toml:"configBasedir,omitempty"`

	// ConfigOverrides is merged over the stylelint config (e.g. rules)
	ConfigOverrides map[string]interface{} `koanf:"configOverrides" toml:"configOverrides,omitempty"`

	// CustomSyntax replaces the PostCSS syntax derived from the extension
	CustomSyntax string `koanf:"customSyntax" toml:"customSyntax,omitempty"`

	// Quiet asks stylelint to report errors only
	Quiet bool `koanf:"quiet" toml:"quiet"`

	// Command is the argv used to run stylelint
	Command []string `koanf:"command" toml:"command"`

	Timeout time.Duration `koanf:"timeout" toml:"timeout"`

	// RelativeTo is stripped from paths shown on the console
	RelativeTo string `koanf:"relativeTo" toml:"relativeTo,omitempty"`

	// Extra holds keys nobody recognized
	Extra map[string]interface{} `koanf:",remain" toml:"-"`
}
