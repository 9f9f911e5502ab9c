package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Lint stylesheets with stylelint as part of a build"
	MsgLintShort       = "Lint stylesheet files and directories"
	MsgBuildShort      = "Bundle with esbuild, linting every stylesheet loaded"
	MsgGenConfigShort  = "Print a commented project configuration file"
	MsgGenConfigLong   = "Output the default configuration as TOML. With -w it is written to .stylelint-loader.toml in the project root."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgNoFiles       = "No stylesheets found."
	MsgWatching      = "Watching for changes. Press Ctrl+C to stop."
	MsgConfigWritten = "Wrote %s\n"
	MsgVersionFormat = "stylelint-loader version %s\n"
	MsgVersionCommit = "  commit: %s\n"
	MsgVersionBuilt  = "  built:  %s\n"

	// Error messages
	MsgErrLintErrors   = "stylelint reported %d error(s)"
	MsgErrBuildFailed  = "build failed with %d error(s)"
	MsgErrConfigExists = "%s already exists"
	MsgErrNoEntries    = "at least one entry point is required"

	// Flag descriptions
	MsgFlagVerbose         = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfigFile      = "stylelint configuration file"
	MsgFlagIgnoreCache     = "Lint files even if they were already linted in this run"
	MsgFlagNoDisplayOutput = "Do not echo diagnostics on the console"
	MsgFlagProjectRoot     = "Project root holding .stylelint-loader.toml (default: current directory)"
	MsgFlagFormat          = "Output format: auto, text, term, json, checkstyle"
	MsgFlagWatch           = "Keep running and lint again on change"
	MsgFlagConcurrency     = "Maximum number of stylelint processes (default: number of CPUs)"
	MsgFlagOutdir          = "Output directory"
	MsgFlagBundle          = "Bundle imported files into the output"
	MsgFlagWrite           = "Write the configuration file instead of printing it"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/lint-long.txt
	msgLintLongRaw string
	MsgLintLong    = strings.TrimSpace(msgLintLongRaw)

	//go:embed msgs/lint-example.txt
	msgLintExampleRaw string
	MsgLintExample    = strings.TrimRight(msgLintExampleRaw, "\n")

	//go:embed msgs/build-long.txt
	msgBuildLongRaw string
	MsgBuildLong    = strings.TrimSpace(msgBuildLongRaw)

	//go:embed msgs/build-example.txt
	msgBuildExampleRaw string
	MsgBuildExample    = strings.TrimRight(msgBuildExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
