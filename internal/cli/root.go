package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/stylelint-loader/internal/version"
	"github.com/arthur-debert/stylelint-loader/pkg/cache"
	"github.com/arthur-debert/stylelint-loader/pkg/config"
	"github.com/arthur-debert/stylelint-loader/pkg/errors"
	"github.com/arthur-debert/stylelint-loader/pkg/loader"
	"github.com/arthur-debert/stylelint-loader/pkg/logging"
)

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	verbosity       int
	configFile      string
	ignoreCache     bool
	noDisplayOutput bool
	projectRoot     string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "stylelint-loader",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVarP(&g.configFile, "config-file", "c", "", MsgFlagConfigFile)
	flags.BoolVar(&g.ignoreCache, "ignore-cache", false, MsgFlagIgnoreCache)
	flags.BoolVar(&g.noDisplayOutput, "no-display-output", false, MsgFlagNoDisplayOutput)
	flags.StringVar(&g.projectRoot, "project-root", "", MsgFlagProjectRoot)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newLintCmd(g))
	rootCmd.AddCommand(newBuildCmd(g))
	rootCmd.AddCommand(newGenConfigCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// hostOptions turns the flags the user actually set into host options, so
// unset flags do not shadow the project file or environment. A relative
// --config-file is taken from the working directory, not the project root.
func (g *globalOptions) hostOptions(cmd *cobra.Command) map[string]interface{} {
	opts := make(map[string]interface{})
	flags := cmd.Flags()
	if flags.Changed("config-file") {
		path := g.configFile
		if path != "" {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
		}
		opts[config.KeyConfigFile] = path
	}
	if flags.Changed("ignore-cache") {
		opts[config.KeyIgnoreCache] = g.ignoreCache
	}
	if flags.Changed("no-display-output") {
		opts[config.KeyDisplayOutput] = !g.noDisplayOutput
	}
	return opts
}

func (g *globalOptions) root() (string, error) {
	if g.projectRoot == "" {
		return "", nil
	}
	abs, err := filepath.Abs(g.projectRoot)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid project root %s", g.projectRoot)
	}
	return abs, nil
}

func (g *globalOptions) newResolver(host map[string]interface{}) (*config.Resolver, error) {
	root, err := g.root()
	if err != nil {
		return nil, err
	}
	return config.NewResolver(config.ResolverOptions{
		ProjectRoot: root,
		HostOptions: host,
	})
}

// newLoader builds a Loader with its own cache so every command run starts
// from an empty set of linted files
func (g *globalOptions) newLoader(host map[string]interface{}, console io.Writer) (*loader.Loader, error) {
	resolver, err := g.newResolver(host)
	if err != nil {
		return nil, err
	}
	return loader.New(loader.Options{
		Resolver: resolver,
		Cache:    cache.New(),
		Console:  console,
	})
}
