package cli

import (
	"context"
	"fmt"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/stylelint-loader/pkg/config"
	"github.com/arthur-debert/stylelint-loader/pkg/errors"
	"github.com/arthur-debert/stylelint-loader/pkg/esbuildplugin"
	"github.com/arthur-debert/stylelint-loader/pkg/logging"
)

type buildOptions struct {
	outdir string
	bundle bool
	watch  bool
}

func newBuildCmd(g *globalOptions) *cobra.Command {
	opts := buildOptions{}

	cmd := &cobra.Command{
		Use:     "build [entrypoints...]",
		Short:   MsgBuildShort,
		Long:    MsgBuildLong,
		Example: MsgBuildExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, g, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.outdir, "outdir", "o", "dist", MsgFlagOutdir)
	cmd.Flags().BoolVar(&opts.bundle, "bundle", false, MsgFlagBundle)
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, MsgFlagWatch)

	return cmd
}

func runBuild(cmd *cobra.Command, g *globalOptions, opts buildOptions, entries []string) error {
	logger := logging.GetLogger("cli.build")
	if len(entries) == 0 {
		return errors.New(errors.ErrInvalidInput, MsgErrNoEntries)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	host := g.hostOptions(cmd)
	if opts.watch {
		// rebuilds load the same paths again
		host[config.KeyIgnoreCache] = true
	}

	l, err := g.newLoader(host, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	buildOpts := api.BuildOptions{
		EntryPoints: entries,
		Bundle:      opts.bundle,
		Outdir:      opts.outdir,
		Write:       true,
		LogLevel:    api.LogLevelInfo,
		Plugins: []api.Plugin{
			esbuildplugin.New(l, esbuildplugin.Options{Context: ctx}),
		},
	}

	logger.Info().
		Strs("entries", entries).
		Str("outdir", opts.outdir).
		Bool("bundle", opts.bundle).
		Bool("watch", opts.watch).
		Msg("Starting esbuild")

	if !opts.watch {
		result := api.Build(buildOpts)
		if len(result.Errors) > 0 {
			return errors.Newf(errors.ErrBuild, MsgErrBuildFailed, len(result.Errors))
		}
		logger.Info().Int("warnings", len(result.Warnings)).Msg("Build finished")
		return nil
	}

	buildCtx, ctxErr := api.Context(buildOpts)
	if ctxErr != nil {
		return errors.Newf(errors.ErrBuild, MsgErrBuildFailed, len(ctxErr.Errors))
	}
	defer buildCtx.Dispose()

	if err := buildCtx.Watch(api.WatchOptions{}); err != nil {
		return errors.Wrap(err, errors.ErrWatch, "failed to start esbuild watch mode")
	}

	fmt.Fprintln(cmd.ErrOrStderr(), MsgWatching)
	<-ctx.Done()
	return nil
}
