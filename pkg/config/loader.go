package config

import (
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/stylelint-loader/pkg/errors"
	"github.com/arthur-debert/stylelint-loader/pkg/logging"
	"github.com/arthur-debert/stylelint-loader/pkg/types"
)

// ResolverOptions controls which layers a Resolver loads
type ResolverOptions struct {
	// ProjectRoot is searched for the project file and anchors relative
	// configFile paths. Defaults to the working directory.
	ProjectRoot string

	// HostOptions are the options the host passes programmatically
	HostOptions map[string]interface{}

	// SkipProjectFile and SkipEnv disable those layers
	SkipProjectFile bool
	SkipEnv         bool
}

// Resolver holds every layer except the per-import query, which is merged
// on each Resolve call.
type Resolver struct {
	base        *koanf.Koanf
	root        string
	projectFile string
	logger      zerolog.Logger
}

// NewResolver loads defaults, project file, environment and host options
func NewResolver(opts ResolverOptions) (*Resolver, error) {
	root := opts.ProjectRoot
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to determine working directory")
		}
		root = wd
	}

	r := &Resolver{
		base:   koanf.New("."),
		root:   root,
		logger: logging.GetLogger("config"),
	}

	if err := loadDefaults(r.base); err != nil {
		return nil, err
	}

	if !opts.SkipProjectFile {
		path, err := loadProjectFile(r.base, root)
		if err != nil {
			return nil, err
		}
		r.projectFile = path
	}

	if !opts.SkipEnv {
		if err := loadEnv(r.base); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
		}
	}

	if err := mergeMap(r.base, opts.HostOptions); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load host options")
	}

	r.logger.Debug().
		Str("root", root).
		Str("projectFile", r.projectFile).
		Msg("Configuration layers loaded")

	return r, nil
}

// Root returns the project root the resolver works from
func (r *Resolver) Root() string {
	return r.root
}

// ProjectFile returns the project file that was loaded, if any
func (r *Resolver) ProjectFile() string {
	return r.projectFile
}

// Resolve merges the inline query over the base layers and decodes the result
func (r *Resolver) Resolve(query string) (types.Options, error) {
	var opts types.Options

	inline, err := ParseQuery(query)
	if err != nil {
		return opts, err
	}

	k := r.base.Copy()
	if err := mergeMap(k, inline); err != nil {
		return opts, errors.Wrap(err, errors.ErrConfigLoad, "failed to load query options")
	}

	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &opts,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &opts, unmarshalConf); err != nil {
		return opts, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal options")
	}

	if err := r.postProcess(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

func (r *Resolver) postProcess(opts *types.Options) error {
	if len(opts.Command) == 0 {
		return errors.New(errors.ErrConfigInvalid, "command must not be empty")
	}
	if opts.Timeout < 0 {
		return errors.Newf(errors.ErrConfigInvalid, "timeout must not be negative, got %s", opts.Timeout)
	}

	if opts.ConfigFile != "" && !filepath.IsAbs(opts.ConfigFile) {
		opts.ConfigFile = filepath.Join(r.root, opts.ConfigFile)
	}
	if opts.RelativeTo == "" {
		opts.RelativeTo = r.root
	}

	if len(opts.Extra) > 0 {
		keys := make([]string, 0, len(opts.Extra))
		for k := range opts.Extra {
			keys = append(keys, k)
		}
		r.logger.Debug().Strs("keys", keys).Msg("Ignoring unknown options")
	}
	return nil
}
