package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/stylelint-loader/pkg/errors"
)

// EnvPrefix is the prefix of environment variables read as options
const EnvPrefix = "STYLELINT_LOADER_"

// ProjectFileNames are looked up in the project root, first match wins
var ProjectFileNames = []string{
	".stylelint-loader.toml",
	"stylelint-loader.toml",
	".stylelint-loader.yaml",
	".stylelint-loader.yml",
}

// findProjectFile returns the first project file present in root, or ""
func findProjectFile(root string) string {
	for _, filename := range ProjectFileNames {
		path := filepath.Join(root, filename)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// mergeLayer loads a provider into a scratch koanf, canonicalizes its
// top-level keys and merges the result into k.
func mergeLayer(k *koanf.Koanf, p koanf.Provider, pa koanf.Parser) error {
	tempK := koanf.New(".")
	if err := tempK.Load(p, pa); err != nil {
		return err
	}
	return mergeMap(k, tempK.Raw())
}

func mergeMap(k *koanf.Koanf, m map[string]interface{}) error {
	if len(m) == 0 {
		return nil
	}
	return k.Load(confmap.Provider(normalizeKeys(m), ""), nil)
}

func loadDefaults(k *koanf.Koanf) error {
	if err := mergeLayer(k, &rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}
	return nil
}

func loadProjectFile(k *koanf.Koanf, root string) (string, error) {
	path := findProjectFile(root)
	if path == "" {
		return "", nil
	}
	if err := mergeLayer(k, file.Provider(path), parserFor(path)); err != nil {
		return path, errors.Wrapf(err, errors.ErrConfigParse, "failed to load project config from %s", path)
	}
	return path, nil
}

func loadEnv(k *koanf.Koanf) error {
	provider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := mergeLayer(k, provider, nil); err != nil {
		return fmt.Errorf("failed to load env vars: %w", err)
	}
	return nil
}
