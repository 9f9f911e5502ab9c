package config

import (
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/stylelint-loader/pkg/types"
)

// Defaults returns the options the embedded defaults decode to
func Defaults() (types.Options, error) {
	r, err := NewResolver(ResolverOptions{ProjectRoot: ".", SkipProjectFile: true, SkipEnv: true})
	if err != nil {
		return types.Options{}, err
	}
	return r.Resolve("")
}

// generatedConfig mirrors types.Options with a printable timeout
type generatedConfig struct {
	DisplayOutput bool     `toml:"displayOutput"`
	IgnoreCache   bool     `toml:"ignoreCache"`
	Quiet         bool     `toml:"quiet"`
	ConfigFile    string   `toml:"configFile"`
	CustomSyntax  string   `toml:"customSyntax"`
	Command       []string `toml:"command"`
	Timeout       string   `toml:"timeout"`

	ConfigOverrides map[string]interface{} `toml:"configOverrides"`
}

// GenerateConfigContent renders a project file with every value commented
// out, ready to be saved as .stylelint-loader.toml
func GenerateConfigContent() (string, error) {
	defaults, err := Defaults()
	if err != nil {
		return "", err
	}

	cfg := generatedConfig{
		DisplayOutput: defaults.DisplayOutput,
		IgnoreCache:   defaults.IgnoreCache,
		Quiet:         defaults.Quiet,
		ConfigFile:    ".stylelintrc.json",
		CustomSyntax:  "",
		Command:       defaults.Command,
		Timeout:       defaults.Timeout.String(),
		ConfigOverrides: map[string]interface{}{
			"rules": map[string]interface{}{},
		},
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	header := "# stylelint-loader project configuration\n" +
		"# Uncomment and edit the values you want to change.\n\n"
	return header + commentOutConfigValues(string(data)), nil
}

// commentOutConfigValues takes the TOML content and comments out all non-comment, non-blank lines
// that contain configuration values (assignments)
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		// Section headers are commented too: an active empty table would
		// still override configOverrides.
		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
