package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/stylelint-loader/pkg/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestResolve_Defaults(t *testing.T) {
	root := t.TempDir()
	r, err := NewResolver(ResolverOptions{ProjectRoot: root, SkipEnv: true})
	require.NoError(t, err)

	opts, err := r.Resolve("")
	require.NoError(t, err)

	assert.True(t, opts.DisplayOutput)
	assert.False(t, opts.IgnoreCache)
	assert.False(t, opts.Quiet)
	assert.Equal(t, []string{"npx", "--no", "stylelint"}, opts.Command)
	assert.Equal(t, 60*time.Second, opts.Timeout)
	assert.Equal(t, root, opts.RelativeTo)
	assert.Empty(t, opts.ConfigFile)
	assert.Empty(t, r.ProjectFile())
}

func TestResolve_ProjectFileTOML(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".stylelint-loader.toml"), `
display_output = false
configFile = "config/stylelintrc.json"
timeout = "5s"

[configOverrides.rules]
"unit-disallowed-list" = ["em"]
`)

	r, err := NewResolver(ResolverOptions{ProjectRoot: root, SkipEnv: true})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".stylelint-loader.toml"), r.ProjectFile())

	opts, err := r.Resolve("")
	require.NoError(t, err)

	assert.False(t, opts.DisplayOutput)
	assert.Equal(t, filepath.Join(root, "config", "stylelintrc.json"), opts.ConfigFile)
	assert.Equal(t, 5*time.Second, opts.Timeout)
	rules, ok := opts.ConfigOverrides["rules"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"em"}, rules["unit-disallowed-list"])
}

func TestResolve_ProjectFileYAML(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".stylelint-loader.yml"), "ignore-cache: true\ncommand: [stylelint]\n")

	r, err := NewResolver(ResolverOptions{ProjectRoot: root, SkipEnv: true})
	require.NoError(t, err)

	opts, err := r.Resolve("")
	require.NoError(t, err)
	assert.True(t, opts.IgnoreCache)
	assert.Equal(t, []string{"stylelint"}, opts.Command)
}

func TestResolve_ProjectFileParseError(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "stylelint-loader.toml"), "displayOutput = = true")

	_, err := NewResolver(ResolverOptions{ProjectRoot: root, SkipEnv: true})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestResolve_Env(t *testing.T) {
	t.Setenv("STYLELINT_LOADER_IGNORE_CACHE", "true")
	t.Setenv("STYLELINT_LOADER_COMMAND", "node_modules/.bin/stylelint")

	r, err := NewResolver(ResolverOptions{ProjectRoot: t.TempDir()})
	require.NoError(t, err)

	opts, err := r.Resolve("")
	require.NoError(t, err)
	assert.True(t, opts.IgnoreCache)
	assert.Equal(t, []string{"node_modules/.bin/stylelint"}, opts.Command)
}

func TestResolve_LayerPrecedence(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".stylelint-loader.toml"), `
quiet = true
displayOutput = false

[configOverrides.rules]
"color-hex-case" = "lower"
`)
	t.Setenv("STYLELINT_LOADER_QUIET", "false")

	r, err := NewResolver(ResolverOptions{
		ProjectRoot: root,
		HostOptions: map[string]interface{}{
			"displayOutput": true,
			"configOverrides": map[string]interface{}{
				"rules": map[string]interface{}{"unit-disallowed-list": []interface{}{"em"}},
			},
		},
	})
	require.NoError(t, err)

	opts, err := r.Resolve("?-displayOutput&customSyntax=postcss-scss")
	require.NoError(t, err)

	// env beats project file, query beats host
	assert.False(t, opts.Quiet)
	assert.False(t, opts.DisplayOutput)
	assert.Equal(t, "postcss-scss", opts.CustomSyntax)

	// nested maps merge deeply
	rules := opts.ConfigOverrides["rules"].(map[string]interface{})
	assert.Equal(t, "lower", rules["color-hex-case"])
	assert.Equal(t, []interface{}{"em"}, rules["unit-disallowed-list"])
}

func TestResolve_QueryDoesNotLeakBetweenCalls(t *testing.T) {
	r, err := NewResolver(ResolverOptions{ProjectRoot: t.TempDir(), SkipEnv: true})
	require.NoError(t, err)

	opts, err := r.Resolve("?+ignoreCache")
	require.NoError(t, err)
	assert.True(t, opts.IgnoreCache)

	opts, err = r.Resolve("")
	require.NoError(t, err)
	assert.False(t, opts.IgnoreCache)
}

func TestResolve_UnknownKeysGoToExtra(t *testing.T) {
	r, err := NewResolver(ResolverOptions{ProjectRoot: t.TempDir(), SkipEnv: true})
	require.NoError(t, err)

	opts, err := r.Resolve("?files=a.css")
	require.NoError(t, err)
	assert.Equal(t, "a.css", opts.Extra["files"])
}

func TestResolve_Invalid(t *testing.T) {
	r, err := NewResolver(ResolverOptions{
		ProjectRoot: t.TempDir(),
		SkipEnv:     true,
		HostOptions: map[string]interface{}{"command": []interface{}{}},
	})
	require.NoError(t, err)

	_, err = r.Resolve("")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))

	_, err = r.Resolve("not-a-query")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestCanonicalKey(t *testing.T) {
	assert.Equal(t, KeyDisplayOutput, canonicalKey("display_output"))
	assert.Equal(t, KeyDisplayOutput, canonicalKey("DISPLAY-OUTPUT"))
	assert.Equal(t, KeyConfigOverrides, canonicalKey("configoverrides"))
	assert.Equal(t, "unknown_key", canonicalKey("unknown_key"))
}
