package config

import "strings"

// Canonical option keys
const (
	KeyDisplayOutput   = "displayOutput"
	KeyIgnoreCache     = "ignoreCache"
	KeyConfigFile      = "configFile"
	KeyConfigBasedir   = "configBasedir"
	KeyConfigOverrides = "configOverrides"
	KeyCustomSyntax    = "customSyntax"
	KeyQuiet           = "quiet"
	KeyCommand         = "command"
	KeyTimeout         = "timeout"
	KeyRelativeTo      = "relativeTo"
)

var canonicalKeys = func() map[string]string {
	m := make(map[string]string)
	for _, k := range []string{
		KeyDisplayOutput, KeyIgnoreCache, KeyConfigFile, KeyConfigBasedir,
		KeyConfigOverrides, KeyCustomSyntax, KeyQuiet, KeyCommand, KeyTimeout,
		KeyRelativeTo,
	} {
		m[foldKey(k)] = k
	}
	return m
}()

func foldKey(k string) string {
	k = strings.ToLower(k)
	k = strings.ReplaceAll(k, "_", "")
	return strings.ReplaceAll(k, "-", "")
}

// canonicalKey maps any spelling of a known option to its canonical name.
// Unknown keys are returned unchanged.
func canonicalKey(k string) string {
	if c, ok := canonicalKeys[foldKey(k)]; ok {
		return c
	}
	return k
}

// normalizeKeys returns m with canonical top-level keys. Nested maps
// (configOverrides) hold linter rule names and are not touched.
func normalizeKeys(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[canonicalKey(k)] = v
	}
	return out
}
