package stylelint

import (
	"path/filepath"
	"strings"
)

// postcssSyntaxes maps a file syntax to the PostCSS syntax module stylelint
// needs to parse it
var postcssSyntaxes = map[string]string{
	"scss": "postcss-scss",
	"less": "postcss-less",
	"sass": "postcss-sass",
	"sss":  "sugarss",
}

// SyntaxFromPath returns the file extension without its dot
func SyntaxFromPath(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// CustomSyntax returns the --custom-syntax value for path. An explicit
// override wins; plain css needs none.
func CustomSyntax(path, override string) string {
	if override != "" {
		return override
	}
	return postcssSyntaxes[SyntaxFromPath(path)]
}

// IsStylesheet reports whether path has an extension the loader handles
func IsStylesheet(path string) bool {
	switch SyntaxFromPath(path) {
	case "css", "scss", "sass", "less", "sss":
		return true
	}
	return false
}
