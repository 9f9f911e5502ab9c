// Package config resolves loader options.
//
// Options are layered, later layers winning, nested maps merged deeply and
// arrays replaced:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the project file (.stylelint-loader.toml, stylelint-loader.toml,
//     .stylelint-loader.yaml or .stylelint-loader.yml)
//  3. STYLELINT_LOADER_* environment variables
//  4. options handed over by the host
//  5. the inline query of the import being loaded
//
// Top-level keys are matched ignoring case, '-' and '_', so display_output,
// display-output and displayOutput all set the same option.
package config
