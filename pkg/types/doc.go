// Package types defines the core types shared by the loader pipeline:
// diagnostics and lint results as produced by stylelint, the resolved
// loader Options, and the Emitter interface through which a host bundler
// receives warnings and errors.
package types
