package config

import (
	"os"

	"github.com/arthur-debert/stylelint-loader/pkg/errors"
	"github.com/arthur-debert/stylelint-loader/pkg/types"
)

// CheckConfigFile verifies that an explicitly configured stylelint config
// exists and can be read. It returns nil when no config file is set.
func CheckConfigFile(opts types.Options) error {
	if opts.ConfigFile == "" {
		return nil
	}

	f, err := os.Open(opts.ConfigFile)
	if err == nil {
		var info os.FileInfo
		info, err = f.Stat()
		_ = f.Close()
		if err == nil && info.IsDir() {
			err = errors.New(errors.ErrInvalidInput, "is a directory")
		}
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigFileMissing,
			"Configuration File %s cannot be found/read", opts.ConfigFile).
			WithDetail("path", opts.ConfigFile)
	}
	return nil
}

// MissingConfigMessage is the text reported to the host for a config file
// that failed CheckConfigFile
func MissingConfigMessage(opts types.Options) string {
	return "Configuration File " + opts.ConfigFile + " cannot be found/read"
}
