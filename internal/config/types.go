// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"srcpack/pkg/archive"
)

var (
	// ErrInvalidFormat is the sentinel error wrapped by InvalidFormatError.
	ErrInvalidFormat = errors.New("invalid archive format")
	// ErrInvalidDistDir is returned when the dist_dir value is empty or whitespace-only.
	ErrInvalidDistDir = errors.New("invalid dist dir")
)

type (
	// InvalidFormatError is returned when a configured format name is not
	// registered. It wraps ErrInvalidFormat for errors.Is() compatibility.
	InvalidFormatError struct {
		Value string
	}

	// Config holds the srcpack build defaults. Command-line flags override
	// any of these per invocation.
	Config struct {
		// DistDir is where archives are written, relative to the project root.
		DistDir string `mapstructure:"dist_dir"`
		// Formats are the archive formats produced by default.
		Formats []string `mapstructure:"formats"`
		// Owner forces tar member ownership when set.
		Owner string `mapstructure:"owner"`
		// Group forces tar member group when set.
		Group string `mapstructure:"group"`
		// Verbose enables verbose output without the --verbose flag.
		Verbose bool `mapstructure:"verbose"`
	}
)

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("%v: %q", ErrInvalidFormat, e.Value)
}

func (e *InvalidFormatError) Unwrap() error {
	return ErrInvalidFormat
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		DistDir: "dist",
		Formats: []string{"gztar"},
	}
}

// Validate checks the configuration for values srcpack cannot work with.
func (c *Config) Validate() error {
	if c.DistDir == "" {
		return ErrInvalidDistDir
	}
	for _, f := range c.Formats {
		if _, ok := archive.Lookup(f); !ok {
			return &InvalidFormatError{Value: f}
		}
	}
	return nil
}
