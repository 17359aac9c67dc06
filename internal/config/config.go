// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"srcpack/internal/issue"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "srcpack"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "yaml"
	// EnvPrefix is the prefix of environment variable overrides.
	EnvPrefix = "SRCPACK"
)

// ConfigDir returns the srcpack configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Load resolves the effective configuration: defaults, then the optional
// config file, then SRCPACK_* environment variables. A local .env file is
// read first so project-level overrides work without exporting anything.
func Load() (*Config, error) {
	// ignore a missing .env; it is a convenience, not a requirement
	_ = godotenv.Load()

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("dist_dir", defaults.DistDir)
	v.SetDefault("formats", defaults.Formats)
	v.SetDefault("owner", defaults.Owner)
	v.SetDefault("group", defaults.Group)
	v.SetDefault("verbose", defaults.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if configFilePathOverride != "" {
		v.SetConfigFile(configFilePathOverride)
		if err := v.ReadInConfig(); err != nil {
			return nil, loadError(configFilePathOverride, err)
		}
	} else {
		dir, err := ConfigDir()
		if err != nil {
			return nil, issue.WrapWithOperation(err, "locate config directory")
		}
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileExt)
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			// a missing config file is fine; anything else is not
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, loadError(filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, issue.WrapWithOperation(err, "parse configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Run 'srcpack formats' to list supported formats").
			Wrap(err).
			Build()
	}

	return &cfg, nil
}

func loadError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check the YAML syntax").
		WithSuggestion("Remove the file to fall back to defaults").
		Wrap(err).
		Build()
}
