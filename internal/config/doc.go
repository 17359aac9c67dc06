// SPDX-License-Identifier: MPL-2.0

// Package config loads srcpack configuration: build defaults such as the
// dist directory, archive formats, and tar ownership overrides.
//
// Settings are resolved from three layers, lowest priority first: built-in
// defaults, the optional config file in the platform config directory, and
// SRCPACK_* environment variables (a local .env file is honored).
package config
