// SPDX-License-Identifier: MPL-2.0

// Package metadata loads and validates the srcpack package descriptor.
//
// The descriptor is a TOML file (srcpack.toml by default) at the project
// root. It names the distribution, declares which directories and files
// belong to a source distribution, and carries the contact metadata that
// `srcpack check` validates.
package metadata

import (
	"fmt"
	"os"
	"strings"

	"srcpack/internal/issue"

	"github.com/pelletier/go-toml/v2"
)

// DescriptorName is the default file name of the package descriptor.
const DescriptorName = "srcpack.toml"

type (
	// Person identifies an author or maintainer.
	Person struct {
		Name  string `toml:"name"`
		Email string `toml:"email"`
	}

	// DataFile declares extra files to ship. Dest is informational only for
	// source distributions (the files keep their original relative paths),
	// matching how data files behave in sdist-style tools.
	DataFile struct {
		Dest  string   `toml:"dest"`
		Files []string `toml:"files"`
	}

	// Metadata is the parsed package descriptor.
	Metadata struct {
		Name        string `toml:"name"`
		Version     string `toml:"version"`
		Description string `toml:"description"`
		URL         string `toml:"url"`
		License     string `toml:"license"`

		Author     Person `toml:"author"`
		Maintainer Person `toml:"maintainer"`

		// Packages are project-relative directories whose source files are
		// shipped by default.
		Packages []string `toml:"packages"`

		// PackageSources are glob patterns selecting source files inside each
		// package directory. Defaults to ["*.go"] when empty.
		PackageSources []string `toml:"package_sources"`

		// PackageData maps a package directory to extra glob patterns shipped
		// alongside its sources. The empty key applies to every package.
		PackageData map[string][]string `toml:"package_data"`

		// DataFiles are extra standalone files to ship.
		DataFiles []DataFile `toml:"data_files"`

		// Scripts are project-relative script files to ship.
		Scripts []string `toml:"scripts"`
	}
)

// DefaultPackageSources is used when a descriptor declares packages but no
// package_sources globs.
var DefaultPackageSources = []string{"*.go"}

// Load reads and parses a package descriptor file.
func Load(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, issue.NewErrorContext().
				WithOperation("load package descriptor").
				WithResource(path).
				WithSuggestion("Run 'srcpack init' to create one").
				WithSuggestion("Run srcpack from the project root").
				Wrap(err).
				Build()
		}
		return nil, issue.WrapWithContext(err, "load package descriptor", path)
	}

	return Parse(data)
}

// Parse decodes descriptor bytes into Metadata.
func Parse(data []byte) (*Metadata, error) {
	var meta Metadata
	if err := toml.Unmarshal(data, &meta); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse package descriptor").
			WithSuggestion("Check the TOML syntax").
			WithSuggestion("Run 'srcpack --verbose check' for details").
			Wrap(err).
			Build()
	}
	return &meta, nil
}

// FullName returns the base name of the release tree and archives,
// "<name>-<version>". Missing fields degrade to "UNKNOWN", which keeps
// manifest-only runs usable on incomplete descriptors.
func (m *Metadata) FullName() string {
	name := m.Name
	if name == "" {
		name = "UNKNOWN"
	}
	version := m.Version
	if version == "" {
		version = "UNKNOWN"
	}
	return fmt.Sprintf("%s-%s", name, version)
}

// SourceGlobs returns the effective package source patterns.
func (m *Metadata) SourceGlobs() []string {
	if len(m.PackageSources) == 0 {
		return DefaultPackageSources
	}
	return m.PackageSources
}

// PkgInfo renders the PKG-INFO summary shipped at the root of every
// release tree. Unset fields are written as UNKNOWN so consumers can rely
// on every key being present.
func (m *Metadata) PkgInfo() string {
	val := func(s string) string {
		if s == "" {
			return "UNKNOWN"
		}
		return s
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "Metadata-Version: 1.0\n")
	fmt.Fprintf(&buf, "Name: %s\n", val(m.Name))
	fmt.Fprintf(&buf, "Version: %s\n", val(m.Version))
	fmt.Fprintf(&buf, "Summary: %s\n", val(m.Description))
	fmt.Fprintf(&buf, "Home-page: %s\n", val(m.URL))
	fmt.Fprintf(&buf, "Author: %s\n", val(m.Author.Name))
	fmt.Fprintf(&buf, "Author-email: %s\n", val(m.Author.Email))
	fmt.Fprintf(&buf, "License: %s\n", val(m.License))
	return buf.String()
}

// Check validates the descriptor metadata and returns one warning string per
// problem found. A complete descriptor yields no warnings. Problems are never
// errors: a distribution can always be built, just not a polite one.
func (m *Metadata) Check() []string {
	var warnings []string

	var missing []string
	if m.Name == "" {
		missing = append(missing, "name")
	}
	if m.Version == "" {
		missing = append(missing, "version")
	}
	if m.URL == "" {
		missing = append(missing, "url")
	}
	if len(missing) > 0 {
		warnings = append(warnings, "missing required meta-data: "+strings.Join(missing, ", "))
	}

	switch {
	case m.Author.Name != "":
		if m.Author.Email == "" {
			warnings = append(warnings, "missing meta-data: if 'author' is supplied, 'author.email' should be too")
		}
	case m.Maintainer.Name != "":
		if m.Maintainer.Email == "" {
			warnings = append(warnings, "missing meta-data: if 'maintainer' is supplied, 'maintainer.email' should be too")
		}
	default:
		warnings = append(warnings, "missing meta-data: either (author and author.email) or (maintainer and maintainer.email) should be supplied")
	}

	return warnings
}
