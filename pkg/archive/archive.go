// SPDX-License-Identifier: MPL-2.0

// Package archive builds source-distribution archives. It keeps a registry
// of named formats (zip, tar, gztar, zsttar) and produces an archive of a
// staged release tree for any of them.
package archive

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/sahilm/fuzzy"
)

type (
	// Options tunes archive creation.
	Options struct {
		// Owner and Group force the ownership recorded on tar members.
		// Empty values keep the original file ownership. Ignored by zip.
		Owner string
		Group string

		// Logger receives progress messages. Nil disables them.
		Logger *log.Logger
	}

	// MakeFunc builds <baseName><ext> from rootDir/baseDir and returns the
	// path of the archive it wrote.
	MakeFunc func(baseName, rootDir, baseDir string, opts Options) (string, error)

	// Format describes one registered archive format.
	Format struct {
		// Name is the registry key, e.g. "gztar".
		Name string
		// Extension is appended to the archive base name, e.g. ".tar.gz".
		Extension string
		// Description is the human-readable summary shown by `srcpack formats`.
		Description string

		make MakeFunc
	}

	// UnknownFormatError reports a format name missing from the registry.
	UnknownFormatError struct {
		// Name is the unknown format that was requested.
		Name string
		// Suggestion is the closest registered name, empty when nothing is close.
		Suggestion string
	}
)

func (e *UnknownFormatError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown archive format %q (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown archive format %q", e.Name)
}

var registry = map[string]Format{
	"zip": {
		Name:        "zip",
		Extension:   ".zip",
		Description: "ZIP file",
		make:        makeZipfile,
	},
	"tar": {
		Name:        "tar",
		Extension:   ".tar",
		Description: "uncompressed tar file",
		make:        tarballMaker(compressionNone),
	},
	"gztar": {
		Name:        "gztar",
		Extension:   ".tar.gz",
		Description: "gzip'ed tar file",
		make:        tarballMaker(compressionGzip),
	},
	"zsttar": {
		Name:        "zsttar",
		Extension:   ".tar.zst",
		Description: "zstd'ed tar file",
		make:        tarballMaker(compressionZstd),
	},
}

// Formats returns every registered format sorted by name.
func Formats() []Format {
	out := make([]Format, 0, len(registry))
	for _, f := range registry {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the format registered under name.
func Lookup(name string) (Format, bool) {
	f, ok := registry[name]
	return f, ok
}

// CheckFormats validates a list of format names. The first unknown name is
// returned as an *UnknownFormatError carrying a close-match suggestion.
func CheckFormats(names []string) error {
	for _, name := range names {
		if _, ok := registry[name]; !ok {
			return &UnknownFormatError{Name: name, Suggestion: closestFormat(name)}
		}
	}
	return nil
}

// Make builds an archive of rootDir/baseDir in the given format. The
// resulting file is <baseName><ext>; member paths are prefixed with baseDir
// so the archive unpacks into a single directory.
func Make(format, baseName, rootDir, baseDir string, opts Options) (string, error) {
	f, ok := registry[format]
	if !ok {
		return "", &UnknownFormatError{Name: format, Suggestion: closestFormat(format)}
	}
	return f.make(baseName, rootDir, baseDir, opts)
}

// closestFormat returns the registered name most similar to the given one.
func closestFormat(name string) string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)

	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
