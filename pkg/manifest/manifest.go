// SPDX-License-Identifier: MPL-2.0

// Package manifest reads and writes the MANIFEST file: the plain-text
// listing of every file shipped in a source distribution, one relative
// path per line.
package manifest

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"srcpack/internal/issue"
)

// DefaultName is the conventional manifest file name.
const DefaultName = "MANIFEST"

// generatedHeader marks a manifest written by srcpack. Readers treat it as
// a comment; `srcpack manifest` rewrites the file on every run.
const generatedHeader = "# This file is GENERATED by srcpack; edits are overwritten on the next run"

// Write writes the manifest with one path per line, using native path
// separators. The list is written as given; callers sort beforehand.
func Write(path string, files []string) error {
	var buf strings.Builder
	buf.WriteString(generatedHeader)
	buf.WriteString("\n")
	for _, f := range files {
		buf.WriteString(filepath.FromSlash(f))
		buf.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(buf.String()), 0644); err != nil {
		return issue.WrapWithContext(err, "write manifest", path)
	}
	return nil
}

// Read parses a manifest file, skipping blank lines and '#' comments.
// Paths are returned in slash form regardless of how they were written.
func Read(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, issue.WrapWithContext(err, "read manifest", path)
	}
	defer f.Close()

	var files []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		files = append(files, filepath.ToSlash(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	return files, nil
}

// Exists reports whether a manifest file is present at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
