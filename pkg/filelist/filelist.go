// SPDX-License-Identifier: MPL-2.0

// Package filelist computes the set of files shipped in a source
// distribution. A FileList starts from the result of a filesystem walk
// and is refined by include/exclude pattern operations, either called
// directly or parsed from MANIFEST.in template lines.
//
// Paths are stored project-relative with forward slashes regardless of
// the host OS; callers convert to native separators at the I/O boundary.
package filelist

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// FileList is an ordered, deduplicatable collection of relative file paths.
type FileList struct {
	// Logger receives "no files found matching ..." style warnings.
	// A nil Logger silences them.
	Logger *log.Logger

	files    []string
	allFiles []string
}

// New returns an empty FileList.
func New() *FileList {
	return &FileList{}
}

// Files returns the current file list. The returned slice is shared;
// callers must not mutate it.
func (l *FileList) Files() []string {
	return l.files
}

// AllFiles returns the walk result backing include operations.
func (l *FileList) AllFiles() []string {
	return l.allFiles
}

// Len returns the number of selected files.
func (l *FileList) Len() int {
	return len(l.files)
}

// Append adds a single path to the list, normalized to forward slashes.
func (l *FileList) Append(path string) {
	l.files = append(l.files, filepath.ToSlash(path))
}

// Extend adds several paths to the list.
func (l *FileList) Extend(paths []string) {
	for _, p := range paths {
		l.Append(p)
	}
}

// SetAllFiles replaces the walk result backing include operations.
func (l *FileList) SetAllFiles(paths []string) {
	l.allFiles = make([]string, 0, len(paths))
	for _, p := range paths {
		l.allFiles = append(l.allFiles, filepath.ToSlash(p))
	}
}

// FindAll walks root and records every regular file (and symlink to one),
// relative to root. Directories are never listed themselves.
func (l *FileList) FindAll(root string) error {
	files, err := FindAll(root)
	if err != nil {
		return err
	}
	l.allFiles = files
	return nil
}

// SortAndDedup sorts the list and removes duplicate entries, leaving the
// canonical MANIFEST ordering.
func (l *FileList) SortAndDedup() {
	sort.Strings(l.files)
	out := l.files[:0]
	prev := ""
	for i, f := range l.files {
		if i == 0 || f != prev {
			out = append(out, f)
		}
		prev = f
	}
	l.files = out
}

// Include adds all walked files matching any pattern, anchored at the
// project root. Reports whether anything matched.
func (l *FileList) Include(patterns ...string) bool {
	found := false
	for _, pat := range patterns {
		re := translate(pat, true, "")
		if !l.includeRegexp(re) {
			l.warnf("no files found matching %q", pat)
			continue
		}
		found = true
	}
	return found
}

// Exclude removes files matching any pattern, anchored at the project root.
// Reports whether anything was removed.
func (l *FileList) Exclude(patterns ...string) bool {
	found := false
	for _, pat := range patterns {
		re := translate(pat, true, "")
		if !l.ExcludeRegexp(re) {
			l.warnf("no previously-included files found matching %q", pat)
			continue
		}
		found = true
	}
	return found
}

// GlobalInclude adds walked files matching any pattern in any directory.
func (l *FileList) GlobalInclude(patterns ...string) bool {
	found := false
	for _, pat := range patterns {
		re := translate(pat, false, "")
		if !l.includeRegexp(re) {
			l.warnf("no files found matching %q anywhere in the tree", pat)
			continue
		}
		found = true
	}
	return found
}

// GlobalExclude removes files matching any pattern in any directory.
func (l *FileList) GlobalExclude(patterns ...string) bool {
	found := false
	for _, pat := range patterns {
		re := translate(pat, false, "")
		if !l.ExcludeRegexp(re) {
			l.warnf("no previously-included files found matching %q anywhere in the tree", pat)
			continue
		}
		found = true
	}
	return found
}

// RecursiveInclude adds walked files under dir matching any pattern.
func (l *FileList) RecursiveInclude(dir string, patterns ...string) bool {
	found := false
	for _, pat := range patterns {
		re := translate(pat, false, dir)
		if !l.includeRegexp(re) {
			l.warnf("no files found matching %q under directory %q", pat, dir)
			continue
		}
		found = true
	}
	return found
}

// RecursiveExclude removes files under dir matching any pattern.
func (l *FileList) RecursiveExclude(dir string, patterns ...string) bool {
	found := false
	for _, pat := range patterns {
		re := translate(pat, false, dir)
		if !l.ExcludeRegexp(re) {
			l.warnf("no previously-included files found matching %q under directory %q", pat, dir)
			continue
		}
		found = true
	}
	return found
}

// Graft adds every walked file under dir.
func (l *FileList) Graft(dir string) bool {
	re := subtreeRegexp(dir)
	if !l.includeRegexp(re) {
		l.warnf("no directory found matching %q", dir)
		return false
	}
	return true
}

// Prune removes every file under dir.
func (l *FileList) Prune(dir string) bool {
	re := subtreeRegexp(dir)
	if !l.ExcludeRegexp(re) {
		l.warnf("no previously-included directory found matching %q", dir)
		return false
	}
	return true
}

// ExcludeRegexp removes every selected file whose slash-path matches re.
// Reports whether anything was removed.
func (l *FileList) ExcludeRegexp(re *regexp.Regexp) bool {
	out := l.files[:0]
	removed := false
	for _, f := range l.files {
		if re.MatchString(f) {
			removed = true
			continue
		}
		out = append(out, f)
	}
	l.files = out
	return removed
}

func (l *FileList) includeRegexp(re *regexp.Regexp) bool {
	found := false
	for _, f := range l.allFiles {
		if re.MatchString(f) {
			l.files = append(l.files, f)
			found = true
		}
	}
	return found
}

func (l *FileList) warnf(format string, args ...any) {
	if l.Logger != nil {
		l.Logger.Warnf(format, args...)
	}
}

// subtreeRegexp matches every path inside the directory dir.
func subtreeRegexp(dir string) *regexp.Regexp {
	dir = strings.TrimSuffix(filepath.ToSlash(dir), "/")
	return regexp.MustCompile("^" + regexp.QuoteMeta(dir) + "/")
}

// FindAll walks root and returns the relative slash-paths of every regular
// file. Symlinks that resolve to regular files are included; dangling
// symlinks and directories are skipped.
func FindAll(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
