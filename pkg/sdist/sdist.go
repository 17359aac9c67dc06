// SPDX-License-Identifier: MPL-2.0

// Package sdist builds source distributions: it computes the list of files
// to ship, writes the MANIFEST, stages a release tree named
// "<name>-<version>", and archives it in every requested format.
package sdist

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"

	"srcpack/internal/issue"
	"srcpack/pkg/archive"
	"srcpack/pkg/filelist"
	"srcpack/pkg/manifest"
	"srcpack/pkg/metadata"

	"github.com/charmbracelet/log"
)

// Options configures a source distribution build.
type Options struct {
	// Formats names the archive formats to produce, in order.
	Formats []string
	// DistDir is where archives are placed, relative to the project root.
	DistDir string
	// Manifest is the manifest file name, relative to the project root.
	Manifest string
	// Template is the manifest template file name (MANIFEST.in).
	Template string

	// Owner and Group force ownership on tar members.
	Owner string
	Group string

	// UseDefaults adds the standard file set (README, descriptor, packages,
	// package data, data files, scripts) before template processing.
	UseDefaults bool
	// Prune drops VCS directories and build output from the file list.
	Prune bool
	// MetadataCheck verifies descriptor completeness before building.
	MetadataCheck bool
	// ManifestOnly stops after writing the manifest.
	ManifestOnly bool
	// KeepTemp leaves the staged release tree in place after archiving.
	KeepTemp bool
}

// DefaultOptions returns the options used by a bare `srcpack build`.
func DefaultOptions() Options {
	return Options{
		Formats:       []string{"gztar"},
		DistDir:       "dist",
		Manifest:      manifest.DefaultName,
		Template:      "MANIFEST.in",
		UseDefaults:   true,
		Prune:         true,
		MetadataCheck: true,
	}
}

// OptionError reports an invalid option value, e.g. an unknown archive
// format. It is the srcpack equivalent of a usage error: the build never
// started.
type OptionError struct {
	Option  string
	Message string
	Cause   error
}

func (e *OptionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid --%s: %s", e.Option, e.Cause.Error())
	}
	return fmt.Sprintf("invalid --%s: %s", e.Option, e.Message)
}

func (e *OptionError) Unwrap() error {
	return e.Cause
}

// readmeCandidates are the alternative spellings of the standard README;
// the first one found is shipped.
var readmeCandidates = []string{"README", "README.md", "README.txt", "README.rst"}

// vcsDirRegexp matches any path inside a version-control bookkeeping
// directory, at any depth.
var vcsDirRegexp = regexp.MustCompile(`(^|/)(\.git|\.svn|\.hg|\.bzr|_darcs|CVS|RCS)/`)

// Builder runs the sdist pipeline for one project.
type Builder struct {
	meta   *metadata.Metadata
	root   string
	opts   Options
	logger *log.Logger

	warnings  []string
	fileList  *filelist.FileList
	finalized bool
}

// New creates a Builder for the project rooted at root. A nil logger
// disables progress output.
func New(meta *metadata.Metadata, root string, opts Options, logger *log.Logger) *Builder {
	return &Builder{
		meta:   meta,
		root:   root,
		opts:   opts,
		logger: logger,
	}
}

// Options returns the effective options (after Finalize fills defaults).
func (b *Builder) Options() Options {
	return b.opts
}

// Warnings returns the metadata and default-file warnings collected so far.
func (b *Builder) Warnings() []string {
	return b.warnings
}

// FileList returns the file list computed by the last GetFileList call.
func (b *Builder) FileList() *filelist.FileList {
	return b.fileList
}

// Finalize fills option defaults and validates them. Unknown archive
// formats and empty required values are reported as *OptionError.
func (b *Builder) Finalize() error {
	if b.opts.DistDir == "" {
		b.opts.DistDir = "dist"
	}
	if b.opts.Manifest == "" {
		b.opts.Manifest = manifest.DefaultName
	}
	if b.opts.Template == "" {
		b.opts.Template = "MANIFEST.in"
	}
	if len(b.opts.Formats) == 0 {
		b.opts.Formats = []string{"gztar"}
	}
	for _, f := range b.opts.Formats {
		if f == "" {
			return &OptionError{Option: "formats", Message: "format names must not be empty"}
		}
	}
	if err := archive.CheckFormats(b.opts.Formats); err != nil {
		return &OptionError{Option: "formats", Cause: err}
	}

	b.finalized = true
	return nil
}

// Run executes the pipeline and returns the paths of the archives written.
// In manifest-only mode it returns nil after writing the manifest.
func (b *Builder) Run(ctx context.Context) ([]string, error) {
	if !b.finalized {
		if err := b.Finalize(); err != nil {
			return nil, err
		}
	}

	if b.opts.MetadataCheck {
		b.checkMetadata()
	}

	fl, err := b.GetFileList()
	if err != nil {
		return nil, err
	}

	manifestPath := filepath.Join(b.root, b.opts.Manifest)
	if err := manifest.Write(manifestPath, fl.Files()); err != nil {
		return nil, err
	}
	b.logf("wrote manifest", "path", manifestPath, "files", fl.Len())

	if b.opts.ManifestOnly {
		return nil, nil
	}

	if fl.Len() == 0 {
		return nil, issue.NewErrorContext().
			WithOperation("build source distribution").
			WithSuggestion("Declare packages, scripts or data files in " + metadata.DescriptorName).
			WithSuggestion("Add include rules to " + b.opts.Template).
			Wrap(fmt.Errorf("no files to distribute (empty manifest)")).
			Build()
	}

	return b.makeDistribution(ctx, fl.Files())
}

// GetFileList recomputes the distribution file list from scratch: walk,
// defaults, template rules, pruning, then sort and dedup. The manifest is
// always regenerated from this result, so files added since the last run
// are picked up.
func (b *Builder) GetFileList() (*filelist.FileList, error) {
	fl := filelist.New()
	fl.Logger = b.logger

	if err := fl.FindAll(b.root); err != nil {
		return nil, issue.WrapWithContext(err, "scan project tree", b.root)
	}

	if b.opts.UseDefaults {
		b.addDefaults(fl)
	}

	templatePath := filepath.Join(b.root, b.opts.Template)
	if content, err := os.ReadFile(templatePath); err == nil {
		if terr := fl.ProcessTemplate(string(content)); terr != nil {
			return nil, issue.WrapWithContext(terr, "process manifest template", templatePath)
		}
	} else if !os.IsNotExist(err) {
		return nil, issue.WrapWithContext(err, "read manifest template", templatePath)
	}

	if b.opts.Prune {
		b.pruneFileList(fl)
	}

	fl.SortAndDedup()
	b.fileList = fl
	return fl, nil
}

// addDefaults selects the standard file set. Missing standard files are
// warnings, never errors: the original layout may legitimately lack them.
func (b *Builder) addDefaults(fl *filelist.FileList) {
	// one README variant
	foundReadme := false
	for _, candidate := range readmeCandidates {
		if b.fileExists(candidate) {
			fl.Append(candidate)
			foundReadme = true
			break
		}
	}
	if !foundReadme {
		b.warn("standard file not found: should have one of README, README.md, README.txt, README.rst")
	}

	// the descriptor itself ships with the distribution
	if b.fileExists(metadata.DescriptorName) {
		fl.Append(metadata.DescriptorName)
	} else {
		b.warn("standard file '" + metadata.DescriptorName + "' not found")
	}

	for _, script := range b.meta.Scripts {
		if b.fileExists(script) {
			fl.Append(script)
		} else {
			b.warn(fmt.Sprintf("script file '%s' not found", script))
		}
	}

	for _, df := range b.meta.DataFiles {
		for _, f := range df.Files {
			if b.fileExists(f) {
				fl.Append(f)
			} else {
				b.warn(fmt.Sprintf("data file '%s' not found", f))
			}
		}
	}

	globalData := b.meta.PackageData[""]
	for _, pkg := range b.meta.Packages {
		for _, glob := range b.meta.SourceGlobs() {
			fl.Include(path.Join(pkg, glob))
		}
		for _, glob := range globalData {
			fl.Include(path.Join(pkg, glob))
		}
		for _, glob := range b.meta.PackageData[pkg] {
			fl.Include(path.Join(pkg, glob))
		}
	}
}

// pruneFileList drops build output, the release tree, and VCS bookkeeping
// directories. Pruning is quiet: nothing matching is the normal case.
func (b *Builder) pruneFileList(fl *filelist.FileList) {
	dist := filepath.ToSlash(b.opts.DistDir)
	fl.ExcludeRegexp(regexp.MustCompile("^" + regexp.QuoteMeta(dist) + "/"))
	fl.ExcludeRegexp(regexp.MustCompile("^" + regexp.QuoteMeta(b.meta.FullName()) + "/"))
	fl.ExcludeRegexp(vcsDirRegexp)
}

// checkMetadata records one warning per descriptor problem.
func (b *Builder) checkMetadata() {
	for _, w := range b.meta.Check() {
		b.warn(w)
	}
}

// makeDistribution stages the release tree and archives it once per format.
func (b *Builder) makeDistribution(ctx context.Context, files []string) ([]string, error) {
	baseDir := b.meta.FullName()
	distDir := filepath.Join(b.root, b.opts.DistDir)
	if err := os.MkdirAll(distDir, 0755); err != nil {
		return nil, issue.WrapWithContext(err, "create dist directory", distDir)
	}

	stageRoot := filepath.Join(b.root, baseDir)
	if err := b.makeReleaseTree(stageRoot, files); err != nil {
		return nil, err
	}
	if !b.opts.KeepTemp {
		defer os.RemoveAll(stageRoot)
	}

	baseName := filepath.Join(distDir, baseDir)
	opts := archive.Options{Owner: b.opts.Owner, Group: b.opts.Group, Logger: b.logger}

	var archives []string
	for _, format := range b.opts.Formats {
		select {
		case <-ctx.Done():
			return archives, fmt.Errorf("build canceled: %w", ctx.Err())
		default:
		}

		out, err := archive.Make(format, baseName, b.root, baseDir, opts)
		if err != nil {
			return archives, err
		}
		archives = append(archives, out)
	}

	return archives, nil
}

func (b *Builder) fileExists(rel string) bool {
	info, err := os.Stat(filepath.Join(b.root, filepath.FromSlash(rel)))
	return err == nil && info.Mode().IsRegular()
}

func (b *Builder) warn(msg string) {
	b.warnings = append(b.warnings, msg)
	if b.logger != nil {
		b.logger.Warn(msg)
	}
}

func (b *Builder) logf(msg string, kv ...any) {
	if b.logger != nil {
		b.logger.Info(msg, kv...)
	}
}
