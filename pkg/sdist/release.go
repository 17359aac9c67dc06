// SPDX-License-Identifier: MPL-2.0

package sdist

import (
	"io"
	"os"
	"path/filepath"

	"srcpack/internal/issue"
)

// makeReleaseTree stages the files under stageRoot, mirroring their
// project-relative layout. Files are hard-linked when the filesystem
// allows it and copied otherwise. A stale tree from an aborted run is
// replaced wholesale.
func (b *Builder) makeReleaseTree(stageRoot string, files []string) error {
	if err := os.RemoveAll(stageRoot); err != nil {
		return issue.WrapWithContext(err, "clear stale release tree", stageRoot)
	}
	if err := os.MkdirAll(stageRoot, 0755); err != nil {
		return issue.WrapWithContext(err, "create release tree", stageRoot)
	}

	b.logf("staging release tree", "path", stageRoot, "files", len(files))

	for _, rel := range files {
		src := filepath.Join(b.root, filepath.FromSlash(rel))
		dst := filepath.Join(stageRoot, filepath.FromSlash(rel))

		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return issue.WrapWithContext(err, "create release tree", filepath.Dir(dst))
		}
		if err := linkOrCopy(src, dst); err != nil {
			return issue.WrapWithContext(err, "stage file", rel)
		}
	}

	// the release tree carries a rendered metadata summary at its root
	pkgInfo := filepath.Join(stageRoot, "PKG-INFO")
	if err := os.WriteFile(pkgInfo, []byte(b.meta.PkgInfo()), 0644); err != nil {
		return issue.WrapWithContext(err, "write PKG-INFO", pkgInfo)
	}

	return nil
}

// linkOrCopy hard-links src to dst, falling back to a plain copy when the
// filesystem rejects the link (cross-device, unsupported, ...).
func linkOrCopy(src, dst string) error {
	if err := os.Link(src, dst); err == nil {
		return nil
	}

	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
