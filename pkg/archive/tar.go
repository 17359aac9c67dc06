// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strconv"

	"srcpack/internal/issue"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// compression selects the stream wrapped around the tar writer.
type compression string

const (
	compressionNone compression = "none"
	compressionGzip compression = "gzip"
	compressionZstd compression = "zstd"
)

func (c compression) extension() string {
	switch c {
	case compressionGzip:
		return ".tar.gz"
	case compressionZstd:
		return ".tar.zst"
	default:
		return ".tar"
	}
}

// ownership is the uid/gid override applied to every tar member.
type ownership struct {
	uid   int
	gid   int
	uname string
	gname string
}

// tarballMaker returns the MakeFunc for a tar variant with the given
// compression.
func tarballMaker(c compression) MakeFunc {
	return func(baseName, rootDir, baseDir string, opts Options) (string, error) {
		return makeTarball(baseName, rootDir, baseDir, c, opts)
	}
}

func makeTarball(baseName, rootDir, baseDir string, c compression, opts Options) (string, error) {
	owner, err := resolveOwnership(opts.Owner, opts.Group)
	if err != nil {
		return "", err
	}

	archivePath := baseName + c.extension()
	if opts.Logger != nil {
		opts.Logger.Info("creating tar archive", "path", archivePath, "compression", string(c))
	}

	out, err := os.Create(archivePath)
	if err != nil {
		return "", wrapArchiveWrite(err, archivePath)
	}
	defer out.Close()

	var w io.WriteCloser = out
	switch c {
	case compressionGzip:
		w = gzip.NewWriter(out)
	case compressionZstd:
		zw, err := zstd.NewWriter(out)
		if err != nil {
			return "", wrapArchiveWrite(err, archivePath)
		}
		w = zw
	}

	tw := tar.NewWriter(w)

	root := filepath.Join(rootDir, baseDir)
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(rootDir, path)
		if err != nil {
			return err
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if d.IsDir() {
			hdr.Name += "/"
		}
		if owner != nil {
			if owner.uid >= 0 {
				hdr.Uid = owner.uid
				hdr.Uname = owner.uname
			}
			if owner.gid >= 0 {
				hdr.Gid = owner.gid
				hdr.Gname = owner.gname
			}
		}

		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
	if walkErr != nil {
		tw.Close()
		w.Close()
		os.Remove(archivePath)
		return "", wrapArchiveWrite(walkErr, archivePath)
	}

	if err := tw.Close(); err != nil {
		return "", wrapArchiveWrite(err, archivePath)
	}
	// close the compressor before the file so the trailer is flushed
	if c != compressionNone {
		if err := w.Close(); err != nil {
			return "", wrapArchiveWrite(err, archivePath)
		}
	}
	if err := out.Close(); err != nil {
		return "", wrapArchiveWrite(err, archivePath)
	}

	return archivePath, nil
}

// resolveOwnership looks up the named owner and group accounts. A nil result
// means no override was requested.
func resolveOwnership(ownerName, groupName string) (*ownership, error) {
	if ownerName == "" && groupName == "" {
		return nil, nil
	}

	o := &ownership{uid: -1, gid: -1}

	if ownerName != "" {
		u, err := user.Lookup(ownerName)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("resolve archive owner").
				WithResource(ownerName).
				WithSuggestion("Check the spelling of the account name").
				WithSuggestion("Use an account that exists on this system").
				Wrap(err).
				Build()
		}
		uid, err := strconv.Atoi(u.Uid)
		if err != nil {
			return nil, fmt.Errorf("non-numeric uid %q for user %s: %w", u.Uid, ownerName, err)
		}
		o.uid = uid
		o.uname = ownerName
	}

	if groupName != "" {
		g, err := user.LookupGroup(groupName)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("resolve archive group").
				WithResource(groupName).
				WithSuggestion("Check the spelling of the group name").
				Wrap(err).
				Build()
		}
		gid, err := strconv.Atoi(g.Gid)
		if err != nil {
			return nil, fmt.Errorf("non-numeric gid %q for group %s: %w", g.Gid, groupName, err)
		}
		o.gid = gid
		o.gname = groupName
	}

	return o, nil
}

func wrapArchiveWrite(err error, path string) error {
	return issue.NewErrorContext().
		WithOperation("write archive").
		WithResource(path).
		WithSuggestion("Check permissions on the dist directory").
		Wrap(err).
		Build()
}
