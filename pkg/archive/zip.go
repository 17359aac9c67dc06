// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// makeZipfile builds <baseName>.zip from rootDir/baseDir. Only file entries
// are written; directories exist implicitly through their members' paths.
func makeZipfile(baseName, rootDir, baseDir string, opts Options) (string, error) {
	archivePath := baseName + ".zip"
	if opts.Logger != nil {
		opts.Logger.Info("creating zip archive", "path", archivePath)
	}

	out, err := os.Create(archivePath)
	if err != nil {
		return "", wrapArchiveWrite(err, archivePath)
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	root := filepath.Join(rootDir, baseDir)
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(rootDir, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}

		hdr, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		hdr.Method = zip.Deflate

		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(w, f)
		return err
	})
	if walkErr != nil {
		zw.Close()
		out.Close()
		os.Remove(archivePath)
		return "", wrapArchiveWrite(walkErr, archivePath)
	}

	if err := zw.Close(); err != nil {
		return "", wrapArchiveWrite(err, archivePath)
	}
	if err := out.Close(); err != nil {
		return "", wrapArchiveWrite(err, archivePath)
	}

	return archivePath, nil
}
