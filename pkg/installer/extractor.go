/*
Copyright The wolauncher Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package installer

import (
	"archive/tar"
	"archive/zip"
	"compress/bzip2"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
)

// Extractor provides an interface for extracting archives
type Extractor interface {
	// Extract unpacks the archive at source into targetDir, which must exist.
	Extract(source, targetDir string) error
}

// TarExtractor extracts tar archives, optionally compressed.
type TarExtractor struct {
	// Decompress wraps the raw file stream. Nil means an uncompressed tar.
	Decompress func(io.Reader) (io.ReadCloser, error)
}

// ZipExtractor extracts zip archives.
type ZipExtractor struct{}

func gzipReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

func bzip2Reader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(bzip2.NewReader(r)), nil
}

func xzReader(r io.Reader) (io.ReadCloser, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(xr), nil
}

func zstdReader(r io.Reader) (io.ReadCloser, error) {
	d, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return d.IOReadCloser(), nil
}

// Extract extracts compressed archives
//
// Implements Extractor.
func (t *TarExtractor) Extract(source, targetDir string) error {
	f, err := os.Open(source)
	if err != nil {
		return err
	}
	defer f.Close()

	var stream io.Reader = f
	if t.Decompress != nil {
		rc, err := t.Decompress(f)
		if err != nil {
			return errors.Wrapf(err, "cannot decompress %s", source)
		}
		defer rc.Close()
		stream = rc
	}

	tarReader := tar.NewReader(stream)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrapf(err, "cannot read %s", source)
		}

		path, err := cleanJoin(targetDir, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(path, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeFile(path, tarReader, header.FileInfo().Mode()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := symlink(targetDir, header.Name, header.Linkname, path); err != nil {
				return err
			}
		case tar.TypeLink:
			target, err := cleanJoin(targetDir, header.Linkname)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}
			if err := os.Link(target, path); err != nil {
				return err
			}
		case tar.TypeXGlobalHeader:
		default:
			return errors.Errorf("unknown type: %b in %s", header.Typeflag, header.Name)
		}
	}
	return nil
}

// Extract extracts zip archives
//
// Implements Extractor.
func (z *ZipExtractor) Extract(source, targetDir string) error {
	r, err := zip.OpenReader(source)
	if err != nil {
		return errors.Wrapf(err, "cannot read %s", source)
	}
	defer r.Close()

	for _, f := range r.File {
		path, err := cleanJoin(targetDir, f.Name)
		if err != nil {
			return err
		}
		mode := f.Mode()
		switch {
		case mode.IsDir():
			if err := os.MkdirAll(path, 0755); err != nil {
				return err
			}
		case mode&os.ModeSymlink != 0:
			linkname, err := readZipEntry(f)
			if err != nil {
				return err
			}
			if err := symlink(targetDir, f.Name, linkname, path); err != nil {
				return err
			}
		default:
			rc, err := f.Open()
			if err != nil {
				return errors.Wrapf(err, "cannot read %s in %s", f.Name, source)
			}
			err = writeFile(path, rc, mode)
			rc.Close()
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func readZipEntry(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	return string(b), err
}

func writeFile(path string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	outFile, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm()|0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(outFile, r); err != nil {
		outFile.Close()
		return err
	}
	return outFile.Close()
}

// symlink creates a link at path pointing at linkname, which must stay
// inside root once resolved against the entry's directory.
func symlink(root, name, linkname, path string) error {
	if filepath.IsAbs(linkname) || strings.HasPrefix(linkname, "/") {
		return errors.Errorf("symlink %s points to absolute path %s, which is illegal", name, linkname)
	}
	resolved := filepath.ToSlash(filepath.Join(filepath.Dir(filepath.FromSlash(name)), filepath.FromSlash(linkname)))
	if resolved == ".." || strings.HasPrefix(resolved, "../") {
		return errors.Errorf("symlink %s escapes the archive root", name)
	}
	if _, err := cleanJoin(root, resolved); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.Symlink(linkname, path)
}

// cleanJoin resolves dest as a subpath of root.
//
// Names containing ':' or a '..' component and absolute names are rejected
// outright rather than cleaned. Backslashes are treated as separators.
// Rudimentary symlink protection is offered by SecureJoin.
func cleanJoin(root, dest string) (string, error) {
	if strings.Contains(dest, ":") {
		return "", errors.New("path contains ':', which is illegal")
	}

	dest = strings.ReplaceAll(dest, "\\", "/")

	for _, part := range strings.Split(dest, "/") {
		if part == ".." {
			return "", errors.New("path contains '..', which is illegal")
		}
	}

	if path.IsAbs(dest) {
		return "", errors.New("path is absolute, which is illegal")
	}

	newpath, err := securejoin.SecureJoin(root, dest)
	if err != nil {
		return "", err
	}

	return newpath, nil
}
