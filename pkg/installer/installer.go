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
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/wolauncher/wolauncher/internal/fileutil"
	"github.com/wolauncher/wolauncher/internal/logging"
	"github.com/wolauncher/wolauncher/pkg/artifact"
	"github.com/wolauncher/wolauncher/pkg/checksum"
	"github.com/wolauncher/wolauncher/pkg/fsutil"
)

// Entry is one top-level item of an extracted archive.
type Entry struct {
	Name  string
	IsDir bool
}

// Flatten reports the name of the single directory wrapping an archive's
// contents. It returns false unless entries is exactly one directory.
func Flatten(entries []Entry) (string, bool) {
	if len(entries) != 1 || !entries[0].IsDir {
		return "", false
	}
	return entries[0].Name, true
}

func listTopLevel(dir string) ([]Entry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		entries = append(entries, Entry{Name: de.Name(), IsDir: de.IsDir()})
	}
	return entries, nil
}

// ArchiveInstaller unpacks archives into RuntimeDir/{key}.
type ArchiveInstaller struct {
	logging.LogHolder

	RuntimeDir string
	// WorkDir holds partially extracted archives.
	WorkDir string
	// PostInstall runs on the extracted tree before it is moved into place.
	PostInstall func(dir string) error
}

// Path returns where fileName is installed, without checking that it is.
func (a *ArchiveInstaller) Path(fileName string) (string, error) {
	key, _, err := ArchiveKey(fileName)
	if err != nil {
		return "", err
	}
	return filepath.Join(a.RuntimeDir, key), nil
}

// EnsureInstalled extracts the archive at downloaded, named fileName, unless
// its install directory already exists. The install directory is returned.
func (a *ArchiveInstaller) EnsureInstalled(downloaded, fileName string) (string, error) {
	return a.EnsureInstalledWith(downloaded, fileName, a.PostInstall)
}

// EnsureInstalledWith is EnsureInstalled with postInstall in place of the
// installer's own hook.
func (a *ArchiveInstaller) EnsureInstalledWith(downloaded, fileName string, postInstall func(dir string) error) (string, error) {
	key, _, err := ArchiveKey(fileName)
	if err != nil {
		return "", err
	}
	extractor, err := NewExtractor(fileName)
	if err != nil {
		return "", err
	}

	installPath := filepath.Join(a.RuntimeDir, key)
	if fsutil.Exists(installPath) {
		a.Logger().Info(installPath + " already exists. Skipping.")
		return installPath, nil
	}

	work := filepath.Join(a.WorkDir, key)
	if err := os.RemoveAll(work); err != nil {
		return "", artifact.Wrap(artifact.ErrFilesystem, errors.Wrapf(err, "cannot remove stale %s", work))
	}
	if err := os.MkdirAll(work, 0755); err != nil {
		return "", artifact.Wrap(artifact.ErrFilesystem, err)
	}

	a.Logger().Info("Extracting "+fileName, "to", work)
	if err := extractor.Extract(downloaded, work); err != nil {
		return "", artifact.Wrap(artifact.ErrFilesystem, errors.Wrapf(err, "cannot extract %s", fileName))
	}

	entries, err := listTopLevel(work)
	if err != nil {
		return "", artifact.Wrap(artifact.ErrFilesystem, err)
	}
	src := work
	if name, ok := Flatten(entries); ok {
		a.Logger().Debug("flattening archive", "directory", name)
		src = filepath.Join(work, name)
	}

	if postInstall != nil {
		if err := postInstall(src); err != nil {
			return "", errors.Wrapf(err, "post-install of %s failed", fileName)
		}
	}

	if err := os.MkdirAll(a.RuntimeDir, 0755); err != nil {
		return "", artifact.Wrap(artifact.ErrFilesystem, err)
	}
	if err := fsutil.RenameWithFallback(src, installPath); err != nil {
		return "", artifact.Wrap(artifact.ErrFilesystem, err)
	}
	if err := os.RemoveAll(work); err != nil {
		return "", artifact.Wrap(artifact.ErrFilesystem, err)
	}
	return installPath, nil
}

// CopyInstaller installs plain files into ClientsDir.
type CopyInstaller struct {
	logging.LogHolder

	ClientsDir string
}

// Path returns where fileName is installed.
func (c *CopyInstaller) Path(fileName string) string {
	return filepath.Join(c.ClientsDir, fileName)
}

// EnsureInstalled copies downloaded to ClientsDir/fileName when the target
// is missing or its content differs.
func (c *CopyInstaller) EnsureInstalled(downloaded, fileName string) (string, bool, error) {
	dest := c.Path(fileName)
	if fsutil.Exists(dest) {
		c.Logger().Info("Comparing checksums", "file", fileName)
		same, err := checksum.SameContent(downloaded, dest)
		if err != nil {
			return "", false, artifact.Wrap(artifact.ErrFilesystem, err)
		}
		if same {
			c.Logger().Info(dest + " is already up to date. Skipping.")
			return dest, false, nil
		}
	}

	src, err := os.Open(downloaded)
	if err != nil {
		return "", false, artifact.Wrap(artifact.ErrFilesystem, err)
	}
	defer src.Close()

	if err := os.MkdirAll(c.ClientsDir, 0755); err != nil {
		return "", false, artifact.Wrap(artifact.ErrFilesystem, err)
	}
	c.Logger().Info("Copying "+fileName, "to", dest)
	if err := fileutil.AtomicWriteFile(dest, src, 0644); err != nil {
		return "", false, artifact.Wrap(artifact.ErrFilesystem, errors.Wrapf(err, "cannot install %s", fileName))
	}
	return dest, true, nil
}
