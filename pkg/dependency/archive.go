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

package dependency

import (
	"github.com/pkg/errors"

	"github.com/wolauncher/wolauncher/pkg/artifact"
	"github.com/wolauncher/wolauncher/pkg/checksum"
	"github.com/wolauncher/wolauncher/pkg/fsutil"
)

// Archive is a dependency installed by extraction into the runtime directory.
type Archive struct {
	kind    Kind
	resolve ResolveFunc
	env     Env

	desc         *artifact.Descriptor
	downloadPath string
	path         string

	// requireChecksum makes a missing or wrong checksum fatal before extraction.
	requireChecksum bool
	verified        bool
	postInstall     func(dir string) error
}

// NewArchive returns a generic archive dependency. path is a previously
// persisted install path and may be empty.
func NewArchive(resolve ResolveFunc, env Env, path string) *Archive {
	return newArchive(KindArchive, resolve, env, path)
}

// NewJFX returns the OpenJFX SDK dependency.
func NewJFX(resolve ResolveFunc, env Env, path string) *Archive {
	return newArchive(KindJFX, resolve, env, path)
}

func newArchive(kind Kind, resolve ResolveFunc, env Env, path string) *Archive {
	return &Archive{kind: kind, resolve: resolve, env: env, path: path}
}

// Kind implements Dependency.
func (a *Archive) Kind() Kind { return a.kind }

// Path implements Dependency.
func (a *Archive) Path() string { return a.path }

// DownloadPath is the cached download, known after MakeReady.
func (a *Archive) DownloadPath() string { return a.downloadPath }

// IsReady implements Dependency.
func (a *Archive) IsReady() bool {
	return a.path != "" && fsutil.Exists(a.path)
}

// Descriptor resolves the artifact once and returns it.
func (a *Archive) Descriptor() (artifact.Descriptor, error) {
	if a.desc != nil {
		return *a.desc, nil
	}
	d, err := a.resolve()
	if err != nil {
		return artifact.Descriptor{}, errors.Wrapf(err, "cannot resolve %s", a.kind)
	}
	a.desc = &d
	return d, nil
}

// MakeReady implements Dependency.
func (a *Archive) MakeReady() error {
	d, err := a.Descriptor()
	if err != nil {
		return err
	}
	res, err := a.env.Downloader.EnsureDownloaded(d)
	if err != nil {
		return err
	}
	a.downloadPath = res.Path

	if err := a.verify(d, res.Path); err != nil {
		return err
	}

	path, err := a.env.Archives.EnsureInstalledWith(res.Path, res.FileName, a.postInstall)
	if err != nil {
		return err
	}
	a.path = path
	return nil
}

func (a *Archive) verify(d artifact.Descriptor, downloaded string) error {
	if !d.HasChecksum() {
		if a.requireChecksum {
			return artifact.Wrap(artifact.ErrChecksumMismatch, errors.Errorf("no published checksum for %s", d.URL))
		}
		return nil
	}
	a.env.Downloader.Logger().Info("Comparing checksums", "file", downloaded)
	if err := checksum.VerifyFile(downloaded, d.Checksum); err != nil {
		return err
	}
	a.verified = true
	return nil
}
