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

/*
Package resolver turns a dependency kind plus selection criteria into a
concrete artifact.Descriptor.

Native bundles and clients come from the catalog, the Java runtime from the
Adoptium release listing, and the UI toolkit from the vendor's fixed URL
scheme. Platform checks run before any lookup so an unsupported machine
never triggers a download.
*/
package resolver

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"

	"github.com/wolauncher/wolauncher/pkg/artifact"
	"github.com/wolauncher/wolauncher/pkg/catalog"
	"github.com/wolauncher/wolauncher/pkg/platform"
)

// NativesBundleName is the catalog name of the embedded browser natives.
const NativesBundleName = "jcef-natives"

// DefaultToolkitBaseURL hosts the OpenJFX SDK archives.
const DefaultToolkitBaseURL = "https://download2.gluonhq.com/openjfx"

// Natives resolves the JCEF natives bundle for plat.
func Natives(f catalog.Fetcher, plat platform.Platform) (artifact.Descriptor, error) {
	id, err := plat.CatalogID()
	if err != nil {
		return artifact.Descriptor{}, err
	}
	c, err := f.Fetch()
	if err != nil {
		return artifact.Descriptor{}, err
	}
	b, err := c.Bundle(NativesBundleName, id)
	if err != nil {
		return artifact.Descriptor{}, err
	}
	return artifact.Descriptor{URL: b.URL}, nil
}

// Client resolves the client jar by exact name.
func Client(f catalog.Fetcher, name string) (artifact.Descriptor, error) {
	c, err := f.Fetch()
	if err != nil {
		return artifact.Descriptor{}, err
	}
	cl, err := c.Client(name)
	if err != nil {
		return artifact.Descriptor{}, err
	}
	return artifact.Descriptor{URL: cl.URL}, nil
}

// Toolkit builds the OpenJFX SDK descriptor without touching the network.
func Toolkit(baseURL, version string, plat platform.Platform) (artifact.Descriptor, error) {
	if _, err := semver.NewVersion(version); err != nil {
		return artifact.Descriptor{}, errors.Wrapf(err, "invalid toolkit version %q", version)
	}
	id, err := plat.ToolkitID()
	if err != nil {
		return artifact.Descriptor{}, err
	}
	if baseURL == "" {
		baseURL = DefaultToolkitBaseURL
	}
	name := fmt.Sprintf("openjfx-%s_%s_bin-sdk.zip", version, id)
	return artifact.Descriptor{
		URL:      fmt.Sprintf("%s/%s/%s", baseURL, version, name),
		FileName: name,
	}, nil
}
