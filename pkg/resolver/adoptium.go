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

package resolver

import (
	"fmt"
	"net/url"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/wolauncher/wolauncher/internal/logging"
	"github.com/wolauncher/wolauncher/pkg/artifact"
	"github.com/wolauncher/wolauncher/pkg/cache"
	"github.com/wolauncher/wolauncher/pkg/getter"
	"github.com/wolauncher/wolauncher/pkg/platform"
)

// DefaultAdoptiumEndpoint lists feature releases per major version.
const DefaultAdoptiumEndpoint = "https://api.adoptium.net/v3/assets/feature_releases"

type release struct {
	ReleaseName string `json:"release_name"`
	Binaries    []struct {
		Package struct {
			Link     string `json:"link"`
			Name     string `json:"name"`
			Checksum string `json:"checksum"`
		} `json:"package"`
	} `json:"binaries"`
}

// Adoptium resolves the newest Java runtime build from the Adoptium API.
type Adoptium struct {
	logging.LogHolder

	Getter   getter.Getter
	Endpoint string
	// ReleaseType is "ga" or "ea".
	ReleaseType string

	memo cache.Cache[artifact.Descriptor]
}

// NewAdoptium returns an Adoptium resolver for general availability builds.
func NewAdoptium(g getter.Getter, endpoint string) *Adoptium {
	if endpoint == "" {
		endpoint = DefaultAdoptiumEndpoint
	}
	return &Adoptium{
		Getter:      g,
		Endpoint:    endpoint,
		ReleaseType: "ga",
		memo:        cache.NewMapCache[artifact.Descriptor](),
	}
}

// QueryURL is the listing request for major on plat.
func (a *Adoptium) QueryURL(major int, plat platform.Platform) (string, error) {
	if major <= 0 {
		return "", errors.Errorf("invalid Java major version %d", major)
	}
	arch, err := plat.VendorArch()
	if err != nil {
		return "", err
	}
	os, err := plat.VendorOS()
	if err != nil {
		return "", err
	}
	releaseType := a.ReleaseType
	if releaseType == "" {
		releaseType = "ga"
	}
	params := url.Values{}
	params.Set("architecture", arch)
	params.Set("os", os)
	params.Set("project", "jdk")
	params.Set("image_type", "jdk")
	params.Set("heap_size", "normal")
	params.Set("sort_method", "DATE")
	return fmt.Sprintf("%s/%d/%s?%s", a.Endpoint, major, releaseType, params.Encode()), nil
}

// Latest returns the newest build for major, including its published checksum.
func (a *Adoptium) Latest(major int, plat platform.Platform) (artifact.Descriptor, error) {
	u, err := a.QueryURL(major, plat)
	if err != nil {
		return artifact.Descriptor{}, err
	}
	if a.memo == nil {
		a.memo = cache.NewMapCache[artifact.Descriptor]()
	}
	return cache.GetOrLoad(a.memo, u, func() (artifact.Descriptor, error) {
		return a.query(u, major)
	})
}

func (a *Adoptium) query(u string, major int) (artifact.Descriptor, error) {
	buf, err := a.Getter.Get(u, getter.WithAcceptHeader("application/json"))
	if err != nil {
		return artifact.Descriptor{}, errors.Wrapf(err, "cannot list Java %d releases", major)
	}
	var releases []release
	if err := yaml.Unmarshal(buf.Bytes(), &releases); err != nil {
		return artifact.Descriptor{}, artifact.Wrap(artifact.ErrTransport, errors.Wrap(err, "cannot decode release listing"))
	}
	if len(releases) == 0 || len(releases[0].Binaries) == 0 {
		return artifact.Descriptor{}, artifact.Wrap(artifact.ErrArtifactNotFound, errors.Errorf("no Java %d runtime is published for this platform", major))
	}
	pkg := releases[0].Binaries[0].Package
	if pkg.Link == "" || pkg.Checksum == "" {
		return artifact.Descriptor{}, artifact.Wrap(artifact.ErrArtifactNotFound, errors.Errorf("release %s has no downloadable package", releases[0].ReleaseName))
	}
	a.Logger().Info("Newest available JRE", "name", pkg.Name)
	return artifact.Descriptor{
		URL:      pkg.Link,
		FileName: pkg.Name,
		Checksum: pkg.Checksum,
	}, nil
}
