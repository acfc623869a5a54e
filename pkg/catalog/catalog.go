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
Package catalog fetches the remote manifest listing client builds and native
library bundles.

A Source is created once by the orchestration layer and handed to whatever
needs the catalog; the first successful fetch is kept for the lifetime of the
Source.
*/
package catalog

import (
	"bytes"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/wolauncher/wolauncher/internal/logging"
	"github.com/wolauncher/wolauncher/pkg/artifact"
	"github.com/wolauncher/wolauncher/pkg/cache"
	"github.com/wolauncher/wolauncher/pkg/getter"
)

// DefaultURL is the manifest published by the client vendor.
const DefaultURL = "http://client.wurmonline.com/manifest.php"

// Client is a launchable client build.
type Client struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Bundle is a platform specific auxiliary download, e.g. JCEF natives.
type Bundle struct {
	Name     string `json:"name"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// Catalog is the decoded manifest.
type Catalog struct {
	Clients      []Client `json:"clients"`
	Dependencies []Bundle `json:"dependencies"`
}

// Client returns the client build with exactly the given name.
func (c *Catalog) Client(name string) (Client, error) {
	for _, cl := range c.Clients {
		if cl.Name == name {
			return cl, nil
		}
	}
	return Client{}, artifact.Wrap(artifact.ErrArtifactNotFound, errors.Errorf("could not find a client with the name of %q", name))
}

// Bundle returns the first bundle matching name and platform.
func (c *Catalog) Bundle(name, platform string) (Bundle, error) {
	for _, b := range c.Dependencies {
		if b.Name == name && b.Platform == platform {
			return b, nil
		}
	}
	return Bundle{}, artifact.Wrap(artifact.ErrArtifactNotFound, errors.Errorf("no %s found for %s", name, platform))
}

// ClientNames lists the client builds in catalog order.
func (c *Catalog) ClientNames() []string {
	names := make([]string, 0, len(c.Clients))
	for _, cl := range c.Clients {
		names = append(names, cl.Name)
	}
	return names
}

// Fetcher returns a catalog. Source is the network implementation; tests
// substitute a fixed catalog.
type Fetcher interface {
	Fetch() (*Catalog, error)
}

// Static is a Fetcher over an in-memory catalog.
type Static Catalog

// Fetch implements Fetcher.
func (s *Static) Fetch() (*Catalog, error) {
	c := Catalog(*s)
	return &c, nil
}

// Source fetches and memoizes the catalog at URL.
type Source struct {
	logging.LogHolder

	URL    string
	Getter getter.Getter

	memo cache.Cache[*Catalog]
}

// NewSource returns a Source for url using g for transport.
func NewSource(url string, g getter.Getter) *Source {
	return &Source{
		URL:    url,
		Getter: g,
		memo:   cache.NewMapCache[*Catalog](),
	}
}

// Fetch implements Fetcher. Failures are not memoized and are never retried
// here; they surface as ErrCatalogUnavailable.
func (s *Source) Fetch() (*Catalog, error) {
	if s.memo == nil {
		s.memo = cache.NewMapCache[*Catalog]()
	}
	return cache.GetOrLoad(s.memo, s.URL, s.load)
}

func (s *Source) load() (*Catalog, error) {
	s.Logger().Debug("requesting manifest", "url", s.URL)
	buf, err := s.Getter.Get(s.URL)
	if err != nil {
		return nil, artifact.Wrap(artifact.ErrCatalogUnavailable, err)
	}
	c, err := Load(buf.Bytes())
	if err != nil {
		return nil, err
	}
	s.Logger().Debug("manifest loaded", "clients", len(c.Clients), "dependencies", len(c.Dependencies))
	return c, nil
}

// Load decodes a catalog document.
func Load(data []byte) (*Catalog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, artifact.Wrap(artifact.ErrCatalogUnavailable, errors.New("empty manifest"))
	}
	if err := Validate(data); err != nil {
		return nil, artifact.Wrap(artifact.ErrCatalogUnavailable, errors.Wrap(err, "invalid manifest"))
	}
	c := &Catalog{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, artifact.Wrap(artifact.ErrCatalogUnavailable, errors.Wrap(err, "cannot decode manifest"))
	}
	return c, nil
}
