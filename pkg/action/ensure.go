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

package action

import (
	"github.com/wolauncher/wolauncher/pkg/artifact"
	"github.com/wolauncher/wolauncher/pkg/dependency"
	"github.com/wolauncher/wolauncher/pkg/resolver"
)

// Installed holds the install paths of a successful Ensure.
type Installed struct {
	JCEF   string
	JDK    string
	JFX    string
	Client string
	// JDKVerified is true when the runtime was checked against its
	// published checksum during this run.
	JDKVerified bool
}

// Ensure makes every dependency of the client ready.
type Ensure struct {
	cfg *Configuration

	// Client is the catalog name of the client build. Empty skips the client.
	Client string
	// Refresh ignores install paths recorded by earlier runs.
	Refresh bool
}

// NewEnsure creates a new Ensure object with the given configuration.
func NewEnsure(cfg *Configuration) *Ensure {
	return &Ensure{cfg: cfg}
}

// Run resolves, downloads and installs what is missing, then records the
// install paths in the configuration file.
func (e *Ensure) Run() (*Installed, error) {
	c := e.cfg
	plat := c.Platform
	persisted := func(path string) string {
		if e.Refresh {
			return ""
		}
		return path
	}

	var client *dependency.Client
	if e.Client != "" {
		// an unknown client is fatal, so find out before the large downloads
		desc, err := resolver.Client(c.Catalog, e.Client)
		if err != nil {
			return nil, err
		}
		client = dependency.NewClient(dependency.Fixed(desc), c.Env, "")
	}

	jcef := dependency.NewNatives(func() (artifact.Descriptor, error) {
		return resolver.Natives(c.Catalog, plat)
	}, c.Env, persisted(c.Config.JCEF.Path))
	jdk := dependency.NewJDK(func() (artifact.Descriptor, error) {
		return c.Adoptium.Latest(c.Config.JDK.Version, plat)
	}, c.Env, persisted(c.Config.JDK.Path))
	jfx := dependency.NewJFX(func() (artifact.Descriptor, error) {
		return resolver.Toolkit(c.Settings.ToolkitURL, c.Config.JFX.Version, plat)
	}, c.Env, persisted(c.Config.JFX.Path))

	deps := []dependency.Dependency{jcef, jdk, jfx}
	if client != nil {
		deps = append(deps, client)
	}
	for _, d := range deps {
		if d.IsReady() {
			c.Logger().Debug("dependency is ready", "kind", d.Kind(), "path", d.Path())
			continue
		}
		if err := d.MakeReady(); err != nil {
			return nil, err
		}
	}

	c.Config.JCEF.Path = jcef.Path()
	c.Config.JDK.Path = jdk.Path()
	c.Config.JFX.Path = jfx.Path()
	if err := c.SaveConfig(); err != nil {
		return nil, artifact.Wrap(artifact.ErrFilesystem, err)
	}

	installed := &Installed{
		JCEF:        jcef.Path(),
		JDK:         jdk.Path(),
		JFX:         jfx.Path(),
		JDKVerified: jdk.Verified(),
	}
	if client != nil {
		installed.Client = client.Path()
	}
	return installed, nil
}
