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
Package action implements the launcher's user-facing operations on top of
the dependency caches.

Configuration carries the state shared by every operation; each operation
is a small struct created with New* and executed with Run.
*/
package action

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"

	"github.com/wolauncher/wolauncher/internal/logging"
	"github.com/wolauncher/wolauncher/pkg/artifact"
	"github.com/wolauncher/wolauncher/pkg/catalog"
	"github.com/wolauncher/wolauncher/pkg/cli"
	"github.com/wolauncher/wolauncher/pkg/config"
	"github.com/wolauncher/wolauncher/pkg/dependency"
	"github.com/wolauncher/wolauncher/pkg/getter"
	"github.com/wolauncher/wolauncher/pkg/launcherpath"
	"github.com/wolauncher/wolauncher/pkg/platform"
	"github.com/wolauncher/wolauncher/pkg/resolver"
)

// LockTimeout bounds how long an operation waits for another launcher
// process to release the launcher root.
var LockTimeout = 30 * time.Second

// Configuration is shared by all actions of one launcher invocation.
type Configuration struct {
	logging.LogHolder

	Settings *cli.EnvSettings
	Config   *config.File
	Layout   launcherpath.Layout
	Platform platform.Platform
	Catalog  *catalog.Source
	Adoptium *resolver.Adoptium
	Env      dependency.Env
}

// Init loads the configuration file and wires the caches for settings.
// Nothing is fetched from the network.
func (c *Configuration) Init(settings *cli.EnvSettings, handler slog.Handler) error {
	cfg, err := config.LoadFile(settings.ConfigFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrapf(err, "invalid configuration in %s", settings.ConfigFile)
	}

	g, err := getter.All().ForURL(settings.CatalogURL)
	if err != nil {
		return err
	}

	c.Settings = settings
	c.Config = cfg
	c.Layout = settings.Layout()
	if c.Platform == (platform.Platform{}) {
		c.Platform = platform.Current()
	}
	c.Catalog = catalog.NewSource(settings.CatalogURL, g)
	c.Adoptium = resolver.NewAdoptium(g, settings.AdoptiumURL)
	c.Adoptium.ReleaseType = cfg.JDK.Type
	c.Env = dependency.NewEnv(c.Layout, g)
	c.SetLogger(handler)
	return nil
}

// SetLogger hands handler to every component that logs.
func (c *Configuration) SetLogger(handler slog.Handler) {
	for _, l := range []logging.LoggerSetterGetter{
		&c.LogHolder, c.Catalog, c.Adoptium, c.Env.Downloader, c.Env.Archives, c.Env.Clients,
	} {
		l.SetLogger(handler)
	}
}

// SetProgress directs download progress to w.
func (c *Configuration) SetProgress(w io.Writer) {
	c.Env.Downloader.Progress = w
}

// CreateDirs creates the cache directories below the launcher root.
func (c *Configuration) CreateDirs() error {
	for _, dir := range c.Layout.Dirs() {
		if _, err := os.Stat(dir); err == nil {
			continue
		}
		c.Logger().Debug("creating directory", "path", dir)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return artifact.Wrap(artifact.ErrFilesystem, err)
		}
	}
	return nil
}

// Lock takes the launcher root's advisory lock. The returned function
// releases it.
func (c *Configuration) Lock() (func(), error) {
	if err := os.MkdirAll(c.Layout.Root, 0755); err != nil {
		return nil, artifact.Wrap(artifact.ErrFilesystem, err)
	}
	fileLock := flock.New(c.Layout.LockFile())
	lockCtx, cancel := context.WithTimeout(context.Background(), LockTimeout)
	defer cancel()
	locked, err := fileLock.TryLockContext(lockCtx, time.Second)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot lock %s", c.Layout.Root)
	}
	if !locked {
		return nil, errors.Errorf("%s is in use by another launcher", c.Layout.Root)
	}
	return func() { fileLock.Unlock() }, nil
}

// SaveConfig writes the configuration file back to disk.
func (c *Configuration) SaveConfig() error {
	return c.Config.Save(c.Settings.ConfigFile)
}
