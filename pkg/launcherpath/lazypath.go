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

package launcherpath

import (
	"os"
	"path/filepath"

	"github.com/wolauncher/wolauncher/pkg/launcherpath/xdg"
)

const (
	// ConfigHomeEnvVar is the environment variable used by the launcher
	// for the config directory. When no value is set a default is used.
	ConfigHomeEnvVar = "WOLAUNCHER_CONFIG_HOME"

	// DataHomeEnvVar is the environment variable used by the launcher
	// for the data directory. When no value is set a default is used.
	DataHomeEnvVar = "WOLAUNCHER_DATA_HOME"
)

// lazypath is a lazy-loaded path buffer for the XDG base directory specification.
type lazypath string

func (l lazypath) path(appEnvVar, xdgEnvVar string, defaultFn func() string, elem ...string) string {
	// 1. launcher specific environment variable
	// 2. XDG environment variable
	// 3. platform default
	base := os.Getenv(appEnvVar)
	if base != "" {
		return filepath.Join(base, filepath.Join(elem...))
	}
	base = os.Getenv(xdgEnvVar)
	if base == "" {
		base = defaultFn()
	}
	return filepath.Join(base, string(l), filepath.Join(elem...))
}

// configPath defines the base directory relative to which user specific configuration files should
// be stored.
func (l lazypath) configPath(elem ...string) string {
	return l.path(ConfigHomeEnvVar, xdg.ConfigHomeEnvVar, configHome, filepath.Join(elem...))
}

// dataPath defines the base directory relative to which user specific data files should be stored.
func (l lazypath) dataPath(elem ...string) string {
	return l.path(DataHomeEnvVar, xdg.DataHomeEnvVar, dataHome, filepath.Join(elem...))
}
