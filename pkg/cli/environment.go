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
Package cli describes the operating environment for the launcher CLI.

Settings come from WOLAUNCHER_* environment variables first and may be
overridden by the matching global flags.
*/
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/wolauncher/wolauncher/pkg/catalog"
	"github.com/wolauncher/wolauncher/pkg/launcherpath"
	"github.com/wolauncher/wolauncher/pkg/resolver"
)

// EnvSettings describes all of the environment settings.
type EnvSettings struct {
	// Root is the launcher data root holding the four cache directories.
	Root string
	// ConfigFile is the path to the launcher configuration file.
	ConfigFile string
	// CatalogURL is the manifest listing clients and native bundles.
	CatalogURL string
	// AdoptiumURL is the Java runtime release listing endpoint.
	AdoptiumURL string
	// ToolkitURL is the base URL of the OpenJFX SDK archives.
	ToolkitURL string
	// Debug indicates whether or not the launcher is running in Debug mode.
	Debug bool
	// Quiet suppresses everything below errors.
	Quiet bool
}

func New() *EnvSettings {
	env := &EnvSettings{
		Root:        envOr("WOLAUNCHER_ROOT", launcherpath.DataPath()),
		ConfigFile:  envOr("WOLAUNCHER_CONFIG", launcherpath.ConfigFile()),
		CatalogURL:  envOr("WOLAUNCHER_CATALOG_URL", catalog.DefaultURL),
		AdoptiumURL: envOr("WOLAUNCHER_ADOPTIUM_URL", resolver.DefaultAdoptiumEndpoint),
		ToolkitURL:  envOr("WOLAUNCHER_TOOLKIT_URL", resolver.DefaultToolkitBaseURL),
	}
	env.Debug = envBoolOr("WOLAUNCHER_DEBUG", false)
	env.Quiet = envBoolOr("WOLAUNCHER_QUIET", false)
	return env
}

// AddFlags binds flags to the given flagset.
func (s *EnvSettings) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&s.Root, "root", s.Root, "launcher data directory holding downloads and installed runtimes")
	fs.StringVar(&s.ConfigFile, "config", s.ConfigFile, "path to the launcher configuration file")
	fs.StringVar(&s.CatalogURL, "catalog-url", s.CatalogURL, "URL of the client manifest")
	fs.BoolVarP(&s.Debug, "verbose", "v", s.Debug, "enable verbose output")
	fs.BoolVarP(&s.Quiet, "quiet", "q", s.Quiet, "only print errors")
}

func envOr(name, def string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return def
}

func envBoolOr(name string, def bool) bool {
	if name == "" {
		return def
	}
	envVal := envOr(name, strconv.FormatBool(def))
	ret, err := strconv.ParseBool(envVal)
	if err != nil {
		return def
	}
	return ret
}

// Layout returns the cache directories below Root.
func (s *EnvSettings) Layout() launcherpath.Layout {
	return launcherpath.NewLayout(s.Root)
}

// EnvVars lists the effective settings under their environment names.
func (s *EnvSettings) EnvVars() map[string]string {
	return map[string]string{
		"WOLAUNCHER_ADOPTIUM_URL": s.AdoptiumURL,
		"WOLAUNCHER_CATALOG_URL":  s.CatalogURL,
		"WOLAUNCHER_CONFIG":       s.ConfigFile,
		"WOLAUNCHER_CONFIG_HOME":  launcherpath.ConfigPath(""),
		"WOLAUNCHER_DATA_HOME":    launcherpath.DataPath(""),
		"WOLAUNCHER_DEBUG":        fmt.Sprint(s.Debug),
		"WOLAUNCHER_QUIET":        fmt.Sprint(s.Quiet),
		"WOLAUNCHER_ROOT":         s.Root,
		"WOLAUNCHER_TOOLKIT_URL":  s.ToolkitURL,
	}
}
