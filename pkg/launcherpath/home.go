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

// Package launcherpath computes where the launcher keeps its configuration
// and its artifact caches.
package launcherpath

import "path/filepath"

const lp = lazypath("wolauncher")

// Cache directory names below the launcher root.
const (
	DownloadsDir = "downloads"
	WorkDir      = "work"
	RuntimeDir   = "runtime"
	ClientsDir   = "clients"
)

// ConfigPath returns the path where the launcher stores configuration.
func ConfigPath(elem ...string) string {
	return lp.configPath(elem...)
}

// DataPath returns the path where the launcher stores downloads and installed artifacts.
func DataPath(elem ...string) string {
	return lp.dataPath(elem...)
}

// ConfigFile returns the default configuration file.
func ConfigFile() string { return ConfigPath("config.yaml") }

// Layout is the set of cache directories below one launcher root.
type Layout struct {
	Root string
}

// NewLayout returns the layout for root. An empty root selects DataPath().
func NewLayout(root string) Layout {
	if root == "" {
		root = DataPath()
	}
	return Layout{Root: root}
}

// Downloads is written only by the downloader.
func (l Layout) Downloads() string { return filepath.Join(l.Root, DownloadsDir) }

// Work holds scratch extraction directories.
func (l Layout) Work() string { return filepath.Join(l.Root, WorkDir) }

// Runtime holds extracted archives keyed by their stripped file name.
func (l Layout) Runtime() string { return filepath.Join(l.Root, RuntimeDir) }

// Clients holds copied client jars.
func (l Layout) Clients() string { return filepath.Join(l.Root, ClientsDir) }

// LockFile guards the layout against concurrent launcher processes.
func (l Layout) LockFile() string { return filepath.Join(l.Root, "launcher.lock") }

// Dirs lists every cache directory in creation order.
func (l Layout) Dirs() []string {
	return []string{l.Runtime(), l.Work(), l.Clients(), l.Downloads()}
}
