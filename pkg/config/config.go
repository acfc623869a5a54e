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
Package config reads and writes the launcher configuration file.

The file records the launch profiles, the selected client, the Java runtime
and toolkit versions, and the install paths of the last successful run so
that later runs can start without any network access.
*/
package config // import "github.com/wolauncher/wolauncher/pkg/config"

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/wolauncher/wolauncher/internal/fileutil"
)

// APIVersionV1 is the current configuration file version.
const APIVersionV1 = "v1"

// Default configuration values.
const (
	DefaultClient      = "Live"
	DefaultProfile     = "Default"
	DefaultJDKVersion  = 17
	DefaultJDKType     = "ga"
	DefaultJFXVersion  = "17.0.13"
	defaultLowMemory   = "-Xmx1G -Xms128M"
	defaultLowLatency  = "-XX:+UseShenandoahGC -Xmx4G -Xms256M"
	defaultGCOptions   = "-XX:+UseG1GC -XX:MaxGCPauseMillis=8 -XX:MinHeapFreeRatio=11 -XX:MaxHeapFreeRatio=18"
	lowMemoryProfile   = "Low Memory"
	lowLatencyProfile  = "Low Latency"
	defaultPermissions = 0644
)

// Profile is a named set of JVM options.
type Profile struct {
	Name    string `json:"name"`
	Options string `json:"options"`
}

// JDK configures the Java runtime dependency.
type JDK struct {
	// Version is the Java major version.
	Version int `json:"version"`
	// Type is the release type, "ga" or "ea".
	Type string `json:"type"`
	Path string `json:"path,omitempty"`
}

// JFX configures the OpenJFX SDK dependency.
type JFX struct {
	Version string `json:"version"`
	Path    string `json:"path,omitempty"`
}

// JCEF records the natives bundle install path.
type JCEF struct {
	Path string `json:"path,omitempty"`
}

// File represents the config.yaml file
type File struct {
	APIVersion string     `json:"apiVersion"`
	Generated  time.Time  `json:"generated"`
	// Debug turns on verbose output, as --verbose does.
	Debug      bool       `json:"debug,omitempty"`
	Steam      bool       `json:"steam,omitempty"`
	Client     string     `json:"client"`
	Profiles   []*Profile `json:"profiles"`
	JDK        JDK        `json:"jdk"`
	JFX        JFX        `json:"jfx"`
	JCEF       JCEF       `json:"jcef"`
}

// NewFile generates a configuration with the default profiles and versions.
func NewFile() *File {
	return &File{
		APIVersion: APIVersionV1,
		Generated:  time.Now(),
		Client:     DefaultClient,
		Profiles: []*Profile{
			{Name: DefaultProfile, Options: defaultGCOptions},
			{Name: lowMemoryProfile, Options: defaultLowMemory},
			{Name: lowLatencyProfile, Options: defaultLowLatency},
		},
		JDK: JDK{Version: DefaultJDKVersion, Type: DefaultJDKType},
		JFX: JFX{Version: DefaultJFXVersion},
	}
}

// LoadFile reads the configuration at path. A missing file yields the
// defaults; values present in the file override them.
func LoadFile(path string) (*File, error) {
	f := NewFile()
	defaults := f.Profiles
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, errors.Wrapf(err, "couldn't load config file (%s)", path)
	}
	f.Profiles = nil
	if err := yaml.Unmarshal(b, f); err != nil {
		return nil, errors.Wrapf(err, "cannot parse %s", path)
	}
	if len(f.Profiles) == 0 {
		f.Profiles = defaults
	}
	if f.APIVersion == "" {
		f.APIVersion = APIVersionV1
	}
	return f, nil
}

// Profile returns the launch profile with the given name.
func (f *File) Profile(name string) (*Profile, error) {
	for _, p := range f.Profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, errors.Errorf("unknown launch profile %q, possible values: %s", name, strings.Join(f.ProfileNames(), ", "))
}

// ProfileNames lists the profiles in file order.
func (f *File) ProfileNames() []string {
	names := make([]string, 0, len(f.Profiles))
	for _, p := range f.Profiles {
		names = append(names, p.Name)
	}
	return names
}

// Validate reports every problem in the file at once.
func (f *File) Validate() error {
	var result *multierror.Error
	if f.Client == "" {
		result = multierror.Append(result, errors.New("client name must not be empty"))
	}
	if f.JDK.Version <= 0 {
		result = multierror.Append(result, errors.Errorf("jdk version %d is not a Java major version", f.JDK.Version))
	}
	if f.JDK.Type != "ga" && f.JDK.Type != "ea" {
		result = multierror.Append(result, errors.Errorf("jdk type %q must be ga or ea", f.JDK.Type))
	}
	if _, err := semver.StrictNewVersion(f.JFX.Version); err != nil {
		result = multierror.Append(result, errors.Wrapf(err, "jfx version %q", f.JFX.Version))
	}
	seen := map[string]bool{}
	for i, p := range f.Profiles {
		switch {
		case p == nil || p.Name == "":
			result = multierror.Append(result, errors.Errorf("profile %d has no name", i))
		case seen[p.Name]:
			result = multierror.Append(result, errors.Errorf("profile %q is defined more than once", p.Name))
		default:
			seen[p.Name] = true
		}
	}
	return result.ErrorOrNil()
}

// WriteFile atomically writes the configuration to path, creating its
// directory when needed.
func (f *File) WriteFile(path string, perm os.FileMode) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "cannot create %s", filepath.Dir(path))
	}
	return fileutil.AtomicWriteFile(path, bytes.NewReader(data), perm)
}

// Save writes the configuration with the default permissions.
func (f *File) Save(path string) error {
	f.Generated = time.Now()
	return f.WriteFile(path, defaultPermissions)
}
