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
Package dependency composes resolution, download and installation into one
ready check per artifact kind.

Every kind answers IsReady from local state only; MakeReady is the only call
that touches the network. The descriptor is resolved lazily on the first
MakeReady so that a dependency with a known install path never needs the
catalog or the release listing.
*/
package dependency

import (
	"github.com/wolauncher/wolauncher/pkg/artifact"
	"github.com/wolauncher/wolauncher/pkg/downloader"
	"github.com/wolauncher/wolauncher/pkg/getter"
	"github.com/wolauncher/wolauncher/pkg/installer"
	"github.com/wolauncher/wolauncher/pkg/launcherpath"
)

// Kind identifies one of the fixed artifact kinds.
type Kind int

const (
	// KindArchive is any archive installed under the runtime directory.
	KindArchive Kind = iota
	// KindNatives is the embedded browser natives bundle.
	KindNatives
	// KindJDK is the Java runtime.
	KindJDK
	// KindJFX is the OpenJFX SDK.
	KindJFX
	// KindClient is the client jar.
	KindClient
)

func (k Kind) String() string {
	switch k {
	case KindArchive:
		return "archive"
	case KindNatives:
		return "jcef"
	case KindJDK:
		return "jdk"
	case KindJFX:
		return "jfx"
	case KindClient:
		return "client"
	}
	return "unknown"
}

// Dependency is an artifact that must be on disk before the client starts.
type Dependency interface {
	Kind() Kind
	// IsReady reports whether the install path is known and exists. It
	// never touches the network.
	IsReady() bool
	// MakeReady downloads and installs the artifact. Calling it again is
	// safe and does no extraction or copy work.
	MakeReady() error
	// Path is the install path, or "" before the dependency is ready.
	Path() string
}

var (
	_ Dependency = (*Archive)(nil)
	_ Dependency = (*JDK)(nil)
	_ Dependency = (*Client)(nil)
)

// ResolveFunc produces the descriptor of a dependency on demand.
type ResolveFunc func() (artifact.Descriptor, error)

// Fixed returns a ResolveFunc for an already known descriptor.
func Fixed(d artifact.Descriptor) ResolveFunc {
	return func() (artifact.Descriptor, error) { return d, nil }
}

// Env holds the caches shared by all dependencies of one launcher root.
type Env struct {
	Downloader *downloader.Downloader
	Archives   *installer.ArchiveInstaller
	Clients    *installer.CopyInstaller
}

// NewEnv wires the caches onto the directories of layout.
func NewEnv(layout launcherpath.Layout, g getter.Getter) Env {
	return Env{
		Downloader: downloader.New(g, layout.Downloads()),
		Archives: &installer.ArchiveInstaller{
			RuntimeDir: layout.Runtime(),
			WorkDir:    layout.Work(),
		},
		Clients: &installer.CopyInstaller{ClientsDir: layout.Clients()},
	}
}
