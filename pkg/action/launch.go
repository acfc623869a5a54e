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
	"io"

	"github.com/pkg/errors"

	"github.com/wolauncher/wolauncher/pkg/launch"
)

// Launch ensures the dependencies of a client and starts it.
type Launch struct {
	cfg *Configuration

	Client  string
	Profile string
	Steam   bool
	// NoLaunch stops after the dependencies are ready.
	NoLaunch bool
	Stdout   io.Writer
	Stderr   io.Writer
}

// NewLaunch creates a new Launch object with the given configuration.
func NewLaunch(cfg *Configuration) *Launch {
	return &Launch{cfg: cfg}
}

// Run executes the launch. The launcher root is locked while dependencies
// are made ready and released before the client starts. The returned
// Installed is valid even when the client itself exits with an error.
func (l *Launch) Run() (*Installed, error) {
	if l.Client == "" {
		return nil, errors.New("no client selected")
	}
	profile, err := l.cfg.Config.Profile(l.Profile)
	if err != nil {
		return nil, err
	}

	installed, err := l.ensure()
	if err != nil {
		return nil, err
	}
	if l.NoLaunch {
		return installed, nil
	}

	launcher := &launch.Launcher{Stdout: l.Stdout, Stderr: l.Stderr}
	launcher.SetLogger(l.cfg.Logger().Handler())
	return installed, launcher.Run(launch.Spec{
		JDK:     installed.JDK,
		JFX:     installed.JFX,
		JCEF:    installed.JCEF,
		Client:  installed.Client,
		Options: profile.Options,
		Steam:   l.Steam,
	})
}

func (l *Launch) ensure() (*Installed, error) {
	unlock, err := l.cfg.Lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	if err := l.cfg.CreateDirs(); err != nil {
		return nil, err
	}
	ensure := NewEnsure(l.cfg)
	ensure.Client = l.Client
	return ensure.Run()
}
