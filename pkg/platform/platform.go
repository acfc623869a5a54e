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

// Package platform maps Go's GOOS/GOARCH pair onto the identifiers used by
// each artifact vendor.
package platform

import (
	"runtime"

	"github.com/pkg/errors"

	"github.com/wolauncher/wolauncher/pkg/artifact"
)

// Platform is an operating system and machine architecture in Go notation.
type Platform struct {
	OS   string
	Arch string
}

// Current returns the platform the launcher was built for.
func Current() Platform {
	return Platform{OS: runtime.GOOS, Arch: runtime.GOARCH}
}

func (p Platform) String() string {
	return p.OS + "/" + p.Arch
}

// Bits returns "64" or "32" for the supported x86 architectures.
func (p Platform) Bits() (string, error) {
	switch p.Arch {
	case "amd64":
		return "64", nil
	case "386":
		return "32", nil
	}
	return "", p.unsupported("architecture " + p.Arch)
}

// CatalogID is the platform key used by native bundle entries in the
// catalog, e.g. "linux64" or "win32".
func (p Platform) CatalogID() (string, error) {
	var system string
	switch p.OS {
	case "linux":
		system = "linux"
	case "windows":
		system = "win"
	default:
		return "", p.unsupported("operating system " + p.OS)
	}
	bits, err := p.Bits()
	if err != nil {
		return "", err
	}
	return system + bits, nil
}

// VendorOS is the lowercase operating system name used by the runtime and
// toolkit vendors.
func (p Platform) VendorOS() (string, error) {
	switch p.OS {
	case "linux", "windows":
		return p.OS, nil
	}
	return "", p.unsupported("operating system " + p.OS)
}

// VendorArch is "x64" or "x86".
func (p Platform) VendorArch() (string, error) {
	switch p.Arch {
	case "amd64":
		return "x64", nil
	case "386":
		return "x86", nil
	}
	return "", p.unsupported("architecture " + p.Arch)
}

// ToolkitID is the "{os}-{arch}" pair in toolkit file names, e.g. "linux-x64".
func (p Platform) ToolkitID() (string, error) {
	os, err := p.VendorOS()
	if err != nil {
		return "", err
	}
	arch, err := p.VendorArch()
	if err != nil {
		return "", err
	}
	return os + "-" + arch, nil
}

func (p Platform) unsupported(what string) error {
	return artifact.Wrap(artifact.ErrUnsupportedPlatform, errors.Errorf("%s is not supported", what))
}
