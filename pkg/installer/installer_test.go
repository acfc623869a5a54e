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

package installer

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"

	"github.com/wolauncher/wolauncher/pkg/artifact"
)

type testEntry struct {
	name     string
	body     string
	linkname string
	dir      bool
}

func writeTar(t *testing.T, w io.Writer, entries []testEntry) {
	t.Helper()
	tw := tar.NewWriter(w)
	for _, e := range entries {
		hdr := &tar.Header{Name: e.name, Mode: 0644, Size: int64(len(e.body)), Typeflag: tar.TypeReg}
		switch {
		case e.dir:
			hdr.Typeflag, hdr.Mode, hdr.Size = tar.TypeDir, 0755, 0
		case e.linkname != "":
			hdr.Typeflag, hdr.Linkname, hdr.Size = tar.TypeSymlink, e.linkname, 0
		}
		require.NoError(t, tw.WriteHeader(hdr))
		if hdr.Typeflag == tar.TypeReg {
			_, err := tw.Write([]byte(e.body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
}

func makeTarGz(t *testing.T, dir, name string, entries []testEntry) string {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	writeTar(t, gw, entries)
	require.NoError(t, gw.Close())
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, buf.Bytes(), 0644))
	return p
}

func makeZip(t *testing.T, dir, name string, entries []testEntry) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		if e.dir {
			_, err := zw.Create(e.name + "/")
			require.NoError(t, err)
			continue
		}
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, buf.Bytes(), 0644))
	return p
}

func newArchiveInstaller(t *testing.T) *ArchiveInstaller {
	t.Helper()
	root := t.TempDir()
	return &ArchiveInstaller{
		RuntimeDir: filepath.Join(root, "runtime"),
		WorkDir:    filepath.Join(root, "work"),
	}
}

var jdkEntries = []testEntry{
	{name: "jdk-17.0.9+9", dir: true},
	{name: "jdk-17.0.9+9/bin", dir: true},
	{name: "jdk-17.0.9+9/bin/java", body: "#!/bin/sh\n"},
	{name: "jdk-17.0.9+9/release", body: "JAVA_VERSION=17\n"},
	{name: "jdk-17.0.9+9/legal/LICENSE", linkname: "../release"},
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		want    string
		ok      bool
	}{
		{"single directory", []Entry{{Name: "jdk", IsDir: true}}, "jdk", true},
		{"single file", []Entry{{Name: "client.jar"}}, "", false},
		{"two directories", []Entry{{Name: "a", IsDir: true}, {Name: "b", IsDir: true}}, "", false},
		{"empty", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Flatten(tt.entries)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnsureInstalledFlattensSingleDirectory(t *testing.T) {
	a := newArchiveInstaller(t)
	archive := makeTarGz(t, t.TempDir(), "jdk17.tar.gz", jdkEntries)

	var hooked string
	a.PostInstall = func(dir string) error {
		hooked = dir
		return nil
	}

	got, err := a.EnsureInstalled(archive, "jdk17.tar.gz")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(a.RuntimeDir, "jdk17"), got)
	assert.FileExists(t, filepath.Join(got, "bin", "java"))
	assert.NoDirExists(t, filepath.Join(got, "jdk-17.0.9+9"))
	assert.NoDirExists(t, filepath.Join(a.WorkDir, "jdk17"))
	assert.Equal(t, filepath.Join(a.WorkDir, "jdk17", "jdk-17.0.9+9"), hooked)

	license, err := os.ReadFile(filepath.Join(got, "legal", "LICENSE"))
	require.NoError(t, err)
	assert.Equal(t, "JAVA_VERSION=17\n", string(license))
}

func TestEnsureInstalledKeepsMultipleTopLevelEntries(t *testing.T) {
	a := newArchiveInstaller(t)
	archive := makeZip(t, t.TempDir(), "natives.zip", []testEntry{
		{name: "lib", dir: true},
		{name: "lib/libcef.so", body: "elf"},
		{name: "jcef_helper", body: "elf"},
	})

	got, err := a.EnsureInstalled(archive, "natives.zip")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(got, "lib", "libcef.so"))
	assert.FileExists(t, filepath.Join(got, "jcef_helper"))
}

func TestEnsureInstalledIsIdempotent(t *testing.T) {
	a := newArchiveInstaller(t)
	archive := makeTarGz(t, t.TempDir(), "jdk17.tar.gz", jdkEntries)

	first, err := a.EnsureInstalled(archive, "jdk17.tar.gz")
	require.NoError(t, err)

	// a second call must not touch the archive at all
	require.NoError(t, os.Remove(archive))
	second, err := a.EnsureInstalled(archive, "jdk17.tar.gz")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEnsureInstalledRemovesStaleWork(t *testing.T) {
	a := newArchiveInstaller(t)
	stale := filepath.Join(a.WorkDir, "jdk17", "leftover")
	require.NoError(t, os.MkdirAll(stale, 0755))
	archive := makeTarGz(t, t.TempDir(), "jdk17.tar.gz", jdkEntries)

	got, err := a.EnsureInstalled(archive, "jdk17.tar.gz")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(got, "bin", "java"))
	assert.NoDirExists(t, filepath.Join(got, "leftover"))
}

func TestEnsureInstalledRejectsTraversal(t *testing.T) {
	tests := []struct {
		name    string
		entries []testEntry
	}{
		{"dot dot", []testEntry{{name: "../evil", body: "x"}}},
		{"absolute", []testEntry{{name: "/etc/evil", body: "x"}}},
		{"symlink out", []testEntry{{name: "link", linkname: "../../outside"}}},
		{"absolute symlink", []testEntry{{name: "link", linkname: "/etc/passwd"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newArchiveInstaller(t)
			archive := makeTarGz(t, t.TempDir(), "bad.tar.gz", tt.entries)

			_, err := a.EnsureInstalled(archive, "bad.tar.gz")
			require.Error(t, err)
			assert.NoDirExists(t, filepath.Join(a.RuntimeDir, "bad"))
			assert.NoFileExists(t, filepath.Join(filepath.Dir(a.WorkDir), "evil"))
		})
	}
}

func TestEnsureInstalledUnsupportedFormat(t *testing.T) {
	a := newArchiveInstaller(t)
	_, err := a.EnsureInstalled("/nonexistent/setup.exe", "setup.exe")
	assert.ErrorIs(t, err, artifact.ErrUnsupportedArchiveFormat)
}

func TestEnsureInstalledPostInstallFailureLeavesNoInstall(t *testing.T) {
	a := newArchiveInstaller(t)
	archive := makeTarGz(t, t.TempDir(), "jdk17.tar.gz", jdkEntries)
	a.PostInstall = func(string) error { return assert.AnError }

	_, err := a.EnsureInstalled(archive, "jdk17.tar.gz")
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoDirExists(t, filepath.Join(a.RuntimeDir, "jdk17"))
}

func TestTarCompressionVariants(t *testing.T) {
	entries := []testEntry{{name: "sdk/lib/javafx.base.jar", body: "jar"}}
	compressors := map[string]func(io.Writer) (io.WriteCloser, error){
		"sdk.tar": func(w io.Writer) (io.WriteCloser, error) {
			return nopWriteCloser{w}, nil
		},
		"sdk.tar.zst": func(w io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(w)
		},
		"sdk.txz": func(w io.Writer) (io.WriteCloser, error) {
			return xz.NewWriter(w)
		},
		"sdk.tgz": func(w io.Writer) (io.WriteCloser, error) {
			return gzip.NewWriter(w), nil
		},
	}
	for name, compress := range compressors {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			cw, err := compress(&buf)
			require.NoError(t, err)
			writeTar(t, cw, entries)
			require.NoError(t, cw.Close())
			archive := filepath.Join(t.TempDir(), name)
			require.NoError(t, os.WriteFile(archive, buf.Bytes(), 0644))

			a := newArchiveInstaller(t)
			got, err := a.EnsureInstalled(archive, name)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(a.RuntimeDir, "sdk"), got)
			assert.FileExists(t, filepath.Join(got, "lib", "javafx.base.jar"))
		})
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func TestCopyInstaller(t *testing.T) {
	root := t.TempDir()
	c := &CopyInstaller{ClientsDir: filepath.Join(root, "clients")}
	downloaded := filepath.Join(root, "client.jar")
	require.NoError(t, os.WriteFile(downloaded, []byte("v1"), 0644))

	path, copied, err := c.EnsureInstalled(downloaded, "client.jar")
	require.NoError(t, err)
	assert.True(t, copied)
	assert.Equal(t, filepath.Join(c.ClientsDir, "client.jar"), path)

	_, copied, err = c.EnsureInstalled(downloaded, "client.jar")
	require.NoError(t, err)
	assert.False(t, copied)

	require.NoError(t, os.WriteFile(downloaded, []byte("v2"), 0644))
	_, copied, err = c.EnsureInstalled(downloaded, "client.jar")
	require.NoError(t, err)
	assert.True(t, copied)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))
}
