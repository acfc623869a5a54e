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

package main

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	shellwords "github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/wolauncher/wolauncher/pkg/action"
	"github.com/wolauncher/wolauncher/pkg/cli"
	"github.com/wolauncher/wolauncher/pkg/platform"
)

func executeActionCommand(cmd string) (*cobra.Command, string, error) {
	args, err := shellwords.Parse(cmd)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	actionConfig := &action.Configuration{
		Platform: platform.Platform{OS: "linux", Arch: "amd64"},
	}
	root, err := newRootCmdWithConfig(actionConfig, buf, args, slog.NewTextHandler(io.Discard, nil))
	if err != nil {
		return nil, "", err
	}

	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	c, err := root.ExecuteC()
	return c, buf.String(), err
}

func resetEnv() func() {
	origEnv := os.Environ()
	return func() {
		os.Clearenv()
		for _, pair := range origEnv {
			kv := strings.SplitN(pair, "=", 2)
			os.Setenv(kv[0], kv[1])
		}
		settings = cli.New()
	}
}

// withUpstream serves a manifest, a release listing and every artifact they
// reference, and points the settings at it.
func withUpstream(t *testing.T) string {
	t.Helper()
	files := map[string][]byte{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Last-Modified", "Fri, 01 Mar 2024 12:00:00 GMT")
		w.Write(body)
	}))
	t.Cleanup(srv.Close)

	jdk := archive(t, "jdk-17.0.9+9/bin/java")
	files["/temurin/OpenJDK17U-jdk_x64_linux_hotspot_17.0.9_9.tar.gz"] = jdk
	files["/jcef/linux64.tar.gz"] = archive(t, "jcef/libcef.so")
	files["/openjfx/17.0.13/openjfx-17.0.13_linux-x64_bin-sdk.zip"] = zipArchive(t, "javafx-sdk-17.0.13/lib/javafx.base.jar")
	files["/client/live/client.jar"] = []byte("live")
	files["/manifest.php"] = []byte(fmt.Sprintf(`{
  "clients": [
    {"name": "Live", "url": "%[1]s/client/live/client.jar"},
    {"name": "Beta", "url": "%[1]s/client/beta/client.jar"}
  ],
  "dependencies": [
    {"name": "jcef-natives", "platform": "linux64", "url": "%[1]s/jcef/linux64.tar.gz"}
  ]
}`, srv.URL))
	sum := sha256.Sum256(jdk)
	files["/adoptium/17/ga"] = []byte(fmt.Sprintf(`[{"release_name": "jdk-17.0.9+9", "binaries": [{"package": {
  "link": "%s/temurin/OpenJDK17U-jdk_x64_linux_hotspot_17.0.9_9.tar.gz",
  "name": "OpenJDK17U-jdk_x64_linux_hotspot_17.0.9_9.tar.gz",
  "checksum": %q
}}]}]`, srv.URL, hex.EncodeToString(sum[:])))

	root := t.TempDir()
	t.Setenv("WOLAUNCHER_ROOT", filepath.Join(root, "data"))
	t.Setenv("WOLAUNCHER_CONFIG", filepath.Join(root, "config.yaml"))
	t.Setenv("WOLAUNCHER_CATALOG_URL", srv.URL+"/manifest.php")
	t.Setenv("WOLAUNCHER_ADOPTIUM_URL", srv.URL+"/adoptium")
	t.Setenv("WOLAUNCHER_TOOLKIT_URL", srv.URL+"/openjfx")
	settings = cli.New()
	return root
}

func archive(t *testing.T, name string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Mode: 0755, Size: 2, Typeflag: tar.TypeReg}))
	_, err := tw.Write([]byte("ok"))
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func zipArchive(t *testing.T, name string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	require.NoError(t, err)
	_, err = w.Write([]byte("ok"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
