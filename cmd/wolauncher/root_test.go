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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolauncher/wolauncher/pkg/config"
)

func TestEnvCmd(t *testing.T) {
	defer resetEnv()()
	root := withUpstream(t)

	_, out, err := executeActionCommand("env")
	require.NoError(t, err)
	assert.Contains(t, out, `WOLAUNCHER_ROOT="`+filepath.Join(root, "data")+`"`)

	_, out, err = executeActionCommand("env WOLAUNCHER_CONFIG")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "config.yaml")+"\n", out)
}

func TestVersionCmd(t *testing.T) {
	_, out, err := executeActionCommand("version --short")
	require.NoError(t, err)
	assert.Equal(t, "v0.2\n", out)

	_, out, err = executeActionCommand("version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "version.BuildInfo{"), out)
}

func TestListCmd(t *testing.T) {
	defer resetEnv()()
	withUpstream(t)

	_, out, err := executeActionCommand("list")
	require.NoError(t, err)
	assert.Contains(t, out, "Live")
	assert.Contains(t, out, "Beta")
	assert.Contains(t, out, "Low Latency")
	assert.NotContains(t, out, "client.jar")

	_, out, err = executeActionCommand("list --verbose 'B*'")
	require.NoError(t, err)
	assert.Contains(t, out, "/client/beta/client.jar")
	assert.NotContains(t, out, "Live")

	_, _, err = executeActionCommand("list one two")
	assert.Error(t, err)
}

func TestLaunchCmdNoLaunch(t *testing.T) {
	defer resetEnv()()
	root := withUpstream(t)

	_, out, err := executeActionCommand("launch --no-launch --client Live")
	require.NoError(t, err)
	assert.Contains(t, out, `Client "Live" is ready to launch`)

	clientJar := filepath.Join(root, "data", "clients", "client.jar")
	data, err := os.ReadFile(clientJar)
	require.NoError(t, err)
	assert.Equal(t, "live", string(data))

	saved, err := config.LoadFile(filepath.Join(root, "config.yaml"))
	require.NoError(t, err)
	assert.DirExists(t, saved.JDK.Path)
	assert.DirExists(t, saved.JFX.Path)
	assert.DirExists(t, saved.JCEF.Path)
}

func TestRootCmdDefaultsToLaunch(t *testing.T) {
	defer resetEnv()()
	withUpstream(t)

	_, out, err := executeActionCommand("-n")
	require.NoError(t, err)
	assert.Contains(t, out, `Client "Live" is ready to launch`)
}

func TestLaunchCmdUnknownProfile(t *testing.T) {
	defer resetEnv()()
	withUpstream(t)

	_, _, err := executeActionCommand("launch -n -o Turbo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown launch profile "Turbo"`)
}

func TestLaunchCmdUnknownClient(t *testing.T) {
	defer resetEnv()()
	withUpstream(t)

	_, _, err := executeActionCommand("launch -n --client Nightly")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Nightly")
}

func TestUpdateCmd(t *testing.T) {
	defer resetEnv()()
	withUpstream(t)

	_, out, err := executeActionCommand("update")
	require.NoError(t, err)
	assert.Contains(t, out, "(verified)")
	assert.Contains(t, out, "openjfx-17.0.13_linux-x64_bin-sdk")
	assert.NotContains(t, out, "client")
}

func TestConfigDebugEnablesVerboseOutput(t *testing.T) {
	defer resetEnv()()
	root := withUpstream(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "config.yaml"), []byte("debug: true\n"), 0644))

	_, out, err := executeActionCommand("list")
	require.NoError(t, err)
	assert.Contains(t, out, "/client/beta/client.jar")
}

func TestLaunchHelpListsBuiltinProfiles(t *testing.T) {
	defer resetEnv()()
	withUpstream(t)

	_, out, err := executeActionCommand("launch --help")
	require.NoError(t, err)
	for _, name := range config.NewFile().ProfileNames() {
		assert.Contains(t, out, name)

		_, _, err := executeActionCommand(`launch -n -o "` + name + `"`)
		assert.NoError(t, err, "profile %q", name)
	}
}
