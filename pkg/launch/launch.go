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
Package launch assembles and starts the client's Java process from the
install paths of its dependencies.
*/
package launch

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	shellwords "github.com/mattn/go-shellwords"
	"github.com/pkg/errors"

	"github.com/wolauncher/wolauncher/internal/logging"
)

const (
	// MainClass is the client's entry point.
	MainClass = "com.wurmonline.client.launcherfx.WurmLaunchWrapper"
	// SteamAppID identifies the client to a running Steam instance.
	SteamAppID = "1179680"
)

var addExports = []string{
	"--add-exports=javafx.web/com.sun.javafx.webkit=ALL-UNNAMED",
	"--add-exports=javafx.web/com.sun.webkit=ALL-UNNAMED",
	"--add-exports=javafx.web/com.sun.webkit.graphics=ALL-UNNAMED",
}

// Spec holds everything needed to start the client.
type Spec struct {
	// JDK, JFX, JCEF and Client are install paths.
	JDK    string
	JFX    string
	JCEF   string
	Client string
	// Options are JVM options in shell syntax, e.g. "-Xmx1G -Xms128M".
	Options string
	Steam   bool
}

// Java is the path of the java executable inside the JDK.
func (s Spec) Java() string {
	name := "java"
	if runtime.GOOS == "windows" {
		name = "java.exe"
	}
	return filepath.Join(s.JDK, "bin", name)
}

// Args returns the java arguments, excluding the executable itself.
func (s Spec) Args() ([]string, error) {
	opts, err := shellwords.Parse(s.Options)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse JVM options %q", s.Options)
	}
	args := append([]string{}, opts...)
	args = append(args,
		"--module-path", filepath.Join(s.JFX, "lib"),
		"--add-modules", "ALL-MODULE-PATH",
	)
	args = append(args, addExports...)
	args = append(args, "-cp", s.Client, MainClass)
	if s.Steam {
		args = append(args, "-steam")
	}
	return append(args, "hash=firsthash"), nil
}

// Env returns base extended with the runtime's environment. JCEF is put in
// front of any existing library search path.
func (s Spec) Env(base []string) []string {
	env := make([]string, 0, len(base)+3)
	var libraryPath string
	for _, kv := range base {
		switch {
		case strings.HasPrefix(kv, "JAVA_HOME="), strings.HasPrefix(kv, "SteamAppId="):
			continue
		case strings.HasPrefix(kv, "LD_LIBRARY_PATH="):
			libraryPath = strings.TrimPrefix(kv, "LD_LIBRARY_PATH=")
			continue
		}
		env = append(env, kv)
	}
	if libraryPath != "" {
		libraryPath = s.JCEF + string(os.PathListSeparator) + libraryPath
	} else {
		libraryPath = s.JCEF
	}
	env = append(env, "JAVA_HOME="+s.JDK, "LD_LIBRARY_PATH="+libraryPath)
	if s.Steam {
		env = append(env, "SteamAppId="+SteamAppID)
	}
	return env
}

// Command builds the client process on top of the current environment.
func (s Spec) Command() (*exec.Cmd, error) {
	args, err := s.Args()
	if err != nil {
		return nil, err
	}
	cmd := exec.Command(s.Java(), args...)
	cmd.Env = s.Env(os.Environ())
	return cmd, nil
}

// Launcher starts the client and waits for it to exit.
type Launcher struct {
	logging.LogHolder

	Stdout io.Writer
	Stderr io.Writer
}

// Run starts the client described by s.
func (l *Launcher) Run(s Spec) error {
	cmd, err := s.Command()
	if err != nil {
		return err
	}
	cmd.Stdout, cmd.Stderr = l.Stdout, l.Stderr
	l.Logger().Info("Starting Wurm...")
	l.Logger().Debug("client command", "path", cmd.Path, "args", cmd.Args[1:])
	return errors.Wrap(cmd.Run(), "client exited with an error")
}
