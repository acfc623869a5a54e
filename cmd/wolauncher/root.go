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
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wolauncher/wolauncher/pkg/action"
	"github.com/wolauncher/wolauncher/pkg/downloader"
)

var globalUsage = `Launcher for the Wurm Online Java client.

Downloads the Java runtime, the JavaFX SDK, the embedded browser natives
and the selected client build, keeps them up to date and starts the game.
Running without a command is the same as 'wolauncher launch'.

Common actions:

- wolauncher launch:    make every dependency ready and start the client
- wolauncher update:    refresh every dependency without starting the client
- wolauncher list:      list the available clients and launch profiles

Environment variables:

| Name                      | Description                                                      |
|---------------------------|------------------------------------------------------------------|
| $WOLAUNCHER_ROOT          | set the directory holding downloads and installed dependencies.  |
| $WOLAUNCHER_CONFIG        | set the path to the configuration file.                          |
| $WOLAUNCHER_CATALOG_URL   | set the URL of the client manifest.                              |
| $WOLAUNCHER_ADOPTIUM_URL  | set the Java runtime release listing endpoint.                   |
| $WOLAUNCHER_TOOLKIT_URL   | set the base URL of the JavaFX SDK archives.                     |
| $WOLAUNCHER_DEBUG         | indicate whether or not verbose output is enabled.               |
| $WOLAUNCHER_QUIET         | only print errors.                                               |
| $WOLAUNCHER_CONFIG_HOME   | set an alternative location for the configuration file.          |
| $WOLAUNCHER_DATA_HOME     | set an alternative location for downloads and installs.          |
`

func newRootCmd(out io.Writer, args []string) (*cobra.Command, error) {
	return newRootCmdWithConfig(new(action.Configuration), out, args, logger.Handler())
}

func newRootCmdWithConfig(actionConfig *action.Configuration, out io.Writer, args []string, handler slog.Handler) (*cobra.Command, error) {
	o := &launchOptions{}
	cmd := &cobra.Command{
		Use:          "wolauncher",
		Short:        "Launcher for the Wurm Online Java client.",
		Long:         globalUsage,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return o.run(actionConfig, handler, out)
		},
	}
	flags := cmd.PersistentFlags()
	settings.AddFlags(flags)
	addLaunchFlags(cmd, o)

	// We can safely ignore any errors that flags.Parse encounters since
	// those errors will be caught later during the call to cmd.Execution.
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.Parse(args)

	cmd.AddCommand(
		newLaunchCmd(actionConfig, handler, out),
		newUpdateCmd(actionConfig, handler, out),
		newListCmd(actionConfig, handler, out),
		newEnvCmd(out),
		newVersionCmd(out),
	)
	return cmd, nil
}

// initAction loads the configuration for commands that touch the caches.
func initAction(actionConfig *action.Configuration, handler slog.Handler) error {
	if err := actionConfig.Init(settings, handler); err != nil {
		return err
	}
	// debug in the configuration file turns verbose output on; --quiet still wins
	if actionConfig.Config.Debug {
		settings.Debug = true
	}
	actionConfig.SetProgress(downloader.TerminalProgress(os.Stderr))
	return nil
}

// lockedAction runs fn while holding the launcher root's lock.
func lockedAction(actionConfig *action.Configuration, handler slog.Handler, fn func() error) error {
	if err := initAction(actionConfig, handler); err != nil {
		return err
	}
	unlock, err := actionConfig.Lock()
	if err != nil {
		return err
	}
	defer unlock()
	if err := actionConfig.CreateDirs(); err != nil {
		return err
	}
	return fn()
}
