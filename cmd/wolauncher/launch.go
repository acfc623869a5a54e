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
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wolauncher/wolauncher/cmd/wolauncher/require"
	"github.com/wolauncher/wolauncher/pkg/action"
	"github.com/wolauncher/wolauncher/pkg/config"
)

var launchDesc = `
Make every dependency of the selected client ready and start it.

Dependencies installed by an earlier run are used as they are; run
'wolauncher update' to look for newer versions. The client jar is always
compared against the published build.

Launch profiles select the JVM options. The built-in profiles are:

    ` + strings.Join(config.NewFile().ProfileNames(), ", ") + `

Profiles may be added or changed in the configuration file.
`

type launchOptions struct {
	client   string
	profile  string
	steam    bool
	noLaunch bool
}

func newLaunchCmd(actionConfig *action.Configuration, handler slog.Handler, out io.Writer) *cobra.Command {
	o := &launchOptions{}
	cmd := &cobra.Command{
		Use:   "launch",
		Short: "start the client",
		Long:  launchDesc,
		Args:  require.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return o.run(actionConfig, handler, out)
		},
	}
	addLaunchFlags(cmd, o)
	return cmd
}

func addLaunchFlags(cmd *cobra.Command, o *launchOptions) {
	f := cmd.Flags()
	f.StringVarP(&o.client, "client", "c", "", "name of the client build to start (default from the configuration file)")
	f.StringVarP(&o.profile, "options", "o", config.DefaultProfile, "launch profile holding the JVM options")
	f.BoolVarP(&o.steam, "steam", "s", false, "start the client in Steam mode")
	f.BoolVarP(&o.noLaunch, "no-launch", "n", false, "make the dependencies ready without starting the client")
	cmd.RegisterFlagCompletionFunc("options", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, name := range config.NewFile().ProfileNames() {
			if strings.HasPrefix(name, toComplete) {
				names = append(names, name)
			}
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

func (o *launchOptions) run(actionConfig *action.Configuration, handler slog.Handler, out io.Writer) error {
	if err := initAction(actionConfig, handler); err != nil {
		return err
	}
	client := action.NewLaunch(actionConfig)
	client.Client = o.client
	if client.Client == "" {
		client.Client = actionConfig.Config.Client
	}
	client.Profile = o.profile
	client.Steam = o.steam || actionConfig.Config.Steam
	client.NoLaunch = o.noLaunch
	client.Stdout = out
	client.Stderr = os.Stderr

	installed, err := client.Run()
	if err != nil {
		return err
	}
	if o.noLaunch {
		fmt.Fprintf(out, "Client %q is ready to launch from %s\n", client.Client, installed.Client)
	}
	return nil
}
