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

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/wolauncher/wolauncher/cmd/wolauncher/require"
	"github.com/wolauncher/wolauncher/pkg/action"
)

const listDesc = `
List the client builds published in the manifest and the launch profiles
from the configuration file.

An optional glob argument filters the clients by name:

    $ wolauncher list 'Live*'
`

func newListCmd(actionConfig *action.Configuration, handler slog.Handler, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "list [FILTER]",
		Short: "list available clients and launch profiles",
		Long:  listDesc,
		Args:  require.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := initAction(actionConfig, handler); err != nil {
				return err
			}
			client := action.NewList(actionConfig)
			if len(args) > 0 {
				client.Filter = args[0]
			}
			res, err := client.Run()
			if err != nil {
				return err
			}

			table := uitable.New()
			if settings.Debug {
				table.AddRow("CLIENT", "URL")
			} else {
				table.AddRow("CLIENT")
			}
			for _, c := range res.Clients {
				if settings.Debug {
					table.AddRow(c.Name, c.URL)
				} else {
					table.AddRow(c.Name)
				}
			}
			fmt.Fprintln(out, table)
			fmt.Fprintln(out)

			profiles := uitable.New()
			profiles.MaxColWidth = 80
			profiles.AddRow("PROFILE", "OPTIONS")
			for _, p := range res.Profiles {
				profiles.AddRow(p.Name, p.Options)
			}
			fmt.Fprintln(out, profiles)
			return nil
		},
	}
}
