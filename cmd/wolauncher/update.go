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

const updateDesc = `
Look for newer versions of every dependency and install them.

Paths recorded in the configuration file are ignored, so the Java runtime,
the JavaFX SDK and the browser natives are resolved again. Downloads whose
size and modification time match the server are not transferred again.
`

type updateOptions struct {
	client string
}

func newUpdateCmd(actionConfig *action.Configuration, handler slog.Handler, out io.Writer) *cobra.Command {
	o := &updateOptions{}
	cmd := &cobra.Command{
		Use:   "update",
		Short: "update the Java runtime, JavaFX and the browser natives",
		Long:  updateDesc,
		Args:  require.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return lockedAction(actionConfig, handler, func() error {
				return o.run(actionConfig, out)
			})
		},
	}
	cmd.Flags().StringVarP(&o.client, "client", "c", "", "also update the named client build")
	return cmd
}

func (o *updateOptions) run(actionConfig *action.Configuration, out io.Writer) error {
	ensure := action.NewEnsure(actionConfig)
	ensure.Client = o.client
	ensure.Refresh = true
	installed, err := ensure.Run()
	if err != nil {
		return err
	}

	table := uitable.New()
	table.AddRow("DEPENDENCY", "PATH")
	table.AddRow("jcef", installed.JCEF)
	jdk := installed.JDK
	if installed.JDKVerified {
		jdk += " (verified)"
	}
	table.AddRow("jdk", jdk)
	table.AddRow("jfx", installed.JFX)
	if installed.Client != "" {
		table.AddRow("client", installed.Client)
	}
	fmt.Fprintln(out, table)
	return nil
}
