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

package cli

import (
	"os"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/wolauncher/wolauncher/pkg/catalog"
)

func TestEnvSettings(t *testing.T) {
	tests := []struct {
		name string

		// input
		args    string
		envvars map[string]string

		// expected values
		root, catalogURL string
		debug, quiet     bool
	}{
		{
			name:       "defaults",
			root:       "/data/wolauncher",
			catalogURL: catalog.DefaultURL,
		},
		{
			name:       "with flags set",
			args:       "--verbose --root=/srv/wo --catalog-url=http://mirror/manifest.php",
			root:       "/srv/wo",
			catalogURL: "http://mirror/manifest.php",
			debug:      true,
		},
		{
			name:       "with envvars set",
			envvars:    map[string]string{"WOLAUNCHER_DEBUG": "1", "WOLAUNCHER_QUIET": "true", "WOLAUNCHER_ROOT": "/env/root"},
			root:       "/env/root",
			catalogURL: catalog.DefaultURL,
			debug:      true,
			quiet:      true,
		},
		{
			name:       "with flags and envvars set",
			args:       "--root=/flag/root -q",
			envvars:    map[string]string{"WOLAUNCHER_ROOT": "/env/root", "WOLAUNCHER_CATALOG_URL": "http://env/manifest"},
			root:       "/flag/root",
			catalogURL: "http://env/manifest",
			quiet:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer resetEnv()()
			t.Setenv("WOLAUNCHER_DATA_HOME", "/data/wolauncher")

			for k, v := range tt.envvars {
				t.Setenv(k, v)
			}

			flags := pflag.NewFlagSet("testing", pflag.ContinueOnError)

			settings := New()
			settings.AddFlags(flags)
			if tt.args != "" {
				if err := flags.Parse(strings.Split(tt.args, " ")); err != nil {
					t.Fatal(err)
				}
			}

			if settings.Debug != tt.debug {
				t.Errorf("expected debug %t, got %t", tt.debug, settings.Debug)
			}
			if settings.Quiet != tt.quiet {
				t.Errorf("expected quiet %t, got %t", tt.quiet, settings.Quiet)
			}
			if settings.Root != tt.root {
				t.Errorf("expected root %q, got %q", tt.root, settings.Root)
			}
			if settings.CatalogURL != tt.catalogURL {
				t.Errorf("expected catalog URL %q, got %q", tt.catalogURL, settings.CatalogURL)
			}
			if got := settings.Layout().Root; got != tt.root {
				t.Errorf("expected layout root %q, got %q", tt.root, got)
			}
		})
	}
}

func TestEnvOrBool(t *testing.T) {
	const envName = "TEST_ENV_OR_BOOL"
	tests := []struct {
		name     string
		env      string
		val      string
		def      bool
		expected bool
	}{
		{
			name:     "unset with default true",
			def:      true,
			expected: true,
		},
		{
			name:     "blank env with default true",
			env:      envName,
			def:      true,
			expected: true,
		},
		{
			name:     "env true with default false",
			env:      envName,
			val:      "true",
			expected: true,
		},
		{
			name:     "env garbage keeps default",
			env:      envName,
			val:      "maybe",
			def:      true,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env != "" {
				t.Setenv(tt.env, tt.val)
			}
			actual := envBoolOr(tt.env, tt.def)
			if actual != tt.expected {
				t.Errorf("expected result %t, got %t", tt.expected, actual)
			}
		})
	}
}

func TestEnvVars(t *testing.T) {
	defer resetEnv()()
	settings := New()
	settings.Root = "/x"

	vars := settings.EnvVars()
	if vars["WOLAUNCHER_ROOT"] != "/x" {
		t.Errorf("expected WOLAUNCHER_ROOT /x, got %q", vars["WOLAUNCHER_ROOT"])
	}
	if vars["WOLAUNCHER_DEBUG"] != "false" {
		t.Errorf("expected WOLAUNCHER_DEBUG false, got %q", vars["WOLAUNCHER_DEBUG"])
	}
}

func resetEnv() func() {
	origEnv := os.Environ()

	// ensure any local envvars do not hit the tests
	for _, e := range origEnv {
		if strings.HasPrefix(e, "WOLAUNCHER_") {
			os.Unsetenv(strings.SplitN(e, "=", 2)[0])
		}
	}

	return func() {
		for _, pair := range origEnv {
			kv := strings.SplitN(pair, "=", 2)
			os.Setenv(kv[0], kv[1])
		}
	}
}
