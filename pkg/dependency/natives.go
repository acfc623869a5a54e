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

package dependency

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// HelperBinary is the browser subprocess shipped in the natives bundle.
const HelperBinary = "jcef_helper"

// NewNatives returns the embedded browser natives dependency. Its helper
// binary is made executable after extraction.
func NewNatives(resolve ResolveFunc, env Env, path string) *Archive {
	a := newArchive(KindNatives, resolve, env, path)
	a.postInstall = markExecutable(HelperBinary)
	return a
}

func markExecutable(name string) func(dir string) error {
	return func(dir string) error {
		p := filepath.Join(dir, name)
		fi, err := os.Stat(p)
		if os.IsNotExist(err) {
			return nil
		}
		if err != nil {
			return err
		}
		return errors.Wrapf(os.Chmod(p, fi.Mode()|0111), "cannot make %s executable", name)
	}
}
