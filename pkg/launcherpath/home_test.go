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

package launcherpath

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayout(t *testing.T) {
	root := filepath.Join("srv", "wo")
	l := NewLayout(root)

	assert.Equal(t, filepath.Join(root, "downloads"), l.Downloads())
	assert.Equal(t, filepath.Join(root, "work"), l.Work())
	assert.Equal(t, filepath.Join(root, "runtime"), l.Runtime())
	assert.Equal(t, filepath.Join(root, "clients"), l.Clients())
	assert.Len(t, l.Dirs(), 4)
}

func TestLayoutDefaultsToDataPath(t *testing.T) {
	t.Setenv(DataHomeEnvVar, filepath.Join("data", "wo"))
	assert.Equal(t, filepath.Join("data", "wo"), NewLayout("").Root)
}
