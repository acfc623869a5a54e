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

// JDK is the Java runtime dependency. Its download must match the checksum
// published alongside it before anything is extracted.
type JDK struct {
	*Archive
}

// NewJDK returns the Java runtime dependency.
func NewJDK(resolve ResolveFunc, env Env, path string) *JDK {
	a := newArchive(KindJDK, resolve, env, path)
	a.requireChecksum = true
	return &JDK{Archive: a}
}

// Verified reports whether the download was checked against its published
// checksum during this process.
func (j *JDK) Verified() bool { return j.verified }
