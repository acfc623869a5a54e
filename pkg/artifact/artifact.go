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

package artifact

import (
	"fmt"
	"strings"
)

// Descriptor identifies a remote artifact.
//
// FileName and Checksum are optional. An empty FileName is filled in by the
// downloader from the response headers or the URL; an empty Checksum means
// no content verification is performed beyond the freshness check.
type Descriptor struct {
	// URL is the absolute download location.
	URL string `json:"url"`
	// FileName is the name the artifact is stored under in the download cache.
	FileName string `json:"fileName,omitempty"`
	// Checksum is a hex encoded SHA-256 of the artifact.
	Checksum string `json:"checksum,omitempty"`
}

// HasChecksum reports whether the descriptor carries an expected checksum.
func (d Descriptor) HasChecksum() bool {
	return strings.TrimSpace(d.Checksum) != ""
}

func (d Descriptor) String() string {
	if d.FileName == "" {
		return d.URL
	}
	return fmt.Sprintf("%s (%s)", d.FileName, d.URL)
}
