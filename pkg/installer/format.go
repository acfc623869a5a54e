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

package installer

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/wolauncher/wolauncher/pkg/artifact"
)

// Format is a supported archive layout.
type Format struct {
	Ext       string // suffix including the leading dot
	extractor Extractor
}

// Formats lists the supported archive suffixes.
var Formats = []Format{
	{Ext: ".tar.bz2", extractor: &TarExtractor{Decompress: bzip2Reader}},
	{Ext: ".tar.zst", extractor: &TarExtractor{Decompress: zstdReader}},
	{Ext: ".tar.gz", extractor: &TarExtractor{Decompress: gzipReader}},
	{Ext: ".tar.xz", extractor: &TarExtractor{Decompress: xzReader}},
	{Ext: ".tbz2", extractor: &TarExtractor{Decompress: bzip2Reader}},
	{Ext: ".tar", extractor: &TarExtractor{}},
	{Ext: ".tgz", extractor: &TarExtractor{Decompress: gzipReader}},
	{Ext: ".txz", extractor: &TarExtractor{Decompress: xzReader}},
	{Ext: ".zip", extractor: &ZipExtractor{}},
}

// FormatFor returns the format with the longest suffix matching fileName.
func FormatFor(fileName string) (Format, error) {
	var best Format
	for _, f := range Formats {
		if strings.HasSuffix(fileName, f.Ext) && len(f.Ext) > len(best.Ext) {
			best = f
		}
	}
	if best.Ext == "" {
		return Format{}, artifact.Wrap(artifact.ErrUnsupportedArchiveFormat, errors.Errorf("no extractor implemented yet for %s", fileName))
	}
	return best, nil
}

// ArchiveKey splits fileName into the install key and the archive suffix,
// e.g. "OpenJDK17U-jdk_x64_linux_hotspot_17.0.9_9.tar.gz" yields
// "OpenJDK17U-jdk_x64_linux_hotspot_17.0.9_9" and ".tar.gz".
func ArchiveKey(fileName string) (key, ext string, err error) {
	f, err := FormatFor(fileName)
	if err != nil {
		return "", "", err
	}
	key = strings.TrimSuffix(fileName, f.Ext)
	if key == "" {
		return "", "", artifact.Wrap(artifact.ErrUnsupportedArchiveFormat, errors.Errorf("%s has no name before its extension", fileName))
	}
	return key, f.Ext, nil
}

// NewExtractor creates a new extractor matching the source file name.
func NewExtractor(source string) (Extractor, error) {
	f, err := FormatFor(source)
	if err != nil {
		return nil, err
	}
	return f.extractor, nil
}
