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

import "errors"

var (
	// ErrCatalogUnavailable is returned when the remote catalog cannot be fetched or decoded.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrArtifactNotFound is returned when no catalog entry matches the selection.
	ErrArtifactNotFound = errors.New("artifact not found")
	// ErrUnsupportedPlatform is returned for operating systems or architectures without artifacts.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	// ErrUndeterminedFileName is returned when no file name can be derived for a download.
	ErrUndeterminedFileName = errors.New("could not determine a file name for the download")
	// ErrUnsupportedArchiveFormat is returned when a file name has no known archive extension.
	ErrUnsupportedArchiveFormat = errors.New("unsupported archive format")
	// ErrChecksumMismatch is returned when a download does not match its published checksum.
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrTransport wraps network failures.
	ErrTransport = errors.New("transport failure")
	// ErrFilesystem wraps local disk failures.
	ErrFilesystem = errors.New("filesystem failure")
)

// IsFatal reports whether err must abort a launch.
//
// A tampered runtime or a missing client leaves nothing safe to start.
func IsFatal(err error) bool {
	return errors.Is(err, ErrChecksumMismatch) || errors.Is(err, ErrArtifactNotFound)
}

// Error joins a taxonomy sentinel with the underlying cause so that both
// errors.Is(err, sentinel) and errors.Is(err, cause) hold.
type Error struct {
	Kind  error
	Cause error
}

// Wrap returns an *Error of the given kind. A nil cause yields nil.
func Wrap(kind, cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Cause: cause}
}

func (e *Error) Error() string {
	return e.Kind.Error() + ": " + e.Cause.Error()
}

// Unwrap exposes both the sentinel and the cause.
func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Cause}
}
