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

/*
Package checksum computes and verifies SHA-256 content digests of artifacts.

Digests are exchanged as bare lowercase hex strings, the format used by the
runtime release listing; go-digest supplies the hashing and verification.
*/
package checksum

import (
	"io"
	"os"
	"strings"

	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"

	"github.com/wolauncher/wolauncher/pkg/artifact"
)

// DigestFile calculates the SHA-256 hex digest of a file.
func DigestFile(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", artifact.Wrap(artifact.ErrFilesystem, err)
	}
	defer f.Close()
	return Digest(f)
}

// Digest hashes a reader and returns a SHA-256 hex digest.
func Digest(in io.Reader) (string, error) {
	d, err := digest.SHA256.FromReader(in)
	if err != nil {
		return "", artifact.Wrap(artifact.ErrFilesystem, err)
	}
	return d.Encoded(), nil
}

// SameContent reports whether two files hash identically.
func SameContent(a, b string) (bool, error) {
	da, err := DigestFile(a)
	if err != nil {
		return false, err
	}
	db, err := DigestFile(b)
	if err != nil {
		return false, err
	}
	return da == db, nil
}

// VerifyFile checks filename against an expected hex digest.
// A mismatch or a malformed expectation returns ErrChecksumMismatch.
func VerifyFile(filename, expected string) error {
	want := digest.NewDigestFromEncoded(digest.SHA256, strings.ToLower(strings.TrimSpace(expected)))
	if err := want.Validate(); err != nil {
		return artifact.Wrap(artifact.ErrChecksumMismatch, errors.Wrapf(err, "invalid expected checksum %q", expected))
	}

	f, err := os.Open(filename)
	if err != nil {
		return artifact.Wrap(artifact.ErrFilesystem, err)
	}
	defer f.Close()

	verifier := want.Verifier()
	if _, err := io.Copy(verifier, f); err != nil {
		return artifact.Wrap(artifact.ErrFilesystem, err)
	}
	if verifier.Verified() {
		return nil
	}

	got, err := DigestFile(filename)
	if err != nil {
		return err
	}
	return artifact.Wrap(artifact.ErrChecksumMismatch,
		errors.Errorf("%s: downloaded %s, should be %s", filename, got, want.Encoded()))
}
