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
	"github.com/pkg/errors"

	"github.com/wolauncher/wolauncher/pkg/artifact"
	"github.com/wolauncher/wolauncher/pkg/checksum"
	"github.com/wolauncher/wolauncher/pkg/fsutil"
)

// Client is the client jar. It is copied rather than extracted, and an
// existing copy is replaced whenever its content differs from the download.
type Client struct {
	resolve ResolveFunc
	env     Env

	desc   *artifact.Descriptor
	path   string
	copied bool
}

// NewClient returns the client jar dependency.
func NewClient(resolve ResolveFunc, env Env, path string) *Client {
	return &Client{resolve: resolve, env: env, path: path}
}

// Kind implements Dependency.
func (c *Client) Kind() Kind { return KindClient }

// Path implements Dependency.
func (c *Client) Path() string { return c.path }

// IsReady implements Dependency.
func (c *Client) IsReady() bool {
	return c.path != "" && fsutil.Exists(c.path)
}

// Copied reports whether the last MakeReady replaced the installed jar.
func (c *Client) Copied() bool { return c.copied }

// MakeReady implements Dependency.
func (c *Client) MakeReady() error {
	if c.desc == nil {
		d, err := c.resolve()
		if err != nil {
			return errors.Wrap(err, "cannot resolve client")
		}
		c.desc = &d
	}
	res, err := c.env.Downloader.EnsureDownloaded(*c.desc)
	if err != nil {
		return err
	}
	if c.desc.HasChecksum() {
		if err := checksum.VerifyFile(res.Path, c.desc.Checksum); err != nil {
			return err
		}
	}
	path, copied, err := c.env.Clients.EnsureInstalled(res.Path, res.FileName)
	if err != nil {
		return err
	}
	c.path, c.copied = path, copied
	return nil
}
