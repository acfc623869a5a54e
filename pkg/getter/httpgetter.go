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

package getter

import (
	"bytes"
	"io"
	"mime"
	"net/http"
	"path"
	"sync"

	"github.com/pkg/errors"

	"github.com/wolauncher/wolauncher/internal/version"
	"github.com/wolauncher/wolauncher/pkg/artifact"
)

// HTTPGetter is the default HTTP(/S) backend handler
type HTTPGetter struct {
	opts      getterOptions
	transport *http.Transport
	once      sync.Once
}

// Get performs a GET and buffers the body.
func (g *HTTPGetter) Get(href string, options ...Option) (*bytes.Buffer, error) {
	resp, err := g.do(http.MethodGet, href, g.withOptions(options))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body := resp.Body

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, body); err != nil {
		return nil, artifact.Wrap(artifact.ErrTransport, errors.Wrapf(err, "failed to read %s", href))
	}
	return buf, nil
}

// Open performs a GET and hands the body to the caller.
//
// The request timeout does not apply: a runtime archive may take longer than
// any sensible metadata timeout, so the body is bounded by the transport only.
func (g *HTTPGetter) Open(href string, options ...Option) (io.ReadCloser, error) {
	opts := g.withOptions(options)
	opts.timeout = 0
	resp, err := g.do(http.MethodGet, href, opts)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Head performs a HEAD request and extracts the freshness metadata.
func (g *HTTPGetter) Head(href string, options ...Option) (*Metadata, error) {
	resp, err := g.do(http.MethodHead, href, g.withOptions(options))
	if err != nil {
		return nil, err
	}
	resp.Body.Close()

	md := &Metadata{Size: resp.ContentLength}
	if lm := resp.Header.Get("Last-Modified"); lm != "" {
		t, err := http.ParseTime(lm)
		if err != nil {
			return nil, artifact.Wrap(artifact.ErrTransport, errors.Wrapf(err, "invalid Last-Modified %q from %s", lm, href))
		}
		md.LastModified = t.UTC()
	}
	md.FileName = dispositionFileName(resp.Header.Get("Content-Disposition"))
	return md, nil
}

// dispositionFileName returns the base name of the Content-Disposition
// filename parameter, or "" when there is none.
func dispositionFileName(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	name := path.Base(params["filename"])
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// Create a local copy of options to avoid data races when called concurrently
func (g *HTTPGetter) withOptions(options []Option) getterOptions {
	opts := g.opts
	for _, opt := range options {
		opt(&opts)
	}
	return opts
}

func (g *HTTPGetter) do(method, href string, opts getterOptions) (*http.Response, error) {
	req, err := http.NewRequest(method, href, nil)
	if err != nil {
		return nil, artifact.Wrap(artifact.ErrTransport, err)
	}

	if opts.acceptHeader != "" {
		req.Header.Set("Accept", opts.acceptHeader)
	}

	req.Header.Set("User-Agent", version.GetUserAgent())
	if opts.userAgent != "" {
		req.Header.Set("User-Agent", opts.userAgent)
	}

	resp, err := g.httpClient(opts).Do(req)
	if err != nil {
		return nil, artifact.Wrap(artifact.ErrTransport, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, artifact.Wrap(artifact.ErrTransport, errors.Errorf("failed to fetch %s : %s", href, resp.Status))
	}
	return resp, nil
}

// NewHTTPGetter constructs a valid http/https client as a Getter
func NewHTTPGetter(options ...Option) (Getter, error) {
	var client HTTPGetter

	for _, opt := range options {
		opt(&client.opts)
	}

	return &client, nil
}

func (g *HTTPGetter) httpClient(opts getterOptions) *http.Client {
	if opts.transport != nil {
		return &http.Client{
			Transport: opts.transport,
			Timeout:   opts.timeout,
		}
	}

	g.once.Do(func() {
		g.transport = &http.Transport{
			DisableCompression: true,
			Proxy:              http.ProxyFromEnvironment,
		}
	})

	return &http.Client{
		Transport: g.transport,
		Timeout:   opts.timeout,
	}
}
