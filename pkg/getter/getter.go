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
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/pkg/errors"
)

// getterOptions are generic parameters to be provided to the getter during instantiation.
//
// Getters may or may not ignore these parameters as they are passed in.
type getterOptions struct {
	acceptHeader string
	userAgent    string
	timeout      time.Duration
	transport    http.RoundTripper
}

// Option allows specifying various settings configurable by the user for overriding the defaults
// used when performing requests with the Getter.
type Option func(*getterOptions)

// WithAcceptHeader sets the request's Accept header as some REST APIs serve multiple content types
func WithAcceptHeader(header string) Option {
	return func(opts *getterOptions) {
		opts.acceptHeader = header
	}
}

// WithUserAgent sets the request's User-Agent header to use the provided agent name.
func WithUserAgent(userAgent string) Option {
	return func(opts *getterOptions) {
		opts.userAgent = userAgent
	}
}

// WithTimeout sets the timeout for requests
func WithTimeout(timeout time.Duration) Option {
	return func(opts *getterOptions) {
		opts.timeout = timeout
	}
}

// WithTransport sets the http.RoundTripper to allow overwriting the HTTPGetter default.
func WithTransport(transport http.RoundTripper) Option {
	return func(opts *getterOptions) {
		opts.transport = transport
	}
}

// Metadata is what a metadata-only request reveals about a remote file.
type Metadata struct {
	// Size is the Content-Length, or -1 when the server did not send one.
	Size int64
	// LastModified is the parsed Last-Modified header; zero when absent.
	LastModified time.Time
	// FileName is the Content-Disposition filename hint, if any.
	FileName string
}

// Known reports whether both freshness attributes were supplied by the server.
func (m *Metadata) Known() bool {
	return m.Size >= 0 && !m.LastModified.IsZero()
}

// Getter is an interface to support retrieving remote files.
type Getter interface {
	// Get file content by url string
	Get(url string, options ...Option) (*bytes.Buffer, error)
	// Head fetches headers only.
	Head(url string, options ...Option) (*Metadata, error)
	// Open streams the body. The caller closes the reader.
	Open(url string, options ...Option) (io.ReadCloser, error)
}

// Constructor is the function for every getter which creates a specific instance
// according to the configuration
type Constructor func(options ...Option) (Getter, error)

// Provider represents any getter and the schemes that it supports.
type Provider struct {
	Schemes []string
	New     Constructor
}

// Provides returns true if the given scheme is supported by this Provider.
func (p Provider) Provides(scheme string) bool {
	return slices.Contains(p.Schemes, scheme)
}

// Providers is a collection of Provider objects.
type Providers []Provider

// ByScheme returns a Provider that handles the given scheme.
//
// If no provider handles this scheme, this will return an error.
func (p Providers) ByScheme(scheme string) (Getter, error) {
	for _, pp := range p {
		if pp.Provides(scheme) {
			return pp.New()
		}
	}
	return nil, errors.Errorf("scheme %q not supported", scheme)
}

// ForURL picks the getter for the scheme of rawURL.
func (p Providers) ForURL(rawURL string) (Getter, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid URL %q", rawURL)
	}
	return p.ByScheme(u.Scheme)
}

const (
	// DefaultHTTPTimeout caps a whole request, in seconds.
	DefaultHTTPTimeout = 120
)

var defaultOptions = []Option{WithTimeout(time.Second * DefaultHTTPTimeout)}

// All returns the built-in getters.
func All(extraOpts ...Option) Providers {
	return Providers{
		Provider{
			Schemes: []string{"http", "https"},
			New: func(options ...Option) (Getter, error) {
				options = append(options, defaultOptions...)
				options = append(options, extraOpts...)
				return NewHTTPGetter(options...)
			},
		},
	}
}
