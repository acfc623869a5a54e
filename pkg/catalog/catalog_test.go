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

package catalog

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolauncher/wolauncher/pkg/artifact"
	"github.com/wolauncher/wolauncher/pkg/getter"
)

const manifest = `{
  "clients": [
    {"name": "Live", "url": "https://cdn.example.com/client/live/client.jar"},
    {"name": "Beta", "url": "https://cdn.example.com/client/beta/client.jar"}
  ],
  "dependencies": [
    {"name": "jcef-natives", "platform": "linux64", "url": "https://cdn.example.com/jcef/linux64.tar.gz"},
    {"name": "jcef-natives", "platform": "win64", "url": "https://cdn.example.com/jcef/win64.zip"}
  ]
}`

func newServer(t *testing.T, body string, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newGetter(t *testing.T) getter.Getter {
	t.Helper()
	g, err := getter.NewHTTPGetter()
	require.NoError(t, err)
	return g
}

func TestSourceFetchIsMemoized(t *testing.T) {
	var hits int32
	srv := newServer(t, manifest, &hits)
	src := NewSource(srv.URL, newGetter(t))

	first, err := src.Fetch()
	require.NoError(t, err)
	second, err := src.Fetch()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.Equal(t, []string{"Live", "Beta"}, first.ClientNames())
}

func TestSourceFetchFailureIsNotMemoized(t *testing.T) {
	var hits int32
	var fail atomic.Bool
	fail.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if fail.Load() {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, manifest)
	}))
	defer srv.Close()

	src := NewSource(srv.URL, newGetter(t))
	_, err := src.Fetch()
	assert.ErrorIs(t, err, artifact.ErrCatalogUnavailable)
	assert.ErrorIs(t, err, artifact.ErrTransport)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "no retry expected")

	fail.Store(false)
	_, err = src.Fetch()
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestSourceDecodeFailure(t *testing.T) {
	var hits int32
	srv := newServer(t, "{not json", &hits)

	_, err := NewSource(srv.URL, newGetter(t)).Fetch()
	assert.ErrorIs(t, err, artifact.ErrCatalogUnavailable)
}

func TestLoadEmpty(t *testing.T) {
	_, err := Load([]byte("  \n"))
	assert.ErrorIs(t, err, artifact.ErrCatalogUnavailable)
}

func TestLookups(t *testing.T) {
	c, err := Load([]byte(manifest))
	require.NoError(t, err)

	cl, err := c.Client("Beta")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/client/beta/client.jar", cl.URL)

	_, err = c.Client("beta")
	assert.ErrorIs(t, err, artifact.ErrArtifactNotFound)

	b, err := c.Bundle("jcef-natives", "win64")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/jcef/win64.zip", b.URL)

	_, err = c.Bundle("jcef-natives", "win32")
	assert.ErrorIs(t, err, artifact.ErrArtifactNotFound)
}

func TestStatic(t *testing.T) {
	s := &Static{Clients: []Client{{Name: "Live", URL: "http://x/client.jar"}}}
	c, err := s.Fetch()
	require.NoError(t, err)
	assert.Len(t, c.Clients, 1)
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"missing clients", `{"dependencies": []}`, "clients is required"},
		{"bundle without platform", `{"clients": [], "dependencies": [{"name": "jcef-natives", "url": "u"}]}`, "platform is required"},
		{"client url not a string", `{"clients": [{"name": "Live", "url": 3}], "dependencies": []}`, "url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, artifact.ErrCatalogUnavailable)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
