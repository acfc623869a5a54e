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

package downloader

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/wolauncher/wolauncher/internal/logging"
	"github.com/wolauncher/wolauncher/pkg/artifact"
	"github.com/wolauncher/wolauncher/pkg/fsutil"
	"github.com/wolauncher/wolauncher/pkg/getter"
)

// DefaultChunkSize is the unit in which bodies are copied and progress is reported.
const DefaultChunkSize = 1 << 20

// Result describes the cached copy of an artifact.
type Result struct {
	// Path is the canonical location in the downloads directory.
	Path string
	// FileName is the name the artifact was stored under.
	FileName string
	// Fetched is true when a body was transferred during this call.
	Fetched bool
}

// Downloader keeps Dir in sync with remote artifacts.
type Downloader struct {
	logging.LogHolder

	Getter getter.Getter
	// Dir is the downloads directory.
	Dir string
	// Progress receives one '.' per chunk. Nil disables progress output.
	Progress io.Writer
	// ChunkSize defaults to DefaultChunkSize.
	ChunkSize int
}

// New returns a Downloader writing to dir.
func New(g getter.Getter, dir string) *Downloader {
	return &Downloader{Getter: g, Dir: dir, ChunkSize: DefaultChunkSize}
}

// TerminalProgress returns f when it is attached to a terminal and nil
// otherwise.
func TerminalProgress(f *os.File) io.Writer {
	if f != nil && term.IsTerminal(int(f.Fd())) {
		return f
	}
	return nil
}

// EnsureDownloaded makes sure the downloads directory holds an up to date
// copy of d.
//
// The copy is up to date when its size and modification time, to the second,
// match what the server reports. When the server does not report both, the
// artifact is always fetched again.
func (dl *Downloader) EnsureDownloaded(d artifact.Descriptor) (Result, error) {
	md, err := dl.Getter.Head(d.URL)
	if err != nil {
		return Result{}, errors.Wrapf(err, "cannot check %s", d.URL)
	}

	name, err := FileName(d, md)
	if err != nil {
		return Result{}, err
	}
	res := Result{Path: filepath.Join(dl.Dir, name), FileName: name}

	if fresh(res.Path, md) {
		dl.Logger().Info(name + " is already up to date. Skipping.")
		return res, nil
	}

	dl.Logger().Info("Downloading "+name+" from "+d.URL, "size", md.Size)
	if err := dl.fetch(d.URL, res.Path); err != nil {
		return Result{}, err
	}
	if !md.LastModified.IsZero() {
		mtime := md.LastModified.Truncate(time.Second)
		if err := os.Chtimes(res.Path, mtime, mtime); err != nil {
			return Result{}, artifact.Wrap(artifact.ErrFilesystem, err)
		}
	}
	res.Fetched = true
	return res, nil
}

// FileName picks the local name for d: the descriptor's own name, then the
// server's Content-Disposition hint, then the last segment of the URL path.
func FileName(d artifact.Descriptor, md *getter.Metadata) (string, error) {
	candidates := []string{d.FileName}
	if md != nil {
		candidates = append(candidates, md.FileName)
	}
	if u, err := url.Parse(d.URL); err == nil {
		candidates = append(candidates, path.Base(u.Path))
	}
	for _, c := range candidates {
		if validFileName(c) {
			return c, nil
		}
	}
	return "", artifact.Wrap(artifact.ErrUndeterminedFileName, errors.Errorf("no usable file name for %s", d.URL))
}

func validFileName(name string) bool {
	switch name {
	case "", ".", "..", "/":
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

func fresh(local string, md *getter.Metadata) bool {
	if !md.Known() {
		return false
	}
	fi, err := os.Stat(local)
	if err != nil || !fi.Mode().IsRegular() {
		return false
	}
	return fi.Size() == md.Size &&
		fi.ModTime().Truncate(time.Second).Equal(md.LastModified.Truncate(time.Second))
}

func (dl *Downloader) fetch(href, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return artifact.Wrap(artifact.ErrFilesystem, err)
	}
	tmp := dest + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return artifact.Wrap(artifact.ErrFilesystem, err)
	}

	body, err := dl.Getter.Open(href)
	if err != nil {
		f.Close()
		return errors.Wrapf(err, "cannot download %s", href)
	}
	werr := dl.copyChunks(f, body, href)
	body.Close()
	if cerr := f.Close(); werr == nil && cerr != nil {
		werr = artifact.Wrap(artifact.ErrFilesystem, cerr)
	}
	if werr != nil {
		return werr
	}

	if err := fsutil.RenameWithFallback(tmp, dest); err != nil {
		return artifact.Wrap(artifact.ErrFilesystem, err)
	}
	return nil
}

func (dl *Downloader) copyChunks(dst io.Writer, src io.Reader, href string) error {
	size := dl.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}
	buf := make([]byte, size)
	var inChunk int
	defer dl.progress("\n")
	for {
		n, rerr := src.Read(buf[inChunk:])
		if n > 0 {
			if _, err := dst.Write(buf[inChunk : inChunk+n]); err != nil {
				return artifact.Wrap(artifact.ErrFilesystem, err)
			}
			inChunk += n
			if inChunk == size {
				dl.progress(".")
				inChunk = 0
			}
		}
		if rerr == io.EOF {
			if inChunk > 0 {
				dl.progress(".")
			}
			return nil
		}
		if rerr != nil {
			return artifact.Wrap(artifact.ErrTransport, errors.Wrapf(rerr, "transfer of %s interrupted", href))
		}
	}
}

func (dl *Downloader) progress(s string) {
	if dl.Progress != nil {
		fmt.Fprint(dl.Progress, s)
	}
}
