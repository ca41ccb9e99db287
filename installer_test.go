//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package curlsrc

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

type archiveEntry struct {
	name    string
	content string
	dir     bool
}

func makeTarGz(t *testing.T, entries ...archiveEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, e := range entries {
		hdr := &tar.Header{Name: e.name, Mode: 0644, Size: int64(len(e.content)), Typeflag: tar.TypeReg}
		if e.dir {
			hdr = &tar.Header{Name: e.name, Mode: 0755, Typeflag: tar.TypeDir}
		}
		require.NoError(t, tw.WriteHeader(hdr))
		if !e.dir {
			_, err := tw.Write([]byte(e.content))
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

// archiveServer serves data for every path and counts the requests. The
// requested paths are recorded in paths.
type archiveServer struct {
	*httptest.Server
	hits  atomic.Int32
	paths []string
}

func newArchiveServer(t *testing.T, data []byte) *archiveServer {
	s := &archiveServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		s.paths = append(s.paths, r.URL.Path)
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		_, _ = w.Write(data)
	}))
	t.Cleanup(s.Close)
	return s
}

// listFiles returns the regular files below dir with their content.
func listFiles(t *testing.T, dir string) map[string]string {
	t.Helper()
	files := map[string]string{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestInstallRoundTrip(t *testing.T) {
	archive := makeTarGz(t,
		archiveEntry{name: "a.txt", content: "x"},
		archiveEntry{name: "sub/", dir: true},
		archiveEntry{name: "sub/b.txt", content: "y"},
	)
	srv := newArchiveServer(t, archive)
	root := t.TempDir()

	inst := NewInstaller(root, Config{HttpClient: srv.Client()}, nil)
	target, err := inst.Install(context.Background(), srv.URL+"/test.tar.gz", "__test.tar.gz", "out", true)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "out"), target)
	require.Equal(t, map[string]string{"a.txt": "x", "sub/b.txt": "y"}, listFiles(t, target))
}

func TestInstallCleanup(t *testing.T) {
	archive := makeTarGz(t, archiveEntry{name: "a.txt", content: "x"})
	srv := newArchiveServer(t, archive)

	t.Run("Remove", func(t *testing.T) {
		root := t.TempDir()
		inst := NewInstaller(root, Config{HttpClient: srv.Client()}, nil)
		_, err := inst.Install(context.Background(), srv.URL, "__a.tar.gz", "out", true)
		require.NoError(t, err)
		require.NoFileExists(t, filepath.Join(root, "__a.tar.gz"))
	})

	t.Run("Keep", func(t *testing.T) {
		root := t.TempDir()
		inst := NewInstaller(root, Config{HttpClient: srv.Client()}, nil)
		_, err := inst.Install(context.Background(), srv.URL, "__a.tar.gz", "out", false)
		require.NoError(t, err)
		scratch, err := os.ReadFile(filepath.Join(root, "__a.tar.gz"))
		require.NoError(t, err)
		require.Equal(t, archive, scratch)
	})
}

func TestInstallCurl(t *testing.T) {
	archive := makeTarGz(t,
		archiveEntry{name: "curl-8.12.1/", dir: true},
		archiveEntry{name: "curl-8.12.1/include/curl/curl.h", content: "/* curl */"},
		archiveEntry{name: "curl-8.12.1/lib/easy.c", content: "/* easy */"},
	)
	srv := newArchiveServer(t, archive)
	root := t.TempDir()

	inst := NewInstaller(root, Config{HttpClient: srv.Client()}, nil)
	inst.CurlBaseURL = srv.URL + "/download/"
	path, err := inst.InstallCurl(context.Background(), "8.12.1", "", true)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, DefaultCurlTarget, "curl-8.12.1"), path)
	require.Equal(t, []string{"/download/curl-8.12.1.tar.gz"}, srv.paths)
	require.FileExists(t, filepath.Join(path, "lib", "easy.c"))
	require.NoFileExists(t, filepath.Join(root, "__curl-8.12.1.tar.gz"))

	_, err = inst.InstallCurl(context.Background(), "", "", true)
	require.ErrorIs(t, err, ErrMissingVersion)
}

func TestInstallNGHTTP2(t *testing.T) {
	archive := makeTarGz(t, archiveEntry{name: "nghttp2-1.64.0/lib/nghttp2_session.c", content: "session"})
	srv := newArchiveServer(t, archive)
	root := t.TempDir()

	inst := NewInstaller(root, Config{HttpClient: srv.Client()}, nil)
	inst.NGHTTP2BaseURL = srv.URL + "/nghttp2/releases/download/" + NGHTTP2ReleaseTag
	path, err := inst.InstallNGHTTP2(context.Background(), "", "deps", false)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "deps"), path)
	require.Equal(t, []string{"/nghttp2/releases/download/v1.64.0/nghttp2-1.64.0.tar.gz"}, srv.paths)
	require.FileExists(t, filepath.Join(path, "nghttp2-1.64.0", "lib", "nghttp2_session.c"))
	require.FileExists(t, filepath.Join(root, "__nghttp2-1.64.0.tar.gz"))
}

func TestDefaultURLs(t *testing.T) {
	require.Equal(t, "https://curl.se/download/curl-8.12.1.tar.gz",
		joinURL("", DefaultCurlBaseURL, "curl-8.12.1.tar.gz"))
	require.Equal(t, "https://github.com/nghttp2/nghttp2/releases/download/v1.64.0/nghttp2-1.64.0.tar.gz",
		joinURL("", DefaultNGHTTP2BaseURL, "nghttp2-1.64.0.tar.gz"))
	require.Equal(t, "http://mirror/curl.tar.gz", joinURL("http://mirror/", DefaultCurlBaseURL, "curl.tar.gz"))
}

func TestInstallWithProgress(t *testing.T) {
	archive := makeTarGz(t,
		archiveEntry{name: "curl-8.12.1/", dir: true},
		archiveEntry{name: "curl-8.12.1/a.c", content: "a"},
		archiveEntry{name: "curl-8.12.1/b.c", content: "b"},
	)
	srv := newArchiveServer(t, archive)

	p := &recordedProgress{}
	inst := NewInstaller(t.TempDir(), Config{HttpClient: srv.Client(), Progress: p.fn()}, nil)
	_, err := inst.Install(context.Background(), srv.URL, "__curl.tar.gz", "out", true)
	require.NoError(t, err)

	require.Len(t, p.labels, 2)
	require.Equal(t, srv.URL, p.labels[0])
	require.Equal(t, "extracting __curl.tar.gz", p.labels[1])
	require.Equal(t, []int64{int64(len(archive)), 3}, p.totals)
	require.Equal(t, int64(3), p.current)
	require.Equal(t, 2, p.done)
}

func TestInstallRetrievalError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	root := t.TempDir()

	inst := NewInstaller(root, Config{HttpClient: srv.Client()}, nil)
	_, err := inst.Install(context.Background(), srv.URL+"/missing.tar.gz", "__missing.tar.gz", "out", true)
	var retrievalErr *RetrievalError
	require.ErrorAs(t, err, &retrievalErr)
	require.NoFileExists(t, filepath.Join(root, "__missing.tar.gz"))
	require.NoDirExists(t, filepath.Join(root, "out"))
}

func TestInstallMalformedArchive(t *testing.T) {
	srv := newArchiveServer(t, []byte("this is not a gzip file"))
	root := t.TempDir()

	inst := NewInstaller(root, Config{HttpClient: srv.Client()}, nil)
	_, err := inst.Install(context.Background(), srv.URL, "__bad.tar.gz", "out", true)
	require.ErrorIs(t, err, gzip.ErrHeader)
	// no cleanup after a failed extraction
	require.FileExists(t, filepath.Join(root, "__bad.tar.gz"))
}

func TestInstallUnsafePath(t *testing.T) {
	srv := newArchiveServer(t, makeTarGz(t, archiveEntry{name: "../evil.txt", content: "evil"}))
	root := t.TempDir()

	inst := NewInstaller(filepath.Join(root, "work"), Config{HttpClient: srv.Client()}, nil)
	require.NoError(t, os.Mkdir(inst.Root, 0755))
	_, err := inst.Install(context.Background(), srv.URL, "__evil.tar.gz", "out", true)
	require.ErrorIs(t, err, ErrUnsafePath)
	require.NoFileExists(t, filepath.Join(root, "work", "evil.txt"))
}

func TestExtractLinks(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "pkg/real.h", Mode: 0644, Size: 4, Typeflag: tar.TypeReg}))
	_, err := tw.Write([]byte("real"))
	require.NoError(t, err)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "pkg/hard.h", Linkname: "pkg/real.h", Typeflag: tar.TypeLink}))
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "pkg/soft.h", Linkname: "real.h", Typeflag: tar.TypeSymlink}))
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "pkg/escape.h", Linkname: "../../etc/passwd", Typeflag: tar.TypeSymlink}))
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())

	dir := t.TempDir()
	archive := filepath.Join(dir, "links.tar.gz")
	require.NoError(t, os.WriteFile(archive, buf.Bytes(), 0644))

	n, err := countMembers(archive)
	require.NoError(t, err)
	require.Equal(t, int64(4), n)

	dest := filepath.Join(dir, "out")
	err = extractTarGz(archive, dest, nil, discardLogger)
	require.ErrorIs(t, err, ErrUnsafePath)
	require.True(t, strings.Contains(err.Error(), "pkg/escape.h"))

	hard, err := os.ReadFile(filepath.Join(dest, "pkg", "hard.h"))
	require.NoError(t, err)
	require.Equal(t, "real", string(hard))
	link, err := os.Readlink(filepath.Join(dest, "pkg", "soft.h"))
	require.NoError(t, err)
	require.Equal(t, "real.h", link)

	names := []string{}
	for name := range listFiles(t, dest) {
		names = append(names, name)
	}
	sort.Strings(names)
	require.Equal(t, []string{"pkg/hard.h", "pkg/real.h", "pkg/soft.h"}, names)
}

func TestInstallTwiceWithLinks(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "pkg/real.h", Mode: 0644, Size: 4, Typeflag: tar.TypeReg}))
	_, err := tw.Write([]byte("real"))
	require.NoError(t, err)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "pkg/hard.h", Linkname: "pkg/real.h", Typeflag: tar.TypeLink}))
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "pkg/soft.h", Linkname: "real.h", Typeflag: tar.TypeSymlink}))
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	srv := newArchiveServer(t, buf.Bytes())
	root := t.TempDir()

	for range 2 {
		inst := NewInstaller(root, Config{HttpClient: srv.Client()}, nil)
		target, err := inst.Install(context.Background(), srv.URL, "__links.tar.gz", "out", true)
		require.NoError(t, err)

		hard, err := os.ReadFile(filepath.Join(target, "pkg", "hard.h"))
		require.NoError(t, err)
		require.Equal(t, "real", string(hard))
		link, err := os.Readlink(filepath.Join(target, "pkg", "soft.h"))
		require.NoError(t, err)
		require.Equal(t, "real.h", link)
		require.Equal(t, map[string]string{"pkg/real.h": "real", "pkg/hard.h": "real", "pkg/soft.h": "real"}, listFiles(t, target))
	}
	require.Equal(t, int32(2), srv.hits.Load())
}
