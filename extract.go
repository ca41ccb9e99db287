//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package curlsrc

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/sirupsen/logrus"
)

// openTarGz opens a gzip compressed tar archive. The returned function
// closes both the decompressor and the file.
func openTarGz(archive string) (*tar.Reader, func(), error) {
	f, err := os.Open(archive)
	if err != nil {
		return nil, nil, err
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("reading %s: %w", archive, err)
	}
	return tar.NewReader(gz), func() {
		gz.Close()
		f.Close()
	}, nil
}

// countMembers returns the number of entries of a gzip compressed tar.
func countMembers(archive string) (int64, error) {
	tr, closeArchive, err := openTarGz(archive)
	if err != nil {
		return 0, err
	}
	defer closeArchive()

	var n int64
	for {
		_, err := tr.Next()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", archive, err)
		}
		n++
	}
}

// extractTarGz unpacks every member of archive below dest, creating dest if
// needed. If tracker is not nil it is updated after each member.
// Members that would land outside dest are rejected with ErrUnsafePath.
func extractTarGz(archive, dest string, tracker Tracker, log logrus.FieldLogger) error {
	tr, closeArchive, err := openTarGz(archive)
	if err != nil {
		return err
	}
	defer closeArchive()

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}

	var n int64
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", archive, err)
		}
		if err := extractMember(tr, hdr, dest, log); err != nil {
			return fmt.Errorf("extracting %s: %w", hdr.Name, err)
		}
		n++
		if tracker != nil {
			tracker.Update(n)
		}
	}
}

func extractMember(tr *tar.Reader, hdr *tar.Header, dest string, log logrus.FieldLogger) error {
	name := filepath.FromSlash(hdr.Name)
	if !filepath.IsLocal(name) {
		return ErrUnsafePath
	}
	// The last element is not resolved: a link left by a previous
	// extraction is replaced, not followed.
	parent, err := securejoin.SecureJoin(dest, filepath.Dir(name))
	if err != nil {
		return err
	}
	target := filepath.Join(parent, filepath.Base(name))
	mode := hdr.FileInfo().Mode().Perm()

	switch hdr.Typeflag {
	case tar.TypeDir:
		return os.MkdirAll(target, mode|0o700)

	case tar.TypeReg:
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode|0o600)
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, tr); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
		if !hdr.ModTime.IsZero() {
			return os.Chtimes(target, hdr.ModTime, hdr.ModTime)
		}
		return nil

	case tar.TypeSymlink:
		link := filepath.FromSlash(hdr.Linkname)
		if filepath.IsAbs(link) || !filepath.IsLocal(filepath.Join(filepath.Dir(filepath.FromSlash(hdr.Name)), link)) {
			return ErrUnsafePath
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := removeExisting(target); err != nil {
			return err
		}
		return os.Symlink(link, target)

	case tar.TypeLink:
		if !filepath.IsLocal(filepath.FromSlash(hdr.Linkname)) {
			return ErrUnsafePath
		}
		source, err := securejoin.SecureJoin(dest, hdr.Linkname)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := removeExisting(target); err != nil {
			return err
		}
		return os.Link(source, target)

	default:
		log.Debugf("skipping %s (type %q)", hdr.Name, hdr.Typeflag)
		return nil
	}
}

// removeExisting deletes what a previous extraction left at path, links
// cannot be created over an existing entry.
func removeExisting(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
