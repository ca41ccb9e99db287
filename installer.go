//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package curlsrc

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2/maybe"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultCurlBaseURL is where the curl release archives are published.
	DefaultCurlBaseURL = "https://curl.se/download"
	// NGHTTP2ReleaseTag is the GitHub release the nghttp2 archives are taken from.
	NGHTTP2ReleaseTag = "v1.64.0"
	// DefaultNGHTTP2BaseURL is where the nghttp2 release archives are published.
	DefaultNGHTTP2BaseURL = "https://github.com/nghttp2/nghttp2/releases/download/" + NGHTTP2ReleaseTag
	// DefaultNGHTTP2Version is the nghttp2 release used when none is given.
	DefaultNGHTTP2Version = "1.64.0"

	// DefaultCurlTarget is the directory, below the root, curl is extracted to.
	DefaultCurlTarget = ".curl-temp"
	// DefaultNGHTTP2Target is the directory, below the root, nghttp2 is extracted to.
	DefaultNGHTTP2Target = ".nghttp2-temp"
)

// Installer downloads source archives and unpacks them below Root.
type Installer struct {
	// Root is the directory holding the scratch archives and the
	// extracted trees. It must exist.
	Root string
	// Config is the download configuration. Its Progress, if set, is also
	// used to report the extraction.
	Config Config
	// Log receives the installation messages. If nil nothing is logged.
	Log logrus.FieldLogger
	// CurlBaseURL overrides DefaultCurlBaseURL.
	CurlBaseURL string
	// NGHTTP2BaseURL overrides DefaultNGHTTP2BaseURL.
	NGHTTP2BaseURL string
}

// NewInstaller returns an Installer working below root.
func NewInstaller(root string, config Config, log logrus.FieldLogger) *Installer {
	return &Installer{
		Root:   root,
		Config: config,
		Log:    log,
	}
}

func (i *Installer) logger() logrus.FieldLogger {
	if i.Log == nil {
		return discardLogger
	}
	return i.Log
}

var discardLogger = &logrus.Logger{
	Out:       io.Discard,
	Formatter: new(logrus.TextFormatter),
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.PanicLevel,
}

// Install downloads the gzip compressed tar at url, saves it as
// Root/scratchName and extracts it into Root/targetName, which is returned.
// The scratch archive is removed afterwards if cleanup is true.
// Errors are not recovered: a failed extraction may leave a partially
// populated target directory.
func (i *Installer) Install(ctx context.Context, url, scratchName, targetName string, cleanup bool) (string, error) {
	log := i.logger()
	scratch := filepath.Join(i.Root, scratchName)
	target := filepath.Join(i.Root, targetName)

	log.Infof("starting download of %s", url)
	data, err := FetchWithConfigAndContext(ctx, url, i.Config)
	if err != nil {
		return "", err
	}

	if err := maybe.WriteFile(scratch, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", scratch, err)
	}

	log.Infof("extracting %s", scratchName)
	if err := i.extract(scratch, target); err != nil {
		return "", err
	}

	if cleanup {
		log.Infof("removing %s", scratchName)
		if err := os.Remove(scratch); err != nil {
			return "", err
		}
	}
	return target, nil
}

// extract unpacks the archive in a single pass, or member by member with a
// counter when a progress strategy is configured.
func (i *Installer) extract(archive, target string) error {
	if i.Config.Progress == nil {
		return extractTarGz(archive, target, nil, i.logger())
	}
	members, err := countMembers(archive)
	if err != nil {
		return err
	}
	tracker := i.Config.Progress.Start("extracting "+filepath.Base(archive), members)
	defer tracker.Done()
	return extractTarGz(archive, target, tracker, i.logger())
}

// InstallCurl downloads curl-<version>.tar.gz and extracts it into
// Root/targetName (DefaultCurlTarget if empty). It returns the path of the
// source tree, Root/targetName/curl-<version>.
func (i *Installer) InstallCurl(ctx context.Context, version, targetName string, cleanup bool) (string, error) {
	if version == "" {
		return "", ErrMissingVersion
	}
	if targetName == "" {
		targetName = DefaultCurlTarget
	}
	name := "curl-" + version
	dir, err := i.Install(ctx, joinURL(i.CurlBaseURL, DefaultCurlBaseURL, name+".tar.gz"),
		"__"+name+".tar.gz", targetName, cleanup)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// InstallNGHTTP2 downloads nghttp2-<version>.tar.gz (DefaultNGHTTP2Version if
// version is empty) and extracts it into Root/targetName
// (DefaultNGHTTP2Target if empty), which is returned.
func (i *Installer) InstallNGHTTP2(ctx context.Context, version, targetName string, cleanup bool) (string, error) {
	if version == "" {
		version = DefaultNGHTTP2Version
	}
	if targetName == "" {
		targetName = DefaultNGHTTP2Target
	}
	name := "nghttp2-" + version
	return i.Install(ctx, joinURL(i.NGHTTP2BaseURL, DefaultNGHTTP2BaseURL, name+".tar.gz"),
		"__"+name+".tar.gz", targetName, cleanup)
}

func joinURL(base, fallback, file string) string {
	if base == "" {
		base = fallback
	}
	return strings.TrimSuffix(base, "/") + "/" + file
}
