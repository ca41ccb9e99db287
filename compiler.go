//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package curlsrc

import (
	"context"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// CurlInstaller installs curl and nghttp2 below a root directory and fills
// build descriptions with what is needed to compile curl statically.
//
// Each dependency is downloaded at most once per CurlInstaller: CurlPath and
// NGHTTP2Path are set by the first successful install and reused afterwards.
// The filesystem is not checked for a previous extraction.
type CurlInstaller struct {
	CurlVersion    string
	NGHTTP2Version string

	// CurlPath is the curl source tree, empty until installed.
	CurlPath string
	// NGHTTP2Path is the nghttp2 extraction directory, empty until installed.
	NGHTTP2Path string

	installer     *Installer
	curlTarget    string
	nghttp2Target string
	keepArchives  bool
}

// Option configures a CurlInstaller.
type Option func(*CurlInstaller)

// WithConfig sets the download configuration.
func WithConfig(config Config) Option {
	return func(c *CurlInstaller) { c.installer.Config = config }
}

// WithLogger sets the logger receiving the installation messages.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *CurlInstaller) { c.installer.Log = log }
}

// WithMirrors replaces the base URLs the archives are downloaded from.
// Empty values keep the defaults.
func WithMirrors(curlBaseURL, nghttp2BaseURL string) Option {
	return func(c *CurlInstaller) {
		c.installer.CurlBaseURL = curlBaseURL
		c.installer.NGHTTP2BaseURL = nghttp2BaseURL
	}
}

// WithTargets sets the directories, below the root, the archives are
// extracted to. Empty values keep DefaultCurlTarget and DefaultNGHTTP2Target.
func WithTargets(curlTarget, nghttp2Target string) Option {
	return func(c *CurlInstaller) {
		c.curlTarget = curlTarget
		c.nghttp2Target = nghttp2Target
	}
}

// KeepArchives leaves the downloaded archives in the root directory.
func KeepArchives() Option {
	return func(c *CurlInstaller) { c.keepArchives = true }
}

// NewCurlInstaller returns a CurlInstaller working below root. An empty
// nghttp2Version selects DefaultNGHTTP2Version.
func NewCurlInstaller(root, curlVersion, nghttp2Version string, opts ...Option) *CurlInstaller {
	if nghttp2Version == "" {
		nghttp2Version = DefaultNGHTTP2Version
	}
	c := &CurlInstaller{
		CurlVersion:    curlVersion,
		NGHTTP2Version: nghttp2Version,
		installer:      NewInstaller(root, Config{}, nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Install downloads and extracts curl if CurlPath is not set yet.
func (c *CurlInstaller) Install(ctx context.Context) error {
	if c.CurlPath != "" {
		return nil
	}
	path, err := c.installer.InstallCurl(ctx, c.CurlVersion, c.curlTarget, !c.keepArchives)
	if err != nil {
		return err
	}
	c.CurlPath = path
	return nil
}

// InstallNGHTTP2 downloads and extracts nghttp2 if NGHTTP2Path is not set yet.
func (c *CurlInstaller) InstallNGHTTP2(ctx context.Context) error {
	if c.NGHTTP2Path != "" {
		return nil
	}
	path, err := c.installer.InstallNGHTTP2(ctx, c.NGHTTP2Version, c.nghttp2Target, !c.keepArchives)
	if err != nil {
		return err
	}
	c.NGHTTP2Path = path
	return nil
}

// CreateCompilationList installs curl if needed and adds to ext the include
// directories, sources and macros required by flags. With HTTP2 nghttp2 is
// installed as well; it is linked separately so nothing is added for it.
func (c *CurlInstaller) CreateCompilationList(ctx context.Context, ext BuildDescription, flags InstallFlags) error {
	if err := flags.Validate(); err != nil {
		return err
	}
	if err := c.Install(ctx); err != nil {
		return err
	}

	// curl includes its private headers relative to lib.
	lib := filepath.Join(c.CurlPath, "lib")
	ext.AddIncludeDir(filepath.Join(c.CurlPath, "include"))
	ext.AddIncludeDir(lib)

	ext.AddSources(joinAll(lib, BaselineSources)...)

	if flags.Has(NTLM) {
		ext.AddSources(joinAll(lib, NTLMSources)...)
	} else {
		ext.DefineMacro("CURL_DISABLE_NTLM", nil)
	}

	if flags.Has(HTTP2) {
		if err := c.InstallNGHTTP2(ctx); err != nil {
			return err
		}
	}

	if flags.Has(SPNEGO) {
		ext.AddSources(joinAll(lib, SPNEGOSources)...)
		ext.DefineMacro("USE_SPNEGO", nil)
	}

	c.installer.logger().WithField("flags", flags).Debugf("compilation list created for curl %s", c.CurlVersion)
	return nil
}

// SourceList returns the sources, relative to curl's lib directory, that
// CreateCompilationList adds for flags.
func SourceList(flags InstallFlags) []string {
	list := append([]string(nil), BaselineSources...)
	if flags.Has(NTLM) {
		list = append(list, NTLMSources...)
	}
	if flags.Has(SPNEGO) {
		list = append(list, SPNEGOSources...)
	}
	return list
}

func joinAll(dir string, files []string) []string {
	res := make([]string, len(files))
	for i, f := range files {
		res[i] = filepath.Join(dir, filepath.FromSlash(f))
	}
	return res
}
