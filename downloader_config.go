//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package curlsrc

import (
	"crypto/x509"
	"net/http"
	"sync"
	"time"
)

// Config contains the configuration for the downloader
type Config struct {
	// HttpClient to use to perform HTTP requests. If nil a dedicated client
	// verifying TLS certificates against RootCAs (or CABundle, or the
	// system roots) is created for each download.
	HttpClient *http.Client
	// RootCAs is the pool of trusted roots used by the dedicated client.
	RootCAs *x509.CertPool
	// CABundle is the path of a PEM file with the trusted roots, used when
	// RootCAs is nil.
	CABundle string
	// ExtraHeaders to add to the HTTP requests. A User-Agent set here
	// replaces the random one.
	ExtraHeaders map[string]string
	// AcceptFunc is an optional function that will be called
	// when the HTTP response is received, before reading the body.
	// If the function returns an error, the download is aborted.
	AcceptFunc func(resp *http.Response) error
	// InactivityTimeout is the duration after which, if no data is received,
	// the download is aborted. If set to 0, no timeout is applied.
	InactivityTimeout time.Duration
	// Progress reports the transfer. If nil no progress is reported.
	Progress Progress
	// PollFunction, if set, is called every PollInterval with the number of
	// bytes received so far and the size of the download (-1 if unknown).
	PollFunction func(current, size int64)
	// PollInterval is the interval between PollFunction calls.
	PollInterval time.Duration
}

var defaultConfig Config = Config{}
var defaultConfigLock sync.Mutex

// SetDefaultConfig sets the configuration that will be used by the Fetch
// function.
func SetDefaultConfig(newConfig Config) {
	defaultConfigLock.Lock()
	defer defaultConfigLock.Unlock()
	defaultConfig = newConfig
}

// GetDefaultConfig returns a copy of the default configuration. The default
// configuration can be changed using the SetDefaultConfig function.
func GetDefaultConfig() Config {
	defaultConfigLock.Lock()
	defer defaultConfigLock.Unlock()

	// deep copy struct
	return defaultConfig
}

func (c Config) pollInterval() time.Duration {
	if c.PollInterval <= 0 {
		return 250 * time.Millisecond
	}
	return c.PollInterval
}
