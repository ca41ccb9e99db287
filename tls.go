//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package curlsrc

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"os"
)

// httpClient returns the client to use for a single download and the
// function that releases its connections. A client provided in the
// configuration is used as is and never released.
func (c Config) httpClient() (*http.Client, func(), error) {
	if c.HttpClient != nil {
		return c.HttpClient, func() {}, nil
	}
	roots, err := c.rootCAs()
	if err != nil {
		return nil, nil, err
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		RootCAs:    roots,
		MinVersion: tls.VersionTLS12,
	}
	return &http.Client{Transport: transport}, transport.CloseIdleConnections, nil
}

func (c Config) rootCAs() (*x509.CertPool, error) {
	if c.RootCAs != nil {
		return c.RootCAs, nil
	}
	if c.CABundle == "" {
		return x509.SystemCertPool()
	}
	pem, err := os.ReadFile(c.CABundle)
	if err != nil {
		return nil, fmt.Errorf("reading CA bundle: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, errors.New("reading CA bundle: no certificates found in " + c.CABundle)
	}
	return pool, nil
}
