//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package internal

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.bug.st/curlsrc"
	"golang.org/x/term"
)

// downloadConfig builds the download configuration from the settings.
// Progress is drawn on out.
func (a *app) downloadConfig(out io.Writer) (curlsrc.Config, error) {
	progress, err := a.progress(out)
	if err != nil {
		return curlsrc.Config{}, err
	}
	return curlsrc.Config{
		CABundle:          a.v.GetString("ca-bundle"),
		InactivityTimeout: a.v.GetDuration("inactivity-timeout"),
		Progress:          progress,
	}, nil
}

func (a *app) progress(out io.Writer) (curlsrc.Progress, error) {
	mode := a.v.GetString("progress")
	if mode == "auto" {
		mode = "log"
		if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			mode = "bar"
		}
	}
	switch mode {
	case "bar":
		return curlsrc.NewBarProgress(out, 40), nil
	case "log":
		return curlsrc.NewLogProgress(a.log, 2*time.Second), nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("invalid progress mode %q", mode)
	}
}

// curlInstaller returns a CurlInstaller configured from the settings.
func (a *app) curlInstaller(out io.Writer) (*curlsrc.CurlInstaller, error) {
	config, err := a.downloadConfig(out)
	if err != nil {
		return nil, err
	}
	opts := []curlsrc.Option{
		curlsrc.WithConfig(config),
		curlsrc.WithLogger(a.log),
		curlsrc.WithMirrors(a.v.GetString("curl-mirror"), a.v.GetString("nghttp2-mirror")),
	}
	if a.v.GetBool("keep-archive") {
		opts = append(opts, curlsrc.KeepArchives())
	}
	return curlsrc.NewCurlInstaller(a.v.GetString("root"),
		a.v.GetString("curl-version"), a.v.GetString("nghttp2-version"), opts...), nil
}
