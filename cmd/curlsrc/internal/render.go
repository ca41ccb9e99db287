//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package internal

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	shellquote "github.com/kballard/go-shellquote"
	"go.bug.st/curlsrc"
	"gopkg.in/yaml.v3"
)

type renderer func(w io.Writer, ext *curlsrc.Extension) error

func newRenderer(format string) (renderer, error) {
	switch format {
	case "yaml":
		return func(w io.Writer, ext *curlsrc.Extension) error {
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(ext); err != nil {
				return err
			}
			return enc.Close()
		}, nil
	case "json":
		return func(w io.Writer, ext *curlsrc.Extension) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(ext)
		}, nil
	case "toml":
		return func(w io.Writer, ext *curlsrc.Extension) error {
			return toml.NewEncoder(w).Encode(ext)
		}, nil
	case "shell":
		return func(w io.Writer, ext *curlsrc.Extension) error {
			_, err := fmt.Fprintln(w, shellquote.Join(ext.CompilerArgs()...))
			return err
		}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
