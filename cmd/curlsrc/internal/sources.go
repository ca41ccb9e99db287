//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package internal

import (
	"github.com/spf13/cobra"
	"go.bug.st/curlsrc"
)

func newSourcesCommand(a *app) *cobra.Command {
	var (
		flagList string
		format   string
		name     string
	)
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Print what has to be compiled to build curl statically",
		Long: `Sources installs curl if needed and prints the include directories,
sources and macros of the compilation unit for the selected features.

Features (--flags) are a comma separated list of: ntlm, http2, spnego.
http2 installs nghttp2, which has to be linked separately.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := curlsrc.ParseInstallFlags(flagList)
			if err != nil {
				return err
			}
			r, err := newRenderer(format)
			if err != nil {
				return err
			}
			c, err := a.curlInstaller(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ext := &curlsrc.Extension{Name: name}
			if err := c.CreateCompilationList(cmd.Context(), ext, flags); err != nil {
				return err
			}
			return r(cmd.OutOrStdout(), ext)
		},
	}
	cmd.Flags().StringVar(&flagList, "flags", "", "features to compile: ntlm, http2, spnego")
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml, json, toml or shell")
	cmd.Flags().StringVar(&name, "name", "", "extension name written in the output")
	return cmd
}
