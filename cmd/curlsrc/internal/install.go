//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package internal

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newInstallCommand(a *app) *cobra.Command {
	var nghttp2 bool
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Download and extract the curl sources",
		Long: `Install downloads the curl release archive and extracts it below the root
directory. With --nghttp2 the nghttp2 sources are installed as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.curlInstaller(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if err := c.Install(cmd.Context()); err != nil {
				return err
			}
			ok := color.New(color.FgGreen)
			ok.Fprintf(cmd.OutOrStdout(), "curl %s: %s\n", c.CurlVersion, c.CurlPath)
			if nghttp2 {
				if err := c.InstallNGHTTP2(cmd.Context()); err != nil {
					return err
				}
				ok.Fprintf(cmd.OutOrStdout(), "nghttp2 %s: %s\n", c.NGHTTP2Version, c.NGHTTP2Path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&nghttp2, "nghttp2", false, "install nghttp2 too")
	return cmd
}
