//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package internal

import (
	"fmt"

	"github.com/google/renameio/v2/maybe"
	"github.com/spf13/cobra"
	"go.bug.st/curlsrc"
)

func newFetchCommand(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "fetch URL",
		Short: "Download a URL",
		Long: `Fetch downloads a URL the same way the source archives are downloaded
and writes it to a file, or to the standard output if no file is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := a.downloadConfig(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a.log.Infof("starting download of %s", args[0])
			data, err := curlsrc.FetchWithConfigAndContext(cmd.Context(), args[0], config)
			if err != nil {
				return err
			}
			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := maybe.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			a.log.Infof("saved %d bytes to %s", len(data), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write")
	return cmd
}
