//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package internal

import (
	"errors"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.bug.st/curlsrc"
)

// app holds what the commands share: the configuration and the logger.
type app struct {
	cfgFile string
	v       *viper.Viper
	log     *logrus.Logger
}

// NewCommand returns the root command of curlsrc with all its subcommands.
func NewCommand() *cobra.Command {
	a := &app{v: viper.New(), log: newLogger(os.Stderr)}

	cmd := &cobra.Command{
		Use:   "curlsrc",
		Short: "Prepare the curl sources for a static build",
		Long: `curlsrc downloads the curl (and optionally nghttp2) source archives,
extracts them below a root directory and prints the sources, include
directories and macros needed to compile curl statically.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.log.SetOutput(cmd.ErrOrStderr())
			if err := a.initConfig(); err != nil {
				return err
			}
			if a.v.GetBool("verbose") {
				a.log.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.curlsrc.yaml)")
	flags.StringP("root", "r", ".", "directory holding the downloaded archives and sources")
	flags.String("curl-version", "8.12.1", "curl release to download")
	flags.String("nghttp2-version", curlsrc.DefaultNGHTTP2Version, "nghttp2 release to download")
	flags.String("curl-mirror", curlsrc.DefaultCurlBaseURL, "base URL of the curl archives")
	flags.String("nghttp2-mirror", curlsrc.DefaultNGHTTP2BaseURL, "base URL of the nghttp2 archives")
	flags.Bool("keep-archive", false, "keep the downloaded archives after extraction")
	flags.Duration("inactivity-timeout", 0, "abort a download not receiving data for this long (0 disables)")
	flags.String("ca-bundle", "", "PEM file with the trusted root certificates (default system roots)")
	flags.String("progress", "auto", "progress reporting: auto, bar, log or none")
	flags.BoolP("verbose", "v", false, "enable debug output")
	if err := a.v.BindPFlags(flags); err != nil {
		a.log.Fatalf("Failed to bind flags: %v", err)
	}

	cmd.AddCommand(newFetchCommand(a))
	cmd.AddCommand(newInstallCommand(a))
	cmd.AddCommand(newSourcesCommand(a))
	return cmd
}

// Execute runs the root command and exits with a non zero status on error.
func Execute() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		newLogger(os.Stderr).Error(err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func (a *app) initConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return err
		}
		a.v.AddConfigPath(home)
		a.v.SetConfigName(".curlsrc")
	}

	a.v.SetEnvPrefix("curlsrc")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return err
		}
		return nil
	}
	a.log.Debugf("using config file %s", a.v.ConfigFileUsed())
	return nil
}
