// Copyright 2024 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chainfs/fstree/cfg"
	"github.com/chainfs/fstree/internal/logger"
)

var (
	cfgFile       string
	stateFile     string
	identityFile  string
	bindErr       error
	configFileErr error
	unmarshalErr  error
	TreeConfig    cfg.Config
)

var rootCmd = &cobra.Command{
	Use:   "fstreectl",
	Short: "Operate a single-writer hierarchical file tree",
	Long: `fstreectl drives a fsstate tree: a hierarchical namespace of files and
directories, each object addressed by a monotonically increasing id, owned
by a single signing authority.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if bindErr != nil {
			return bindErr
		}
		if configFileErr != nil {
			return configFileErr
		}
		if unmarshalErr != nil {
			return unmarshalErr
		}
		if err := cfg.ValidateConfig(&TreeConfig); err != nil {
			return err
		}
		if err := logger.InitLogFile(TreeConfig.Logging); err != nil {
			return fmt.Errorf("initializing log file: %w", err)
		}
		logger.SetLogFormat(string(TreeConfig.Logging.Format))
		return nil
	},
}

// Execute runs the fstreectl command tree, writing any top-level error to
// stderr and exiting non-zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&stateFile, "state-file", "tree.yaml", "path to the tree's persisted state")
	rootCmd.PersistentFlags().StringVar(&identityFile, "identity-file", "identity.key", "path to the authority's signing key")
	bindErr = cfg.BindFlags(rootCmd.PersistentFlags())
}

func initConfig() {
	TreeConfig = cfg.GetDefaultConfig()

	// Match viper's hyphenated keys (the bound flags and the config file)
	// against Config's yaml tags instead of its Go field names.
	useYAMLTags := func(c *mapstructure.DecoderConfig) { c.TagName = "yaml" }

	if cfgFile == "" {
		unmarshalErr = viper.Unmarshal(&TreeConfig, viper.DecodeHook(cfg.DecodeHook()), useYAMLTags)
		return
	}

	resolved, err := filepath.Abs(cfgFile)
	if err != nil {
		configFileErr = fmt.Errorf("resolving config file path: %w", err)
		return
	}
	viper.SetConfigFile(resolved)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		configFileErr = fmt.Errorf("reading config file: %w", err)
		return
	}
	unmarshalErr = viper.Unmarshal(&TreeConfig, viper.DecodeHook(cfg.DecodeHook()), useYAMLTags)
}
