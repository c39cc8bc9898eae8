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
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/chainfs/fstree/internal/logger"
	"github.com/chainfs/fstree/internal/metrics"
)

// serveCmd registers the operation instruments in its own process and
// serves them; it runs no engine, and operations run by other fstreectl
// invocations are not recorded in what it serves.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the Prometheus metrics endpoint for the operation instruments",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !TreeConfig.Metrics.Enabled {
			return fmt.Errorf("metrics are disabled; set metrics.enabled: true in the config file or pass --metrics-enabled")
		}

		provider, err := metrics.NewProvider()
		if err != nil {
			return err
		}
		defer provider.Shutdown(context.Background())

		if _, err := metrics.NewOpsHandle(provider); err != nil {
			return err
		}

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())

		logger.Infof("serving metrics on %s", TreeConfig.Metrics.ListenAddr)
		return http.ListenAndServe(TreeConfig.Metrics.ListenAddr, mux)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
