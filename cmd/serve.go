// harsh
// (C) 2026, The harsh-app authors
//
// The harsh-app authors and all other contributors /
// copyright owners license this file to you under the Apache
// License, Version 2.0 (the "License"); you may not use this
// file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harsh-app/harsh/internal/logger"
	"github.com/harsh-app/harsh/pkg/config"
	"github.com/harsh-app/harsh/pkg/health"
)

const (
	serviceAddressKey        = "service.address"
	serviceMetricsAddressKey = "service.metricsAddress"
)

// NewCmdServe creates a new serve command
func NewCmdServe() *cobra.Command {
	flagMapping := config.ServeFlagsNameMapping{
		ApiAddress:     "address",
		MetricsAddress: "metricsAddress",
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the health service",
		Long:  `The health service answers GET / with {"ok":true,"service":"harsh-app","ts":<epoch ms>} until it is signalled to stop`,
		Args:  cobra.NoArgs,
		RunE:  runServe(&flagMapping),
	}

	NewFlag(serviceAddressKey, flagMapping.ApiAddress).String().Bind(cmd, ":8080", "The address the health service is listening on")
	NewFlag(serviceMetricsAddressKey, flagMapping.MetricsAddress).String().Bind(cmd, "",
		"The address prometheus metrics are served on. Metrics are disabled if empty")

	return cmd
}

// runServe is the entry point to start the health service
func runServe(fm *config.ServeFlagsNameMapping) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		ctx, cancel := logger.NewContextWithLogger(cmd.Context())
		defer cancel()
		log := logger.FromContext(ctx)

		cfg := config.NewConfig()
		cfg.SetApiAddress(viper.GetString(serviceAddressKey))
		cfg.SetMetricsAddress(viper.GetString(serviceMetricsAddressKey))

		if err := cfg.Validate(ctx, fm); err != nil {
			log.Error("Error while validating the config", "error", err)
			return err
		}

		svc := health.New(cfg.Api)
		if cfg.HasMetrics() {
			stop, err := startMetrics(ctx, cfg.Metrics.ListeningAddress, svc.GetMetricCollectors()...)
			if err != nil {
				log.Error("Failed to start metrics", "error", err)
				return err
			}
			defer func() {
				err = errors.Join(err, stop())
			}()
		}

		if err := svc.Run(ctx); err != nil {
			log.Error("Health service failed", "error", err)
			return err
		}
		return nil
	}
}
