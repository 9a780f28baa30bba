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
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harsh-app/harsh/internal/httpclient"
	"github.com/harsh-app/harsh/internal/logger"
	"github.com/harsh-app/harsh/pkg/config"
	"github.com/harsh-app/harsh/pkg/loadtest"
)

const (
	loadtestTargetKey         = "loadtest.target"
	loadtestVUsKey            = "loadtest.vus"
	loadtestDurationKey       = "loadtest.duration"
	loadtestSleepKey          = "loadtest.sleep"
	loadtestGracefulStopKey   = "loadtest.gracefulStop"
	loadtestTimeoutKey        = "loadtest.timeout"
	loadtestConfigKey         = "loadtest.config"
	loadtestSummaryExportKey  = "loadtest.summaryExport"
	loadtestMetricsAddressKey = "loadtest.metricsAddress"
)

// optionKeys maps config keys to the option names of a load test config file.
// Explicitly set flags and environment variables override the file.
var optionKeys = map[string]string{
	loadtestTargetKey:       "target",
	loadtestVUsKey:          "vus",
	loadtestDurationKey:     "duration",
	loadtestSleepKey:        "sleep",
	loadtestGracefulStopKey: "gracefulStop",
	loadtestTimeoutKey:      "timeout",
}

// NewCmdLoadtest creates a new loadtest command
func NewCmdLoadtest() *cobra.Command {
	defaults := loadtest.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "loadtest",
		Short: "Run the load generator against a target",
		Long: "Virtual users request the target in a loop, check for status 200 and sleep between iterations.\n" +
			"Once the duration elapsed the thresholds are evaluated. The command exits with code 99 if any threshold failed.",
		Args: cobra.NoArgs,
		RunE: runLoadtest,
	}

	NewFlag(loadtestTargetKey, "target").StringP("t").Bind(cmd, defaults.Target, "The URL to request. Defaults to the TARGET_URL environment variable if set")
	NewFlag(loadtestVUsKey, "vus").Int().Bind(cmd, defaults.VUs, "The amount of concurrently running virtual users")
	NewFlag(loadtestDurationKey, "duration").Duration().Bind(cmd, defaults.Duration, "The duration after which no new iteration is started")
	NewFlag(loadtestSleepKey, "sleep").Duration().Bind(cmd, defaults.Sleep, "The pause of a virtual user between two iterations")
	NewFlag(loadtestGracefulStopKey, "gracefulStop").Duration().Bind(cmd, defaults.GracefulStop,
		"The time in-flight requests may take to complete after the duration elapsed")
	NewFlag(loadtestTimeoutKey, "timeout").Duration().Bind(cmd, defaults.Timeout, "The timeout of a single request")
	NewFlag(loadtestConfigKey, "config").StringP("c").Bind(cmd, "", "A yaml file with load test options and thresholds")
	NewFlag(loadtestSummaryExportKey, "summaryExport").String().Bind(cmd, "", "A file the machine readable summary is written to, e.g. artifacts/k6.json")
	NewFlag(loadtestMetricsAddressKey, "metricsAddress").String().Bind(cmd, "",
		"The address prometheus metrics are served on during the run. Metrics are disabled if empty")

	return cmd
}

// runLoadtest is the entry point to run the load generator
func runLoadtest(cmd *cobra.Command, _ []string) error {
	ctx, cancel := logger.NewContextWithLogger(cmd.Context())
	defer cancel()
	log := logger.FromContext(ctx)

	opts, err := loadOptions(ctx)
	if err != nil {
		log.Error("Error while loading the load test options", "error", err)
		return err
	}

	runner, err := loadtest.New(opts)
	if err != nil {
		log.Error("Error while validating the load test options", "error", err)
		return err
	}

	if addr := viper.GetString(loadtestMetricsAddressKey); addr != "" {
		stop, err := startMetrics(ctx, addr, runner.GetMetricCollectors()...)
		if err != nil {
			log.Error("Failed to start metrics", "error", err)
			return err
		}
		defer func() {
			if err := stop(); err != nil {
				log.Error("Failed to stop metrics", "error", err)
			}
		}()
	}

	ctx = httpclient.IntoContext(ctx, &http.Client{})
	summary, runErr := runner.Run(ctx)
	if summary == nil {
		return runErr
	}

	if err := summary.Write(cmd.OutOrStdout()); err != nil {
		log.Error("Failed to write summary", "error", err)
	}
	if path := viper.GetString(loadtestSummaryExportKey); path != "" {
		if err := summary.WriteExport(path); err != nil {
			log.Error("Failed to export summary", "path", path, "error", err)
			if runErr == nil {
				return err
			}
		} else {
			log.Info("Exported summary", "path", path)
		}
	}
	return runErr
}

// loadOptions merges the defaults, the config file and all explicitly set flags
// and environment variables into the load test options.
func loadOptions(ctx context.Context) (loadtest.Options, error) {
	raw := map[string]any{}
	if path := viper.GetString(loadtestConfigKey); path != "" {
		var err error
		raw, err = config.NewFileLoader(path).Load(ctx)
		if err != nil {
			return loadtest.Options{}, err
		}
	}

	for key, name := range optionKeys {
		if viper.IsSet(key) {
			raw[name] = viper.Get(key)
		}
	}

	opts, err := loadtest.DecodeOptions(raw)
	if err != nil {
		return loadtest.Options{}, fmt.Errorf("invalid load test options: %w", err)
	}
	return opts, nil
}
