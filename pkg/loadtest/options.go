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

package loadtest

import (
	"fmt"
	"net/url"
	"time"

	"github.com/harsh-app/harsh/internal/helper"
)

// DefaultTarget is requested if no target is configured
const DefaultTarget = "http://localhost:8080/"

const (
	defaultVUs          = 5
	defaultDuration     = 10 * time.Second
	defaultSleep        = time.Second
	defaultGracefulStop = 30 * time.Second
	defaultTimeout      = 60 * time.Second
)

// Options configures a load test run
type Options struct {
	// Target is the URL every iteration requests
	Target string `json:"target" yaml:"target" mapstructure:"target"`
	// VUs is the amount of concurrently running virtual users
	VUs int `json:"vus" yaml:"vus" mapstructure:"vus"`
	// Duration is the total run time after which no new iteration is started
	Duration time.Duration `json:"duration" yaml:"duration" mapstructure:"duration"`
	// Sleep is the pause of a virtual user between two iterations
	Sleep time.Duration `json:"sleep" yaml:"sleep" mapstructure:"sleep"`
	// GracefulStop is the time in-flight requests may take to complete after the duration elapsed
	GracefulStop time.Duration `json:"gracefulStop" yaml:"gracefulStop" mapstructure:"gracefulStop"`
	// Timeout is the timeout of a single request
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
	// Thresholds maps metric names to threshold expressions
	Thresholds map[string][]string `json:"thresholds" yaml:"thresholds" mapstructure:"thresholds"`
}

// DefaultOptions returns the options of the default run:
// 5 virtual users for 10 seconds with a p95 latency below 500ms
// and a failure rate below 5%.
func DefaultOptions() Options {
	return Options{
		Target:       DefaultTarget,
		VUs:          defaultVUs,
		Duration:     defaultDuration,
		Sleep:        defaultSleep,
		GracefulStop: defaultGracefulStop,
		Timeout:      defaultTimeout,
		Thresholds: map[string][]string{
			MetricHTTPReqDuration: {"p(95)<500"},
			MetricHTTPReqFailed:   {"rate<0.05"},
		},
	}
}

// DecodeOptions decodes raw options, e.g. read from a yaml file, on top of the defaults.
// Thresholds given in the raw options replace the default thresholds of the same metric.
func DecodeOptions(raw map[string]any) (Options, error) {
	opts, err := helper.Decode(raw, DefaultOptions())
	if err != nil {
		return Options{}, fmt.Errorf("failed to decode load test options: %w", err)
	}
	return opts, nil
}

// Validate checks if the options are valid
func (o *Options) Validate() error {
	u, err := url.Parse(o.Target)
	if err != nil {
		return ErrInvalidConfig{Field: "target", Reason: fmt.Sprintf("invalid target URL: %v", err)}
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return ErrInvalidConfig{Field: "target", Reason: "target URL must start with 'https://' or 'http://'"}
	}
	if u.Host == "" {
		return ErrInvalidConfig{Field: "target", Reason: "target URL must contain a host"}
	}

	if o.VUs < 1 {
		return ErrInvalidConfig{Field: "vus", Reason: "at least one virtual user is required"}
	}
	if o.Duration <= 0 {
		return ErrInvalidConfig{Field: "duration", Reason: "duration must be positive"}
	}
	if o.Sleep < 0 {
		return ErrInvalidConfig{Field: "sleep", Reason: "sleep must not be negative"}
	}
	if o.GracefulStop < 0 {
		return ErrInvalidConfig{Field: "gracefulStop", Reason: "graceful stop must not be negative"}
	}
	if o.Timeout < 0 {
		return ErrInvalidConfig{Field: "timeout", Reason: "timeout must not be negative"}
	}

	if _, err := parseThresholds(o.Thresholds); err != nil {
		return err
	}
	return nil
}
