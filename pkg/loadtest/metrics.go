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
	"github.com/prometheus/client_golang/prometheus"
)

// metrics contains the metric collectors of a load test run
type metrics struct {
	reqDuration *prometheus.HistogramVec
	reqs        *prometheus.CounterVec
	checks      *prometheus.CounterVec
	iterations  prometheus.Counter
}

// newMetrics initializes metric collectors of the load test
func newMetrics() metrics {
	return metrics{
		reqDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "harsh_loadtest_http_req_duration_seconds",
				Help:    "Duration of requests issued by the load test",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{
				"status",
			},
		),
		reqs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "harsh_loadtest_http_reqs_total",
				Help: "Count of requests issued by the load test",
			},
			[]string{
				"status",
				"failed",
			},
		),
		checks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "harsh_loadtest_checks_total",
				Help: "Count of check results",
			},
			[]string{
				"check",
				"result",
			},
		),
		iterations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "harsh_loadtest_iterations_total",
				Help: "Count of completed iterations",
			},
		),
	}
}
