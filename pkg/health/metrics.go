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

package health

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics contains the metric collectors of the health service
type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// newMetrics initializes metric collectors of the health service
func newMetrics() metrics {
	return metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "harsh_http_requests_total",
				Help: "Count of requests answered by the health route",
			},
			[]string{
				"code",
				"method",
			},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "harsh_http_request_duration_seconds",
				Help:    "Duration of requests answered by the health route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{
				"code",
				"method",
			},
		),
	}
}
