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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPercentile(t *testing.T) {
	sorted := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

	tests := []struct {
		name string
		data []float64
		p    float64
		want float64
	}{
		{name: "empty", data: nil, p: 95, want: 0},
		{name: "single value", data: []float64{42}, p: 95, want: 42},
		{name: "min", data: sorted, p: 0, want: 10},
		{name: "max", data: sorted, p: 100, want: 100},
		{name: "median interpolated", data: sorted, p: 50, want: 55},
		{name: "p95 interpolated", data: sorted, p: 95, want: 95.5},
		{name: "p90", data: sorted, p: 90, want: 91},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, percentile(tt.data, tt.p), 1e-9)
		})
	}
}

func TestTrend_stats(t *testing.T) {
	tr := trend{}
	assert.Equal(t, TrendStats{}, tr.stats())

	for _, ms := range []int{40, 10, 30, 20} {
		tr.add(time.Duration(ms) * time.Millisecond)
	}

	s := tr.stats()
	assert.InDelta(t, 25, s.Avg, 1e-9)
	assert.InDelta(t, 10, s.Min, 1e-9)
	assert.InDelta(t, 40, s.Max, 1e-9)
	assert.InDelta(t, 25, s.Med, 1e-9)
	// samples must stay in insertion order
	assert.Equal(t, []float64{40, 10, 30, 20}, tr.values)
}

func TestSamples_value(t *testing.T) {
	s := newSamples()
	s.addRequest(requestSample{status: 200, duration: 100 * time.Millisecond, received: 10})
	s.addRequest(requestSample{status: 200, duration: 300 * time.Millisecond, received: 10})
	s.addRequest(requestSample{status: 500, duration: 200 * time.Millisecond, failed: true})
	s.addRequest(requestSample{err: assert.AnError, failed: true})
	s.addCheck(CheckStatusOK, true)
	s.addCheck(CheckStatusOK, false)
	s.addIteration(time.Second)
	s.addIteration(time.Second)
	s.addInterrupted()

	mustParse := func(expr string) Threshold {
		th, err := ParseThreshold(expr)
		if err != nil {
			t.Fatalf("ParseThreshold() error = %v", err)
		}
		return th
	}

	tests := []struct {
		metric string
		expr   string
		want   float64
	}{
		// transport errors carry no duration
		{metric: MetricHTTPReqDuration, expr: "avg<1", want: 200},
		{metric: MetricHTTPReqDuration, expr: "max<1", want: 300},
		{metric: MetricHTTPReqDuration, expr: "p(50)<1", want: 200},
		{metric: MetricHTTPReqFailed, expr: "rate<1", want: 0.5},
		{metric: MetricChecks, expr: "rate<1", want: 0.5},
		{metric: MetricHTTPReqs, expr: "count<1", want: 4},
		{metric: MetricHTTPReqs, expr: "rate<1", want: 2},
		{metric: MetricIterations, expr: "count<1", want: 2},
		{metric: MetricIterationDuration, expr: "med<1", want: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.metric+"/"+tt.expr, func(t *testing.T) {
			assert.InDelta(t, tt.want, s.value(tt.metric, mustParse(tt.expr), 2*time.Second), 1e-9)
		})
	}

	assert.Equal(t, int64(20), s.received)
	assert.Equal(t, int64(1), s.interrupted)
}
