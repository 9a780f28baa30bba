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
	"math"
	"slices"
	"sync"
	"time"
)

// trend collects duration samples in milliseconds
type trend struct {
	values []float64
}

func (t *trend) add(d time.Duration) {
	t.values = append(t.values, float64(d)/float64(time.Millisecond))
}

// stats aggregates the collected samples
func (t *trend) stats() TrendStats {
	if len(t.values) == 0 {
		return TrendStats{}
	}
	sorted := slices.Clone(t.values)
	slices.Sort(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	return TrendStats{
		Avg: sum / float64(len(sorted)),
		Min: sorted[0],
		Med: percentile(sorted, 50),
		Max: sorted[len(sorted)-1],
		P90: percentile(sorted, 90),
		P95: percentile(sorted, 95),
	}
}

// aggregate returns the value of the trend for the given threshold aggregation
func (t *trend) aggregate(th Threshold) float64 {
	if th.IsPercentile() {
		if len(t.values) == 0 {
			return 0
		}
		sorted := slices.Clone(t.values)
		slices.Sort(sorted)
		return percentile(sorted, th.Percentile)
	}

	s := t.stats()
	switch th.Aggregation {
	case "avg":
		return s.Avg
	case "min":
		return s.Min
	case "max":
		return s.Max
	case "med":
		return s.Med
	default:
		return 0
	}
}

// percentile returns the p-th percentile of the sorted values,
// interpolating linearly between the two closest ranks.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	switch {
	case n == 0:
		return 0
	case p <= 0:
		return sorted[0]
	case p >= 100:
		return sorted[n-1]
	}

	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	if lo+1 >= n {
		return sorted[lo]
	}
	return sorted[lo] + (rank-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// rate collects boolean samples
type rate struct {
	passes int64
	total  int64
}

func (r *rate) add(ok bool) {
	r.total++
	if ok {
		r.passes++
	}
}

// value returns the share of true samples, 0 if there are none
func (r *rate) value() float64 {
	if r.total == 0 {
		return 0
	}
	return float64(r.passes) / float64(r.total)
}

// requestSample is the outcome of a single request
type requestSample struct {
	status   int
	duration time.Duration
	received int64
	failed   bool
	err      error
}

// samples aggregates the samples of all virtual users
type samples struct {
	mu           sync.Mutex
	reqDuration  trend
	iterDuration trend
	reqFailed    rate
	checks       rate
	checkResults map[string]*rate
	checkOrder   []string
	reqs         int64
	iterations   int64
	interrupted  int64
	received     int64
}

func newSamples() *samples {
	return &samples{
		checkResults: map[string]*rate{},
	}
}

func (s *samples) addRequest(r requestSample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reqs++
	s.reqFailed.add(r.failed)
	s.received += r.received
	// only requests that got a response have a meaningful duration
	if r.err == nil {
		s.reqDuration.add(r.duration)
	}
}

func (s *samples) addCheck(name string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks.add(ok)
	r, found := s.checkResults[name]
	if !found {
		r = &rate{}
		s.checkResults[name] = r
		s.checkOrder = append(s.checkOrder, name)
	}
	r.add(ok)
}

func (s *samples) addIteration(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.iterations++
	s.iterDuration.add(d)
}

func (s *samples) addInterrupted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interrupted++
}

// value returns the aggregated value of the metric for the threshold
func (s *samples) value(metric string, th Threshold, elapsed time.Duration) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch metric {
	case MetricHTTPReqDuration:
		return s.reqDuration.aggregate(th)
	case MetricIterationDuration:
		return s.iterDuration.aggregate(th)
	case MetricHTTPReqFailed:
		return s.reqFailed.value()
	case MetricChecks:
		return s.checks.value()
	case MetricHTTPReqs:
		return counterValue(s.reqs, th, elapsed)
	case MetricIterations:
		return counterValue(s.iterations, th, elapsed)
	default:
		return 0
	}
}

// counterValue returns the count or the count per second
func counterValue(count int64, th Threshold, elapsed time.Duration) float64 {
	if th.Aggregation == "rate" {
		return perSecond(count, elapsed)
	}
	return float64(count)
}

func perSecond(count int64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(count) / elapsed.Seconds()
}
