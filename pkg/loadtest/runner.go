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
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/harsh-app/harsh/internal/httpclient"
	"github.com/harsh-app/harsh/internal/logger"
)

// Runner runs a load test against a single target.
// A Runner is meant to run once; samples of consecutive runs accumulate.
type Runner struct {
	id         string
	opts       Options
	thresholds map[string][]Threshold
	samples    *samples
	metrics    metrics
}

// New validates the options and creates a new Runner
func New(opts Options) (*Runner, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	thresholds, err := parseThresholds(opts.Thresholds)
	if err != nil {
		return nil, err
	}

	return &Runner{
		id:         uuid.NewString(),
		opts:       opts,
		thresholds: thresholds,
		samples:    newSamples(),
		metrics:    newMetrics(),
	}, nil
}

// ID returns the id of the run
func (r *Runner) ID() string {
	return r.id
}

// Run starts all virtual users and blocks until the configured duration elapsed
// and all in-flight requests completed or the graceful stop elapsed.
// The thresholds are evaluated once the run finished.
// ErrThresholdsCrossed is returned together with the summary if any threshold failed.
// If ctx is canceled before, the summary of the partial run is returned with the cancellation error.
//
// The http.Client is taken from the context.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	log := logger.FromContext(ctx).With("run", r.id)
	ctx = logger.IntoContext(ctx, log)
	client := httpclient.FromContext(ctx)

	log.Info("Starting load test",
		"target", r.opts.Target,
		"vus", r.opts.VUs,
		"duration", r.opts.Duration.String(),
	)

	start := time.Now()
	runCtx, cancelRun := context.WithTimeoutCause(ctx, r.opts.Duration, errDurationElapsed)
	defer cancelRun()
	reqCtx, cancelReq := context.WithTimeout(ctx, r.opts.Duration+r.opts.GracefulStop)
	defer cancelReq()

	var g errgroup.Group
	for i := 1; i <= r.opts.VUs; i++ {
		id := i
		g.Go(func() error {
			return r.runVU(runCtx, reqCtx, client, id)
		})
	}
	runErr := g.Wait()

	summary := r.summarize(time.Since(start))
	log.Info("Load test finished",
		"requests", summary.Requests,
		"failedRequests", summary.FailedRequests,
		"interrupted", summary.Interrupted,
		"elapsed", summary.Elapsed.String(),
		"passed", summary.Passed(),
	)

	if runErr != nil {
		return summary, fmt.Errorf("load test aborted: %w", runErr)
	}
	if !summary.Passed() {
		for _, th := range summary.Thresholds {
			if !th.Passed {
				log.Warn("Threshold crossed", "metric", th.Metric, "threshold", th.Expression, "value", th.Value)
			}
		}
		return summary, ErrThresholdsCrossed
	}
	return summary, nil
}

// summarize aggregates the collected samples and evaluates the thresholds
func (r *Runner) summarize(elapsed time.Duration) *Summary {
	s := r.samples
	s.mu.Lock()
	summary := &Summary{
		RunID:             r.id,
		Target:            r.opts.Target,
		VUs:               r.opts.VUs,
		Duration:          r.opts.Duration,
		Elapsed:           elapsed,
		Requests:          s.reqs,
		FailedRequests:    s.reqFailed.passes,
		Iterations:        s.iterations,
		Interrupted:       s.interrupted,
		DataReceived:      s.received,
		RequestDuration:   s.reqDuration.stats(),
		IterationDuration: s.iterDuration.stats(),
	}
	for _, name := range s.checkOrder {
		res := s.checkResults[name]
		summary.Checks = append(summary.Checks, CheckResult{
			Name:   name,
			Passes: res.passes,
			Fails:  res.total - res.passes,
		})
	}
	s.mu.Unlock()

	metricNames := make([]string, 0, len(r.thresholds))
	for metric := range r.thresholds {
		metricNames = append(metricNames, metric)
	}
	sort.Strings(metricNames)

	for _, metric := range metricNames {
		for _, th := range r.thresholds[metric] {
			v := s.value(metric, th, elapsed)
			summary.Thresholds = append(summary.Thresholds, ThresholdResult{
				Metric:     metric,
				Expression: th.Source,
				Value:      v,
				Passed:     th.Evaluate(v),
			})
		}
	}
	return summary
}

// GetMetricCollectors returns all metric collectors of the run
func (r *Runner) GetMetricCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		r.metrics.reqDuration,
		r.metrics.reqs,
		r.metrics.checks,
		r.metrics.iterations,
	}
}
