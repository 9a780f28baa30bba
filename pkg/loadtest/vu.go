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
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/harsh-app/harsh/internal/logger"
)

// CheckStatusOK is the name of the check every iteration runs
const CheckStatusOK = "status is 200"

const userAgent = "harsh-loadtest"

// runVU runs iterations of a single virtual user until ctx is done.
// Requests use reqCtx, so they may outlive ctx until the graceful stop elapsed.
// It returns nil once the test duration elapsed and the cause of ctx otherwise.
func (r *Runner) runVU(ctx, reqCtx context.Context, client *http.Client, id int) error {
	log := logger.FromContext(ctx).With("vu", id)
	log.Debug("Virtual user started")

	for ctx.Err() == nil {
		r.iterate(reqCtx, client)
		if !sleep(ctx, r.opts.Sleep) {
			break
		}
	}
	log.Debug("Virtual user stopped")

	if cause := context.Cause(ctx); !errors.Is(cause, errDurationElapsed) {
		return cause
	}
	return nil
}

// iterate runs a single iteration: request the target and check the status code
func (r *Runner) iterate(ctx context.Context, client *http.Client) {
	start := time.Now()
	res := request(ctx, client, r.opts.Target, r.opts.Timeout)
	if res.err != nil && ctx.Err() != nil {
		logger.FromContext(ctx).Debug("Iteration interrupted", "error", res.err)
		r.samples.addInterrupted()
		return
	}

	r.recordRequest(ctx, res)
	r.recordCheck(CheckStatusOK, !res.failed)
	r.samples.addIteration(time.Since(start))
	r.metrics.iterations.Inc()
}

func (r *Runner) recordRequest(ctx context.Context, res requestSample) {
	status := strconv.Itoa(res.status)
	if res.err != nil {
		logger.FromContext(ctx).Debug("Request failed", "error", res.err)
	} else {
		r.metrics.reqDuration.WithLabelValues(status).Observe(res.duration.Seconds())
	}
	r.metrics.reqs.WithLabelValues(status, strconv.FormatBool(res.failed)).Inc()
	r.samples.addRequest(res)
}

func (r *Runner) recordCheck(name string, ok bool) {
	result := "pass"
	if !ok {
		result = "fail"
	}
	r.metrics.checks.WithLabelValues(name, result).Inc()
	r.samples.addCheck(name, ok)
}

// request issues a single GET request and reads the whole response body.
// A request fails on any transport error or a status code other than 200.
func request(ctx context.Context, client *http.Client, target string, timeout time.Duration) requestSample {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return requestSample{err: err, failed: true}
	}
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := client.Do(req) //nolint:bodyclose // closed below
	if err != nil {
		return requestSample{err: err, failed: true, duration: time.Since(start)}
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	n, err := io.Copy(io.Discard, resp.Body)
	res := requestSample{
		status:   resp.StatusCode,
		duration: time.Since(start),
		received: n,
		failed:   resp.StatusCode != http.StatusOK,
	}
	if err != nil {
		res.err = err
		res.failed = true
	}
	return res
}

// sleep pauses for d and returns false if ctx is done before
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
