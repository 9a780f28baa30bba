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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Summary is the result of a load test run
type Summary struct {
	RunID    string        `json:"runId"`
	Target   string        `json:"target"`
	VUs      int           `json:"vus"`
	Duration time.Duration `json:"duration"`
	Elapsed  time.Duration `json:"elapsed"`
	// Requests is the amount of completed requests, failed ones included
	Requests       int64 `json:"requests"`
	FailedRequests int64 `json:"failedRequests"`
	Iterations     int64 `json:"iterations"`
	// Interrupted is the amount of iterations abandoned at the end of the graceful stop
	Interrupted int64 `json:"interrupted"`
	// DataReceived is the amount of response body bytes received
	DataReceived      int64             `json:"dataReceived"`
	RequestDuration   TrendStats        `json:"requestDuration"`
	IterationDuration TrendStats        `json:"iterationDuration"`
	Checks            []CheckResult     `json:"checks"`
	Thresholds        []ThresholdResult `json:"thresholds"`
}

// TrendStats are the aggregated values of a trend in milliseconds
type TrendStats struct {
	Avg float64 `json:"avg"`
	Min float64 `json:"min"`
	Med float64 `json:"med"`
	Max float64 `json:"max"`
	P90 float64 `json:"p(90)"`
	P95 float64 `json:"p(95)"`
}

// CheckResult counts the results of a named check
type CheckResult struct {
	Name   string `json:"name"`
	Passes int64  `json:"passes"`
	Fails  int64  `json:"fails"`
}

// ThresholdResult is the outcome of a single threshold
type ThresholdResult struct {
	Metric     string  `json:"metric"`
	Expression string  `json:"expression"`
	Value      float64 `json:"value"`
	Passed     bool    `json:"passed"`
}

// Passed returns true if all thresholds passed
func (s *Summary) Passed() bool {
	for _, th := range s.Thresholds {
		if !th.Passed {
			return false
		}
	}
	return true
}

// FailureRate returns the share of failed requests
func (s *Summary) FailureRate() float64 {
	if s.Requests == 0 {
		return 0
	}
	return float64(s.FailedRequests) / float64(s.Requests)
}

// ChecksRate returns the share of passed checks
func (s *Summary) ChecksRate() float64 {
	var passes, total int64
	for _, c := range s.Checks {
		passes += c.Passes
		total += c.Passes + c.Fails
	}
	if total == 0 {
		return 0
	}
	return float64(passes) / float64(total)
}

const summaryWidth = 28

// Write writes a human readable report of the summary
func (s *Summary) Write(w io.Writer) error {
	b := &strings.Builder{}
	fmt.Fprintf(b, "\n  run: %s\n  target: %s\n  vus: %d, duration: %s\n\n", s.RunID, s.Target, s.VUs, s.Duration)

	for _, c := range s.Checks {
		mark := "✓"
		if c.Fails > 0 {
			mark = "✗"
		}
		fmt.Fprintf(b, "  %s %s\n", mark, c.Name)
		if c.Fails > 0 {
			fmt.Fprintf(b, "   ↳ %.0f%% ✓ %d / ✗ %d\n", ratio(c.Passes, c.Passes+c.Fails)*100, c.Passes, c.Fails)
		}
	}
	b.WriteString("\n")

	var passes int64
	for _, c := range s.Checks {
		passes += c.Passes
	}
	writeLine(b, MetricChecks, fmt.Sprintf("%.2f%% ✓ %d ✗ %d", s.ChecksRate()*100, passes, s.checkTotal()-passes))
	writeLine(b, "data_received", fmt.Sprintf("%s %s/s", humanize.Bytes(uint64(s.DataReceived)), humanize.Bytes(uint64(perSecond(s.DataReceived, s.Elapsed)))))
	writeLine(b, MetricHTTPReqDuration, s.RequestDuration.String())
	s.writeThresholds(b, MetricHTTPReqDuration)
	writeLine(b, MetricHTTPReqFailed, fmt.Sprintf("%.2f%% ✓ %d ✗ %d", s.FailureRate()*100, s.FailedRequests, s.Requests-s.FailedRequests))
	s.writeThresholds(b, MetricHTTPReqFailed)
	writeLine(b, MetricHTTPReqs, fmt.Sprintf("%d %.2f/s", s.Requests, perSecond(s.Requests, s.Elapsed)))
	s.writeThresholds(b, MetricHTTPReqs)
	writeLine(b, MetricIterationDuration, s.IterationDuration.String())
	s.writeThresholds(b, MetricIterationDuration)
	writeLine(b, MetricIterations, fmt.Sprintf("%d %.2f/s", s.Iterations, perSecond(s.Iterations, s.Elapsed)))
	s.writeThresholds(b, MetricIterations)
	if s.Interrupted > 0 {
		writeLine(b, "interrupted_iterations", fmt.Sprintf("%d", s.Interrupted))
	}
	writeLine(b, "vus", fmt.Sprintf("%d", s.VUs))

	if !s.Passed() {
		b.WriteString("\n  some thresholds have failed\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (s *Summary) checkTotal() int64 {
	var total int64
	for _, c := range s.Checks {
		total += c.Passes + c.Fails
	}
	return total
}

func (s *Summary) writeThresholds(b *strings.Builder, metric string) {
	for _, th := range s.Thresholds {
		if th.Metric != metric {
			continue
		}
		mark := "✓"
		if !th.Passed {
			mark = "✗"
		}
		fmt.Fprintf(b, "    %s %s\n", mark, th.Expression)
	}
}

func writeLine(b *strings.Builder, name, value string) {
	dots := summaryWidth - len(name)
	if dots < 1 {
		dots = 1
	}
	fmt.Fprintf(b, "  %s%s: %s\n", name, strings.Repeat(".", dots), value)
}

func ratio(a, b int64) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

// String formats the trend values with a millisecond precision of two digits
func (t TrendStats) String() string {
	return fmt.Sprintf("avg=%s min=%s med=%s max=%s p(90)=%s p(95)=%s",
		formatMs(t.Avg), formatMs(t.Min), formatMs(t.Med), formatMs(t.Max), formatMs(t.P90), formatMs(t.P95))
}

func formatMs(v float64) string {
	if v >= 1000 {
		return fmt.Sprintf("%.2fs", v/1000)
	}
	return fmt.Sprintf("%.2fms", v)
}

// Export is the machine readable result of a run, consumed by the release gates
type Export struct {
	RunID      string            `json:"run_id"`
	Target     string            `json:"target"`
	P95Ms      float64           `json:"p95_ms"`
	ErrorRate  float64           `json:"error_rate"`
	Requests   int64             `json:"requests"`
	Iterations int64             `json:"iterations"`
	ChecksRate float64           `json:"checks_rate"`
	Passed     bool              `json:"passed"`
	Thresholds []ThresholdResult `json:"thresholds"`
}

// Export returns the machine readable result of the run
func (s *Summary) Export() Export {
	thresholds := s.Thresholds
	if thresholds == nil {
		thresholds = []ThresholdResult{}
	}
	return Export{
		RunID:      s.RunID,
		Target:     s.Target,
		P95Ms:      s.RequestDuration.P95,
		ErrorRate:  s.FailureRate(),
		Requests:   s.Requests,
		Iterations: s.Iterations,
		ChecksRate: s.ChecksRate(),
		Passed:     s.Passed(),
		Thresholds: thresholds,
	}
}

// WriteExport writes the machine readable result as json to path,
// creating missing parent directories.
func (s *Summary) WriteExport(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	b, err := json.MarshalIndent(s.Export(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary export: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write summary export: %w", err)
	}
	return nil
}
