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
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Names of the metrics thresholds can be defined on
const (
	MetricHTTPReqDuration   = "http_req_duration"
	MetricHTTPReqFailed     = "http_req_failed"
	MetricHTTPReqs          = "http_reqs"
	MetricChecks            = "checks"
	MetricIterations        = "iterations"
	MetricIterationDuration = "iteration_duration"
)

// metricKind describes how samples of a metric are aggregated
type metricKind int

const (
	// trend metrics collect durations in milliseconds
	trendKind metricKind = iota
	// rate metrics collect the share of non-zero samples
	rateKind
	// counter metrics collect a cumulative count
	counterKind
)

var metricKinds = map[string]metricKind{
	MetricHTTPReqDuration:   trendKind,
	MetricIterationDuration: trendKind,
	MetricHTTPReqFailed:     rateKind,
	MetricChecks:            rateKind,
	MetricHTTPReqs:          counterKind,
	MetricIterations:        counterKind,
}

// aggregations lists the aggregation methods available per metric kind.
// Percentiles (p(N)) are additionally available for trends.
var aggregations = map[metricKind][]string{
	trendKind:   {"avg", "min", "max", "med"},
	rateKind:    {"rate"},
	counterKind: {"count", "rate"},
}

var thresholdPattern = regexp.MustCompile(
	`^\s*(avg|min|max|med|count|rate|p\(\s*(\d+(?:\.\d+)?)\s*\))\s*(<=|>=|==|!=|<|>)\s*(-?\d+(?:\.\d+)?)\s*(ms|s|m|us|µs)?\s*$`,
)

// durationUnits converts a value of the given unit to milliseconds
var durationUnits = map[string]float64{
	"":   1,
	"ms": 1,
	"s":  1000,
	"m":  60 * 1000,
	"us": 0.001,
	"µs": 0.001,
}

// Threshold is a parsed pass/fail condition on an aggregated metric,
// e.g. "p(95)<500" or "rate<0.05".
type Threshold struct {
	// Source is the expression the threshold was parsed from
	Source string
	// Aggregation is the aggregation method, e.g. "avg" or "p(95)"
	Aggregation string
	// Percentile is set for p(N) aggregations
	Percentile float64
	// Operator is the comparison operator
	Operator string
	// Value is the value to compare against. Durations are in milliseconds.
	Value float64
	// Unit is the unit the value was given in, empty if none
	Unit string
}

// ParseThreshold parses a threshold expression.
// Durations without unit are interpreted as milliseconds.
func ParseThreshold(expr string) (Threshold, error) {
	m := thresholdPattern.FindStringSubmatch(expr)
	if m == nil {
		return Threshold{}, fmt.Errorf("malformed threshold expression %q", expr)
	}

	th := Threshold{
		Source:      strings.TrimSpace(expr),
		Aggregation: m[1],
		Operator:    m[3],
	}

	if m[2] != "" {
		p, err := strconv.ParseFloat(m[2], 64)
		if err != nil || p < 0 || p > 100 {
			return Threshold{}, fmt.Errorf("percentile of %q must be between 0 and 100", expr)
		}
		th.Aggregation = fmt.Sprintf("p(%s)", m[2])
		th.Percentile = p
	}

	v, err := strconv.ParseFloat(m[4], 64)
	if err != nil {
		return Threshold{}, fmt.Errorf("invalid value in %q: %w", expr, err)
	}
	th.Value = v * durationUnits[m[5]]
	th.Unit = m[5]

	return th, nil
}

// IsPercentile returns true if the threshold aggregates a percentile
func (t Threshold) IsPercentile() bool {
	return strings.HasPrefix(t.Aggregation, "p(")
}

// Evaluate returns true if the aggregated value satisfies the threshold
func (t Threshold) Evaluate(value float64) bool {
	switch t.Operator {
	case "<":
		return value < t.Value
	case "<=":
		return value <= t.Value
	case ">":
		return value > t.Value
	case ">=":
		return value >= t.Value
	case "==":
		return value == t.Value
	case "!=":
		return value != t.Value
	default:
		return false
	}
}

// parseThresholds parses the thresholds of all metrics and checks
// whether the aggregation fits the metric.
func parseThresholds(raw map[string][]string) (map[string][]Threshold, error) {
	result := make(map[string][]Threshold, len(raw))
	for metric, exprs := range raw {
		kind, ok := metricKinds[metric]
		if !ok {
			return nil, ErrInvalidThreshold{Metric: metric, Expr: strings.Join(exprs, ", "), Reason: "unknown metric"}
		}

		for _, expr := range exprs {
			th, err := ParseThreshold(expr)
			if err != nil {
				return nil, ErrInvalidThreshold{Metric: metric, Expr: expr, Reason: err.Error()}
			}
			if th.Unit != "" && kind != trendKind {
				return nil, ErrInvalidThreshold{Metric: metric, Expr: expr, Reason: "only duration metrics accept a unit"}
			}
			if !supports(kind, th) {
				return nil, ErrInvalidThreshold{
					Metric: metric,
					Expr:   expr,
					Reason: fmt.Sprintf("aggregation %q is not available, use one of %s", th.Aggregation, strings.Join(available(kind), ", ")),
				}
			}
			result[metric] = append(result[metric], th)
		}
	}
	return result, nil
}

// supports returns true if the metric kind can be aggregated as the threshold requires
func supports(kind metricKind, th Threshold) bool {
	if th.IsPercentile() {
		return kind == trendKind
	}
	for _, agg := range aggregations[kind] {
		if agg == th.Aggregation {
			return true
		}
	}
	return false
}

func available(kind metricKind) []string {
	aggs := append([]string{}, aggregations[kind]...)
	if kind == trendKind {
		aggs = append(aggs, "p(N)")
	}
	sort.Strings(aggs)
	return aggs
}
