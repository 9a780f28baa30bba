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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseThreshold(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		want    Threshold
		wantErr bool
	}{
		{
			name: "percentile without unit",
			expr: "p(95)<500",
			want: Threshold{Source: "p(95)<500", Aggregation: "p(95)", Percentile: 95, Operator: "<", Value: 500},
		},
		{
			name: "percentile with milliseconds",
			expr: "p(95)<500ms",
			want: Threshold{Source: "p(95)<500ms", Aggregation: "p(95)", Percentile: 95, Operator: "<", Value: 500, Unit: "ms"},
		},
		{
			name: "seconds are converted to milliseconds",
			expr: "avg <= 1.5s",
			want: Threshold{Source: "avg <= 1.5s", Aggregation: "avg", Operator: "<=", Value: 1500, Unit: "s"},
		},
		{
			name: "fractional percentile",
			expr: "p(99.9)<1000",
			want: Threshold{Source: "p(99.9)<1000", Aggregation: "p(99.9)", Percentile: 99.9, Operator: "<", Value: 1000},
		},
		{
			name: "rate",
			expr: "rate<0.05",
			want: Threshold{Source: "rate<0.05", Aggregation: "rate", Operator: "<", Value: 0.05},
		},
		{
			name: "surrounding whitespace",
			expr: "  count>10 ",
			want: Threshold{Source: "count>10", Aggregation: "count", Operator: ">", Value: 10},
		},
		{
			name:    "missing operator",
			expr:    "p(95)500",
			wantErr: true,
		},
		{
			name:    "unknown aggregation",
			expr:    "p95<500",
			wantErr: true,
		},
		{
			name:    "percentile out of range",
			expr:    "p(101)<500",
			wantErr: true,
		},
		{
			name:    "empty",
			expr:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseThreshold(tt.expr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseThreshold() error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseThreshold() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestThreshold_Evaluate(t *testing.T) {
	tests := []struct {
		expr  string
		value float64
		want  bool
	}{
		{expr: "p(95)<500", value: 499.9, want: true},
		{expr: "p(95)<500", value: 500, want: false},
		{expr: "p(95)<=500", value: 500, want: true},
		{expr: "rate<0.05", value: 0.05, want: false},
		{expr: "rate<0.05", value: 0, want: true},
		{expr: "count>=10", value: 10, want: true},
		{expr: "count>10", value: 10, want: false},
		{expr: "rate==1", value: 1, want: true},
		{expr: "rate!=1", value: 1, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			th, err := ParseThreshold(tt.expr)
			if err != nil {
				t.Fatalf("ParseThreshold() error = %v", err)
			}
			if got := th.Evaluate(tt.value); got != tt.want {
				t.Errorf("Evaluate(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseThresholds(t *testing.T) {
	tests := []struct {
		name    string
		raw     map[string][]string
		want    int
		wantErr bool
	}{
		{
			name: "defaults",
			raw:  DefaultOptions().Thresholds,
			want: 2,
		},
		{
			name: "multiple per metric",
			raw: map[string][]string{
				MetricHTTPReqDuration: {"p(95)<500", "avg<200", "max<2s"},
				MetricChecks:          {"rate>0.99"},
				MetricHTTPReqs:        {"count>1", "rate>0.5"},
			},
			want: 6,
		},
		{
			name:    "unknown metric",
			raw:     map[string][]string{"http_req_waiting": {"p(95)<500"}},
			wantErr: true,
		},
		{
			name:    "percentile on rate",
			raw:     map[string][]string{MetricHTTPReqFailed: {"p(95)<0.05"}},
			wantErr: true,
		},
		{
			name:    "rate on trend",
			raw:     map[string][]string{MetricHTTPReqDuration: {"rate<0.05"}},
			wantErr: true,
		},
		{
			name:    "unit on rate",
			raw:     map[string][]string{MetricHTTPReqFailed: {"rate<5ms"}},
			wantErr: true,
		},
		{
			name:    "malformed",
			raw:     map[string][]string{MetricHTTPReqDuration: {"p(95) below 500"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseThresholds(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseThresholds() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var thErr ErrInvalidThreshold
				if !errors.As(err, &thErr) {
					t.Errorf("parseThresholds() error = %T, want ErrInvalidThreshold", err)
				}
				return
			}

			count := 0
			for _, ths := range got {
				count += len(ths)
			}
			if count != tt.want {
				t.Errorf("parseThresholds() parsed %d thresholds, want %d", count, tt.want)
			}
		})
	}
}
