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

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestDecodeOptions(t *testing.T) {
	tests := []struct {
		name    string
		raw     map[string]any
		want    func() Options
		wantErr bool
	}{
		{
			name: "no options",
			raw:  nil,
			want: DefaultOptions,
		},
		{
			name: "override scalars",
			raw: map[string]any{
				"target":   "http://service:8080/",
				"vus":      10,
				"duration": "30s",
				"sleep":    "500ms",
			},
			want: func() Options {
				o := DefaultOptions()
				o.Target = "http://service:8080/"
				o.VUs = 10
				o.Duration = 30 * time.Second
				o.Sleep = 500 * time.Millisecond
				return o
			},
		},
		{
			name: "threshold of a metric replaces its default",
			raw: map[string]any{
				"thresholds": map[string]any{
					"http_req_duration": []any{"p(99)<1s"},
					"checks":            "rate>0.99",
				},
			},
			want: func() Options {
				o := DefaultOptions()
				o.Thresholds[MetricHTTPReqDuration] = []string{"p(99)<1s"}
				o.Thresholds[MetricChecks] = []string{"rate>0.99"}
				return o
			},
		},
		{
			name:    "invalid duration",
			raw:     map[string]any{"duration": "ten seconds"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeOptions(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want(), got); diff != "" {
				t.Errorf("DecodeOptions() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(o *Options)
		wantField string
	}{
		{name: "defaults", modify: func(*Options) {}},
		{name: "https target", modify: func(o *Options) { o.Target = "https://example.com/health" }},
		{name: "zero sleep", modify: func(o *Options) { o.Sleep = 0 }},
		{name: "no scheme", modify: func(o *Options) { o.Target = "localhost:8080" }, wantField: "target"},
		{name: "unsupported scheme", modify: func(o *Options) { o.Target = "ftp://localhost/" }, wantField: "target"},
		{name: "no host", modify: func(o *Options) { o.Target = "http:///path" }, wantField: "target"},
		{name: "unparsable target", modify: func(o *Options) { o.Target = "http://[::1" }, wantField: "target"},
		{name: "no vus", modify: func(o *Options) { o.VUs = 0 }, wantField: "vus"},
		{name: "no duration", modify: func(o *Options) { o.Duration = 0 }, wantField: "duration"},
		{name: "negative sleep", modify: func(o *Options) { o.Sleep = -time.Second }, wantField: "sleep"},
		{name: "negative graceful stop", modify: func(o *Options) { o.GracefulStop = -time.Second }, wantField: "gracefulStop"},
		{name: "negative timeout", modify: func(o *Options) { o.Timeout = -time.Second }, wantField: "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			tt.modify(&o)
			err := o.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var cfgErr ErrInvalidConfig
			if assert.ErrorAs(t, err, &cfgErr) {
				assert.Equal(t, tt.wantField, cfgErr.Field)
			}
		})
	}

	t.Run("invalid threshold", func(t *testing.T) {
		o := DefaultOptions()
		o.Thresholds[MetricHTTPReqFailed] = []string{"p(95)<1"}
		var thErr ErrInvalidThreshold
		assert.ErrorAs(t, o.Validate(), &thErr)
	})
}

func TestDefaultOptions_isolated(t *testing.T) {
	a := DefaultOptions()
	a.Thresholds[MetricHTTPReqDuration][0] = "p(99)<1"
	a.Thresholds[MetricChecks] = []string{"rate>0"}

	b := DefaultOptions()
	assert.Equal(t, []string{"p(95)<500"}, b.Thresholds[MetricHTTPReqDuration])
	assert.NotContains(t, b.Thresholds, MetricChecks)
}
