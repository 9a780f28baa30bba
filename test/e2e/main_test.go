// harsh
// (C) 2024, Deutsche Telekom IT GmbH
//
// Deutsche Telekom IT GmbH and all other contributors /
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

package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harsh-app/harsh/pkg/loadtest"
	"github.com/harsh-app/harsh/test"
)

func TestE2E_Loadtest_AgainstHealthService(t *testing.T) {
	tests := []struct {
		name       string
		scenario   *Scenario
		wantErr    error
		wantFailed bool
	}{
		{
			name: "healthy service",
			scenario: NewScenario(t).
				WithVUs(3).
				WithDuration(time.Second).
				WithSleep(100 * time.Millisecond),
			wantErr:    nil,
			wantFailed: false,
		},
		{
			name: "service not running",
			scenario: NewScenario(t).
				WithoutService().
				WithVUs(2).
				WithDuration(500 * time.Millisecond).
				WithSleep(100 * time.Millisecond),
			wantErr:    loadtest.ErrThresholdsCrossed,
			wantFailed: true,
		},
		{
			name: "unreachable latency threshold",
			scenario: NewScenario(t).
				WithVUs(1).
				WithDuration(300 * time.Millisecond).
				WithSleep(50*time.Millisecond).
				WithThresholds(loadtest.MetricHTTPReqDuration, "max<0"),
			wantErr:    loadtest.ErrThresholdsCrossed,
			wantFailed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := tt.scenario.Run(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			require.NotNil(t, summary)
			assert.Positive(t, summary.Requests)

			if tt.wantFailed {
				assert.Equal(t, summary.Requests, summary.FailedRequests)
			} else {
				assert.Zero(t, summary.FailedRequests)
				assert.Positive(t, summary.DataReceived)
			}
		})
	}
}

// TestE2E_Loadtest_Defaults runs 5 virtual users for 10 seconds against the service
func TestE2E_Loadtest_Defaults(t *testing.T) {
	test.MarkAsLong(t)

	summary, err := NewScenario(t).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, summary.Passed())
	assert.Zero(t, summary.FailureRate())
	assert.Less(t, summary.RequestDuration.P95, 500.0)
	assert.InDelta(t, 1.0, summary.ChecksRate(), 1e-9)
}
