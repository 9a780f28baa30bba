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
	"fmt"
)

// ErrThresholdsCrossed is returned after a run in which at least one threshold failed
var ErrThresholdsCrossed = errors.New("some thresholds have failed")

// errDurationElapsed is the cause of the run context ending after the configured duration
var errDurationElapsed = errors.New("load test duration elapsed")

// ErrInvalidConfig is returned when the load test options are invalid
type ErrInvalidConfig struct {
	Field  string
	Reason string
}

func (e ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid load test option %q: %s", e.Field, e.Reason)
}

// ErrInvalidThreshold is returned when a threshold expression cannot be used
type ErrInvalidThreshold struct {
	Metric string
	Expr   string
	Reason string
}

func (e ErrInvalidThreshold) Error() string {
	return fmt.Sprintf("invalid threshold %q on metric %q: %s", e.Expr, e.Metric, e.Reason)
}
