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

package health

import (
	"sync/atomic"
	"time"
)

// Clock hands out epoch millisecond timestamps that never decrease,
// even if the wall clock is set back.
type Clock struct {
	now  func() time.Time
	last atomic.Int64
}

// NewClock creates a clock reading the time from now.
// time.Now is used if now is nil.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Now returns the current time in epoch milliseconds, which is at least
// the last value returned.
func (c *Clock) Now() int64 {
	ts := c.now().UnixMilli()
	for {
		last := c.last.Load()
		if ts <= last {
			return last
		}
		if c.last.CompareAndSwap(last, ts) {
			return ts
		}
	}
}
