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

// ServiceName identifies the service in every health response
const ServiceName = "harsh-app"

// Response is the payload returned by the health route
type Response struct {
	// OK is always true while the service is able to answer
	OK bool `json:"ok"`
	// Service is the constant service identifier
	Service string `json:"service"`
	// Timestamp is the time of the response in milliseconds since the epoch
	Timestamp int64 `json:"ts"`
}

// NewResponse creates the health response for the given timestamp
func NewResponse(ts int64) Response {
	return Response{
		OK:        true,
		Service:   ServiceName,
		Timestamp: ts,
	}
}
