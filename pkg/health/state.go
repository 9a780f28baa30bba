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

// State is the lifecycle state of the service
type State int32

const (
	// Starting is the state before the listener is bound
	Starting State = iota
	// Listening is the state after the listener was bound successfully
	Listening
)

var stateMapping = map[State]string{
	Starting:  "starting",
	Listening: "listening",
}

// String returns the name of the state
func (s State) String() string {
	if name, ok := stateMapping[s]; ok {
		return name
	}
	return "unknown"
}
