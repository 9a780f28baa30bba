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

package api

import "fmt"

// ErrBind is returned when the api address cannot be bound
type ErrBind struct {
	Addr string
	Err  error
}

func (e *ErrBind) Error() string {
	return fmt.Sprintf("failed to bind %q: %v", e.Addr, e.Err)
}

func (e *ErrBind) Unwrap() error {
	return e.Err
}
