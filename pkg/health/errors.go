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

import "fmt"

// ErrCreateOpenapiSchema is returned when the schema of the health response cannot be generated
type ErrCreateOpenapiSchema struct {
	err error
}

func (e *ErrCreateOpenapiSchema) Error() string {
	return fmt.Sprintf("failed to create schema of %s response: %v", ServiceName, e.err)
}

func (e *ErrCreateOpenapiSchema) Unwrap() error {
	return e.err
}
