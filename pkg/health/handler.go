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
	"encoding/json"
	"net/http"

	"github.com/harsh-app/harsh/internal/logger"
)

// Handler returns the handler answering every request with a fresh health response
func Handler(clock *Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		b, err := json.Marshal(NewResponse(clock.Now()))
		if err != nil {
			log.Error("Failed to encode health response", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			_, err = w.Write([]byte(http.StatusText(http.StatusInternalServerError)))
			if err != nil {
				log.Error("Failed to write response", "error", err)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(b); err != nil {
			log.Error("Failed to write response", "error", err)
		}
	}
}
