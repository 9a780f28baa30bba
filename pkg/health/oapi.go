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
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

// OpenAPI returns the OpenAPI document describing the health route
func OpenAPI(version string) (*openapi3.T, error) {
	ref, err := openapi3gen.NewSchemaRefForValue(Response{}, openapi3.Schemas{})
	if err != nil {
		return nil, &ErrCreateOpenapiSchema{err: err}
	}
	ref.Value.Required = []string{"ok", "service", "ts"}

	if version == "" {
		version = "dev"
	}
	bodyDesc := fmt.Sprintf("Health of %s", ServiceName)

	return &openapi3.T{
		OpenAPI: "3.0.0",
		Info: &openapi3.Info{
			Title:       ServiceName,
			Description: "Answers with a static health payload and the current timestamp",
			Version:     version,
		},
		Paths: openapi3.Paths{
			"/": &openapi3.PathItem{
				Description: "health",
				Get: &openapi3.Operation{
					OperationID: "getHealth",
					Description: "Returns the health of the service",
					Tags:        []string{"Health"},
					Responses: openapi3.Responses{
						fmt.Sprint(http.StatusOK): &openapi3.ResponseRef{
							Value: &openapi3.Response{
								Description: &bodyDesc,
								Content:     openapi3.NewContentWithSchemaRef(ref, []string{"application/json"}),
							},
						},
					},
				},
			},
		},
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{},
		},
		Servers: openapi3.Servers{},
	}, nil
}
