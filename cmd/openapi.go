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

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harsh-app/harsh/pkg/health"
)

type encoder interface {
	Encode(v any) error
}

// NewCmdOpenAPI creates a new openapi command
func NewCmdOpenAPI(version string) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document of the health service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := health.OpenAPI(version)
			if err != nil {
				return err
			}

			var marshaler encoder
			switch format {
			case "json":
				e := json.NewEncoder(cmd.OutOrStdout())
				e.SetIndent("", "  ")
				marshaler = e
			case "yaml":
				marshaler = yaml.NewEncoder(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unsupported format %q, use yaml or json", format)
			}
			return marshaler.Encode(doc)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "The output format, yaml or json")

	return cmd
}
