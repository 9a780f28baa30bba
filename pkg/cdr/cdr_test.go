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

package cdr

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/harsh-app/harsh/pkg/shipscore"
)

var now = time.Date(2024, 5, 17, 13, 4, 5, 0, time.UTC)

func TestRecommend(t *testing.T) {
	tests := []struct {
		name      string
		artifacts shipscore.Artifacts
		want      []string
	}{
		{
			name:      "all gates clean",
			artifacts: shipscore.DefaultArtifacts(),
			want:      []string{RecommendShip},
		},
		{
			name: "only high vulnerabilities",
			artifacts: shipscore.Artifacts{
				Trivy: shipscore.Trivy{High: 10},
				K6:    shipscore.K6{P95Ms: 500},
			},
			want: []string{RecommendShip},
		},
		{
			name: "every gate fails",
			artifacts: shipscore.Artifacts{
				Trivy:   shipscore.Trivy{Critical: 1},
				Checkov: shipscore.Checkov{Failed: 1},
				OPA:     shipscore.OPA{Deny: 1},
				K6:      shipscore.K6{P95Ms: 501},
			},
			want: []string{RecommendVulnerabilities, RecommendIaC, RecommendPolicy, RecommendLatency},
		},
		{
			name: "slow",
			artifacts: shipscore.Artifacts{
				K6: shipscore.K6{P95Ms: 800},
			},
			want: []string{RecommendLatency},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Recommend(tt.artifacts)); diff != "" {
				t.Errorf("Recommend() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRecord_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), DefaultDir)
	a := shipscore.Artifacts{
		Trivy: shipscore.Trivy{Critical: 1, High: 2},
		K6:    shipscore.K6{P95Ms: 312.5, ErrorRate: 0.01},
	}
	r := New(now, DefaultActor, a, shipscore.Result{Final: 71.3})

	path, err := r.Write(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2024-05-17T13-04-05.yaml"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "id: cdr-2024-05-17T13-04-05\nactor: harsh\nsummary:\n    shipscore: 71.3\n"))

	var got Record
	require.NoError(t, yaml.Unmarshal(b, &got))
	assert.Equal(t, "cdr-2024-05-17T13-04-05", got.ID)
	assert.Equal(t, a.Trivy, got.Inputs.Trivy)
	assert.Equal(t, a.K6, got.Inputs.K6)
	assert.Equal(t, []string{RecommendVulnerabilities}, got.Recommendations)
}

func TestWriteProposal(t *testing.T) {
	dir := filepath.Join(t.TempDir(), DefaultProposalDir)

	path, err := WriteProposal(dir, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2024-05-17T13-04-05_s3_block_public_access.tf"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `resource "aws_s3_bucket_public_access_block" "default"`)
	assert.Contains(t, string(b), "block_public_policy     = true")
}
