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

package shipscore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harsh-app/harsh/internal/helper"
	"github.com/harsh-app/harsh/internal/logger"
)

// DefaultDir is the directory the artifacts are read from by default
const DefaultDir = "artifacts"

// File names of the artifacts within the artifacts directory
const (
	TrivyFile   = "trivy.json"
	CheckovFile = "checkov.json"
	OPAFile     = "opa.json"
	K6File      = "k6.json"
	CostFile    = "cost.json"
)

// Trivy contains the vulnerability counts of the image scan
type Trivy struct {
	Critical int `json:"critical" yaml:"critical" mapstructure:"critical"`
	High     int `json:"high" yaml:"high" mapstructure:"high"`
	Medium   int `json:"medium" yaml:"medium" mapstructure:"medium"`
	Low      int `json:"low" yaml:"low" mapstructure:"low"`
}

// Checkov contains the result of the IaC checks
type Checkov struct {
	Failed int `json:"failed" yaml:"failed" mapstructure:"failed"`
}

// OPA contains the result of the policy evaluation
type OPA struct {
	Deny int `json:"deny" yaml:"deny" mapstructure:"deny"`
}

// K6 contains the result of the load test
type K6 struct {
	P95Ms     float64 `json:"p95_ms" yaml:"p95_ms" mapstructure:"p95_ms"`
	ErrorRate float64 `json:"error_rate" yaml:"error_rate" mapstructure:"error_rate"`
}

// Cost contains the normalized cost signal between 0 and 1
type Cost struct {
	Signal float64 `json:"signal" yaml:"signal" mapstructure:"signal"`
}

// Artifacts are the inputs of the release gates
type Artifacts struct {
	Trivy   Trivy
	Checkov Checkov
	OPA     OPA
	K6      K6
	Cost    Cost
}

// DefaultArtifacts returns the values assumed for missing artifacts
func DefaultArtifacts() Artifacts {
	return Artifacts{
		K6: K6{P95Ms: 300},
	}
}

// LoadArtifacts reads all artifacts from dir.
// An artifact that is missing or cannot be read keeps its default,
// missing keys of a readable artifact keep their default values.
func LoadArtifacts(ctx context.Context, dir string) Artifacts {
	a := DefaultArtifacts()

	a.Trivy = load(ctx, filepath.Join(dir, TrivyFile), a.Trivy)
	a.Checkov = load(ctx, filepath.Join(dir, CheckovFile), a.Checkov)
	a.OPA = load(ctx, filepath.Join(dir, OPAFile), a.OPA)
	a.K6 = load(ctx, filepath.Join(dir, K6File), a.K6)
	a.Cost = load(ctx, filepath.Join(dir, CostFile), a.Cost)
	return a
}

func load[T any](ctx context.Context, path string, def T) T {
	v, err := readJSON(path, def)
	if err != nil {
		logger.FromContext(ctx).Warn("Using defaults for artifact", "path", path, "error", err)
		return def
	}
	return v
}

// readJSON reads the json object at path on top of def
func readJSON[T any](path string, def T) (T, error) {
	b, err := os.ReadFile(path) //#nosec G304
	if err != nil {
		return def, err
	}

	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return def, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return helper.Decode(raw, def)
}
