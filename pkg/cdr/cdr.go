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

// Package cdr writes change decision records summarizing the release gates
// and proposes remediations for failing gates.
package cdr

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harsh-app/harsh/pkg/shipscore"
)

const (
	// DefaultDir is the directory records are written to by default
	DefaultDir = "cdrs"
	// DefaultActor is the actor noted in records
	DefaultActor = "harsh"
	// TimestampLayout is used for record ids and file names
	TimestampLayout = "2006-01-02T15-04-05"
)

// Recommendations given for failing gates
const (
	RecommendVulnerabilities = "Remove critical image vulns or pin a safer base image."
	RecommendIaC             = "Fix failing IaC checks (encryption, least-privilege, no-public)."
	RecommendPolicy          = "Satisfy policy gates (e.g., no public S3)."
	RecommendLatency         = "Optimize latency: enable gzip/cache, reduce N+1 calls."
	RecommendShip            = "All gates clean. Ready to ship."
)

// latencyBudgetMs is the p95 latency above which a latency recommendation is given
const latencyBudgetMs = 500

// Record is a change decision record
type Record struct {
	ID              string   `yaml:"id"`
	Actor           string   `yaml:"actor"`
	Summary         Summary  `yaml:"summary"`
	Inputs          Inputs   `yaml:"inputs"`
	Recommendations []string `yaml:"recommendations"`

	timestamp string
}

// Summary is the outcome the record documents
type Summary struct {
	ShipScore float64 `yaml:"shipscore"`
}

// Inputs are the gate results the decision is based on
type Inputs struct {
	Trivy   shipscore.Trivy   `yaml:"trivy"`
	Checkov shipscore.Checkov `yaml:"checkov"`
	OPA     shipscore.OPA     `yaml:"opa"`
	K6      shipscore.K6      `yaml:"k6"`
}

// New creates a record of the artifacts and their ship score taken at now
func New(now time.Time, actor string, a shipscore.Artifacts, score shipscore.Result) Record {
	ts := now.Format(TimestampLayout)
	return Record{
		ID:    "cdr-" + ts,
		Actor: actor,
		Summary: Summary{
			ShipScore: score.Final,
		},
		Inputs: Inputs{
			Trivy:   a.Trivy,
			Checkov: a.Checkov,
			OPA:     a.OPA,
			K6:      a.K6,
		},
		Recommendations: Recommend(a),
		timestamp:       ts,
	}
}

// Recommend returns the recommendations for all failing gates.
// If no gate fails, shipping is recommended.
func Recommend(a shipscore.Artifacts) []string {
	var recs []string
	if a.Trivy.Critical > 0 {
		recs = append(recs, RecommendVulnerabilities)
	}
	if a.Checkov.Failed > 0 {
		recs = append(recs, RecommendIaC)
	}
	if a.OPA.Deny > 0 {
		recs = append(recs, RecommendPolicy)
	}
	if a.K6.P95Ms > latencyBudgetMs {
		recs = append(recs, RecommendLatency)
	}
	if len(recs) == 0 {
		recs = append(recs, RecommendShip)
	}
	return recs
}

// Write writes the record as yaml into dir and returns the path of the file
func (r Record) Write(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create record directory: %w", err)
	}

	b, err := yaml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to marshal record: %w", err)
	}

	path := filepath.Join(dir, r.timestamp+".yaml")
	if err := os.WriteFile(path, b, 0o644); err != nil { //nolint:gosec // records are checked in
		return "", fmt.Errorf("failed to write record: %w", err)
	}
	return path, nil
}
