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
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
)

// Weights of the single scores in the final score
const (
	weightSecurity    = 0.4
	weightPolicy      = 0.2
	weightPerformance = 0.2
	weightReliability = 0.1
	weightCost        = 0.1
)

// latencyBudgetMs is the p95 latency at which the performance score drops to zero
const latencyBudgetMs = 500

// Scores are the single scores in percent
type Scores struct {
	Security    float64 `json:"security" yaml:"security"`
	Policy      float64 `json:"policy" yaml:"policy"`
	Performance float64 `json:"performance" yaml:"performance"`
	Reliability float64 `json:"reliability" yaml:"reliability"`
	Cost        float64 `json:"cost" yaml:"cost"`
}

// Result is the ship score of a release
type Result struct {
	Scores Scores  `json:"scores" yaml:"scores"`
	Final  float64 `json:"final" yaml:"final"`
}

// Compute scores the artifacts.
// All scores are percentages rounded to two decimals.
func Compute(a Artifacts) Result {
	sec := securityScore(a.Trivy, a.Checkov)
	pol := policyScore(a.OPA)
	perf := clamp01((latencyBudgetMs - a.K6.P95Ms) / latencyBudgetMs)
	rel := clamp01(1 - a.K6.ErrorRate*10)
	cost := clamp01(1 - clamp01(a.Cost.Signal))

	final := (sec*weightSecurity + pol*weightPolicy + perf*weightPerformance +
		rel*weightReliability + cost*weightCost) * 100

	return Result{
		Scores: Scores{
			Security:    round2(sec * 100),
			Policy:      round2(pol * 100),
			Performance: round2(perf * 100),
			Reliability: round2(rel * 100),
			Cost:        round2(cost * 100),
		},
		Final: round2(final),
	}
}

// securityScore decreases logarithmically with the weighted amount of findings
func securityScore(t Trivy, c Checkov) float64 {
	worst := float64(t.Critical) + float64(t.High)*0.5 + float64(c.Failed)*0.2
	if worst == 0 {
		return 1
	}
	return 1 - math.Min(1, math.Log10(1+worst)/2)
}

// policyScore drops by 10% per denied policy
func policyScore(o OPA) float64 {
	if o.Deny == 0 {
		return 1
	}
	return clamp01(1 - float64(o.Deny)*0.1)
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Path returns the path of the score file within the artifacts directory
func Path(dir string) string {
	return filepath.Join(dir, "shipscores", "score.json")
}

// Save writes the result as indented json to the score file in dir
func (r Result) Save(dir string) (string, error) {
	path := Path(dir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create score directory: %w", err)
	}

	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal score: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil { //nolint:gosec // artifacts are shared with other tools
		return "", fmt.Errorf("failed to write score: %w", err)
	}
	return path, nil
}

// Load reads a previously saved result.
// A missing or unreadable score file yields the zero result and the error.
func Load(path string) (Result, error) {
	var r Result
	b, err := os.ReadFile(path) //#nosec G304
	if err != nil {
		return Result{}, err
	}
	if err := json.Unmarshal(b, &r); err != nil {
		return Result{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return r, nil
}

// WriteMarkdown writes a markdown report of the result
func (r Result) WriteMarkdown(w io.Writer) error {
	_, err := fmt.Fprintf(w, "### ShipScore\n- Security: %s%%\n- Policy: %s%%\n- Performance: %s%%\n- Reliability: %s%%\n- Cost: %s%%\n\n**Final ShipScore: %s%%**\n",
		formatScore(r.Scores.Security),
		formatScore(r.Scores.Policy),
		formatScore(r.Scores.Performance),
		formatScore(r.Scores.Reliability),
		formatScore(r.Scores.Cost),
		formatScore(r.Final),
	)
	return err
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
