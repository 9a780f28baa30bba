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
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harsh-app/harsh/internal/logger"
	"github.com/harsh-app/harsh/pkg/shipscore"
)

const scoreArtifactsKey = "score.artifacts"

// NewCmdScore creates a new score command
func NewCmdScore() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute the ship score of a release",
		Long: "Reads the trivy, checkov, opa, k6 and cost artifacts, weights them into a ship score,\n" +
			"writes it to <artifacts>/shipscores/score.json and prints a markdown report",
		Args: cobra.NoArgs,
		RunE: runScore,
	}

	NewFlag(scoreArtifactsKey, "artifacts").StringP("a").Bind(cmd, shipscore.DefaultDir, "The directory the artifacts are read from")

	return cmd
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx, cancel := logger.NewContextWithLogger(cmd.Context())
	defer cancel()
	log := logger.FromContext(ctx)

	dir := viper.GetString(scoreArtifactsKey)
	res := shipscore.Compute(shipscore.LoadArtifacts(ctx, dir))

	path, err := res.Save(dir)
	if err != nil {
		log.Error("Failed to save ship score", "error", err)
		return err
	}
	log.Info("Saved ship score", "path", path, "final", res.Final)

	return res.WriteMarkdown(cmd.OutOrStdout())
}
