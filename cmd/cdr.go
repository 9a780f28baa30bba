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
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harsh-app/harsh/internal/logger"
	"github.com/harsh-app/harsh/pkg/cdr"
	"github.com/harsh-app/harsh/pkg/shipscore"
)

const (
	cdrArtifactsKey   = "cdr.artifacts"
	cdrOutputKey      = "cdr.output"
	cdrActorKey       = "cdr.actor"
	proposalOutputKey = "proposeFix.output"
)

// NewCmdCDR creates a new cdr command
func NewCmdCDR() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cdr",
		Short: "Write a change decision record",
		Long: "Writes the gate results, the ship score and recommendations for failing gates\n" +
			"into a timestamped yaml record and prints its path",
		Args: cobra.NoArgs,
		RunE: runCDR,
	}

	NewFlag(cdrArtifactsKey, "artifacts").StringP("a").Bind(cmd, shipscore.DefaultDir, "The directory the artifacts are read from")
	NewFlag(cdrOutputKey, "output").StringP("o").Bind(cmd, cdr.DefaultDir, "The directory the record is written to")
	NewFlag(cdrActorKey, "actor").String().Bind(cmd, cdr.DefaultActor, "The actor noted in the record")

	return cmd
}

func runCDR(cmd *cobra.Command, _ []string) error {
	ctx, cancel := logger.NewContextWithLogger(cmd.Context())
	defer cancel()
	log := logger.FromContext(ctx)

	dir := viper.GetString(cdrArtifactsKey)
	artifacts := shipscore.LoadArtifacts(ctx, dir)
	score, err := shipscore.Load(shipscore.Path(dir))
	if err != nil {
		log.Warn("No ship score found, run score first", "error", err)
	}

	record := cdr.New(time.Now(), viper.GetString(cdrActorKey), artifacts, score)
	path, err := record.Write(viper.GetString(cdrOutputKey))
	if err != nil {
		log.Error("Failed to write change decision record", "error", err)
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
	return err
}

// NewCmdProposeFix creates a new propose-fix command
func NewCmdProposeFix() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "propose-fix",
		Short: "Propose a terraform fix blocking public S3 access",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := cdr.WriteProposal(viper.GetString(proposalOutputKey), time.Now())
			if err != nil {
				logger.FromContext(cmd.Context()).Error("Failed to write proposal", "error", err)
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}

	NewFlag(proposalOutputKey, "output").StringP("o").Bind(cmd, cdr.DefaultProposalDir, "The directory the proposal is written to")

	return cmd
}
