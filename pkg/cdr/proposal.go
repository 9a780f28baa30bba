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
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultProposalDir is the directory proposals are written to by default
const DefaultProposalDir = "proposals"

const s3PublicAccessBlock = `# Auto-proposal: enforce S3 block public access
# Review & edit before apply.
resource "aws_s3_bucket_public_access_block" "default" {
  bucket = aws_s3_bucket.app.id
  block_public_acls       = true
  block_public_policy     = true
  restrict_public_buckets = true
  ignore_public_acls      = true
}
`

// WriteProposal writes a terraform snippet enforcing the S3 public access block
// into dir and returns the path of the file.
func WriteProposal(dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create proposal directory: %w", err)
	}

	path := filepath.Join(dir, now.Format(TimestampLayout)+"_s3_block_public_access.tf")
	if err := os.WriteFile(path, []byte(s3PublicAccessBlock), 0o644); err != nil { //nolint:gosec // proposals are reviewed and checked in
		return "", fmt.Errorf("failed to write proposal: %w", err)
	}
	return path, nil
}
