// harsh
// (C) 2024, Deutsche Telekom IT GmbH
//
// Deutsche Telekom IT GmbH and all other contributors /
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

package config

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/harsh-app/harsh/internal/logger"
)

// osFS opens files relative to the working directory or by absolute path
type osFS struct{}

func (osFS) Open(name string) (fs.File, error) {
	return os.Open(name) //nolint:gosec // path is provided by the operator
}

// FileLoader reads a yaml file into a generic map.
// The map is decoded into the concrete options by the consumer.
type FileLoader struct {
	path string
	fsys fs.FS
}

// NewFileLoader creates a new FileLoader for the given path
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{
		path: path,
		fsys: osFS{},
	}
}

// Load reads and parses the file
func (f *FileLoader) Load(ctx context.Context) (cfg map[string]any, err error) {
	log := logger.FromContext(ctx).With("path", f.path)
	log.DebugContext(ctx, "Reading config from file")

	file, err := f.fsys.Open(f.path)
	if err != nil {
		log.ErrorContext(ctx, "Failed to open config file", "error", err)
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() {
		if cErr := file.Close(); cErr != nil {
			log.ErrorContext(ctx, "Failed to close config file", "error", cErr)
		}
	}()

	b, err := io.ReadAll(file)
	if err != nil {
		log.ErrorContext(ctx, "Failed to read config file", "error", err)
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg = map[string]any{}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		log.ErrorContext(ctx, "Failed to parse config file", "error", err)
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	// a null document resets the map
	if cfg == nil {
		cfg = map[string]any{}
	}

	return cfg, nil
}
