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

// Config holds the configuration of the harsh health service
type Config struct {
	// Api is the configuration of the service listener
	Api ApiConfig
	// Metrics is the configuration of the optional prometheus listener
	Metrics MetricsConfig
}

// ApiConfig is the configuration for the service API
type ApiConfig struct {
	ListeningAddress string
}

// MetricsConfig is the configuration of the metrics listener.
// The listener is disabled if no address is set.
type MetricsConfig struct {
	ListeningAddress string
}

// NewConfig creates a new Config
func NewConfig() *Config {
	return &Config{}
}

// SetApiAddress sets the address the service listens on
func (c *Config) SetApiAddress(address string) {
	c.Api.ListeningAddress = address
}

// SetMetricsAddress sets the address the metrics listener listens on
func (c *Config) SetMetricsAddress(address string) {
	c.Metrics.ListeningAddress = address
}

// HasMetrics returns true if the metrics listener is enabled
func (c *Config) HasMetrics() bool {
	return c.Metrics.ListeningAddress != ""
}
