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
	"errors"
	"net"
	"strconv"

	"github.com/harsh-app/harsh/internal/logger"
)

// Validate validates the config
func (c *Config) Validate(ctx context.Context, fm *ServeFlagsNameMapping) error {
	ctx, cancel := logger.NewContextWithLogger(ctx, "configValidation")
	defer cancel()
	log := logger.FromContext(ctx)

	var errs []error
	if !isValidAddress(c.Api.ListeningAddress) {
		log.ErrorContext(ctx, "The api address is not a valid listening address",
			fm.ApiAddress, c.Api.ListeningAddress)
		errs = append(errs, ErrInvalidApiAddress)
	}

	if c.HasMetrics() {
		if !isValidAddress(c.Metrics.ListeningAddress) {
			log.ErrorContext(ctx, "The metrics address is not a valid listening address",
				fm.MetricsAddress, c.Metrics.ListeningAddress)
			errs = append(errs, ErrInvalidMetricsAddress)
		} else if c.Metrics.ListeningAddress == c.Api.ListeningAddress {
			log.ErrorContext(ctx, "The metrics listener conflicts with the api listener",
				fm.MetricsAddress, c.Metrics.ListeningAddress)
			errs = append(errs, ErrAddressConflict)
		}
	}

	return errors.Join(errs...)
}

// isValidAddress returns true if addr is a host:port pair with a valid port.
// The host may be empty to listen on all interfaces.
func isValidAddress(addr string) bool {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}
	p, err := strconv.Atoi(port)
	if err != nil {
		return false
	}
	return p >= 0 && p <= 65535
}
