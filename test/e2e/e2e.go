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

// Package e2e runs the health service and the load generator against each other.
package e2e

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/harsh-app/harsh/internal/httpclient"
	"github.com/harsh-app/harsh/pkg/config"
	"github.com/harsh-app/harsh/pkg/health"
	"github.com/harsh-app/harsh/pkg/loadtest"
)

const startupTimeout = 5 * time.Second

// Scenario is a load test run against a locally started health service
type Scenario struct {
	t       *testing.T
	opts    loadtest.Options
	service bool
}

// NewScenario creates a scenario with the default load test options
func NewScenario(t *testing.T) *Scenario {
	return &Scenario{
		t:       t,
		opts:    loadtest.DefaultOptions(),
		service: true,
	}
}

func (s *Scenario) WithVUs(vus int) *Scenario {
	s.opts.VUs = vus
	return s
}

func (s *Scenario) WithDuration(d time.Duration) *Scenario {
	s.opts.Duration = d
	return s
}

func (s *Scenario) WithSleep(d time.Duration) *Scenario {
	s.opts.Sleep = d
	return s
}

// WithThresholds replaces the thresholds of the metric
func (s *Scenario) WithThresholds(metric string, exprs ...string) *Scenario {
	s.opts.Thresholds[metric] = exprs
	return s
}

// WithoutService targets a port nobody listens on
func (s *Scenario) WithoutService() *Scenario {
	s.service = false
	return s
}

// Run starts the health service if needed and runs the load test against it
func (s *Scenario) Run(ctx context.Context) (*loadtest.Summary, error) {
	s.t.Helper()

	target, stop, err := s.start(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := stop(); err != nil {
			s.t.Errorf("Failed to stop health service: %v", err)
		}
	}()

	opts := s.opts
	opts.Target = target
	runner, err := loadtest.New(opts)
	if err != nil {
		return nil, err
	}
	return runner.Run(httpclient.IntoContext(ctx, &http.Client{}))
}

// start returns the target url and a function stopping the service
func (s *Scenario) start(ctx context.Context) (target string, stop func() error, err error) {
	if !s.service {
		addr, err := unusedAddress()
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("http://%s/", addr), func() error { return nil }, nil
	}

	svc := health.New(config.ApiConfig{ListeningAddress: "127.0.0.1:0"})
	ctx, cancel := context.WithCancel(ctx)
	cErr := make(chan error, 1)
	go func() {
		cErr <- svc.Run(ctx)
	}()

	stop = func() error {
		cancel()
		return <-cErr
	}

	deadline := time.After(startupTimeout)
	for svc.State() != health.Listening {
		select {
		case err := <-cErr:
			cancel()
			return "", nil, fmt.Errorf("health service did not start: %w", err)
		case <-deadline:
			return "", nil, errors.Join(errors.New("health service did not start in time"), stop())
		case <-time.After(10 * time.Millisecond):
		}
	}
	return fmt.Sprintf("http://%s/", svc.Addr()), stop, nil
}

// unusedAddress returns a local address that refuses connections
func unusedAddress() (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	addr := ln.Addr().String()
	return addr, ln.Close()
}
