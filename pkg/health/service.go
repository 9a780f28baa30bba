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

package health

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harsh-app/harsh/internal/logger"
	"github.com/harsh-app/harsh/pkg/api"
	"github.com/harsh-app/harsh/pkg/config"
)

// Service is the health service answering GET / with a health response.
// A Service is started once; it keeps listening until its context is done.
type Service struct {
	api     api.API
	address string
	clock   *Clock
	metrics metrics
	state   atomic.Int32

	mu    sync.Mutex
	bound net.Addr
}

// New creates a new health service listening on the configured address
func New(cfg config.ApiConfig) *Service {
	return &Service{
		api:     api.New(cfg),
		address: cfg.ListeningAddress,
		clock:   NewClock(nil),
		metrics: newMetrics(),
	}
}

// Run binds the listener and serves the health route until the context is done.
// A bind failure is returned immediately. Once the context is done the
// server is shut down gracefully and Run returns nil.
func (s *Service) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	route := api.Route{
		Path:    "/",
		Method:  http.MethodGet,
		Handler: s.instrument(Handler(s.clock)),
	}
	if err := s.api.RegisterRoutes(ctx, route); err != nil {
		return fmt.Errorf("failed to register routes: %w", err)
	}

	addr, err := s.api.Listen(ctx)
	if err != nil {
		return fmt.Errorf("failed to start %s: %w", ServiceName, err)
	}
	s.mu.Lock()
	s.bound = addr
	s.mu.Unlock()
	s.state.Store(int32(Listening))
	log.Info(fmt.Sprintf("%s on %s", ServiceName, s.address), "addr", addr.String())

	err = s.api.Run(ctx)
	if ctx.Err() != nil {
		log.Info("Shutting down", "reason", context.Cause(ctx))
		return s.Shutdown(ctx)
	}
	return err
}

// Shutdown gracefully stops the service.
// It is called by Run once its context is done.
func (s *Service) Shutdown(ctx context.Context) error {
	return s.api.Shutdown(ctx)
}

// State returns the current lifecycle state
func (s *Service) State() State {
	return State(s.state.Load())
}

// Addr returns the bound address or nil if the service is not listening yet
func (s *Service) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bound
}

// GetMetricCollectors returns all metric collectors of the service
func (s *Service) GetMetricCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		s.metrics.requests,
		s.metrics.duration,
	}
}

// instrument wraps the handler with the request metrics
func (s *Service) instrument(h http.HandlerFunc) http.HandlerFunc {
	return promhttp.InstrumentHandlerDuration(s.metrics.duration,
		promhttp.InstrumentHandlerCounter(s.metrics.requests, h),
	)
}
