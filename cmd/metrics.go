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
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/harsh-app/harsh/internal/logger"
	"github.com/harsh-app/harsh/pkg/api"
	"github.com/harsh-app/harsh/pkg/config"
	"github.com/harsh-app/harsh/pkg/metrics"
)

const metricsPath = "/metrics"

// startMetrics binds addr and serves the given collectors in the background
// until the returned stop function is called.
func startMetrics(ctx context.Context, addr string, cs ...prometheus.Collector) (stop func() error, err error) {
	log := logger.FromContext(ctx).With("addr", addr)

	m := metrics.New()
	if err := m.Register(cs...); err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	srv := api.New(config.ApiConfig{ListeningAddress: addr})
	route := api.Route{Path: metricsPath, Method: http.MethodGet, Handler: m.Handler().ServeHTTP}
	if err := srv.RegisterRoutes(ctx, route); err != nil {
		return nil, fmt.Errorf("failed to register metrics route: %w", err)
	}
	if _, err := srv.Listen(ctx); err != nil {
		return nil, fmt.Errorf("failed to start metrics listener: %w", err)
	}
	log.Info("Serving metrics", "path", metricsPath)

	ctx, cancel := context.WithCancel(ctx)
	var g errgroup.Group
	g.Go(func() error {
		err := srv.Run(ctx)
		if ctx.Err() != nil {
			return srv.Shutdown(ctx)
		}
		return err
	})

	return func() error {
		cancel()
		return g.Wait()
	}, nil
}
