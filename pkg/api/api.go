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

package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/harsh-app/harsh/internal/logger"
	"github.com/harsh-app/harsh/pkg/config"
)

// API is a http server serving a fixed set of routes
type API interface {
	// Listen binds the listening address without serving yet.
	// Calling it more than once returns the already bound address.
	Listen(ctx context.Context) (net.Addr, error)
	// Run serves the registered routes. It binds the address first if
	// Listen was not called before and blocks until the context is done
	// or the server fails.
	Run(ctx context.Context) error
	// Shutdown gracefully stops the server
	Shutdown(ctx context.Context) error
	// RegisterRoutes registers the given routes on the router
	RegisterRoutes(ctx context.Context, routes ...Route) error
}

type api struct {
	server   *http.Server
	router   chi.Router
	mu       sync.Mutex
	listener net.Listener
}

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

// New creates a new API listening on the configured address
func New(cfg config.ApiConfig) API {
	r := chi.NewRouter()
	return &api{
		server: &http.Server{Addr: cfg.ListeningAddress, Handler: r, ReadHeaderTimeout: readHeaderTimeout},
		router: r,
	}
}

func (a *api) Listen(ctx context.Context) (net.Addr, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listener != nil {
		return a.listener.Addr(), nil
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", a.server.Addr)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to bind api address", "addr", a.server.Addr, "error", err)
		return nil, &ErrBind{Addr: a.server.Addr, Err: err}
	}
	a.listener = ln
	return ln.Addr(), nil
}

func (a *api) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	cErr := make(chan error, 1)

	if len(a.router.Routes()) == 0 {
		return fmt.Errorf("failed serving API: no routes initialized")
	}

	addr, err := a.Listen(ctx)
	if err != nil {
		return fmt.Errorf("failed serving API: %w", err)
	}

	// run http server in goroutine
	go func(cErr chan error) {
		defer close(cErr)
		log.Debug("Serving Api", "addr", addr.String())
		if err := a.server.Serve(a.listener); err != nil {
			cErr <- err
		}
	}(cErr)

	select {
	case <-ctx.Done():
		return fmt.Errorf("failed serving API: %w", ctx.Err())
	case err := <-cErr:
		if errors.Is(err, http.ErrServerClosed) || err == nil {
			log.Info("Api server closed")
			return nil
		}
		log.Error("Failed serving API", "error", err)
		return fmt.Errorf("failed serving API: %w", err)
	}
}

func (a *api) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	err := a.server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Failed to shutdown api server", "error", err)
		return fmt.Errorf("failed shutting down API: %w", err)
	}
	return nil
}

// Route is a single handler registered on a path and method
type Route struct {
	Path    string
	Method  string
	Handler http.HandlerFunc
}

func (a *api) RegisterRoutes(ctx context.Context, routes ...Route) error {
	a.router.Use(logger.Middleware(ctx))
	for _, route := range routes {
		switch route.Method {
		case http.MethodGet:
			a.router.Get(route.Path, route.Handler)
		case http.MethodPost:
			a.router.Post(route.Path, route.Handler)
		case http.MethodPut:
			a.router.Put(route.Path, route.Handler)
		case http.MethodDelete:
			a.router.Delete(route.Path, route.Handler)
		case http.MethodPatch:
			a.router.Patch(route.Path, route.Handler)
		case "Handle":
			a.router.Handle(route.Path, route.Handler)
		case "HandleFunc":
			a.router.HandleFunc(route.Path, route.Handler)
		default:
			return fmt.Errorf("unsupported method for %s: %s", route.Path, route.Method)
		}
	}

	return nil
}
