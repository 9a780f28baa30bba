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
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harsh-app/harsh/pkg/api"
	"github.com/harsh-app/harsh/pkg/config"
)

// startService runs a service on a random local port and waits until it listens
func startService(t *testing.T) (*Service, string, context.CancelFunc, chan error) {
	t.Helper()
	s := New(config.ApiConfig{ListeningAddress: "127.0.0.1:0"})
	assert.Equal(t, Starting, s.State())

	ctx, cancel := context.WithCancel(context.Background())
	cErr := make(chan error, 1)
	go func() {
		cErr <- s.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		return s.State() == Listening
	}, 5*time.Second, 10*time.Millisecond, "service did not start listening")

	return s, fmt.Sprintf("http://%s", s.Addr()), cancel, cErr
}

func get(t *testing.T, method, url string) (int, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), method, url, http.NoBody)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, b
}

func TestService_Run(t *testing.T) {
	s, base, cancel, cErr := startService(t)
	start := time.Now().Add(-time.Second).UnixMilli()

	status, body := get(t, http.MethodGet, base+"/")
	assert.Equal(t, http.StatusOK, status)
	assert.Regexp(t, bodyPattern, string(body))

	var res Response
	require.NoError(t, json.Unmarshal(body, &res))
	assert.GreaterOrEqual(t, res.Timestamp, start)

	assert.Equal(t, float64(1), testutil.ToFloat64(s.metrics.requests.WithLabelValues("200", "get")))

	cancel()
	select {
	case err := <-cErr:
		assert.NoError(t, err, "graceful shutdown returns no error")
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop after context was canceled")
	}
	assert.Equal(t, Listening, s.State(), "no transition back to starting")
}

func TestService_Shutdown(t *testing.T) {
	s, base, cancel, cErr := startService(t)
	defer cancel()

	require.NoError(t, s.Shutdown(context.Background()))
	select {
	case err := <-cErr:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop after shutdown")
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, base+"/", http.NoBody)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	if err == nil {
		resp.Body.Close()
	}
	assert.Error(t, err, "listener is closed after shutdown")
}

func TestService_unknownRoutes(t *testing.T) {
	_, base, cancel, cErr := startService(t)
	defer func() {
		cancel()
		<-cErr
	}()

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{name: "unknown path", method: http.MethodGet, path: "/health", want: http.StatusNotFound},
		{name: "nested path", method: http.MethodGet, path: "/v1/status", want: http.StatusNotFound},
		{name: "wrong method", method: http.MethodPost, path: "/", want: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := get(t, tt.method, base+tt.path)
			assert.Equal(t, tt.want, status)
			assert.NotEqual(t, http.StatusOK, status)
		})
	}
}

func TestService_RunAddressInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	s := New(config.ApiConfig{ListeningAddress: ln.Addr().String()})
	err = s.Run(context.Background())

	var bindErr *api.ErrBind
	assert.ErrorAs(t, err, &bindErr)
	assert.Equal(t, Starting, s.State())
	assert.Nil(t, s.Addr())
}

func TestService_GetMetricCollectors(t *testing.T) {
	s := New(config.ApiConfig{ListeningAddress: ":8080"})
	assert.Len(t, s.GetMetricCollectors(), 2)
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{state: Starting, want: "starting"},
		{state: Listening, want: "listening"},
		{state: State(42), want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.String())
		})
	}
}
