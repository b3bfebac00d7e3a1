// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyturn Contributors

package observability_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyturn/keyturn/internal/observability"
)

func startServer(t *testing.T, ready observability.ReadinessChecker) *observability.Server {
	t.Helper()

	server := observability.NewServer("127.0.0.1:0", ready)
	errCh, err := server.Start()
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, server.Stop(ctx))
		for range errCh { //nolint:revive // drain until closed
		}
	})

	return server
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()

	resp, err := http.Get(url) //nolint:gosec,noctx // test request to local listener
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck // test cleanup

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestMetrics_RecordOperation(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	metrics.RecordOperation("login", "ok")
	metrics.RecordOperation("login", "ok")
	metrics.RecordOperation("signup", "conflict")

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.OperationsTotal.WithLabelValues("login", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.OperationsTotal.WithLabelValues("signup", "conflict")))
}

func TestServer_Liveness(t *testing.T) {
	server := startServer(t, nil)

	status, body := get(t, fmt.Sprintf("http://%s/healthz/liveness", server.Addr()))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok\n", body)
}

func TestServer_ReadinessTracksHydration(t *testing.T) {
	var hydrated atomic.Bool
	server := startServer(t, hydrated.Load)
	url := fmt.Sprintf("http://%s/healthz/readiness", server.Addr())

	status, body := get(t, url)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "not ready\n", body)

	hydrated.Store(true)
	status, body = get(t, url)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok\n", body)
}

func TestServer_MetricsEndpoint(t *testing.T) {
	server := startServer(t, nil)

	server.Metrics().RecordOperation("login", "ok")

	status, body := get(t, fmt.Sprintf("http://%s/metrics", server.Addr()))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "keyturn_auth_operations_total")
}

func TestServer_DoubleStartRejected(t *testing.T) {
	server := startServer(t, nil)

	_, err := server.Start()
	require.Error(t, err)
}

func TestServer_StopWithoutStartIsNoop(t *testing.T) {
	server := observability.NewServer("127.0.0.1:0", nil)
	require.NoError(t, server.Stop(context.Background()))
}
