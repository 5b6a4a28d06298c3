package statsserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/fdplan/internal/logging"
	"github.com/gitrdm/fdplan/pkg/fdplan"
)

func TestServerServesStatsAndMetrics(t *testing.T) {
	stats := fdplan.NewStatistics()
	stats.IncSteps()
	stats.IncEvaluated()

	reg := prometheus.NewRegistry()
	srv := New("127.0.0.1:0", stats, reg, logging.NewNop())

	ts := httptest.NewServer(srv.httpServer.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap fdplan.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	require.Equal(t, int64(1), snap.Steps)
	require.Equal(t, int64(1), snap.EvaluatedStates)

	metricsResp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer metricsResp.Body.Close()
	require.Equal(t, http.StatusOK, metricsResp.StatusCode)
}

func TestServerListenAndServeShutsDownOnContextCancel(t *testing.T) {
	stats := fdplan.NewStatistics()
	srv := New("127.0.0.1:0", stats, nil, logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("ListenAndServe did not return after context cancellation")
	}
}
