// Package statsserver exposes a running search's statistics over
// HTTP: a JSON snapshot endpoint and a Prometheus /metrics endpoint.
// Modeled on the single-purpose HTTP server the pack's tabular
// reinforcement-learning visualizer runs, routed with gorilla/mux
// rather than a bare net/http.ServeMux so path-parameterized endpoints
// can be added without hand-rolled path parsing. Only /stats and
// /metrics are registered.
package statsserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gitrdm/fdplan/internal/logging"
	"github.com/gitrdm/fdplan/pkg/fdplan"
)

// Server serves /stats (a JSON Statistics snapshot) and /metrics (the
// Prometheus exposition format) for a single in-progress or completed
// search.
type Server struct {
	httpServer *http.Server
	log        logging.Logger
}

// New builds a Server bound to addr. stats is read on every /stats
// request, so callers typically pass the same *fdplan.Statistics a
// driver's Core is using.
func New(addr string, stats *fdplan.Statistics, reg *prometheus.Registry, log logging.Logger) *Server {
	if log == nil {
		log = logging.NewNop()
	}

	r := mux.NewRouter()
	r.HandleFunc("/stats", func(w http.ResponseWriter, req *http.Request) {
		snap := stats.Snapshot()
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snap); err != nil {
			log.Errorw("encoding stats snapshot", "error", err)
		}
	}).Methods(http.MethodGet)

	if reg != nil {
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log,
	}
}

// ListenAndServe runs the server until ctx is cancelled, at which
// point it shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("statsserver listening", "addr", s.httpServer.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
