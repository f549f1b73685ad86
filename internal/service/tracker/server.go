package tracker

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oshokin/timekeeper/internal/logger"
	"github.com/oshokin/timekeeper/internal/metrics"
)

const (
	// MetricsPath serves the Prometheus exposition.
	MetricsPath = "/metrics"
	// HealthPath answers liveness probes.
	HealthPath = "/health"

	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// metricsServer exposes the engine metrics over HTTP.
type metricsServer struct {
	// server is the underlying HTTP server.
	server *http.Server
	// address is the bound listen address.
	address string
	// done is closed once Serve returns.
	done chan struct{}
}

// newMetricsHandler builds the mux serving metrics and health checks.
func newMetricsHandler(instruments *metrics.Metrics) (http.Handler, error) {
	reg := prometheus.NewRegistry()

	if err := instruments.Register(reg); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	if err := registerRuntimeCollectors(reg); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle(MetricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc(HealthPath, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return mux, nil
}

// registerRuntimeCollectors adds Go runtime and process metrics.
func registerRuntimeCollectors(reg prometheus.Registerer) error {
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return fmt.Errorf("register go collector: %w", err)
	}

	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return fmt.Errorf("register process collector: %w", err)
	}

	return nil
}

// startMetricsServer listens on address and serves in the background.
func startMetricsServer(ctx context.Context, address string, instruments *metrics.Metrics) (*metricsServer, error) {
	handler, err := newMetricsHandler(instruments)
	if err != nil {
		return nil, err
	}

	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", address, err)
	}

	s := &metricsServer{
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		address: lis.Addr().String(),
		done:    make(chan struct{}),
	}

	logger.InfoKV(ctx, "Metrics server listening", "listen_address", s.address)

	go func() {
		defer close(s.done)

		if err := s.server.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorKV(ctx, "Metrics server failed", "error", err)
		}
	}()

	return s, nil
}

// shutdown stops the server and waits for Serve to return.
func (s *metricsServer) shutdown(ctx context.Context) {
	// ctx is already canceled here, so the timeout gets a fresh parent.
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		logger.ErrorKV(ctx, "Metrics server shutdown failed", "error", err)
	}

	<-s.done
}
