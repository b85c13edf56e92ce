package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes builds the HTTP mux with all endpoints registered.
func (s *Server) Routes(enableMetrics bool) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/v1/spot", s.corsMiddleware(s.spotImageHandler))
	mux.HandleFunc("/v1/threshold", s.corsMiddleware(s.thresholdHandler))
	mux.HandleFunc("/v1/stream", s.streamHandler)
	if enableMetrics {
		mux.Handle("/metrics", promhttp.Handler())
	}
	return mux
}

// ListenAndServe runs the server on the configured host and port until ctx
// is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, enableMetrics bool) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(enableMetrics),
		ReadHeaderTimeout: 10 * time.Second,
		// No WriteTimeout: the stream endpoint holds connections open and
		// per-request work is bounded by the pipeline context timeout.
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr, "metrics", enableMetrics)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
