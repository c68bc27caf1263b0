// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package api exposes the transform engine and the key index over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ManuGH/surtd/internal/config"
	"github.com/ManuGH/surtd/internal/index"
	xglog "github.com/ManuGH/surtd/internal/log"
	"github.com/ManuGH/surtd/internal/surt"
)

// Server wires configuration, the transform option set and the key index
// into an HTTP handler.
type Server struct {
	cfg    config.Config
	opts   *surt.Options
	store  *index.Store
	logger zerolog.Logger
}

// NewServer builds a Server. The store may be nil, in which case the
// index endpoints respond 503.
func NewServer(cfg config.Config, store *index.Store) *Server {
	return &Server{
		cfg:    cfg,
		opts:   cfg.TransformOptions(),
		store:  store,
		logger: xglog.WithComponent("api"),
	}
}

// Router assembles the middleware stack and routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(s.requestLogger)
	if s.cfg.RateLimit > 0 {
		r.Use(rateLimit(s.cfg.RateLimit, time.Minute))
	}

	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/surt", s.handleSurt)
		r.Post("/surt/batch", s.handleBatch)
		r.Put("/index", s.handlePutIndex)
		r.Get("/index", s.handleScanIndex)
	})

	return r
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully
// within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str(xglog.FieldListenAddr, s.cfg.Listen).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info().Msg("shut down")
	return nil
}
