// Package webapi serves the read-only JSON API over HTTP.
package webapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/huangsam/benchboard/internal/contract"
	"github.com/rs/zerolog"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// NewRouter wires every endpoint onto a chi router.
func NewRouter(cfg *contract.Config, mgr contract.CacheManager, logger zerolog.Logger) http.Handler {
	h := &apiHandler{baseCfg: cfg, mgr: mgr, logger: logger}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(accessLog(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(requestTimeout))

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/models", h.listModels)
		r.Get("/models/options", h.modelOptions)
		r.Get("/stats", h.modelStats)
		r.Get("/benchmarks", h.listBenchmarks)
		r.Get("/benchmarks/{benchmarkID}", h.leaderboard)
		r.Get("/compare", h.compare)
		r.Get("/publishers", h.listPublishers)
		r.Get("/publishers/{name}", h.publisher)
		r.Get("/tags", h.listTags)
	})

	return r
}

// accessLog writes one structured line per request.
func accessLog(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info().
				Str("request_id", chimiddleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("remote", r.RemoteAddr).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

// Serve listens on cfg.ServeAddr until ctx is canceled, then shuts down
// gracefully.
func Serve(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	logger, err := NewLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ServeAddr,
		Handler:           NewRouter(cfg, mgr, logger),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      requestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.ServeAddr).Str("data", cfg.DataPath).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
