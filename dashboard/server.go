// Package dashboard serves the interactive market dashboard: an HTML page,
// a JSON API, PNG charts, flat-file exports and Prometheus metrics.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mls-insights/config"
	"mls-insights/services"
	"mls-insights/utils"
)

// Server wires the dataset store and analytics services to HTTP.
type Server struct {
	cfg      *config.Config
	store    *services.DatasetStore
	pricing  *services.PricingService
	insights *services.InsightService
	logger   *utils.Logger
	access   *slog.Logger
	registry *prometheus.Registry
	metrics  *httpMetrics
	validate *validator.Validate
}

// New creates a Server. reg receives the HTTP collectors and is exposed on
// /metrics, so pipeline collectors registered on it are served too.
func New(cfg *config.Config, store *services.DatasetStore, logger *utils.Logger, reg *prometheus.Registry) *Server {
	return &Server{
		cfg:      cfg,
		store:    store,
		pricing:  services.NewPricingService(logger),
		insights: services.NewInsightService(logger),
		logger:   logger,
		access:   logger.Slog().With(slog.String("component", "dashboard")),
		registry: reg,
		metrics:  newHTTPMetrics(reg),
		validate: validator.New(),
	}
}

// Routes returns the dashboard router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(s.metrics.instrument)

	r.With(middleware.Compress(5)).Get("/", s.handlePage)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(middleware.Compress(5))
		r.Get("/datasets", s.handleDatasets)
		r.Get("/stats", s.handleStats)
		r.Get("/trend", s.handleTrend)
		r.Get("/pricing", s.handlePricing)
		r.Get("/top-sales", s.handleTopSales)
		r.Get("/columns", s.handleColumns)
		r.Post("/proceeds", s.handleProceeds)
	})

	r.Route("/charts", func(r chi.Router) {
		r.Get("/trend.png", s.handleChart(chartTrend))
		r.Get("/scatter.png", s.handleChart(chartScatter))
		r.Get("/yoy.png", s.handleChart(chartYoY))
		r.Get("/periods.png", s.handleChart(chartPeriods))
	})

	r.Route("/export", func(r chi.Router) {
		r.Get("/sold.csv", s.handleExport("csv"))
		r.Get("/sold.xlsx", s.handleExport("xlsx"))
	})

	return r
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	sc := s.cfg.Server
	srv := &http.Server{
		Addr:         sc.Addr,
		Handler:      s.Routes(),
		ReadTimeout:  time.Duration(sc.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(sc.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("[dashboard] listening on %s", sc.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("dashboard server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("[dashboard] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(sc.ShutdownTimeoutSec)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	return <-errCh
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.access.DebugContext(r.Context(), "request",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("elapsed", time.Since(start)),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	loaded := s.store.Loaded()
	status := "ok"
	if len(loaded) == 0 {
		status = "degraded"
	}
	render.JSON(w, r, map[string]interface{}{
		"status":          status,
		"datasets_loaded": len(loaded),
		"datasets_total":  len(s.store.Datasets()),
		"sources_failing": s.store.Failing(),
	})
}
