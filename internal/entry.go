// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/starford/bodygraph/internal/api"
	"github.com/starford/bodygraph/internal/chartservice"
	"github.com/starford/bodygraph/internal/confwatch"
	"github.com/starford/bodygraph/internal/design"
	"github.com/starford/bodygraph/internal/ephemeris"
	"github.com/starford/bodygraph/internal/houses"
	"github.com/starford/bodygraph/internal/mcpserver"
	"github.com/starford/bodygraph/internal/metrics"
)

// NewChartService wires the engine with the solver settings from cfg.
func NewChartService(cfg *Config, opts ...chartservice.Option) *chartservice.Service {
	eph := ephemeris.New()
	return chartservice.NewService(eph,
		design.NewSolver(eph,
			design.WithTolerance(cfg.Engine.DesignTolerance),
			design.WithMaxIterations(cfg.Engine.DesignMaxIterations)),
		houses.NewSolver(
			houses.WithTolerance(cfg.Engine.HouseTolerance),
			houses.WithMaxIterations(cfg.Engine.HouseMaxIterations)),
		chartservice.Defaults{
			BirthTime: cfg.Defaults.BirthTime,
			UTCOffset: cfg.Defaults.UTCOffset,
		},
		opts...)
}

// NewRegistry returns a Prometheus registry with the Go runtime and
// process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// NewLogger returns a JSON logger writing to w whose level can be changed
// through the returned LevelVar.
func NewLogger(w io.Writer, level slog.Level) (*slog.Logger, *slog.LevelVar) {
	lv := new(slog.LevelVar)
	lv.Set(level)
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lv})), lv
}

// NewHandler builds the full HTTP handler: middleware, health checks,
// metrics and the API under /api.
func NewHandler(svc *chartservice.Service, cfg *Config, reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	r.Mount("/api", api.NewRouter(svc, cfg.App.HTTP.MaxBodyBytes))
	return r
}

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logger, level := NewLogger(os.Stdout, cfg.App.LogLevel)
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("log_level", cfg.App.LogLevel.String()),
		slog.Float64("design_tolerance", cfg.Engine.DesignTolerance),
		slog.Int("design_max_iterations", cfg.Engine.DesignMaxIterations))

	reg := NewRegistry()
	svc := NewChartService(cfg, chartservice.WithMetrics(metrics.New(reg)))

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: NewHandler(svc, cfg, reg),
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	g, gCtx := errgroup.WithContext(runCtx)

	// Config watcher: only the log level is applied live.
	if app.configPath != "" {
		g.Go(func() error {
			err := confwatch.Watch(gCtx, app.configPath, NewDefaultConfig, logger, func(next *Config) {
				if next.App.LogLevel != level.Level() {
					logger.Info("Log level changed",
						slog.String("from", level.Level().String()),
						slog.String("to", next.App.LogLevel.String()))
					level.Set(next.App.LogLevel)
				}
			})
			if err != nil {
				logger.Warn("config watcher disabled", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		stop()

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP serves the MCP tools on stdin/stdout. Logs go to stderr so they
// never interleave with protocol frames.
func RunMCP(_ context.Context, opts ...Option) error {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	logger, _ := NewLogger(os.Stderr, app.config.App.LogLevel)
	slog.SetDefault(logger)

	logger.Info("MCP server starting on stdio")
	return mcpserver.New(NewChartService(app.config)).ServeStdio()
}
