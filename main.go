package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"workshop-registration/pkg/api"
	"workshop-registration/pkg/clients/webhook"
	"workshop-registration/pkg/config"
	"workshop-registration/pkg/form"
	"workshop-registration/pkg/logger"
	"workshop-registration/pkg/metrics"
	"workshop-registration/pkg/services"
	"workshop-registration/pkg/session"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
	sweepInterval     = time.Minute
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("error loading .env file", slog.String("error", err.Error()))
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	level, _ := config.ParseLogLevel(cfg.LogLevel)
	log := logger.New(os.Stdout, level)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	allowList := cfg.AllowList()
	if cfg.WebhookURL == "" {
		log.Warn("WEBHOOK_URL is not set; submissions will fail until it is configured")
	}
	log.Info("configuration loaded",
		slog.Bool("allow_list_enabled", allowList.Configured()),
		slog.Int("allow_list_size", allowList.Len()),
		slog.Duration("session_ttl", cfg.SessionTTL))

	// Initialize services
	validator := services.NewValidator(allowList)
	submitter := services.NewRegistrationSubmitter(
		webhook.NewClient(nil),
		cfg.WebhookURL,
		services.WithMetrics(m),
	)
	sessions := session.NewStore(func() *form.Form {
		return form.New(validator, submitter, form.WithMetrics(m))
	}, cfg.SessionTTL, session.WithMetrics(m))

	gin.SetMode(cfg.GinMode)

	handlers := api.NewHandlers(sessions, cfg.SessionTTL, cfg.SecureCookies)
	router, err := api.NewRouter(handlers, api.RouterConfig{
		Logger:            log,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		MetricsHandler:    promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server starting", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return sessions.RunJanitor(gctx, sweepInterval, log)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
