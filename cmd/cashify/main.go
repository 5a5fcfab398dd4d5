package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"cashify/internal/backend"
	"cashify/internal/cli"
	apphttp "cashify/internal/http"
	"cashify/internal/log"
	"cashify/internal/metrics"
	"cashify/internal/session"
)

func main() {
	cli.LoadEnvFile()
	cfg, logger := cli.LoadAndValidateConfig()

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		logger.Error("Failed to register metrics", log.FieldError, err)
		os.Exit(1)
	}

	backendConfig, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	res, err := backend.NewFactory(logger).CreateBackend(context.Background(), backendConfig)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	sessions := session.NewStore(cfg.SessionMaxEntries, cfg.SessionTTL)
	sessions.StartCleanup(5*time.Minute, logger)

	loc := cfg.Location()
	format, err := apphttp.NewFormatter(cfg.Locale, cfg.Currency, loc)
	if err != nil {
		logger.Error("Invalid display settings", log.FieldError, err)
		os.Exit(1)
	}

	srv, err := apphttp.NewServer(apphttp.Options{
		Addr:               ":" + cfg.Port,
		Gateway:            res.Gateway,
		Sessions:           sessions,
		Logger:             logger,
		Formatter:          format,
		Location:           loc,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		TrustedProxies:     cfg.TrustedProxies,
		CookieSecure:       cfg.CookieSecure,
	})
	if err != nil {
		logger.Error("Failed to create server", log.FieldError, err)
		os.Exit(1)
	}

	done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) error {
		err := srv.Shutdown(ctx)
		sessions.Stop()
		if res.Cleanup != nil {
			err = errors.Join(err, res.Cleanup())
		}
		return err
	})

	logger.Info("Starting cashify server", "port", cfg.Port, "backend", cfg.DataBackend, "api_url", cfg.APIBaseURL)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-done
	logger.Info("Server stopped gracefully")
}
