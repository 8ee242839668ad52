package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"zynlepay/internal/config"
	httpx "zynlepay/internal/http"
	"zynlepay/pkg/provider"
	"zynlepay/pkg/provider/zynle"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogging(cfg.App)

	client, err := zynle.New(cfg.ClientConfig(),
		zynle.WithLogger(provider.NewZerologLogger(log.Logger)),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("zynlepay client")
	}
	if cfg.Sec.APIToken == "" {
		log.Warn().Msg("API_TOKEN not set; /api/v1 is disabled")
	}

	r := httpx.NewRouter(httpx.RouterDependencies{Config: cfg, Gateway: client})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: statusBudget(client.Timeout(), cfg.Retry),
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().
			Str("base_url", client.BaseURL()).
			Bool("sandbox", client.Sandbox()).
			Msgf("ZynlePay gateway listening on :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info().Msg("server stopped")
}

// statusBudget leaves room for a full status retry loop before the write
// deadline fires.
func statusBudget(timeout time.Duration, retry config.RetryCfg) time.Duration {
	return (timeout+retry.Delay)*time.Duration(retry.Attempts) + 15*time.Second
}

func setupLogging(app config.AppCfg) {
	level, err := zerolog.ParseLevel(app.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if app.Env == "local" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
