package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kibfin/supplier-portal/internal/infrastructure/config"
	redisdb "github.com/kibfin/supplier-portal/internal/infrastructure/db/redis"
	"github.com/kibfin/supplier-portal/internal/portal"
	"github.com/kibfin/supplier-portal/internal/portal/session"
	"github.com/kibfin/supplier-portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.LoadPortal()

	log := logger.Init(logger.Options{
		Service: "supplier-portal",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}()

	router := portal.NewRouter(session.NewRedisStore(redisClient), portal.Options{
		APIBaseURL:   cfg.APIBaseURL,
		CookieName:   cfg.SessionCookie,
		SessionTTL:   cfg.SessionTTL,
		PollInterval: cfg.PollInterval,
	}, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("api", cfg.APIBaseURL).Msg("portal listening")
		if err := router.Echo.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	router.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := router.Echo.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
