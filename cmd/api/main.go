package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog/log"

	server "front_desk/internal/adapters/http_server"
	"front_desk/internal/adapters/observability"
	redisad "front_desk/internal/adapters/redis"
	"front_desk/internal/app"
	"front_desk/internal/domain"
	"front_desk/internal/shared"
	"front_desk/internal/storage/memory"
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// store, seeded on every start
	store := memory.New()
	if err := app.Seed(ctx, store); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}

	// optional dashboard cache
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, running without cache")
			_ = rc.Close()
		} else {
			cache = rc
			defer rc.Close()
		}
		cancel()
	}

	desk := app.NewDesk(app.Options{
		Store:    store,
		Cache:    cache,
		CacheTTL: cfg.CacheTTL,
		Location: cfg.Location(),
		Policy: app.Policy{
			LinkGuestOnCheckIn:      cfg.Policy.LinkGuestOnCheckIn,
			OccupyOnCheckIn:         cfg.Policy.OccupyOnCheckIn,
			RejectDoubleOccupancy:   cfg.Policy.RejectDoubleOccupancy,
			ResetChargesOnAvailable: cfg.Policy.ResetChargesOnAvailable,
			DetachGuestOnAvailable:  cfg.Policy.DetachGuestOnAvailable,
		},
	})

	// http
	srv := server.New(cfg.HTTPTimeout)
	reg := observability.InitRegistry()
	if cfg.MetricsAddr != "" {
		observability.Serve(cfg.MetricsAddr, reg)
	} else {
		srv.Mount("/metrics", observability.MetricsHandler(reg))
	}
	srv.MountHandlers(&server.Handlers{Desk: desk})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Interface("policy", cfg.Policy).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}
