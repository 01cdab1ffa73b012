package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"front_desk/internal/adapters/deskapi"
	"front_desk/internal/adapters/observability"
	"front_desk/internal/app"
	"front_desk/internal/shared"
	mysqlrepo "front_desk/internal/storage/mysql"
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	log.Info().
		Str("base", cfg.DeskBaseURL).
		Int("workers", cfg.ExportWorkers).
		Int("rps", cfg.ExportRPS).
		Msg("exporter starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	client, err := deskapi.New(cfg.DeskBaseURL, cfg.DeskAPIKey, cfg.ExportRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize desk API client")
	}

	start := time.Now()
	exp := app.NewExportService(client, mysqlrepo.New(db), cfg.ExportWorkers)
	rep, err := exp.ExportAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("export failed")
	}

	log.Info().
		Int("exported", rep.Exported).
		Int("unbalanced", rep.Unbalanced).
		Int("mismatched", rep.Mismatched).
		Int("missed", rep.Missed).
		Int("failed", rep.Failed).
		Dur("took", time.Since(start)).
		Msg("export completed")
	if rep.Failed > 0 {
		stop()
		_ = db.Close()
		os.Exit(1)
	}
}
