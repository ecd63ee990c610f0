package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/mrussa/order-insights/internal/config"
	"github.com/mrussa/order-insights/internal/db"
	"github.com/mrussa/order-insights/internal/httpapi"
	"github.com/mrussa/order-insights/internal/ibge"
	"github.com/mrussa/order-insights/internal/ingest"
	"github.com/mrussa/order-insights/internal/kafka"
	"github.com/mrussa/order-insights/internal/logger"
	"github.com/mrussa/order-insights/internal/migrate"
	"github.com/mrussa/order-insights/internal/repo"
	"github.com/mrussa/order-insights/internal/store"
)

var version = "dev"

const loadTimeout = 2 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger settings live in the config, so fall back to a default one
		l, _ := logger.New("info", "json")
		l.Fatalf("[CFG] %v", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()
	logf := logger.Printf(log)

	log.Infow("[CFG] loaded",
		"http", cfg.HTTPAddr,
		"seed_file", cfg.SeedFile,
		"dsn_present", cfg.PostgresDSN != "",
		"kafka_present", cfg.KafkaBrokers != "",
		"version", version,
	)

	startCtx := context.Background()

	var rpo *repo.OrdersRepo
	if cfg.PostgresDSN != "" {
		pool := openPostgres(startCtx, cfg, log)
		defer pool.Close()
		rpo = repo.NewOrdersRepo(pool, cfg.SeedLimit, logf)
	}

	var sources []ingest.Source
	if cfg.SeedFile != "" {
		sources = append(sources, ingest.FileSource{Path: cfg.SeedFile, Logf: logf})
	}
	if rpo != nil {
		sources = append(sources, rpo)
	}
	if cfg.KafkaBrokers != "" {
		d := kafka.NewDrainer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroup, cfg.KafkaDrainIdle, nil, logf)
		if rpo != nil {
			d.Sink = rpo
		}
		sources = append(sources, d)
	}

	orders := store.New()
	loadCtx, cancel := context.WithTimeout(startCtx, loadTimeout)
	n, err := ingest.LoadAll(loadCtx, orders, sources...)
	cancel()
	if err != nil {
		log.Fatalf("[INGEST] %v", err)
	}
	log.Infow("[INGEST] store ready", "orders", n, "sources", len(sources))

	deps := httpapi.Deps{
		Store:   orders,
		Cities:  ibge.New(cfg.IBGEBaseURL),
		Logf:    logf,
		Version: version,
		Origins: cfg.CORSOrigins,
	}
	if rpo != nil {
		deps.DB = rpo
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.New(deps).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("[HTTP] listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[HTTP] %v", err)
		}
	}()

	<-ctx.Done()
	log.Infof("[HTTP] shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warnw("[HTTP] shutdown error", "err", err)
	}
	log.Infof("[HTTP] bye")
}

func openPostgres(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) *pgxpool.Pool {
	pool, err := db.NewPool(ctx, cfg.PostgresDSN, int32(cfg.PostgresMaxConns))
	if err != nil {
		log.Fatalf("[DB] new pool: %v", err)
	}
	if err := db.Ping(ctx, pool); err != nil {
		pool.Close()
		log.Fatalf("[DB] ping: %v", err)
	}
	log.Infof("[DB] connected")

	if cfg.Migrate {
		if err := migrate.Up(ctx, db.SQLDB(pool)); err != nil {
			pool.Close()
			log.Fatalf("[DB] migrate: %v", err)
		}
		log.Infof("[DB] migrations applied")
	}
	return pool
}
