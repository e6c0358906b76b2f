package main

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"ProductStore/internal/catalog"
	"ProductStore/internal/config"
	"ProductStore/pkg/kit"
)

const (
	service        = "catalog"
	connectTimeout = 15 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	store, closeStore, err := openStore(cfg, log)
	if err != nil {
		log.Fatal("open store failed", zap.Error(err))
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &catalog.Server{Store: store, Log: log}
	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.MetricsEnabled,
		MetricsToken:   cfg.MetricsToken,
		RateLimit:      kit.NewIPRateLimiter(cfg.RateLimit, cfg.RateLimitWindow),
	})

	if err := kit.RunHTTPServer(cfg.Addr(), h, log, cfg.ShutdownTimeout); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func openStore(cfg config.Config, log *zap.Logger) (catalog.Store, func(), error) {
	if cfg.DatabaseURI == "" {
		log.Warn("DATABASE_URI not set, using in-memory store")
		return catalog.NewMemStore(), func() {}, nil
	}

	db, err := sql.Open("pgx", cfg.DatabaseURI)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if err := catalog.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	log.Info("connected to postgres")
	return catalog.NewPostgresStore(db), func() { _ = db.Close() }, nil
}
