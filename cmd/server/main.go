// Package main is the entry point for the tariff engine HTTP server.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tariff-engine/api"
	"tariff-engine/core/quote"
	"tariff-engine/core/tariff"
	"tariff-engine/internal/config"
	"tariff-engine/internal/logging"
)

func main() {
	cfgPath := flag.String("config", "", "application config file (optional)")
	flag.Parse()

	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logging.Fatal("invalid configuration", zap.Error(err))
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.Fatal("logging initialization failed", zap.Error(err))
	}
	defer logging.Sync()

	// Fail fast: a process with an invalid tariff must not serve quotes.
	store, err := tariff.NewStore(cfg.Tariff.Path)
	if err != nil {
		logging.Fatal("tariff load failed", zap.Error(err))
	}

	engine := quote.New(store)
	server := api.NewServer(engine)

	if cfg.Tariff.Watch {
		watcher, err := tariff.NewWatcher(store, server.Metrics().ObserveReload)
		if err != nil {
			logging.Fatal("tariff watcher failed", zap.Error(err))
		}
		defer watcher.Close()
	}

	// SIGHUP triggers an explicit reload; a failed reload keeps the old
	// snapshot serving.
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go func() {
		for range hup {
			server.Metrics().ObserveReload(store.Reload())
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info("tariff engine listening",
		zap.String("addr", cfg.Server.Addr),
		zap.String("tariff_version", store.Current().Version()))

	err = server.ListenAndServe(ctx,
		cfg.Server.Addr,
		time.Duration(cfg.Server.ReadTimeoutSeconds)*time.Second,
		time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	if err != nil {
		logging.Fatal("server stopped", zap.Error(err))
	}
	logging.Info("server shut down")
}
