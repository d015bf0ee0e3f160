package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tariff-engine/api"
	"tariff-engine/core/quote"
	"tariff-engine/core/tariff"
	"tariff-engine/internal/config"
	"tariff-engine/internal/logging"
)

// serveCmd runs the HTTP server from the CLI.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the quoting HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()

		store, err := tariff.NewStore(cfg.Tariff.Path)
		if err != nil {
			return err
		}

		server := api.NewServer(quote.New(store))

		if cfg.Tariff.Watch {
			watcher, err := tariff.NewWatcher(store, server.Metrics().ObserveReload)
			if err != nil {
				return err
			}
			defer watcher.Close()
		}

		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		go func() {
			for range hup {
				server.Metrics().ObserveReload(store.Reload())
			}
		}()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logging.Info("tariff engine listening",
			zap.String("addr", cfg.Server.Addr),
			zap.String("tariff_version", store.Current().Version()))

		return server.ListenAndServe(ctx,
			cfg.Server.Addr,
			time.Duration(cfg.Server.ReadTimeoutSeconds)*time.Second,
			time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	},
}
