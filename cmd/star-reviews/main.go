package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gaqzi/star-reviews/internal/app"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	setupLogging(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	server, err := app.Start(ctx, cfg)
	if err != nil {
		slog.Error("failed to start server", "error", err)
		cancel()
		os.Exit(1)
	}

	slog.Info("server started", "addr", "http://"+server.Config.Addr, "storage", cfg.Storage)

	shutdown := make(chan os.Signal, 2)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	for {
		sig := <-shutdown
		switch sig {
		case os.Interrupt, syscall.SIGTERM:
			cancel()
			shutCtx, shutCancel := context.WithTimeout(context.Background(), 10*time.Second)

			if err := server.Stop(shutCtx); err != nil {
				slog.Error("failed to shut safely", "error", err)
				shutCancel()
				os.Exit(1)
			}

			shutCancel()
			return
		default:
			slog.Warn("unhandled signal", "signal", sig.String())
		}
	}
}

func setupLogging(cfg app.Config) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.LogJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
