package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/reshetovitsme/product-scout/internal/di"
	channelService "github.com/reshetovitsme/product-scout/internal/modules/channel/service"
	"github.com/reshetovitsme/product-scout/internal/shared/config"
	httpServer "github.com/reshetovitsme/product-scout/internal/transport/http"
	"github.com/samber/do/v2"
)

func main() {
	// Setup dependency injection
	injector, err := di.Setup()
	if err != nil {
		slog.Error("Failed to setup dependency injection", "error", err)
		os.Exit(1)
	}

	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logger := do.MustInvoke[*slog.Logger](injector)

	server, err := do.Invoke[*httpServer.Server](injector)
	if err != nil {
		logger.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := di.Shutdown(injector); err != nil {
			logger.Error("Error during shutdown", "error", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Start channel monitoring
	do.MustInvoke[*channelService.Service](injector).Start()

	// Start HTTP server
	go func() {
		if err := server.Start(); err != nil {
			logger.Error("HTTP server stopped", "error", err)
			cancel()
		}
	}()

	if cfg.BotEnabled() {
		b, err := do.Invoke[*bot.Bot](injector)
		if err != nil {
			logger.Error("Failed to create telegram bot", "error", err)
			return
		}
		go b.Start(ctx)
		logger.Info("Telegram bot started")
	} else {
		logger.Warn("telegram_bot_token is empty, running without the bot")
	}

	logger.Info("Application started", "port", cfg.HTTPPort, "env", cfg.AppEnv, "database", cfg.DatabaseDriver)
	logger.Info("Press Ctrl+C to stop")

	<-ctx.Done()
	logger.Info("Shutting down...")
}
