package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"face-attendance-seed/bot"
	"face-attendance-seed/config"
	"face-attendance-seed/internal/docstore"
	"face-attendance-seed/internal/services"
	"face-attendance-seed/logging"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logging.InitLogger(cfg.LogLevel)
	logger := logging.GetLogger()
	logger.Debug("config loaded", "backend", cfg.Backend, "database_url", cfg.DatabaseURL)

	// Cancel in-flight writes on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	open := docstore.NewOpener(docstore.Options{
		Backend:         cfg.Backend,
		CredentialsFile: cfg.CredentialsFile,
		DatabaseURL:     cfg.DatabaseURL,
		ProjectID:       cfg.ProjectID,
		MongoDatabase:   cfg.MongoDatabase,
	})

	seeder := services.NewSeeder(open, cfg.Backend, os.Stdout, initNotifier(cfg))
	if err := seeder.Run(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// initNotifier returns nil when Telegram is not configured or unreachable.
func initNotifier(cfg *config.Config) services.BotNotifier {
	if cfg.Telegram.BotToken == "" || cfg.Telegram.ChatID == "" {
		return nil
	}

	notifier, err := bot.Init(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		logging.GetLogger().Warn("failed to init Telegram bot", "error", err)
		return nil
	}
	return notifier
}
