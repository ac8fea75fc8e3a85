package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/shellist/backend/internal/config"
	"github.com/shellist/backend/internal/core/services"
	"github.com/shellist/backend/internal/infrastructure/db"
	"github.com/shellist/backend/internal/infrastructure/logger"
	"github.com/shellist/backend/internal/infrastructure/webhook"
)

// One-shot deadline scan for external schedulers (cron, systemd timers).
// Exits non-zero when the scan itself fails; per-task dispatch failures are
// logged and absorbed by the scanner.
func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	database, err := db.NewPostgresConnection(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close(database)

	scanner := services.NewScannerService(services.ScannerServiceConfig{
		TaskRepo:        db.NewTaskRepository(database, log),
		UserRepo:        db.NewUserRepository(database, log),
		SettingsRepo:    db.NewSettingsRepository(database, log),
		NotificationLog: db.NewNotificationLogRepository(database, log),
		Dispatcher:      webhook.NewClient(cfg.Scanner.WebhookURL, cfg.Scanner.WebhookTimeout, log),
		Logger:          log,
		ReminderLead:    cfg.Scanner.ReminderLead,
		OverdueGrace:    cfg.Scanner.OverdueGrace,
	})

	result, err := scanner.RunScan(context.Background(), time.Now())
	if err != nil {
		log.Errorw("scan_failed", "error", err)
		os.Exit(1)
	}

	log.Infow("scan_finished",
		"scanned", result.ScannedCount,
		"notified", result.NotifiedCount,
		"transitioned", result.TransitionedCount,
	)
}
