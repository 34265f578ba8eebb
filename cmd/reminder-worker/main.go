package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"homeledger/internal/config"
	applog "homeledger/internal/log"
	"homeledger/internal/services"
	"homeledger/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     applog.DefaultConfig().Level,
		Component: applog.ComponentReminder,
	})
	applog.SetDefault(logger)

	logger.Info("Starting reminder-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	sqliteRepo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer sqliteRepo.Close()

	scanner := services.NewReminderScanner(sqliteRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("Due-date scanner configured",
		"interval", cfg.ReminderInterval,
		"sqlite_db", cfg.SQLiteDBPath)

	ticker := time.NewTicker(cfg.ReminderInterval)
	defer ticker.Stop()

	// Run an initial scan on startup
	logger.Info("Running initial due-date scan...")
	if result, err := scanner.Scan(ctx); err != nil {
		logger.Error("Initial scan failed", "error", err)
	} else {
		logger.Info("Initial scan complete",
			"checked", result.Checked,
			"overdue", result.Overdue,
			"due_soon", result.DueSoon)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				result, err := scanner.Scan(ctx)
				if err != nil {
					logger.Error("Periodic scan failed", "error", err)
					continue
				}
				logger.Info("Periodic scan complete",
					"checked", result.Checked,
					"overdue", result.Overdue,
					"due_soon", result.DueSoon,
					"next_check", now.Add(cfg.ReminderInterval).Format("15:04:05"))
			}
		}
	}()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	logger.Info("Shutting down reminder-worker...")
	cancel()

	select {
	case <-shutdownCtx.Done():
		logger.Warn("Shutdown timeout reached")
	case <-time.After(2 * time.Second):
		logger.Info("Reminder-worker shutdown complete")
	}
}
