package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"homeledger/internal/amqp"
	"homeledger/internal/config"
	"homeledger/internal/export"
	"homeledger/internal/export/google"
	"homeledger/internal/export/memory"
	applog "homeledger/internal/log"
	"homeledger/internal/recognizer"
	"homeledger/internal/storage"
	"homeledger/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     applog.DefaultConfig().Level,
		Component: applog.ComponentWorker,
	})
	applog.SetDefault(logger)

	logger.Info("Starting homeledger-worker")

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

	// Pick the ledger backend. The memory store keeps the export pipeline
	// running end to end without Google credentials.
	var ledger export.LedgerWriter
	switch cfg.ExportBackend {
	case "sheets":
		client, err := google.New(context.Background(), google.Config{
			SpreadsheetID:      cfg.GoogleSpreadsheetID,
			SheetName:          cfg.GoogleSheetName,
			ServiceAccountFile: cfg.GoogleServiceAccountFile,
			ServiceAccountJSON: cfg.GoogleServiceAccountJSON,
		})
		if err != nil {
			logger.Error("Failed to initialize Google Sheets ledger", "error", err)
			os.Exit(1)
		}
		ledger = client
		logger.Info("Google Sheets ledger initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	default:
		ledger = memory.New()
		logger.Info("In-memory ledger initialized", "backend", cfg.ExportBackend)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPScanQueue, cfg.AMQPExportQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	exportWorker := worker.NewExportWorker(sqliteRepo, ledger, cfg.ExportBatchSize)
	scanWorker := worker.NewScanWorker(sqliteRepo, recognizer.NewMockRecognizer())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// On startup, export anything that was missed while the worker was down.
	logger.Info("Performing startup export check...")
	if err := exportWorker.StartupExportCheck(ctx); err != nil {
		logger.Error("Failed startup export check", "error", err)
		// Don't exit - continue with normal operation
	}
	if err := scanWorker.ProcessPendingDocuments(ctx); err != nil {
		logger.Error("Failed startup document scan", "error", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeLedgerExport(gctx, func(msg *amqp.LedgerExportMessage) error {
			return exportWorker.HandleExportMessage(gctx, msg)
		})
	})

	g.Go(func() error {
		return amqpClient.ConsumeDocumentScan(gctx, func(msg *amqp.DocumentScanMessage) error {
			return scanWorker.HandleScanMessage(gctx, msg)
		})
	})

	// Periodic backlog pass for messages lost between API and broker
	g.Go(func() error {
		ticker := time.NewTicker(cfg.ExportInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
				if err := exportWorker.ProcessPendingItems(gctx); err != nil {
					logger.Error("Periodic export failed", "error", err)
				}
				if err := scanWorker.ProcessPendingDocuments(gctx); err != nil {
					logger.Error("Periodic document scan failed", "error", err)
				}
			}
		}
	})

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-gctx.Done():
		logger.Info("Worker context cancelled")
	}

	logger.Info("Shutting down worker...")
	cancel()

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("Worker shutdown complete")
	case <-time.After(30 * time.Second):
		logger.Warn("Shutdown timeout reached")
	}
}
