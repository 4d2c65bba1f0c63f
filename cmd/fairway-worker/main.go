package main

import (
	"context"
	"os"
	"time"

	"fairway/internal/amqp"
	"fairway/internal/cli"
	"fairway/internal/sheets"
	gsheet "fairway/internal/sheets/google"
	mem "fairway/internal/sheets/memory"
	"fairway/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting fairway-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	sqliteRepo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer sqliteRepo.Close()

	// Archive target: Google Sheets when configured, otherwise an in-memory
	// archive that only lives as long as the process.
	var archive sheets.RoundArchiver
	if cfg.GoogleSpreadsheetID != "" {
		sheetsClient, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		archive = sheetsClient
		logger.Info("Google Sheets archive initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		archive = mem.New()
		logger.Info("Google Sheets disabled - archiving to memory only")
	}

	exportWorker := worker.NewExportWorker(sqliteRepo, archive, cfg.ExportBatchSize)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// On startup, archive any rounds that were missed while the worker was
	// down.
	logger.Info("Performing startup export check...")
	if err := exportWorker.StartupCheck(ctx); err != nil {
		logger.Error("Failed startup export check", "error", err)
		// Don't exit - continue with normal operation
	}

	// Consume round events when AMQP is configured; otherwise the periodic
	// sweep alone drives exports.
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()

		go func() {
			handler := func(ev *amqp.RoundEvent) error {
				return exportWorker.HandleRoundEvent(ctx, ev)
			}
			if err := amqpClient.ConsumeRoundEvents(ctx, handler); err != nil {
				if err != context.Canceled {
					logger.Error("Event consumption failed", "error", err)
				}
				cancel()
			}
		}()
	} else {
		logger.Info("AMQP disabled - relying on periodic sweep only")
	}

	// Periodic sweep for rounds whose events were lost.
	ticker := time.NewTicker(cfg.ExportInterval)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := exportWorker.ProcessUnexported(ctx); err != nil {
					logger.Error("Periodic export failed", "error", err)
				}
			}
		}
	}()

	_, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		cancel()
	})

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped gracefully")
}
