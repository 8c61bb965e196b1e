package main

import (
	"context"
	"errors"
	"os"
	"time"

	"salesdash/internal/amqp"
	"salesdash/internal/cli"
	applog "salesdash/internal/log"
	"salesdash/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(false)
	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.Debug {
		logger = cli.SetupLogger(true)
	}

	logger.Info("Starting salesdash-worker")

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the audit worker")
		os.Exit(1)
	}

	// The audit log lives in SQLite regardless of the dashboard's dataset backend.
	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	auditWorker := worker.NewAuditWorker(repo)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	handler := func(ev *amqp.ExportEvent) error {
		return auditWorker.HandleExportEvent(ctx, ev)
	}

	logger.Info("Consuming export events", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	err := amqp.ConsumeWithReconnect(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, handler)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Export event consumption failed", applog.FieldError, err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped gracefully")
}
