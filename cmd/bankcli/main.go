package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/paise-ledger/internal/cli"
	"github.com/paise-ledger/internal/config"
	"github.com/paise-ledger/internal/data/postgres"
	"github.com/paise-ledger/internal/logger"
	"github.com/paise-ledger/internal/platform/persistence"
	"github.com/paise-ledger/internal/service"
)

func main() {
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Ctrl+C aborts any in-flight operation; the loop itself exits on choice 0.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		cancelAppCtx()
	}()

	cfg, err := config.LoadConfig("bankcli")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg)

	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer postgresDB.Close()

	accountRepo := postgres.NewAccountRepository(log, postgresDB)
	ledgerRepo := postgres.NewLedgerRepository(log, postgresDB)

	ledgerService := service.NewLedgerService(postgresDB, accountRepo, ledgerRepo, log)

	app := cli.New(ledgerService, cfg, log)
	if err := app.Run(appCtx); err != nil {
		log.Error("CLI terminated with error", "error", err)
		os.Exit(1)
	}
}
