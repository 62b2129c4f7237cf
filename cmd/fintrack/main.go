package main

import (
	"context"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/cli"
	apphttp "fintrack/internal/http"
	applog "fintrack/internal/log"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	ledger := cli.OpenLedger(logger, cfg.SQLiteDBPath)
	defer ledger.Close()

	budgets, err := cfg.LoadBudgets()
	if err != nil {
		logger.Error("Failed to load budgets", "error", err, "path", cfg.BudgetsFile)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, ledger, apphttp.Options{
		Budgets:            budgets,
		MutationsPerMinute: cfg.RateLimitPerMinute,
		Logger: applog.New(applog.Config{Component: applog.ComponentHTTP}),
	})

	ctx, stop := cli.ShutdownContext()
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting fintrack server", "port", cfg.Port, "db", cfg.SQLiteDBPath)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cli.GracefulTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}
