// fintrack-import appends a CSV file of transactions to the ledger.
// The batch is validated before anything is written: a missing column
// or a malformed row rejects the whole file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"fintrack/internal/cli"
	"fintrack/internal/csvio"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "path to the CSV file to import")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	if filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: fintrack-import -file transactions.csv")
		os.Exit(2)
	}

	f, err := os.Open(filePath)
	if err != nil {
		logger.Error("Failed to open import file", "error", err, "path", filePath)
		os.Exit(1)
	}
	defer f.Close()

	ledger := cli.OpenLedger(logger, cfg.SQLiteDBPath)
	defer ledger.Close()

	ctx, stop := cli.ShutdownContext()
	defer stop()

	imp := csvio.NewImporter(ledger)
	n, err := imp.ImportReader(ctx, f)
	if err != nil {
		var schemaErr *csvio.SchemaError
		if errors.As(err, &schemaErr) {
			logger.Error("Import rejected: missing required columns",
				"missing", schemaErr.Missing, "path", filePath)
		} else {
			logger.Error("Import failed", "error", err, "path", filePath)
		}
		os.Exit(1)
	}

	logger.Info("Import complete", "rows", n, "path", filePath, "db", cfg.SQLiteDBPath)
}
