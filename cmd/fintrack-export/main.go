// fintrack-export dumps the full ledger as CSV, to stdout or a file.
package main

import (
	"flag"
	"io"
	"os"

	"fintrack/internal/cli"
	"fintrack/internal/csvio"
)

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "", "output file (default stdout)")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	ledger := cli.OpenLedger(logger, cfg.SQLiteDBPath)
	defer ledger.Close()

	ctx, stop := cli.ShutdownContext()
	defer stop()

	txs, err := ledger.ListAll(ctx)
	if err != nil {
		logger.Error("Failed to read ledger", "error", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			logger.Error("Failed to create output file", "error", err, "path", outPath)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := csvio.Write(out, txs); err != nil {
		logger.Error("Export failed", "error", err)
		os.Exit(1)
	}

	if outPath != "" {
		logger.Info("Export complete", "rows", len(txs), "path", outPath)
	}
}
