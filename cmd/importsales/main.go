// Command importsales replaces the contents of the sales store with the rows
// of a delimited text file.
//
// Usage:
//
//	importsales [-file path] [-batch n] [-strict]
//
// Flags override IMPORT_FILE, IMPORT_BATCH_SIZE and IMPORT_STRICT.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/chaitanya039/sales-dashboard-backend/config"
	"github.com/chaitanya039/sales-dashboard-backend/database"
	"github.com/chaitanya039/sales-dashboard-backend/ingest"
	"github.com/chaitanya039/sales-dashboard-backend/metrics"
	"github.com/chaitanya039/sales-dashboard-backend/utils"
)

func main() {
	if err := run(); err != nil {
		slog.Error("❌ [IMPORT] failed", "error", err)
		os.Exit(1)
	}
}

// checkStoreKind refuses stores that do not outlive the process.
func checkStoreKind(cfg config.Config) error {
	if cfg.StoreKind == config.StoreMemory {
		return fmt.Errorf("STORE_KIND=%s: imported records would be discarded on exit, use %s",
			config.StoreMemory, config.StorePostgres)
	}
	return nil
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flag.StringVar(&cfg.ImportFile, "file", cfg.ImportFile, "path of the CSV file to load")
	flag.IntVar(&cfg.ImportBatchSize, "batch", cfg.ImportBatchSize, "records per commit")
	flag.BoolVar(&cfg.ImportStrict, "strict", cfg.ImportStrict, "reject rows with unparsable numbers or dates")
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := checkStoreKind(cfg); err != nil {
		return err
	}

	logger := utils.SetupLogger(cfg.LogLevel, cfg.LogColored, cfg.LogTimeFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f, err := os.Open(cfg.ImportFile)
	if err != nil {
		return fmt.Errorf("%w: %w", ingest.ErrSourceRead, err)
	}
	defer f.Close()

	src, err := ingest.NewCSVSource(f, cfg.Delimiter())
	if err != nil {
		return err
	}

	store, closeStore, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	m := metrics.New(false)
	pipeline := ingest.New(store, ingest.Options{
		BatchSize: cfg.ImportBatchSize,
		Strict:    cfg.ImportStrict,
		Metrics:   m,
		Logger:    logger.With("file", cfg.ImportFile),
	})

	rep, runErr := pipeline.Run(ctx, src)

	if cfg.PushgatewayURL != "" {
		if err := m.Push(cfg.PushgatewayURL, "import-sales"); err != nil {
			slog.Warn("⚠️ [IMPORT] metrics push failed", "error", err)
		}
	}

	if runErr != nil {
		return runErr
	}
	fmt.Printf("Imported %d records in %d batches (%d rejected) in %s\n",
		rep.Inserted, rep.Batches, rep.Rejected, rep.Duration)
	return nil
}
