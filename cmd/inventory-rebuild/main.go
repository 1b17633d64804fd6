package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"stockledger/internal/config"
	"stockledger/internal/database"
	"stockledger/internal/service"
)

func main() {
	location := flag.String("location", "", "Optional: location to rebuild (defaults to LOCATION)")
	importPath := flag.String("import", "", "Optional: .xlsx or .csv stock sheet to import before rebuilding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration invalid: %v\n", err)
		os.Exit(1)
	}
	if strings.TrimSpace(*location) != "" {
		cfg.Location = strings.TrimSpace(*location)
	}
	logger := config.NewLogger(cfg.LogLevel, cfg.LogFormat)

	store, err := database.OpenStore(cfg, logger)
	if err != nil {
		config.LogError(logger, "inventory-rebuild", "OpenStore", cfg.StoreDriver, err)
		os.Exit(1)
	}

	journal := service.NewJournal(cfg.Location, store.Ledger, time.Now)
	stockService := service.NewStockService(service.StockConfig{
		Location:        cfg.Location,
		DuplicatePolicy: service.DuplicatePolicy(cfg.DuplicateItemPolicy),
		Categories:      service.NewDirectoryService(store.Directory, store.Tx, logger),
	}, store.Inventory, journal, store.Tx, logger)

	ctx := context.Background()
	if *importPath != "" {
		f, err := os.Open(*importPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open %s: %v\n", *importPath, err)
			os.Exit(1)
		}
		result, err := service.NewImportService(stockService, logger).Import(ctx, *importPath, f)
		f.Close()
		if err != nil {
			config.LogError(logger, "inventory-rebuild", "Import", *importPath, err)
			os.Exit(1)
		}
		fmt.Printf("Imported %s: registered=%d receipts=%d skipped=%d coerced=%d\n",
			*importPath, result.Registered, result.Receipts, len(result.Skipped), result.Coerced)
	}

	count, err := stockService.RecalculateAll(ctx)
	if err != nil {
		config.LogError(logger, "inventory-rebuild", "RecalculateAll", cfg.Location, err)
		os.Exit(1)
	}
	fmt.Printf("inventory rebuild complete: location=%s items=%d\n", cfg.Location, count)
}
