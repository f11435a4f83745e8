// Command import_stock loads stock levels from a spreadsheet into the till's
// settings file so the next server start picks them up.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"lickees/internal/catalog"
	"lickees/internal/config"
	"lickees/internal/domain"
	"lickees/internal/excel"
	"lickees/internal/inventory"
	"lickees/internal/logging"
	"lickees/internal/settings"
)

type options struct {
	stockPath    string
	settingsPath string
	threshold    float64
	replace      bool
	dryRun       bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	opts := parseFlags(cfg)

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	rows, err := readStockRows(opts.stockPath)
	if err != nil {
		logger.Fatal("read stock file", zap.Error(err))
	}

	store, err := settings.Open(opts.settingsPath, cfg.PhoneRegion)
	if err != nil {
		logger.Fatal("open settings", zap.Error(err))
	}

	snapshot := store.Inventory()
	if opts.replace {
		snapshot = map[string]int{}
	}
	ledger := inventory.NewLedger(catalog.Names(), snapshot, cfg.DefaultStock, cfg.LowStockThreshold)
	if opts.replace {
		for _, name := range catalog.Names() {
			if _, err := ledger.Set(name, "0"); err != nil {
				logger.Fatal("reset level", zap.String("item", name), zap.Error(err))
			}
		}
	}

	matched, unmatched := matchRows(rows, opts.threshold)
	for _, name := range unmatched {
		logger.Warn("no catalog item for row", zap.String("name", name))
	}
	updated := ledger.Replace(matched)

	if opts.dryRun {
		for _, level := range ledger.Levels() {
			fmt.Printf("%-20s %d\n", level.Name, level.Level)
		}
	} else if err := store.SaveInventory(ledger.Snapshot()); err != nil {
		logger.Fatal("save inventory", zap.Error(err))
	}

	logger.Info("import complete",
		zap.Int("rows", len(rows)),
		zap.Int("updated", updated),
		zap.Int("unmatched", len(unmatched)),
		zap.Int("low_stock", len(ledger.LowStock())),
		zap.Bool("replace", opts.replace),
		zap.Bool("dry_run", opts.dryRun),
	)
}

func parseFlags(cfg config.Config) options {
	var opts options
	flag.StringVar(
		&opts.stockPath,
		"stock",
		"stock.xlsx",
		"path to the stock spreadsheet (name + quantity columns)",
	)
	flag.StringVar(
		&opts.settingsPath,
		"settings",
		cfg.SettingsPath,
		"path to the settings file to update",
	)
	flag.Float64Var(
		&opts.threshold,
		"match-threshold",
		catalog.DefaultMatchThreshold,
		"minimum similarity percent (0-100) for fuzzy flavour matching",
	)
	flag.BoolVar(
		&opts.replace,
		"replace",
		false,
		"set flavours missing from the file to zero instead of keeping their level",
	)
	flag.BoolVar(
		&opts.dryRun,
		"dry-run",
		false,
		"print the resulting levels without writing the settings file",
	)
	flag.Parse()
	if opts.threshold < 0 || opts.threshold > 100 {
		log.Fatalf("invalid --match-threshold: %.2f (expected 0..100)", opts.threshold)
	}
	return opts
}

func readStockRows(path string) ([]domain.InventoryImportRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	rows, err := excel.ParseInventoryRows(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rows, nil
}

// matchRows maps spreadsheet names onto catalog names. Later rows for the same
// flavour win.
func matchRows(rows []domain.InventoryImportRow, threshold float64) ([]domain.InventoryImportRow, []string) {
	matched := make([]domain.InventoryImportRow, 0, len(rows))
	unmatched := make([]string, 0)
	for _, row := range rows {
		item, ok := catalog.Resolve(row.Name, threshold)
		if !ok {
			unmatched = append(unmatched, row.Name)
			continue
		}
		matched = append(matched, domain.InventoryImportRow{Name: item.Name, Quantity: row.Quantity})
	}
	return matched, unmatched
}
