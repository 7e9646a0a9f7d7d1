// Command seeder loads price and headline CSV files into the document
// store, replacing whatever each collection held before. Price files are
// one CSV per symbol (the upper-cased file stem becomes the symbol);
// headline files are named <source>.csv under the headlines directory.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"tickerboard/internal/adapters/storage/postgresql"
	"tickerboard/internal/adapters/storage/sqlite"
	"tickerboard/internal/application/ports"
	"tickerboard/internal/config"
	"tickerboard/internal/domain/models"
	"tickerboard/internal/logger"
)

func main() {
	var (
		help = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		printUsage()
		return
	}

	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	var storage ports.StoragePort
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		storage, err = postgresql.New(cfg.Database.Postgres)
	default:
		storage, err = sqlite.New(cfg.Database.SQLitePath)
	}
	if err != nil {
		log.Error("Failed to initialize storage", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer storage.Close()

	ctx := context.Background()

	if err := seedPrices(ctx, storage, models.CollectionStocks, cfg.Seed.StocksDir, log); err != nil {
		log.Error("Failed to seed stocks", "error", err)
		os.Exit(1)
	}
	if err := seedPrices(ctx, storage, models.CollectionETFs, cfg.Seed.ETFsDir, log); err != nil {
		log.Error("Failed to seed etfs", "error", err)
		os.Exit(1)
	}
	if err := seedHeadlines(ctx, storage, cfg.Seed.HeadlinesDir, log); err != nil {
		log.Error("Failed to seed headlines", "error", err)
		os.Exit(1)
	}

	log.Info("Seeding complete")
}

// seedPrices reads every CSV in dir into one collection. Values stay
// strings; normalization happens at read time on the serving path.
func seedPrices(ctx context.Context, storage ports.StoragePort, collection, dir string, log *slog.Logger) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return fmt.Errorf("list %s: %w", dir, err)
	}
	if len(paths) == 0 {
		log.Warn("No CSV files found", "collection", collection, "dir", dir)
		return nil
	}

	var docs []models.RawPriceDocument
	for _, path := range paths {
		fileDocs, err := readPriceCSV(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		docs = append(docs, fileDocs...)
	}

	if err := storage.ReplacePrices(ctx, collection, docs); err != nil {
		return fmt.Errorf("replace %s: %w", collection, err)
	}
	log.Info("Seeded price collection",
		"collection", collection, "files", len(paths), "documents", len(docs))
	return nil
}

func readPriceCSV(path string) ([]models.RawPriceDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fileName := strings.ToUpper(fileStem(path))

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := columnIndex(header)
	for _, name := range []string{"Date", "Open", "High", "Low", "Close", "Adj Close", "Volume"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var docs []models.RawPriceDocument
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, models.RawPriceDocument{
			FileName: fileName,
			Date:     row[col["Date"]],
			Open:     row[col["Open"]],
			High:     row[col["High"]],
			Low:      row[col["Low"]],
			Close:    row[col["Close"]],
			AdjClose: row[col["Adj Close"]],
			Volume:   row[col["Volume"]],
		})
	}
	return docs, nil
}

// seedHeadlines reads every CSV in dir whose stem is a known headline
// source and replaces the headline collection with their union.
func seedHeadlines(ctx context.Context, storage ports.StoragePort, dir string, log *slog.Logger) error {
	var docs []models.RawHeadlineDocument
	files := 0
	for _, source := range models.HeadlineSources {
		path := filepath.Join(dir, source+".csv")
		fileDocs, err := readHeadlineCSV(path, source)
		if os.IsNotExist(err) {
			log.Warn("Headline file not found, skipping", "path", path)
			continue
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		docs = append(docs, fileDocs...)
		files++
	}
	if files == 0 {
		log.Warn("No headline files found", "dir", dir)
		return nil
	}

	if err := storage.ReplaceHeadlines(ctx, docs); err != nil {
		return fmt.Errorf("replace headlines: %w", err)
	}
	log.Info("Seeded headlines", "files", files, "documents", len(docs))
	return nil
}

func readHeadlineCSV(path, source string) ([]models.RawHeadlineDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // some exports carry ragged trailing fields
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := columnIndex(header)
	if _, ok := col["Headlines"]; !ok {
		return nil, fmt.Errorf("missing column %q", "Headlines")
	}

	field := func(row []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	var docs []models.RawHeadlineDocument
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, models.RawHeadlineDocument{
			Headlines:   field(row, "Headlines"),
			Time:        field(row, "Time"),
			Description: field(row, "Description"),
			FileName:    source,
		})
	}
	return docs, nil
}

func columnIndex(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	return col
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  seeder")
	fmt.Println()
	fmt.Println("Reads CSV files from the configured seed directories and replaces")
	fmt.Println("the stocks, etfs and headlines collections.")
}
