// cmd/seeder/main.go
package main

import (
	"bytes"
	"context"
	_ "embed"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ammerola/reorder-engine/internal/adapters/db"
	"github.com/ammerola/reorder-engine/internal/app"
	"github.com/ammerola/reorder-engine/internal/pkg/config"
	"github.com/ammerola/reorder-engine/internal/pkg/logger"
)

//go:embed fixtures/sample.json
var sampleFixture []byte

func main() {
	var (
		fixturePath = flag.String("fixture", "", "JSON fixture to load (default: built-in sample)")
		logLevel    = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		migrate     = flag.Bool("migrate", true, "Apply migrations before seeding")
		dryRun      = flag.Bool("dry-run", false, "Validate the fixture without touching the database")
		reset       = flag.Bool("reset", false, "Drop and recreate the schema before seeding (development only)")
	)
	flag.Parse()

	slogger := logger.SetupLogger(*logLevel, "text")
	slog.SetDefault(slogger)

	fixture, err := loadFixture(*fixturePath)
	if err != nil {
		slogger.Error("failed to load fixture", "err", err)
		os.Exit(1)
	}

	seed, err := fixture.Catalog()
	if err != nil {
		slogger.Error("fixture is inconsistent", "err", err)
		os.Exit(1)
	}

	printSummary(os.Stdout, seed)
	if *dryRun {
		fmt.Println("\n[DRY RUN] No changes were made to the database")
		return
	}

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}
	cfg.Database.AutoMigrate = *migrate

	ctx := context.Background()

	if *reset {
		if err := app.ResetSchema(ctx, cfg, slogger); err != nil {
			slogger.Error("failed to reset schema", "err", err)
			os.Exit(1)
		}
	} else if err := app.Migrate(ctx, cfg, slogger); err != nil {
		slogger.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}

	database, err := app.NewDatabase(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.NewCatalogWriter(database, slogger).Seed(ctx, seed); err != nil {
		slogger.Error("failed to seed catalog", "err", err)
		os.Exit(1)
	}

	slogger.Info("seeding complete")
}

func loadFixture(path string) (*Fixture, error) {
	var r io.Reader = bytes.NewReader(sampleFixture)
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open fixture: %w", err)
		}
		defer f.Close()
		r = f
	}
	return DecodeFixture(r)
}

func printSummary(w io.Writer, seed *db.CatalogSeed) {
	fmt.Fprintln(w, strings.Repeat("=", 48))
	fmt.Fprintln(w, "CATALOG SEED")
	fmt.Fprintln(w, strings.Repeat("=", 48))
	fmt.Fprintf(w, "Vendors:          %d\n", len(seed.Vendors))
	fmt.Fprintf(w, "SKU classes:      %d\n", len(seed.Classes))
	fmt.Fprintf(w, "SKUs:             %d\n", len(seed.SKUs))
	fmt.Fprintf(w, "Inventory levels: %d\n", len(seed.Levels))
}
