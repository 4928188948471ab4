package main

import (
	"database/sql"
	"flag"
	"os"
	"path/filepath"

	"InventoryDump/internal/repository"
	"InventoryDump/internal/sample"
	"InventoryDump/pkg/config"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

var (
	dbPath    = flag.String("db", "./data/cloudguard_controller", "output database path")
	driver    = flag.String("driver", "", "sqlite or duckdb (default: by file extension)")
	resources = flag.Int("resources", 10, "number of resources per table")
	broken    = flag.Int("broken", 1, "extra rows per table whose json_data is not valid JSON")
	seed      = flag.Int64("seed", 0, "random seed (0 = time-based)")
)

func main() {
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		logrus.Fatalf("create data dir failed: %v", err)
	}

	cfg := config.Default()
	cfg.Database.Driver = *driver
	drv := cfg.DriverFor(*dbPath)
	if drv != repository.DriverSQLite && drv != repository.DriverDuckDB {
		logrus.Fatalf("unsupported driver: %s", drv)
	}

	db, err := sql.Open(drv, *dbPath)
	if err != nil {
		logrus.Fatalf("open db failed: %v", err)
	}
	defer db.Close()

	res, err := sample.Generate(db, sample.Options{
		Resources: *resources,
		Seed:      *seed,
		Broken:    *broken,
	})
	if err != nil {
		logrus.Errorf("generate failed: %v", err)
		return
	}

	logrus.Infof("db generated: %s (driver: %s, tables: %d, rows: %d, seed: %d)", *dbPath, drv, res.Tables, res.Rows, res.Seed)
}
