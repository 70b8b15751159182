package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	frameskema "github.com/reoring/frameskema"
	"github.com/reoring/frameskema/frame"
	"github.com/reoring/frameskema/schemayaml"
	"github.com/reoring/frameskema/source/csvsource"
	"github.com/reoring/frameskema/source/jsonsource"
	"github.com/reoring/frameskema/source/sqlsource"
)

// DatasetConfig binds one batch to its schema. The config file carries a
// list of them:
//
//	datasets:
//	  - name: employees
//	    schema: schemas/employees.yaml
//	    data: data/employees.csv
//	  - name: products
//	    schema: schemas/catalog.yaml
//	    schema_name: products
//	    driver: sqlite
//	    dsn: "file:catalog.db"
//	    query: "SELECT * FROM products"
type DatasetConfig struct {
	Name       string   `mapstructure:"name"`
	Schema     string   `mapstructure:"schema"`
	SchemaName string   `mapstructure:"schema_name"`
	Data       string   `mapstructure:"data"`
	Driver     string   `mapstructure:"driver"`
	DSN        string   `mapstructure:"dsn"`
	Query      string   `mapstructure:"query"`
	NullValues []string `mapstructure:"null_values"`
	Delimiter  string   `mapstructure:"delimiter"`
}

// AllDatasets returns the datasets block of the config file.
func AllDatasets() ([]DatasetConfig, error) {
	var configs []DatasetConfig
	if err := viper.UnmarshalKey("datasets", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse datasets config: %w", err)
	}
	if len(configs) == 0 {
		return nil, fmt.Errorf("no datasets configured (add a datasets: block to the config file)")
	}
	for i := range configs {
		if configs[i].Name == "" {
			return nil, fmt.Errorf("dataset %d has no name", i)
		}
		if configs[i].Schema == "" {
			return nil, fmt.Errorf("dataset %q has no schema", configs[i].Name)
		}
	}
	return configs, nil
}

// FindDataset returns the named dataset from the config file.
func FindDataset(name string) (*DatasetConfig, error) {
	configs, err := AllDatasets()
	if err != nil {
		return nil, err
	}
	for i := range configs {
		if configs[i].Name == name {
			return &configs[i], nil
		}
	}
	return nil, fmt.Errorf("dataset %q not found in config", name)
}

// loadSchema reads a schema document, optionally picking one schema out of
// a multi-document bundle.
func loadSchema(path, name string) (*frameskema.Schema, error) {
	if name == "" {
		return schemayaml.Load(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemayaml: read %s: %w", path, err)
	}
	return schemayaml.ParseNamed(data, name)
}

// loadFrame materializes the dataset's batch: CSV and JSON files by
// extension, or a SQL query when a DSN is configured. Database handles are
// opened and closed here; nothing in the returned frame refers back to the
// connection.
func loadFrame(ctx context.Context, ds *DatasetConfig, s *frameskema.Schema) (*frame.Frame, error) {
	if ds.DSN != "" {
		if ds.Query == "" {
			return nil, fmt.Errorf("dataset %q: dsn set but no query", ds.Name)
		}
		driver := ds.Driver
		if driver == "" {
			driver = detectDriver(ds.DSN)
		}
		db, err := sql.Open(driver, ds.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
		}
		return sqlsource.Query(ctx, db, s, ds.Query)
	}

	if ds.Data == "" {
		return nil, fmt.Errorf("dataset %q: no data file and no dsn", ds.Name)
	}
	ext := strings.ToLower(filepath.Ext(ds.Data))
	switch ext {
	case ".json":
		return jsonsource.Load(ds.Data, s)
	case ".csv", ".tsv":
		var opt csvsource.Options
		if ds.Delimiter != "" {
			opt.Comma = []rune(ds.Delimiter)[0]
		} else if ext == ".tsv" {
			opt.Comma = '\t'
		}
		opt.NullValues = ds.NullValues
		return csvsource.Load(ds.Data, s, opt)
	default:
		return nil, fmt.Errorf("dataset %q: unsupported data format %q (want .csv, .tsv or .json)", ds.Name, ext)
	}
}

// detectDriver guesses the driver from the DSN shape. An explicit driver:
// entry in the dataset config overrides the guess.
func detectDriver(dsn string) string {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.Contains(dsn, "sslmode"):
		return "postgres"
	case strings.HasPrefix(dsn, "sqlserver://"):
		return "sqlserver"
	case strings.HasPrefix(dsn, "oracle://"):
		return "oracle"
	case strings.HasPrefix(dsn, "file:"), strings.HasSuffix(dsn, ".db"), dsn == ":memory:":
		return "sqlite"
	default:
		return "mysql"
	}
}
