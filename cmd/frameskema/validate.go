package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	frameskema "github.com/reoring/frameskema"
)

var validateFlags struct {
	schema     string
	schemaName string
	data       string
	dataset    string
	all        bool
	dsn        string
	driver     string
	query      string
	unknown    string
	parallel   int
	failFast   bool
	output     string
	nullValues []string
	delimiter  string
}

var validateCmd = &cobra.Command{
	Use:   "validate [data file]",
	Short: "Validate a batch against its schema",
	Long: `Validate loads a schema document and a data batch, evaluates every
declared column and prints one line per violation, ordered by schema
position then row. Exit status is 0 when the batch is clean, 1 when
violations were found and 2 on usage or schema errors.

The batch comes from the positional CSV/JSON file (or --data), from
--dsn/--query, or from the config file via --dataset NAME or --all.

Examples:
  # Validate a CSV file
  frameskema validate --schema employees.yaml employees.csv

  # Tolerate undeclared columns, evaluate 8 columns concurrently
  frameskema validate --schema employees.yaml --unknown ignore --parallel 8 employees.csv

  # JSON report with a run id
  frameskema validate --schema employees.yaml --output json employees.json

  # Every dataset in frameskema.yaml
  frameskema validate --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.schema, "schema", "s", "", "schema document (YAML)")
	validateCmd.Flags().StringVar(&validateFlags.schemaName, "schema-name", "", "schema to pick from a multi-document bundle")
	validateCmd.Flags().StringVar(&validateFlags.data, "data", "", "data file (CSV, TSV or JSON)")
	validateCmd.Flags().StringVar(&validateFlags.dataset, "dataset", "", "named dataset from the config file")
	validateCmd.Flags().BoolVar(&validateFlags.all, "all", false, "validate every dataset in the config file")
	validateCmd.Flags().StringVar(&validateFlags.dsn, "dsn", "", "database source name; rows come from --query")
	validateCmd.Flags().StringVar(&validateFlags.driver, "driver", "", "sql driver: postgres, mysql, sqlserver, oracle, sqlite (guessed from the DSN when empty)")
	validateCmd.Flags().StringVar(&validateFlags.query, "query", "", "SQL query producing the batch")
	validateCmd.Flags().StringVar(&validateFlags.unknown, "unknown", "strict", "unknown column policy: strict or ignore")
	validateCmd.Flags().IntVar(&validateFlags.parallel, "parallel", 0, "columns evaluated concurrently (0 = sequential)")
	validateCmd.Flags().BoolVar(&validateFlags.failFast, "fail-fast", false, "stop after the first failing column")
	validateCmd.Flags().StringVarP(&validateFlags.output, "output", "o", "text", "report format: text or json")
	validateCmd.Flags().StringSliceVar(&validateFlags.nullValues, "null-value", nil, "cell texts treated as null in CSV input (repeatable)")
	validateCmd.Flags().StringVar(&validateFlags.delimiter, "delimiter", "", "CSV field delimiter (default ,)")

	viper.BindPFlag("settings.parallel", validateCmd.Flags().Lookup("parallel"))
	viper.SetDefault("settings.parallel", 0)
}

func runValidate(cmd *cobra.Command, args []string) error {
	datasets, err := resolveDatasets(args)
	if err != nil {
		return err
	}

	failed := false
	for i := range datasets {
		rep, err := validateDataset(cmd.Context(), datasets[i])
		if err != nil {
			return err
		}
		if !rep.OK() {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
	return nil
}

// resolveDatasets turns flags, the positional argument and the config file
// into the list of batches to validate.
func resolveDatasets(args []string) ([]DatasetConfig, error) {
	switch {
	case validateFlags.all:
		return AllDatasets()
	case validateFlags.dataset != "":
		ds, err := FindDataset(validateFlags.dataset)
		if err != nil {
			return nil, err
		}
		return []DatasetConfig{*ds}, nil
	}

	if validateFlags.schema == "" {
		return nil, fmt.Errorf("--schema is required (or use --dataset/--all with a config file)")
	}
	ds := DatasetConfig{
		Schema:     validateFlags.schema,
		SchemaName: validateFlags.schemaName,
		Data:       validateFlags.data,
		DSN:        validateFlags.dsn,
		Driver:     validateFlags.driver,
		Query:      validateFlags.query,
		NullValues: validateFlags.nullValues,
		Delimiter:  validateFlags.delimiter,
	}
	if len(args) == 1 {
		if ds.Data != "" {
			return nil, fmt.Errorf("data file given twice (positional %q and --data %q)", args[0], ds.Data)
		}
		ds.Data = args[0]
	}
	switch {
	case ds.Data != "":
		ds.Name = strings.TrimSuffix(filepath.Base(ds.Data), filepath.Ext(ds.Data))
	case ds.DSN != "":
		ds.Name = "query"
	default:
		return nil, fmt.Errorf("no input: pass a data file or --dsn with --query")
	}
	return []DatasetConfig{ds}, nil
}

func validateDataset(ctx context.Context, ds DatasetConfig) (*frameskema.Report, error) {
	runID := uuid.New().String()
	log := slog.With("run_id", runID, "dataset", ds.Name)

	s, err := loadSchema(ds.Schema, ds.SchemaName)
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", ds.Name, err)
	}
	f, err := loadFrame(ctx, &ds, s)
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", ds.Name, err)
	}

	opt := frameskema.Opt{
		Workers:  viper.GetInt("settings.parallel"),
		FailFast: validateFlags.failFast,
	}
	switch validateFlags.unknown {
	case "strict":
		opt.Unknown = frameskema.UnknownStrict
	case "ignore":
		opt.Unknown = frameskema.UnknownIgnore
	default:
		return nil, fmt.Errorf("unknown policy %q: want strict or ignore", validateFlags.unknown)
	}

	start := time.Now()
	rep, err := frameskema.Validate(s, f, opt)
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", ds.Name, err)
	}
	elapsed := time.Since(start)
	log.Debug("validated",
		"rows", rep.Rows,
		"cols", rep.Cols,
		"violations", len(rep.Violations),
		"elapsed", elapsed,
	)

	if err := printReport(ds.Name, runID, rep, elapsed); err != nil {
		return nil, err
	}
	return rep, nil
}

func printReport(dataset, runID string, rep *frameskema.Report, elapsed time.Duration) error {
	if validateFlags.output == "json" {
		env := struct {
			RunID     string             `json:"run_id"`
			Dataset   string             `json:"dataset"`
			ElapsedMS float64            `json:"elapsed_ms"`
			Report    *frameskema.Report `json:"report"`
		}{runID, dataset, float64(elapsed.Microseconds()) / 1000, rep}
		out, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	if rep.OK() {
		fmt.Printf("%s: ok (%d rows, %d columns)\n", dataset, rep.Rows, rep.Cols)
		return nil
	}
	fmt.Printf("%s: %d violation(s) in %d rows\n", dataset, len(rep.Violations), rep.Rows)
	for _, line := range strings.Split(rep.String(), "\n") {
		fmt.Printf("  %s\n", line)
	}
	return nil
}
