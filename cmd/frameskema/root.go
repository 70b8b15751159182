package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "frameskema",
	Short: "Schema validation for columnar data batches",
	Long: `Frameskema checks tabular batches against declarative schemas and
reports every violation with its column, row and code.

Schemas are YAML documents declaring per-column domains (int, float,
string, bool, enum), nullability, numeric bounds and uniqueness. Batches
come from CSV or JSON files or straight from a SQL query. Validation
never stops at the first problem: the whole batch is examined and the
report lists all violations in column-then-row order.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

// Execute runs the root command. Usage, configuration and schema errors
// exit with status 2; the validate command exits 1 itself when the batch
// has violations.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./frameskema.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("frameskema")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("FRAMESKEMA")
	viper.AutomaticEnv()

	// Missing config file is fine; flags alone are a full interface.
	_ = viper.ReadInConfig()
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose || viper.GetString("log_level") == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	if used := viper.ConfigFileUsed(); used != "" {
		slog.Debug("using config file", "path", used)
	}
}
