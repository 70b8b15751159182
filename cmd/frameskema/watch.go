package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	frameskema "github.com/reoring/frameskema"
	"github.com/reoring/frameskema/metrics"
)

var watchFlags struct {
	dataset     string
	schema      string
	schemaName  string
	data        string
	schedule    string
	metricsAddr string
	debounce    time.Duration
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate whenever the schema or data changes",
	Long: `Watch keeps a dataset under continuous validation. Any write to the
schema document or the data file triggers a re-run after a short
debounce; --schedule adds periodic re-runs on a cron expression.
Results go to the log, and --metrics exposes Prometheus counters for
scraping.

Common cron expressions:
  "*/5 * * * *"  - every five minutes
  "0 3 * * *"    - daily at 3 AM`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchFlags.dataset, "dataset", "", "named dataset from the config file")
	watchCmd.Flags().StringVarP(&watchFlags.schema, "schema", "s", "", "schema document (YAML)")
	watchCmd.Flags().StringVar(&watchFlags.schemaName, "schema-name", "", "schema to pick from a multi-document bundle")
	watchCmd.Flags().StringVar(&watchFlags.data, "data", "", "data file (CSV, TSV or JSON)")
	watchCmd.Flags().StringVar(&watchFlags.schedule, "schedule", "", "cron expression for periodic re-validation")
	watchCmd.Flags().StringVar(&watchFlags.metricsAddr, "metrics", "", "address for the Prometheus /metrics endpoint (e.g. :9090)")
	watchCmd.Flags().DurationVar(&watchFlags.debounce, "debounce", 250*time.Millisecond, "quiet period after a file event before re-validating")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ds, err := watchDataset()
	if err != nil {
		return err
	}
	if ds.Data == "" {
		return fmt.Errorf("watch needs a data file (--data or a dataset with data:)")
	}
	if watchFlags.schedule != "" {
		if _, err := cron.ParseStandard(watchFlags.schedule); err != nil {
			return fmt.Errorf("invalid cron schedule %q: %w", watchFlags.schedule, err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := slog.With("dataset", ds.Name)

	reg := prometheus.NewRegistry()
	rec := metrics.NewMetrics(reg).Dataset(ds.Name)
	if watchFlags.metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		}))
		srv := &http.Server{Addr: watchFlags.metricsAddr, Handler: mux}
		go func() {
			log.Info("metrics endpoint listening", "addr", watchFlags.metricsAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("metrics endpoint failed", "error", err)
			}
		}()
		defer func() { _ = srv.Shutdown(context.Background()) }()
	}

	// Reloads are serialized: a cron tick and a file event must not
	// interleave their log output or metrics.
	var mu sync.Mutex
	revalidate := func(trigger string) {
		mu.Lock()
		defer mu.Unlock()
		runID := uuid.New().String()
		rlog := log.With("run_id", runID, "trigger", trigger)

		s, err := loadSchema(ds.Schema, ds.SchemaName)
		if err != nil {
			rlog.Error("schema load failed", "error", err)
			return
		}
		f, err := loadFrame(ctx, ds, s)
		if err != nil {
			rlog.Error("data load failed", "error", err)
			return
		}
		rep, err := frameskema.Validate(s, f, frameskema.Opt{Recorder: rec})
		if err != nil {
			rlog.Error("validation failed", "error", err)
			return
		}
		if rep.OK() {
			rlog.Info("batch valid", "rows", rep.Rows, "cols", rep.Cols)
			return
		}
		rlog.Warn("batch invalid", "rows", rep.Rows, "violations", len(rep.Violations))
		for _, line := range strings.Split(rep.String(), "\n") {
			rlog.Warn(line)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the parent directories, not the files: editors replace files
	// on save and a directory watch survives the rename.
	watched := map[string]struct{}{
		filepath.Clean(ds.Schema): {},
		filepath.Clean(ds.Data):   {},
	}
	dirs := map[string]struct{}{}
	for path := range watched {
		dirs[filepath.Dir(path)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	var cr *cron.Cron
	if watchFlags.schedule != "" {
		cr = cron.New()
		if _, err := cr.AddFunc(watchFlags.schedule, func() { revalidate("schedule") }); err != nil {
			return fmt.Errorf("failed to schedule re-validation: %w", err)
		}
		cr.Start()
		defer func() { <-cr.Stop().Done() }()
		log.Info("schedule active", "cron", watchFlags.schedule)
	}

	log.Info("watching",
		"schema", ds.Schema,
		"data", ds.Data,
		"debounce", watchFlags.debounce,
	)
	revalidate("startup")

	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			log.Info("watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Chmod == fsnotify.Chmod {
				continue
			}
			if _, relevant := watched[filepath.Clean(event.Name)]; !relevant {
				continue
			}
			log.Debug("file event", "path", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchFlags.debounce, func() { revalidate("change") })

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			log.Error("watcher error", "error", err)
		}
	}
}

func watchDataset() (*DatasetConfig, error) {
	if watchFlags.dataset != "" {
		return FindDataset(watchFlags.dataset)
	}
	if watchFlags.schema == "" || watchFlags.data == "" {
		return nil, fmt.Errorf("--schema and --data are required (or --dataset with a config file)")
	}
	return &DatasetConfig{
		Name:       strings.TrimSuffix(filepath.Base(watchFlags.data), filepath.Ext(watchFlags.data)),
		Schema:     watchFlags.schema,
		SchemaName: watchFlags.schemaName,
		Data:       watchFlags.data,
	}, nil
}
