// Command benchy-bench measures the registered solvers on a corpus of problem
// archives and writes a CSV report.
//
//	benchy-bench --input ./problems --regex 'sym/.*' --output ./reports --solver cg
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	flags "github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hupe1980/benchy"
	"github.com/hupe1980/benchy/bench"
	"github.com/hupe1980/benchy/internal/fs"
)

// Options are the command line options of benchy-bench.
type Options struct {
	Input   string   `short:"i" long:"input" description:"Directory, or key prefix for remote stores, holding the archives" default:"."`
	Regex   string   `short:"r" long:"regex" description:"Regular expression a relative archive name must fully match" default:"(.*.zst)"`
	Output  string   `short:"o" long:"output" description:"Directory the report is written to" default:"."`
	Level   int      `short:"l" long:"level" description:"Log level: 0 trace, 1 debug, 2 info, 3 warn, 4 error, 5 critical, 6 off" default:"2"`
	Config  string   `short:"c" long:"config" description:"YAML run configuration"`
	Solvers []string `short:"s" long:"solver" description:"Solver to run, may be repeated (default: all)"`
	Workers int      `short:"w" long:"workers" description:"Experiments run in parallel (overrides the config)"`
	Cache   int64    `long:"cache" description:"Bytes of archives kept in memory between the run and the report" default:"268435456"`
	Metrics string   `long:"metrics-addr" description:"Serve Prometheus metrics on this address, e.g. :9090"`

	Store StoreOptions `group:"Store Options"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	level, err := benchy.ParseLevel(opts.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := benchy.NewTextLogger(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := run(ctx, logger, opts)
	if err != nil {
		logger.Critical(ctx, "benchmark failed", "error", err)
		stop()
		os.Exit(1)
	}
	logger.InfoContext(ctx, "report written", "path", report)
}

// run executes the benchmark and returns the path of the written report.
func run(ctx context.Context, logger *benchy.Logger, opts Options) (string, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return "", err
	}

	store, err := openStore(ctx, opts.Store, opts.Input)
	if err != nil {
		return "", err
	}

	names, err := bench.Discover(ctx, store, opts.Regex)
	if err != nil {
		return "", err
	}

	index := bench.NewIndex(store, bench.WithIndexLogger(logger), bench.WithCache(opts.Cache))
	for _, name := range names {
		id := index.Add(name)
		logger.DebugContext(ctx, "experiment", "id", id, "path", name)
	}

	var collector bench.MetricsCollector
	basic := &bench.BasicMetricsCollector{}
	collector = basic
	if opts.Metrics != "" {
		reg := prometheus.NewRegistry()
		collector = bench.NewPrometheusMetricsCollector(reg)
		shutdown := serveMetrics(ctx, logger, opts.Metrics, reg)
		defer shutdown()
	}

	runner, err := bench.NewRunner(index, cfg,
		bench.WithLogger(logger),
		bench.WithMetricsCollector(collector),
	)
	if err != nil {
		return "", err
	}

	results, err := runner.Run(ctx)
	if err != nil {
		return "", err
	}
	if failed := runner.Failed(); !failed.IsEmpty() {
		logger.WarnContext(ctx, "experiments with numerical failures",
			"count", failed.GetCardinality(),
			"ids", failed.ToArray(),
		)
	}
	if collector == basic {
		stats := basic.GetStats()
		logger.InfoContext(ctx, "run finished",
			"samples", stats.SampleCount,
			"failures", stats.Failures,
			"avg_load", time.Duration(stats.LoadAvgNanos),
			"max_residual", stats.MaxResidual,
		)
	}

	entries, err := index.ResolveAll(ctx)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := bench.WriteReport(&buf, results, entries); err != nil {
		return "", err
	}
	if err := fs.Default.MkdirAll(opts.Output, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", benchy.ErrIO, err)
	}
	path := filepath.Join(opts.Output, bench.ReportName(time.Now()))
	if err := fs.WriteFileAtomic(fs.Default, path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("%w: write report: %v", benchy.ErrIO, err)
	}
	return path, nil
}

func loadConfig(opts Options) (bench.Config, error) {
	cfg := bench.DefaultConfig()
	if opts.Config != "" {
		var err error
		if cfg, err = bench.LoadConfig(opts.Config); err != nil {
			return bench.Config{}, err
		}
	}
	if len(opts.Solvers) > 0 {
		cfg.Solvers = opts.Solvers
	}
	if opts.Workers > 0 {
		cfg.Workers = opts.Workers
	}
	return cfg, nil
}

func serveMetrics(ctx context.Context, logger *benchy.Logger, addr string, reg *prometheus.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "metrics server failed", "addr", addr, "error", err)
		}
	}()
	logger.InfoContext(ctx, "serving metrics", "addr", addr)

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}
