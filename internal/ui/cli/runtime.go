package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	coreapp "spreadscope/internal/core/app"
	"spreadscope/internal/core/config"
	"spreadscope/internal/shared/observability"
	"spreadscope/internal/ui/report"
)

func Run(args []string) int {
	return run(args, os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 2
	}

	if opts.version {
		fmt.Fprintf(stdout, "spreadscope v%s\n", versionString)
		return 0
	}

	configureLogging(stderr, opts.verbose)

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	config.ApplyEnvOverrides(cfg)
	applyOptions(opts, cfg)
	if err := config.Validate(cfg); err != nil {
		slog.Error("invalid configuration", "error", err)
		return 1
	}
	if cfg.Input.Path == "" {
		fmt.Fprintln(stderr, "no input file: pass it as an argument, with -input or as input.path")
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingOptions{
		Enabled:        cfg.Observability.Tracing,
		Exporter:       cfg.Observability.Exporter,
		Endpoint:       cfg.Observability.OTLPEndpoint,
		ServiceVersion: versionString,
		Writer:         stderr,
	})
	if err != nil {
		slog.Error("failed to initialise tracing", "error", err)
		return 1
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			slog.Warn("tracing shutdown failed", "error", err)
		}
	}()

	analysis, err := coreapp.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return 1
	}
	defer analysis.Close()

	if addr := cfg.Observability.MetricsAddress; addr != "" {
		server := NewObservabilityServer(addr, coreapp.NewHealthService(analysis))
		if err := server.Start(ctx); err != nil {
			slog.Error("failed to start observability server", "error", err)
			return 1
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Stop(stopCtx)
		}()
	}

	analysis.SetResultCallback(func(res *coreapp.Result, err error) {
		if err != nil {
			return
		}
		if err := emit(stdout, cfg, res); err != nil {
			slog.Error("failed to write outputs", "error", err)
		}
	})

	if _, err := analysis.Run(ctx); err != nil {
		// A failing first run is fatal even in watch mode.
		return 1
	}

	if !cfg.Watch.Enabled {
		return 0
	}
	if err := analysis.StartWatcher(ctx); err != nil {
		slog.Error("failed to start watcher", "error", err)
		return 1
	}
	slog.Info("watching input for changes", "path", cfg.Input.Path, "debounce", cfg.Watch.Debounce)
	<-ctx.Done()
	slog.Info("shutting down")
	return 0
}

func emit(stdout io.Writer, cfg *config.Config, res *coreapp.Result) error {
	if err := report.PrintConsole(stdout, res); err != nil {
		return err
	}
	if path := cfg.Output.Markdown; path != "" {
		if err := report.WriteFileAtomic(path, report.Markdown(res)); err != nil {
			return err
		}
		slog.Info("markdown report written", "path", path)
	}
	if path := cfg.Output.AttributesTSV; path != "" {
		if err := report.WriteFileAtomic(path, report.AttributesTSV(res.Attributes)); err != nil {
			return err
		}
		slog.Info("node attributes written", "path", path, "rows", len(res.Attributes))
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(path)
}

// applyOptions lets explicit flags override file and environment settings.
func applyOptions(opts cliOptions, cfg *config.Config) {
	if len(opts.args) == 1 {
		cfg.Input.Path = opts.args[0]
	}
	if opts.set["input"] {
		cfg.Input.Path = opts.input
	}
	if opts.set["reduce"] {
		cfg.Reduction.Enabled = true
		cfg.Reduction.TargetSize = opts.reduce
	}
	if opts.noReduce {
		cfg.Reduction.Enabled = false
	}
	if opts.set["method"] {
		cfg.Reduction.Method = opts.method
	}
	if opts.set["seed"] {
		cfg.Reduction.Seed = opts.seed
	}
	if opts.set["top"] {
		cfg.Ranking.TopN = opts.top
	}
	if opts.set["parallel"] {
		cfg.Metrics.Parallel = opts.parallel
	}
	if opts.set["markdown"] {
		cfg.Output.Markdown = opts.markdown
	}
	if opts.set["attributes"] {
		cfg.Output.AttributesTSV = opts.attributes
	}
	if opts.set["watch"] {
		cfg.Watch.Enabled = opts.watch
	}
	if opts.set["metrics-addr"] {
		cfg.Observability.MetricsAddress = opts.metricsAddr
	}
}

func configureLogging(output io.Writer, verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
}
