package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/leengari/minidb/internal/config"
	"github.com/leengari/minidb/internal/domain/schema"
	"github.com/leengari/minidb/internal/engine"
	"github.com/leengari/minidb/internal/logging"
	"github.com/leengari/minidb/internal/metrics"
	"github.com/leengari/minidb/internal/network"
	"github.com/leengari/minidb/internal/repl"
	"github.com/leengari/minidb/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	serverMode := flag.Bool("server", false, "Run in server mode")
	port := flag.Int("port", 0, "Port to listen on (overrides config)")
	script := flag.String("f", "", "Execute commands from file and exit")
	seedPath := flag.String("seed", "", "YAML seed file (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *seedPath != "" {
		cfg.Seed.Path = *seedPath
	}

	level, _ := config.ParseLevel(cfg.Log.Level)
	logger, closeFn := logging.SetupLogger(logging.Options{
		Level:  level,
		Output: os.Stderr,
		SeqURL: cfg.Log.SeqURL,
	})
	defer closeFn()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *serverMode, *script); err != nil {
		slog.Error("minidb stopped with error", "error", err)
		closeFn()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, serverMode bool, script string) error {
	// The catalog lives for the whole process and is shared by every engine
	catalog := schema.NewCatalog()

	if cfg.Metrics.Addr != "" {
		go serveMetrics(cfg.Metrics.Addr)
	}

	eng := engine.New(catalog)
	eng.AddObserver(engine.NewLoggingObserver(slog.Default()))
	eng.AddObserver(engine.NewMetricsObserver())

	if cfg.Seed.Path != "" {
		seed, err := storage.LoadSeed(cfg.Seed.Path)
		if err != nil {
			return err
		}
		if err := storage.Apply(ctx, eng, seed); err != nil {
			return err
		}
	}

	slog.Info("Application ready!", "app", cfg.AppName, "tables", len(catalog.TableNames()))

	switch {
	case serverMode:
		slog.Info("Starting Server mode...")
		return network.Start(ctx, cfg.Server.Port, catalog)
	case script != "":
		f, err := os.Open(script)
		if err != nil {
			return err
		}
		defer f.Close()
		return repl.New(eng, os.Stdout).Run(ctx, f)
	default:
		slog.Info("Starting REPL mode...")
		return repl.New(eng, os.Stdout).Start(ctx, cfg.REPL.Prompt, cfg.REPL.HistoryFile)
	}
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	slog.Info("Serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("metrics listener stopped", "error", err)
	}
}
