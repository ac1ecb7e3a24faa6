package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nfrund/ytu/internal/config"
	"github.com/nfrund/ytu/internal/logging"
	"github.com/nfrund/ytu/internal/server"
)

// Version is reported to the tracing backend.
// Example: go build -ldflags "-X 'main.Version=1.2.0'"
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "Path to a TOML config file (default: $YTU_CONFIG)")
	flag.Parse()

	cfg, err := config.New(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	cfg.Tracing.Version = Version

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		slog.Error("Invalid log level", "error", err)
		os.Exit(1)
	}
	logging.New(os.Stderr, cfg.LogFormat, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := server.New(ctx, cfg)
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	if err := s.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
		stop()
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
