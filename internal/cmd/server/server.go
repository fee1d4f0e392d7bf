// Package server wires configuration and startup for the directory web server.
package server

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/emborough/localpages/internal/directory"
	"github.com/emborough/localpages/internal/platform/config"
	"github.com/emborough/localpages/internal/platform/otel"
	"github.com/emborough/localpages/internal/storage/sqlite"
	"github.com/emborough/localpages/internal/web"
)

const (
	defaultHTTPAddr = "localhost:8080"
	defaultDBPath   = "localpages.db"
)

// Config holds the server command configuration.
type Config struct {
	HTTPAddr string
	DBPath   string
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string, lookup config.EnvLookup) (Config, error) {
	cfg := Config{
		HTTPAddr: config.EnvOrDefault(lookup, []string{"LOCALPAGES_HTTP_ADDR"}, defaultHTTPAddr),
		DBPath:   config.EnvOrDefault(lookup, []string{"LOCALPAGES_DB_PATH"}, defaultDBPath),
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Run starts the directory web server and blocks until the context ends.
func Run(ctx context.Context, cfg Config) error {
	shutdownTelemetry, err := otel.Setup(ctx, "localpages-web")
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Printf("shutdown telemetry: %v", err)
		}
	}()

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close storage: %v", err)
		}
	}()

	assembler := directory.NewAssembler(store, nil)
	server, err := web.NewServer(web.Config{HTTPAddr: cfg.HTTPAddr}, assembler)
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}
