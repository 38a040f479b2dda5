// liftlog-mcp serves the LiftLog MCP tools over stdio against the local
// store, for wiring into an assistant's MCP client configuration.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/kvstore"
	liftlogmcp "github.com/claude/liftlog/internal/mcp"
	"github.com/claude/liftlog/internal/store"
	"github.com/claude/liftlog/internal/tracker"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	_ = godotenv.Load()

	// stdout carries the MCP protocol; logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := kvstore.Migrate(cfg.Storage.Path); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}

	kv, err := kvstore.Open(cfg.Storage.Path)
	if err != nil {
		log.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer kv.Close()

	tr := tracker.New(store.New(kv, log), log)
	s := liftlogmcp.New(tr, Version, log)

	log.Info("LiftLog MCP server starting", "version", Version, "storage", cfg.Storage.Path)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
