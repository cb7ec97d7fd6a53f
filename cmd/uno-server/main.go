package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/callout-games/uno-server/internal/server"
)

var CLI struct {
	Config        string `short:"c" long:"config" default:"uno-server.hcl" help:"Path to HCL configuration file"`
	Addr          string `short:"a" long:"addr" help:"Server address to bind to (overrides config)"`
	LogLevel      string `short:"l" long:"log-level" help:"Log level (overrides config)"`
	DeclareWindow int    `short:"w" long:"declare-window" help:"Declare window in seconds (overrides config)"`
}

func main() {
	ctx := kong.Parse(&CLI)

	// Load configuration
	cfg, err := server.LoadServerConfig(CLI.Config)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		ctx.Exit(1)
	}

	// Apply command line overrides
	if CLI.LogLevel != "" {
		cfg.Server.LogLevel = CLI.LogLevel
	}
	if CLI.DeclareWindow > 0 {
		cfg.Game.DeclareWindowSeconds = CLI.DeclareWindow
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		ctx.Exit(1)
	}

	// Setup logging
	logOutput := io.Writer(os.Stderr)
	if cfg.Server.LogFile != "" {
		f, err := os.OpenFile(cfg.Server.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
			ctx.Exit(1)
		}
		defer f.Close()
		logOutput = io.MultiWriter(os.Stderr, f)
	}

	logger := log.New(logOutput)
	switch cfg.Server.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	addr := cfg.GetServerAddress()
	if CLI.Addr != "" {
		addr = CLI.Addr
	}

	logger.Info("Starting UNO Server",
		"addr", addr,
		"declareWindow", cfg.DeclareWindow())

	// Create WebSocket server and room service
	wsServer := server.NewServer(addr, logger)
	rooms := server.NewRoomService(wsServer, nil, cfg.DeclareWindow(), logger)
	wsServer.SetRoomService(rooms)

	// Run until the listener fails or a shutdown signal arrives
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(sigCtx)
	g.Go(func() error {
		return wsServer.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")
		return wsServer.Stop()
	})

	if err := g.Wait(); err != nil && gctx.Err() == nil {
		logger.Error("Server failed", "error", err)
		ctx.Exit(1)
	}
}
