package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	configPath := flag.String("config", "", "Path to TOML config file (optional)")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	flag.Parse()

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	var analytics *Analytics
	if cfg.Analytics.Path != "" {
		analytics, err = OpenAnalytics(cfg.Analytics.Path, logger)
		if err != nil {
			logger.Fatal("open analytics journal", zap.Error(err))
		}
	}

	game := NewGame(logger, analytics)
	go game.Run()

	hub := NewHub(game, cfg.Limits, logger)
	go hub.Run()

	auth := NewAdminAuth(cfg.Admin.PasswordHash)
	mux := SetupRoutes(hub, cfg, auth)

	server := &http.Server{Addr: cfg.Server.Addr, Handler: mux}

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("listen and serve", zap.Error(err))
		}
	}()

	<-stop
	logger.Info("shutting down")
	server.Close()
	game.Stop()
	analytics.Stop()
}

// newLogger builds the process logger from config
func newLogger(cfg LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
