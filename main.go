package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"raceprep/internal/analysis"
	"raceprep/internal/api"
	"raceprep/internal/config"
	"raceprep/internal/log"
	"raceprep/internal/service"
	"raceprep/internal/store"
	"raceprep/internal/tui"
)

func main() {
	if err := run(); err != nil {
		stdlog.Fatal(err)
	}
}

func run() error {
	serve := flag.Bool("serve", false, "run the HTTP API instead of the terminal UI")
	addr := flag.String("addr", "", "API listen address (overrides config)")
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		fmt.Printf("Config validation failed: %v\n\n", err)
		fmt.Printf("Please edit the config file at:\n  %s/config.json\n", configDir)
		return nil
	}

	// The terminal UI owns stdout, so logs go to a file unless serving
	logPath := cfg.Log.File
	if *serve {
		logPath = ""
	}
	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
	}
	if err := log.Init(cfg.Log.Debug, logPath); err != nil {
		return err
	}
	defer log.Sync()
	logger := log.GetSugaredLogger()
	log.Debugw("config loaded", "db", cfg.Storage.DBPath, "serve", *serve)

	db, err := store.Open(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	svc := service.NewPlanService(db, analysis.NewEngine(nil), cfg.Defaults, logger)

	if *serve {
		listen := cfg.Server.Addr
		if *addr != "" {
			listen = *addr
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := api.NewServer(listen, svc, logger).Start(ctx); err != nil {
			return fmt.Errorf("running API server: %w", err)
		}
		return nil
	}

	log.Infow("starting terminal UI", "db", cfg.Storage.DBPath)
	app := tui.NewApp(svc, cfg.Display)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

// loadConfig reads the config file, writing an example on first run
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		if err := config.CreateExample(); err != nil {
			return nil, fmt.Errorf("creating example config: %w", err)
		}
		configDir, _ := config.GetConfigDir()
		fmt.Printf("No config file found. Wrote defaults to %s/config.json\n", configDir)

		defaults := config.DefaultConfig()
		if err := defaults.ApplyEnv(); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
