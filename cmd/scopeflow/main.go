package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/avelise/scopeflow/internal/api"
	"github.com/avelise/scopeflow/internal/cli"
	"github.com/avelise/scopeflow/internal/config"
	"github.com/avelise/scopeflow/internal/db"
	"github.com/avelise/scopeflow/internal/reorder"
	"github.com/avelise/scopeflow/internal/repository"
	"github.com/avelise/scopeflow/internal/service"
	"github.com/avelise/scopeflow/internal/store"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	}))

	// Determine sidecar DB path: config or default ~/.scopeflow/scopeflow.db
	dbPath := cfg.DB.Path
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".scopeflow", "scopeflow.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire the REST gateway and local sidecar repositories
	client := api.New(cfg.APIConfig())
	snapshots := repository.NewSQLiteSnapshotRepo(database)
	history := repository.NewSQLiteSearchHistoryRepo(database)
	cache := store.New(client, snapshots, logger)

	app := &cli.App{
		Scopes:     service.NewScopeManager(client, cache, logger),
		Milestones: service.NewMilestoneManager(client, cache, logger),
		Projects:   service.NewProjectService(client, cache, logger),
		Team:       service.NewTeamService(client, cache, logger),
		Summaries:  service.NewSummaryService(client),
		Search:     service.NewSearchService(client, history, logger),
		Reorder:    reorder.NewEngine(logger),
		Cache:      cache,
		Client:     client,
	}

	// Detect interactive terminal for forms and spinners.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
