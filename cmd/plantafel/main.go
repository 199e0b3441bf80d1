package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jheinsohn/plantafel/internal/cli"
	"github.com/jheinsohn/plantafel/internal/db"
	"github.com/jheinsohn/plantafel/internal/repository"
	"github.com/jheinsohn/plantafel/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.plantafel/plantafel.db
	dbPath := os.Getenv("PLANTAFEL_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".plantafel", "plantafel.db")
	}

	// Force plain output when stdout is piped; termenv honors NO_COLOR.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		os.Setenv("NO_COLOR", "1")
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	snapshotRepo := repository.NewSQLiteSnapshotRepo(database)
	planRepo := repository.NewSQLitePlanRepo(database)
	capacityRepo := repository.NewSQLiteCapacityOverrideRepo(database)

	// Wire unit of work for transactional imports
	uow := db.NewSQLiteUnitOfWork(database)

	// Use-case telemetry to stderr when requested
	var observers []service.UseCaseObserver
	if os.Getenv("PLANTAFEL_LOG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Snapshots: service.NewSnapshotService(snapshotRepo),
		Plans:     service.NewPlanService(planRepo),
		Reports:   service.NewReportService(planRepo, snapshotRepo, capacityRepo, observers...),
		Validator: service.NewValidateService(planRepo, observers...),
		Scaler:    service.NewScaleService(planRepo, observers...),
		Imports:   service.NewImportService(snapshotRepo, planRepo, uow, observers...),
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
