package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/tempo/internal/cli"
	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/alexanderramin/tempo/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.tempo/tempo.db
	dbPath := os.Getenv("TEMPO_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".tempo", "tempo.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	entryRepo := repository.NewSQLiteTimeEntryRepo(database)
	timesheetRepo := repository.NewSQLiteTimesheetRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	timerRepo := repository.NewSQLiteTimerRepo(database)
	profileRepo := repository.NewSQLiteProfileRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if os.Getenv("TEMPO_LOG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Timers:     service.NewTimerService(timerRepo, profileRepo, taskRepo, observers...),
		Entries:    service.NewEntryService(entryRepo, taskRepo, uow, observers...),
		Timesheets: service.NewTimesheetService(entryRepo, timesheetRepo, taskRepo, uow, observers...),
		Tasks:      service.NewCatalogService(projectRepo, taskRepo),

		UserID: domain.CoalesceStr(os.Getenv("TEMPO_USER"), os.Getenv("USER"), "local"),
		OrgID:  domain.CoalesceStr(os.Getenv("TEMPO_ORG"), "default"),
	}

	// Prompts and the live view need a real terminal on both ends.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
