package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alexanderramin/harbor/internal/alerts"
	"github.com/alexanderramin/harbor/internal/cli"
	"github.com/alexanderramin/harbor/internal/config"
	"github.com/alexanderramin/harbor/internal/db"
	"github.com/alexanderramin/harbor/internal/domain"
	"github.com/alexanderramin/harbor/internal/notify"
	"github.com/alexanderramin/harbor/internal/repository"
	"github.com/alexanderramin/harbor/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(logger)
	}

	// Wire services
	plans := service.NewPlanService(db.NewSQLiteUnitOfWork(database),
		service.WithLogger(logger),
		service.WithObserver(observer),
	)

	interactive := func() bool { return isTerminal(os.Stdin) && isTerminal(os.Stdout) }
	var prompt notify.Prompter
	if interactive() {
		prompt = func(context.Context) (bool, error) { return cli.PermissionPrompt() }
	}
	perms := notify.NewPermissionStore(repository.NewSQLiteDocumentRepo(database))
	display := notify.NewSwitchDisplay(notify.WriterDisplay{W: os.Stderr})
	notifier := notify.New(perms, display, cfg.AlertsSupported(isTerminal(os.Stdout)), prompt)
	scheduler := alerts.NewScheduler(alerts.RealTimers{}, notifier, logger)

	app := &cli.App{
		Plans:         plans,
		Alerts:        service.NewAlertService(plans, scheduler, notifier, perms, domain.SystemClock{}, logger, observer),
		Display:       display,
		IsInteractive: interactive,
		WatchPoll:     cfg.WatchPoll,
		Clock:         domain.SystemClock{},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Execute root command
	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
