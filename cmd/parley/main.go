package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/alexanderramin/parley/internal/app"
	"github.com/alexanderramin/parley/internal/cli"
	"github.com/alexanderramin/parley/internal/config"
	"github.com/alexanderramin/parley/internal/db"
	"github.com/alexanderramin/parley/internal/domain"
	"github.com/alexanderramin/parley/internal/intelligence"
	"github.com/alexanderramin/parley/internal/llm"
	"github.com/alexanderramin/parley/internal/repository"
	"github.com/alexanderramin/parley/internal/service"
	"github.com/alexanderramin/parley/internal/transport/rest"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	configPath := configFlag(os.Args[1:])
	cfg, err := config.Load(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		// `parley config init` is how the missing file gets written.
		fmt.Fprintf(os.Stderr, "Warning: %v; using environment and defaults\n", err)
		cfg, err = config.LoadEnv()
	}
	if err != nil {
		return err
	}

	logger := app.NewLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	taskRepo := repository.NewSQLiteTaskRepo(database)
	accountRepo := repository.NewSQLiteAccountRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Wire services
	tasks := service.NewTaskService(taskRepo, uow)
	accounts := service.NewAccountService(accountRepo, uow, service.AccountSettings{
		HashCost:    cfg.Accounts.PasswordHashCost,
		DefaultRole: domain.Role(cfg.Accounts.DefaultRole),
	})

	// The oracle is optional; heuristics classify alone without it.
	var oracle *intelligence.Oracle
	if cfg.Oracle.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if cfg.Oracle.LogCalls {
			observer = llm.NewLogObserver(logger)
		}
		client, err := llm.NewClient(ctx, cfg.Oracle.ClientConfig(), observer)
		if err != nil {
			return fmt.Errorf("creating oracle client: %w", err)
		}
		oracle = intelligence.NewOracle(client, cfg.Oracle.HistoryWindow)
	}

	chat := service.NewChatService(
		intelligence.NewClassifier(oracle),
		service.NewActionExecutor(tasks, accounts),
		service.NewReplySynthesizer(),
		service.NewLogUseCaseObserver(logger),
	)

	api := rest.NewRouter(rest.Handlers{
		Chat:     rest.NewChatHandler(chat, logger),
		Todos:    rest.NewTodoHandler(tasks, logger),
		Accounts: rest.NewAccountHandler(accounts, logger),
		Health:   rest.NewHealthHandler(database, version),
	}, logger)

	a := &cli.App{
		Chat:          chat,
		Tasks:         tasks,
		Accounts:      accounts,
		Config:        cfg,
		ConfigPath:    configPath,
		Logger:        logger,
		API:           api,
		OracleEnabled: cfg.Oracle.Enabled,
	}

	// Detect interactive terminal for the bare-command chat entrypoint.
	a.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(a).ExecuteContext(ctx)
}

// configFlag pulls --config out of argv before cobra runs; the config decides
// how everything cobra dispatches to is wired.
func configFlag(args []string) string {
	fs := pflag.NewFlagSet("parley", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)
	path := fs.String("config", "", "")
	_ = fs.Parse(args)
	return *path
}
