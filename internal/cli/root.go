package cli

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/parley/internal/config"
	"github.com/alexanderramin/parley/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds everything the commands need. main wires it once per process.
type App struct {
	Chat     service.ChatService
	Tasks    service.TaskService
	Accounts service.AccountService

	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger

	// API is the HTTP handler `parley serve` listens with.
	API http.Handler

	// IsInteractive reports whether stdin is a terminal. When nil the
	// bare command prints help instead of opening the chat.
	IsInteractive func() bool

	// OracleEnabled shows a spinner while a model call may be in flight.
	OracleEnabled bool

	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// NewRootCmd creates the top-level "parley" command. With no subcommand on a
// terminal it opens the chat.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "parley",
		Short:         "Manage todos and accounts by talking to them",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runChatTUI(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}
	addGlobalFlags(root.PersistentFlags(), app)

	root.AddCommand(
		newChatCmd(app),
		newSayCmd(app),
		newTodoCmd(app),
		newAccountCmd(app),
		newServeCmd(app),
		newConfigCmd(app),
	)

	return root
}

// addGlobalFlags registers flags every subcommand accepts. --config is read
// by main before the App exists; it is declared here so cobra accepts it.
func addGlobalFlags(fs *pflag.FlagSet, app *App) {
	fs.StringVar(&app.ConfigPath, "config", app.ConfigPath, "Path to the YAML config file (default $"+config.PathEnv+")")
}
