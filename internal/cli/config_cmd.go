package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexanderramin/parley/internal/config"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or write configuration",
	}

	cmd.AddCommand(
		newConfigShowCmd(app),
		newConfigInitCmd(app),
	)

	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Config == nil {
				return errors.New("no configuration loaded")
			}
			shown := *app.Config
			if shown.Oracle.APIKey != "" {
				shown.Oracle.APIKey = "********"
			}
			out, err := yaml.Marshal(&shown)
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newConfigInitCmd(app *App) *cobra.Command {
	var useDefaults, force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file, asking for the common settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.ConfigPath
			if path == "" {
				path = os.Getenv(config.PathEnv)
			}
			if path == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("finding home directory: %w", err)
				}
				path = filepath.Join(home, ".parley", "config.yaml")
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg := config.Config{}
			if app.Config != nil {
				cfg = *app.Config
			}

			if !useDefaults {
				if !app.interactive() {
					return errors.New("config init needs a terminal; pass --defaults to write the current settings")
				}
				if err := configForm(&cfg).Run(); err != nil {
					return err
				}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.Save(path, &cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&useDefaults, "defaults", false, "Skip the form and write the current settings")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return cmd
}

// configForm edits the settings most users change. The port is collected as
// text and written back on submit.
func configForm(cfg *config.Config) *huh.Form {
	port := strconv.Itoa(cfg.Server.Port)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Database path").
				Value(&cfg.Database.Path),
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&cfg.Log.Level),
			huh.NewInput().
				Title("HTTP port").
				Value(&port).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n < 1 || n > 65535 {
						return errors.New("port must be between 1 and 65535")
					}
					cfg.Server.Port = n
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Use a language model to classify messages?").
				Description("Heuristics are always used as a fallback.").
				Value(&cfg.Oracle.Enabled),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Provider").
				Options(huh.NewOptions("gemini", "ollama")...).
				Value(&cfg.Oracle.Provider),
			huh.NewInput().
				Title("Model").
				Value(&cfg.Oracle.Model),
			huh.NewInput().
				Title("API key (gemini)").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.Oracle.APIKey),
			huh.NewInput().
				Title("Endpoint (ollama)").
				Value(&cfg.Oracle.Endpoint),
		).WithHideFunc(func() bool { return !cfg.Oracle.Enabled }),
	)

	return form.WithTheme(parleyHuhTheme()).WithShowHelp(false)
}
