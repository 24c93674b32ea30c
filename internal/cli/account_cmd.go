package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/parley/internal/cli/formatter"
	"github.com/alexanderramin/parley/internal/contract"
	"github.com/alexanderramin/parley/internal/domain"
	"github.com/alexanderramin/parley/internal/repository"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newAccountCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "account",
		Aliases: []string{"accounts", "user"},
		Short:   "Manage accounts directly",
	}

	cmd.AddCommand(
		newAccountListCmd(app),
		newAccountAddCmd(app),
		newAccountRemoveCmd(app),
		newAccountPasswdCmd(app),
	)

	return cmd
}

func newAccountListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List accounts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := app.Accounts.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAccountList(contract.NewAccountViewsFor(accounts)))
			return nil
		},
	}
}

func newAccountAddCmd(app *App) *cobra.Command {
	var email, password, name, role string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				if password, err = app.promptPassword("Password for " + email); err != nil {
					return err
				}
			}

			a, err := app.Accounts.Create(cmd.Context(), contract.NewAccount{
				Email:    email,
				Password: password,
				Name:     name,
				Role:     domain.Role(strings.ToLower(role)),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created account %s\n", formatter.FormatAccount(contract.NewAccountViewFor(a)))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted on a terminal when omitted)")
	cmd.Flags().StringVar(&role, "role", "", "user or admin (default from config)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newAccountRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID|EMAIL",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete an account",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveAccountID(ctx, app, args[0])
			if err != nil {
				return err
			}
			a, err := app.Accounts.DeleteByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted account %s\n", formatter.FormatAccount(contract.NewAccountViewFor(a)))
			return nil
		},
	}
}

func newAccountPasswdCmd(app *App) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "passwd EMAIL",
		Short: "Change an account's password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				if password, err = app.promptPassword("New password for " + args[0]); err != nil {
					return err
				}
			}
			if err := app.Accounts.ChangePassword(cmd.Context(), repository.AccountFilter{Email: args[0]}, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Password updated for %s\n", domain.NormalizeEmail(args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "New password (prompted on a terminal when omitted)")

	return cmd
}

// promptPassword asks for a password on a terminal. Off a terminal the
// --password flag is mandatory.
func (a *App) promptPassword(title string) (string, error) {
	if !a.interactive() {
		return "", errors.New("--password is required when not running in a terminal")
	}

	var password string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("password is required")
					}
					return nil
				}),
		),
	).WithTheme(parleyHuhTheme()).WithShowHelp(false).Run()
	if err != nil {
		return "", err
	}
	return password, nil
}
