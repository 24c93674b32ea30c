package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/parley/internal/cli/formatter"
	"github.com/alexanderramin/parley/internal/contract"
	"github.com/spf13/cobra"
)

func newTodoCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "todo",
		Aliases: []string{"todos", "task"},
		Short:   "Manage todos directly",
	}

	cmd.AddCommand(
		newTodoListCmd(app),
		newTodoAddCmd(app),
		newTodoDoneCmd(app),
		newTodoToggleCmd(app),
		newTodoRemoveCmd(app),
		newTodoClearCmd(app),
	)

	return cmd
}

func newTodoListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List todos, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Tasks.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTaskList(contract.NewTaskViewsFor(tasks), app.now()))
			return nil
		},
	}
}

func newTodoAddCmd(app *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add TITLE...",
		Short: "Create a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Tasks.Create(cmd.Context(), strings.Join(args, " "), description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created todo %s\n", formatter.FormatTask(contract.NewTaskViewFor(t)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Optional description")

	return cmd
}

func newTodoDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Mark a todo completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.Complete(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed %s\n", formatter.FormatTask(contract.NewTaskViewFor(t)))
			return nil
		},
	}
}

func newTodoToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Flip a todo between pending and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.Toggle(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTask(contract.NewTaskViewFor(t)))
			return nil
		},
	}
}

func newTodoRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted todo %s\n", formatter.TruncID(id))
			return nil
		},
	}
}

func newTodoClearCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every todo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("refusing to delete all todos without --force")
			}
			n, err := app.Tasks.DeleteAll(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d todos\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the safety check")

	return cmd
}
