package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Open the interactive chat",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("chat needs a terminal; use `parley say` instead")
			}
			return runChatTUI(cmd.Context(), app)
		},
	}
}

func runChatTUI(ctx context.Context, app *App) error {
	p := tea.NewProgram(newChatModel(ctx, app.Chat), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running chat: %w", err)
	}
	return nil
}
