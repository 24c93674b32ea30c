package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/parley/internal/cli/formatter"
	"github.com/alexanderramin/parley/internal/contract"
	"github.com/alexanderramin/parley/internal/intelligence"
	"github.com/spf13/cobra"
)

var errNoSessionPath = errors.New("session path is not configured")

// turnJSON is the --json shape of one turn.
type turnJSON struct {
	Intent    intelligence.Intent         `json:"intent"`
	Source    intelligence.Source         `json:"source"`
	Result    contract.ActionResult       `json:"result"`
	ReplyText string                      `json:"replyText"`
	Pending   *intelligence.PendingAction `json:"pending,omitempty"`
}

func newSayCmd(app *App) *cobra.Command {
	var reset, asJSON bool

	cmd := &cobra.Command{
		Use:   "say MESSAGE...",
		Short: "Send one chat turn, remembering follow-up questions between runs",
		Example: `  parley say add a task to buy milk
  parley say create an account
  parley say --reset`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			path, err := app.sessionPath()
			if err != nil {
				return err
			}

			message := strings.TrimSpace(strings.Join(args, " "))
			if reset {
				if err := clearConversation(path); err != nil {
					return err
				}
				if message == "" {
					fmt.Fprintln(out, "Conversation reset.")
					return nil
				}
			}
			if message == "" {
				return fmt.Errorf("a message is required")
			}

			conv, err := loadConversation(path)
			if err != nil {
				return err
			}

			stop := func() {}
			if app.OracleEnabled && !asJSON && app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Thinking...")
			}
			resp, err := conv.send(cmd.Context(), app.Chat, message)
			stop()
			if err != nil {
				return err
			}
			if err := conv.save(path); err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(turnJSON{
					Intent:    resp.Intent,
					Source:    resp.Source,
					Result:    resp.Result,
					ReplyText: resp.ReplyText,
					Pending:   resp.Pending,
				})
			}
			fmt.Fprintln(out, formatter.FormatReply(resp))
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Forget the stored conversation before this turn")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full turn as JSON")

	return cmd
}

func (a *App) sessionPath() (string, error) {
	if a.Config == nil || a.Config.Session.Path == "" {
		return "", errNoSessionPath
	}
	return a.Config.Session.Path, nil
}
