package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveByPrefix matches input against ids: an exact id wins, otherwise a
// unique prefix. kind names the record in errors.
func resolveByPrefix(kind, input string, ids []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}

	var matches []string
	for _, id := range ids {
		if id == input {
			return id, nil
		}
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func resolveTaskID(ctx context.Context, app *App, input string) (string, error) {
	tasks, err := app.Tasks.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return resolveByPrefix("todo", input, ids)
}

func resolveAccountID(ctx context.Context, app *App, input string) (string, error) {
	if strings.Contains(input, "@") {
		a, err := app.Accounts.FindByEmail(ctx, input)
		if err != nil {
			return "", err
		}
		return a.ID, nil
	}

	accounts, err := app.Accounts.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(accounts))
	for i, a := range accounts {
		ids[i] = a.ID
	}
	return resolveByPrefix("account", input, ids)
}
