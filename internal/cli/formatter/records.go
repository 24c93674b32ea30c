package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/parley/internal/contract"
)

func completionGlyph(done bool) string {
	if done {
		return StyleGreen.Render("✔")
	}
	return StyleYellow.Render("○")
}

// FormatTaskList renders tasks as a table, newest first as the store returns them.
func FormatTaskList(tasks []contract.TaskView, now time.Time) string {
	if len(tasks) == 0 {
		return Dim("No todos yet.")
	}

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		title := t.Title
		if t.IsCompleted {
			title = StyleDim.Strikethrough(true).Render(title)
		}
		rows = append(rows, []string{
			Dim(TruncID(t.ID)),
			completionGlyph(t.IsCompleted),
			title,
			Dim(Ago(t.CreatedAt, now)),
		})
	}
	return Header("Todos") + "\n" + RenderTable([]string{"ID", "", "TITLE", "CREATED"}, rows)
}

// FormatTask renders a single task on one line.
func FormatTask(t contract.TaskView) string {
	line := completionGlyph(t.IsCompleted) + " " + Bold(t.Title) + " " + Dim(TruncID(t.ID))
	if t.Description != "" {
		line += "\n  " + Dim(t.Description)
	}
	return line
}

// FormatAccountList renders accounts as a table. Inactive accounts are dimmed.
func FormatAccountList(accounts []contract.AccountView) string {
	if len(accounts) == 0 {
		return Dim("No accounts yet.")
	}

	rows := make([][]string, 0, len(accounts))
	for _, a := range accounts {
		status := StyleGreen.Render("active")
		if !a.IsActive {
			status = Dim("inactive")
		}
		rows = append(rows, []string{
			Dim(TruncID(a.ID)),
			a.Name,
			a.Email,
			RoleStyle(a.Role).Render(a.Role),
			status,
		})
	}
	return Header("Accounts") + "\n" + RenderTable([]string{"ID", "NAME", "EMAIL", "ROLE", "STATUS"}, rows)
}

// FormatAccount renders a single account on one line.
func FormatAccount(a contract.AccountView) string {
	return strings.Join([]string{
		Bold(a.Name),
		"<" + a.Email + ">",
		RoleStyle(a.Role).Render(a.Role),
		Dim(TruncID(a.ID)),
	}, " ")
}
