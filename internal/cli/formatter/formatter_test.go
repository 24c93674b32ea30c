package formatter

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/parley/internal/contract"
	"github.com/alexanderramin/parley/internal/intelligence"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"A", "LONGER"}, [][]string{
		{"wide cell", "x"},
		{"y", "z"},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	// Header, rule and both rows share the same first-column width.
	first := lipgloss.Width("wide cell") + colGap
	for _, l := range lines[2:] {
		assert.GreaterOrEqual(t, lipgloss.Width(l), first)
	}
	assert.Contains(t, lines[1], strings.Repeat("─", len("wide cell")))
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "12345678", TruncID("12345678-aaaa-bbbb"))
	assert.Equal(t, "abc", TruncID("abc"))
}

func TestAgo(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		at   time.Time
		want string
	}{
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-49 * time.Hour), "2d ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Ago(tt.at, now))
	}
}

func TestFormatTaskList(t *testing.T) {
	now := time.Now()
	assert.Contains(t, FormatTaskList(nil, now), "No todos yet.")

	out := FormatTaskList([]contract.TaskView{
		{ID: "aaaaaaaa-1", Title: "buy milk", CreatedAt: now},
		{ID: "bbbbbbbb-2", Title: "call mom", IsCompleted: true, CreatedAt: now},
	}, now)
	assert.Contains(t, out, "TODOS")
	assert.Contains(t, out, "buy milk")
	assert.Contains(t, out, "call mom")
	assert.Contains(t, out, "aaaaaaaa")
}

func TestFormatAccountList(t *testing.T) {
	assert.Contains(t, FormatAccountList(nil), "No accounts yet.")

	out := FormatAccountList([]contract.AccountView{
		{ID: "cccccccc-3", Name: "Ann", Email: "ann@x.com", Role: "admin", IsActive: true},
		{ID: "dddddddd-4", Name: "Bob", Email: "bob@x.com", Role: "user"},
	})
	assert.Contains(t, out, "ann@x.com")
	assert.Contains(t, out, "inactive")
	assert.Contains(t, out, "admin")
}

func TestFormatReply_PendingHint(t *testing.T) {
	resp := &contract.TurnResponse{
		Source:    intelligence.SourceHeuristic,
		ReplyText: "What's the email?",
		Result: contract.ActionResult{
			NeedMoreInfo: &intelligence.NeedMoreInfo{Missing: []intelligence.Field{intelligence.FieldEmail}},
		},
		Pending: &intelligence.PendingAction{
			Action:  intelligence.ActionCreateAccount,
			Missing: []intelligence.Field{intelligence.FieldEmail},
		},
	}

	out := FormatReply(resp)
	assert.Contains(t, out, "What's the email?")
	assert.Contains(t, out, "[heuristic]")
	assert.Contains(t, out, "waiting for email to create account")
}

func TestFormatReply_NoHintWithoutPending(t *testing.T) {
	out := FormatReply(&contract.TurnResponse{ReplyText: "Done!", Result: contract.ActionResult{Success: true}})
	assert.Contains(t, out, "Done!")
	assert.NotContains(t, out, "waiting for")
}

func TestFormatError(t *testing.T) {
	assert.Contains(t, FormatError(errors.New("boom")), "boom")
}
