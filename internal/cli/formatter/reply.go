package formatter

import (
	"strings"

	"github.com/alexanderramin/parley/internal/contract"
	"github.com/alexanderramin/parley/internal/intelligence"
)

// FormatUserLine echoes what the user typed in the transcript.
func FormatUserLine(message string) string {
	return Dim("you ") + message
}

// FormatReply renders one assistant turn: the reply text, the deciding stage,
// and a hint when the next message will be read as an answer.
func FormatReply(resp *contract.TurnResponse) string {
	var b strings.Builder

	name := StyleGreen.Bold(true).Render("parley")
	if !resp.Result.Success && !resp.Result.NeedsMoreInfo() {
		name = StyleRed.Bold(true).Render("parley")
	}
	b.WriteString(name)
	if badge := SourceBadge(resp.Source); badge != "" {
		b.WriteString(" " + badge)
	}
	b.WriteString(" " + resp.ReplyText)

	if hint := FormatPendingHint(resp.Pending); hint != "" {
		b.WriteString("\n" + hint)
	}
	return b.String()
}

// FormatPendingHint names the field the next message will fill, or "" when
// nothing is pending.
func FormatPendingHint(p *intelligence.PendingAction) string {
	if p == nil || len(p.Missing) == 0 {
		return ""
	}
	return Dim("  ↳ waiting for "+string(p.Missing[0])+" to "+strings.ReplaceAll(string(p.Action), "_", " ")) +
		Dim(" (say something else to switch)")
}

// FormatError renders a failed turn in the transcript.
func FormatError(err error) string {
	return StyleRed.Render("error ") + err.Error()
}
