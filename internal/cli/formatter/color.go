package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/parley/internal/intelligence"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Header renders an upper-cased section title over a dim rule.
func Header(text string) string {
	upper := strings.ToUpper(text)
	rule := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(rule))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

// RoleStyle colors account roles; admins stand out.
func RoleStyle(role string) lipgloss.Style {
	if role == "admin" {
		return StylePurple
	}
	return StyleBlue
}

// SourceBadge names the pipeline stage that decided a turn.
func SourceBadge(src intelligence.Source) string {
	switch src {
	case intelligence.SourceOracle:
		return StylePurple.Render("[oracle]")
	case intelligence.SourceGuardRail:
		return StyleRed.Render("[guard]")
	case intelligence.SourcePending:
		return StyleYellow.Render("[follow-up]")
	case intelligence.SourceBreakout:
		return StyleYellow.Render("[breakout]")
	case intelligence.SourceHeuristic:
		return StyleDim.Render("[heuristic]")
	default:
		return ""
	}
}
