package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hookguard/hookguard/internal/domain"
)

// ── Warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success).Bold(true)
	failStyle     = lipgloss.NewStyle().Foreground(danger).Bold(true)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	ruleIDStyle   = lipgloss.NewStyle().Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

func severityTag(s domain.Severity) string {
	if s == domain.SeverityError {
		return errorTagStyle.Render("error  ")
	}
	return warnTagStyle.Render("warning")
}

// pad right-pads s to width columns; lipgloss.Width ignores ANSI sequences.
func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
