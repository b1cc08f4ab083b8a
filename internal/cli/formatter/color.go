package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
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

// Predefined lipgloss styles.
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

// TimerPill returns a colored indicator for the timer mode.
func TimerPill(mode domain.TimerMode) string {
	switch mode {
	case domain.TimerRunning:
		return StyleGreen.Render("● Running")
	case domain.TimerPaused:
		return StyleYellow.Render("○ Paused")
	default:
		return StyleDim.Render("– Idle")
	}
}

// KindBadge returns a styled timer kind label.
func KindBadge(kind domain.TimerKind) string {
	switch kind {
	case domain.KindFocus:
		return StylePurple.Render("FOCUS")
	case domain.KindQuick:
		return StyleBlue.Render("QUICK")
	default:
		return StyleDim.Render("--")
	}
}

// TimesheetPill returns a colored indicator for the timesheet status.
func TimesheetPill(status domain.TimesheetStatus) string {
	switch status {
	case domain.TimesheetDraft:
		return StyleYellow.Render("○ Draft")
	case domain.TimesheetSubmitted:
		return StyleBlue.Render("● Submitted")
	case domain.TimesheetApproved:
		return StyleGreen.Render("✔ Approved")
	default:
		return StyleDim.Render(string(status))
	}
}

// BillableMark returns a colored billable indicator.
func BillableMark(billable bool) string {
	if billable {
		return StyleGreen.Render("$")
	}
	return StyleDim.Render("-")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
