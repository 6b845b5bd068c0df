package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"studyplan/internal/engine"
)

// studyplan theme (CLI + TUI).
// Kept small: reusable styles and a few emojis.

const (
	IconPlan    = "🗓️"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconOpen    = "⬜"
	IconExam    = "📝"
	IconReview  = "🔁"
	IconEvent   = "📌"
	IconBook    = "📚"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)
	DoneRow     = lipgloss.NewStyle().Foreground(cMuted).Strikethrough(true)
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// PriorityBadge renders a fixed-width priority marker.
func PriorityBadge(p engine.Priority) string {
	switch p {
	case engine.PriorityHigh:
		return Bad.Render("HIGH")
	case engine.PriorityMedium:
		return Warn.Render("MED ")
	default:
		return Muted.Render("LOW ")
	}
}

// Swatch renders a colored block for a subject's hex color.
func Swatch(hex string) string {
	if strings.TrimSpace(hex) == "" {
		hex = engine.DefaultSubjectColor
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■")
}

// Check renders a done/open marker.
func Check(done bool) string {
	if done {
		return IconDone
	}
	return IconOpen
}

// DaysLeft renders a countdown such as "today", "tomorrow" or "in 5d".
func DaysLeft(n int) string {
	switch {
	case n < 0:
		return Bad.Render(fmt.Sprintf("%dd ago", -n))
	case n == 0:
		return Bad.Render("today")
	case n == 1:
		return Warn.Render("tomorrow")
	default:
		return Muted.Render(fmt.Sprintf("in %dd", n))
	}
}
