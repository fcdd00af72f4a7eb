package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Ascension theme (CLI + TUI).

const (
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconOpen    = "⬜"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconUndo    = "↩️"
	IconCandle  = "🕯️"
	IconMoon    = "🌙"
	IconBottle  = "🧪"
	IconRun     = "🏃"
	IconFist    = "👊"
	IconDrop    = "💧"
	IconScroll  = "📜"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("135") // violet
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

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp   = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
	BadgeLevelDown = lipgloss.NewStyle().Bold(true).Foreground(cWarn).Render("LEVEL DOWN")
)

var candleColors = map[string]lipgloss.Color{
	"lilac":  lipgloss.Color("183"),
	"blue":   lipgloss.Color("33"),
	"green":  lipgloss.Color("34"),
	"gold":   lipgloss.Color("220"),
	"orange": lipgloss.Color("208"),
	"red":    lipgloss.Color("160"),
	"white":  lipgloss.Color("255"),
}

var categoryIcons = map[string]string{
	"physical":      "🔥",
	"energetic":     "⚡",
	"astralBody":    "👻",
	"mental":        "🧠",
	"spiritual":     "✨",
	"intraphysical": "👥",
	"practices":     "⚠️",
	"candles":       "🕯️",
	"astral":        "🌙",
}

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

// Points renders a signed point value, green for gains and red for penalties.
func Points(n int) string {
	switch {
	case n > 0:
		return Good.Render(fmt.Sprintf("+%d", n))
	case n < 0:
		return Bad.Render(fmt.Sprintf("%d", n))
	default:
		return Muted.Render("0")
	}
}

func Check(done bool) string {
	if done {
		return IconDone
	}
	return IconOpen
}

func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return "•"
}

// Candle renders text in the candle's color.
func Candle(color string, text string) string {
	c, ok := candleColors[color]
	if !ok {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c).Render(text)
}

// ProgressBar renders into/size as a fixed-width bar.
func ProgressBar(into, size, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := 0
	if size > 0 {
		filled = into * width / size
	}
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return Gold.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
}
