package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/frictionlab/internal/friction"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"})

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#888888", Dark: "#888888"})

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#EEEEEE"})

	pulseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF8C00"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"})

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4CAF50"))

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF9800"))
)

// Scene styles, indexed by cellStyle.
var (
	meterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#1F5FBF", Dark: "#6FA8FF"})
	needleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5F1F"))
	connectorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#AAAAAA"})
	blockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"})
	weightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#FFD75F"})
)

var surfaceColors = map[friction.Surface]lipgloss.TerminalColor{
	friction.Wood:   lipgloss.Color("#A0522D"),
	friction.Ice:    lipgloss.Color("#A5F2F3"),
	friction.Carpet: lipgloss.Color("#B03A2E"),
	friction.Rubber: lipgloss.AdaptiveColor{Light: "#333333", Dark: "#777777"},
}

var surfacePatterns = map[friction.Surface]rune{
	friction.Wood:   '═',
	friction.Ice:    '░',
	friction.Carpet: '▒',
	friction.Rubber: '▓',
}

func surfaceStyle(s friction.Surface) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(surfaceColors[s])
}
