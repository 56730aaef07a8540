package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

// surfaceIndex maps the digit keys to preset positions.
func surfaceIndex(msg tea.KeyMsg) (int, bool) {
	s := msg.String()
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '1'), true
}

func helpText(surfaces int) string {
	s := "drag meter  ←/→ pull  x release  +/- weight"
	if surfaces > 1 {
		s += "  tab/1-" + string(rune('0'+min(surfaces, 9))) + " surface"
	}
	s += "  enter record  r reset  q quit"
	return s
}
