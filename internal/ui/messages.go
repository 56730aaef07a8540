package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/frictionlab/internal/friction"
)

type frameMsg time.Time

// timerMsg carries a session timer firing back into the Update loop.
type timerMsg struct {
	session *friction.Session
	event   friction.Event
}

func frameCmd(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func timerCmd(s *friction.Session, st friction.StartTimer) tea.Cmd {
	return tea.Tick(st.After, func(time.Time) tea.Msg {
		return timerMsg{session: s, event: st.Event()}
	})
}
