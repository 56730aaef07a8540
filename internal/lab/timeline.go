package lab

import (
	"time"

	"github.com/olivier-w/frictionlab/internal/friction"
	"go.uber.org/zap"
)

type pendingTimer struct {
	start friction.StartTimer
	due   time.Duration
}

// Timeline drives a Session on a virtual clock. Each Timer has at most one
// pending firing; a new StartTimer replaces the old one.
type Timeline struct {
	session *friction.Session
	sink    friction.Sink
	log     *zap.Logger

	now     time.Duration
	pending map[friction.Timer]pendingTimer
	fired   map[friction.Timer]int
}

func NewTimeline(s *friction.Session, sink friction.Sink, log *zap.Logger) *Timeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Timeline{
		session: s,
		sink:    sink,
		log:     log,
		pending: make(map[friction.Timer]pendingTimer),
		fired:   make(map[friction.Timer]int),
	}
}

// Now returns the virtual time elapsed since the timeline was created.
func (t *Timeline) Now() time.Duration { return t.now }

// Session returns the driven session.
func (t *Timeline) Session() *friction.Session { return t.session }

// Pending reports whether timer has a firing scheduled.
func (t *Timeline) Pending(timer friction.Timer) bool {
	_, ok := t.pending[timer]
	return ok
}

// Fired returns how many times timer has fired.
func (t *Timeline) Fired(timer friction.Timer) int { return t.fired[timer] }

// Paint sends the session's initial commands to the sink.
func (t *Timeline) Paint() {
	t.exec(t.session.Init())
}

// Do applies ev at the current virtual time.
func (t *Timeline) Do(ev friction.Event) {
	t.exec(t.session.Apply(ev))
}

// Advance moves the clock forward by d, firing due timers in order.
func (t *Timeline) Advance(d time.Duration) {
	target := t.now + d
	for {
		next, ok := t.nextDue(target)
		if !ok {
			break
		}
		delete(t.pending, next.start.Timer)
		t.now = next.due
		t.fired[next.start.Timer]++
		t.Do(next.start.Event())
	}
	t.now = target
}

func (t *Timeline) nextDue(limit time.Duration) (pendingTimer, bool) {
	var best pendingTimer
	found := false
	for _, p := range t.pending {
		if p.due > limit {
			continue
		}
		if !found || p.due < best.due || (p.due == best.due && p.start.Timer < best.start.Timer) {
			best, found = p, true
		}
	}
	return best, found
}

func (t *Timeline) exec(cmds []friction.Command) {
	friction.Dispatch(t.sink, cmds)
	for _, c := range friction.Timers(cmds) {
		switch c := c.(type) {
		case friction.StartTimer:
			t.pending[c.Timer] = pendingTimer{start: c, due: t.now + c.After}
		case friction.StopTimer:
			delete(t.pending, c.Timer)
		}
	}
}
