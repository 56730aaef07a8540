package friction

import "time"

// Level is the severity of a notification.
type Level uint8

const (
	Success Level = iota
	Warning
)

func (l Level) String() string {
	if l == Warning {
		return "warning"
	}
	return "success"
}

// Timer identifies one of the Session's scheduled tasks.
type Timer uint8

const (
	TimerBreakaway Timer = iota
	TimerWobble
)

func (t Timer) String() string {
	if t == TimerWobble {
		return "wobble"
	}
	return "breakaway"
}

// Command is a side effect produced by Session.Apply.
type Command interface {
	command()
}

type SetBlockOffset struct{ X float64 }

type SetMeterOffset struct{ X float64 }

type SetConnectorGeometry struct {
	FromX float64
	Width float64
	Y     float64
}

type SetForceReadout struct{ Value float64 }

// PulseKineticReadout shows a freshly latched kinetic force with emphasis.
type PulseKineticReadout struct{ Value float64 }

type SetKineticReadout struct{ Value float64 }

type SetSurfaceVisual struct{ Surface Surface }

type SetMassLabel struct{ Kg float64 }

type AppendDataRow struct{ Row DataPoint }

type Notify struct {
	Message string
	Level   Level
}

// StartTimer asks the driver to deliver the timer's event after the delay.
// A later StartTimer for the same Timer supersedes it.
type StartTimer struct {
	Timer Timer
	Gen   uint64
	After time.Duration
}

// StopTimer asks the driver to drop any pending firing of Timer. Drivers
// that cannot cancel may ignore it; the Session discards stale generations.
type StopTimer struct{ Timer Timer }

// Event returns the event to feed back into the Session when t fires.
func (t StartTimer) Event() Event {
	if t.Timer == TimerWobble {
		return WobbleTick{Gen: t.Gen}
	}
	return BreakawaySettled{Gen: t.Gen}
}

func (SetBlockOffset) command()       {}
func (SetMeterOffset) command()       {}
func (SetConnectorGeometry) command() {}
func (SetForceReadout) command()      {}
func (PulseKineticReadout) command()  {}
func (SetKineticReadout) command()    {}
func (SetSurfaceVisual) command()     {}
func (SetMassLabel) command()         {}
func (AppendDataRow) command()        {}
func (Notify) command()               {}
func (StartTimer) command()           {}
func (StopTimer) command()            {}

// Sink renders the simulation.
type Sink interface {
	SetBlockOffset(x float64)
	SetMeterOffset(x float64)
	SetConnectorGeometry(fromX, width, y float64)
	SetForceReadout(value float64)
	PulseKineticReadout(value float64)
	SetKineticReadout(value float64)
	SetSurfaceVisual(s Surface)
	SetMassLabel(kg float64)
	AppendDataRow(row DataPoint)
	Notify(message string, level Level)
}

// Dispatch forwards the presentation commands in cmds to s, in order.
// Timer commands are left to the driver.
func Dispatch(s Sink, cmds []Command) {
	for _, c := range cmds {
		switch c := c.(type) {
		case SetBlockOffset:
			s.SetBlockOffset(c.X)
		case SetMeterOffset:
			s.SetMeterOffset(c.X)
		case SetConnectorGeometry:
			s.SetConnectorGeometry(c.FromX, c.Width, c.Y)
		case SetForceReadout:
			s.SetForceReadout(c.Value)
		case PulseKineticReadout:
			s.PulseKineticReadout(c.Value)
		case SetKineticReadout:
			s.SetKineticReadout(c.Value)
		case SetSurfaceVisual:
			s.SetSurfaceVisual(c.Surface)
		case SetMassLabel:
			s.SetMassLabel(c.Kg)
		case AppendDataRow:
			s.AppendDataRow(c.Row)
		case Notify:
			s.Notify(c.Message, c.Level)
		}
	}
}

// Timers returns the timer commands in cmds, in order.
func Timers(cmds []Command) []Command {
	var out []Command
	for _, c := range cmds {
		switch c.(type) {
		case StartTimer, StopTimer:
			out = append(out, c)
		}
	}
	return out
}
