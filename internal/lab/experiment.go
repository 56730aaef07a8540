package lab

import (
	"errors"
	"fmt"
	"time"

	"github.com/olivier-w/frictionlab/internal/friction"
	"go.uber.org/zap"
)

// Script describes one scripted pull: the pointer starts on the meter, moves
// left Step pixels per Frame until the block breaks free, follows it for
// Follow more frames, then holds still for Hold before recording and letting go.
type Script struct {
	StartX float64
	Step   float64
	Frame  time.Duration
	Follow int
	Hold   time.Duration
}

// DefaultScript is a slow, steady classroom pull.
func DefaultScript() Script {
	return Script{
		StartX: 380,
		Step:   1,
		Frame:  16 * time.Millisecond,
		Follow: 30,
		Hold:   time.Second,
	}
}

func (sc Script) validate() error {
	if sc.Step <= 0 {
		return errors.New("script step must be positive")
	}
	if sc.Frame <= 0 {
		return errors.New("script frame must be positive")
	}
	if sc.Follow < 0 || sc.Hold < 0 {
		return errors.New("script follow and hold must not be negative")
	}
	return nil
}

// Experiment repeats a scripted pull on one surface and mass.
type Experiment struct {
	Params  friction.Params
	Trial   friction.Trial
	Weights int
	Trials  int
	Script  Script
}

// Pull performs one scripted pull on tl and records the result. It reports
// whether the block broke free.
func Pull(tl *Timeline, sc Script) bool {
	s := tl.Session()
	x := sc.StartX
	tl.Do(friction.DragStart{PointerX: x})
	for !s.Motion().Moving && s.MeterOffset() > s.Params().Layout.MeterMin {
		x -= sc.Step
		tl.Advance(sc.Frame)
		tl.Do(friction.DragMove{PointerX: x})
	}
	broke := s.Motion().Moving
	for i := 0; broke && i < sc.Follow && s.MeterOffset() > s.Params().Layout.MeterMin; i++ {
		x -= sc.Step
		tl.Advance(sc.Frame)
		tl.Do(friction.DragMove{PointerX: x})
	}
	tl.Advance(sc.Hold)
	tl.Do(friction.Record{})
	tl.Do(friction.DragEnd{})
	return broke
}

// Run executes the experiment and collects the recorded rows.
func (e Experiment) Run(log *zap.Logger, opts ...friction.Option) (Report, error) {
	if e.Trials < 1 {
		return Report{}, fmt.Errorf("trials must be at least 1, got %d", e.Trials)
	}
	if e.Weights < 0 || e.Weights > e.Params.MaxWeights {
		return Report{}, fmt.Errorf("weights must be in [0,%d], got %d", e.Params.MaxWeights, e.Weights)
	}
	if err := e.Script.validate(); err != nil {
		return Report{}, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	s := friction.NewSession(e.Params, append([]friction.Option{friction.WithLogger(log)}, opts...)...)
	sink := &tally{}
	tl := NewTimeline(s, sink, log)
	tl.Paint()
	tl.Do(friction.SetSurface{
		Surface:     e.Trial.Surface,
		Coefficient: e.Trial.Coefficient,
		StaticRatio: e.Trial.StaticRatio,
	})
	for w := 0; w < e.Weights; w++ {
		tl.Do(friction.AddWeight{})
	}

	for i := 0; i < e.Trials; i++ {
		if !Pull(tl, e.Script) {
			log.Warn("block never broke free",
				zap.Int("trial", i+1),
				zap.Stringer("surface", e.Trial.Surface),
				zap.Float64("mass", s.Mass()))
		}
	}

	return Report{
		Trial:   e.Trial,
		Mass:    s.Mass(),
		Rows:    s.Rows(),
		Wobbles: tl.Fired(friction.TimerWobble),
		Notes:   sink.notes,
		Elapsed: tl.Now(),
	}, nil
}

// tally is a headless Sink that keeps only what a report needs.
type tally struct {
	notes []friction.Notify
}

func (*tally) SetBlockOffset(float64)                {}
func (*tally) SetMeterOffset(float64)                {}
func (*tally) SetConnectorGeometry(_, _, _ float64)  {}
func (*tally) SetForceReadout(float64)               {}
func (*tally) PulseKineticReadout(float64)           {}
func (*tally) SetKineticReadout(float64)             {}
func (*tally) SetSurfaceVisual(friction.Surface)     {}
func (*tally) SetMassLabel(float64)                  {}
func (*tally) AppendDataRow(friction.DataPoint)      {}
func (t *tally) Notify(msg string, l friction.Level) {
	t.notes = append(t.notes, friction.Notify{Message: msg, Level: l})
}
