package friction

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Motion is the block's motion status.
type Motion struct {
	Moving    bool
	JustBroke bool // inside the breakaway window
	HasMoved  bool // static friction overcome since the last reset

	// StableKinetic is the kinetic force sampled at breakaway. It is what
	// gets recorded and what the wobble jitters around.
	StableKinetic float64
	// StaticAtBreak is the static threshold that was overcome; the block
	// lags the meter by its pixel equivalent.
	StaticAtBreak float64
}

type dragSession struct {
	active         bool
	originPointerX float64
	originMeterX   float64
}

// Session owns the whole simulation state. Apply is its only mutator and
// must be called from a single goroutine.
type Session struct {
	params Params
	rng    Rand
	log    *zap.Logger
	newID  func() string

	trial   Trial
	weights int
	drag    dragSession
	motion  Motion

	meterX float64
	blockX float64

	breakGen     uint64
	breakPending bool
	wobbleGen    uint64
	wobbling     bool

	rows []DataPoint
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the jitter source.
func WithRand(r Rand) Option {
	return func(s *Session) { s.rng = r }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithIDs sets the generator for data point IDs.
func WithIDs(fn func() string) Option {
	return func(s *Session) { s.newID = fn }
}

// NewSession creates a session at rest on p.Default with no added weights.
func NewSession(p Params, opts ...Option) *Session {
	s := &Session{
		params: p,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		log:    zap.NewNop(),
		newID:  uuid.NewString,
		trial:  p.Default,
		meterX: p.Layout.MeterRest,
		blockX: p.Layout.BlockRest,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Params() Params { return s.params }
func (s *Session) Trial() Trial   { return s.trial }
func (s *Session) Weights() int   { return s.weights }
func (s *Session) Motion() Motion { return s.motion }
func (s *Session) Dragging() bool { return s.drag.active }
func (s *Session) Wobbling() bool { return s.wobbling }

func (s *Session) MeterOffset() float64 { return s.meterX }
func (s *Session) BlockOffset() float64 { return s.blockX }

// Mass returns the block mass including added weights, in kg.
func (s *Session) Mass() float64 {
	return s.params.BaseMass + s.params.WeightMass*float64(s.weights)
}

// Rows returns a copy of the recorded data points.
func (s *Session) Rows() []DataPoint {
	out := make([]DataPoint, len(s.rows))
	copy(out, s.rows)
	return out
}

// Init returns the commands that paint the initial bench.
func (s *Session) Init() []Command {
	return []Command{
		SetSurfaceVisual{Surface: s.trial.Surface},
		SetMassLabel{Kg: s.Mass()},
		SetMeterOffset{X: s.meterX},
		SetBlockOffset{X: s.blockX},
		s.params.Connector(s.meterX, s.blockX),
		SetForceReadout{Value: 0},
		SetKineticReadout{Value: s.motion.StableKinetic},
	}
}

// Apply advances the simulation by one event and returns the resulting side
// effects. Invalid events return no commands.
func (s *Session) Apply(ev Event) []Command {
	switch ev := ev.(type) {
	case DragStart:
		return s.dragStart(ev)
	case DragMove:
		return s.dragMove(ev)
	case DragEnd:
		return s.dragEnd()
	case BreakawaySettled:
		return s.breakawaySettled(ev)
	case WobbleTick:
		return s.wobbleTick(ev)
	case AddWeight:
		return s.setWeights(s.weights + 1)
	case RemoveWeight:
		return s.setWeights(s.weights - 1)
	case SetSurface:
		return s.setSurface(ev)
	case Reset:
		return s.reset()
	case Record:
		return s.record()
	}
	return nil
}

func (s *Session) dragStart(ev DragStart) []Command {
	cmds := s.stopTimers(nil)
	s.drag = dragSession{
		active:         true,
		originPointerX: ev.PointerX,
		originMeterX:   s.meterX,
	}
	s.motion.Moving = false
	s.motion.JustBroke = false
	return cmds
}

func (s *Session) dragMove(ev DragMove) []Command {
	if !s.drag.active {
		return nil
	}
	p := s.params

	meterX := s.drag.originMeterX + (ev.PointerX - s.drag.originPointerX)
	meterX = clamp(meterX, p.Layout.MeterMin, s.drag.originMeterX)
	pull := s.drag.originMeterX - meterX

	th := BaseThresholds(s.Mass(), p.Gravity, s.trial).Jitter(s.rng, p.KineticJitter, p.StaticJitter)
	raw := p.RawForce(pull)

	var cmds []Command
	if !s.motion.Moving && raw > th.Static {
		s.motion.Moving = true
		s.motion.JustBroke = true
		s.motion.HasMoved = true
		s.motion.StableKinetic = th.Kinetic
		s.motion.StaticAtBreak = th.Static
		s.breakGen++
		s.breakPending = true
		s.log.Debug("static friction overcome",
			zap.Float64("raw_force", raw),
			zap.Float64("static", th.Static),
			zap.Float64("kinetic", th.Kinetic),
			zap.Stringer("surface", s.trial.Surface),
			zap.Float64("mass", s.Mass()))
		cmds = append(cmds,
			PulseKineticReadout{Value: th.Kinetic},
			StartTimer{Timer: TimerBreakaway, Gen: s.breakGen, After: p.BreakawayWindow},
		)
	}

	force := raw
	blockX := p.Layout.BlockRest
	if s.motion.Moving {
		if !s.motion.JustBroke {
			force = th.Kinetic
		}
		blockX = p.Layout.BlockRest - (pull - p.ForceToPx(s.motion.StaticAtBreak))
		if blockX > p.Layout.BlockRest {
			blockX = p.Layout.BlockRest
		}
	}

	s.meterX = meterX
	s.blockX = blockX
	cmds = append(cmds,
		SetMeterOffset{X: meterX},
		SetBlockOffset{X: blockX},
		p.Connector(meterX, blockX),
	)
	// Once the wobble runs it owns the readout.
	if !s.wobbling {
		cmds = append(cmds, SetForceReadout{Value: force})
	}
	if s.motion.Moving && !s.motion.JustBroke && !s.wobbling {
		cmds = s.startWobble(cmds)
	}
	return cmds
}

func (s *Session) dragEnd() []Command {
	if !s.drag.active {
		return nil
	}
	s.drag = dragSession{}
	return s.resetPositions(nil, false)
}

func (s *Session) breakawaySettled(ev BreakawaySettled) []Command {
	if !s.breakPending || ev.Gen != s.breakGen {
		return nil
	}
	s.breakPending = false
	s.motion.JustBroke = false
	if !s.motion.Moving || s.wobbling {
		return nil
	}
	kinetic := Sample(s.rng, BaseThresholds(s.Mass(), s.params.Gravity, s.trial).Kinetic, s.params.KineticJitter)
	cmds := []Command{SetForceReadout{Value: kinetic}}
	return s.startWobble(cmds)
}

func (s *Session) wobbleTick(ev WobbleTick) []Command {
	if !s.wobbling || ev.Gen != s.wobbleGen {
		return nil
	}
	return []Command{
		SetForceReadout{Value: Sample(s.rng, s.motion.StableKinetic, s.params.WobbleJitter)},
		StartTimer{Timer: TimerWobble, Gen: s.wobbleGen, After: s.params.WobblePeriod},
	}
}

func (s *Session) setWeights(n int) []Command {
	if n < 0 || n > s.params.MaxWeights {
		s.log.Debug("weight change ignored", zap.Int("weights", s.weights))
		return nil
	}
	s.weights = n
	cmds := []Command{SetMassLabel{Kg: s.Mass()}}
	cmds = s.stopTimers(cmds)
	s.motion.Moving = false
	s.motion.JustBroke = false
	if s.blockX != s.params.Layout.BlockRest {
		s.blockX = s.params.Layout.BlockRest
		cmds = append(cmds,
			SetBlockOffset{X: s.blockX},
			s.params.Connector(s.meterX, s.blockX),
		)
	}
	return s.clearLatch(cmds)
}

func (s *Session) setSurface(ev SetSurface) []Command {
	if !ev.Surface.Valid() {
		return nil
	}
	next := s.trial
	next.Surface = ev.Surface
	switch {
	case ev.Coefficient == 0:
	case ev.Coefficient > 0:
		next.Coefficient = ev.Coefficient
	default:
		s.log.Debug("invalid friction coefficient", zap.Float64("coefficient", ev.Coefficient))
		return nil
	}
	switch {
	case ev.StaticRatio == 0:
	case ev.StaticRatio >= 1:
		next.StaticRatio = ev.StaticRatio
	default:
		s.log.Debug("invalid static ratio", zap.Float64("ratio", ev.StaticRatio))
		return nil
	}

	s.trial = next
	s.drag = dragSession{}
	cmds := []Command{SetSurfaceVisual{Surface: next.Surface}}
	return s.resetPositions(cmds, true)
}

func (s *Session) reset() []Command {
	s.weights = 0
	cmds := []Command{SetMassLabel{Kg: s.Mass()}}
	d := s.params.Default
	return append(cmds, s.setSurface(SetSurface{
		Surface:     d.Surface,
		Coefficient: d.Coefficient,
		StaticRatio: d.StaticRatio,
	})...)
}

func (s *Session) record() []Command {
	if !s.motion.HasMoved || s.motion.StableKinetic == 0 {
		return []Command{Notify{Message: "Pull until the block moves first", Level: Warning}}
	}
	mass := s.Mass()
	row := DataPoint{
		ID:           s.newID(),
		Surface:      s.trial.Surface.Title(),
		Mass:         mass,
		KineticForce: s.motion.StableKinetic,
		Mu:           s.motion.StableKinetic / (mass * s.params.Gravity),
	}
	s.rows = append(s.rows, row)
	s.log.Info("data point recorded",
		zap.String("id", row.ID),
		zap.String("surface", row.Surface),
		zap.Float64("mass", row.Mass),
		zap.Float64("force", row.KineticForce),
		zap.Float64("mu", row.Mu))
	return []Command{
		AppendDataRow{Row: row},
		Notify{Message: "Data point recorded!", Level: Success},
	}
}

// resetPositions returns the meter and block to rest and stops motion. With
// latch set the kinetic reading is cleared too.
func (s *Session) resetPositions(cmds []Command, latch bool) []Command {
	l := s.params.Layout
	s.meterX = l.MeterRest
	s.blockX = l.BlockRest
	cmds = append(cmds,
		SetMeterOffset{X: s.meterX},
		SetBlockOffset{X: s.blockX},
		s.params.Connector(s.meterX, s.blockX),
		SetForceReadout{Value: 0},
	)
	cmds = s.stopTimers(cmds)
	s.motion.Moving = false
	s.motion.JustBroke = false
	if latch {
		cmds = s.clearLatch(cmds)
	}
	return cmds
}

func (s *Session) clearLatch(cmds []Command) []Command {
	s.motion.StableKinetic = 0
	s.motion.StaticAtBreak = 0
	s.motion.HasMoved = false
	return append(cmds, SetKineticReadout{Value: 0})
}

// startWobble supersedes any running wobble with a new generation.
func (s *Session) startWobble(cmds []Command) []Command {
	if s.wobbling {
		cmds = append(cmds, StopTimer{Timer: TimerWobble})
	}
	s.wobbleGen++
	s.wobbling = true
	return append(cmds, StartTimer{Timer: TimerWobble, Gen: s.wobbleGen, After: s.params.WobblePeriod})
}

func (s *Session) stopTimers(cmds []Command) []Command {
	if s.wobbling {
		s.wobbling = false
		s.wobbleGen++
		cmds = append(cmds, StopTimer{Timer: TimerWobble})
	}
	if s.breakPending {
		s.breakPending = false
		s.breakGen++
		cmds = append(cmds, StopTimer{Timer: TimerBreakaway})
	}
	return cmds
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
