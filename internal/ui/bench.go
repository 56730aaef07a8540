package ui

import (
	"time"

	"github.com/olivier-w/frictionlab/internal/friction"
)

// bench is the display state the session paints into. It implements
// friction.Sink and is only touched from the Update loop.
type bench struct {
	meterX    float64
	blockX    float64
	connector friction.SetConnectorGeometry
	force     float64
	kinetic   float64
	surface   friction.Surface
	mass      float64
	rows      []friction.DataPoint

	pulseAt  time.Time
	pulsing  bool
	clicked  bool
	rowsNew  bool
	toast    string
	toastLvl friction.Level
	toastAt  time.Time

	toastFor time.Duration
	pulseFor time.Duration
	now      func() time.Time
}

func newBench(toastFor, pulseFor time.Duration) *bench {
	return &bench{toastFor: toastFor, pulseFor: pulseFor, now: time.Now}
}

func (b *bench) SetBlockOffset(x float64) { b.blockX = x }
func (b *bench) SetMeterOffset(x float64) { b.meterX = x }

func (b *bench) SetConnectorGeometry(fromX, width, y float64) {
	b.connector = friction.SetConnectorGeometry{FromX: fromX, Width: width, Y: y}
}

func (b *bench) SetForceReadout(v float64)   { b.force = v }
func (b *bench) SetKineticReadout(v float64) { b.kinetic = v }

func (b *bench) PulseKineticReadout(v float64) {
	b.kinetic = v
	b.pulsing = true
	b.clicked = true
	b.pulseAt = b.now()
}

func (b *bench) SetSurfaceVisual(s friction.Surface) { b.surface = s }
func (b *bench) SetMassLabel(kg float64)             { b.mass = kg }

func (b *bench) AppendDataRow(row friction.DataPoint) {
	b.rows = append(b.rows, row)
	b.rowsNew = true
}

func (b *bench) Notify(msg string, level friction.Level) {
	b.toast = msg
	b.toastLvl = level
	b.toastAt = b.now()
}

// takeClick reports whether a breakaway happened since the last call.
func (b *bench) takeClick() bool {
	c := b.clicked
	b.clicked = false
	return c
}

func (b *bench) takeRows() bool {
	r := b.rowsNew
	b.rowsNew = false
	return r
}

// expire clears the toast and the kinetic highlight once they have been
// shown long enough.
func (b *bench) expire() {
	now := b.now()
	if b.toast != "" && now.Sub(b.toastAt) > b.toastFor {
		b.toast = ""
	}
	if b.pulsing && now.Sub(b.pulseAt) > b.pulseFor {
		b.pulsing = false
	}
}
