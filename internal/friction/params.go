package friction

import "time"

// Layout holds the device-pixel geometry of the bench. The meter is dragged
// left from MeterRest towards MeterMin; the block sits to its right.
type Layout struct {
	BlockRest   float64
	MeterRest   float64
	MeterMin    float64
	MeterWidth  float64
	UnitPx      float64 // pixels per scale unit
	Divisions   float64 // scale units per MaxPull
	ReadingSpan float64 // usable needle travel inside the meter
	ReadingPad  float64
	AreaHeight  float64
	BlockBottom float64
	HookDrop    float64
}

// Params configures a Session.
type Params struct {
	Gravity float64
	MaxPull float64

	KineticJitter float64
	StaticJitter  float64
	WobbleJitter  float64

	BreakawayWindow time.Duration
	WobblePeriod    time.Duration

	BaseMass   float64
	WeightMass float64
	MaxWeights int

	Default Trial
	Layout  Layout
}

// DefaultParams returns the stock bench: wood, 1 kg block, 30 N meter.
func DefaultParams() Params {
	return Params{
		Gravity:         9.8,
		MaxPull:         30,
		KineticJitter:   0.03,
		StaticJitter:    0.03,
		WobbleJitter:    0.05,
		BreakawayWindow: 200 * time.Millisecond,
		WobblePeriod:    150 * time.Millisecond,
		BaseMass:        1.0,
		WeightMass:      0.5,
		MaxWeights:      5,
		Default:         DefaultTrials()[0],
		Layout: Layout{
			BlockRest:   500,
			MeterRest:   300,
			MeterMin:    100,
			MeterWidth:  180,
			UnitPx:      20,
			Divisions:   5,
			ReadingSpan: 160,
			ReadingPad:  10,
			AreaHeight:  300,
			BlockBottom: 30,
			HookDrop:    40,
		},
	}
}

// RawForce converts a pull distance in pixels to the force the meter reads.
func (p Params) RawForce(pull float64) float64 {
	return pull / p.Layout.UnitPx * p.MaxPull / p.Layout.Divisions
}

// ForceToPx is the inverse of RawForce.
func (p Params) ForceToPx(force float64) float64 {
	return force * p.Layout.UnitPx * p.Layout.Divisions / p.MaxPull
}

// NeedleOffset returns the needle position inside the meter body for force.
func (p Params) NeedleOffset(force float64) float64 {
	ratio := force / p.MaxPull
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return ratio*p.Layout.ReadingSpan + p.Layout.ReadingPad
}

// Connector returns the string geometry between the meter's right edge and
// the block.
func (p Params) Connector(meterX, blockX float64) SetConnectorGeometry {
	from := meterX + p.Layout.MeterWidth
	width := blockX - from
	if width < 0 {
		width = 0
	}
	return SetConnectorGeometry{
		FromX: from,
		Width: width,
		Y:     p.Layout.AreaHeight - p.Layout.BlockBottom - p.Layout.HookDrop,
	}
}
