package friction

// Event is an input consumed by Session.Apply.
type Event interface {
	event()
}

// DragStart begins a drag session at the given pointer position (device pixels).
type DragStart struct{ PointerX float64 }

// DragMove reports the pointer position while dragging.
type DragMove struct{ PointerX float64 }

// DragEnd releases the meter.
type DragEnd struct{}

type AddWeight struct{}

type RemoveWeight struct{}

// SetSurface selects a surface. A zero Coefficient or StaticRatio keeps the
// current value.
type SetSurface struct {
	Surface     Surface
	Coefficient float64
	StaticRatio float64
}

// Reset restores the default surface, removes all weights and clears the
// kinetic reading.
type Reset struct{}

// Record appends the latched kinetic force to the data log.
type Record struct{}

// BreakawaySettled fires when the breakaway window of generation Gen ends.
type BreakawaySettled struct{ Gen uint64 }

// WobbleTick fires once per wobble period for generation Gen.
type WobbleTick struct{ Gen uint64 }

func (DragStart) event()        {}
func (DragMove) event()         {}
func (DragEnd) event()          {}
func (AddWeight) event()        {}
func (RemoveWeight) event()     {}
func (SetSurface) event()       {}
func (Reset) event()            {}
func (Record) event()           {}
func (BreakawaySettled) event() {}
func (WobbleTick) event()       {}
