package friction

import "strings"

// Surface is the material the block slides across.
type Surface uint8

const (
	Wood Surface = iota
	Ice
	Carpet
	Rubber
)

var surfaceNames = [...]string{"wood", "ice", "carpet", "rubber"}

// Surfaces returns every selectable surface in display order.
func Surfaces() []Surface {
	return []Surface{Wood, Ice, Carpet, Rubber}
}

// Valid reports whether s names a known surface.
func (s Surface) Valid() bool {
	return int(s) < len(surfaceNames)
}

func (s Surface) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return surfaceNames[s]
}

// Title returns the surface name with its first letter capitalized, as shown
// in the data table.
func (s Surface) Title() string {
	name := s.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// ParseSurface looks up a surface by name, ignoring case.
func ParseSurface(name string) (Surface, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range surfaceNames {
		if n == name {
			return Surface(i), true
		}
	}
	return 0, false
}

// Trial is the friction configuration of the current experiment.
type Trial struct {
	Surface     Surface
	Coefficient float64 // kinetic coefficient μk
	StaticRatio float64 // static / kinetic
}

// DefaultTrials returns the stock surface presets.
func DefaultTrials() []Trial {
	return []Trial{
		{Surface: Wood, Coefficient: 0.30, StaticRatio: 1.20},
		{Surface: Ice, Coefficient: 0.05, StaticRatio: 1.40},
		{Surface: Carpet, Coefficient: 0.60, StaticRatio: 1.15},
		{Surface: Rubber, Coefficient: 0.80, StaticRatio: 1.25},
	}
}
