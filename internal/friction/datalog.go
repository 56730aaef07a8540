package friction

import "math"

// DataPoint is one recorded measurement. It is never modified after it is
// appended.
type DataPoint struct {
	ID           string  `yaml:"id"`
	Surface      string  `yaml:"surface"`
	Mass         float64 `yaml:"mass_kg"`
	KineticForce float64 `yaml:"kinetic_force_n"`
	Mu           float64 `yaml:"mu"`
}

// MuRounded returns the derived coefficient rounded to two decimals.
func (d DataPoint) MuRounded() float64 {
	return math.Round(d.Mu*100) / 100
}
