package friction

// Rand is the uniform source behind every jittered sample. *rand.Rand
// satisfies it.
type Rand interface {
	Float64() float64
}

// Sample applies symmetric multiplicative jitter: value·(1 + U(-spread, spread)).
func Sample(r Rand, value, spread float64) float64 {
	return value * (1 + (r.Float64()*spread*2 - spread))
}

// Thresholds are the friction forces, in newtons, resisting the pull.
type Thresholds struct {
	Kinetic float64
	Static  float64
}

// BaseThresholds returns the noiseless friction forces for a block of mass kg.
func BaseThresholds(mass, gravity float64, t Trial) Thresholds {
	kinetic := mass * gravity * t.Coefficient
	return Thresholds{
		Kinetic: kinetic,
		Static:  kinetic * t.StaticRatio,
	}
}

// Jitter resamples both thresholds independently.
func (t Thresholds) Jitter(r Rand, kineticSpread, staticSpread float64) Thresholds {
	return Thresholds{
		Kinetic: Sample(r, t.Kinetic, kineticSpread),
		Static:  Sample(r, t.Static, staticSpread),
	}
}
