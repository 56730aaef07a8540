package friction

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand always returns v; 0.5 yields a jitter factor of exactly 1.
type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

func TestBaseThresholdsIsExactBeforeJitter(t *testing.T) {
	for _, mu := range []float64{0.05, 0.3, 0.6, 0.8} {
		for w := 0; w <= 5; w++ {
			m := 1.0 + 0.5*float64(w)
			th := BaseThresholds(m, 9.8, Trial{Coefficient: mu, StaticRatio: 1.2})
			assert.Equal(t, m*9.8*mu, th.Kinetic)
			assert.Equal(t, m*9.8*mu*1.2, th.Static)
		}
	}
}

func TestSampleStaysWithinSpread(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for _, spread := range []float64{0.03, 0.05} {
		for i := 0; i < 2000; i++ {
			got := Sample(r, 2.94, spread)
			assert.GreaterOrEqual(t, got, 2.94*(1-spread))
			assert.LessOrEqual(t, got, 2.94*(1+spread))
		}
	}
}

func TestSampleExtremes(t *testing.T) {
	assert.InDelta(t, 0.97*10, Sample(fixedRand(0), 10, 0.03), 1e-9)
	assert.Equal(t, 10.0, Sample(fixedRand(0.5), 10, 0.03))
}

func TestWoodScenarioThresholds(t *testing.T) {
	th := BaseThresholds(1.0, 9.8, DefaultTrials()[0])
	assert.InDelta(t, 2.94, th.Kinetic, 1e-9)
	assert.InDelta(t, 3.528, th.Static, 1e-9)
}

func TestParseSurface(t *testing.T) {
	s, ok := ParseSurface(" Carpet ")
	require.True(t, ok)
	assert.Equal(t, Carpet, s)
	assert.Equal(t, "Carpet", s.Title())

	_, ok = ParseSurface("sand")
	assert.False(t, ok)
	assert.False(t, Surface(9).Valid())
	assert.Equal(t, "unknown", Surface(9).String())
}

func TestParamsGeometry(t *testing.T) {
	p := DefaultParams()
	assert.InDelta(t, 30.0, p.RawForce(100), 1e-9)
	assert.InDelta(t, 100.0, p.ForceToPx(30), 1e-9)
	assert.InDelta(t, 10.0, p.NeedleOffset(0), 1e-9)
	assert.InDelta(t, 170.0, p.NeedleOffset(45), 1e-9)

	c := p.Connector(300, 500)
	assert.Equal(t, SetConnectorGeometry{FromX: 480, Width: 20, Y: 230}, c)

	c = p.Connector(300, 450)
	assert.Zero(t, c.Width)
}
