package lab

import (
	"strings"
	"testing"
	"time"

	"github.com/olivier-w/frictionlab/internal/friction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type half struct{}

func (half) Float64() float64 { return 0.5 }

func newTimeline(t *testing.T) *Timeline {
	t.Helper()
	s := friction.NewSession(friction.DefaultParams(), friction.WithRand(half{}))
	tl := NewTimeline(s, &tally{}, nil)
	tl.Paint()
	return tl
}

func TestTimelineFiresWobbleOnlyWhileMoving(t *testing.T) {
	tl := newTimeline(t)
	tl.Do(friction.DragStart{PointerX: 400})
	tl.Do(friction.DragMove{PointerX: 380})
	require.True(t, tl.Session().Motion().Moving)
	assert.True(t, tl.Pending(friction.TimerBreakaway))

	tl.Advance(200 * time.Millisecond)
	assert.Equal(t, 1, tl.Fired(friction.TimerBreakaway))
	assert.False(t, tl.Session().Motion().JustBroke)
	assert.True(t, tl.Pending(friction.TimerWobble))

	tl.Advance(450 * time.Millisecond)
	assert.Equal(t, 3, tl.Fired(friction.TimerWobble))

	tl.Do(friction.DragEnd{})
	assert.False(t, tl.Pending(friction.TimerWobble))
	tl.Advance(time.Second)
	assert.Equal(t, 3, tl.Fired(friction.TimerWobble))
}

func TestTimelineDropsCancelledBreakaway(t *testing.T) {
	tl := newTimeline(t)
	tl.Do(friction.DragStart{PointerX: 400})
	tl.Do(friction.DragMove{PointerX: 380})
	tl.Advance(100 * time.Millisecond)
	tl.Do(friction.DragEnd{})

	assert.False(t, tl.Pending(friction.TimerBreakaway))
	tl.Advance(time.Second)
	assert.Zero(t, tl.Fired(friction.TimerBreakaway))
	assert.Zero(t, tl.Fired(friction.TimerWobble))
	assert.Equal(t, 1100*time.Millisecond, tl.Now())
}

func TestPullRecordsOneRow(t *testing.T) {
	tl := newTimeline(t)
	require.True(t, Pull(tl, DefaultScript()))

	rows := tl.Session().Rows()
	require.Len(t, rows, 1)
	assert.InDelta(t, 2.94, rows[0].KineticForce, 1e-9)
	assert.False(t, tl.Session().Dragging())
	assert.Positive(t, tl.Fired(friction.TimerWobble))
}

func TestExperimentRun(t *testing.T) {
	carpet := friction.DefaultTrials()[2]
	e := Experiment{
		Params:  friction.DefaultParams(),
		Trial:   carpet,
		Weights: 2,
		Trials:  3,
		Script:  DefaultScript(),
	}
	rep, err := e.Run(nil)
	require.NoError(t, err)

	assert.Equal(t, 2.0, rep.Mass)
	require.Len(t, rep.Rows, 3)
	for _, row := range rep.Rows {
		assert.Equal(t, "Carpet", row.Surface)
		assert.InEpsilon(t, carpet.Coefficient, row.Mu, 0.03)
	}
	assert.InEpsilon(t, carpet.Coefficient, rep.MeanMu(), 0.03)
	assert.Empty(t, rep.Warnings())

	text := rep.Text()
	assert.Contains(t, text, "Carpet")
	assert.Contains(t, text, "3/3 recorded")

	raw, err := rep.YAML()
	require.NoError(t, err)
	var decoded yamlReport
	require.NoError(t, yaml.Unmarshal(raw, &decoded))
	assert.Equal(t, "carpet", decoded.Surface)
	assert.Len(t, decoded.Rows, 3)
}

func TestExperimentWarnsWhenBlockNeverMoves(t *testing.T) {
	p := friction.DefaultParams()
	e := Experiment{
		Params: p,
		// 3.5 kg on a very sticky surface needs more than the 60 N the meter can show.
		Trial:   friction.Trial{Surface: friction.Rubber, Coefficient: 2, StaticRatio: 1.2},
		Weights: 5,
		Trials:  1,
		Script:  DefaultScript(),
	}
	rep, err := e.Run(nil)
	require.NoError(t, err)
	assert.Empty(t, rep.Rows)
	require.Len(t, rep.Warnings(), 1)
	assert.True(t, strings.Contains(rep.Text(), "warning: Pull until the block moves first"))
}

func TestExperimentValidatesInput(t *testing.T) {
	base := Experiment{Params: friction.DefaultParams(), Trial: friction.DefaultTrials()[0], Trials: 1, Script: DefaultScript()}

	e := base
	e.Trials = 0
	_, err := e.Run(nil)
	assert.Error(t, err)

	e = base
	e.Weights = 6
	_, err = e.Run(nil)
	assert.Error(t, err)

	e = base
	e.Script.Step = 0
	_, err = e.Run(nil)
	assert.Error(t, err)
}
