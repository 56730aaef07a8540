package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/frictionlab/internal/friction"
	"github.com/olivier-w/frictionlab/internal/util"
	"go.uber.org/zap"
)

// Terminal position of the scene's top-left cell. Mouse coordinates are
// translated relative to it.
const (
	sceneTop  = 6
	sceneLeft = 2
)

const nudgePx = 2

// Clicker plays the breakaway sound.
type Clicker interface {
	Click()
}

// Options tune the TUI. Zero values fall back to sensible defaults.
type Options struct {
	CellWidth     float64
	FPS           int
	ToastDuration time.Duration
	PulseDuration time.Duration
	Clicker       Clicker
	Logger        *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.CellWidth <= 0 {
		o.CellWidth = 8
	}
	if o.FPS <= 0 {
		o.FPS = 30
	}
	if o.ToastDuration <= 0 {
		o.ToastDuration = 3 * time.Second
	}
	if o.PulseDuration <= 0 {
		o.PulseDuration = 500 * time.Millisecond
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Model is the Bubbletea model for the friction bench.
type Model struct {
	session *friction.Session
	params  friction.Params
	trials  []friction.Trial
	opts    Options
	log     *zap.Logger

	bench *bench
	scene scene

	spring    harmonica.Spring
	needle    float64
	needleVel float64

	gauge progress.Model
	table table.Model

	pointer  float64 // last pointer x sent to the session
	width    int
	quitting bool
}

// New creates a Model driving s. trials are the presets offered on the
// number keys.
func New(s *friction.Session, trials []friction.Trial, opts Options) Model {
	opts = opts.withDefaults()
	p := s.Params()

	g := progress.New(
		progress.WithScaledGradient("#FF8C00", "#FF5F1F"),
		progress.WithoutPercentage(),
	)
	g.Width = 30

	m := Model{
		session: s,
		params:  p,
		trials:  trials,
		opts:    opts,
		log:     opts.Logger,
		bench:   newBench(opts.ToastDuration, opts.PulseDuration),
		scene:   scene{params: p, cellPx: opts.CellWidth},
		spring:  harmonica.NewSpring(harmonica.FPS(opts.FPS), 8.0, 0.35),
		gauge:   g,
		table:   newTable(),
	}
	friction.Dispatch(m.bench, s.Init())
	m.needle = p.NeedleOffset(m.bench.force)
	return m
}

func newTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Surface", Width: 10},
			{Title: "Mass (kg)", Width: 10},
			{Title: "Force (N)", Width: 10},
			{Title: "μ", Width: 6},
		}),
		table.WithHeight(6),
		table.WithFocused(false),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"}).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#EEEEEE"}).Bold(false)
	t.SetStyles(st)
	return t
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(m.opts.FPS), tea.SetWindowTitle("frictionlab"))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case timerMsg:
		if msg.session != m.session {
			return m, nil
		}
		return m.apply(msg.event)

	case frameMsg:
		m.needle, m.needleVel = m.spring.Update(m.needle, m.needleVel, m.params.NeedleOffset(m.bench.force))
		m.bench.expire()
		return m, frameCmd(m.opts.FPS)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.gauge.Width = min(max(msg.Width-40, 20), 40)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if isQuit(msg) {
		m.quitting = true
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	}
	if i, ok := surfaceIndex(msg); ok {
		if i >= len(m.trials) {
			return m, nil
		}
		return m.selectTrial(m.trials[i])
	}
	switch msg.String() {
	case "+", "=":
		return m.apply(friction.AddWeight{})
	case "-", "_":
		return m.apply(friction.RemoveWeight{})
	case "tab":
		return m.selectTrial(m.nextTrial())
	case "r":
		return m.apply(friction.Reset{})
	case "enter", " ":
		return m.apply(friction.Record{})
	case "left", "h":
		return m.nudge(-nudgePx)
	case "right", "l":
		return m.nudge(nudgePx)
	case "x":
		if m.session.Dragging() {
			return m.apply(friction.DragEnd{})
		}
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	px := float64(msg.X-sceneLeft) * m.opts.CellWidth
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.scene.hitMeter(m.bench, px, msg.Y-sceneTop) {
			return m, nil
		}
		m.pointer = px
		m.log.Debug("meter grabbed", zap.Float64("x", px), zap.Int("col", msg.X))
		return m.apply(friction.DragStart{PointerX: px})
	case tea.MouseActionMotion:
		if !m.session.Dragging() {
			return m, nil
		}
		m.pointer = px
		return m.apply(friction.DragMove{PointerX: px})
	case tea.MouseActionRelease:
		if !m.session.Dragging() {
			return m, nil
		}
		return m.apply(friction.DragEnd{})
	}
	return m, nil
}

// nudge moves the pointer by dx, grabbing the meter first if needed.
func (m Model) nudge(dx float64) (Model, tea.Cmd) {
	var first tea.Cmd
	if !m.session.Dragging() {
		m.pointer = m.bench.meterX + m.params.Layout.MeterWidth/2
		m, first = m.apply(friction.DragStart{PointerX: m.pointer})
	}
	m.pointer += dx
	m, next := m.apply(friction.DragMove{PointerX: m.pointer})
	return m, tea.Batch(first, next)
}

func (m Model) selectTrial(tr friction.Trial) (Model, tea.Cmd) {
	return m.apply(friction.SetSurface{
		Surface:     tr.Surface,
		Coefficient: tr.Coefficient,
		StaticRatio: tr.StaticRatio,
	})
}

func (m Model) nextTrial() friction.Trial {
	cur := m.session.Trial().Surface
	for i, tr := range m.trials {
		if tr.Surface == cur {
			return m.trials[(i+1)%len(m.trials)]
		}
	}
	if len(m.trials) > 0 {
		return m.trials[0]
	}
	return m.session.Trial()
}

// apply runs ev through the session, paints the result and schedules any
// timers it started. Stopped timers need no action: their stale firings
// are ignored by the session.
func (m Model) apply(ev friction.Event) (Model, tea.Cmd) {
	out := m.session.Apply(ev)
	friction.Dispatch(m.bench, out)

	var cmds []tea.Cmd
	for _, c := range friction.Timers(out) {
		if st, ok := c.(friction.StartTimer); ok {
			cmds = append(cmds, timerCmd(m.session, st))
		}
	}
	if m.bench.takeClick() && m.opts.Clicker != nil {
		m.opts.Clicker.Click()
	}
	if m.bench.takeRows() {
		m.syncRows()
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) syncRows() {
	rows := make([]table.Row, 0, len(m.bench.rows))
	for _, r := range m.bench.rows {
		rows = append(rows, table.Row{
			r.Surface,
			util.FormatMass(r.Mass),
			util.FormatForce(r.KineticForce),
			util.FormatMu(r.MuRounded()),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoBottom()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	tr := m.session.Trial()
	header := headerStyle.Render("frictionlab")
	title := titleStyle.Render(tr.Surface.Title())
	coeffs := statusStyle.Render(fmt.Sprintf("μk %s  μs/μk %s", util.FormatMu(tr.Coefficient), util.FormatMu(tr.StaticRatio)))

	ratio := 0.0
	if m.params.MaxPull > 0 {
		ratio = min(max(m.bench.force/m.params.MaxPull, 0), 1)
	}
	forceLine := labelStyle.Render("Force    ") + valueStyle.Render(util.FormatNewtons(m.bench.force)) + "  " + m.gauge.ViewAs(ratio)

	kstyle := valueStyle
	if m.bench.pulsing {
		kstyle = pulseStyle
	}
	kineticLine := labelStyle.Render("Kinetic  ") + kstyle.Render(util.FormatNewtons(m.bench.kinetic)) +
		spaces(4) + labelStyle.Render("Total: ") + valueStyle.Render(util.FormatMass(m.bench.mass)+" kg")

	lines := "\n"
	lines += "  " + header + "  " + title + "  " + coeffs + "\n"
	lines += "\n"
	lines += "  " + forceLine + "\n"
	lines += "  " + kineticLine + "\n"
	lines += "\n"
	for _, l := range m.scene.render(m.bench, m.needle, m.session.Weights()) {
		lines += "  " + l + "\n"
	}
	lines += "\n"
	if len(m.bench.rows) == 0 {
		lines += "  " + helpStyle.Render("No data recorded yet") + "\n"
	} else {
		for _, l := range strings.Split(m.table.View(), "\n") {
			lines += "  " + l + "\n"
		}
	}
	if m.bench.toast != "" {
		st := successStyle
		if m.bench.toastLvl == friction.Warning {
			st = warningStyle
		}
		lines += "\n  " + st.Render(m.bench.toast) + "\n"
	}
	lines += "\n"
	lines += "  " + helpStyle.Render(helpText(len(m.trials))) + "\n"
	return lines
}

func spaces(n int) string {
	if n < 0 {
		n = 0
	}
	return strings.Repeat(" ", n)
}
