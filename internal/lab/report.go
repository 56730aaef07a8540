package lab

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/olivier-w/frictionlab/internal/friction"
	"github.com/olivier-w/frictionlab/internal/util"
	"gopkg.in/yaml.v3"
)

// Report is the outcome of an Experiment.
type Report struct {
	Trial   friction.Trial
	Mass    float64
	Rows    []friction.DataPoint
	Wobbles int
	Notes   []friction.Notify
	Elapsed time.Duration
}

// MeanMu averages the derived coefficient over all rows.
func (r Report) MeanMu() float64 {
	if len(r.Rows) == 0 {
		return 0
	}
	var sum float64
	for _, row := range r.Rows {
		sum += row.Mu
	}
	return sum / float64(len(r.Rows))
}

// Warnings returns the messages of warning notifications.
func (r Report) Warnings() []string {
	var out []string
	for _, n := range r.Notes {
		if n.Level == friction.Warning {
			out = append(out, n.Message)
		}
	}
	return out
}

var headerCell = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var bodyCell = lipgloss.NewStyle().Padding(0, 1)

// Text renders the rows as a table followed by a summary line.
func (r Report) Text() string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Surface", "Mass (kg)", "Kinetic (N)", "μ").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			return bodyCell
		})
	for i, row := range r.Rows {
		t.Row(
			fmt.Sprintf("%d", i+1),
			row.Surface,
			util.FormatMass(row.Mass),
			util.FormatForce(row.KineticForce),
			util.FormatMu(row.MuRounded()),
		)
	}

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s · %s kg · μk %s · %d/%d recorded · mean μ %s\n",
		r.Trial.Surface.Title(),
		util.FormatMass(r.Mass),
		util.FormatMu(r.Trial.Coefficient),
		len(r.Rows),
		len(r.Rows)+len(r.Warnings()),
		util.FormatMu(r.MeanMu()),
	))
	for _, w := range r.Warnings() {
		b.WriteString("warning: ")
		b.WriteString(w)
		b.WriteString("\n")
	}
	return b.String()
}

type yamlReport struct {
	Surface     string               `yaml:"surface"`
	Coefficient float64              `yaml:"coefficient"`
	StaticRatio float64              `yaml:"static_ratio"`
	Mass        float64              `yaml:"mass_kg"`
	MeanMu      float64              `yaml:"mean_mu"`
	Wobbles     int                  `yaml:"wobble_ticks"`
	Elapsed     string               `yaml:"elapsed"`
	Rows        []friction.DataPoint `yaml:"rows"`
	Warnings    []string             `yaml:"warnings,omitempty"`
}

// YAML encodes the report for scripting.
func (r Report) YAML() ([]byte, error) {
	out, err := yaml.Marshal(yamlReport{
		Surface:     r.Trial.Surface.String(),
		Coefficient: r.Trial.Coefficient,
		StaticRatio: r.Trial.StaticRatio,
		Mass:        r.Mass,
		MeanMu:      r.MeanMu(),
		Wobbles:     r.Wobbles,
		Elapsed:     r.Elapsed.String(),
		Rows:        r.Rows,
		Warnings:    r.Warnings(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return out, nil
}
