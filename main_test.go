package main

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestSimulateYAMLRecordsEveryTrial(t *testing.T) {
	out, err := runCmd(t, "simulate", "--surface", "ice", "--weights", "1", "--trials", "2", "--seed", "7", "--output", "yaml")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}

	var got struct {
		Surface string  `yaml:"surface"`
		Mass    float64 `yaml:"mass_kg"`
		MeanMu  float64 `yaml:"mean_mu"`
		Rows    []struct {
			Surface string  `yaml:"surface"`
			Mu      float64 `yaml:"mu"`
		} `yaml:"rows"`
	}
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if got.Surface != "ice" {
		t.Fatalf("expected ice, got %q", got.Surface)
	}
	if got.Mass != 1.5 {
		t.Fatalf("expected mass 1.5, got %v", got.Mass)
	}
	if len(got.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got.Rows))
	}
	if got.MeanMu < 0.048 || got.MeanMu > 0.052 {
		t.Fatalf("expected mean μ near 0.05, got %v", got.MeanMu)
	}
}

func TestSimulateTextPrintsSummary(t *testing.T) {
	out, err := runCmd(t, "simulate", "--surface", "carpet", "--trials", "1")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if !strings.Contains(out, "Carpet") {
		t.Fatalf("expected Carpet row, got:\n%s", out)
	}
	if !strings.Contains(out, "1/1 recorded") {
		t.Fatalf("expected summary line, got:\n%s", out)
	}
}

func TestSimulateRejectsBadInput(t *testing.T) {
	cases := map[string][]string{
		"output":  {"simulate", "--output", "json"},
		"surface": {"simulate", "--surface", "sand"},
		"weights": {"simulate", "--weights", "9"},
		"trials":  {"simulate", "--trials", "0"},
		"speed":   {"simulate", "--speed", "0"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := runCmd(t, args...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSurfacesListsPresets(t *testing.T) {
	out, err := runCmd(t, "surfaces")
	if err != nil {
		t.Fatalf("surfaces: %v", err)
	}
	for _, want := range []string{"wood", "ice", "carpet", "rubber", "(default)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Count(out, "(default)") != 1 {
		t.Fatalf("expected exactly one default, got:\n%s", out)
	}
}

func TestMissingConfigFileFails(t *testing.T) {
	if _, err := runCmd(t, "surfaces", "--config", t.TempDir()+"/nope.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
