package util

import "testing"

func TestFormatters(t *testing.T) {
	cases := []struct {
		got, want string
	}{
		{FormatForce(2.9400000000000004), "2.94"},
		{FormatNewtons(0), "0.00 N"},
		{FormatNewtons(3.528), "3.53 N"},
		{FormatMass(3.5), "3.5"},
		{FormatMass(1), "1.0"},
		{FormatMu(0.3), "0.30"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Fatalf("expected %q, got %q", c.want, c.got)
		}
	}
}
