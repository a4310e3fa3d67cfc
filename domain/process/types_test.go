package process

import (
	"errors"
	"math"
	"testing"

	"fbmlab/domain/core"
)

func TestNewHurst(t *testing.T) {
	for _, valid := range []float64{0.01, 0.3, 0.5, 0.99} {
		h, err := NewHurst(valid)
		if err != nil {
			t.Errorf("NewHurst(%g): unexpected error %v", valid, err)
		}
		if h.Float() != valid {
			t.Errorf("NewHurst(%g) = %g", valid, h.Float())
		}
	}

	for _, invalid := range []float64{0, 1, -0.2, 1.5} {
		if _, err := NewHurst(invalid); !errors.Is(err, core.ErrInvalidHurst) {
			t.Errorf("NewHurst(%g): expected ErrInvalidHurst, got %v", invalid, err)
		}
	}
}

func TestParseFamily(t *testing.T) {
	cases := map[string]Family{
		"brownian": FamilyBrownian,
		"fbm":      FamilyFBM,
		"rl-fbm":   FamilyRiemannLiouville,
		" FBM ":    FamilyFBM,
	}
	for input, want := range cases {
		got, err := ParseFamily(input)
		if err != nil {
			t.Errorf("ParseFamily(%q): unexpected error %v", input, err)
		}
		if got != want {
			t.Errorf("ParseFamily(%q) = %q, want %q", input, got, want)
		}
	}

	if _, err := ParseFamily("ornstein"); !errors.Is(err, core.ErrUnknownFamily) {
		t.Errorf("expected ErrUnknownFamily, got %v", err)
	}
}

func TestFamilyUsesCovariance(t *testing.T) {
	if FamilyBrownian.UsesCovariance() {
		t.Error("brownian motion must bypass the covariance machinery")
	}
	if !FamilyFBM.UsesCovariance() || !FamilyRiemannLiouville.UsesCovariance() {
		t.Error("fractional families must use the covariance route")
	}
}

func TestHurstSummaryStdErr(t *testing.T) {
	s := HurstSummary{Mean: 0.01, StdDev: 0.2, Defined: 400}
	if got := s.StdErr(); math.Abs(got-0.01) > 1e-12 {
		t.Errorf("StdErr = %g, want 0.01", got)
	}

	empty := HurstSummary{}
	if empty.StdErr() != 0 {
		t.Error("StdErr of empty summary should be 0")
	}
}
