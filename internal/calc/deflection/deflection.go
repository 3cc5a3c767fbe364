package deflection

import (
	"fmt"
	"math"
	"strings"

	"Girder/internal/calc/loads"
	"Girder/internal/calc/material"
	"Girder/internal/calc/section"

	"gonum.org/v1/gonum/floats"
)

type Support string

const (
	SimplySupported Support = "simply_supported"
	Cantilever      Support = "cantilever"
	FixedFixed      Support = "fixed_fixed"
	Continuous      Support = "continuous"
)

const (
	LiveLimitRatio  = 250.0
	TotalLimitRatio = 300.0
)

func ParseSupport(s string) (Support, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	n = strings.NewReplacer("-", "_", " ", "_").Replace(n)
	switch Support(n) {
	case "", SimplySupported, "simple":
		return SimplySupported, nil
	case Cantilever, FixedFixed, Continuous:
		return Support(n), nil
	}
	return "", fmt.Errorf("unknown support condition %q", s)
}

type Result struct {
	Support          Support   `json:"support"`
	PositionsM       []float64 `json:"positions_m"`
	SlopesRad        []float64 `json:"slopes_rad"`
	DeflectionsM     []float64 `json:"deflections_m"`
	MaxDeflectionM   float64   `json:"max_deflection_m"`
	MaxDeflectionAtM float64   `json:"max_deflection_at_m"`
	SpanM            float64   `json:"span_m"`
	LiveLimitM       float64   `json:"live_limit_m"`
	TotalLimitM      float64   `json:"total_limit_m"`
	LiveRatio        float64   `json:"live_ratio"`
	TotalRatio       float64   `json:"total_ratio"`
}

// Analyze integrates curvature M/(EI) twice over the actual sample spacing
// and fixes the integration constants from the support condition. Deflections
// are positive upward; a sagging moment gives negative values.
func Analyze(profile loads.Profile, props section.Properties, mat material.Record, support Support) Result {
	x := profile.Positions()
	M := profile.MomentNM()
	EI := mat.E * props.Inertia

	kappa := make([]float64, len(x))
	for i := range M {
		kappa[i] = M[i] / EI
	}
	theta := cumulativeTrapezoid(x, kappa)
	y := cumulativeTrapezoid(x, theta)

	n := len(x) - 1
	L := x[n] - x[0]
	var c1, c2 float64
	switch support {
	case Cantilever:
		// The fixed end carries the larger moment; the free end carries none.
		if math.Abs(M[n]) > math.Abs(M[0]) {
			c1 = -theta[n]
			c2 = -y[n] - c1*x[n]
		}
	default:
		// SimplySupported, FixedFixed and Continuous spans: zero deflection at
		// both ends. For a fixed-fixed span the supplied moments already
		// satisfy the end-slope conditions.
		c1 = -(y[n] - y[0]) / L
		c2 = -y[0] - c1*x[0]
	}
	for i := range x {
		theta[i] += c1
		y[i] += c1*x[i] + c2
	}

	abs := make([]float64, len(y))
	for i, v := range y {
		abs[i] = math.Abs(v)
	}
	peakIdx := floats.MaxIdx(abs)

	r := Result{
		Support:          support,
		PositionsM:       x,
		SlopesRad:        theta,
		DeflectionsM:     y,
		MaxDeflectionM:   abs[peakIdx],
		MaxDeflectionAtM: x[peakIdx],
		SpanM:            L,
		LiveLimitM:       L / LiveLimitRatio,
		TotalLimitM:      L / TotalLimitRatio,
	}
	r.LiveRatio = r.MaxDeflectionM / r.LiveLimitM
	r.TotalRatio = r.MaxDeflectionM / r.TotalLimitM
	return r
}

// cumulativeTrapezoid integrates f over non-uniformly spaced x, starting at 0.
func cumulativeTrapezoid(x, f []float64) []float64 {
	out := make([]float64, len(x))
	for i := 1; i < len(x); i++ {
		out[i] = out[i-1] + (x[i]-x[i-1])*(f[i]+f[i-1])/2
	}
	return out
}
