// Package stress computes normal, shear, von Mises and principal stresses at
// every station of a load profile.
package stress

import (
	"math"

	"Girder/internal/calc/loads"
	"Girder/internal/calc/section"

	"gonum.org/v1/gonum/floats"
)

// Point holds the stress state (Pa) at one station.
type Point struct {
	PositionM  float64 `json:"position_m"`
	Bending    float64 `json:"bending_pa"`
	Shear      float64 `json:"shear_pa"`
	VonMises   float64 `json:"von_mises_pa"`
	Principal1 float64 `json:"principal1_pa"`
	Principal2 float64 `json:"principal2_pa"`
}

type Result struct {
	Points      []Point `json:"points"`
	MaxBending  float64 `json:"max_bending_pa"`
	MaxShear    float64 `json:"max_shear_pa"`
	MaxVonMises float64 `json:"max_von_mises_pa"`
	MaxMomentNM float64 `json:"max_moment_nm"`
	MaxShearN   float64 `json:"max_shear_n"`
}

// Bending returns the signed bending stress history.
func (r Result) Bending() []float64 {
	out := make([]float64, len(r.Points))
	for i, p := range r.Points {
		out[i] = p.Bending
	}
	return out
}

// Shear returns the signed shear stress history.
func (r Result) Shear() []float64 {
	out := make([]float64, len(r.Points))
	for i, p := range r.Points {
		out[i] = p.Shear
	}
	return out
}

// Analyze evaluates the stress state along the span. The profile must already
// be validated.
func Analyze(profile loads.Profile, kind section.Kind, props section.Properties) Result {
	x := profile.Positions()
	V := profile.ShearN()
	M := profile.MomentNM()

	pts := make([]Point, len(x))
	vm := make([]float64, len(x))
	for i := range x {
		sigma := M[i] / props.Modulus
		tau := ShearStress(V[i], kind, props)
		p1, p2 := Principal(sigma, tau)
		pts[i] = Point{
			PositionM:  x[i],
			Bending:    sigma,
			Shear:      tau,
			VonMises:   VonMises(sigma, tau),
			Principal1: p1,
			Principal2: p2,
		}
		vm[i] = pts[i].VonMises
	}

	r := Result{Points: pts, MaxMomentNM: maxAbs(M), MaxShearN: maxAbs(V)}
	r.MaxBending = maxAbs(r.Bending())
	r.MaxShear = maxAbs(r.Shear())
	r.MaxVonMises = floats.Max(vm)
	return r
}

// ShearStress gives the peak shear stress for a shear force V (N). Flanged
// sections carry shear in the web, so VQ/(It) on the web is used; the gross
// area would understate it.
func ShearStress(V float64, kind section.Kind, props section.Properties) float64 {
	if kind.Flanged() {
		return V * props.QMax / (props.Inertia * props.WebThickness)
	}
	return props.ShapeFactor * V / props.Area
}

func VonMises(sigma, tau float64) float64 {
	return math.Sqrt(sigma*sigma + 3*tau*tau)
}

// Principal returns the in-plane principal stresses for a beam fibre with
// normal stress sigma and shear tau.
func Principal(sigma, tau float64) (float64, float64) {
	r := math.Hypot(sigma/2, tau)
	return sigma/2 + r, sigma/2 - r
}

func maxAbs(v []float64) float64 {
	return math.Max(math.Abs(floats.Max(v)), math.Abs(floats.Min(v)))
}
