package safety

import (
	"math"

	"Girder/internal/calc/deflection"
	"Girder/internal/calc/fatigue"
	"Girder/internal/calc/material"
	"Girder/internal/calc/stress"
	"Girder/internal/calc/units"
)

type Status string

const (
	Safe   Status = "SAFE"
	Unsafe Status = "UNSAFE"
)

// Limits configures the pass criteria. Zero values take the defaults.
type Limits struct {
	// RequiredSafetyFactor overrides the material's code-prescribed factor.
	RequiredSafetyFactor float64 `json:"required_safety_factor,omitempty"`
	// SpanRatio is the allowable deflection as span/SpanRatio.
	SpanRatio float64 `json:"span_ratio,omitempty"`
	// MaxDeflectionM additionally caps the absolute deflection when positive.
	MaxDeflectionM float64 `json:"max_deflection_m,omitempty"`
}

type Assessment struct {
	BendingSF     float64 `json:"bending_sf"`
	ShearSF       float64 `json:"shear_sf"`
	VonMisesSF    float64 `json:"von_mises_sf"`
	FatigueSF     float64 `json:"fatigue_sf"`
	CombinedSF    float64 `json:"combined_sf"`
	Governing     string  `json:"governing"`
	RequiredSF    float64 `json:"required_sf"`
	AllowableDefl float64 `json:"allowable_deflection_m"`
	DeflectionOK  bool    `json:"deflection_ok"`
	Status        Status  `json:"status"`
}

// Evaluate combines the stress, deflection and fatigue checks. The combined
// factor is the minimum of the four criteria.
func Evaluate(sr stress.Result, dr deflection.Result, fr fatigue.Result, mat material.Record, lim Limits) Assessment {
	a := Assessment{
		BendingSF:  units.Ratio(mat.Yield, sr.MaxBending),
		ShearSF:    units.Ratio(mat.Yield/math.Sqrt(3), sr.MaxShear),
		VonMisesSF: units.Ratio(mat.Yield, sr.MaxVonMises),
		FatigueSF:  fr.SafetyFactor,
		RequiredSF: lim.RequiredSafetyFactor,
	}
	if a.RequiredSF <= 0 {
		a.RequiredSF = mat.RequiredSafetyFactor()
	}

	a.CombinedSF, a.Governing = a.BendingSF, "bending"
	for _, c := range []struct {
		name string
		sf   float64
	}{{"shear", a.ShearSF}, {"von_mises", a.VonMisesSF}, {"fatigue", a.FatigueSF}} {
		if c.sf < a.CombinedSF {
			a.CombinedSF, a.Governing = c.sf, c.name
		}
	}

	ratio := lim.SpanRatio
	if ratio <= 0 {
		ratio = deflection.TotalLimitRatio
	}
	a.AllowableDefl = dr.SpanM / ratio
	if lim.MaxDeflectionM > 0 {
		a.AllowableDefl = math.Min(a.AllowableDefl, lim.MaxDeflectionM)
	}
	a.DeflectionOK = dr.MaxDeflectionM <= a.AllowableDefl

	a.Status = Unsafe
	if a.CombinedSF >= a.RequiredSF && a.DeflectionOK {
		a.Status = Safe
	}
	return a
}
