package fatigue

import (
	"math"

	"Girder/internal/calc/material"
	"Girder/internal/calc/stress"
	"Girder/internal/calc/units"

	"gonum.org/v1/gonum/floats"
)

// S-N calibration (Shigley, Mechanical Engineering Design, 10th ed., §6-7):
// the curve passes through 0.9·Sut at 10^3 cycles and the endurance limit at
// 10^6 cycles. Below the endurance limit life is treated as run-out.
const (
	ReferenceCycles  = 1e6
	LowCycleCount    = 1e3
	LowCycleFraction = 0.9
	RunoutCycles     = 1e12

	// Used when a material's endurance limit reaches the low-cycle strength and
	// the two-point calibration has no slope.
	fallbackExponent = 0.1
)

type Result struct {
	BendingRange    float64 `json:"bending_range_pa"`
	ShearRange      float64 `json:"shear_range_pa"`
	BendingMean     float64 `json:"bending_mean_pa"`
	ShearMean       float64 `json:"shear_mean_pa"`
	EffectiveStress float64 `json:"effective_stress_pa"`
	FatigueLimit    float64 `json:"fatigue_limit_pa"`
	BasquinExponent float64 `json:"basquin_exponent"`
	CyclesToFailure float64 `json:"cycles_to_failure"`
	SafetyFactor    float64 `json:"safety_factor"`
	// GoodmanUtilization is σa/Se + σm/Sut; values above 1 fail the
	// mean-stress corrected criterion.
	GoodmanUtilization float64 `json:"goodman_utilization"`
}

func Analyze(sr stress.Result, mat material.Record) Result {
	bending, shear := sr.Bending(), sr.Shear()
	sMax, sMin := floats.Max(bending), floats.Min(bending)
	tMax, tMin := floats.Max(shear), floats.Min(shear)

	r := Result{
		BendingRange: sMax - sMin,
		ShearRange:   tMax - tMin,
		BendingMean:  (sMax + sMin) / 2,
		ShearMean:    (tMax + tMin) / 2,
		FatigueLimit: mat.FatigueLimit(),
	}
	r.EffectiveStress = stress.VonMises(r.BendingRange, r.ShearRange)
	r.SafetyFactor = units.Ratio(r.FatigueLimit, r.EffectiveStress)
	r.BasquinExponent = Exponent(mat)
	r.CyclesToFailure = Cycles(r.EffectiveStress, mat)

	amplitude := r.EffectiveStress / 2
	mean := stress.VonMises(r.BendingMean, r.ShearMean)
	r.GoodmanUtilization = amplitude/r.FatigueLimit + mean/mat.Ultimate
	return r
}

// Exponent is the Basquin exponent b in σ = Se·(N/N_ref)^(-b).
func Exponent(mat material.Record) float64 {
	se := mat.FatigueLimit()
	low := LowCycleFraction * mat.Ultimate
	if se <= 0 || low <= se {
		return fallbackExponent
	}
	return math.Log10(low/se) / math.Log10(ReferenceCycles/LowCycleCount)
}

// Cycles estimates life for a stress range; it never increases with range.
func Cycles(stressRange float64, mat material.Record) float64 {
	se := mat.FatigueLimit()
	if stressRange < units.Epsilon || stressRange <= se {
		return RunoutCycles
	}
	n := ReferenceCycles * math.Pow(se/stressRange, 1/Exponent(mat))
	return math.Min(n, RunoutCycles)
}
