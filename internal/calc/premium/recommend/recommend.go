package recommend

import (
	"errors"
	"fmt"

	"Girder/internal/calc/beam"
	"Girder/internal/calc/deflection"
	"Girder/internal/calc/loads"
	"Girder/internal/calc/material"
	"Girder/internal/calc/safety"
	"Girder/internal/calc/section"
)

var ErrNoFeasibleHeight = errors.New("no height in range satisfies the checks")

const toleranceMM = 0.5

type HeightInput struct {
	Material    string             `json:"material"`
	Support     deflection.Support `json:"support"`
	Profile     loads.Profile      `json:"profile"`
	WidthMM     float64            `json:"width_mm"`
	TargetSF    float64            `json:"target_sf"`
	MinHeightMM float64            `json:"min_height_mm"`
	MaxHeightMM float64            `json:"max_height_mm"`
}

type HeightResult struct {
	HeightMM   float64     `json:"height_mm"`
	Iterations int         `json:"iterations"`
	Analysis   beam.Result `json:"analysis"`
	Notes      string      `json:"notes"`
}

// Height bisects the height of a rectangular section of fixed width until it
// is the smallest (within half a millimetre) that is SAFE for the target
// safety factor. Combined safety and stiffness both grow with height.
func Height(in HeightInput) (HeightResult, error) {
	if err := in.Profile.Validate(); err != nil {
		return HeightResult{}, err
	}
	mat, _, err := material.ByName(in.Material)
	if err != nil {
		return HeightResult{}, err
	}
	support, err := deflection.ParseSupport(string(in.Support))
	if err != nil {
		return HeightResult{}, err
	}
	if in.WidthMM <= 0 {
		return HeightResult{}, fmt.Errorf("%w: width %g mm", section.ErrInvalidDimension, in.WidthMM)
	}
	lo, hi := in.MinHeightMM, in.MaxHeightMM
	if lo <= 0 {
		lo = 10
	}
	if hi <= 0 {
		hi = 2000
	}
	if hi <= lo {
		return HeightResult{}, fmt.Errorf("%w: height range %g..%g mm", section.ErrInvalidDimension, lo, hi)
	}
	lim := safety.Limits{RequiredSafetyFactor: in.TargetSF}

	check := func(h float64) (beam.Result, bool, error) {
		spec := section.Spec{Kind: section.Rectangular, Dimensions: map[string]float64{section.Width: in.WidthMM, section.Height: h}}
		res, err := beam.Evaluate(in.Profile, mat, spec, support, lim)
		if err != nil {
			return beam.Result{}, false, err
		}
		return res, res.Safety.Status == safety.Safe, nil
	}

	best, ok, err := check(hi)
	if err != nil {
		return HeightResult{}, err
	}
	if !ok {
		return HeightResult{}, fmt.Errorf("%w: %s at %g mm wide, up to %g mm high", ErrNoFeasibleHeight, mat.Name, in.WidthMM, hi)
	}
	out := HeightResult{HeightMM: hi, Analysis: best}
	if res, ok, err := check(lo); err == nil && ok {
		out.HeightMM, out.Analysis = lo, res
	} else {
		for hi-lo > toleranceMM {
			out.Iterations++
			mid := (lo + hi) / 2
			res, ok, err := check(mid)
			if err != nil {
				return HeightResult{}, err
			}
			if ok {
				hi, out.Analysis = mid, res
			} else {
				lo = mid
			}
		}
		out.HeightMM = hi
	}
	out.Notes = fmt.Sprintf("Minimum height for %s %g mm wide: combined SF %.2f (required %.2f), governing %s.",
		mat.Name, in.WidthMM, out.Analysis.Safety.CombinedSF, out.Analysis.Safety.RequiredSF, out.Analysis.Safety.Governing)
	return out, nil
}
