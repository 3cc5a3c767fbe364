package beam

import (
	"fmt"

	"Girder/internal/calc/deflection"
	"Girder/internal/calc/fatigue"
	"Girder/internal/calc/loads"
	"Girder/internal/calc/material"
	"Girder/internal/calc/safety"
	"Girder/internal/calc/section"
	"Girder/internal/calc/stress"
)

type Input struct {
	Material string             `json:"material"`
	Section  section.Spec       `json:"section"`
	Support  deflection.Support `json:"support"`
	Profile  loads.Profile      `json:"profile"`
	Limits   safety.Limits      `json:"limits"`
}

type Result struct {
	Material              material.Record    `json:"material"`
	Section               section.Spec       `json:"section"`
	Properties            section.Properties `json:"properties"`
	Stress                stress.Result      `json:"stress"`
	Deflection            deflection.Result  `json:"deflection"`
	Fatigue               fatigue.Result     `json:"fatigue"`
	Safety                safety.Assessment  `json:"safety"`
	OptimizationSuggested bool               `json:"optimization_suggested"`
	Notes                 string             `json:"notes"`
}

// Calculate analyses one user-specified design. Malformed geometry or load
// data fails the whole request; nothing is partially computed.
func Calculate(in Input) (Result, error) {
	if err := in.Profile.Validate(); err != nil {
		return Result{}, err
	}
	mat, _, err := material.ByName(in.Material)
	if err != nil {
		return Result{}, err
	}
	support, err := deflection.ParseSupport(string(in.Support))
	if err != nil {
		return Result{}, err
	}
	return Evaluate(in.Profile, mat, in.Section, support, in.Limits)
}

// Evaluate runs the full analysis chain on an already validated profile.
func Evaluate(profile loads.Profile, mat material.Record, spec section.Spec, support deflection.Support, lim safety.Limits) (Result, error) {
	props, err := spec.Compute()
	if err != nil {
		return Result{}, err
	}
	sr := stress.Analyze(profile, spec.Kind, props)
	dr := deflection.Analyze(profile, props, mat, support)
	fr := fatigue.Analyze(sr, mat)
	sa := safety.Evaluate(sr, dr, fr, mat, lim)

	res := Result{
		Material:              mat,
		Section:               spec,
		Properties:            props,
		Stress:                sr,
		Deflection:            dr,
		Fatigue:               fr,
		Safety:                sa,
		OptimizationSuggested: sa.Status == safety.Unsafe,
		Notes:                 fmt.Sprintf("%s %s beam, %s support; governing criterion: %s.", mat.Name, spec.Kind, support, sa.Governing),
	}
	return res, nil
}
