package batch

import (
	"errors"
	"fmt"
	"sort"

	"Girder/internal/calc/beam"
	"Girder/internal/calc/deflection"
	"Girder/internal/calc/loads"
	"Girder/internal/calc/material"
	"Girder/internal/calc/safety"
	"Girder/internal/calc/section"
)

var ErrNoCandidates = errors.New("no candidate designs")

type Candidate struct {
	Label    string       `json:"label"`
	Material string       `json:"material"`
	Section  section.Spec `json:"section"`
}

type BeamBatchInput struct {
	Profile    loads.Profile      `json:"profile"`
	Support    deflection.Support `json:"support"`
	Limits     safety.Limits      `json:"limits"`
	Candidates []Candidate        `json:"candidates"`
}

type Item struct {
	Label  string      `json:"label"`
	MassKg float64     `json:"mass_kg"`
	Cost   float64     `json:"cost"`
	Result beam.Result `json:"result"`
}

type BeamBatchResult struct {
	Items []Item `json:"items"`
	// Ranking lists item indices: SAFE designs by ascending mass, then the
	// rest by descending combined safety factor.
	Ranking []int `json:"ranking"`
	// Lightest is the index of the lightest SAFE design, or -1.
	Lightest int `json:"lightest"`
}

// CalculateBeam analyses every candidate against one load case. Any
// malformed candidate fails the whole batch.
func CalculateBeam(in BeamBatchInput) (BeamBatchResult, error) {
	if len(in.Candidates) == 0 {
		return BeamBatchResult{}, ErrNoCandidates
	}
	if err := in.Profile.Validate(); err != nil {
		return BeamBatchResult{}, err
	}
	support, err := deflection.ParseSupport(string(in.Support))
	if err != nil {
		return BeamBatchResult{}, err
	}
	out := BeamBatchResult{Items: make([]Item, 0, len(in.Candidates)), Lightest: -1}
	for i, c := range in.Candidates {
		mat, _, err := material.ByName(c.Material)
		if err != nil {
			return BeamBatchResult{}, fmt.Errorf("candidate %d: %w", i, err)
		}
		res, err := beam.Evaluate(in.Profile, mat, c.Section, support, in.Limits)
		if err != nil {
			return BeamBatchResult{}, fmt.Errorf("candidate %d: %w", i, err)
		}
		label := c.Label
		if label == "" {
			label = fmt.Sprintf("%s %s", mat.Name, c.Section.Kind)
		}
		mass := res.Properties.Area * res.Deflection.SpanM * mat.Density
		out.Items = append(out.Items, Item{Label: label, MassKg: mass, Cost: mass * mat.CostPerKg, Result: res})
		out.Ranking = append(out.Ranking, i)
	}

	safe := func(i int) bool { return out.Items[i].Result.Safety.Status == safety.Safe }
	sort.SliceStable(out.Ranking, func(a, b int) bool {
		ia, ib := out.Ranking[a], out.Ranking[b]
		if safe(ia) != safe(ib) {
			return safe(ia)
		}
		if safe(ia) {
			return out.Items[ia].MassKg < out.Items[ib].MassKg
		}
		return out.Items[ia].Result.Safety.CombinedSF > out.Items[ib].Result.Safety.CombinedSF
	})
	if safe(out.Ranking[0]) {
		out.Lightest = out.Ranking[0]
	}
	return out, nil
}
