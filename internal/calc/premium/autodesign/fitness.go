package autodesign

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"Girder/internal/calc/beam"
	"Girder/internal/calc/deflection"
	"Girder/internal/calc/fatigue"
	"Girder/internal/calc/loads"
	"Girder/internal/calc/material"
	"Girder/internal/calc/safety"
	"Girder/internal/calc/section"
)

var ErrUnknownObjective = errors.New("unknown objective")

type Objective string

const (
	Cost           Objective = "cost"
	Weight         Objective = "weight"
	Deflection     Objective = "deflection"
	SafetyFactor   Objective = "safety_factor"
	CombinedSafety Objective = "combined_safety"
	FatigueLife    Objective = "fatigue_life"
)

func Objectives() []Objective {
	return []Objective{Cost, Weight, Deflection, SafetyFactor, CombinedSafety, FatigueLife}
}

// ParseObjective accepts snake_case, spaced or CamelCase spellings.
func ParseObjective(s string) (Objective, error) {
	key := strings.ToLower(strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.TrimSpace(s)))
	if key == "" {
		return CombinedSafety, nil
	}
	for _, o := range Objectives() {
		if strings.ReplaceAll(string(o), "_", "") == key {
			return o, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownObjective, s)
}

func (o *Objective) UnmarshalText(b []byte) error {
	v, err := ParseObjective(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Constraints bound acceptable designs. Zero fields take the defaults.
type Constraints struct {
	MinSafetyFactor  float64 `json:"min_safety_factor"`
	MaxDeflectionMM  float64 `json:"max_deflection_mm"`
	MinFatigueCycles float64 `json:"min_fatigue_life_cycles"`
}

func DefaultConstraints() Constraints {
	return Constraints{MinSafetyFactor: 1.5, MaxDeflectionMM: 10, MinFatigueCycles: 1e6}
}

func (c Constraints) withDefaults() Constraints {
	d := DefaultConstraints()
	if c.MinSafetyFactor <= 0 {
		c.MinSafetyFactor = d.MinSafetyFactor
	}
	if c.MaxDeflectionMM <= 0 {
		c.MaxDeflectionMM = d.MaxDeflectionMM
	}
	if c.MinFatigueCycles <= 0 {
		c.MinFatigueCycles = d.MinFatigueCycles
	}
	return c
}

// Penalty weights. Weight multiplies the summed relative violations and must
// dominate every objective scale; Invalid is returned for geometry that
// cannot be computed at all.
type Penalty struct {
	Weight  float64 `json:"weight"`
	Invalid float64 `json:"invalid"`
}

func DefaultPenalty() Penalty {
	return Penalty{Weight: 1e6, Invalid: 1e12}
}

// Design is one candidate: a catalog material and a sized section.
type Design struct {
	MaterialIndex int          `json:"material_index"`
	Material      string       `json:"material"`
	Section       section.Spec `json:"section"`
}

// Fitness scores designs against one load case. It holds no mutable state
// and is safe for concurrent use.
type Fitness struct {
	Profile     loads.Profile
	Support     deflection.Support
	Objective   Objective
	Constraints Constraints
	Penalty     Penalty
}

func NewFitness(profile loads.Profile, support deflection.Support, objective Objective, c Constraints) *Fitness {
	return &Fitness{
		Profile:     profile,
		Support:     support,
		Objective:   objective,
		Constraints: c.withDefaults(),
		Penalty:     DefaultPenalty(),
	}
}

func (f *Fitness) limits() safety.Limits {
	return safety.Limits{
		RequiredSafetyFactor: f.Constraints.MinSafetyFactor,
		MaxDeflectionM:       f.Constraints.MaxDeflectionMM / 1000,
	}
}

// Analyze runs the full analysis of d under the fitness load case.
func (f *Fitness) Analyze(d Design) (beam.Result, error) {
	mat, err := material.ByIndex(d.MaterialIndex)
	if err != nil {
		return beam.Result{}, err
	}
	return beam.Evaluate(f.Profile, mat, d.Section, f.Support, f.limits())
}

// Evaluate returns the scalar fitness of d; lower is better. Unanalysable
// designs score Penalty.Invalid instead of failing.
func (f *Fitness) Evaluate(d Design) float64 {
	res, err := f.Analyze(d)
	if err != nil {
		return f.Penalty.Invalid
	}
	score := f.Score(res)
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return f.Penalty.Invalid
	}
	return score
}

// Score combines the objective value with the constraint penalty.
func (f *Fitness) Score(res beam.Result) float64 {
	return f.objective(res) + f.Penalty.Weight*f.violation(res)
}

func (f *Fitness) objective(res beam.Result) float64 {
	volume := res.Properties.Area * res.Deflection.SpanM
	switch f.Objective {
	case Cost:
		return volume * res.Material.Density * res.Material.CostPerKg
	case Weight:
		return volume * res.Material.Density
	case Deflection:
		return res.Deflection.MaxDeflectionM
	case FatigueLife:
		return -math.Log10(math.Min(res.Fatigue.CyclesToFailure, fatigue.RunoutCycles))
	default:
		return -res.Safety.CombinedSF
	}
}

// violation sums the relative shortfall against each constraint.
func (f *Fitness) violation(res beam.Result) float64 {
	c := f.Constraints
	v := math.Max(0, c.MinSafetyFactor-res.Safety.CombinedSF)
	maxDefl := c.MaxDeflectionMM / 1000
	v += math.Max(0, (res.Deflection.MaxDeflectionM-maxDefl)/maxDefl)
	v += math.Max(0, (c.MinFatigueCycles-res.Fatigue.CyclesToFailure)/c.MinFatigueCycles)
	return v
}

// Feasible reports whether res meets every constraint.
func (f *Fitness) Feasible(res beam.Result) bool {
	return f.violation(res) == 0
}
