package autodesign

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"Girder/internal/calc/beam"
	"Girder/internal/calc/deflection"
	"Girder/internal/calc/loads"
	"Girder/internal/calc/material"
	"Girder/internal/calc/section"
	"Girder/internal/runs"
)

type OptimizeInput struct {
	Profile     loads.Profile      `json:"profile"`
	Support     deflection.Support `json:"support"`
	Objective   Objective          `json:"objective"`
	Constraints Constraints        `json:"constraints"`
	Config      Config             `json:"config"`
	// Original is the user's current design; it seeds the population and is
	// reported next to the optimised one.
	Original *OriginalDesign `json:"original,omitempty"`
}

type OriginalDesign struct {
	Material string       `json:"material"`
	Section  section.Spec `json:"section"`
}

type Comparison struct {
	Original  *beam.Result `json:"original,omitempty"`
	Optimized Result       `json:"optimized"`
	// SafetyGain is the optimised combined factor divided by the original.
	SafetyGain float64 `json:"safety_gain,omitempty"`
	MassRatio  float64 `json:"mass_ratio,omitempty"`
}

// Run resolves the request, evaluates the original design when present and
// runs the optimizer. A deadline or cancellation still yields the best
// design found, with Termination set to cancelled.
func Run(ctx context.Context, in OptimizeInput, workers int) (Comparison, error) {
	if err := in.Profile.Validate(); err != nil {
		return Comparison{}, err
	}
	support, err := deflection.ParseSupport(string(in.Support))
	if err != nil {
		return Comparison{}, err
	}
	objective := in.Objective
	if objective == "" {
		objective = CombinedSafety
	}
	fit := NewFitness(in.Profile, support, objective, in.Constraints)
	cfg := in.Config
	if cfg.Workers <= 0 {
		cfg.Workers = workers
	}

	var out Comparison
	var seeds []Design
	if in.Original != nil {
		rec, idx, err := material.ByName(in.Original.Material)
		if err != nil {
			return Comparison{}, err
		}
		d := Design{MaterialIndex: idx, Material: rec.Name, Section: in.Original.Section}
		orig, err := fit.Analyze(d)
		if err != nil {
			return Comparison{}, err
		}
		out.Original = &orig
		seeds = append(seeds, d)
	}

	res, err := Optimize(ctx, fit, cfg, seeds...)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return Comparison{}, err
	}
	out.Optimized = res
	if out.Original != nil {
		out.SafetyGain = res.Analysis.Safety.CombinedSF / out.Original.Safety.CombinedSF
		out.MassRatio = mass(res.Analysis) / mass(*out.Original)
	}
	return out, nil
}

func mass(r beam.Result) float64 {
	return r.Properties.Area * r.Deflection.SpanM * r.Material.Density
}

type Handler struct {
	Runs    runs.Recorder
	Workers int
	Timeout time.Duration
}

func (h *Handler) Optimize(w http.ResponseWriter, r *http.Request) {
	var input OptimizeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := Run(ctx, input, h.Workers)
	if err != nil {
		http.Error(w, "Optimization error: "+err.Error(), beam.StatusFor(err))
		return
	}
	o := res.Optimized
	log.Printf("optimize: objective=%s generations=%d evaluations=%d termination=%s fitness=%.6g seed=%d in %s",
		input.Objective, o.Generations, o.Evaluations, o.Termination, o.BestFitness, o.Seed, time.Since(start).Round(time.Millisecond))

	if h.Runs != nil {
		if err := h.Runs.Record(r.Context(), runs.KindOptimization, input, res); err != nil {
			log.Printf("record optimization run: %v", err)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
