package loads

import (
	"errors"
	"fmt"
	"math"

	"Girder/internal/calc/units"
)

var ErrInvalidLoadProfile = errors.New("invalid load profile")

// Sample is one station of a precomputed shear/moment distribution.
type Sample struct {
	PositionM float64 `json:"position_m"`
	ShearKN   float64 `json:"shear_kn"`
	MomentKNM float64 `json:"moment_knm"`
}

type Profile struct {
	Samples []Sample `json:"samples"`
}

func NewProfile(samples ...Sample) (Profile, error) {
	p := Profile{Samples: append([]Sample(nil), samples...)}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks the profile invariants: at least two samples, first position
// zero, strictly increasing positions and finite values.
func (p Profile) Validate() error {
	if len(p.Samples) < 2 {
		return fmt.Errorf("%w: need at least 2 samples, got %d", ErrInvalidLoadProfile, len(p.Samples))
	}
	for i, s := range p.Samples {
		if !finite(s.PositionM) || !finite(s.ShearKN) || !finite(s.MomentKNM) {
			return fmt.Errorf("%w: non-finite value at sample %d", ErrInvalidLoadProfile, i)
		}
		if i == 0 {
			if s.PositionM != 0 {
				return fmt.Errorf("%w: first position must be 0, got %g", ErrInvalidLoadProfile, s.PositionM)
			}
			continue
		}
		if s.PositionM <= p.Samples[i-1].PositionM {
			return fmt.Errorf("%w: position %g at sample %d does not increase", ErrInvalidLoadProfile, s.PositionM, i)
		}
	}
	return nil
}

func (p Profile) Len() int { return len(p.Samples) }

func (p Profile) Span() float64 {
	if len(p.Samples) == 0 {
		return 0
	}
	return p.Samples[len(p.Samples)-1].PositionM - p.Samples[0].PositionM
}

func (p Profile) Positions() []float64 {
	out := make([]float64, len(p.Samples))
	for i, s := range p.Samples {
		out[i] = s.PositionM
	}
	return out
}

// ShearN returns the shear forces in newtons.
func (p Profile) ShearN() []float64 {
	out := make([]float64, len(p.Samples))
	for i, s := range p.Samples {
		out[i] = units.KNToN(s.ShearKN)
	}
	return out
}

// MomentNM returns the bending moments in newton-metres.
func (p Profile) MomentNM() []float64 {
	out := make([]float64, len(p.Samples))
	for i, s := range p.Samples {
		out[i] = units.KNToN(s.MomentKNM)
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
