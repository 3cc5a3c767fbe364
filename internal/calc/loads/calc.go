package loads

import (
	"fmt"
	"math"
)

type Method string

const (
	MethodSP24 Method = "SP24"
	MethodSP22 Method = "SP22"
	MethodEC7  Method = "EC7"
)

type CombineInput struct {
	Method    Method   `json:"method"`
	Permanent Profile  `json:"permanent"`
	QLong     *Profile `json:"q_long,omitempty"`
	QShort    *Profile `json:"q_short,omitempty"`
}

type CombineResult struct {
	Profile   Profile `json:"profile"`
	ComboName string  `json:"combo_name"`
	GammaG    float64 `json:"gamma_g"`
	GammaQL   float64 `json:"gamma_q_long"`
	GammaQS   float64 `json:"gamma_q_short"`
	Notes     string  `json:"notes"`
}

// Combine factors the characteristic component profiles into one design
// profile. Variable components must be sampled at the permanent profile's
// positions.
func Combine(in CombineInput) (CombineResult, error) {
	if err := in.Permanent.Validate(); err != nil {
		return CombineResult{}, fmt.Errorf("permanent: %w", err)
	}
	gG, gQlong, gQshort, name := factors(in.Method)

	out := make([]Sample, len(in.Permanent.Samples))
	for i, s := range in.Permanent.Samples {
		out[i] = Sample{
			PositionM: s.PositionM,
			ShearKN:   s.ShearKN * gG,
			MomentKNM: s.MomentKNM * gG,
		}
	}
	if err := accumulate(out, in.QLong, gQlong, "q_long"); err != nil {
		return CombineResult{}, err
	}
	if err := accumulate(out, in.QShort, gQshort, "q_short"); err != nil {
		return CombineResult{}, err
	}

	return CombineResult{
		Profile:   Profile{Samples: out},
		ComboName: name,
		GammaG:    gG,
		GammaQL:   gQlong,
		GammaQS:   gQshort,
		Notes:     "Linear combination of one permanent and two variable load distributions.",
	}, nil
}

func accumulate(out []Sample, p *Profile, gamma float64, label string) error {
	if p == nil {
		return nil
	}
	if len(p.Samples) != len(out) {
		return fmt.Errorf("%s: %w: %d samples, permanent has %d", label, ErrInvalidLoadProfile, len(p.Samples), len(out))
	}
	for i, s := range p.Samples {
		if math.Abs(s.PositionM-out[i].PositionM) > 1e-9 {
			return fmt.Errorf("%s: %w: position %g does not match %g", label, ErrInvalidLoadProfile, s.PositionM, out[i].PositionM)
		}
		if !finite(s.ShearKN) || !finite(s.MomentKNM) {
			return fmt.Errorf("%s: %w: non-finite value at sample %d", label, ErrInvalidLoadProfile, i)
		}
		out[i].ShearKN += s.ShearKN * gamma
		out[i].MomentKNM += s.MomentKNM * gamma
	}
	return nil
}

func factors(method Method) (gG, gQlong, gQshort float64, name string) {
	switch method {
	case MethodSP22:
		return 1.05, 1.2, 1.3, "SP22 basic"
	case MethodEC7:
		return 1.35, 1.5, 1.5, "EC7 STR/GEO"
	default:
		return 1.1, 1.2, 1.3, "SP24 basic"
	}
}
