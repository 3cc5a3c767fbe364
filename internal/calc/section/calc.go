package section

import (
	"errors"
	"fmt"
	"math"

	"Girder/internal/calc/units"
)

var ErrInvalidDimension = errors.New("invalid dimension")

// Properties are strong-axis geometric properties in SI units (m, m², m³, m⁴).
type Properties struct {
	Area         float64 `json:"area_m2"`
	Inertia      float64 `json:"inertia_m4"`
	Modulus      float64 `json:"section_modulus_m3"`
	Torsion      float64 `json:"torsional_constant_m4"`
	QMax         float64 `json:"q_max_m3"`
	WebArea      float64 `json:"web_area_m2"`
	WebThickness float64 `json:"web_thickness_m"` // cut width at the neutral axis
	ShapeFactor  float64 `json:"shape_factor"`
	Centroid     float64 `json:"centroid_m"` // from the top fibre
	Depth        float64 `json:"depth_m"`
}

// Spec is a section type plus its dimensions in millimetres.
type Spec struct {
	Kind       Kind               `json:"type"`
	Dimensions map[string]float64 `json:"dimensions"`
}

func (s Spec) Compute() (Properties, error) {
	return Compute(s.Kind, s.Dimensions)
}

// Compute derives the properties of a section from its dimensions (mm).
func Compute(kind Kind, dims map[string]float64) (Properties, error) {
	if !kind.Valid() {
		return Properties{}, fmt.Errorf("%w: unknown section kind %d", ErrInvalidDimension, int(kind))
	}
	d, err := required(kind, dims)
	if err != nil {
		return Properties{}, err
	}

	var p Properties
	switch kind {
	case Rectangular:
		p = rectangular(d[Width], d[Height])
	case IBeam:
		p, err = iBeam(d[FlangeWidth], d[Height], d[FlangeThickness], d[WebThickness])
	case Circular:
		p = circular(d[Diameter])
	case HollowCircular:
		p, err = hollowCircular(d[OuterDiameter], d[InnerDiameter])
	case TBeam:
		p, err = tBeam(d[FlangeWidth], d[FlangeThickness], d[Height], d[WebThickness])
	}
	if err != nil {
		return Properties{}, err
	}
	if !(p.Area > 0) || !(p.Inertia > 0) || !(p.Modulus > 0) {
		return Properties{}, fmt.Errorf("%w: %s geometry is degenerate", ErrInvalidDimension, kind)
	}
	return p, nil
}

// required collects the kind's dimensions converted to metres.
func required(kind Kind, dims map[string]float64) (map[string]float64, error) {
	out := make(map[string]float64, len(dimensions[kind]))
	for _, spec := range dimensions[kind] {
		v, ok := dims[spec.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s requires %s", ErrInvalidDimension, kind, spec.Name)
		}
		if !(v > 0) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %s=%g must be positive", ErrInvalidDimension, spec.Name, v)
		}
		out[spec.Name] = units.MMToM(v)
	}
	return out, nil
}

func rectangular(b, h float64) Properties {
	I := b * h * h * h / 12
	return Properties{
		Area:         b * h,
		Inertia:      I,
		Modulus:      2 * I / h,
		Torsion:      rectangleTorsion(b, h),
		QMax:         b * h * h / 8,
		WebArea:      b * h,
		WebThickness: b,
		ShapeFactor:  1.5,
		Centroid:     h / 2,
		Depth:        h,
	}
}

func iBeam(bf, h, tf, tw float64) (Properties, error) {
	if 2*tf >= h {
		return Properties{}, fmt.Errorf("%w: flanges (2x%gmm) fill the %gmm height", ErrInvalidDimension, tf*1e3, h*1e3)
	}
	if tw >= bf {
		return Properties{}, fmt.Errorf("%w: web thickness %gmm >= flange width %gmm", ErrInvalidDimension, tw*1e3, bf*1e3)
	}
	hw := h - 2*tf
	A := 2*bf*tf + hw*tw
	I := (bf*h*h*h - (bf-tw)*hw*hw*hw) / 12
	Q := bf*tf*(h/2-tf/2) + tw*(h/2-tf)*(h/2-tf)/2
	return Properties{
		Area:         A,
		Inertia:      I,
		Modulus:      2 * I / h,
		Torsion:      (2*bf*tf*tf*tf + hw*tw*tw*tw) / 3,
		QMax:         Q,
		WebArea:      hw * tw,
		WebThickness: tw,
		ShapeFactor:  Q * A / (I * tw),
		Centroid:     h / 2,
		Depth:        h,
	}, nil
}

func circular(d float64) Properties {
	I := math.Pi * math.Pow(d, 4) / 64
	A := math.Pi * d * d / 4
	return Properties{
		Area:         A,
		Inertia:      I,
		Modulus:      I / (d / 2),
		Torsion:      2 * I,
		QMax:         d * d * d / 12,
		WebArea:      A,
		WebThickness: d,
		ShapeFactor:  4.0 / 3.0,
		Centroid:     d / 2,
		Depth:        d,
	}
}

func hollowCircular(do, di float64) (Properties, error) {
	if di >= do {
		return Properties{}, fmt.Errorf("%w: inner diameter %gmm >= outer diameter %gmm", ErrInvalidDimension, di*1e3, do*1e3)
	}
	I := math.Pi * (math.Pow(do, 4) - math.Pow(di, 4)) / 64
	A := math.Pi * (do*do - di*di) / 4
	Q := (do*do*do - di*di*di) / 12
	t := do - di // both walls at the neutral axis
	return Properties{
		Area:         A,
		Inertia:      I,
		Modulus:      I / (do / 2),
		Torsion:      2 * I,
		QMax:         Q,
		WebArea:      A,
		WebThickness: t,
		ShapeFactor:  Q * A / (I * t),
		Centroid:     do / 2,
		Depth:        do,
	}, nil
}

func tBeam(bf, tf, h, tw float64) (Properties, error) {
	if tf >= h {
		return Properties{}, fmt.Errorf("%w: flange thickness %gmm >= height %gmm", ErrInvalidDimension, tf*1e3, h*1e3)
	}
	if tw >= bf {
		return Properties{}, fmt.Errorf("%w: web thickness %gmm >= flange width %gmm", ErrInvalidDimension, tw*1e3, bf*1e3)
	}
	hw := h - tf
	af, aw := bf*tf, tw*hw
	yf, yw := tf/2, tf+hw/2
	A := af + aw
	ybar := (af*yf + aw*yw) / A

	I := bf*tf*tf*tf/12 + af*(ybar-yf)*(ybar-yf) +
		tw*hw*hw*hw/12 + aw*(yw-ybar)*(yw-ybar)
	c := math.Max(ybar, h-ybar)

	// Q about the neutral axis, taken over the part above it.
	var Q, cut float64
	if ybar >= tf {
		Q = af*(ybar-tf/2) + tw*(ybar-tf)*(ybar-tf)/2
		cut = tw
	} else {
		Q = bf * ybar * ybar / 2
		cut = bf
	}
	return Properties{
		Area:         A,
		Inertia:      I,
		Modulus:      I / c,
		Torsion:      (bf*tf*tf*tf + hw*tw*tw*tw) / 3,
		QMax:         Q,
		WebArea:      aw,
		WebThickness: cut,
		ShapeFactor:  Q * A / (I * cut),
		Centroid:     ybar,
		Depth:        h,
	}, nil
}

// rectangleTorsion is the St. Venant constant of a solid a x b rectangle.
func rectangleTorsion(b, h float64) float64 {
	a, c := math.Max(b, h), math.Min(b, h)
	return a * c * c * c * (1.0/3 - 0.21*(c/a)*(1-math.Pow(c, 4)/(12*math.Pow(a, 4))))
}
