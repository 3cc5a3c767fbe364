package section

import (
	"fmt"
	"strings"
)

// Kind tags one of the supported cross-section shapes. The set is closed:
// adding a shape means adding a constant, its dimensions and a Compute case.
type Kind int

const (
	Rectangular Kind = iota
	IBeam
	Circular
	HollowCircular
	TBeam

	KindCount = int(TBeam) + 1
)

// Dimension names, in millimetres.
const (
	Width           = "width"
	Height          = "height"
	FlangeWidth     = "flange_width"
	FlangeThickness = "flange_thickness"
	WebThickness    = "web_thickness"
	Diameter        = "diameter"
	OuterDiameter   = "outer_diameter"
	InnerDiameter   = "inner_diameter"
)

type DimensionSpec struct {
	Name      string  `json:"name"`
	DefaultMM float64 `json:"default_mm"`
}

var kindNames = [KindCount]string{"rectangular", "i_beam", "circular", "hollow_circular", "t_beam"}

var dimensions = [KindCount][]DimensionSpec{
	Rectangular:    {{Width, 100}, {Height, 200}},
	IBeam:          {{FlangeWidth, 150}, {Height, 300}, {FlangeThickness, 15}, {WebThickness, 10}},
	Circular:       {{Diameter, 150}},
	HollowCircular: {{OuterDiameter, 150}, {InnerDiameter, 130}},
	TBeam:          {{FlangeWidth, 200}, {FlangeThickness, 20}, {Height, 200}, {WebThickness, 12}},
}

func (k Kind) Valid() bool { return k >= 0 && int(k) < KindCount }

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Flanged reports whether shear follows VQ/(It) on the web rather than a
// shape factor over the gross area.
func (k Kind) Flanged() bool {
	return k == IBeam || k == TBeam
}

// Dimensions lists the required dimensions of k in gene order.
func (k Kind) Dimensions() []DimensionSpec {
	if !k.Valid() {
		return nil
	}
	return append([]DimensionSpec(nil), dimensions[k]...)
}

// Defaults returns the default dimension set of k.
func (k Kind) Defaults() map[string]float64 {
	out := make(map[string]float64)
	for _, d := range k.Dimensions() {
		out[d.Name] = d.DefaultMM
	}
	return out
}

func Kinds() []Kind {
	out := make([]Kind, KindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// ParseKind accepts the canonical names plus the spaced/hyphenated spellings
// used in spreadsheets ("I-beam", "Hollow Circular").
func ParseKind(s string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	n = strings.NewReplacer("-", "_", " ", "_").Replace(n)
	switch n {
	case "rectangular", "rect", "rectangle":
		return Rectangular, nil
	case "i_beam", "ibeam", "i":
		return IBeam, nil
	case "circular", "circle", "round":
		return Circular, nil
	case "hollow_circular", "hollowcircular", "tube", "pipe":
		return HollowCircular, nil
	case "t_beam", "tbeam", "t":
		return TBeam, nil
	}
	return 0, fmt.Errorf("unknown section type %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid section kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
