package section

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsProducePositiveProperties(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			p, err := Compute(k, k.Defaults())
			require.NoError(t, err)
			assert.Greater(t, p.Area, 0.0)
			assert.Greater(t, p.Inertia, 0.0)
			assert.Greater(t, p.Modulus, 0.0)
			assert.Greater(t, p.Torsion, 0.0)
			assert.Greater(t, p.QMax, 0.0)
			assert.Greater(t, p.WebThickness, 0.0)
			assert.Greater(t, p.ShapeFactor, 1.0)
		})
	}
}

func TestRectangular(t *testing.T) {
	p, err := Compute(Rectangular, map[string]float64{Width: 100, Height: 150})
	require.NoError(t, err)
	assert.InDelta(t, 0.015, p.Area, 1e-12)
	assert.InDelta(t, 0.1*math.Pow(0.15, 3)/12, p.Inertia, 1e-15)
	assert.InDelta(t, 3.75e-4, p.Modulus, 1e-12)
	assert.InDelta(t, 0.1*0.15*0.15/8, p.QMax, 1e-12)
	assert.Equal(t, 1.5, p.ShapeFactor)
}

func TestIBeam(t *testing.T) {
	p, err := Compute(IBeam, IBeam.Defaults())
	require.NoError(t, err)
	// 150x300x15x10 mm
	assert.InDelta(t, 7200e-6, p.Area, 1e-12)
	assert.InDelta(t, (150*math.Pow(300, 3)-140*math.Pow(270, 3))/12*1e-12, p.Inertia, 1e-12)
	assert.InDelta(t, 411750e-9, p.QMax, 1e-12)
	assert.InDelta(t, 2700e-6, p.WebArea, 1e-12)
	assert.InDelta(t, 0.010, p.WebThickness, 1e-12)
	assert.InDelta(t, 2*p.Inertia/0.3, p.Modulus, 1e-12)
}

func TestCircular(t *testing.T) {
	p, err := Compute(Circular, map[string]float64{Diameter: 100})
	require.NoError(t, err)
	d := 0.1
	assert.InDelta(t, math.Pi*d*d/4, p.Area, 1e-15)
	assert.InDelta(t, math.Pi*math.Pow(d, 4)/64, p.Inertia, 1e-15)
	assert.InDelta(t, math.Pi*math.Pow(d, 3)/32, p.Modulus, 1e-15)
	assert.InDelta(t, d*d*d/12, p.QMax, 1e-15)
	assert.InDelta(t, 4.0/3.0, p.ShapeFactor, 1e-12)
	// Exact VQ/(It) at the centre equals the 4/3 shape factor.
	assert.InDelta(t, p.ShapeFactor, p.QMax*p.Area/(p.Inertia*p.WebThickness), 1e-9)
}

func TestHollowCircular(t *testing.T) {
	p, err := Compute(HollowCircular, map[string]float64{OuterDiameter: 150, InnerDiameter: 130})
	require.NoError(t, err)
	assert.InDelta(t, math.Pi*(0.15*0.15-0.13*0.13)/4, p.Area, 1e-12)
	assert.InDelta(t, math.Pi*(math.Pow(0.15, 4)-math.Pow(0.13, 4))/64, p.Inertia, 1e-15)
	assert.InDelta(t, 2*p.Inertia, p.Torsion, 1e-15)
	// Thin tubes approach a shear shape factor of 2.
	assert.InDelta(t, 2.0, p.ShapeFactor, 0.05)
}

func TestTBeamCentroidAndInertia(t *testing.T) {
	// 200x20 flange, 200 total height, 12 web: flange 4000mm², web 2160mm².
	p, err := Compute(TBeam, TBeam.Defaults())
	require.NoError(t, err)
	ybar := (4000*10 + 2160*110) / 6160.0
	assert.InDelta(t, ybar*1e-3, p.Centroid, 1e-9)
	I := 200*math.Pow(20, 3)/12 + 4000*math.Pow(ybar-10, 2) +
		12*math.Pow(180, 3)/12 + 2160*math.Pow(110-ybar, 2)
	assert.InDelta(t, I*1e-12, p.Inertia, 1e-12)
	assert.InDelta(t, p.Inertia/(0.2-p.Centroid), p.Modulus, 1e-12)
	assert.InDelta(t, 0.012, p.WebThickness, 1e-12)
}

func TestDegenerateDimensions(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		dims map[string]float64
	}{
		{"missing height", Rectangular, map[string]float64{Width: 100}},
		{"zero width", Rectangular, map[string]float64{Width: 0, Height: 100}},
		{"negative diameter", Circular, map[string]float64{Diameter: -5}},
		{"nan diameter", Circular, map[string]float64{Diameter: math.NaN()}},
		{"web wider than flange", IBeam, map[string]float64{FlangeWidth: 100, Height: 300, FlangeThickness: 10, WebThickness: 100}},
		{"flanges fill height", IBeam, map[string]float64{FlangeWidth: 150, Height: 30, FlangeThickness: 15, WebThickness: 10}},
		{"inner equals outer", HollowCircular, map[string]float64{OuterDiameter: 100, InnerDiameter: 100}},
		{"inner exceeds outer", HollowCircular, map[string]float64{OuterDiameter: 100, InnerDiameter: 120}},
		{"t flange fills height", TBeam, map[string]float64{FlangeWidth: 200, FlangeThickness: 200, Height: 200, WebThickness: 12}},
		{"t web wider than flange", TBeam, map[string]float64{FlangeWidth: 100, FlangeThickness: 20, Height: 200, WebThickness: 120}},
		{"unknown kind", Kind(42), map[string]float64{Width: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.kind, tt.dims)
			assert.ErrorIs(t, err, ErrInvalidDimension)
		})
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{
		"Rectangular": Rectangular, "I-beam": IBeam, "circular": Circular,
		"Hollow Circular": HollowCircular, "T-beam": TBeam,
	} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseKind("Z-section")
	assert.Error(t, err)
}

func TestSpecJSON(t *testing.T) {
	var s Spec
	require.NoError(t, json.Unmarshal([]byte(`{"type":"I-beam","dimensions":{"flange_width":150,"height":300,"flange_thickness":15,"web_thickness":10}}`), &s))
	assert.Equal(t, IBeam, s.Kind)
	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"type":"i_beam"`)
}
