package deflection

import (
	"math"
	"testing"

	"Girder/internal/calc/loads"
	"Girder/internal/calc/material"
	"Girder/internal/calc/section"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	span = 4.0  // m
	udl  = 10.0 // kN/m
)

func fixture(t *testing.T) (section.Properties, material.Record) {
	t.Helper()
	props, err := section.Compute(section.Rectangular, map[string]float64{section.Width: 100, section.Height: 200})
	require.NoError(t, err)
	mat, _, err := material.ByName("A36 Steel")
	require.NoError(t, err)
	return props, mat
}

func sampled(xs []float64, shear, moment func(x float64) float64) loads.Profile {
	p := loads.Profile{}
	for _, x := range xs {
		p.Samples = append(p.Samples, loads.Sample{PositionM: x, ShearKN: shear(x), MomentKNM: moment(x)})
	}
	return p
}

func uniform(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = span * float64(i) / float64(n-1)
	}
	return xs
}

func TestSimplySupportedUniformLoadMatchesClosedForm(t *testing.T) {
	props, mat := fixture(t)
	p := sampled(uniform(41),
		func(x float64) float64 { return udl * (span/2 - x) },
		func(x float64) float64 { return udl * x * (span - x) / 2 })
	require.NoError(t, p.Validate())

	r := Analyze(p, props, mat, SimplySupported)
	exact := 5 * udl * 1e3 * math.Pow(span, 4) / (384 * mat.E * props.Inertia)
	assert.InEpsilon(t, exact, r.MaxDeflectionM, 0.10)
	assert.InDelta(t, span/2, r.MaxDeflectionAtM, 1e-9)
	assert.InDelta(t, 0, r.DeflectionsM[0], 1e-15)
	assert.InDelta(t, 0, r.DeflectionsM[len(r.DeflectionsM)-1], 1e-15)
	assert.Less(t, r.DeflectionsM[20], 0.0, "sagging deflects downward")
}

func TestNonUniformSpacingUsesActualDeltas(t *testing.T) {
	props, mat := fixture(t)
	xs := []float64{0, 0.05, 0.3, 0.45, 0.9, 1.2, 1.25, 1.7, 2.0, 2.1, 2.6, 2.75, 3.1, 3.5, 3.55, 3.8, 4.0}
	p := sampled(xs,
		func(x float64) float64 { return udl * (span/2 - x) },
		func(x float64) float64 { return udl * x * (span - x) / 2 })
	require.NoError(t, p.Validate())

	r := Analyze(p, props, mat, SimplySupported)
	exact := 5 * udl * 1e3 * math.Pow(span, 4) / (384 * mat.E * props.Inertia)
	assert.InEpsilon(t, exact, r.MaxDeflectionM, 0.10)
}

func TestCantileverFixedAtEitherEnd(t *testing.T) {
	props, mat := fixture(t)
	const P = 5.0 // kN tip load
	exact := P * 1e3 * math.Pow(span, 3) / (3 * mat.E * props.Inertia)

	// Free end at x=0, fixed at x=L.
	fixedRight := sampled(uniform(81),
		func(float64) float64 { return P },
		func(x float64) float64 { return P * x })
	r := Analyze(fixedRight, props, mat, Cantilever)
	assert.InEpsilon(t, exact, r.MaxDeflectionM, 0.02)
	assert.Equal(t, 0.0, r.MaxDeflectionAtM)
	last := len(r.DeflectionsM) - 1
	assert.InDelta(t, 0, r.DeflectionsM[last], 1e-12)
	assert.InDelta(t, 0, r.SlopesRad[last], 1e-12)

	// Fixed at x=0, free at x=L, hogging moment.
	fixedLeft := sampled(uniform(81),
		func(float64) float64 { return P },
		func(x float64) float64 { return -P * (span - x) })
	r = Analyze(fixedLeft, props, mat, Cantilever)
	assert.InEpsilon(t, exact, r.MaxDeflectionM, 0.02)
	assert.Equal(t, span, r.MaxDeflectionAtM)
	assert.Equal(t, 0.0, r.DeflectionsM[0])
	assert.Equal(t, 0.0, r.SlopesRad[0])
}

func TestFixedFixedUniformLoad(t *testing.T) {
	props, mat := fixture(t)
	p := sampled(uniform(81),
		func(x float64) float64 { return udl * (span/2 - x) },
		func(x float64) float64 { return udl * (6*span*x - 6*x*x - span*span) / 12 })
	r := Analyze(p, props, mat, FixedFixed)
	exact := udl * 1e3 * math.Pow(span, 4) / (384 * mat.E * props.Inertia)
	assert.InEpsilon(t, exact, r.MaxDeflectionM, 0.05)
	assert.InDelta(t, 0, r.SlopesRad[0], 1e-5)
}

func TestLimitRatios(t *testing.T) {
	props, mat := fixture(t)
	p := sampled(uniform(21),
		func(x float64) float64 { return udl * (span/2 - x) },
		func(x float64) float64 { return udl * x * (span - x) / 2 })
	r := Analyze(p, props, mat, SimplySupported)
	assert.InDelta(t, span/250, r.LiveLimitM, 1e-12)
	assert.InDelta(t, span/300, r.TotalLimitM, 1e-12)
	assert.InDelta(t, r.MaxDeflectionM/(span/300), r.TotalRatio, 1e-12)
	assert.Greater(t, r.TotalRatio, r.LiveRatio)
}

func TestParseSupport(t *testing.T) {
	s, err := ParseSupport("")
	require.NoError(t, err)
	assert.Equal(t, SimplySupported, s)
	s, err = ParseSupport("Fixed-Fixed")
	require.NoError(t, err)
	assert.Equal(t, FixedFixed, s)
	_, err = ParseSupport("propped")
	assert.Error(t, err)
}
