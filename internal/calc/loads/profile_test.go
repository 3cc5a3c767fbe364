package loads

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cantileverProfile() Profile {
	return Profile{Samples: []Sample{
		{0, 25, 0}, {0.5, 25, 12.5}, {1, 25, 25}, {1.5, 25, 37.5}, {2, 25, 50},
	}}
}

func TestValidateAcceptsWellFormedProfile(t *testing.T) {
	p := cantileverProfile()
	require.NoError(t, p.Validate())
	assert.Equal(t, 2.0, p.Span())
	assert.Equal(t, 5, p.Len())
	assert.Equal(t, []float64{0, 0.5, 1, 1.5, 2}, p.Positions())
	assert.Equal(t, 50000.0, p.MomentNM()[4])
	assert.Equal(t, 25000.0, p.ShearN()[0])
}

func TestValidateRejectsMalformedProfiles(t *testing.T) {
	tests := []struct {
		name    string
		samples []Sample
	}{
		{"empty", nil},
		{"single sample", []Sample{{0, 1, 1}}},
		{"nonzero start", []Sample{{0.1, 1, 1}, {1, 1, 1}}},
		{"repeated position", []Sample{{0, 1, 1}, {1, 1, 1}, {1, 2, 2}}},
		{"decreasing position", []Sample{{0, 1, 1}, {2, 1, 1}, {1, 2, 2}}},
		{"nan moment", []Sample{{0, 1, 1}, {1, 1, math.NaN()}}},
		{"inf shear", []Sample{{0, math.Inf(1), 1}, {1, 1, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProfile(tt.samples...)
			assert.ErrorIs(t, err, ErrInvalidLoadProfile)
		})
	}
}

func TestNonUniformSpacingIsAccepted(t *testing.T) {
	_, err := NewProfile(Sample{0, 1, 0}, Sample{0.1, 1, 0.1}, Sample{1.7, 1, 1.7}, Sample{2, 1, 2})
	assert.NoError(t, err)
}

func TestCombineAppliesMethodFactors(t *testing.T) {
	g := cantileverProfile()
	q := cantileverProfile()
	res, err := Combine(CombineInput{Method: MethodEC7, Permanent: g, QShort: &q})
	require.NoError(t, err)
	assert.Equal(t, "EC7 STR/GEO", res.ComboName)
	last := res.Profile.Samples[4]
	assert.InDelta(t, 50*1.35+50*1.5, last.MomentKNM, 1e-9)
	assert.InDelta(t, 25*1.35+25*1.5, last.ShearKN, 1e-9)
	assert.NoError(t, res.Profile.Validate())
}

func TestCombineRejectsMisalignedComponents(t *testing.T) {
	g := cantileverProfile()
	q := Profile{Samples: []Sample{{0, 1, 0}, {2, 1, 2}}}
	_, err := Combine(CombineInput{Method: MethodSP24, Permanent: g, QLong: &q})
	assert.ErrorIs(t, err, ErrInvalidLoadProfile)
}
