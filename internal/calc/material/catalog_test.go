package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupByNameAndIndexAgree(t *testing.T) {
	for i, name := range Names() {
		byName, idx, err := ByName(name)
		require.NoError(t, err)
		assert.Equal(t, i, idx)
		byIndex, err := ByIndex(i)
		require.NoError(t, err)
		assert.Equal(t, byIndex, byName)
	}
}

func TestA36Steel(t *testing.T) {
	r, _, err := ByName("a36 steel")
	require.NoError(t, err)
	assert.Equal(t, 200e9, r.E)
	assert.Equal(t, 250e6, r.Yield)
	assert.Equal(t, 1.67, r.RequiredSafetyFactor())
	assert.InDelta(t, 225e6, r.FatigueLimit(), 1)
}

func TestUnknownMaterial(t *testing.T) {
	_, err := ByIndex(Len())
	assert.ErrorIs(t, err, ErrUnknownMaterial)
	_, err = ByIndex(-1)
	assert.ErrorIs(t, err, ErrUnknownMaterial)
	_, _, err = ByName("Unobtainium")
	assert.ErrorIs(t, err, ErrUnknownMaterial)
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0].Yield = 1
	r, err := ByIndex(0)
	require.NoError(t, err)
	assert.Equal(t, 250e6, r.Yield)
}

func TestRecordsArePhysical(t *testing.T) {
	for _, r := range All() {
		assert.Greater(t, r.E, 0.0, r.Name)
		assert.Greater(t, r.Ultimate, r.Yield*0.99, r.Name)
		assert.Greater(t, r.FatigueLimit(), 0.0, r.Name)
		assert.Less(t, r.FatigueLimit(), r.Ultimate, r.Name)
	}
}
