package autodesign

import (
	"context"
	"math/rand/v2"
	"testing"

	"Girder/internal/calc/deflection"
	"Girder/internal/calc/loads"
	"Girder/internal/calc/section"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func safetyFitness() *Fitness {
	return NewFitness(cantileverProfile(), deflection.SimplySupported, CombinedSafety, Constraints{MinSafetyFactor: 1.67})
}

func TestHistoryNeverRegresses(t *testing.T) {
	for _, o := range Objectives() {
		fit := NewFitness(cantileverProfile(), deflection.SimplySupported, o, Constraints{})
		res, err := Optimize(context.Background(), fit, Config{Seed: 42, MaxGenerations: 30, StagnationLimit: 30})
		require.NoError(t, err)
		require.NotEmpty(t, res.History)
		assert.Len(t, res.History, res.Generations)
		for i := 1; i < len(res.History); i++ {
			assert.LessOrEqual(t, res.History[i], res.History[i-1], "%s generation %d", o, i)
		}
		assert.Equal(t, res.History[len(res.History)-1], res.BestFitness)
	}
}

func TestOptimizerFixesUnsafeDesign(t *testing.T) {
	unsafe := rect(100, 120)
	fit := safetyFitness()
	orig, err := fit.Analyze(unsafe)
	require.NoError(t, err)
	require.Less(t, orig.Safety.CombinedSF, 1.67)

	const runs = 20
	ok := 0
	for seed := uint64(1); seed <= runs; seed++ {
		res, err := Optimize(context.Background(), fit, Config{Seed: seed, MaxGenerations: 50}, unsafe)
		require.NoError(t, err)
		assert.LessOrEqual(t, res.Generations, 50)
		if res.Analysis.Safety.CombinedSF >= 1.67 {
			ok++
		}
	}
	assert.GreaterOrEqual(t, float64(ok)/runs, 0.95)
}

func TestSeedMakesRunsReproducible(t *testing.T) {
	fit := NewFitness(cantileverProfile(), deflection.SimplySupported, Weight, Constraints{})
	serial, err := Optimize(context.Background(), fit, Config{Seed: 7, Workers: 1})
	require.NoError(t, err)
	parallel, err := Optimize(context.Background(), fit, Config{Seed: 7, Workers: 8})
	require.NoError(t, err)

	assert.Equal(t, serial.History, parallel.History)
	assert.Equal(t, serial.Best, parallel.Best)
	assert.Equal(t, serial.Evaluations, parallel.Evaluations)
	assert.Equal(t, uint64(7), serial.Seed)
}

func TestStagnationStopsEarly(t *testing.T) {
	fit := NewFitness(cantileverProfile(), deflection.SimplySupported, FatigueLife, Constraints{})
	res, err := Optimize(context.Background(), fit, Config{Seed: 3, MaxGenerations: 500, StagnationLimit: 4})
	require.NoError(t, err)
	assert.Equal(t, Stagnated, res.Termination)
	assert.Less(t, res.Generations, 500)
}

func TestCancellationReturnsBestSoFar(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Optimize(ctx, safetyFitness(), Config{Seed: 5}, rect(100, 120))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Cancelled, res.Termination)
	assert.Equal(t, 1, res.Generations)
	assert.NotEmpty(t, res.Best.Material)
	assert.Less(t, res.BestFitness, DefaultPenalty().Invalid)
}

func TestInvalidInputsFail(t *testing.T) {
	bad := NewFitness(loads.Profile{Samples: []loads.Sample{{PositionM: 0}}}, deflection.SimplySupported, Cost, Constraints{})
	_, err := Optimize(context.Background(), bad, Config{Seed: 1})
	assert.ErrorIs(t, err, loads.ErrInvalidLoadProfile)

	_, err = Optimize(context.Background(), safetyFitness(), Config{Seed: 1}, Design{Section: section.Spec{Kind: section.Kind(42)}})
	assert.ErrorIs(t, err, section.ErrInvalidDimension)
}

func TestOperatorsStayInBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	a, b := randomGenome(rng), randomGenome(rng)
	for range 200 {
		c := crossover(rng, a, b, 0.5)
		mutate(rng, &c, 0.3)
		assert.True(t, c.kind.Valid())
		for _, k := range section.Kinds() {
			for i, d := range k.Dimensions() {
				assert.GreaterOrEqual(t, c.dims[k][i], lowerBound*d.DefaultMM-1e-9)
				assert.LessOrEqual(t, c.dims[k][i], upperBound*d.DefaultMM+1e-9)
			}
		}
		a, b = b, c
	}
	child := crossover(rng, a, b, 0.5)
	child.dims[section.Rectangular][0] = -1
	assert.NotEqual(t, -1.0, a.dims[section.Rectangular][0])
	assert.NotEqual(t, -1.0, b.dims[section.Rectangular][0])
}

func TestConfigDerivedCounts(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1, cfg.eliteCount())
	assert.Equal(t, 6, cfg.parentCount())
	small := Config{PopulationSize: 3, ParentsPortion: 0.1}.withDefaults()
	assert.Equal(t, 2, small.parentCount())
}
