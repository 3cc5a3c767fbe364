package autodesign

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"slices"
	"sync"

	"Girder/internal/calc/beam"
	"Girder/internal/calc/material"
	"Girder/internal/calc/section"
)

// Dimension genes are drawn from [lowerBound, upperBound] times the default.
const (
	lowerBound = 0.3
	upperBound = 3.0
)

type Config struct {
	PopulationSize       int     `json:"population_size"`
	MaxGenerations       int     `json:"max_generations"`
	MutationProbability  float64 `json:"mutation_probability"`
	CrossoverProbability float64 `json:"crossover_probability"`
	EliteFraction        float64 `json:"elite_fraction"`
	ParentsPortion       float64 `json:"parents_portion"`
	StagnationLimit      int     `json:"stagnation_limit"`
	Workers              int     `json:"workers"`
	// Seed for the random source (0 picks a random seed, reported in Result).
	Seed uint64 `json:"seed"`
}

func DefaultConfig() Config {
	return Config{
		PopulationSize:       20,
		MaxGenerations:       50,
		MutationProbability:  0.1,
		CrossoverProbability: 0.5,
		EliteFraction:        0.01,
		ParentsPortion:       0.3,
		StagnationLimit:      10,
		Workers:              runtime.NumCPU(),
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.PopulationSize < 2 {
		c.PopulationSize = d.PopulationSize
	}
	if c.MaxGenerations <= 0 {
		c.MaxGenerations = d.MaxGenerations
	}
	if c.MutationProbability <= 0 || c.MutationProbability > 1 {
		c.MutationProbability = d.MutationProbability
	}
	if c.CrossoverProbability <= 0 || c.CrossoverProbability >= 1 {
		c.CrossoverProbability = d.CrossoverProbability
	}
	if c.EliteFraction <= 0 || c.EliteFraction >= 1 {
		c.EliteFraction = d.EliteFraction
	}
	if c.ParentsPortion <= 0 || c.ParentsPortion > 1 {
		c.ParentsPortion = d.ParentsPortion
	}
	if c.StagnationLimit <= 0 {
		c.StagnationLimit = d.StagnationLimit
	}
	if c.Workers <= 0 {
		c.Workers = d.Workers
	}
	return c
}

func (c Config) eliteCount() int {
	return max(1, int(math.Ceil(c.EliteFraction*float64(c.PopulationSize))))
}

func (c Config) parentCount() int {
	return min(c.PopulationSize, max(2, int(math.Ceil(c.ParentsPortion*float64(c.PopulationSize)))))
}

type Termination string

const (
	MaxGenerationsReached Termination = "max_generations"
	Stagnated             Termination = "stagnation"
	Cancelled             Termination = "cancelled"
)

type Result struct {
	Best        Design      `json:"best"`
	BestFitness float64     `json:"best_fitness"`
	Analysis    beam.Result `json:"analysis"`
	Feasible    bool        `json:"feasible"`
	// History holds the best-ever fitness after each generation.
	History     []float64   `json:"history"`
	Generations int         `json:"generations"`
	Evaluations int         `json:"evaluations"`
	Termination Termination `json:"termination"`
	Seed        uint64      `json:"seed"`
}

// genome carries dimension genes for every section kind so that uniform
// crossover between parents of different kinds stays gene-aligned.
type genome struct {
	material int
	kind     section.Kind
	dims     [section.KindCount][]float64
}

type individual struct {
	genome    genome
	fitness   float64
	evaluated bool
}

func (g genome) clone() genome {
	c := g
	for k := range c.dims {
		c.dims[k] = slices.Clone(g.dims[k])
	}
	return c
}

// design materialises a private copy of the active genes.
func (g genome) design() Design {
	specs := g.kind.Dimensions()
	dims := make(map[string]float64, len(specs))
	for i, d := range specs {
		dims[d.Name] = g.dims[g.kind][i]
	}
	name := ""
	if rec, err := material.ByIndex(g.material); err == nil {
		name = rec.Name
	}
	return Design{
		MaterialIndex: g.material,
		Material:      name,
		Section:       section.Spec{Kind: g.kind, Dimensions: dims},
	}
}

func randomDimension(rng *rand.Rand, def float64) float64 {
	return def * (lowerBound + rng.Float64()*(upperBound-lowerBound))
}

func randomGenome(rng *rand.Rand) genome {
	g := genome{
		material: rng.IntN(material.Len()),
		kind:     section.Kind(rng.IntN(section.KindCount)),
	}
	for _, k := range section.Kinds() {
		specs := k.Dimensions()
		g.dims[k] = make([]float64, len(specs))
		for i, d := range specs {
			g.dims[k][i] = randomDimension(rng, d.DefaultMM)
		}
	}
	return g
}

// seedGenome places a caller supplied design into an otherwise random genome.
func seedGenome(rng *rand.Rand, d Design) (genome, error) {
	if _, err := material.ByIndex(d.MaterialIndex); err != nil {
		return genome{}, err
	}
	if !d.Section.Kind.Valid() {
		return genome{}, fmt.Errorf("%w: section type %d", section.ErrInvalidDimension, int(d.Section.Kind))
	}
	g := randomGenome(rng)
	g.material = d.MaterialIndex
	g.kind = d.Section.Kind
	for i, spec := range g.kind.Dimensions() {
		if v, ok := d.Section.Dimensions[spec.Name]; ok {
			g.dims[g.kind][i] = v
		} else {
			g.dims[g.kind][i] = spec.DefaultMM
		}
	}
	return g, nil
}

// crossover copies each gene from a or b with probability p of taking a.
func crossover(rng *rand.Rand, a, b genome, p float64) genome {
	pick := func() bool { return rng.Float64() < p }
	child := a.clone()
	if !pick() {
		child.material = b.material
	}
	if !pick() {
		child.kind = b.kind
	}
	for k := range child.dims {
		for i := range child.dims[k] {
			if !pick() {
				child.dims[k][i] = b.dims[k][i]
			}
		}
	}
	return child
}

// mutate redraws each gene within its bounds with probability p.
func mutate(rng *rand.Rand, g *genome, p float64) {
	if rng.Float64() < p {
		g.material = rng.IntN(material.Len())
	}
	if rng.Float64() < p {
		g.kind = section.Kind(rng.IntN(section.KindCount))
	}
	for _, k := range section.Kinds() {
		for i, d := range k.Dimensions() {
			if rng.Float64() < p {
				g.dims[k][i] = randomDimension(rng, d.DefaultMM)
			}
		}
	}
}

// Optimize evolves designs against fit and returns the best-ever design.
// Initial designs, when given, replace the first members of the random
// starting population. Cancellation is checked between generations; the
// best design found so far is returned together with ctx.Err().
func Optimize(ctx context.Context, fit *Fitness, cfg Config, initial ...Design) (Result, error) {
	if err := fit.Profile.Validate(); err != nil {
		return Result{}, err
	}
	cfg = cfg.withDefaults()
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	pop := make([]individual, cfg.PopulationSize)
	for i := range pop {
		pop[i].genome = randomGenome(rng)
	}
	for i, d := range initial {
		if i >= len(pop) {
			break
		}
		g, err := seedGenome(rng, d)
		if err != nil {
			return Result{}, err
		}
		pop[i].genome = g
	}

	res := Result{Seed: seed, Termination: MaxGenerationsReached}
	res.Evaluations += evaluate(fit, pop, cfg.Workers)

	var best individual
	stagnant := 0
	for gen := 0; ; gen++ {
		rank(pop)
		if gen == 0 || pop[0].fitness < best.fitness {
			best = individual{genome: pop[0].genome.clone(), fitness: pop[0].fitness, evaluated: true}
			stagnant = 0
		} else {
			stagnant++
		}
		res.History = append(res.History, best.fitness)
		res.Generations = gen + 1

		if res.Generations >= cfg.MaxGenerations {
			break
		}
		if stagnant >= cfg.StagnationLimit {
			res.Termination = Stagnated
			break
		}
		if ctx.Err() != nil {
			res.Termination = Cancelled
			break
		}
		pop = breed(rng, pop, cfg)
		res.Evaluations += evaluate(fit, pop, cfg.Workers)
	}

	res.Best = best.genome.design()
	res.BestFitness = best.fitness
	if a, err := fit.Analyze(res.Best); err == nil {
		res.Analysis = a
		res.Feasible = fit.Feasible(a)
	}
	if res.Termination == Cancelled {
		return res, ctx.Err()
	}
	return res, nil
}

// rank sorts by ascending fitness; ties keep population order.
func rank(pop []individual) {
	slices.SortStableFunc(pop, func(a, b individual) int {
		switch {
		case a.fitness < b.fitness:
			return -1
		case a.fitness > b.fitness:
			return 1
		}
		return 0
	})
}

// breed builds the next generation from a ranked population: elites are
// carried over unchanged, the rest are children of the top parents.
func breed(rng *rand.Rand, ranked []individual, cfg Config) []individual {
	next := make([]individual, 0, len(ranked))
	for i := 0; i < cfg.eliteCount() && i < len(ranked); i++ {
		e := ranked[i]
		e.genome = e.genome.clone()
		next = append(next, e)
	}
	parents := ranked[:cfg.parentCount()]
	for len(next) < len(ranked) {
		a := parents[rng.IntN(len(parents))]
		b := parents[rng.IntN(len(parents))]
		child := crossover(rng, a.genome, b.genome, cfg.CrossoverProbability)
		mutate(rng, &child, cfg.MutationProbability)
		next = append(next, individual{genome: child})
	}
	return next
}

// evaluate scores every unevaluated individual on up to workers goroutines
// and returns once all of them are done. Each goroutine writes only its own
// slot and works on a private Design.
func evaluate(fit *Fitness, pop []individual, workers int) int {
	sem := make(chan struct{}, max(1, workers))
	var wg sync.WaitGroup
	n := 0
	for i := range pop {
		if pop[i].evaluated {
			continue
		}
		n++
		wg.Add(1)
		sem <- struct{}{}
		go func(ind *individual) {
			defer wg.Done()
			defer func() { <-sem }()
			ind.fitness = fit.Evaluate(ind.genome.design())
			ind.evaluated = true
		}(&pop[i])
	}
	wg.Wait()
	return n
}
