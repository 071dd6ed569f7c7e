package engine

import (
	"math/rand"
	"sort"

	"github.com/makefab/lasernest/internal/model"
)

// GeneticConfig holds parameters for the genetic nesting algorithm.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
}

// DefaultGeneticConfig returns sensible default parameters.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 50,
		Generations:    100,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     2,
	}
}

// geneticSeed makes minimal-waste runs reproducible: the same parts and
// sheets always produce the same layout.
const geneticSeed = 42

// gene is a single placement decision in the chromosome.
type gene struct {
	partIndex int
	rotated   bool
}

// chromosome is a candidate solution: a part ordering with rotation flags.
type chromosome struct {
	genes   []gene
	fitness float64
}

type geneticNester struct {
	opt    *Optimizer
	config GeneticConfig
	parts  []model.PartShape
	sheets []model.MaterialSheet
	rng    *rand.Rand
}

// layoutGenetic searches part orderings and rotations with a genetic
// algorithm, decoding each candidate through the maximal-rectangles packer.
// Generations are bounded (scaled with part count, capped at 200) so runtime
// stays predictable on large jobs.
func (o *Optimizer) layoutGenetic(instances []model.PartShape, sheets []model.MaterialSheet) ([]model.SheetLayout, []model.PartShape) {
	if len(instances) == 0 || len(sheets) == 0 {
		return nil, instances
	}

	config := DefaultGeneticConfig()
	if len(instances) > 20 {
		config.Generations = 150
	}
	if len(instances) > 50 {
		config.Generations = 200
		config.PopulationSize = 80
	}

	g := &geneticNester{
		opt:    o,
		config: config,
		parts:  instances,
		sheets: sheets,
		rng:    rand.New(rand.NewSource(geneticSeed)),
	}
	return g.run()
}

func (g *geneticNester) run() ([]model.SheetLayout, []model.PartShape) {
	population := g.initPopulation()
	for i := range population {
		population[i].fitness = g.evaluate(population[i])
	}

	for gen := 0; gen < g.config.Generations; gen++ {
		sort.SliceStable(population, func(i, j int) bool {
			return population[i].fitness > population[j].fitness
		})

		newPop := make([]chromosome, 0, g.config.PopulationSize)

		eliteCount := g.config.EliteCount
		if eliteCount > len(population) {
			eliteCount = len(population)
		}
		for i := 0; i < eliteCount; i++ {
			newPop = append(newPop, g.copyChromosome(population[i]))
		}

		for len(newPop) < g.config.PopulationSize {
			parent1 := g.tournamentSelect(population)
			parent2 := g.tournamentSelect(population)
			child := g.orderCrossover(parent1, parent2)
			g.mutate(&child)
			child.fitness = g.evaluate(child)
			newPop = append(newPop, child)
		}

		population = newPop
	}

	sort.SliceStable(population, func(i, j int) bool {
		return population[i].fitness > population[j].fitness
	})
	return g.decode(population[0])
}

// initPopulation creates random orderings, plus one greedy
// largest-area-first chromosome as a known-good starting point.
func (g *geneticNester) initPopulation() []chromosome {
	n := len(g.parts)
	population := make([]chromosome, g.config.PopulationSize)

	for i := range population {
		genes := make([]gene, n)
		perm := g.rng.Perm(n)
		for j := 0; j < n; j++ {
			genes[j] = gene{
				partIndex: perm[j],
				rotated:   g.opt.Options.AllowRotation && g.rng.Float64() < 0.5,
			}
		}
		population[i] = chromosome{genes: genes}
	}

	if g.config.PopulationSize > 0 {
		population[0] = g.greedyChromosome()
	}
	return population
}

func (g *geneticNester) greedyChromosome() chromosome {
	n := len(g.parts)
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		ai := g.parts[indices[i]].Width * g.parts[indices[i]].Height
		aj := g.parts[indices[j]].Width * g.parts[indices[j]].Height
		return ai > aj
	})

	genes := make([]gene, n)
	for i, idx := range indices {
		genes[i] = gene{partIndex: idx}
	}
	return chromosome{genes: genes}
}

// evaluate decodes a chromosome into a packing and scores it: material
// efficiency minus heavy penalties for unplaced parts and extra sheets.
func (g *geneticNester) evaluate(c chromosome) float64 {
	layouts, unplaced := g.decode(c)
	if len(layouts) == 0 {
		return 0
	}

	var usedArea, totalArea float64
	for _, l := range layouts {
		usedArea += l.UsedArea()
		totalArea += l.Sheet.SheetArea()
	}
	if totalArea == 0 {
		return 0
	}

	fitness := usedArea/totalArea -
		float64(len(unplaced))*0.1 -
		float64(len(layouts)-1)*0.05
	if fitness < 0 {
		fitness = 0
	}
	return fitness
}

// decode packs parts in chromosome order, trying each gene's rotation
// preference first.
func (g *geneticNester) decode(c chromosome) ([]model.SheetLayout, []model.PartShape) {
	pool := append([]model.MaterialSheet(nil), g.sheets...)

	type orderedPart struct {
		part    model.PartShape
		rotated bool
	}
	remaining := make([]orderedPart, len(c.genes))
	for i, gn := range c.genes {
		remaining[i] = orderedPart{part: g.parts[gn.partIndex], rotated: gn.rotated}
	}

	var layouts []model.SheetLayout

	for len(remaining) > 0 && len(pool) > 0 {
		parts := make([]model.PartShape, len(remaining))
		for i, r := range remaining {
			parts[i] = r.part
		}
		idx := g.opt.selectBestSheet(pool, parts)
		if idx < 0 {
			break
		}
		sheet := pool[idx]
		pool = append(pool[:idx], pool[idx+1:]...)

		layout := model.SheetLayout{Sheet: sheet}
		packer := newRectPacker(sheetFreeRect(sheet), g.opt.Options.MinimumSpacing)
		var unplaced []orderedPart

		for _, op := range remaining {
			g.opt.iterations++
			if g.placeOrdered(packer, &layout, op.part, op.rotated) {
				continue
			}
			unplaced = append(unplaced, op)
		}

		if len(layout.Placements) > 0 {
			layouts = append(layouts, layout)
		}
		remaining = unplaced
	}

	leftover := make([]model.PartShape, len(remaining))
	for i, r := range remaining {
		leftover[i] = r.part
	}
	return layouts, leftover
}

func (g *geneticNester) placeOrdered(packer *rectPacker, layout *model.SheetLayout, part model.PartShape, rotated bool) bool {
	first := rotated && g.opt.Options.AllowRotation

	for _, tryRotated := range []bool{first, !first} {
		w, h := part.Width, part.Height
		if tryRotated {
			if !g.opt.Options.AllowRotation {
				continue
			}
			w, h = h, w
		}
		if ok, x, y := packer.insert(w, h); ok {
			placement := model.PlacedPart{Part: part, X: x, Y: y}
			if tryRotated {
				placement.Rotated = true
				placement.Rotation = 90
			}
			layout.Placements = append(layout.Placements, placement)
			return true
		}
	}
	return false
}

// tournamentSelect picks the fittest of a random tournament.
func (g *geneticNester) tournamentSelect(population []chromosome) chromosome {
	best := population[g.rng.Intn(len(population))]
	for i := 1; i < g.config.TournamentSize; i++ {
		candidate := population[g.rng.Intn(len(population))]
		if candidate.fitness > best.fitness {
			best = candidate
		}
	}
	return g.copyChromosome(best)
}

// orderCrossover implements Order Crossover (OX1) for permutation
// chromosomes, preserving the relative order of genes from both parents.
func (g *geneticNester) orderCrossover(parent1, parent2 chromosome) chromosome {
	n := len(parent1.genes)
	if n <= 2 {
		return g.copyChromosome(parent1)
	}

	point1 := g.rng.Intn(n)
	point2 := g.rng.Intn(n)
	if point1 > point2 {
		point1, point2 = point2, point1
	}

	child := chromosome{genes: make([]gene, n)}
	inSegment := make(map[int]bool)
	for i := point1; i <= point2; i++ {
		child.genes[i] = parent1.genes[i]
		inSegment[parent1.genes[i].partIndex] = true
	}

	childIdx := (point2 + 1) % n
	for _, pg := range parent2.genes {
		if !inSegment[pg.partIndex] {
			child.genes[childIdx] = pg
			childIdx = (childIdx + 1) % n
		}
	}
	return child
}

// mutate applies swap, rotation-toggle, and segment-inversion mutations.
func (g *geneticNester) mutate(c *chromosome) {
	n := len(c.genes)
	if n < 2 {
		return
	}

	if g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		c.genes[i], c.genes[j] = c.genes[j], c.genes[i]
	}

	if g.opt.Options.AllowRotation && g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		c.genes[i].rotated = !c.genes[i].rotated
	}

	if g.rng.Float64() < g.config.MutationRate*0.5 {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		if i > j {
			i, j = j, i
		}
		for i < j {
			c.genes[i], c.genes[j] = c.genes[j], c.genes[i]
			i++
			j--
		}
	}
}

func (g *geneticNester) copyChromosome(c chromosome) chromosome {
	genes := make([]gene, len(c.genes))
	copy(genes, c.genes)
	return chromosome{genes: genes, fitness: c.fitness}
}
