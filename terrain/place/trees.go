package place

import (
	"math"
	"sort"

	"github.com/df-mc/terragen/terrain/field"
	"github.com/df-mc/terragen/terrain/rng"
	"github.com/df-mc/terragen/terrain/sample"
	"github.com/go-gl/mathgl/mgl64"
)

// CellsPerTree is the density constant dividing suitable area into tree
// slots. It is a tuned value without a principled derivation; treat it as
// part of the output contract rather than something to infer.
const CellsPerTree = 3

// TreeConfig parameterises tree selection.
type TreeConfig struct {
	// ForestPercentage is the fraction of suitable cells to forest, 0-100.
	ForestPercentage float64
	// MinSpacing is the blue-noise spacing between trees, in cells.
	MinSpacing float64
	// MaxHeight and MaxSlope and BeachBuffer bound the suitability mask, in
	// height units and degrees.
	MaxHeight   float64
	MaxSlope    float64
	BeachBuffer float64
	// CellSize is the horizontal cell extent used for slope math. Defaults
	// to one height unit per cell.
	CellSize float64
}

// Placement is one accepted tree position with its sampled terrain height.
type Placement struct {
	Pos    mgl64.Vec2
	Height float64
}

// TreeReport describes how a selection run went.
type TreeReport struct {
	// SuitableCells is the size of the mask the target was computed from.
	SuitableCells int
	// TargetCount is the number of trees the run aimed for.
	TargetCount int
	// Candidates is the number of blue-noise candidates generated.
	Candidates int
	// RemovedBySafety counts placements dropped by the post-placement
	// validation because they sampled at/below the waterline band or above
	// the height limit.
	RemovedBySafety int
	// Relaxed is true if the strict constraints left zero suitable cells and
	// the single widened retry ran.
	Relaxed bool
	// Rejections carries the per-constraint diagnostics of the mask build.
	Rejections Rejections
}

// scoreWeights: height preference dominates, the random term breaks up
// uniformity.
const (
	heightWeight = 0.7
	randomWeight = 0.3
)

// SelectTrees picks tree positions on a finished field. The generator passed
// must be the exclusively-owned "trees" stream; a zero forest percentage
// returns an empty list without touching the stream or the sampler.
func SelectTrees(f *field.Field, seaLevel float64, r *rng.Random, conf TreeConfig) ([]Placement, TreeReport) {
	var report TreeReport
	if conf.ForestPercentage <= 0 {
		return nil, report
	}
	if conf.CellSize <= 0 {
		conf.CellSize = 1
	}

	slopes := Slopes(f, conf.CellSize)
	constraints := Constraints{
		SeaLevel:    seaLevel,
		BeachBuffer: conf.BeachBuffer,
		MaxHeight:   conf.MaxHeight,
		MaxSlope:    conf.MaxSlope,
	}
	mask := BuildMask(f, slopes, constraints)
	if mask.Count() == 0 {
		// One deterministic relaxation retry before giving up.
		constraints = constraints.Relaxed()
		mask = BuildMask(f, slopes, constraints)
		report.Relaxed = true
	}
	report.SuitableCells = mask.Count()
	report.Rejections = mask.Rejected
	if mask.Count() == 0 {
		return nil, report
	}

	target := int(math.Floor(float64(mask.Count()) * conf.ForestPercentage / 100 / CellsPerTree))
	report.TargetCount = target
	if target <= 0 {
		return nil, report
	}

	candidates := sample.Poisson(r, float64(f.Width()), float64(f.Height()), sample.Config{
		MinDistance: conf.MinSpacing,
		Predicate:   mask,
	})
	report.Candidates = len(candidates)

	placements := make([]Placement, 0, len(candidates))
	for _, p := range candidates {
		cx, cy := int(p.X()), int(p.Y())
		if !f.InBounds(cx, cy) {
			continue
		}
		placements = append(placements, Placement{
			Pos:    p,
			Height: f.At(cx, cy),
		})
	}
	if len(placements) > target {
		placements = selectTop(placements, target, constraints, r)
	}

	kept := placements[:0]
	for _, p := range placements {
		if p.Height <= seaLevel+conf.BeachBuffer || p.Height >= conf.MaxHeight {
			report.RemovedBySafety++
			continue
		}
		kept = append(kept, p)
	}
	return kept, report
}

// selectTop scores every candidate and keeps the target-count best. Mid
// elevations are preferred; the random term, drawn from the trees stream in
// candidate order, varies which of near-equal candidates win.
func selectTop(placements []Placement, target int, c Constraints, r *rng.Random) []Placement {
	midPreferred := c.MaxHeight / 2
	scores := make([]float64, len(placements))
	for i, p := range placements {
		pref := 0.0
		if midPreferred > 0 {
			pref = 1 - math.Abs(p.Height-midPreferred)/midPreferred
		}
		scores[i] = heightWeight*pref + randomWeight*r.Float64()
	}
	order := make([]int, len(placements))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	out := make([]Placement, target)
	for i := 0; i < target; i++ {
		out[i] = placements[order[i]]
	}
	return out
}
