// Package sample implements blue-noise point generation. Lake centres and
// tree candidates are both drawn with Poisson disk sampling so features keep
// a guaranteed minimum spacing instead of forming visible grid patterns.
package sample

import (
	"math"

	"github.com/brentp/intintmap"
	"github.com/df-mc/terragen/terrain/rng"
	"github.com/go-gl/mathgl/mgl64"
)

// Suitability answers whether a point may be placed at a location. It is the
// only terrain knowledge the sampler has; the mask implementing it lives in
// the placement package.
type Suitability interface {
	Suitable(x, y float64) bool
}

// Anywhere is the Suitability that accepts every location.
var Anywhere Suitability = anywhere{}

type anywhere struct{}

func (anywhere) Suitable(float64, float64) bool { return true }

// Config holds the sampling parameters.
type Config struct {
	// MinDistance is the minimum Euclidean spacing between any two returned
	// points. Sampling with a non-positive value returns no points.
	MinDistance float64
	// MaxAttempts is the number of candidates tried around an active point
	// before it is retired. Defaults to 30.
	MaxAttempts int
	// Predicate restricts where points may be placed. Nil means anywhere.
	Predicate Suitability
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 30
	}
	if c.Predicate == nil {
		c.Predicate = Anywhere
	}
	return c
}

// seedAttempts is how often a random initial point is tried against the
// predicate before falling back to the domain centre.
const seedAttempts = 100

// Poisson generates blue-noise points over the domain [0, w) × [0, h) using
// Bridson's algorithm. The output is fully determined by the generator
// passed: the same stream state yields the same points.
func Poisson(r *rng.Random, w, h float64, conf Config) []mgl64.Vec2 {
	conf = conf.withDefaults()
	if conf.MinDistance <= 0 || w <= 0 || h <= 0 {
		return nil
	}

	// Background grid with cell size r/√2: at most one point per cell, so a
	// 5x5 neighbourhood suffices for distance checks. The grid is sparse for
	// constrained predicates, hence the int->int map instead of a dense slice.
	cellSize := conf.MinDistance / math.Sqrt2
	gridW := int64(math.Ceil(w / cellSize))
	gridH := int64(math.Ceil(h / cellSize))
	grid := intintmap.New(int(gridW*gridH/4)+16, 0.6)

	var (
		points []mgl64.Vec2
		active []int
	)
	cellOf := func(p mgl64.Vec2) (int64, int64) {
		gx := int64(p.X() / cellSize)
		gy := int64(p.Y() / cellSize)
		if gx >= gridW {
			gx = gridW - 1
		}
		if gy >= gridH {
			gy = gridH - 1
		}
		return gx, gy
	}
	insert := func(p mgl64.Vec2) {
		idx := len(points)
		points = append(points, p)
		active = append(active, idx)
		gx, gy := cellOf(p)
		grid.Put(gy*gridW+gx, int64(idx))
	}
	valid := func(p mgl64.Vec2) bool {
		if p.X() < 0 || p.X() >= w || p.Y() < 0 || p.Y() >= h {
			return false
		}
		if !conf.Predicate.Suitable(p.X(), p.Y()) {
			return false
		}
		gx, gy := cellOf(p)
		r2 := conf.MinDistance * conf.MinDistance
		for dy := int64(-2); dy <= 2; dy++ {
			for dx := int64(-2); dx <= 2; dx++ {
				nx, ny := gx+dx, gy+dy
				if nx < 0 || nx >= gridW || ny < 0 || ny >= gridH {
					continue
				}
				if idx, ok := grid.Get(ny*gridW + nx); ok {
					diff := points[idx].Sub(p)
					if diff.Dot(diff) < r2 {
						return false
					}
				}
			}
		}
		return true
	}

	if !seedInitial(r, w, h, conf.Predicate, insert) {
		return nil
	}

	for len(active) > 0 {
		ai := r.IntN(0, len(active))
		p := points[active[ai]]

		placed := false
		for k := 0; k < conf.MaxAttempts; k++ {
			angle := r.Float64() * 2 * math.Pi
			dist := conf.MinDistance * (1 + r.Float64())
			candidate := mgl64.Vec2{p.X() + dist*math.Cos(angle), p.Y() + dist*math.Sin(angle)}
			if valid(candidate) {
				insert(candidate)
				placed = true
				break
			}
		}
		if !placed {
			// Retire the point: it stays in the output but no longer spawns
			// candidates.
			active[ai] = active[len(active)-1]
			active = active[:len(active)-1]
		}
	}
	return points
}

// seedInitial places the first point: random positions are tried against the
// predicate, then the domain centre, and if even that fails the sampler
// returns an empty set.
func seedInitial(r *rng.Random, w, h float64, pred Suitability, insert func(mgl64.Vec2)) bool {
	for i := 0; i < seedAttempts; i++ {
		p := mgl64.Vec2{r.Float64() * w, r.Float64() * h}
		if pred.Suitable(p.X(), p.Y()) {
			insert(p)
			return true
		}
	}
	centre := mgl64.Vec2{w / 2, h / 2}
	if pred.Suitable(centre.X(), centre.Y()) {
		insert(centre)
		return true
	}
	return false
}
