package sample

import (
	"testing"

	"github.com/df-mc/terragen/terrain/rng"
	"github.com/go-gl/mathgl/mgl64"
)

func TestPoissonMinimumSpacing(t *testing.T) {
	r := rng.NewRandom(12345)
	points := Poisson(r, 200, 200, Config{MinDistance: 10})
	if len(points) < 10 {
		t.Fatalf("expected a reasonable fill, got %d points", len(points))
	}
	const tolerance = 1e-9
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if d := points[i].Sub(points[j]).Len(); d < 10-tolerance {
				t.Fatalf("points %d and %d are %v apart, want >= 10", i, j, d)
			}
		}
	}
}

func TestPoissonDeterministic(t *testing.T) {
	gen := func() []mgl64.Vec2 {
		return Poisson(rng.NewRandom(777), 100, 80, Config{MinDistance: 6})
	}
	a, b := gen(), gen()
	if len(a) != len(b) {
		t.Fatalf("runs produced %d and %d points", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %v != %v", i, a[i], b[i])
		}
	}
}

func TestPoissonPointsInBounds(t *testing.T) {
	points := Poisson(rng.NewRandom(3), 50, 120, Config{MinDistance: 4})
	for i, p := range points {
		if p.X() < 0 || p.X() >= 50 || p.Y() < 0 || p.Y() >= 120 {
			t.Fatalf("point %d at %v outside domain", i, p)
		}
	}
}

func TestPoissonInvalidInputs(t *testing.T) {
	if pts := Poisson(rng.NewRandom(1), 100, 100, Config{MinDistance: 0}); pts != nil {
		t.Fatal("zero spacing should produce no points")
	}
	if pts := Poisson(rng.NewRandom(1), 0, 100, Config{MinDistance: 5}); pts != nil {
		t.Fatal("empty domain should produce no points")
	}
}

// rejectAll refuses every location, forcing the seeding fallback chain all
// the way to the empty result.
type rejectAll struct{}

func (rejectAll) Suitable(float64, float64) bool { return false }

func TestPoissonUnsatisfiablePredicate(t *testing.T) {
	points := Poisson(rng.NewRandom(9), 100, 100, Config{MinDistance: 5, Predicate: rejectAll{}})
	if len(points) != 0 {
		t.Fatalf("expected empty result, got %d points", len(points))
	}
}

// leftHalf accepts only the left half of the domain.
type leftHalf struct{ w float64 }

func (l leftHalf) Suitable(x, _ float64) bool { return x < l.w/2 }

func TestPoissonRespectsPredicate(t *testing.T) {
	points := Poisson(rng.NewRandom(21), 100, 100, Config{MinDistance: 5, Predicate: leftHalf{w: 100}})
	if len(points) == 0 {
		t.Fatal("expected points in the permitted half")
	}
	for i, p := range points {
		if p.X() >= 50 {
			t.Fatalf("point %d at %v violates predicate", i, p)
		}
	}
}

func TestPoissonStratifiedCoversAllCells(t *testing.T) {
	points := PoissonStratified(rng.NewRandom(101), 200, 200, 4, Config{MinDistance: 8})
	if len(points) == 0 {
		t.Fatal("expected points")
	}
	occupied := make(map[[2]int]bool)
	for _, p := range points {
		if p.X() < 0 || p.X() >= 200 || p.Y() < 0 || p.Y() >= 200 {
			t.Fatalf("stratified point %v outside domain", p)
		}
		occupied[[2]int{int(p.X() / 50), int(p.Y() / 50)}] = true
	}
	if len(occupied) != 16 {
		t.Fatalf("expected all 16 sub-regions populated, got %d", len(occupied))
	}
}

func TestPoissonStratifiedSpacingWithinCell(t *testing.T) {
	points := PoissonStratified(rng.NewRandom(55), 100, 100, 2, Config{MinDistance: 7})
	cellOf := func(p mgl64.Vec2) [2]int { return [2]int{int(p.X() / 50), int(p.Y() / 50)} }
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if cellOf(points[i]) != cellOf(points[j]) {
				continue
			}
			if d := points[i].Sub(points[j]).Len(); d < 7-1e-9 {
				t.Fatalf("points %d and %d in same sub-region are %v apart", i, j, d)
			}
		}
	}
}
