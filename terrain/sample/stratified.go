package sample

import (
	"github.com/df-mc/terragen/terrain/rng"
	"github.com/go-gl/mathgl/mgl64"
)

// offsetPredicate evaluates a predicate in world space for points sampled in
// a sub-region's local space.
type offsetPredicate struct {
	pred   Suitability
	ox, oy float64
}

func (o offsetPredicate) Suitable(x, y float64) bool {
	return o.pred.Suitable(x+o.ox, y+o.oy)
}

// PoissonStratified partitions the domain into an n×n grid of sub-regions
// and runs Bridson's algorithm independently in each, concatenating the
// results back into world space. Large domains gain spatial uniformity from
// this; the minimum-spacing guarantee holds within each sub-region.
func PoissonStratified(r *rng.Random, w, h float64, n int, conf Config) []mgl64.Vec2 {
	if n <= 1 {
		return Poisson(r, w, h, conf)
	}
	conf = conf.withDefaults()
	if conf.MinDistance <= 0 || w <= 0 || h <= 0 {
		return nil
	}

	subW, subH := w/float64(n), h/float64(n)
	var out []mgl64.Vec2
	for cy := 0; cy < n; cy++ {
		for cx := 0; cx < n; cx++ {
			ox, oy := float64(cx)*subW, float64(cy)*subH
			sub := conf
			sub.Predicate = offsetPredicate{pred: conf.Predicate, ox: ox, oy: oy}
			for _, p := range Poisson(r, subW, subH, sub) {
				out = append(out, mgl64.Vec2{p.X() + ox, p.Y() + oy})
			}
		}
	}
	return out
}
