// Package erode implements deterministic hydraulic and thermal erosion over
// a height field. Determinism is a hard requirement here: flow accumulation
// visits cells in one fixed, stable order and the thermal pass double-buffers
// its sweeps, so the same input always erodes to the bit-identical output on
// every platform.
package erode

import (
	"math"
	"sort"

	"github.com/df-mc/terragen/terrain/field"
	"github.com/df-mc/terragen/terrain/rng"
)

// Config holds the erosion parameters. The zero value is normalised by
// withDefaults; only Iterations and Strength are exposed through the
// generation config, the thermal pass runs with fixed tuning.
type Config struct {
	// Iterations is the number of hydraulic erosion passes.
	Iterations int
	// Strength scales the per-cell height reduction of each pass.
	Strength float64
	// ThermalIterations is the number of slope-smoothing sweeps after the
	// hydraulic passes.
	ThermalIterations int
	// ThermalThreshold is the normalised height difference above which
	// material moves between 4-connected neighbours.
	ThermalThreshold float64
	// ThermalRate is the fraction of the excess difference transferred per
	// sweep.
	ThermalRate float64
}

func (c Config) withDefaults() Config {
	if c.ThermalIterations <= 0 {
		c.ThermalIterations = 8
	}
	if c.ThermalThreshold <= 0 {
		c.ThermalThreshold = 0.01
	}
	if c.ThermalRate <= 0 {
		c.ThermalRate = 0.25
	}
	return c
}

// rainJitter is the amplitude of the per-cell rain variation drawn from the
// erosion stream when droplets are seeded.
const rainJitter = 0.01

// Erode runs the hydraulic passes followed by the thermal smoothing pass.
// The field keeps its entry value range: passes operate on a normalised
// copy of the heights and the result is mapped back to the original span, so
// eroding a field already scaled to metres preserves its units.
//
// The generator passed must be the exclusively-owned "erosion" stream; it
// seeds only the rain distribution.
func Erode(f *field.Field, r *rng.Random, conf Config) {
	conf = conf.withDefaults()
	origMin, origMax := f.MinMax()
	if origMax == origMin {
		return
	}
	f.Normalize()

	if conf.Iterations > 0 && conf.Strength > 0 {
		// Rain is seeded once, in row-major cell order, and reused for every
		// iteration. Drawing per iteration would tie the stream's consumption
		// to the iteration count.
		rain := make([]float64, f.Len())
		for i := range rain {
			rain[i] = 1 + r.Float64()*rainJitter
		}
		for it := 0; it < conf.Iterations; it++ {
			hydraulicPass(f, rain, conf.Strength)
			f.Normalize()
		}
	}

	thermalPass(f, conf)
	f.Normalize()

	// Restore the entry range.
	for i, v := range f.Values() {
		f.Values()[i] = origMin + v*(origMax-origMin)
	}
}

// neighbours8 is the fixed D8 visit order. Ties between equally low
// neighbours resolve to the earliest offset in this list; changing the order
// changes the output, so it must never be reordered.
var neighbours8 = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// hydraulicPass accumulates D8 flow and lowers each cell proportionally to
// the square root of its normalised flow.
func hydraulicPass(f *field.Field, rain []float64, strength float64) {
	values := f.Values()
	n := len(values)

	// Stable global order: height descending, row-major index ascending on
	// equal heights. Flow routed downhill in this order reaches every
	// downstream cell in a single sweep.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if values[ia] != values[ib] {
			return values[ia] > values[ib]
		}
		return ia < ib
	})

	flow := make([]float64, n)
	copy(flow, rain)

	w, h := f.Width(), f.Height()
	for _, idx := range order {
		x, y := idx%w, idx/w
		lowest, lowestHeight := -1, values[idx]
		for _, off := range neighbours8 {
			nx, ny := x+off[0], y+off[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			ni := ny*w + nx
			if values[ni] < lowestHeight {
				lowest, lowestHeight = ni, values[ni]
			}
		}
		if lowest >= 0 {
			flow[lowest] += flow[idx]
		}
	}

	maxFlow := 0.0
	for _, v := range flow {
		if v > maxFlow {
			maxFlow = v
		}
	}
	if maxFlow == 0 {
		return
	}
	for i := range values {
		values[i] -= math.Sqrt(flow[i]/maxFlow) * strength
	}
}

// thermalPass smooths steep 4-connected slopes. Each sweep reads from one
// buffer and writes to another; in-place updates would make the result
// depend on the sweep order.
func thermalPass(f *field.Field, conf Config) {
	w, h := f.Width(), f.Height()
	src := f.Values()
	dst := make([]float64, len(src))

	for it := 0; it < conf.ThermalIterations; it++ {
		copy(dst, src)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				i := y*w + x
				for _, off := range [4][2]int{{0, -1}, {-1, 0}, {1, 0}, {0, 1}} {
					nx, ny := x+off[0], y+off[1]
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					diff := src[ny*w+nx] - src[i]
					if math.Abs(diff) > conf.ThermalThreshold {
						dst[i] += (diff - math.Copysign(conf.ThermalThreshold, diff)) * conf.ThermalRate / 2
					}
				}
			}
		}
		src, dst = dst, src
	}
	if &src[0] != &f.Values()[0] {
		copy(f.Values(), src)
	}
}
