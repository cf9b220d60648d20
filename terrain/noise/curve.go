package noise

import (
	"fmt"
	"sort"

	"github.com/df-mc/terragen/terrain/field"
	"github.com/df-mc/terragen/terrain/internal/mathutil"
)

// CurvePoint is one control point of an elevation curve.
type CurvePoint struct {
	X, Y float64
}

// Curve is a monotonic-in-x piecewise-linear remap from contrast-adjusted
// noise to normalised elevation. Evaluation clamps its input to [0, 1], so a
// preset that does not span the full range still evaluates safely.
type Curve struct {
	Name   string
	Points []CurvePoint
}

// Curve presets. Each reshapes the elevation distribution differently:
// plateaus flattens the mid range, alpine exaggerates peaks, rolling keeps
// gentle hills.
var presets = map[string][]CurvePoint{
	"smooth": {
		{0, 0}, {0.5, 0.5}, {1, 1},
	},
	"plateaus": {
		{0, 0}, {0.3, 0.1}, {0.45, 0.45}, {0.7, 0.5}, {0.85, 0.85}, {1, 1},
	},
	"alpine": {
		{0, 0}, {0.4, 0.15}, {0.6, 0.3}, {0.8, 0.65}, {1, 1},
	},
	"rolling": {
		{0, 0}, {0.25, 0.2}, {0.5, 0.35}, {0.75, 0.55}, {1, 0.8},
	},
}

// CurvePreset returns the named preset curve. An unknown name is an error:
// the configuration cannot be satisfied even approximately.
func CurvePreset(name string) (Curve, error) {
	points, ok := presets[name]
	if !ok {
		return Curve{}, fmt.Errorf("unknown elevation curve preset %q", name)
	}
	return Curve{Name: name, Points: points}, nil
}

// CurvePresetNames returns the available preset names in sorted order.
func CurvePresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SpansUnit reports whether the control points start at x=0 and end at x=1.
// A curve that does not is a configuration warning, not a failure: Eval
// clamps and proceeds.
func (c Curve) SpansUnit() bool {
	if len(c.Points) == 0 {
		return false
	}
	return c.Points[0].X == 0 && c.Points[len(c.Points)-1].X == 1
}

// Eval remaps x through the curve, clamping x to [0, 1] first.
func (c Curve) Eval(x float64) float64 {
	if len(c.Points) == 0 {
		return x
	}
	x = mathutil.Clamp(x, 0, 1)
	if x <= c.Points[0].X {
		return c.Points[0].Y
	}
	for i := 1; i < len(c.Points); i++ {
		a, b := c.Points[i-1], c.Points[i]
		if x <= b.X {
			if b.X == a.X {
				return b.Y
			}
			return mathutil.Lerp(a.Y, b.Y, (x-a.X)/(b.X-a.X))
		}
	}
	return c.Points[len(c.Points)-1].Y
}

// Apply remaps every cell of a normalised grid through the curve.
func (c Curve) Apply(f *field.Field) {
	for i, v := range f.Values() {
		f.Values()[i] = c.Eval(v)
	}
}
