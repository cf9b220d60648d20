package noise

import (
	"math"
	"testing"

	"github.com/df-mc/terragen/terrain/field"
)

var testBand = Band{Octaves: 4, Frequency: 0.01, Gain: 0.5, Lacunarity: 2, Amplitude: 1}

func TestSamplerDeterministic(t *testing.T) {
	a := NewSampler(0xdecafbad, testBand)
	b := NewSampler(0xdecafbad, testBand)
	for i := 0; i < 64; i++ {
		x, y := float64(i)*1.7, float64(i)*0.3
		if av, bv := a.At(x, y), b.At(x, y); av != bv {
			t.Fatalf("sampler diverged at (%v, %v): %v != %v", x, y, av, bv)
		}
	}
}

func TestSamplerSeedMatters(t *testing.T) {
	a := NewSampler(1, testBand)
	b := NewSampler(2, testBand)
	differs := false
	for i := 0; i < 64 && !differs; i++ {
		if a.At(float64(i), float64(i)*2) != b.At(float64(i), float64(i)*2) {
			differs = true
		}
	}
	if !differs {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestSamplerRange(t *testing.T) {
	s := NewSampler(77, testBand)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			v := s.At(float64(x)*3.1, float64(y)*5.7)
			if v < 0 || v > 1 || math.IsNaN(v) {
				t.Fatalf("sample %v at (%d, %d) outside [0, 1]", v, x, y)
			}
		}
	}
}

func TestFillSumsBands(t *testing.T) {
	f, _ := field.New(16, 16)
	macro := NewSampler(10, Band{Octaves: 2, Frequency: 0.02, Gain: 0.5, Lacunarity: 2, Amplitude: 1})
	micro := NewSampler(11, Band{Octaves: 5, Frequency: 0.2, Gain: 0.5, Lacunarity: 2, Amplitude: 0.2})
	Fill(f, macro, micro)

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			want := macro.At(float64(x), float64(y)) + micro.At(float64(x), float64(y))
			if got := f.At(x, y); got != want {
				t.Fatalf("cell (%d, %d): got %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestApplyContrastLiftsMids(t *testing.T) {
	f, _ := field.New(2, 1)
	f.Set(0, 0, 0.5)
	f.Set(1, 0, 1)
	ApplyContrast(f, 0.7)
	if f.At(0, 0) <= 0.5 {
		t.Fatalf("exponent < 1 should lift 0.5, got %v", f.At(0, 0))
	}
	if f.At(1, 0) != 1 {
		t.Fatalf("contrast must fix the endpoint at 1, got %v", f.At(1, 0))
	}
}

func TestCurvePresetsMonotonicAndSpanning(t *testing.T) {
	for _, name := range CurvePresetNames() {
		c, err := CurvePreset(name)
		if err != nil {
			t.Fatalf("preset %q: %v", name, err)
		}
		if !c.SpansUnit() {
			t.Errorf("preset %q does not span x in [0, 1]", name)
		}
		for i := 1; i < len(c.Points); i++ {
			if c.Points[i].X < c.Points[i-1].X {
				t.Errorf("preset %q not monotonic in x at point %d", name, i)
			}
		}
	}
}

func TestCurveUnknownPreset(t *testing.T) {
	if _, err := CurvePreset("volcanic"); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}

func TestCurveEvalClamps(t *testing.T) {
	c, _ := CurvePreset("plateaus")
	if got := c.Eval(-0.5); got != c.Points[0].Y {
		t.Fatalf("Eval(-0.5) = %v, want clamp to first point %v", got, c.Points[0].Y)
	}
	if got := c.Eval(1.5); got != c.Points[len(c.Points)-1].Y {
		t.Fatalf("Eval(1.5) = %v, want clamp to last point", got)
	}
}

func TestCurveEvalInterpolates(t *testing.T) {
	c := Curve{Name: "test", Points: []CurvePoint{{0, 0}, {1, 2}}}
	if got := c.Eval(0.25); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("Eval(0.25) = %v, want 0.5", got)
	}
}
