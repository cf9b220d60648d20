package place

import (
	"math"
	"testing"

	"github.com/df-mc/terragen/terrain/field"
	"github.com/df-mc/terragen/terrain/noise"
	"github.com/df-mc/terragen/terrain/rng"
)

func rampField(t *testing.T) *field.Field {
	t.Helper()
	f, err := field.New(16, 16)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			f.Set(x, y, float64(x))
		}
	}
	return f
}

func hillyField(t *testing.T, scale float64) *field.Field {
	t.Helper()
	f, err := field.New(96, 96)
	if err != nil {
		t.Fatal(err)
	}
	s := noise.NewSampler(2024, noise.Band{Octaves: 4, Frequency: 0.04, Gain: 0.5, Lacunarity: 2, Amplitude: 1})
	noise.Fill(f, s)
	f.Normalize()
	f.Scale(scale)
	return f
}

func TestSlopesFlatField(t *testing.T) {
	f, _ := field.New(8, 8)
	for _, s := range Slopes(f, 1) {
		if s != 0 {
			t.Fatalf("flat field produced slope %v", s)
		}
	}
}

func TestSlopesRamp(t *testing.T) {
	f := rampField(t)
	slopes := Slopes(f, 1)
	// Interior cells of a unit ramp have gradient 1, i.e. 45 degrees.
	if got := slopes[f.Index(8, 8)]; math.Abs(got-45) > 1e-9 {
		t.Fatalf("interior ramp slope %v, want 45", got)
	}
	// Boundary cells clamp the missing neighbour to themselves, halving the
	// measured gradient.
	want := math.Atan(0.5) * 180 / math.Pi
	if got := slopes[f.Index(0, 8)]; math.Abs(got-want) > 1e-9 {
		t.Fatalf("boundary ramp slope %v, want %v", got, want)
	}
}

func TestAspectsRampAndFlat(t *testing.T) {
	f := rampField(t)
	aspects := Aspects(f, 1)
	// The ramp rises eastwards, so water would run due west.
	if got := aspects[f.Index(8, 8)]; math.Abs(got-270) > 1e-9 {
		t.Fatalf("ramp aspect %v, want 270", got)
	}

	flat, _ := field.New(4, 4)
	for _, a := range Aspects(flat, 1) {
		if a != AspectUndefined {
			t.Fatalf("flat cell aspect %v, want sentinel", a)
		}
	}
}

func TestBuildMaskConstraintCounters(t *testing.T) {
	f := rampField(t)
	slopes := Slopes(f, 1)
	mask := BuildMask(f, slopes, Constraints{
		SeaLevel:    2,
		BeachBuffer: 1,
		MaxHeight:   12,
		MaxSlope:    50,
	})
	if mask.Rejected.Water == 0 || mask.Rejected.Height == 0 {
		t.Fatalf("expected water and height rejections, got %+v", mask.Rejected)
	}
	if mask.Rejected.Slope != 0 {
		t.Fatalf("no cell of a 45-degree ramp should trip a 50-degree limit, got %d", mask.Rejected.Slope)
	}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			want := f.At(x, y) > 3 && f.At(x, y) < 12
			if got := mask.SuitableCell(x, y); got != want {
				t.Fatalf("cell (%d, %d) suitable=%v, want %v", x, y, got, want)
			}
		}
	}
	if mask.Suitable(-1, 3) || mask.Suitable(3, 99) {
		t.Fatal("out-of-bounds positions must be unsuitable")
	}
}

var testTreeConfig = TreeConfig{
	ForestPercentage: 25,
	MinSpacing:       4,
	MaxHeight:        140,
	MaxSlope:         35,
	BeachBuffer:      2,
	CellSize:         20,
}

func TestSelectTreesRespectsConstraints(t *testing.T) {
	f := hillyField(t, 150)
	seaLevel := 30.0
	placements, report := SelectTrees(f, seaLevel, rng.NewRandom(rng.SubSeed(12345, "trees")), testTreeConfig)
	if len(placements) == 0 {
		t.Fatal("expected placements on hilly terrain")
	}
	if len(placements) > report.TargetCount {
		t.Fatalf("placed %d trees, target was %d", len(placements), report.TargetCount)
	}
	slopes := Slopes(f, testTreeConfig.CellSize)
	for i, p := range placements {
		if p.Height <= seaLevel+testTreeConfig.BeachBuffer {
			t.Fatalf("placement %d at height %v inside the beach band", i, p.Height)
		}
		if p.Height >= testTreeConfig.MaxHeight {
			t.Fatalf("placement %d at height %v above limit", i, p.Height)
		}
		if s := slopes[f.Index(int(p.Pos.X()), int(p.Pos.Y()))]; s >= testTreeConfig.MaxSlope {
			t.Fatalf("placement %d on slope %v, limit %v", i, s, testTreeConfig.MaxSlope)
		}
	}
}

func TestSelectTreesDeterministic(t *testing.T) {
	run := func() []Placement {
		f := hillyField(t, 150)
		p, _ := SelectTrees(f, 30, rng.NewRandom(4242), testTreeConfig)
		return p
	}
	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("runs produced %d and %d placements", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("placement %d differs between runs", i)
		}
	}
}

func TestSelectTreesZeroForest(t *testing.T) {
	f := hillyField(t, 150)
	r := rng.NewRandom(808)
	placements, report := SelectTrees(f, 30, r, TreeConfig{ForestPercentage: 0, MinSpacing: 4})
	if len(placements) != 0 || report.Candidates != 0 {
		t.Fatalf("zero forest percentage placed %d trees from %d candidates", len(placements), report.Candidates)
	}
	// The stream must be untouched so downstream consumers are unaffected.
	if r.Float64() != rng.NewRandom(808).Float64() {
		t.Fatal("stream was consumed despite the zero-percentage short-circuit")
	}
}

func TestSelectTreesRelaxation(t *testing.T) {
	f := hillyField(t, 150)
	// Impossible strict constraints: everything is below the beach band.
	conf := TreeConfig{
		ForestPercentage: 25,
		MinSpacing:       4,
		MaxHeight:        200,
		MaxSlope:         60,
		BeachBuffer:      400,
	}
	_, report := SelectTrees(f, 30, rng.NewRandom(5), conf)
	if !report.Relaxed {
		t.Fatal("expected the relaxation retry to run")
	}
	// The relaxed retry halves the beach buffer to 200, still above every
	// cell, so the final result stays empty.
	if report.SuitableCells != 0 {
		t.Fatalf("expected zero suitable cells even after relaxation, got %d", report.SuitableCells)
	}
}

func TestSelectTreesRelaxationRecovers(t *testing.T) {
	f := hillyField(t, 150)
	// Strict constraints exclude everything via slope 0, relaxed adds 10
	// degrees and admits the gentler cells.
	conf := TreeConfig{
		ForestPercentage: 50,
		MinSpacing:       4,
		MaxHeight:        200,
		MaxSlope:         0,
		BeachBuffer:      1,
		CellSize:         20,
	}
	placements, report := SelectTrees(f, 10, rng.NewRandom(6), conf)
	if !report.Relaxed {
		t.Fatal("expected the relaxation retry to run")
	}
	if report.SuitableCells == 0 {
		t.Fatal("relaxed slope limit should admit some cells")
	}
	if len(placements) == 0 {
		t.Fatal("expected placements from the relaxed constraints")
	}
}
