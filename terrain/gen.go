package terrain

import (
	"fmt"
	"log/slog"

	"github.com/df-mc/terragen/terrain/erode"
	"github.com/df-mc/terragen/terrain/field"
	"github.com/df-mc/terragen/terrain/hydro"
	"github.com/df-mc/terragen/terrain/noise"
	"github.com/df-mc/terragen/terrain/place"
	"github.com/df-mc/terragen/terrain/rng"
)

// TerrainData is the output of one generation run. Ownership of the
// elevation field transfers to the caller when Generate returns; the
// pipeline retains no reference to it.
type TerrainData struct {
	// Elevation is the finished height grid in metres.
	Elevation *field.Field
	// SeaLevel is the exact water level in metres: cells at or below it are
	// water.
	SeaLevel float64
	// Width and Height are the grid dimensions in cells.
	Width, Height int
	// Metrics is the validation report of the run.
	Metrics Report
	// SubSeeds maps every consumed stream label to its derived sub-seed, for
	// reproducibility auditing.
	SubSeeds map[string]uint32
}

// Generator runs the terrain pipeline for one configuration. Every call to
// Generate derives a fresh set of streams from the configured seed, so
// repeated calls produce identical output. A Generator is not safe for
// concurrent use.
type Generator struct {
	conf Config
	log  *slog.Logger
}

// NewGenerator validates the config and creates a generator for it. log may
// be nil, in which case slog.Default is used.
func NewGenerator(conf Config, log *slog.Logger) (*Generator, error) {
	conf = conf.withDefaults()
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Generator{conf: conf, log: log}, nil
}

// Generate runs the full pipeline: noise bands, contrast and curve remap,
// lake carving, scaling to metres, erosion, the exact sea-level solve and
// the final validation pass. The run is one synchronous computation; a
// caller wanting early termination must run it on its own goroutine and
// abandon the result.
func (g *Generator) Generate() (*TerrainData, error) {
	conf := g.conf
	src := rng.NewSource(conf.Seed)

	f, err := field.New(conf.Width, conf.Height)
	if err != nil {
		return nil, err
	}

	curve, err := noise.CurvePreset(conf.ElevationCurve)
	if err != nil {
		return nil, err
	}
	if !curve.SpansUnit() {
		// Evaluation clamps, so this degrades the remap instead of breaking
		// it; still worth surfacing.
		g.log.Warn("elevation curve does not span [0, 1]", "curve", curve.Name)
	}

	noise.Fill(f,
		noise.NewSampler(src.Stream(StreamTerrainMacro).Seed(), conf.NoiseMacro),
		noise.NewSampler(src.Stream(StreamTerrainMeso).Seed(), conf.NoiseMeso),
		noise.NewSampler(src.Stream(StreamTerrainMicro).Seed(), conf.NoiseMicro),
	)
	f.Normalize()
	noise.ApplyContrast(f, conf.Contrast)
	curve.Apply(f)

	// Carving happens in normalised units, so the configured metre depths
	// are divided down by the elevation scale.
	lakes := hydro.CarveLakes(f, src.Stream(StreamLakes), hydro.LakeConfig{
		WaterFraction: conf.WaterPercentage / 100,
		MinSpacing:    conf.LakeMinSpacing,
		DepthMin:      conf.LakeDepthMin / conf.ElevationScale,
		DepthMax:      conf.LakeDepthMax / conf.ElevationScale,
		Squareness:    conf.LakeShapeSquareness,
		EdgeNoiseAmp:  conf.LakeEdgeNoiseAmp,
	})

	f.Scale(conf.ElevationScale)

	erode.Erode(f, src.Stream(StreamErosion), erode.Config{
		Iterations: conf.ErosionIterations,
		Strength:   conf.ErosionStrength,
	})

	solved := hydro.SolveSeaLevel(f, conf.WaterPercentage, conf.WaterEpsilon)

	report := validateRun(f, solved, lakes, conf)
	g.log.Info("terrain generated",
		"seed", conf.Seed,
		"size", fmt.Sprintf("%dx%d", conf.Width, conf.Height),
		"sea_level", solved.SeaLevel,
		"water_actual", report.ActualWaterPercentage,
		"lakes", lakes,
		"passed", report.Passed,
	)

	return &TerrainData{
		Elevation: f,
		SeaLevel:  solved.SeaLevel,
		Width:     conf.Width,
		Height:    conf.Height,
		Metrics:   report,
		SubSeeds:  src.SubSeeds(),
	}, nil
}

// TreePlacement is one accepted tree position in world space with the
// terrain height sampled at it.
type TreePlacement struct {
	X, Z, Height float64
}

// PlaceTrees selects tree positions on generated terrain. The stream passed
// must be independently owned, typically Source.Stream(StreamTrees) from a
// fresh source over the run's master seed; reusing a stream the terrain
// generator already consumed breaks determinism of both consumers.
func PlaceTrees(data *TerrainData, conf Config, r *rng.Random) ([]TreePlacement, place.TreeReport) {
	conf = conf.withDefaults()
	placements, report := place.SelectTrees(data.Elevation, data.SeaLevel, r, place.TreeConfig{
		ForestPercentage: conf.ForestPercentage,
		MinSpacing:       conf.TreeMinSpacing,
		MaxHeight:        conf.TreeMaxHeight,
		MaxSlope:         conf.TreeMaxSlope,
		BeachBuffer:      conf.TreeBeachBuffer,
		CellSize:         conf.CellSize,
	})
	out := make([]TreePlacement, len(placements))
	for i, p := range placements {
		out[i] = TreePlacement{X: p.Pos.X(), Z: p.Pos.Y(), Height: p.Height}
	}
	return out, report
}
