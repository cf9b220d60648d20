// Package terrain is the deterministic terrain generation core. Given a
// seed and a set of declarative targets it produces a reproducible height
// field, a body of water at an exact coverage percentage and a set of tree
// placements respecting terrain constraints. It renders nothing and performs
// no I/O beyond the logger handed to it: configuration in, terrain data out.
package terrain

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/df-mc/terragen/terrain/noise"
	"github.com/pelletier/go-toml"
)

// Stream labels of the independent random sub-streams a generation run
// derives from the master seed. Each label is exclusively owned by one
// subsystem; sharing a stream across subsystems breaks the guarantee that
// tuning one feature never perturbs another.
const (
	StreamTerrainMacro = "terrain-macro"
	StreamTerrainMeso  = "terrain-meso"
	StreamTerrainMicro = "terrain-micro"
	StreamLakes        = "lakes"
	StreamErosion      = "erosion"
	StreamTrees        = "trees"
)

// Config contains the options of a terrain generation run. Identical configs
// produce bit-identical output; that is the core contract of the package.
type Config struct {
	// Seed is the master seed every random sub-stream is derived from.
	Seed uint32 `toml:"seed"`
	// Width and Height are the grid dimensions in cells.
	Width  int `toml:"map_width"`
	Height int `toml:"map_height"`
	// CellSize is the horizontal extent of one cell in metres. It only
	// affects slope analysis; heights are per-cell regardless.
	CellSize float64 `toml:"cell_size"`
	// ElevationScale converts normalised elevation to metres: the tallest
	// possible cell sits at this height.
	ElevationScale float64 `toml:"elevation_scale"`
	// ElevationCurve names the preset remapping the noise distribution into
	// the final elevation distribution. See noise.CurvePresetNames.
	ElevationCurve string `toml:"elevation_curve"`
	// Contrast is the power exponent applied to the normalised noise before
	// the elevation curve. Values below one lift the mid-high range.
	Contrast float64 `toml:"contrast"`

	// WaterPercentage is the exact water coverage target in [0, 100]. The
	// solved sea level makes the measured coverage match it to within
	// WaterTolerance.
	WaterPercentage float64 `toml:"water_percentage"`
	// WaterEpsilon is the margin in metres used by the 0% and 100% coverage
	// branches of the sea-level solve.
	WaterEpsilon float64 `toml:"water_epsilon"`
	// WaterTolerance is the permitted coverage deviation in percentage
	// points when the run is validated.
	WaterTolerance float64 `toml:"water_tolerance"`

	// LakeMinSpacing is the minimum distance between lake centres in cells.
	LakeMinSpacing float64 `toml:"lake_min_spacing"`
	// LakeDepthMin and LakeDepthMax bound the carved basin depth below the
	// estimated sea level, in metres.
	LakeDepthMin float64 `toml:"lake_depth_min"`
	LakeDepthMax float64 `toml:"lake_depth_max"`
	// LakeShapeSquareness is the superellipse exponent of basin outlines: 2
	// is an ellipse, larger values approach a rounded rectangle.
	LakeShapeSquareness float64 `toml:"lake_shape_squareness"`
	// LakeEdgeNoiseAmp is the shoreline noise amplitude keeping basin edges
	// organic.
	LakeEdgeNoiseAmp float64 `toml:"lake_edge_noise_amp"`

	// NoiseMacro, NoiseMeso and NoiseMicro are the three independently
	// seeded fractal bands summed into the raw terrain: continents, mountain
	// ranges and surface detail respectively.
	NoiseMacro noise.Band `toml:"noise_macro"`
	NoiseMeso  noise.Band `toml:"noise_meso"`
	NoiseMicro noise.Band `toml:"noise_micro"`

	// ErosionIterations and ErosionStrength drive the hydraulic erosion
	// pass. Zero iterations disables it.
	ErosionIterations int     `toml:"erosion_iterations"`
	ErosionStrength   float64 `toml:"erosion_strength"`

	// ForestPercentage is the fraction of suitable cells to forest, 0-100.
	ForestPercentage float64 `toml:"forest_percentage"`
	// TreeMinSpacing is the blue-noise spacing between trees in cells.
	TreeMinSpacing float64 `toml:"tree_min_spacing"`
	// TreeMaxHeight and TreeMaxSlope and TreeBeachBuffer bound where trees
	// may stand: below this height in metres, under this slope in degrees
	// and at least this far in metres above the sea level.
	TreeMaxHeight   float64 `toml:"tree_max_height"`
	TreeMaxSlope    float64 `toml:"tree_max_slope"`
	TreeBeachBuffer float64 `toml:"tree_beach_buffer"`
}

// DefaultConfig returns a config producing a 256x256 island-like map with
// 15% water and moderate forestation.
func DefaultConfig() Config {
	return Config{
		Seed:                12345,
		Width:               256,
		Height:              256,
		CellSize:            16,
		ElevationScale:      150,
		ElevationCurve:      "rolling",
		Contrast:            0.85,
		WaterPercentage:     15,
		WaterEpsilon:        0.001,
		WaterTolerance:      0.1,
		LakeMinSpacing:      48,
		LakeDepthMin:        4,
		LakeDepthMax:        12,
		LakeShapeSquareness: 2.5,
		LakeEdgeNoiseAmp:    0.2,
		NoiseMacro:          noise.Band{Octaves: 3, Frequency: 0.004, Gain: 0.5, Lacunarity: 2, Amplitude: 1},
		NoiseMeso:           noise.Band{Octaves: 4, Frequency: 0.02, Gain: 0.5, Lacunarity: 2, Amplitude: 0.4},
		NoiseMicro:          noise.Band{Octaves: 5, Frequency: 0.08, Gain: 0.5, Lacunarity: 2, Amplitude: 0.1},
		ErosionIterations:   6,
		ErosionStrength:     0.015,
		ForestPercentage:    25,
		TreeMinSpacing:      5,
		TreeMaxHeight:       120,
		TreeMaxSlope:        35,
		TreeBeachBuffer:     2,
	}
}

func (c Config) withDefaults() Config {
	if c.CellSize <= 0 {
		c.CellSize = 1
	}
	if c.Contrast <= 0 {
		c.Contrast = 0.85
	}
	if c.ElevationCurve == "" {
		c.ElevationCurve = "smooth"
	}
	if c.WaterEpsilon <= 0 {
		c.WaterEpsilon = 0.001
	}
	if c.WaterTolerance <= 0 {
		c.WaterTolerance = 0.1
	}
	if c.LakeShapeSquareness <= 0 {
		c.LakeShapeSquareness = 2
	}
	return c
}

// ErrInvalidConfig wraps every validation failure of a Config.
var ErrInvalidConfig = errors.New("invalid terrain config")

// Validate fails fast on configurations that cannot produce a well-formed
// field: bad dimensions, non-finite values, out-of-range targets.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.ElevationScale <= 0 || math.IsInf(c.ElevationScale, 0) || math.IsNaN(c.ElevationScale) {
		return fmt.Errorf("%w: elevation scale %v", ErrInvalidConfig, c.ElevationScale)
	}
	if c.WaterPercentage < 0 || c.WaterPercentage > 100 || math.IsNaN(c.WaterPercentage) {
		return fmt.Errorf("%w: water percentage %v", ErrInvalidConfig, c.WaterPercentage)
	}
	if c.LakeDepthMin > c.LakeDepthMax {
		return fmt.Errorf("%w: lake depth range [%v, %v]", ErrInvalidConfig, c.LakeDepthMin, c.LakeDepthMax)
	}
	for _, v := range []float64{
		c.CellSize, c.Contrast, c.WaterEpsilon, c.WaterTolerance, c.LakeMinSpacing,
		c.LakeDepthMin, c.LakeDepthMax, c.LakeShapeSquareness, c.LakeEdgeNoiseAmp,
		c.ErosionStrength, c.ForestPercentage, c.TreeMinSpacing, c.TreeMaxHeight,
		c.TreeMaxSlope, c.TreeBeachBuffer,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite parameter %v", ErrInvalidConfig, v)
		}
	}
	return nil
}

// ReadConfig loads a TOML config from the path passed. If the file does not
// exist yet, it is created holding DefaultConfig.
func ReadConfig(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		c := DefaultConfig()
		if err := WriteConfig(path, c); err != nil {
			return Config{}, err
		}
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// WriteConfig stores a config as TOML at the path passed.
func WriteConfig(path string, c Config) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
