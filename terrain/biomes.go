package terrain

import (
	"github.com/df-mc/terragen/terrain/biome"
	"github.com/df-mc/terragen/terrain/place"
)

// BiomeMap classifies every cell of generated terrain, row-major. The
// classification is a pure function of the finished field and sea level, so
// it may be recomputed at any time after generation.
func BiomeMap(data *TerrainData, conf Config) []biome.Biome {
	conf = conf.withDefaults()
	slopes := place.Slopes(data.Elevation, conf.CellSize)
	out := make([]biome.Biome, data.Elevation.Len())
	for i, h := range data.Elevation.Values() {
		out[i] = biome.Classify(h, data.SeaLevel, slopes[i], conf.ElevationScale)
	}
	return out
}
