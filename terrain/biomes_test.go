package terrain

import (
	"math"
	"testing"

	"github.com/df-mc/terragen/terrain/biome"
)

func TestBiomeMapOceanMatchesCoverage(t *testing.T) {
	c := testConfig()
	data := generate(t, c)
	biomes := BiomeMap(data, c)
	if len(biomes) != data.Elevation.Len() {
		t.Fatalf("biome map has %d cells, field has %d", len(biomes), data.Elevation.Len())
	}
	ocean := 0
	for _, b := range biomes {
		if b == biome.Ocean {
			ocean++
		}
	}
	oceanPct := float64(ocean) / float64(len(biomes)) * 100
	if math.Abs(oceanPct-data.Metrics.ActualWaterPercentage) > 0.5 {
		t.Fatalf("ocean cells %.2f%%, measured water coverage %.2f%%", oceanPct, data.Metrics.ActualWaterPercentage)
	}
}

func TestBiomeMapDeterministic(t *testing.T) {
	c := testConfig()
	data := generate(t, c)
	a, b := BiomeMap(data, c), BiomeMap(data, c)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("biome map differs at cell %d", i)
		}
	}
}
