// World generation using layered simplex noise.
// Elevation, rainfall and temperature layers are sampled per tile and folded into a terrain type.
package world

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds world generation parameters.
type GenConfig struct {
	Width       int     // Columns
	Height      int     // Rows
	Seed        int64   // Random seed (0 = random)
	SeaLevel    float64 // Elevation threshold for ocean (0.0–1.0)
	MountainLvl float64 // Elevation threshold for mountains (0.0–1.0)
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:       80,
		Height:      50,
		Seed:        0,
		SeaLevel:    0.30,
		MountainLvl: 0.78,
	}
}

// SmallTestConfig returns a tiny world for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Width:       24,
		Height:      16,
		Seed:        42,
		SeaLevel:    0.25,
		MountainLvl: 0.80,
	}
}

// Generate creates a complete terrain grid. The same seed always yields the same map.
func Generate(cfg GenConfig) *Map {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	// Three noise generators for independent layers.
	elevNoise := opensimplex.NewNormalized(seed)
	rainNoise := opensimplex.NewNormalized(seed + 1)
	tempNoise := opensimplex.NewNormalized(seed + 2)

	m := NewMap(cfg.Width, cfg.Height)
	cx := float64(cfg.Width-1) / 2
	cy := float64(cfg.Height-1) / 2

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			fx, fy := float64(x), float64(y)

			elev := octaveNoise(elevNoise, fx, fy, 4, 0.08, 0.5)
			rain := octaveNoise(rainNoise, fx, fy, 3, 0.06, 0.5)
			temp := octaveNoise(tempNoise, fx, fy, 3, 0.05, 0.5)

			// Continental shaping: push the map border towards ocean.
			dx := (fx - cx) / (cx + 1)
			dy := (fy - cy) / (cy + 1)
			dist := math.Sqrt(dx*dx + dy*dy)
			falloff := 1.0 - math.Pow(dist, 3.5)
			if falloff < 0 {
				falloff = 0
			}
			elev *= falloff

			// Poles are cold, the equator is warm.
			latitude := math.Abs(dy)
			temp = temp*0.4 + (1.0-latitude)*0.6

			m.Set(Coord{X: x, Y: y}, deriveTerrain(elev, rain, temp, cfg))
		}
	}

	return m
}

// deriveTerrain determines terrain type from environmental parameters.
func deriveTerrain(elev, rain, temp float64, cfg GenConfig) Terrain {
	if elev < cfg.SeaLevel {
		return TerrainOcean
	}
	if temp < 0.12 {
		return TerrainArctic
	}
	if elev > cfg.MountainLvl {
		return TerrainMountain
	}
	if elev > cfg.MountainLvl-0.1 {
		return TerrainHills
	}
	if temp < 0.25 {
		return TerrainTundra
	}
	if rain < 0.3 && temp > 0.5 {
		return TerrainDesert
	}
	if rain > 0.6 {
		return TerrainForest
	}
	if rain > 0.42 {
		return TerrainGrassland
	}
	return TerrainPlains
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

// TerrainCounts returns a summary of terrain type distribution.
func TerrainCounts(m *Map) map[Terrain]int {
	counts := make(map[Terrain]int)
	for _, t := range m.tiles {
		counts[t]++
	}
	return counts
}
