// Start placement: finds land tiles for each civilization's opening settler.
package world

import (
	"math/rand"
	"sort"
)

// MinStartDistance is the preferred Manhattan spacing between civilization starts.
const MinStartDistance = 6

// PlaceStarts picks count distinct land tiles, best-scoring first, keeping starts at least
// MinStartDistance apart when the map allows it. Returns fewer than count only when the map
// has fewer land tiles than requested.
func PlaceStarts(m *Map, count int, seed int64) []Coord {
	rng := rand.New(rand.NewSource(seed + 200))

	type scored struct {
		coord Coord
		score float64
	}
	var candidates []scored
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			c := Coord{X: x, Y: y}
			if s := startScore(m, c); s > 0 {
				// Small jitter so equal scores do not always favour the top-left.
				candidates = append(candidates, scored{c, s + rng.Float64()*0.1})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	var starts []Coord
	taken := make(map[Coord]bool)
	for _, c := range candidates {
		if len(starts) >= count {
			break
		}
		if tooClose(c.coord, starts, MinStartDistance) {
			continue
		}
		taken[c.coord] = true
		starts = append(starts, c.coord)
	}

	// Crowded map: relax spacing rather than leave a civilization without a start.
	for _, c := range candidates {
		if len(starts) >= count {
			break
		}
		if taken[c.coord] {
			continue
		}
		taken[c.coord] = true
		starts = append(starts, c.coord)
	}

	return starts
}

// startScore evaluates how desirable a tile is for a first settlement.
// Prefers food-rich land with a mix of production around it.
func startScore(m *Map, c Coord) float64 {
	center := m.At(c)
	if !center.IsLand() {
		return 0
	}

	score := 0.0
	switch center {
	case TerrainGrassland, TerrainPlains:
		score += 3.0
	case TerrainHills, TerrainForest:
		score += 1.5
	case TerrainDesert, TerrainTundra:
		score += 0.5
	default:
		score += 0.2
	}

	kinds := make(map[Terrain]bool)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			n := c.Add(dx, dy)
			if (dx == 0 && dy == 0) || !m.InBounds(n) {
				continue
			}
			t := m.At(n)
			kinds[t] = true
			switch t {
			case TerrainGrassland:
				score += 0.6
			case TerrainPlains, TerrainOcean:
				score += 0.4
			case TerrainForest, TerrainHills:
				score += 0.3
			}
		}
	}
	score += float64(len(kinds)) * 0.2

	return score
}

func tooClose(c Coord, existing []Coord, minDist int) bool {
	for _, e := range existing {
		if Manhattan(c, e) < minDist {
			return true
		}
	}
	return false
}

// GenerateNames produces procedural settlement names by combining syllables.
func GenerateNames(seed int64, count int) []string {
	rng := rand.New(rand.NewSource(seed + 300))

	prefixes := []string{
		"Iron", "Green", "Ash", "Stone", "Mill", "Cross", "Black",
		"Silver", "Red", "White", "Dark", "Bright", "High", "Low",
		"Old", "New", "Far", "Deep", "Long", "Broad", "Gold", "Frost",
		"Storm", "Thorn", "Elm", "Oak", "Pine", "Copper", "River",
	}
	suffixes := []string{
		"haven", "ford", "hollow", "wick", "bridge", "gate", "keep",
		"stead", "wood", "field", "dale", "crest", "vale", "port",
		"town", "bury", "marsh", "well", "brook", "cliff", "moor",
		"ridge", "watch", "fall", "rest", "point", "reach", "helm",
	}

	if max := len(prefixes) * len(suffixes); count > max {
		count = max
	}

	used := make(map[string]bool)
	names := make([]string, 0, count)
	for len(names) < count {
		name := prefixes[rng.Intn(len(prefixes))] + suffixes[rng.Intn(len(suffixes))]
		if !used[name] {
			used[name] = true
			names = append(names, name)
		}
	}

	return names
}
