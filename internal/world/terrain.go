// Package world provides the square terrain grid consumed by the turn core.
// Coordinates are (x, y) with the origin in the top-left corner.
package world

// Coord is a tile position on the grid.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns c offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Manhattan returns the sum of absolute axis differences between a and b.
// This is both the movement cost and the settlement spacing metric.
func Manhattan(a, b Coord) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Terrain types for grid tiles.
type Terrain uint8

const (
	TerrainOcean     Terrain = iota // +1 food +1 trade
	TerrainGrassland                // +2 food
	TerrainPlains                   // +1 food +1 production
	TerrainForest                   // +2 production
	TerrainHills                    // +2 production +1 trade
	TerrainMountain                 // +3 production
	TerrainDesert                   // +2 trade
	TerrainTundra                   // nothing
	TerrainArctic                   // nothing
)

// AllTerrains lists every terrain in enum order.
var AllTerrains = []Terrain{
	TerrainOcean, TerrainGrassland, TerrainPlains, TerrainForest, TerrainHills,
	TerrainMountain, TerrainDesert, TerrainTundra, TerrainArctic,
}

// IsLand reports whether settlers may stand on the terrain.
func (t Terrain) IsLand() bool {
	return t != TerrainOcean
}

// String returns a human-readable name for a terrain type.
func (t Terrain) String() string {
	switch t {
	case TerrainOcean:
		return "Ocean"
	case TerrainGrassland:
		return "Grassland"
	case TerrainPlains:
		return "Plains"
	case TerrainForest:
		return "Forest"
	case TerrainHills:
		return "Hills"
	case TerrainMountain:
		return "Mountain"
	case TerrainDesert:
		return "Desert"
	case TerrainTundra:
		return "Tundra"
	case TerrainArctic:
		return "Arctic"
	default:
		return "Unknown"
	}
}

// ParseTerrain maps a terrain name back to its enum value.
func ParseTerrain(name string) (Terrain, bool) {
	for _, t := range AllTerrains {
		if t.String() == name {
			return t, true
		}
	}
	return 0, false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
