package social

import "github.com/talgya/mini-civ/internal/world"

// Yield is a food/trade/production triple.
type Yield struct {
	Food       int
	Trade      int
	Production int
}

// CityCenterYield is the fixed contribution of the settlement's own tile.
var CityCenterYield = Yield{Food: 2, Trade: 1, Production: 1}

// terrainYield is the per-neighbour contribution of each terrain type.
// Tundra and arctic contribute nothing.
var terrainYield = map[world.Terrain]Yield{
	world.TerrainGrassland: {Food: 2},
	world.TerrainPlains:    {Food: 1, Production: 1},
	world.TerrainForest:    {Production: 2},
	world.TerrainHills:     {Production: 2, Trade: 1},
	world.TerrainMountain:  {Production: 3},
	world.TerrainDesert:    {Trade: 2},
	world.TerrainOcean:     {Food: 1, Trade: 1},
}

// TerrainYield returns the neighbour yield of a terrain type.
func TerrainYield(t world.Terrain) Yield {
	return terrainYield[t]
}

// UpdateYields recomputes food, trade and production from the city center plus the
// eight surrounding tiles. Tiles off the grid are skipped, never queried.
func (s *Settlement) UpdateYields(terrain world.TerrainSource) {
	y := CityCenterYield

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			c := s.Position.Add(dx, dy)
			if !world.InBounds(terrain, c) {
				continue
			}
			ty := terrainYield[terrain.At(c)]
			y.Food += ty.Food
			y.Trade += ty.Trade
			y.Production += ty.Production
		}
	}

	if s.HasImprovement(Granary) {
		y.Food = y.Food * 3 / 2
	}

	s.Food = y.Food
	s.Trade = y.Trade
	s.Production = y.Production
}
