package world

import (
	"fmt"
	"strings"
)

// TerrainSource is the read-only terrain query surface used by the turn core.
// At must only be called with in-bounds coordinates.
type TerrainSource interface {
	Width() int
	Height() int
	At(c Coord) Terrain
}

// Map holds a fixed width×height grid of terrain tiles in row-major order.
type Map struct {
	width  int
	height int
	tiles  []Terrain
}

// NewMap creates a map of the given size filled with ocean.
func NewMap(width, height int) *Map {
	return &Map{
		width:  width,
		height: height,
		tiles:  make([]Terrain, width*height),
	}
}

// ParseMap builds a map from rows of single-letter terrain codes, one string per row.
// Used by tests and fixed scenario maps.
//
//	O ocean, G grassland, P plains, F forest, H hills, M mountain, D desert, T tundra, A arctic
func ParseMap(rows ...string) (*Map, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse map: no rows")
	}
	m := NewMap(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != m.width {
			return nil, fmt.Errorf("parse map: row %d has width %d, want %d", y, len(row), m.width)
		}
		for x, ch := range row {
			t, ok := terrainCodes[ch]
			if !ok {
				return nil, fmt.Errorf("parse map: unknown terrain code %q at (%d,%d)", ch, x, y)
			}
			m.Set(Coord{X: x, Y: y}, t)
		}
	}
	return m, nil
}

var terrainCodes = map[rune]Terrain{
	'O': TerrainOcean,
	'G': TerrainGrassland,
	'P': TerrainPlains,
	'F': TerrainForest,
	'H': TerrainHills,
	'M': TerrainMountain,
	'D': TerrainDesert,
	'T': TerrainTundra,
	'A': TerrainArctic,
}

// Width returns the number of columns.
func (m *Map) Width() int { return m.width }

// Height returns the number of rows.
func (m *Map) Height() int { return m.height }

// At returns the terrain at c. Panics if c is out of bounds.
func (m *Map) At(c Coord) Terrain {
	return m.tiles[c.Y*m.width+c.X]
}

// Set places terrain at c. Out-of-bounds coordinates are ignored.
func (m *Map) Set(c Coord, t Terrain) {
	if !m.InBounds(c) {
		return
	}
	m.tiles[c.Y*m.width+c.X] = t
}

// InBounds returns true if the coordinate lies on the grid.
func (m *Map) InBounds(c Coord) bool {
	return InBounds(m, c)
}

// InBounds reports whether c lies on any terrain source.
func InBounds(src TerrainSource, c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < src.Width() && c.Y < src.Height()
}

// TileCount returns the total number of tiles in the map.
func (m *Map) TileCount() int {
	return len(m.tiles)
}

// String returns a summary of the map.
func (m *Map) String() string {
	return fmt.Sprintf("Map(%dx%d)", m.width, m.height)
}

// Render returns the map as rows of terrain codes, the inverse of ParseMap.
func (m *Map) Render() string {
	codes := make(map[Terrain]rune, len(terrainCodes))
	for r, t := range terrainCodes {
		codes[t] = r
	}
	var b strings.Builder
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			b.WriteRune(codes[m.At(Coord{X: x, Y: y})])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
