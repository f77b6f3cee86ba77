package social

import (
	"fmt"

	"github.com/talgya/mini-civ/internal/research"
	"github.com/talgya/mini-civ/internal/units"
	"github.com/talgya/mini-civ/internal/world"
)

// CivID identifies a civilization. The human civilization is always 0.
type CivID int

// Civilization owns a research graph, settlements and units. Human and computer
// civilizations share this structure; only who issues orders differs.
type Civilization struct {
	ID    CivID  `json:"id"`
	Name  string `json:"name"`
	Human bool   `json:"human"`

	Research    *research.Graph                   `json:"-"`
	Settlements *Arena[SettlementID, *Settlement] `json:"-"`
	Units       *Arena[units.ID, *units.Unit]     `json:"-"`

	cityNames []string
	founded   int
}

// NewCivilization creates a civilization with its own copy of the technology catalog.
// cityNames are used in order for founded settlements.
func NewCivilization(id CivID, name string, human bool, techs []research.Technology, cityNames []string) *Civilization {
	return &Civilization{
		ID:          id,
		Name:        name,
		Human:       human,
		Research:    research.NewGraph(techs),
		Settlements: NewArena[SettlementID, *Settlement](),
		Units:       NewArena[units.ID, *units.Unit](),
		cityNames:   cityNames,
	}
}

// SpawnUnit adds a new unit with a full movement budget.
func (c *Civilization) SpawnUnit(kind units.Kind, pos world.Coord) *units.Unit {
	return c.Units.Add(func(id units.ID) *units.Unit {
		return units.New(id, kind, pos)
	})
}

// Found turns a settler into a settlement at the settler's position. Returns nil,
// changing nothing, if the unit is missing or is not a settler. Spacing rules are
// the caller's concern.
func (c *Civilization) Found(unitID units.ID) *Settlement {
	u, ok := c.Units.Get(unitID)
	if !ok || !u.IsSettler() {
		return nil
	}
	c.Units.Remove(unitID)
	name := c.nextCityName()
	return c.Settlements.Add(func(id SettlementID) *Settlement {
		return NewSettlement(id, name, u.Position)
	})
}

// SettlementWithin reports whether any owned settlement lies within Manhattan distance r of pos.
func (c *Civilization) SettlementWithin(pos world.Coord, r int) bool {
	for _, s := range c.Settlements.All() {
		if world.Manhattan(s.Position, pos) <= r {
			return true
		}
	}
	return false
}

// ResetMovement restores every unit's movement budget.
func (c *Civilization) ResetMovement() {
	for _, u := range c.Units.All() {
		u.ResetMovement()
	}
}

// Population returns the summed population of all settlements.
func (c *Civilization) Population() int {
	total := 0
	for _, s := range c.Settlements.All() {
		total += s.Population
	}
	return total
}

func (c *Civilization) nextCityName() string {
	c.founded++
	if c.founded <= len(c.cityNames) {
		return c.cityNames[c.founded-1]
	}
	return fmt.Sprintf("%s %d", c.Name, c.founded)
}
