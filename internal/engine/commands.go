package engine

import (
	"github.com/talgya/mini-civ/internal/social"
	"github.com/talgya/mini-civ/internal/units"
	"github.com/talgya/mini-civ/internal/world"
)

// Orders issued by the human player. Each reports whether it had an effect; none
// is accepted outside HumanPhase.

// MoveUnit moves a human unit through the same movement-budget contract computer
// units use. Returns false if the unit is unknown, dest is off the grid, or the
// move exceeds the unit's remaining points.
func (g *Game) MoveUnit(id units.ID, dest world.Coord) bool {
	if g.phase != HumanPhase || !g.Map.InBounds(dest) {
		return false
	}
	u, ok := g.Human.Units.Get(id)
	if !ok {
		return false
	}
	u.Move(dest)
	return u.Position == dest
}

// FoundSettlement turns a human settler into a settlement at its position.
// Returns nil when the unit is not a settler or the site breaks the spacing rule.
func (g *Game) FoundSettlement(id units.ID) *social.Settlement {
	if g.phase != HumanPhase {
		return nil
	}
	return g.found(g.Human, id)
}

// Enqueue appends a catalog item to a human settlement's production queue.
func (g *Game) Enqueue(id social.SettlementID, item string) bool {
	if g.phase != HumanPhase {
		return false
	}
	s, ok := g.Human.Settlements.Get(id)
	if !ok {
		return false
	}
	b, ok := g.Builds.New(item)
	if !ok {
		return false
	}
	s.Enqueue(b)
	return true
}

// BeginResearch switches the human civilization's research.
func (g *Game) BeginResearch(name string) bool {
	if g.phase != HumanPhase {
		return false
	}
	return g.Human.Research.BeginResearch(name)
}
