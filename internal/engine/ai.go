package engine

import (
	"github.com/talgya/mini-civ/internal/entropy"
	"github.com/talgya/mini-civ/internal/social"
	"github.com/talgya/mini-civ/internal/units"
	"github.com/talgya/mini-civ/internal/world"
)

// ComputerPlayer issues one computer civilization's orders each turn.
type ComputerPlayer struct {
	game           *Game
	civ            *social.Civilization
	rng            entropy.Source
	maxSettlements int
}

// NewComputerPlayer binds a decision loop to civ. rng drives the random walk.
func NewComputerPlayer(g *Game, civ *social.Civilization, rng entropy.Source, maxSettlements int) *ComputerPlayer {
	return &ComputerPlayer{game: g, civ: civ, rng: rng, maxSettlements: maxSettlements}
}

// Play runs the decision loop once. Called after the civilization's economy and
// research have been processed for the turn.
func (p *ComputerPlayer) Play() {
	if p.civ.Research.Current() == nil {
		p.civ.Research.BeginFirstAvailable()
	}

	for _, u := range p.civ.Units.All() {
		if u.IsSettler() {
			if p.game.CanFoundAt(u.Position) {
				p.game.found(p.civ, u.ID)
				continue
			}
			p.migrate(u)
			continue
		}
		p.wander(u)
	}

	p.fillQueues()
}

// wander tries one random step of at most one tile per axis, through the unit's
// movement budget.
func (p *ComputerPlayer) wander(u *units.Unit) {
	dx := p.rng.Intn(3) - 1
	dy := p.rng.Intn(3) - 1
	dest := u.Position.Add(dx, dy)
	if !world.InBounds(p.game.Map, dest) {
		return
	}
	u.Move(dest)
}

// migrate steps a settler that cannot found where it stands one tile further from
// the nearest settlement of any civilization, choosing among the best land tiles
// with rng. With no such tile it wanders instead.
func (p *ComputerPlayer) migrate(u *units.Unit) {
	here := p.nearestSettlement(u.Position)
	best := here
	var choices []world.Coord
	for _, d := range [...]world.Coord{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}} {
		dest := u.Position.Add(d.X, d.Y)
		if !world.InBounds(p.game.Map, dest) || !p.game.Map.At(dest).IsLand() {
			continue
		}
		dist := p.nearestSettlement(dest)
		switch {
		case dist > best:
			best = dist
			choices = append(choices[:0], dest)
		case dist == best && dist > here:
			choices = append(choices, dest)
		}
	}
	if len(choices) == 0 {
		p.wander(u)
		return
	}
	u.Move(choices[p.rng.Intn(len(choices))])
}

// nearestSettlement returns the Manhattan distance from pos to the closest
// settlement of any civilization, or -1 when none exists.
func (p *ComputerPlayer) nearestSettlement(pos world.Coord) int {
	nearest := -1
	for _, c := range p.game.Civilizations() {
		for _, s := range c.Settlements.All() {
			if d := world.Manhattan(pos, s.Position); nearest < 0 || d < nearest {
				nearest = d
			}
		}
	}
	return nearest
}

// fillQueues keeps every settlement producing: Settlers while the civilization is
// below its target size, Warriors afterwards.
func (p *ComputerPlayer) fillQueues() {
	pending := 0
	for _, u := range p.civ.Units.All() {
		if u.IsSettler() {
			pending++
		}
	}
	for _, s := range p.civ.Settlements.All() {
		for _, item := range s.Queue {
			if item.Kind == social.KindUnit && item.Unit == units.Settler {
				pending++
			}
		}
	}

	for _, s := range p.civ.Settlements.All() {
		if len(s.Queue) > 0 {
			continue
		}
		name := "Warriors"
		if p.civ.Settlements.Len()+pending < p.maxSettlements {
			name = "Settlers"
			pending++
		}
		if item, ok := p.game.Builds.New(name); ok {
			s.Enqueue(item)
		}
	}
}
