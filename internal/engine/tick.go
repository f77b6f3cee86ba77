// Package engine sequences end-of-turn processing across civilizations.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/mini-civ/internal/social"
)

// Phase is the orchestrator state. The game idles in HumanPhase until EndTurn.
type Phase uint8

const (
	HumanPhase Phase = iota
	ComputerPhase
)

func (p Phase) String() string {
	switch p {
	case HumanPhase:
		return "human"
	case ComputerPhase:
		return "computer"
	default:
		return "unknown"
	}
}

// EndTurn runs the whole turn synchronously: the human civilization's economy and
// research, its movement reset, each computer civilization's economy, research and
// decisions in order, every computer unit's movement reset, then the turn counter.
// Returns false without doing anything if called outside HumanPhase.
func (g *Game) EndTurn() bool {
	if g.phase != HumanPhase {
		return false
	}

	g.processCivilization(g.Human)
	g.Human.ResetMovement()

	g.phase = ComputerPhase
	for i, c := range g.Computers {
		g.processCivilization(c)
		g.players[i].Play()
	}
	for _, c := range g.Computers {
		c.ResetMovement()
	}

	g.Turn++
	g.phase = HumanPhase

	if len(g.Events) > MaxEvents {
		g.Events = g.Events[len(g.Events)-MaxEvents:]
	}

	slog.Info("turn complete",
		"turn", g.Turn-1,
		"human_research", g.Human.Research.CurrentName(),
		"human_settlements", g.Human.Settlements.Len(),
		"human_population", g.Human.Population(),
		"computers", len(g.Computers),
	)

	if g.OnTurnEnd != nil {
		g.OnTurnEnd(g)
	}
	return true
}

// processCivilization runs yields, production and growth for every settlement, then
// credits the summed trade to research and keeps the research slot busy.
func (g *Game) processCivilization(c *social.Civilization) {
	gate := g.Wonders.GateFor(c.ID)
	trade := 0

	for _, s := range c.Settlements.All() {
		s.UpdateYields(g.Map)
		trade += s.Trade

		res := s.ProcessProduction(gate)
		if res.Completed != nil {
			g.recordProduction(c, s, res)
		}
		if res.Unit != nil {
			g.unitProduced(c, *res.Unit)
		}

		switch s.ProcessGrowth() {
		case social.GrowthGrew:
			g.record(c, "growth", fmt.Sprintf("%s grew to size %d", s.Name, s.Population))
		case social.GrowthStarved:
			g.record(c, "starvation", fmt.Sprintf("%s is starving (size %d)", s.Name, s.Population))
		}
	}

	if done := c.Research.AddResearchPoints(trade); done != nil {
		g.record(c, "research", fmt.Sprintf("%s discovered %s", c.Name, done.Name))
	}
	if c.Research.Current() == nil {
		if name := c.Research.BeginFirstAvailable(); name != "" {
			g.record(c, "research", fmt.Sprintf("%s began researching %s", c.Name, name))
		}
	}

	slog.Debug("civilization processed",
		"turn", g.Turn,
		"civ", c.Name,
		"trade", trade,
		"research", c.Research.CurrentName(),
		"progress", c.Research.Progress(),
	)
}

func (g *Game) recordProduction(c *social.Civilization, s *social.Settlement, res social.ProductionResult) {
	item := res.Completed
	switch {
	case res.WonderLost:
		owner, _ := g.Wonders.Owner(item.Name)
		ownerName := "another civilization"
		if oc, ok := g.Civilization(owner); ok {
			ownerName = oc.Name
		}
		g.record(c, "wonder", fmt.Sprintf("%s lost %s to %s", s.Name, item.Name, ownerName))
	case item.Kind == social.KindWonder:
		g.record(c, "wonder", fmt.Sprintf("%s completed %s", s.Name, item.Name))
	default:
		g.record(c, "production", fmt.Sprintf("%s built %s", s.Name, item.Name))
	}
}

func (g *Game) unitProduced(c *social.Civilization, sig social.UnitProduced) {
	if g.OnUnitProduced != nil {
		g.OnUnitProduced(c, sig)
		return
	}
	u := c.SpawnUnit(sig.Kind, sig.Location)
	g.record(c, "unit", fmt.Sprintf("%s trained at (%d,%d)", u.Kind, sig.Location.X, sig.Location.Y))
}
