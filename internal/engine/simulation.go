// Game ties together every civilization and runs the end-of-turn pipeline.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/mini-civ/internal/entropy"
	"github.com/talgya/mini-civ/internal/research"
	"github.com/talgya/mini-civ/internal/social"
	"github.com/talgya/mini-civ/internal/units"
	"github.com/talgya/mini-civ/internal/world"
)

// MinSettlementSpacing is the Manhattan radius inside which no new settlement may be
// founded. Applies to every civilization and to human and computer orders alike.
const MinSettlementSpacing = 2

// MaxEvents bounds the in-memory event log.
const MaxEvents = 1000

// DefaultCivNames are assigned in order, human first.
var DefaultCivNames = []string{
	"Romans", "Babylonians", "Germans", "Egyptians", "Greeks",
	"Chinese", "Aztecs", "Zulus", "Mongols", "Russians",
}

// Options configure a new game.
type Options struct {
	Seed            int64                 // Seeds placement, names and computer players (0 = crypto randomness)
	ComputerPlayers int                   // Number of computer civilizations
	CivNames        []string              // Overrides DefaultCivNames
	MaxSettlements  int                   // Computer players stop queueing Settlers at this size
	Technologies    []research.Technology // nil or invalid = research.DefaultCatalog()
	BuildItems      []social.BuildItem    // nil = social.DefaultBuildItems()
	Random          entropy.Source        // Overrides the seeded source for computer players
}

// Event is a notable occurrence during turn processing.
type Event struct {
	Turn        int          `json:"turn" db:"turn"`
	Civ         social.CivID `json:"civ" db:"civ"`
	Category    string       `json:"category" db:"category"` // "research", "production", "growth", "starvation", "founding", "wonder", "unit"
	Description string       `json:"description" db:"description"`
}

// Game holds the complete turn state.
type Game struct {
	Map       *world.Map
	Human     *social.Civilization
	Computers []*social.Civilization
	Builds    *social.BuildCatalog
	Wonders   *WonderRegistry
	Events    []Event
	Turn      int // Starts at 1, incremented once per EndTurn

	// OnUnitProduced instantiates units finished by production. The default spawns
	// the unit at the settlement for its owner.
	OnUnitProduced func(owner *social.Civilization, sig social.UnitProduced)

	// OnTurnEnd runs after the turn counter has advanced.
	OnTurnEnd func(g *Game)

	phase   Phase
	players []*ComputerPlayer
	seed    int64
}

// New creates a game with one human and opts.ComputerPlayers computer civilizations,
// none of which own anything yet.
func New(m *world.Map, opts Options) *Game {
	techs := opts.Technologies
	if techs == nil {
		techs = research.DefaultCatalog()
	}
	if _, err := research.ValidateCatalog(techs); err != nil {
		slog.Error("invalid technology catalog, using the built-in one", "error", err)
		techs = research.DefaultCatalog()
	}
	items := opts.BuildItems
	if items == nil {
		items = social.DefaultBuildItems()
	}
	names := opts.CivNames
	if len(names) == 0 {
		names = DefaultCivNames
	}
	rng := opts.Random
	if rng == nil {
		rng = entropy.FromSeed(opts.Seed)
	}
	maxSett := opts.MaxSettlements
	if maxSett <= 0 {
		maxSett = 4
	}

	civCount := 1 + opts.ComputerPlayers
	cityNames := world.GenerateNames(opts.Seed, civCount*12)

	g := &Game{
		Map:     m,
		Builds:  social.NewBuildCatalog(items),
		Wonders: NewWonderRegistry(),
		Turn:    1,
		phase:   HumanPhase,
		seed:    opts.Seed,
	}

	for i := 0; i < civCount; i++ {
		name := fmt.Sprintf("Civ %d", i)
		if i < len(names) {
			name = names[i]
		}
		var cities []string
		if lo, hi := i*12, (i+1)*12; hi <= len(cityNames) {
			cities = cityNames[lo:hi]
		}
		civ := social.NewCivilization(social.CivID(i), name, i == 0, techs, cities)
		if i == 0 {
			g.Human = civ
			continue
		}
		g.Computers = append(g.Computers, civ)
		g.players = append(g.players, NewComputerPlayer(g, civ, rng, maxSett))
	}

	return g
}

// NewGame creates a game and gives every civilization a Settler and a Warrior on
// its own start tile.
func NewGame(m *world.Map, opts Options) *Game {
	g := New(m, opts)
	g.PlaceStartingUnits()
	return g
}

// PlaceStartingUnits spawns each civilization's opening Settler and Warrior.
func (g *Game) PlaceStartingUnits() {
	civs := g.Civilizations()
	starts := world.PlaceStarts(g.Map, len(civs), g.seed)
	for i, civ := range civs {
		if i >= len(starts) {
			slog.Warn("no start tile left", "civ", civ.Name)
			continue
		}
		civ.SpawnUnit(units.Settler, starts[i])
		civ.SpawnUnit(units.Warrior, starts[i])
	}
}

// Civilizations returns the human civilization followed by computers in processing order.
func (g *Game) Civilizations() []*social.Civilization {
	out := make([]*social.Civilization, 0, 1+len(g.Computers))
	out = append(out, g.Human)
	return append(out, g.Computers...)
}

// Civilization looks up a civilization by ID.
func (g *Game) Civilization(id social.CivID) (*social.Civilization, bool) {
	for _, c := range g.Civilizations() {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// Phase returns the current orchestration phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// CurrentResearchName returns the named civilization's in-progress technology, or "".
func (g *Game) CurrentResearchName(id social.CivID) string {
	c, ok := g.Civilization(id)
	if !ok {
		return ""
	}
	return c.Research.CurrentName()
}

// CanFoundAt reports whether a settlement may be founded at pos: on-grid land with
// no settlement of any civilization within MinSettlementSpacing.
func (g *Game) CanFoundAt(pos world.Coord) bool {
	if !g.Map.InBounds(pos) || !g.Map.At(pos).IsLand() {
		return false
	}
	for _, c := range g.Civilizations() {
		if c.SettlementWithin(pos, MinSettlementSpacing) {
			return false
		}
	}
	return true
}

// found consumes a settler into a settlement when the spacing rule allows it.
func (g *Game) found(c *social.Civilization, id units.ID) *social.Settlement {
	u, ok := c.Units.Get(id)
	if !ok || !u.IsSettler() || !g.CanFoundAt(u.Position) {
		return nil
	}
	s := c.Found(id)
	if s != nil {
		g.record(c, "founding", fmt.Sprintf("%s founded %s at (%d,%d)", c.Name, s.Name, s.Position.X, s.Position.Y))
	}
	return s
}

// record appends an event for the current turn.
func (g *Game) record(c *social.Civilization, category, desc string) {
	g.Events = append(g.Events, Event{
		Turn:        g.Turn,
		Civ:         c.ID,
		Category:    category,
		Description: desc,
	})
	slog.Debug("event", "turn", g.Turn, "civ", c.Name, "category", category, "description", desc)
}

// CivSummary is a per-civilization snapshot for status displays and the journal.
type CivSummary struct {
	Turn        int          `json:"turn" db:"turn"`
	Civ         social.CivID `json:"civ" db:"civ"`
	Name        string       `json:"name" db:"name"`
	Human       bool         `json:"human" db:"human"`
	Research    string       `json:"research" db:"research"`
	Progress    int          `json:"progress" db:"progress"`
	Researched  int          `json:"researched" db:"researched"`
	Settlements int          `json:"settlements" db:"settlements"`
	Units       int          `json:"units" db:"units"`
	Population  int          `json:"population" db:"population"`
	Wonders     int          `json:"wonders" db:"wonders"`
}

// Summaries returns one summary per civilization in processing order.
func (g *Game) Summaries() []CivSummary {
	civs := g.Civilizations()
	out := make([]CivSummary, 0, len(civs))
	for _, c := range civs {
		out = append(out, CivSummary{
			Turn:        g.Turn,
			Civ:         c.ID,
			Name:        c.Name,
			Human:       c.Human,
			Research:    c.Research.CurrentName(),
			Progress:    c.Research.Progress(),
			Researched:  c.Research.ResearchedCount(),
			Settlements: c.Settlements.Len(),
			Units:       c.Units.Len(),
			Population:  c.Population(),
			Wonders:     g.Wonders.CountFor(c.ID),
		})
	}
	return out
}
