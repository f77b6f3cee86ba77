// Package units models mobile units and their per-turn movement budget.
package units

import "github.com/talgya/mini-civ/internal/world"

// ID is a stable handle for a unit within its owner's arena.
type ID uint64

// Kind is drawn from a closed set of unit types.
type Kind uint8

const (
	Settler Kind = iota
	Warrior
	Phalanx
	Archer
	Horseman
	Chariot
	Catapult
)

// Stats are the fixed per-kind ratings. Combat ratings are carried as data only.
type Stats struct {
	Name     string
	Movement int
	Attack   int
	Defense  int
}

// statsTable is the single source of per-kind stats for construction and reset.
var statsTable = map[Kind]Stats{
	Settler:  {Name: "Settler", Movement: 1, Attack: 0, Defense: 1},
	Warrior:  {Name: "Warrior", Movement: 1, Attack: 1, Defense: 1},
	Phalanx:  {Name: "Phalanx", Movement: 1, Attack: 1, Defense: 2},
	Archer:   {Name: "Archer", Movement: 1, Attack: 3, Defense: 2},
	Horseman: {Name: "Horseman", Movement: 2, Attack: 2, Defense: 1},
	Chariot:  {Name: "Chariot", Movement: 2, Attack: 3, Defense: 1},
	Catapult: {Name: "Catapult", Movement: 1, Attack: 6, Defense: 1},
}

// AllKinds lists every unit kind in enum order.
var AllKinds = []Kind{Settler, Warrior, Phalanx, Archer, Horseman, Chariot, Catapult}

// StatsFor returns the fixed stats of a kind.
func StatsFor(k Kind) Stats {
	return statsTable[k]
}

func (k Kind) String() string {
	if s, ok := statsTable[k]; ok {
		return s.Name
	}
	return "Unknown"
}

// ParseKind maps a unit name back to its kind.
func ParseKind(name string) (Kind, bool) {
	for _, k := range AllKinds {
		if statsTable[k].Name == name {
			return k, true
		}
	}
	return 0, false
}

// Unit is a mobile piece on the grid.
type Unit struct {
	ID        ID          `json:"id"`
	Kind      Kind        `json:"kind"`
	Position  world.Coord `json:"position"`
	MovesLeft int         `json:"moves_left"`
}

// New creates a unit with a full movement budget.
func New(id ID, kind Kind, pos world.Coord) *Unit {
	u := &Unit{ID: id, Kind: kind, Position: pos}
	u.ResetMovement()
	return u
}

// Move relocates the unit when the Manhattan distance to dest fits the remaining
// budget, spending that distance. Otherwise nothing changes.
func (u *Unit) Move(dest world.Coord) {
	d := world.Manhattan(u.Position, dest)
	if d > u.MovesLeft {
		return
	}
	u.Position = dest
	u.MovesLeft -= d
}

// ResetMovement restores the kind's full allowance.
func (u *Unit) ResetMovement() {
	u.MovesLeft = statsTable[u.Kind].Movement
}

// IsSettler reports whether the unit can found settlements.
func (u *Unit) IsSettler() bool {
	return u.Kind == Settler
}
