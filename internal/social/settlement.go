// Package social provides settlements and the civilizations that own them.
package social

import (
	"github.com/talgya/mini-civ/internal/units"
	"github.com/talgya/mini-civ/internal/world"
)

// SettlementID is a stable handle for a settlement within its owner's arena.
type SettlementID uint64

// GrowthFoodPerPop scales the food stock needed for the next population point.
const GrowthFoodPerPop = 20

// FoodUpkeepPerPop is the food eaten per population point each turn.
const FoodUpkeepPerPop = 2

// Granary is the improvement that multiplies food yield by 1.5.
const Granary = "Granary"

// Settlement is a founded city on the grid.
type Settlement struct {
	ID       SettlementID `json:"id"`
	Name     string       `json:"name"`
	Position world.Coord  `json:"position"`

	// Demographics
	Population int `json:"population"` // Never below 1
	FoodStock  int `json:"food_stock"` // In [0, GrowthCost) after growth

	// Improvements built here (name → present).
	Improvements map[string]bool `json:"improvements"`

	// Production queue, front first.
	Queue []*BuildItem `json:"queue"`

	// Per-turn yields, recomputed by UpdateYields.
	Food       int `json:"food"`
	Trade      int `json:"trade"`
	Production int `json:"production"`
}

// NewSettlement founds a population-1 settlement with empty stock and queue.
func NewSettlement(id SettlementID, name string, pos world.Coord) *Settlement {
	return &Settlement{
		ID:           id,
		Name:         name,
		Position:     pos,
		Population:   1,
		Improvements: make(map[string]bool),
	}
}

// GrowthCost returns the food stock needed for the next population point.
func (s *Settlement) GrowthCost() int {
	return (s.Population + 1) * GrowthFoodPerPop
}

// Upkeep returns the food eaten this turn.
func (s *Settlement) Upkeep() int {
	return s.Population * FoodUpkeepPerPop
}

// HasImprovement reports whether the named improvement or wonder is built here.
func (s *Settlement) HasImprovement(name string) bool {
	return s.Improvements[name]
}

// Enqueue appends an item to the back of the production queue.
func (s *Settlement) Enqueue(item *BuildItem) {
	s.Queue = append(s.Queue, item)
}

// Building returns the item at the front of the queue, or nil.
func (s *Settlement) Building() *BuildItem {
	if len(s.Queue) == 0 {
		return nil
	}
	return s.Queue[0]
}

// GrowthOutcome reports what ProcessGrowth did.
type GrowthOutcome uint8

const (
	GrowthStable GrowthOutcome = iota
	GrowthStored               // Surplus added to stock, no new population
	GrowthGrew                 // Population +1
	GrowthStarved              // Population −1 (or held at 1) and stock emptied
)

// ProcessGrowth feeds the population from this turn's food yield.
// At most one growth event happens per call.
func (s *Settlement) ProcessGrowth() GrowthOutcome {
	upkeep := s.Upkeep()

	switch {
	case s.Food > upkeep:
		s.FoodStock += s.Food - upkeep
		cost := s.GrowthCost()
		if s.FoodStock < cost {
			return GrowthStored
		}
		s.Population++
		s.FoodStock -= cost
		// A single growth per turn: whatever still exceeds the next threshold is lost.
		if next := s.GrowthCost(); s.FoodStock >= next {
			s.FoodStock = next - 1
		}
		return GrowthGrew

	case s.Food < upkeep:
		if s.Population > 1 {
			s.Population--
		}
		s.FoodStock = 0
		return GrowthStarved
	}

	return GrowthStable
}

// UnitProduced is the signal emitted when a unit finishes in a settlement.
// The caller instantiates the unit; the settlement only reports it.
type UnitProduced struct {
	Kind       units.Kind   `json:"kind"`
	Location   world.Coord  `json:"location"`
	Settlement SettlementID `json:"settlement"`
}

// WonderGate decides whether a finished wonder may take effect.
type WonderGate interface {
	ClaimWonder(name string) bool
}

// ProductionResult describes what ProcessProduction completed, if anything.
type ProductionResult struct {
	Completed  *BuildItem    // Item removed from the queue this turn
	Unit       *UnitProduced // Set when Completed is a unit
	WonderLost bool          // Completed wonder was refused by the gate and discarded
}

// ProcessProduction adds this turn's production to the front of the queue and
// completes it once progress reaches cost. gate may be nil, in which case wonders
// complete unconditionally.
func (s *Settlement) ProcessProduction(gate WonderGate) ProductionResult {
	item := s.Building()
	if item == nil {
		return ProductionResult{}
	}

	item.Progress += s.Production
	if item.Progress < item.Cost {
		return ProductionResult{}
	}

	s.Queue[0] = nil
	s.Queue = s.Queue[1:]
	res := ProductionResult{Completed: item}

	switch item.Kind {
	case KindUnit:
		res.Unit = &UnitProduced{Kind: item.Unit, Location: s.Position, Settlement: s.ID}
	case KindWonder:
		if gate != nil && !gate.ClaimWonder(item.Name) {
			res.WonderLost = true
			break
		}
		s.Improvements[item.Name] = true
	case KindImprovement:
		s.Improvements[item.Name] = true
	}

	return res
}
