package social

import "github.com/talgya/mini-civ/internal/units"

// BuildKind says what completing a build item does.
type BuildKind uint8

const (
	KindUnit BuildKind = iota
	KindImprovement
	KindWonder
)

func (k BuildKind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindImprovement:
		return "improvement"
	case KindWonder:
		return "wonder"
	default:
		return "unknown"
	}
}

// ParseBuildKind maps "unit", "improvement" or "wonder" to its kind.
func ParseBuildKind(s string) (BuildKind, bool) {
	for _, k := range []BuildKind{KindUnit, KindImprovement, KindWonder} {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// BuildItem is a unit, improvement or wonder queued in exactly one settlement.
type BuildItem struct {
	Name     string     `json:"name"`
	Kind     BuildKind  `json:"kind"`
	Cost     int        `json:"cost"`
	Progress int        `json:"progress"`
	Unit     units.Kind `json:"unit,omitempty"` // Produced unit when Kind is KindUnit
}

// BuildCatalog is the static set of build templates, keyed by name.
type BuildCatalog struct {
	items map[string]BuildItem
	order []string
}

// NewBuildCatalog indexes templates by name. Later duplicates are ignored.
func NewBuildCatalog(templates []BuildItem) *BuildCatalog {
	c := &BuildCatalog{items: make(map[string]BuildItem, len(templates))}
	for _, t := range templates {
		if _, dup := c.items[t.Name]; dup {
			continue
		}
		t.Progress = 0
		c.items[t.Name] = t
		c.order = append(c.order, t.Name)
	}
	return c
}

// New returns a fresh, zero-progress item from the named template.
func (c *BuildCatalog) New(name string) (*BuildItem, bool) {
	t, ok := c.items[name]
	if !ok {
		return nil, false
	}
	return &t, true
}

// Templates returns every template in catalog order.
func (c *BuildCatalog) Templates() []BuildItem {
	out := make([]BuildItem, 0, len(c.order))
	for _, n := range c.order {
		out = append(out, c.items[n])
	}
	return out
}

// DefaultBuildItems returns the built-in build templates.
func DefaultBuildItems() []BuildItem {
	return []BuildItem{
		{Name: "Settlers", Kind: KindUnit, Cost: 30, Unit: units.Settler},
		{Name: "Warriors", Kind: KindUnit, Cost: 10, Unit: units.Warrior},
		{Name: "Phalanx", Kind: KindUnit, Cost: 20, Unit: units.Phalanx},
		{Name: "Archers", Kind: KindUnit, Cost: 30, Unit: units.Archer},
		{Name: "Horsemen", Kind: KindUnit, Cost: 20, Unit: units.Horseman},
		{Name: "Chariot", Kind: KindUnit, Cost: 40, Unit: units.Chariot},
		{Name: "Catapult", Kind: KindUnit, Cost: 40, Unit: units.Catapult},
		{Name: Granary, Kind: KindImprovement, Cost: 60},
		{Name: "Barracks", Kind: KindImprovement, Cost: 40},
		{Name: "Temple", Kind: KindImprovement, Cost: 40},
		{Name: "City Walls", Kind: KindImprovement, Cost: 60},
		{Name: "Library", Kind: KindImprovement, Cost: 80},
		{Name: "Marketplace", Kind: KindImprovement, Cost: 80},
		{Name: "Pyramids", Kind: KindWonder, Cost: 200},
		{Name: "Colossus", Kind: KindWonder, Cost: 200},
		{Name: "Hanging Gardens", Kind: KindWonder, Cost: 300},
		{Name: "Great Library", Kind: KindWonder, Cost: 300},
	}
}
