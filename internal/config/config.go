// Package config loads game settings and optional catalog overrides from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/mini-civ/internal/research"
	"github.com/talgya/mini-civ/internal/social"
	"github.com/talgya/mini-civ/internal/units"
)

// Game holds everything needed to start a game and its surrounding services.
type Game struct {
	Seed            int64    `yaml:"seed"`
	Width           int      `yaml:"width"`
	Height          int      `yaml:"height"`
	SeaLevel        float64  `yaml:"sea_level"`
	MountainLevel   float64  `yaml:"mountain_level"`
	ComputerPlayers int      `yaml:"computer_players"`
	CivNames        []string `yaml:"civ_names"`
	MaxSettlements  int      `yaml:"max_settlements"`
	Turns           int      `yaml:"turns"`

	CatalogPath string `yaml:"catalog_path"`
	DBPath      string `yaml:"db_path"`
	APIPort     int    `yaml:"api_port"`
	AdminKey    string `yaml:"admin_key"`
}

// Default returns the built-in settings.
func Default() Game {
	return Game{
		Seed:            42,
		Width:           40,
		Height:          25,
		SeaLevel:        0.30,
		MountainLevel:   0.78,
		ComputerPlayers: 3,
		MaxSettlements:  4,
		Turns:           50,
		DBPath:          "data/civsim.db",
		APIPort:         8080,
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file keep their
// default values. CIVSIM_ADMIN_KEY, when set, overrides admin_key.
func Load(path string) (Game, error) {
	g := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return g, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &g); err != nil {
			return g, fmt.Errorf("%s: %w", path, err)
		}
	}
	if key := os.Getenv("CIVSIM_ADMIN_KEY"); key != "" {
		g.AdminKey = key
	}
	return g, g.Validate()
}

// Validate rejects settings the game cannot start with.
func (g Game) Validate() error {
	switch {
	case g.Width < 3 || g.Height < 3:
		return fmt.Errorf("map must be at least 3x3, got %dx%d", g.Width, g.Height)
	case g.ComputerPlayers < 0:
		return fmt.Errorf("computer_players must be >= 0, got %d", g.ComputerPlayers)
	case g.MaxSettlements < 1:
		return fmt.Errorf("max_settlements must be >= 1, got %d", g.MaxSettlements)
	case g.SeaLevel < 0 || g.SeaLevel >= 1:
		return fmt.Errorf("sea_level must be in [0,1), got %v", g.SeaLevel)
	case g.MountainLevel <= g.SeaLevel || g.MountainLevel > 1:
		return fmt.Errorf("mountain_level must be in (sea_level,1], got %v", g.MountainLevel)
	case g.Turns < 0:
		return fmt.Errorf("turns must be >= 0, got %d", g.Turns)
	}
	return nil
}

// Catalog is the static technology and build-item data.
type Catalog struct {
	Technologies []research.Technology
	BuildItems   []social.BuildItem
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		Technologies: research.DefaultCatalog(),
		BuildItems:   social.DefaultBuildItems(),
	}
}

type catalogFile struct {
	Technologies []research.Technology `yaml:"technologies"`
	BuildItems   []buildItemFile       `yaml:"build_items"`
}

type buildItemFile struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"` // unit, improvement, wonder
	Cost int    `yaml:"cost"`
	Unit string `yaml:"unit,omitempty"`
}

// LoadCatalog reads a catalog file. Sections missing from the file fall back to the
// built-in data. The technology tree is validated to be a DAG.
func LoadCatalog(path string) (Catalog, error) {
	cat := DefaultCatalog()
	if path == "" {
		return cat, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cat, fmt.Errorf("read catalog: %w", err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return cat, fmt.Errorf("%s: %w", path, err)
	}

	if len(f.Technologies) > 0 {
		cat.Technologies = f.Technologies
	}
	if len(f.BuildItems) > 0 {
		items, err := parseBuildItems(f.BuildItems)
		if err != nil {
			return cat, fmt.Errorf("%s: %w", path, err)
		}
		cat.BuildItems = items
	}

	if _, err := research.ValidateCatalog(cat.Technologies); err != nil {
		return cat, fmt.Errorf("%s: technologies: %w", path, err)
	}
	return cat, nil
}

func parseBuildItems(in []buildItemFile) ([]social.BuildItem, error) {
	out := make([]social.BuildItem, 0, len(in))
	for _, b := range in {
		kind, ok := social.ParseBuildKind(b.Kind)
		if !ok {
			return nil, fmt.Errorf("build item %q: unknown kind %q", b.Name, b.Kind)
		}
		if b.Cost <= 0 {
			return nil, fmt.Errorf("build item %q: cost must be positive", b.Name)
		}
		item := social.BuildItem{Name: b.Name, Kind: kind, Cost: b.Cost}
		if kind == social.KindUnit {
			u, ok := units.ParseKind(b.Unit)
			if !ok {
				return nil, fmt.Errorf("build item %q: unknown unit %q", b.Name, b.Unit)
			}
			item.Unit = u
		}
		out = append(out, item)
	}
	return out, nil
}
