// Command civsim runs the turn-based civilization game headless or behind the HTTP API.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/talgya/mini-civ/internal/config"
	"github.com/talgya/mini-civ/internal/engine"
	"github.com/talgya/mini-civ/internal/persistence"
	"github.com/talgya/mini-civ/internal/world"
)

var (
	configPath string
	logLevel   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "civsim",
		Short: "Turn-based civilization strategy simulation",
		Long: `Plays a human civilization against computer opponents on a generated
map: research, settlement growth, production queues and exploration.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")

	rootCmd.AddCommand(newRunCmd(), newServeCmd(), newCatalogCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return nil
}

// setup is everything a command needs to start playing.
type setup struct {
	cfg    config.Game
	game   *engine.Game
	db     *persistence.DB
	gameID string
}

// newSetup loads config and catalog, applies flag overrides, generates the map and
// creates the game. The journal is opened when cfg.DBPath is set.
func newSetup(override func(*config.Game)) (*setup, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(&cfg)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	cat, err := config.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	gen := world.DefaultGenConfig()
	gen.Width, gen.Height, gen.Seed = cfg.Width, cfg.Height, cfg.Seed
	gen.SeaLevel, gen.MountainLvl = cfg.SeaLevel, cfg.MountainLevel
	m := world.Generate(gen)

	land := 0
	for t, n := range world.TerrainCounts(m) {
		if t.IsLand() {
			land += n
		}
		slog.Debug("terrain", "type", t.String(), "count", n)
	}
	slog.Info("map generated", "width", m.Width(), "height", m.Height(), "land_tiles", land, "seed", cfg.Seed)

	g := engine.NewGame(m, engine.Options{
		Seed:            cfg.Seed,
		ComputerPlayers: cfg.ComputerPlayers,
		CivNames:        cfg.CivNames,
		MaxSettlements:  cfg.MaxSettlements,
		Technologies:    cat.Technologies,
		BuildItems:      cat.BuildItems,
	})

	s := &setup{cfg: cfg, game: g, gameID: persistence.NewGameID()}
	if cfg.DBPath == "" {
		return s, nil
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := db.SaveMeta(s.gameID, "seed", strconv.FormatInt(cfg.Seed, 10)); err != nil {
		db.Close()
		return nil, fmt.Errorf("save meta: %w", err)
	}
	slog.Info("journal opened", "path", cfg.DBPath, "game", s.gameID)
	s.db = db

	g.OnTurnEnd = func(g *engine.Game) {
		if err := db.SaveTurn(s.gameID, g); err != nil {
			slog.Error("journal write failed", "turn", g.Turn-1, "error", err)
		}
	}
	return s, nil
}

func (s *setup) Close() {
	if s.db != nil {
		s.db.Close()
	}
}
