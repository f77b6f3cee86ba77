package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/talgya/mini-civ/internal/config"
	"github.com/talgya/mini-civ/internal/engine"
	"github.com/talgya/mini-civ/internal/units"
)

func newRunCmd() *cobra.Command {
	var turns, every int
	var dbPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Play a headless game for a number of turns",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSetup(func(cfg *config.Game) {
				if cmd.Flags().Changed("db") {
					cfg.DBPath = dbPath
				}
				if cmd.Flags().Changed("turns") {
					cfg.Turns = turns
				}
			})
			if err != nil {
				return err
			}
			defer s.Close()
			turns = s.cfg.Turns
			return runGame(s.game, turns, every)
		},
	}
	cmd.Flags().IntVarP(&turns, "turns", "n", 50, "number of turns to play (default from config)")
	cmd.Flags().IntVar(&every, "every", 10, "print the status table every N turns")
	cmd.Flags().StringVar(&dbPath, "db", "", "journal path (empty string disables the journal)")
	return cmd
}

func runGame(g *engine.Game, turns, every int) error {
	titleColor := color.New(color.FgCyan, color.Bold)
	successColor := color.New(color.FgGreen, color.Bold)

	titleColor.Printf("\nPlaying %d turns: %s against %d computer civilizations\n\n",
		turns, g.Human.Name, len(g.Computers))

	for i := 0; i < turns; i++ {
		autoplayHuman(g)
		if !g.EndTurn() {
			return fmt.Errorf("turn %d: end turn rejected in %s phase", g.Turn, g.Phase())
		}
		if every > 0 && (g.Turn-1)%every == 0 {
			titleColor.Printf("Turn %d\n", g.Turn-1)
			printSummaries(g.Summaries())
		}
	}

	successColor.Printf("\n✓ Finished at turn %d\n", g.Turn)
	printSummaries(g.Summaries())
	if built := g.Wonders.Built(); len(built) > 0 {
		fmt.Println("\nWonders:")
		for _, w := range built {
			owner, _ := g.Wonders.Owner(w)
			civ, _ := g.Civilization(owner)
			fmt.Printf("   %s (%s)\n", w, civ.Name)
		}
	}
	return nil
}

// autoplayHuman issues simple orders for the human side through the command
// surface: settlers found where allowed and idle settlements train Warriors.
func autoplayHuman(g *engine.Game) {
	for _, u := range g.Human.Units.Values() {
		if u.Kind == units.Settler {
			g.FoundSettlement(u.ID)
		}
	}
	for id, s := range g.Human.Settlements.All() {
		if s.Building() == nil {
			g.Enqueue(id, "Warriors")
		}
	}
}

func printSummaries(rows []engine.CivSummary) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Civ", "Player", "Research", "Progress", "Techs", "Cities", "Pop", "Units", "Wonders"}),
	)
	for _, r := range rows {
		player := "computer"
		if r.Human {
			player = "human"
		}
		research := r.Research
		if research == "" {
			research = "-"
		}
		table.Append([]string{
			r.Name,
			player,
			research,
			fmt.Sprintf("%d", r.Progress),
			fmt.Sprintf("%d", r.Researched),
			fmt.Sprintf("%d", r.Settlements),
			fmt.Sprintf("%d", r.Population),
			fmt.Sprintf("%d", r.Units),
			fmt.Sprintf("%d", r.Wonders),
		})
	}
	table.Render()
}
