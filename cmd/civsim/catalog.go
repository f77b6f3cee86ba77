package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/talgya/mini-civ/internal/config"
	"github.com/talgya/mini-civ/internal/research"
	"github.com/talgya/mini-civ/internal/social"
)

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Validate and print the technology and build catalogs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cat, err := config.LoadCatalog(cfg.CatalogPath)
			if err != nil {
				return err
			}
			order, err := research.ValidateCatalog(cat.Technologies)
			if err != nil {
				return err
			}
			printCatalog(cat, order)
			return nil
		},
	}
}

func printCatalog(cat config.Catalog, order []string) {
	titleColor := color.New(color.FgCyan, color.Bold)

	byName := make(map[string]research.Technology, len(cat.Technologies))
	for _, t := range cat.Technologies {
		byName[t.Name] = t
	}

	titleColor.Printf("\nTechnologies (%d, prerequisite order)\n", len(order))
	techs := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Technology", "Cost", "Prerequisites"}),
	)
	for _, name := range order {
		t := byName[name]
		prereqs := strings.Join(t.Prerequisites, ", ")
		if prereqs == "" {
			prereqs = "-"
		}
		techs.Append([]string{t.Name, fmt.Sprintf("%d", t.Cost), prereqs})
	}
	techs.Render()

	titleColor.Printf("\nBuild items (%d)\n", len(cat.BuildItems))
	items := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Item", "Kind", "Cost", "Unit"}),
	)
	for _, b := range cat.BuildItems {
		unit := "-"
		if b.Kind == social.KindUnit {
			unit = b.Unit.String()
		}
		items.Append([]string{b.Name, b.Kind.String(), fmt.Sprintf("%d", b.Cost), unit})
	}
	items.Render()
}
