package main

import (
	"alcyxob/ai-trainer/internal/repository/mongo"
	"alcyxob/ai-trainer/internal/service"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Insert the equipment catalog and starter locations",
	Long: `Insert the built-in equipment list, grouped by category, and the starter
locations (Standard Gym, Standard Park/Playground, Standard Crossfit Gym).

Existing equipment and locations are kept, so the command can be rerun after
the catalog grows.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := service.NewCatalogService(
			mongo.NewMongoEquipmentRepository(appDB),
			mongo.NewMongoLocationRepository(appDB),
		)

		result, err := catalog.Seed(cmd.Context())
		if err != nil {
			return fmt.Errorf("seeding catalog: %w", err)
		}

		color.Green("✓ Catalog seeded")
		faint := color.New(color.Faint)
		fmt.Printf("  equipment created  %s\n", faint.Sprint(result.EquipmentCreated))
		fmt.Printf("  locations created  %s\n", faint.Sprint(result.LocationsCreated))
		fmt.Printf("  equipment linked   %s\n", faint.Sprint(result.EquipmentLinked))
		if result.EquipmentCreated == 0 && result.LocationsCreated == 0 {
			color.Yellow("  nothing new, catalog was already up to date")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
