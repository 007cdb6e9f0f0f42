package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"printshop-core/pricing"
	"printshop-core/repository"
)

var imposeCmd = &cobra.Command{
	Use:   "impose",
	Short: "Show the best sheet or roll layout for an item size",
	RunE:  runImpose,
}

func init() {
	imposeCmd.Flags().StringP("fixture", "f", "", "YAML pricing catalogue")
	imposeCmd.Flags().String("profile", "", "Pricing profile id")
	imposeCmd.Flags().Float64("width", 0, "Item width in mm (bleed and gap included)")
	imposeCmd.Flags().Float64("height", 0, "Item height in mm (bleed and gap included)")
	imposeCmd.MarkFlagRequired("fixture")
	imposeCmd.MarkFlagRequired("profile")
	imposeCmd.MarkFlagRequired("width")
	imposeCmd.MarkFlagRequired("height")
	rootCmd.AddCommand(imposeCmd)
}

func runImpose(cmd *cobra.Command, args []string) error {
	fixturePath, _ := cmd.Flags().GetString("fixture")
	profileID, _ := cmd.Flags().GetString("profile")
	width, _ := cmd.Flags().GetFloat64("width")
	height, _ := cmd.Flags().GetFloat64("height")

	fixture, err := repository.LoadPricingFixture(fixturePath)
	if err != nil {
		return err
	}
	profile, err := repository.NewStaticPricingRepository(fixture).GetPricingProfile(cmd.Context(), profileID)
	if err != nil {
		return err
	}

	imp, err := pricing.ComputeImposition(profile.Machines, width, height)
	if err != nil {
		return fmt.Errorf("imposition: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Machine:   %s (%s)\n", imp.MachineID, imp.Mode)
	fmt.Fprintf(out, "Ups:       %d (%d cols x %d rows)\n", imp.Ups, imp.Cols, imp.Rows)
	fmt.Fprintf(out, "Rotation:  %d°\n", imp.Rotation)
	fmt.Fprintf(out, "Item:      %.1f x %.1f mm\n", imp.ItemWidth, imp.ItemHeight)
	fmt.Fprintf(out, "Printable: %.1f x %.1f mm\n", imp.PWidth, imp.PHeight)
	fmt.Fprintf(out, "Sheet:     %.1f x %.1f mm\n", imp.SheetWidth, imp.SheetHeight)
	return nil
}
