package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"printshop-core/models"
	"printshop-core/pricing"
	"printshop-core/repository"
	"printshop-core/service"
	"printshop-core/utils"
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a job against a YAML pricing catalogue",
	RunE:  runQuote,
}

func init() {
	quoteCmd.Flags().StringP("fixture", "f", "", "YAML pricing catalogue")
	quoteCmd.Flags().String("product", "", "Product id")
	quoteCmd.Flags().IntSlice("quantity", nil, "Quantities to price (repeatable)")
	quoteCmd.Flags().StringSlice("material", nil, "Material ids to price (repeatable)")
	quoteCmd.Flags().Float64("width", 0, "Finished width in mm")
	quoteCmd.Flags().Float64("height", 0, "Finished height in mm")
	quoteCmd.Flags().String("sides", "4+0", "Colours per side: 4+0 or 4+4")
	quoteCmd.Flags().Float64("coverage", 10, "Ink coverage percentage")
	quoteCmd.Flags().StringSlice("finish", nil, "Finish option ids")
	quoteCmd.Flags().String("currency", "EUR", "Currency for printed prices")
	quoteCmd.Flags().String("html", "", "Write an HTML quote sheet to this path")
	quoteCmd.MarkFlagRequired("fixture")
	quoteCmd.MarkFlagRequired("product")
	quoteCmd.MarkFlagRequired("quantity")
	quoteCmd.MarkFlagRequired("material")
	quoteCmd.MarkFlagRequired("width")
	quoteCmd.MarkFlagRequired("height")
	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, args []string) error {
	fixturePath, _ := cmd.Flags().GetString("fixture")
	productID, _ := cmd.Flags().GetString("product")
	quantities, _ := cmd.Flags().GetIntSlice("quantity")
	materials, _ := cmd.Flags().GetStringSlice("material")
	width, _ := cmd.Flags().GetFloat64("width")
	height, _ := cmd.Flags().GetFloat64("height")
	sidesFlag, _ := cmd.Flags().GetString("sides")
	coverage, _ := cmd.Flags().GetFloat64("coverage")
	finishes, _ := cmd.Flags().GetStringSlice("finish")
	currency, _ := cmd.Flags().GetString("currency")
	htmlPath, _ := cmd.Flags().GetString("html")

	sides := 1
	switch strings.TrimSpace(sidesFlag) {
	case "4+0", "1":
	case "4+4", "2":
		sides = 2
	default:
		return fmt.Errorf("unsupported sides %q (use 4+0 or 4+4)", sidesFlag)
	}

	fixture, err := repository.LoadPricingFixture(fixturePath)
	if err != nil {
		return err
	}
	engine := pricing.NewEngine(repository.NewStaticPricingRepository(fixture))

	req := models.PricingRequest{
		ProductID:   productID,
		Quantities:  quantities,
		MaterialIDs: materials,
		Width:       width,
		Height:      height,
		Sides:       sides,
		FinishIDs:   finishes,
		Coverage:    coverage,
		Batch:       true,
	}
	results, err := engine.Calculate(cmd.Context(), req)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MATERIAL\tQTY\tUPS\tSHEETS\tBASE\tMARGIN\tTOTAL\tUNIT")
	for _, r := range results {
		ups := 0
		if r.Imposition != nil {
			ups = r.Imposition.Ups
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t%.1f%%\t%s\t%s\n",
			r.MaterialName, r.Quantity, ups, r.Breakdown.TotalSheets,
			utils.FormatMoney(r.Breakdown.TotalBaseCost, currency), r.Breakdown.MarginPct,
			utils.FormatMoney(r.TotalPrice, currency), utils.FormatMoney(r.UnitPrice, currency))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if htmlPath == "" {
		return nil
	}
	documents, err := service.NewQuoteDocumentService("Print Shop", currency, "", 30*time.Second)
	if err != nil {
		return err
	}
	html, err := documents.RenderHTML(models.QuoteSheet{
		Number:    "Q-" + strings.ToUpper(uuid.NewString()[:8]),
		IssuedAt:  time.Now(),
		ProductID: productID,
		Width:     width,
		Height:    height,
		Sides:     sides,
		Lines:     results,
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(htmlPath, []byte(html), 0644); err != nil {
		return fmt.Errorf("writing quote sheet: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Quote sheet: %s\n", htmlPath)
	return nil
}
