package main

import (
	"fmt"
	"image"
	"os"

	"github.com/spf13/cobra"

	"printshop-core/proofing"
	"printshop-core/proofing/lcms"
	"printshop-core/service"
)

var proofCmd = &cobra.Command{
	Use:   "proof",
	Short: "Soft proof an image against an output ICC profile",
	RunE:  runProof,
}

func init() {
	proofCmd.Flags().StringP("input", "i", "", "Input image (PNG, JPEG, TIFF, BMP, GIF)")
	proofCmd.Flags().StringP("output", "o", "", "Proofed PNG output path")
	proofCmd.Flags().String("profile", "", "Output (press) ICC profile path")
	proofCmd.Flags().String("src-profile", "", "Source RGB ICC profile (default sRGB)")
	proofCmd.Flags().String("gamut", "", "Write a gamut warning mask PNG to this path")
	proofCmd.Flags().String("gamut-color", "", "Gamut warning colour as #RRGGBB")
	proofCmd.Flags().String("cmyk", "", "Write raw CMYK bytes (4 per pixel) to this path")
	proofCmd.Flags().Int("max-dim", 0, "Downscale so neither side exceeds this many pixels")
	proofCmd.MarkFlagRequired("input")
	proofCmd.MarkFlagRequired("output")
	proofCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(proofCmd)
}

func runProof(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	profilePath, _ := cmd.Flags().GetString("profile")
	srcProfilePath, _ := cmd.Flags().GetString("src-profile")
	gamutPath, _ := cmd.Flags().GetString("gamut")
	gamutColor, _ := cmd.Flags().GetString("gamut-color")
	cmykPath, _ := cmd.Flags().GetString("cmyk")
	maxDim, _ := cmd.Flags().GetInt("max-dim")

	imageData, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	img, err := service.DecodeForProofing(imageData, maxDim)
	if err != nil {
		return err
	}

	outputICC, err := os.ReadFile(profilePath)
	if err != nil {
		return fmt.Errorf("reading output profile: %w", err)
	}
	var inputICC []byte
	if srcProfilePath != "" {
		if inputICC, err = os.ReadFile(srcProfilePath); err != nil {
			return fmt.Errorf("reading source profile: %w", err)
		}
	} else if inputICC, err = lcms.SRGBProfile(); err != nil {
		return err
	}

	proofer := proofing.NewProofer(proofing.NewRuntime(lcms.Load))
	defer proofer.Dispose()

	if err := proofer.CreateTransform(cmd.Context(), inputICC, outputICC); err != nil {
		return err
	}
	res, err := proofer.Transform(img, gamutPath != "", gamutColor)
	if err != nil {
		return err
	}
	if err := writePNG(outputPath, res.Proofed); err != nil {
		return err
	}
	if gamutPath != "" {
		if err := writePNG(gamutPath, res.GamutMask); err != nil {
			return err
		}
	}

	if cmykPath != "" {
		export, err := proofer.TransformForExport(cmd.Context(), img, inputICC, outputICC)
		if err != nil {
			return err
		}
		if err := os.WriteFile(cmykPath, export.CMYK, 0644); err != nil {
			return fmt.Errorf("writing CMYK: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "CMYK:   %s (%dx%d, %d bytes)\n", cmykPath, export.Width, export.Height, len(export.CMYK))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Proofed %dx%d → %s\n", img.Rect.Dx(), img.Rect.Dy(), outputPath)
	return nil
}

func writePNG(path string, img *image.NRGBA) error {
	data, err := service.EncodePNG(img)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
