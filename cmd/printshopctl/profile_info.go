package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"printshop-core/proofing"
)

var profileInfoCmd = &cobra.Command{
	Use:   "profile-info [file.icc]",
	Short: "Inspect an ICC profile header",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileInfo,
}

func init() {
	rootCmd.AddCommand(profileInfoCmd)
}

func runProfileInfo(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	info, err := proofing.ParseProfileInfo(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:        %s\n", path)
	fmt.Fprintf(out, "Size:        %d bytes\n", info.Size)
	fmt.Fprintf(out, "Version:     %s\n", info.Version)
	fmt.Fprintf(out, "Color space: %s\n", proofing.ColorSpaceName(info.ColorSpace))
	fmt.Fprintf(out, "PCS:         %s\n", proofing.ColorSpaceName(info.PCS))
	fmt.Fprintf(out, "Class:       %s\n", proofing.ProfileClassName(info.Class))
	return nil
}
