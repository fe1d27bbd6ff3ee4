package cmd

import (
	"fmt"

	"github.com/alexiusacademia/goprofile/internal/section"
	"github.com/spf13/cobra"
)

var (
	cropFile   string
	cropOutput string
)

var cropCmd = &cobra.Command{
	Use:   "crop",
	Short: "Crop the white border from a profile image",
	Long: `Convert a profile image to black and white and remove every
row and column that contains no profile pixels.

Examples:
  goprofile crop --file profile.png
  goprofile crop -f scan.jpg -o scan_cropped.png`,
	Run: runCrop,
}

func init() {
	rootCmd.AddCommand(cropCmd)

	cropCmd.Flags().StringVarP(&cropFile, "file", "f", "", "Path to profile image [required]")
	cropCmd.Flags().StringVarP(&cropOutput, "output", "o", "", "Output file (default from config: profile_mod.png)")
	cropCmd.MarkFlagRequired("file")
}

func runCrop(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()

	grid, err := section.LoadFromFile(cropFile)
	if err != nil {
		fmt.Fprintf(out, "Error loading image: %v\n", err)
		return
	}

	cropped, report, err := section.CropWithReport(grid)
	if err != nil {
		fmt.Fprintf(out, "Error cropping image: %v\n", err)
		return
	}
	logCrop(report, cropped)
	if cropped.Empty() {
		fmt.Fprintf(out, "Error cropping image: %v\n", section.ErrEmptyProfile)
		return
	}

	path := firstNonEmpty(cropOutput, cfg.Output.CroppedImage)
	if err := section.SaveToFile(cropped, path); err != nil {
		fmt.Fprintf(out, "Error saving cropped image: %v\n", err)
		return
	}

	fmt.Fprintf(out, "Original size: %d x %d px\n", grid.Width, grid.Height)
	fmt.Fprintf(out, "Cropped size:  %d x %d px\n", cropped.Width, cropped.Height)
	fmt.Fprintf(out, "Cropped image saved to: %s\n", path)
}
