package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/alexiusacademia/goprofile/internal/diagram"
	"github.com/alexiusacademia/goprofile/internal/section"
	"github.com/spf13/cobra"
)

var (
	calculateFile         string
	calculateWidth        float64
	calculateCropped      string
	calculateMarked       string
	calculateDiagram      string
	calculateShowASCII    bool
	calculateASCIIColumns int
)

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Calculate section properties of a profile image",
	Long: `Calculate area, centre of gravity, second moment of area and
bending section modulus of a profile image.

The image is converted to black and white, every all-white row and
column is cropped away, and the actual width you supply is mapped
onto the width of the cropped image.

Note: the section modulus uses the distance from the centroid to the
top edge (Wx) and left edge (Wy) of the cropped image.

Examples:
  goprofile calculate --file profile.png --width 120
  goprofile calculate -f l-angle.bmp -w 50 --ascii
  goprofile calculate -f tube.jpg -w 40 --diagram tube.svg`,
	Run: runCalculate,
}

func init() {
	rootCmd.AddCommand(calculateCmd)

	calculateCmd.Flags().StringVarP(&calculateFile, "file", "f", "", "Path to profile image (png, jpg, bmp, tiff, gif, webp) [required]")
	calculateCmd.Flags().Float64VarP(&calculateWidth, "width", "w", 0, "Actual width of the profile [required]")
	calculateCmd.MarkFlagRequired("file")
	calculateCmd.MarkFlagRequired("width")

	// Output files
	calculateCmd.Flags().StringVar(&calculateCropped, "cropped", "", "Cropped image output (default from config: profile_mod.png)")
	calculateCmd.Flags().StringVar(&calculateMarked, "marked", "", "Crosshair image output (default from config: profile_COG.png)")
	calculateCmd.Flags().StringVarP(&calculateDiagram, "diagram", "o", "", "Export profile diagram to file (png, svg, pdf)")

	// Preview options
	calculateCmd.Flags().BoolVar(&calculateShowASCII, "ascii", false, "Show ASCII preview and material distribution")
	calculateCmd.Flags().IntVar(&calculateASCIIColumns, "ascii-cols", 40, "Width of the ASCII preview in characters")
}

func runCalculate(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()

	grid, err := section.LoadFromFile(calculateFile)
	if err != nil {
		fmt.Fprintf(out, "Error loading image: %v\n", err)
		return
	}

	logger.Info("calculation started", "file", calculateFile, "width", grid.Width, "height", grid.Height)

	result, err := section.Analyze(grid, calculateWidth)
	if err != nil {
		fmt.Fprintf(out, "Error calculating profile: %v\n", err)
		return
	}
	logCrop(result.Crop, result.Cropped)

	croppedPath := firstNonEmpty(calculateCropped, cfg.Output.CroppedImage)
	if err := section.SaveToFile(result.Cropped, croppedPath); err != nil {
		fmt.Fprintf(out, "Error saving cropped image: %v\n", err)
		return
	}

	markedPath := firstNonEmpty(calculateMarked, cfg.Output.MarkedImage)
	marked := diagram.Annotate(result.Cropped, result.Centroid)
	if err := section.SaveImage(marked, markedPath); err != nil {
		fmt.Fprintf(out, "Error saving marked image: %v\n", err)
		return
	}

	printResult(cmd, result)

	if calculateShowASCII {
		fmt.Fprintln(out, diagram.DrawASCIIProfile(result.Cropped, result.Centroid, calculateASCIIColumns))
		fmt.Fprintln(out, diagram.DrawMaterialDistribution(result.Cropped, result.PixelScale))
	}

	// Export diagram if requested
	if diagramPath := firstNonEmpty(calculateDiagram, cfg.Output.Diagram); diagramPath != "" {
		written, err := diagram.ExportProfileDiagram(diagram.ProfileDiagramData{
			Grid:       result.Cropped,
			PixelScale: result.PixelScale,
			Centroid:   result.Centroid,
			Units:      cfg.Units,
		}, diagramPath)
		if err != nil {
			fmt.Fprintf(out, "Error exporting diagram: %v\n", err)
		} else {
			fmt.Fprintf(out, "Diagram exported to: %s\n", written)
		}
	}

	fmt.Fprintf(out, "Cropped image saved to: %s\n", croppedPath)
	fmt.Fprintf(out, "Marked image saved to: %s\n", markedPath)
	logger.Info("calculation ended")
}

func printResult(cmd *cobra.Command, r *section.Result) {
	out := cmd.OutOrStdout()
	u := cfg.Units

	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "               PROFILE SECTION PROPERTIES")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "IMAGE:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Original size:\t%d x %d px\n", r.Crop.OriginalWidth, r.Crop.OriginalHeight)
	fmt.Fprintf(w, "  Cropped size:\t%d x %d px\n", r.Cropped.Width, r.Cropped.Height)
	fmt.Fprintf(w, "  Pixel length:\t%.6g %s\n", r.PixelScale, u)
	fmt.Fprintf(w, "  Pixel area:\t%.6g %s²\n", r.PixelArea, u)
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintln(out, "SECTION GEOMETRY:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Width:\t%.4f %s\n", r.Width, u)
	fmt.Fprintf(w, "  Height:\t%.4f %s\n", r.Height, u)
	fmt.Fprintf(w, "  Area (A):\t%.4f %s²\n", r.Area, u)
	fmt.Fprintf(w, "  Centre of gravity:\tx=%.4f, y=%.4f px\n", r.Centroid.X, r.Centroid.Y)
	fmt.Fprintf(w, "  Centre of gravity:\tx=%.4f, y=%.4f %s\n", r.CentroidMM.X, r.CentroidMM.Y, u)
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintln(out, "SECOND MOMENT OF AREA:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Ix:\t%.4f %s⁴\n", r.Ix, u)
	fmt.Fprintf(w, "  Iy:\t%.4f %s⁴\n", r.Iy, u)
	fmt.Fprintf(w, "  Polar (Ip = Ix + Iy):\t%.4f %s⁴\n", r.Polar, u)
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprint(out, diagram.DrawSummaryBox("SECTION MODULUS (BENDING)", []string{
		fmt.Sprintf("Wx = %.4f %s³", r.Wx, u),
		fmt.Sprintf("Wy = %.4f %s³", r.Wy, u),
	}))
	fmt.Fprintln(out)
}

func logCrop(report section.CropReport, cropped section.Grid) {
	logger.Debug("cropping image", "width", report.OriginalWidth, "height", report.OriginalHeight)
	for _, y := range report.RemovedRows() {
		logger.Debug("row deleted", "row", y)
	}
	for _, x := range report.RemovedCols() {
		logger.Debug("column deleted", "column", x)
	}
	logger.Debug("cropping ended", "width", cropped.Width, "height", cropped.Height)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
