package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/alexiusacademia/goprofile/internal/section"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// MaxPlotCells caps the heat map resolution along each axis
const MaxPlotCells = 400

// ProfileDiagramData holds data for drawing a profile diagram
type ProfileDiagramData struct {
	Grid       section.Grid  // cropped profile
	PixelScale float64       // physical length per pixel
	Centroid   section.Point // px, from the top-left corner
	Units      string        // label only, e.g. "mm"
}

// maskGrid exposes a profile grid to plotter.HeatMap in physical units.
// Each cell covers step x step pixels; row 0 is the bottom of the image so Y increases upward.
type maskGrid struct {
	g     section.Grid
	step  int
	scale float64
}

func newMaskGrid(g section.Grid, scale float64) maskGrid {
	step := 1
	for (g.Width+step-1)/step > MaxPlotCells || (g.Height+step-1)/step > MaxPlotCells {
		step++
	}
	return maskGrid{g: g, step: step, scale: scale}
}

func (m maskGrid) Dims() (c, r int) {
	return (m.g.Width + m.step - 1) / m.step, (m.g.Height + m.step - 1) / m.step
}

// Z is 0 where the cell holds any material and 1 where it is all background
func (m maskGrid) Z(c, r int) float64 {
	x0 := c * m.step
	y1 := m.g.Height - r*m.step
	y0 := max(0, y1-m.step)
	if blockHasMaterial(m.g, x0, y0, m.step, y1-y0) {
		return 0
	}
	return 1
}

func (m maskGrid) X(c int) float64 {
	return (float64(c*m.step) + float64(m.step)/2) * m.scale
}

func (m maskGrid) Y(r int) float64 {
	return (float64(r*m.step) + float64(m.step)/2) * m.scale
}

// maskPalette maps material to black and background to a light grey
type maskPalette struct{}

func (maskPalette) Colors() []color.Color {
	return []color.Color{color.Black, color.Gray{Y: 235}}
}

// DiagramPath returns the file ExportProfileDiagram writes for filename.
// Unknown or missing extensions get ".png" appended.
func DiagramPath(filename string) string {
	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf", ".jpg", ".jpeg", ".tif", ".tiff", ".eps":
		return filename
	default:
		return filename + ".png"
	}
}

// ExportProfileDiagram exports the profile with its centroidal axes to an image file
// and returns the path actually written
func ExportProfileDiagram(data ProfileDiagramData, filename string) (string, error) {
	if data.Grid.Empty() || data.Grid.Validate() != nil {
		return "", fmt.Errorf("cannot plot an empty profile")
	}
	units := data.Units
	if units == "" {
		units = "mm"
	}

	p := plot.New()
	p.Title.Text = "Profile Cross-Section"
	p.X.Label.Text = fmt.Sprintf("Width (%s)", units)
	p.Y.Label.Text = fmt.Sprintf("Height (%s)", units)

	width := float64(data.Grid.Width) * data.PixelScale
	height := float64(data.Grid.Height) * data.PixelScale

	hm := plotter.NewHeatMap(newMaskGrid(data.Grid, data.PixelScale), maskPalette{})
	hm.Min = 0
	hm.Max = 1
	p.Add(hm)

	// Plot Y points up, image rows point down
	cgX := data.Centroid.X * data.PixelScale
	cgY := height - data.Centroid.Y*data.PixelScale

	axes := []plotter.XYs{
		{{X: 0, Y: cgY}, {X: width, Y: cgY}},
		{{X: cgX, Y: 0}, {X: cgX, Y: height}},
	}
	for _, pts := range axes {
		line, err := plotter.NewLine(pts)
		if err != nil {
			return "", err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
		line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(line)
	}

	cg, err := plotter.NewScatter(plotter.XYs{{X: cgX, Y: cgY}})
	if err != nil {
		return "", err
	}
	cg.GlyphStyle.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	cg.GlyphStyle.Radius = vg.Points(5)
	cg.GlyphStyle.Shape = draw.CrossGlyph{}
	p.Add(cg)

	lbl, err := plotter.NewLabels(plotter.XYLabels{
		XYs: []plotter.XY{{X: cgX, Y: cgY}},
		Labels: []string{fmt.Sprintf(" C.G. (%.2f, %.2f) %s",
			data.Centroid.X*data.PixelScale, data.Centroid.Y*data.PixelScale, units)},
	})
	if err != nil {
		return "", err
	}
	lbl.TextStyle[0].Color = color.RGBA{R: 139, G: 0, B: 0, A: 255}
	p.Add(lbl)

	p.X.Min, p.X.Max = 0, width
	p.Y.Min, p.Y.Max = 0, height

	path := DiagramPath(filename)

	// Create directory if needed
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return "", err
	}
	return path, nil
}
