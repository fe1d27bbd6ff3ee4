package diagram

import (
	"image"
	"image/color"
	"math"

	"github.com/alexiusacademia/goprofile/internal/section"
)

// LargeImageSize is the dimension above which the crosshair is drawn five pixels thick
const LargeImageSize = 3000

var (
	markerColor     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	foregroundColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	backgroundColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// CrosshairHalfLengths returns the arm lengths of the centre of gravity marker
func CrosshairHalfLengths(width, height int) (int, int) {
	return max(2, width/15), max(2, height/15)
}

// Annotate returns an RGB copy of the grid with a red crosshair burned in
// at the floor of the centroid. Lines falling outside the grid are clipped.
func Annotate(g section.Grid, cog section.Point) *image.RGBA {
	if g.Validate() != nil {
		return image.NewRGBA(image.Rectangle{})
	}
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.At(x, y) {
				img.SetRGBA(x, y, backgroundColor)
			} else {
				img.SetRGBA(x, y, foregroundColor)
			}
		}
	}
	if g.Empty() {
		return img
	}

	cx := int(math.Floor(cog.X))
	cy := int(math.Floor(cog.Y))
	halfX, halfY := CrosshairHalfLengths(g.Width, g.Height)

	offsets := []int{0}
	if max(g.Width, g.Height) > LargeImageSize {
		offsets = append(offsets, 1, -1, 2, -2)
	}
	for _, d := range offsets {
		drawVertical(img, cx+d, cy-halfY, cy+halfY)
		drawHorizontal(img, cy+d, cx-halfX, cx+halfX)
	}
	return img
}

// drawVertical paints column x from row y0 to y1 inclusive
func drawVertical(img *image.RGBA, x, y0, y1 int) {
	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X {
		return
	}
	for y := max(y0, b.Min.Y); y <= min(y1, b.Max.Y-1); y++ {
		img.SetRGBA(x, y, markerColor)
	}
}

// drawHorizontal paints row y from column x0 to x1 inclusive
func drawHorizontal(img *image.RGBA, y, x0, x1 int) {
	b := img.Bounds()
	if y < b.Min.Y || y >= b.Max.Y {
		return
	}
	for x := max(x0, b.Min.X); x <= min(x1, b.Max.X-1); x++ {
		img.SetRGBA(x, y, markerColor)
	}
}
