package section

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// PixelScale calculates the physical length of one pixel edge
// from the actual profile width and the cropped width in pixels
func PixelScale(croppedWidth int, actualWidth float64) (float64, error) {
	if math.IsNaN(actualWidth) || math.IsInf(actualWidth, 0) || actualWidth <= 0 {
		return 0, &ValidationError{msg: fmt.Sprintf("actual width must be a positive number, got %v", actualWidth), kind: ErrInvalidInput}
	}
	if croppedWidth <= 0 {
		return 0, &ValidationError{msg: "cropped width is zero", kind: ErrEmptyProfile}
	}
	return actualWidth / float64(croppedWidth), nil
}

// PixelArea returns the physical area of one square pixel
func PixelArea(pixelScale float64) float64 {
	return pixelScale * pixelScale
}

// FirstMoments computes the profile area and centre of gravity in a single scan.
// Each pixel is treated as a unit cell centred at index+0.5.
func FirstMoments(g Grid, pixelArea float64) (area float64, cog Point, err error) {
	if err := g.Validate(); err != nil {
		return 0, Point{}, err
	}
	if g.Empty() {
		return 0, Point{}, &ValidationError{msg: "nothing to measure", kind: ErrEmptyProfile}
	}

	count := 0
	rowX := make([]float64, g.Height)
	rowY := make([]float64, g.Height)
	for y := 0; y < g.Height; y++ {
		var sx, sy float64
		for x := 0; x < g.Width; x++ {
			if g.At(x, y) {
				continue
			}
			count++
			sx += pixelArea * (float64(x) + 0.5)
			sy += pixelArea * (float64(y) + 0.5)
		}
		rowX[y], rowY[y] = sx, sy
	}
	if count == 0 {
		return 0, Point{}, &ValidationError{msg: "nothing to measure", kind: ErrEmptyProfile}
	}

	area = float64(count) * pixelArea
	cog = Point{
		X: floats.Sum(rowX) / area,
		Y: floats.Sum(rowY) / area,
	}
	return area, cog, nil
}

// SecondMoments computes the second moment of area about the centroidal
// horizontal (Ix) and vertical (Iy) axes.
//
// Every pixel adds its own moment about its centre (scale⁴/12) plus the
// parallel-axis shift to the profile centroid. A malformed grid yields zero.
func SecondMoments(g Grid, pixelArea float64, cog Point, pixelScale float64) (ix, iy float64) {
	if g.Validate() != nil {
		return 0, 0
	}
	own := pixelArea * pixelArea / 12
	half := pixelScale / 2

	rowIx := make([]float64, g.Height)
	rowIy := make([]float64, g.Height)
	for y := 0; y < g.Height; y++ {
		dy := (float64(y)-cog.Y)*pixelScale + half
		var sx, sy float64
		for x := 0; x < g.Width; x++ {
			if g.At(x, y) {
				continue
			}
			dx := (float64(x)-cog.X)*pixelScale + half
			sx += own + pixelArea*dy*dy
			sy += own + pixelArea*dx*dx
		}
		rowIx[y], rowIy[y] = sx, sy
	}
	return floats.Sum(rowIx), floats.Sum(rowIy)
}

// CentroidMM converts a pixel-space centroid to physical units
func CentroidMM(cog Point, pixelScale float64) Point {
	return Point{X: cog.X * pixelScale, Y: cog.Y * pixelScale}
}

// SectionModulus calculates the bending section modulus about each axis.
//
// The lever arm is the centroid's distance from the image origin edge
// (top row for Wx, left column for Wy), not the distance to the extreme
// fiber. Results stay comparable with the legacy calculator this way.
func SectionModulus(ix, iy float64, cog Point, pixelScale float64) (wx, wy float64, err error) {
	if cog.Y == 0 || cog.X == 0 || pixelScale == 0 {
		return 0, 0, &ValidationError{
			msg:  fmt.Sprintf("centroid (%g, %g) lies on the origin edge", cog.X, cog.Y),
			kind: ErrDegenerateCentroid,
		}
	}
	wx = ix / (cog.Y * pixelScale)
	wy = iy / (cog.X * pixelScale)
	return wx, wy, nil
}

// PolarMoment returns the polar moment of area about the centroid
func PolarMoment(ix, iy float64) float64 {
	return ix + iy
}
