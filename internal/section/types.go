package section

import (
	"errors"
	"fmt"
)

// Grid is a binarized profile image stored row-major.
// A pixel value of true is background (white), false is profile material (black).
type Grid struct {
	Width  int
	Height int
	Pix    []bool
}

// NewGrid returns a width x height grid with every pixel set to fill
func NewGrid(width, height int, fill bool) Grid {
	if width <= 0 || height <= 0 {
		return Grid{}
	}
	pix := make([]bool, width*height)
	if fill {
		for i := range pix {
			pix[i] = true
		}
	}
	return Grid{Width: width, Height: height, Pix: pix}
}

// FromRows builds a grid from a slice of rows. All rows must have the same length.
func FromRows(rows [][]bool) (Grid, error) {
	if len(rows) == 0 {
		return Grid{}, nil
	}
	width := len(rows[0])
	for y, row := range rows {
		if len(row) != width {
			return Grid{}, &ValidationError{
				msg:  fmt.Sprintf("row %d has %d pixels, expected %d", y, len(row), width),
				kind: ErrInvalidInput,
			}
		}
	}
	if width == 0 {
		return Grid{}, nil
	}

	g := NewGrid(width, len(rows), false)
	for y, row := range rows {
		copy(g.Pix[y*width:], row)
	}
	return g, nil
}

// Validate checks that the pixel buffer matches the grid dimensions
func (g Grid) Validate() error {
	if g.Width < 0 || g.Height < 0 {
		return &ValidationError{msg: fmt.Sprintf("negative grid size %d x %d", g.Width, g.Height), kind: ErrInvalidInput}
	}
	if len(g.Pix) != g.Width*g.Height {
		return &ValidationError{
			msg:  fmt.Sprintf("grid is %d x %d but holds %d pixels", g.Width, g.Height, len(g.Pix)),
			kind: ErrInvalidInput,
		}
	}
	return nil
}

// At reports whether the pixel at column x, row y is background
func (g Grid) At(x, y int) bool {
	return g.Pix[y*g.Width+x]
}

// Set sets the pixel at column x, row y
func (g Grid) Set(x, y int, background bool) {
	g.Pix[y*g.Width+x] = background
}

// Empty reports whether the grid has no pixels at all
func (g Grid) Empty() bool {
	return g.Width == 0 || g.Height == 0
}

// ForegroundCount returns the number of profile pixels
func (g Grid) ForegroundCount() int {
	n := 0
	for _, bg := range g.Pix {
		if !bg {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid
func (g Grid) Clone() Grid {
	pix := make([]bool, len(g.Pix))
	copy(pix, g.Pix)
	return Grid{Width: g.Width, Height: g.Height, Pix: pix}
}

// Equal reports whether two grids have identical dimensions and pixels
func (g Grid) Equal(o Grid) bool {
	if g.Width != o.Width || g.Height != o.Height || len(g.Pix) != len(o.Pix) {
		return false
	}
	for i := range g.Pix {
		if g.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// Point represents a 2D coordinate.
// In pixel space a pixel at index i covers [i, i+1), so values are fractional.
type Point struct {
	X float64
	Y float64
}

// Result holds everything computed for one profile image
type Result struct {
	// Cropped profile and what was removed to get it
	Cropped Grid
	Crop    CropReport

	// Scale
	PixelScale float64 // physical length of one pixel edge
	PixelArea  float64 // PixelScale²

	// Overall dimensions of the cropped profile (physical units)
	Width  float64
	Height float64

	Area float64 // units²

	// Centre of gravity, measured from the top-left corner of the cropped image
	Centroid   Point // px
	CentroidMM Point // physical units

	// Second moment of area about the centroidal axes (units⁴)
	Ix float64
	Iy float64

	// Bending section modulus (units³)
	Wx float64
	Wy float64

	// Polar moment of area (units⁴)
	Polar float64
}

var (
	// ErrInvalidInput covers unreadable images and non-positive or non-numeric widths
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyProfile means cropping removed every pixel of the image
	ErrEmptyProfile = errors.New("empty profile: image has no foreground pixels")

	// ErrDegenerateCentroid means a centroid coordinate is zero and the section modulus is undefined
	ErrDegenerateCentroid = errors.New("degenerate centroid")
)

// ValidationError represents a profile validation error.
// It unwraps to one of the Err* sentinels.
type ValidationError struct {
	msg  string
	kind error
}

func (e *ValidationError) Error() string {
	if e.kind == nil {
		return e.msg
	}
	return e.kind.Error() + ": " + e.msg
}

func (e *ValidationError) Unwrap() error {
	return e.kind
}
