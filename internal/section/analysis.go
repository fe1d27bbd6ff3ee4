package section

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	// Registers the WebP decoder with image.Decode, which imaging.Open uses.
	_ "golang.org/x/image/webp"
)

// Threshold is the luminance at or above which a pixel counts as background
const Threshold = 128

// LoadFromFile decodes an image and binarizes it into a grid
func LoadFromFile(path string) (Grid, error) {
	if path == "" {
		return Grid{}, &ValidationError{msg: "no image file given", kind: ErrInvalidInput}
	}
	img, err := imaging.Open(path)
	if err != nil {
		return Grid{}, &ValidationError{msg: fmt.Sprintf("cannot read image %s: %v", path, err), kind: ErrInvalidInput}
	}
	return FromImage(img), nil
}

// FromImage thresholds an image into a grid
func FromImage(img image.Image) Grid {
	gray := imaging.Grayscale(img)
	b := gray.Bounds()
	g := NewGrid(b.Dx(), b.Dy(), true)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			// Grayscale leaves R=G=B, so one channel is the luminance.
			// Fully transparent pixels count as background.
			c := gray.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			g.Set(x, y, c.A == 0 || c.R >= Threshold)
		}
	}
	return g
}

// ToImage converts a grid to a black and white image
func ToImage(g Grid) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.At(x, y) {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

// SaveToFile writes the grid as an image; the format follows the file extension
func SaveToFile(g Grid, path string) error {
	if g.Empty() {
		return &ValidationError{msg: "refusing to save an empty image", kind: ErrEmptyProfile}
	}
	return SaveImage(ToImage(g), path)
}

// SaveImage writes any image, creating the parent directory if needed
func SaveImage(img image.Image, path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("error saving %s: %w", path, err)
	}
	return nil
}

// Analyze crops the grid and calculates all geometric properties of the profile.
// actualWidth is the physical width of the cropped profile.
func Analyze(g Grid, actualWidth float64) (*Result, error) {
	result := &Result{}
	var err error
	result.Cropped, result.Crop, err = CropWithReport(g)
	if err != nil {
		return nil, err
	}
	if result.Cropped.Empty() {
		return nil, &ValidationError{msg: "cropping removed the whole image", kind: ErrEmptyProfile}
	}

	scale, err := PixelScale(result.Cropped.Width, actualWidth)
	if err != nil {
		return nil, err
	}
	result.PixelScale = scale
	result.PixelArea = PixelArea(scale)
	result.Width = float64(result.Cropped.Width) * scale
	result.Height = float64(result.Cropped.Height) * scale

	// Area and first moments share one scan
	result.Area, result.Centroid, err = FirstMoments(result.Cropped, result.PixelArea)
	if err != nil {
		return nil, err
	}
	result.CentroidMM = CentroidMM(result.Centroid, scale)

	// Second moments need the centroid, so they get their own scan
	result.Ix, result.Iy = SecondMoments(result.Cropped, result.PixelArea, result.Centroid, scale)

	result.Wx, result.Wy, err = SectionModulus(result.Ix, result.Iy, result.Centroid, scale)
	if err != nil {
		return nil, err
	}
	result.Polar = PolarMoment(result.Ix, result.Iy)

	return result, nil
}
