package section

import (
	"errors"
	"image"
	"image/color"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// gridFromStrings builds a grid where '#' is foreground and anything else background
func gridFromStrings(t *testing.T, lines ...string) Grid {
	t.Helper()
	rows := make([][]bool, len(lines))
	for y, line := range lines {
		rows[y] = make([]bool, len(line))
		for x, ch := range line {
			rows[y][x] = ch != '#'
		}
	}
	g, err := FromRows(rows)
	require.NoError(t, err)
	return g
}

func randomGrid(r *rand.Rand, w, h int, density float64) Grid {
	g := NewGrid(w, h, true)
	for i := range g.Pix {
		g.Pix[i] = r.Float64() >= density
	}
	return g
}

func TestFromRows_Ragged(t *testing.T) {
	_, err := FromRows([][]bool{{true, true}, {true}})
	require.ErrorIs(t, err, ErrInvalidInput)

	// An empty first row must not hide longer rows after it
	_, err = FromRows([][]bool{{}, {true, false}})
	require.ErrorIs(t, err, ErrInvalidInput)

	g, err := FromRows([][]bool{{}, {}})
	require.NoError(t, err)
	require.True(t, g.Empty())
}

func TestGridValidate(t *testing.T) {
	require.NoError(t, Grid{}.Validate())
	require.NoError(t, NewGrid(3, 2, true).Validate())
	require.ErrorIs(t, Grid{Width: 2, Height: 2}.Validate(), ErrInvalidInput)
	require.ErrorIs(t, Grid{Width: 2, Height: 2, Pix: make([]bool, 3)}.Validate(), ErrInvalidInput)
	require.ErrorIs(t, Grid{Width: -1, Height: 0}.Validate(), ErrInvalidInput)
}

func TestCrop_MalformedGrid(t *testing.T) {
	bad := Grid{Width: 2, Height: 2}

	require.NotPanics(t, func() {
		_, _, err := CropWithReport(bad)
		require.ErrorIs(t, err, ErrInvalidInput)
		require.True(t, Crop(bad).Empty())
	})

	_, err := Analyze(bad, 10)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = FirstMoments(bad, 1)
	require.ErrorIs(t, err, ErrInvalidInput)

	ix, iy := SecondMoments(bad, 1, Point{X: 1, Y: 1}, 1)
	require.Zero(t, ix)
	require.Zero(t, iy)
}

func TestCrop_AllBackground(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {5, 5}, {7, 3}, {2, 9}} {
		out := Crop(NewGrid(size[0], size[1], true))
		require.True(t, out.Empty())
		require.Equal(t, 0, out.Height)
	}
}

func TestCrop_CenterPixel(t *testing.T) {
	g := gridFromStrings(t,
		"...",
		".#.",
		"...",
	)
	out, report, err := CropWithReport(g)
	require.NoError(t, err)
	require.Equal(t, 1, out.Width)
	require.Equal(t, 1, out.Height)
	require.False(t, out.At(0, 0))
	require.Equal(t, []int{0, 2}, report.RemovedRows())
	require.Equal(t, []int{0, 2}, report.RemovedCols())
}

func TestCrop_RemovesInteriorBlankLines(t *testing.T) {
	g := gridFromStrings(t,
		"......",
		".#..#.",
		"......",
		".####.",
	)
	out := Crop(g)
	want := gridFromStrings(t,
		"#..#",
		"####",
	)
	require.True(t, want.Equal(out), "got %+v", out)
}

func TestCrop_DoesNotMutateInput(t *testing.T) {
	g := gridFromStrings(t,
		"....",
		".##.",
		"....",
	)
	before := g.Clone()
	Crop(g)
	require.True(t, before.Equal(g))
}

func TestCrop_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		g := randomGrid(r, 1+r.Intn(12), 1+r.Intn(12), r.Float64()*0.3)
		out := Crop(g)

		// Idempotent
		require.True(t, out.Equal(Crop(out)))

		// No foreground pixel is lost
		require.Equal(t, g.ForegroundCount(), out.ForegroundCount())

		if out.Empty() {
			require.Zero(t, g.ForegroundCount())
			continue
		}

		// Border rows and columns are tight
		require.False(t, rowIsBackground(out, 0))
		require.False(t, rowIsBackground(out, out.Height-1))
		require.False(t, colIsBackground(out, 0))
		require.False(t, colIsBackground(out, out.Width-1))
	}
}

func colIsBackground(g Grid, x int) bool {
	for y := 0; y < g.Height; y++ {
		if !g.At(x, y) {
			return false
		}
	}
	return true
}

func TestPixelScale(t *testing.T) {
	s, err := PixelScale(10, 10)
	require.NoError(t, err)
	require.Equal(t, 1.0, s)
	require.Equal(t, 1.0, PixelArea(s))

	s, err = PixelScale(4, 10)
	require.NoError(t, err)
	require.InDelta(t, 2.5, s, 1e-12)
	require.InDelta(t, 6.25, PixelArea(s), 1e-12)

	_, err = PixelScale(0, 10)
	require.ErrorIs(t, err, ErrEmptyProfile)

	_, err = PixelScale(10, 0)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = PixelScale(10, -3)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnalyze_FullSquare(t *testing.T) {
	res, err := Analyze(NewGrid(10, 10, false), 10)
	require.NoError(t, err)
	require.Equal(t, 1.0, res.PixelScale)
	require.Equal(t, 1.0, res.PixelArea)
	require.InDelta(t, 100, res.Area, 1e-9)
	require.InDelta(t, 5.0, res.Centroid.X, 1e-9)
	require.InDelta(t, 5.0, res.Centroid.Y, 1e-9)
	require.InDelta(t, 10, res.Width, 1e-9)
	require.InDelta(t, 10, res.Height, 1e-9)

	// b·h³/12 for a 10x10 square
	require.InDelta(t, 10000.0/12, res.Ix, 1e-6)
	require.InDelta(t, 10000.0/12, res.Iy, 1e-6)
	require.InDelta(t, res.Ix/5, res.Wx, 1e-9)
	require.InDelta(t, res.Ix+res.Iy, res.Polar, 1e-9)
}

func TestAnalyze_SinglePixel(t *testing.T) {
	g := gridFromStrings(t,
		"...",
		".#.",
		"...",
	)
	res, err := Analyze(g, 1)
	require.NoError(t, err)
	require.Equal(t, 1, res.Cropped.Width)
	require.Equal(t, 1, res.Cropped.Height)
	require.Equal(t, 1.0, res.PixelArea)
	require.InDelta(t, 1, res.Area, 1e-12)
	require.InDelta(t, 0.5, res.Centroid.X, 1e-12)
	require.InDelta(t, 0.5, res.Centroid.Y, 1e-12)
	require.InDelta(t, 1.0/12, res.Ix, 1e-12)
}

func TestAnalyze_Blank(t *testing.T) {
	_, err := Analyze(NewGrid(5, 5, true), 10)
	require.ErrorIs(t, err, ErrEmptyProfile)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
}

func TestAnalyze_InvalidWidth(t *testing.T) {
	_, err := Analyze(NewGrid(5, 5, false), 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestArea_ScalesWithPixelArea(t *testing.T) {
	g := gridFromStrings(t,
		"####",
		"#..#",
		"####",
	)
	a, err := Analyze(g, 8)
	require.NoError(t, err)
	b, err := Analyze(g, 16)
	require.NoError(t, err)
	require.InDelta(t, 4*a.Area, b.Area, 1e-9)
	require.InDelta(t, a.Centroid.X, b.Centroid.X, 1e-12)
	require.InDelta(t, 2*a.CentroidMM.X, b.CentroidMM.X, 1e-9)
	require.InDelta(t, 16*a.Ix, b.Ix, 1e-6)
}

func TestFirstMoments_SymmetricShape(t *testing.T) {
	g := gridFromStrings(t,
		".###.",
		"#####",
		"#####",
		".###.",
	)
	area, cog, err := FirstMoments(g, 0.25)
	require.NoError(t, err)
	require.InDelta(t, 16*0.25, area, 1e-12)
	require.InDelta(t, 2.5, cog.X, 1e-12)
	require.InDelta(t, 2.0, cog.Y, 1e-12)
}

func TestFirstMoments_Empty(t *testing.T) {
	_, _, err := FirstMoments(Grid{}, 1)
	require.ErrorIs(t, err, ErrEmptyProfile)
}

func TestSecondMoments_Rectangle(t *testing.T) {
	// 6 px wide, 3 px high, 0.5 units per pixel: B=3, H=1.5
	g := NewGrid(6, 3, false)
	scale := 0.5
	pa := PixelArea(scale)
	_, cog, err := FirstMoments(g, pa)
	require.NoError(t, err)

	ix, iy := SecondMoments(g, pa, cog, scale)
	require.InDelta(t, 3*1.5*1.5*1.5/12, ix, 1e-12)
	require.InDelta(t, 1.5*3*3*3/12, iy, 1e-12)
}

func TestSecondMoments_MatchesDirectSum(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	g := Crop(randomGrid(r, 40, 30, 0.6))
	scale := 0.37
	pa := PixelArea(scale)
	_, cog, err := FirstMoments(g, pa)
	require.NoError(t, err)

	var wantX, wantY float64
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.At(x, y) {
				continue
			}
			wantX += (1.0/12)*pa*pa + pa*((float64(y)-cog.Y)*scale+scale/2)*((float64(y)-cog.Y)*scale+scale/2)
			wantY += (1.0/12)*pa*pa + pa*((float64(x)-cog.X)*scale+scale/2)*((float64(x)-cog.X)*scale+scale/2)
		}
	}

	ix, iy := SecondMoments(g, pa, cog, scale)
	require.InEpsilon(t, wantX, ix, 1e-9)
	require.InEpsilon(t, wantY, iy, 1e-9)
}

func TestSectionModulus(t *testing.T) {
	wx, wy, err := SectionModulus(100, 50, Point{X: 2, Y: 4}, 0.5)
	require.NoError(t, err)
	require.InDelta(t, 50, wx, 1e-12)
	require.InDelta(t, 50, wy, 1e-12)

	_, _, err = SectionModulus(100, 50, Point{X: 0, Y: 4}, 0.5)
	require.ErrorIs(t, err, ErrDegenerateCentroid)

	_, _, err = SectionModulus(100, 50, Point{X: 2, Y: 0}, 0.5)
	require.ErrorIs(t, err, ErrDegenerateCentroid)
}

func TestCentroidMM(t *testing.T) {
	p := CentroidMM(Point{X: 3, Y: 4.5}, 2)
	require.Equal(t, Point{X: 6, Y: 9}, p)
}

func TestFromImage_Threshold(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, color.RGBA{R: 0, G: 0, B: 0, A: 255})
	img.Set(1, 0, color.RGBA{R: 200, G: 200, B: 200, A: 255})
	img.Set(2, 0, color.RGBA{A: 0})

	g := FromImage(img)
	require.Equal(t, 3, g.Width)
	require.False(t, g.At(0, 0))
	require.True(t, g.At(1, 0))
	require.True(t, g.At(2, 0))
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	g := gridFromStrings(t,
		"#...",
		".##.",
		"...#",
	)
	path := filepath.Join(t.TempDir(), "out", "profile.png")
	require.NoError(t, SaveToFile(g, path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	require.True(t, g.Equal(loaded))
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.png"))
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = LoadFromFile("")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSaveToFile_Empty(t *testing.T) {
	err := SaveToFile(Grid{}, filepath.Join(t.TempDir(), "x.png"))
	require.ErrorIs(t, err, ErrEmptyProfile)
}
