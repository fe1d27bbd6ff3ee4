package section

// CropReport records which rows and columns of the original grid survived cropping
type CropReport struct {
	OriginalWidth  int
	OriginalHeight int

	// Indices into the original grid, ascending
	KeptRows []int
	KeptCols []int
}

// RemovedRows returns the indices of the original rows that were dropped
func (r CropReport) RemovedRows() []int {
	return complement(r.KeptRows, r.OriginalHeight)
}

// RemovedCols returns the indices of the original columns that were dropped
func (r CropReport) RemovedCols() []int {
	return complement(r.KeptCols, r.OriginalWidth)
}

// Crop removes every all-background row, then every all-background column,
// and returns the result as a new grid. The input is not modified.
// A malformed grid (see Grid.Validate) crops to an empty grid.
func Crop(g Grid) Grid {
	out, _, _ := CropWithReport(g)
	return out
}

// CropWithReport is Crop that also reports the retained row and column indices.
//
// Rows are tested against the original grid first. Columns are then tested
// only over the kept rows; a dropped row is all background so it can never
// make a column non-empty, which makes this equal to testing the row-cropped grid.
func CropWithReport(g Grid) (Grid, CropReport, error) {
	report := CropReport{OriginalWidth: g.Width, OriginalHeight: g.Height}
	if err := g.Validate(); err != nil {
		return Grid{}, report, err
	}
	if g.Empty() {
		return Grid{}, report, nil
	}

	for y := 0; y < g.Height; y++ {
		if !rowIsBackground(g, y) {
			report.KeptRows = append(report.KeptRows, y)
		}
	}
	if len(report.KeptRows) == 0 {
		return Grid{}, report, nil
	}

	for x := 0; x < g.Width; x++ {
		for _, y := range report.KeptRows {
			if !g.At(x, y) {
				report.KeptCols = append(report.KeptCols, x)
				break
			}
		}
	}

	out := NewGrid(len(report.KeptCols), len(report.KeptRows), true)
	for ny, y := range report.KeptRows {
		for nx, x := range report.KeptCols {
			out.Set(nx, ny, g.At(x, y))
		}
	}
	return out, report, nil
}

func rowIsBackground(g Grid, y int) bool {
	for _, bg := range g.Pix[y*g.Width : (y+1)*g.Width] {
		if !bg {
			return false
		}
	}
	return true
}

func complement(kept []int, n int) []int {
	var removed []int
	k := 0
	for i := 0; i < n; i++ {
		if k < len(kept) && kept[k] == i {
			k++
			continue
		}
		removed = append(removed, i)
	}
	return removed
}
