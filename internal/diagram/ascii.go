package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/goprofile/internal/section"
	"github.com/guptarohit/asciigraph"
)

// DrawASCIIProfile creates a downsampled text preview of the profile with
// the centre of gravity marked by '+'. cols is the preview width in characters.
func DrawASCIIProfile(g section.Grid, cog section.Point, cols int) string {
	var sb strings.Builder
	if g.Empty() || g.Validate() != nil {
		return "  (empty profile)\n"
	}
	if cols <= 0 {
		cols = 40
	}

	// Terminal cells are roughly twice as tall as they are wide
	cellW := max(1, int(math.Ceil(float64(g.Width)/float64(cols))))
	cellH := cellW * 2
	widthChars := (g.Width + cellW - 1) / cellW
	heightChars := (g.Height + cellH - 1) / cellH

	markX := int(math.Floor(cog.X)) / cellW
	markY := int(math.Floor(cog.Y)) / cellH

	sb.WriteString("\n")
	sb.WriteString("  PROFILE\n")
	sb.WriteString("  ───────\n")
	sb.WriteString(fmt.Sprintf("  ┌%s┐\n", strings.Repeat("─", widthChars)))
	for cy := 0; cy < heightChars; cy++ {
		line := make([]rune, widthChars)
		for cx := 0; cx < widthChars; cx++ {
			line[cx] = ' '
			if blockHasMaterial(g, cx*cellW, cy*cellH, cellW, cellH) {
				line[cx] = '█'
			}
		}
		if cy == markY && markX >= 0 && markX < widthChars {
			line[markX] = '+'
		}
		sb.WriteString(fmt.Sprintf("  │%s│", string(line)))
		if cy == markY {
			sb.WriteString(" ◄─ C.G.")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("  └%s┘\n", strings.Repeat("─", widthChars)))

	// Legend
	sb.WriteString("\n")
	sb.WriteString("  Legend:\n")
	sb.WriteString("  ███ = Profile material\n")
	sb.WriteString(fmt.Sprintf("  +   = Centre of gravity at x=%.2f px, y=%.2f px\n", cog.X, cog.Y))
	sb.WriteString(fmt.Sprintf("  1 character = %d x %d px\n", cellW, cellH))

	return sb.String()
}

func blockHasMaterial(g section.Grid, x0, y0, w, h int) bool {
	for y := y0; y < min(y0+h, g.Height); y++ {
		for x := x0; x < min(x0+w, g.Width); x++ {
			if !g.At(x, y) {
				return true
			}
		}
	}
	return false
}

// RowMaterial returns the number of profile pixels in each row, top to bottom
func RowMaterial(g section.Grid) []float64 {
	counts := make([]float64, g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if !g.At(x, y) {
				counts[y]++
			}
		}
	}
	return counts
}

// DrawMaterialDistribution plots the material width of each row against height
func DrawMaterialDistribution(g section.Grid, pixelScale float64) string {
	if g.Empty() || g.Validate() != nil {
		return ""
	}
	series := RowMaterial(g)
	for i := range series {
		series[i] *= pixelScale
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString("  MATERIAL WIDTH PER ROW (top → bottom)\n")
	sb.WriteString("  ─────────────────────────────────────\n\n")
	sb.WriteString(asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Offset(4),
		asciigraph.LowerBound(0),
		asciigraph.Caption("width of material at each row"),
	))
	sb.WriteString("\n")
	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-pads s to n runes; %-*s counts bytes, which breaks on ² and ⁴
func pad(s string, n int) string {
	if k := len([]rune(s)); k < n {
		return s + strings.Repeat(" ", n-k)
	}
	return s
}
