package analyzer

import (
	"fmt"
	"image"
	"math"

	"github.com/leandrobosaipo/elroi-vision/pkg/models"
)

// SymmetryAnalyzer scores bilateral symmetry by correlating each half of the
// grayscale image against the mirror of the opposite half.
type SymmetryAnalyzer struct{}

func NewSymmetryAnalyzer() *SymmetryAnalyzer {
	return &SymmetryAnalyzer{}
}

// AnalyzeSymmetry computes horizontal and vertical mirror correlations, their
// average and the derived tier and dominant axis.
func (a *SymmetryAnalyzer) AnalyzeSymmetry(img image.Image) (models.SymmetryReport, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width < 2 || height < 2 {
		return models.SymmetryReport{}, fmt.Errorf("image too small for symmetry analysis: %dx%d", width, height)
	}

	m := grayMatrix(grayscale(img))

	halfW := width / 2
	horizontal := mirrorCorrelation(halfW*height, func(i int) (float64, float64) {
		y, x := i/halfW, i%halfW
		return m[y][x], m[y][width-1-x]
	})

	halfH := height / 2
	vertical := mirrorCorrelation(halfH*width, func(i int) (float64, float64) {
		y, x := i/width, i%width
		return m[y][x], m[height-1-y][x]
	})

	horizontal = roundTo(horizontal, 3)
	vertical = roundTo(vertical, 3)
	score := roundTo((horizontal+vertical)/2, 3)

	return models.SymmetryReport{
		Level:              symmetryLevel(score),
		Score:              score,
		HorizontalSymmetry: horizontal,
		VerticalSymmetry:   vertical,
		DominantAxis:       dominantAxis(horizontal, vertical),
	}, nil
}

// mirrorCorrelation is the zero-mean normalized cross-correlation between two
// pixel sequences addressed by index. Degenerate flat halves score 1.0 when
// their means match and 0.0 otherwise.
func mirrorCorrelation(n int, at func(i int) (a, b float64)) float64 {
	if n == 0 {
		return 0
	}

	var sumA, sumB float64
	for i := 0; i < n; i++ {
		a, b := at(i)
		sumA += a
		sumB += b
	}
	meanA := sumA / float64(n)
	meanB := sumB / float64(n)

	var cov, varA, varB float64
	for i := 0; i < n; i++ {
		a, b := at(i)
		da, db := a-meanA, b-meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}

	if varA == 0 || varB == 0 {
		if varA == 0 && varB == 0 && meanA == meanB {
			return 1
		}
		return 0
	}
	return cov / math.Sqrt(varA*varB)
}

func symmetryLevel(score float64) models.SymmetryLevel {
	switch {
	case score > 0.85:
		return models.SymmetryVeryHigh
	case score > 0.70:
		return models.SymmetryHigh
	case score > 0.50:
		return models.SymmetryModerate
	default:
		return models.SymmetryLow
	}
}

func dominantAxis(horizontal, vertical float64) models.SymmetryAxis {
	switch {
	case horizontal > vertical+0.1:
		return models.AxisHorizontal
	case vertical > horizontal+0.1:
		return models.AxisVertical
	default:
		return models.AxisBoth
	}
}
