package analyzer

import (
	"fmt"
	"image"
	"math"
	"math/bits"

	"github.com/leandrobosaipo/elroi-vision/pkg/models"
)

const (
	lbpRadius = 3
	lbpPoints = 8 * lbpRadius
)

// TextureAnalyzer classifies surface complexity from a uniform local-binary-
// pattern histogram, with a gradient-variance fallback when the image is too
// small for the circular neighborhood.
type TextureAnalyzer struct {
	method models.TextureMethod
}

func NewTextureAnalyzer(method models.TextureMethod) *TextureAnalyzer {
	if method == "" {
		method = models.TextureMethodLBP
	}
	return &TextureAnalyzer{method: method}
}

// AnalyzeTexture produces the entropy/variance texture report.
func (a *TextureAnalyzer) AnalyzeTexture(img image.Image) (models.TextureReport, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width < 3 || height < 3 {
		return models.TextureReport{}, fmt.Errorf("image too small for texture analysis: %dx%d", width, height)
	}

	m := grayMatrix(grayscale(img))
	if a.method == models.TextureMethodLBP && width > 2*lbpRadius && height > 2*lbpRadius {
		return lbpTexture(m), nil
	}
	return gradientTexture(m), nil
}

// lbpTexture builds the uniform LBP histogram over the image interior, then
// derives entropy and pattern variance tiers.
func lbpTexture(m [][]float64) models.TextureReport {
	height, width := len(m), len(m[0])

	// Sample offsets around the circle of radius lbpRadius.
	offX := make([]float64, lbpPoints)
	offY := make([]float64, lbpPoints)
	for p := 0; p < lbpPoints; p++ {
		angle := 2 * math.Pi * float64(p) / lbpPoints
		offX[p] = lbpRadius * math.Cos(angle)
		offY[p] = -lbpRadius * math.Sin(angle)
	}

	hist := make([]float64, lbpPoints+2)
	labels := make([][]float64, height-2*lbpRadius)
	for y := lbpRadius; y < height-lbpRadius; y++ {
		row := make([]float64, width-2*lbpRadius)
		for x := lbpRadius; x < width-lbpRadius; x++ {
			center := m[y][x]
			var pattern uint32
			for p := 0; p < lbpPoints; p++ {
				if bilinearSample(m, float64(x)+offX[p], float64(y)+offY[p]) >= center {
					pattern |= 1 << uint(p)
				}
			}
			label := uniformLabel(pattern)
			row[x-lbpRadius] = float64(label)
			hist[label]++
		}
		labels[y-lbpRadius] = row
	}

	var total float64
	for _, c := range hist {
		total += c
	}
	var entropy float64
	for _, c := range hist {
		p := c / (total + 1e-7)
		entropy -= p * math.Log(p+1e-7)
	}
	entropy = roundTo(entropy, 3)
	variance := roundTo(populationVariance(labels), 2)

	return models.TextureReport{
		Type:     textureType(entropy),
		Entropy:  &entropy,
		Variance: variance,
		Tactile:  tactileSensation(variance),
		Method:   models.TextureMethodLBP,
	}
}

// gradientTexture is the reduced fallback: Sobel gradient-magnitude variance
// with a three-tier classification and no entropy value.
func gradientTexture(m [][]float64) models.TextureReport {
	height, width := len(m), len(m[0])

	grad := make([][]float64, height-2)
	for y := 1; y < height-1; y++ {
		row := make([]float64, width-2)
		for x := 1; x < width-1; x++ {
			gx := m[y-1][x+1] + 2*m[y][x+1] + m[y+1][x+1] -
				m[y-1][x-1] - 2*m[y][x-1] - m[y+1][x-1]
			gy := m[y+1][x-1] + 2*m[y+1][x] + m[y+1][x+1] -
				m[y-1][x-1] - 2*m[y-1][x] - m[y-1][x+1]
			row[x-1] = math.Sqrt(gx*gx + gy*gy)
		}
		grad[y-1] = row
	}

	variance := roundTo(populationVariance(grad), 2)

	// The fallback collapses to three tiers with no muito_lisa band.
	var texType models.TextureType
	var tactile models.TactileSensation
	switch {
	case variance > 500:
		texType, tactile = models.TextureComplex, models.TactileRough
	case variance > 200:
		texType, tactile = models.TextureModerate, models.TactileTextured
	default:
		texType, tactile = models.TextureSimple, models.TactileSmooth
	}

	return models.TextureReport{
		Type:     texType,
		Variance: variance,
		Tactile:  tactile,
		Method:   models.TextureMethodGradient,
	}
}

// bilinearSample interpolates the grid at fractional coordinates, clamping
// to the border.
func bilinearSample(m [][]float64, x, y float64) float64 {
	height, width := len(m), len(m[0])

	x0 := clampInt(int(math.Floor(x)), 0, width-1)
	y0 := clampInt(int(math.Floor(y)), 0, height-1)
	x1 := clampInt(x0+1, 0, width-1)
	y1 := clampInt(y0+1, 0, height-1)

	fx := x - math.Floor(x)
	fy := y - math.Floor(y)

	top := m[y0][x0]*(1-fx) + m[y0][x1]*fx
	bottom := m[y1][x0]*(1-fx) + m[y1][x1]*fx
	return top*(1-fy) + bottom*fy
}

// uniformLabel maps a circular pattern to its uniform-LBP bin: patterns with
// at most two 0/1 transitions are labeled by their popcount, all others share
// the miscellaneous bin lbpPoints+1.
func uniformLabel(pattern uint32) int {
	transitions := bits.OnesCount32((pattern ^ rotateCircular(pattern)) & (1<<lbpPoints - 1))
	if transitions <= 2 {
		return bits.OnesCount32(pattern)
	}
	return lbpPoints + 1
}

// rotateCircular rotates the lbpPoints-bit pattern by one position.
func rotateCircular(pattern uint32) uint32 {
	mask := uint32(1<<lbpPoints - 1)
	return ((pattern << 1) | (pattern >> (lbpPoints - 1))) & mask
}

func textureType(entropy float64) models.TextureType {
	switch {
	case entropy > 4.0:
		return models.TextureComplex
	case entropy > 3.0:
		return models.TextureModerate
	default:
		return models.TextureSimple
	}
}

func tactileSensation(variance float64) models.TactileSensation {
	switch {
	case variance > 500:
		return models.TactileRough
	case variance > 200:
		return models.TactileTextured
	case variance > 50:
		return models.TactileSmooth
	default:
		return models.TactileVerySmooth
	}
}
