package analyzer

import (
	"fmt"
	"image"
	"math"

	"github.com/leandrobosaipo/elroi-vision/pkg/models"
)

// LightingAnalyzer measures luminance statistics on the CIE L* channel and
// estimates color temperature from the red-to-blue channel ratio.
type LightingAnalyzer struct {
	pool *WorkerPool
}

func NewLightingAnalyzer(pool *WorkerPool) *LightingAnalyzer {
	return &LightingAnalyzer{pool: pool}
}

// lightingAccum collects per-strip partial sums merged after the parallel
// pass.
type lightingAccum struct {
	lumSum   float64
	lumSqSum float64
	redSum   float64
	blueSum  float64
	count    int
}

// AnalyzeLighting computes mean and standard deviation of L* luminance
// (scaled to 0-255) and the channel-ratio temperature estimate. Rows are
// processed in horizontal strips across the pool workers.
func (a *LightingAnalyzer) AnalyzeLighting(img image.Image) (models.LightingReport, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return models.LightingReport{}, fmt.Errorf("image has no pixels")
	}

	strips := a.pool.Workers()
	if strips > height {
		strips = height
	}
	accums := make([]lightingAccum, strips)
	rowsPerStrip := (height + strips - 1) / strips

	jobs := make([]func(), 0, strips)
	for s := 0; s < strips; s++ {
		s := s
		yStart := bounds.Min.Y + s*rowsPerStrip
		yEnd := yStart + rowsPerStrip
		if yEnd > bounds.Max.Y {
			yEnd = bounds.Max.Y
		}
		jobs = append(jobs, func() {
			acc := &accums[s]
			for y := yStart; y < yEnd; y++ {
				for x := bounds.Min.X; x < bounds.Max.X; x++ {
					r, g, b, _ := img.At(x, y).RGBA()
					r8 := float64(r >> 8)
					g8 := float64(g >> 8)
					b8 := float64(b >> 8)

					lum := lightness(r8, g8, b8)
					acc.lumSum += lum
					acc.lumSqSum += lum * lum
					acc.redSum += r8
					acc.blueSum += b8
					acc.count++
				}
			}
		})
	}
	a.pool.RunBatch(jobs...)

	var total lightingAccum
	for _, acc := range accums {
		total.lumSum += acc.lumSum
		total.lumSqSum += acc.lumSqSum
		total.redSum += acc.redSum
		total.blueSum += acc.blueSum
		total.count += acc.count
	}

	n := float64(total.count)
	mean := total.lumSum / n
	variance := total.lumSqSum/n - mean*mean
	if variance < 0 {
		variance = 0
	}
	std := math.Sqrt(variance)

	temperature, kelvin := colorTemperature(total.redSum, total.blueSum)

	return models.LightingReport{
		Level:             lightingLevel(mean),
		AverageLuminance:  roundTo(mean, 1),
		LuminanceStd:      roundTo(std, 1),
		Contrast:          contrastLevel(std),
		ColorTemperature:  temperature,
		TemperatureKelvin: kelvin,
	}, nil
}

// lightness converts an sRGB pixel to CIE L* scaled to the 0-255 range.
func lightness(r, g, b float64) float64 {
	linearize := func(c float64) float64 {
		c /= 255
		if c <= 0.04045 {
			return c / 12.92
		}
		return math.Pow((c+0.055)/1.055, 2.4)
	}
	y := 0.212671*linearize(r) + 0.715160*linearize(g) + 0.072169*linearize(b)

	var fy float64
	if y > 0.008856 {
		fy = math.Cbrt(y)
	} else {
		fy = 7.787*y + 16.0/116
	}
	l := 116*fy - 16
	return l * 255 / 100
}

func lightingLevel(mean float64) models.LightingLevel {
	switch {
	case mean > 200:
		return models.LightingVeryHigh
	case mean > 150:
		return models.LightingHigh
	case mean > 100:
		return models.LightingModerate
	case mean > 50:
		return models.LightingLow
	default:
		return models.LightingVeryLow
	}
}

func contrastLevel(std float64) models.ContrastLevel {
	switch {
	case std > 40:
		return models.ContrastHigh
	case std > 25:
		return models.ContrastModerate
	default:
		return models.ContrastLow
	}
}

// colorTemperature classifies the red-to-blue mean ratio; an all-zero blue
// channel leaves the ratio undefined.
func colorTemperature(redSum, blueSum float64) (models.ColorTemperature, int) {
	if blueSum == 0 {
		return models.TemperatureUndefined, 0
	}
	ratio := redSum / blueSum
	switch {
	case ratio > 1.3:
		return models.TemperatureWarm, 3000
	case ratio > 1.1:
		return models.TemperatureNeutralWarm, 4000
	case ratio > 0.9:
		return models.TemperatureNeutral, 5000
	default:
		return models.TemperatureCold, 6500
	}
}
