package analyzer

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/disintegration/imaging"

	"github.com/leandrobosaipo/elroi-vision/pkg/models"
)

const (
	// colorSampleSize is the square edge every image is downsampled to
	// before bucket counting.
	colorSampleSize = 150
	// quantStep merges near-identical colors into coarse RGB buckets.
	quantStep = 32
)

// ColorAnalyzer extracts dominant colors, tags their emotional impact from
// HSV components and scores WCAG contrast between them.
type ColorAnalyzer struct{}

func NewColorAnalyzer() *ColorAnalyzer {
	return &ColorAnalyzer{}
}

// ExtractDominantColors returns the top-n quantized color buckets ranked by
// pixel count. Ties on count break toward the lower packed RGB value so the
// ranking is stable across runs.
func (a *ColorAnalyzer) ExtractDominantColors(img image.Image, n int) ([]models.DominantColor, error) {
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("image has no pixels")
	}
	if n <= 0 {
		return []models.DominantColor{}, nil
	}

	small := imaging.Resize(img, colorSampleSize, colorSampleSize, imaging.NearestNeighbor)
	counts := make(map[uint32]int)
	total := 0
	for y := 0; y < colorSampleSize; y++ {
		for x := 0; x < colorSampleSize; x++ {
			c := small.NRGBAAt(x, y)
			r := uint32(c.R) / quantStep * quantStep
			g := uint32(c.G) / quantStep * quantStep
			b := uint32(c.B) / quantStep * quantStep
			counts[r<<16|g<<8|b]++
			total++
		}
	}

	type bucket struct {
		packed uint32
		count  int
	}
	buckets := make([]bucket, 0, len(counts))
	for packed, count := range counts {
		buckets = append(buckets, bucket{packed, count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].count != buckets[j].count {
			return buckets[i].count > buckets[j].count
		}
		return buckets[i].packed < buckets[j].packed
	})

	if n < len(buckets) {
		buckets = buckets[:n]
	}

	colors := make([]models.DominantColor, 0, len(buckets))
	for _, b := range buckets {
		rgb := [3]uint8{uint8(b.packed >> 16), uint8(b.packed >> 8 & 0xff), uint8(b.packed & 0xff)}
		h, s, v := rgbToHSV(rgb)
		colors = append(colors, models.DominantColor{
			RGB:        rgb,
			Hex:        fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2]),
			Percentage: roundTo(float64(b.count)/float64(total)*100, 2),
			HSV: models.HSV{
				H: roundTo(h, 1),
				S: roundTo(s*100, 1),
				V: roundTo(v*100, 1),
			},
			EmotionTag: classifyColorEmotion(h, s, v),
		})
	}
	return colors, nil
}

// CalculateContrast computes the WCAG contrast ratio between two colors.
// The result is symmetric and always within [1,21].
func (a *ColorAnalyzer) CalculateContrast(c1, c2 [3]uint8) float64 {
	l1 := relativeLuminance(c1)
	l2 := relativeLuminance(c2)
	lighter, darker := l1, l2
	if darker > lighter {
		lighter, darker = darker, lighter
	}
	return roundTo((lighter+0.05)/(darker+0.05), 2)
}

// AnalyzeImageColors combines dominant-color extraction with the averaged
// contrast between adjacent-ranked colors and an overall palette tag.
func (a *ColorAnalyzer) AnalyzeImageColors(img image.Image, n int) (models.ColorReport, error) {
	colors, err := a.ExtractDominantColors(img, n)
	if err != nil {
		return models.ColorReport{}, err
	}

	var avgContrast float64
	if len(colors) > 1 {
		var sum float64
		for i := 0; i < len(colors)-1; i++ {
			sum += a.CalculateContrast(colors[i].RGB, colors[i+1].RGB)
		}
		avgContrast = roundTo(sum/float64(len(colors)-1), 2)
	}

	return models.ColorReport{
		DominantColors:  colors,
		AverageContrast: avgContrast,
		EmotionPalette:  paletteTag(colors),
		ColorCount:      len(colors),
	}, nil
}

// paletteTag is the most frequent tag among colors covering more than 10% of
// pixels. Frequency ties resolve to the tag of the highest-ranked qualifying
// color; no qualifying color means a neutral palette.
func paletteTag(colors []models.DominantColor) models.EmotionTag {
	counts := make(map[models.EmotionTag]int)
	order := make([]models.EmotionTag, 0, len(colors))
	for _, c := range colors {
		if c.Percentage <= 10 {
			continue
		}
		if _, seen := counts[c.EmotionTag]; !seen {
			order = append(order, c.EmotionTag)
		}
		counts[c.EmotionTag]++
	}
	if len(order) == 0 {
		return models.EmotionNeutral
	}

	best := order[0]
	for _, tag := range order[1:] {
		if counts[tag] > counts[best] {
			best = tag
		}
	}
	return best
}

// classifyColorEmotion maps HSV components to an emotion tag. The first
// matching rule wins; chromatic colors bucket by hue in 60-degree bands.
func classifyColorEmotion(h, s, v float64) models.EmotionTag {
	switch {
	case v < 0.3:
		return models.EmotionDark
	case v > 0.8 && s < 0.3:
		return models.EmotionLight
	case s < 0.3:
		return models.EmotionNeutral
	}

	switch {
	case h < 30 || h >= 330:
		return models.EmotionWarmEnergetic
	case h < 90:
		return models.EmotionCheerful
	case h < 150:
		return models.EmotionFresh
	case h < 210:
		return models.EmotionCalm
	case h < 270:
		return models.EmotionTrustworthy
	default:
		return models.EmotionCreative
	}
}

// rgbToHSV returns hue in degrees [0,360) and saturation/value in [0,1].
func rgbToHSV(rgb [3]uint8) (h, s, v float64) {
	r := float64(rgb[0]) / 255
	g := float64(rgb[1]) / 255
	b := float64(rgb[2]) / 255

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	delta := maxC - minC

	v = maxC
	if maxC > 0 {
		s = delta / maxC
	}
	if delta == 0 {
		return 0, s, v
	}

	switch maxC {
	case r:
		h = 60 * math.Mod((g-b)/delta, 6)
	case g:
		h = 60 * ((b-r)/delta + 2)
	default:
		h = 60 * ((r-g)/delta + 4)
	}
	if h < 0 {
		h += 360
	}
	return h, s, v
}

// relativeLuminance implements the WCAG formula with the piecewise
// gamma-correction transfer function.
func relativeLuminance(rgb [3]uint8) float64 {
	linearize := func(c uint8) float64 {
		v := float64(c) / 255
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*linearize(rgb[0]) + 0.7152*linearize(rgb[1]) + 0.0722*linearize(rgb[2])
}
