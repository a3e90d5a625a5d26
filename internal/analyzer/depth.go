package analyzer

import (
	"fmt"
	"image"

	"github.com/leandrobosaipo/elroi-vision/pkg/models"
)

// regionOrder fixes the iteration order for most/least-focused tie-breaks.
var regionOrder = []models.RegionName{
	models.RegionTopLeft,
	models.RegionTopRight,
	models.RegionBottomLeft,
	models.RegionBottomRight,
	models.RegionCenter,
}

// DepthAnalyzer estimates depth of field from per-region sharpness: the
// Laplacian variance of each of four quadrants plus a center crop.
type DepthAnalyzer struct {
	pool *WorkerPool
}

func NewDepthAnalyzer(pool *WorkerPool) *DepthAnalyzer {
	return &DepthAnalyzer{pool: pool}
}

// AnalyzeDepthOfField computes sharpness variance for the five overlapping
// regions in parallel and classifies focus distribution.
func (a *DepthAnalyzer) AnalyzeDepthOfField(img image.Image) (models.DepthReport, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width < 6 || height < 6 {
		return models.DepthReport{}, fmt.Errorf("image too small for depth analysis: %dx%d", width, height)
	}

	m := grayMatrix(grayscale(img))
	midX, midY := width/2, height/2
	crops := map[models.RegionName]image.Rectangle{
		models.RegionTopLeft:     image.Rect(0, 0, midX, midY),
		models.RegionTopRight:    image.Rect(midX, 0, width, midY),
		models.RegionBottomLeft:  image.Rect(0, midY, midX, height),
		models.RegionBottomRight: image.Rect(midX, midY, width, height),
		models.RegionCenter:      image.Rect(midX/2, midY/2, midX/2+midX, midY/2+midY),
	}

	// Each job writes its own slot, so the batch needs no lock.
	variances := make([]float64, len(regionOrder))
	jobs := make([]func(), 0, len(regionOrder))
	for i, name := range regionOrder {
		i := i
		rect := crops[name]
		jobs = append(jobs, func() {
			variances[i] = roundTo(regionSharpness(m, rect), 2)
		})
	}
	a.pool.RunBatch(jobs...)

	regions := make(map[models.RegionName]models.RegionFocus, len(regionOrder))
	mostIdx, leastIdx := 0, 0
	var sum float64
	for i, name := range regionOrder {
		v := variances[i]
		regions[name] = models.RegionFocus{Variance: v, FocusLevel: focusLevel(v)}
		sum += v
		if v > variances[mostIdx] {
			mostIdx = i
		}
		if v < variances[leastIdx] {
			leastIdx = i
		}
	}
	most, least := regionOrder[mostIdx], regionOrder[leastIdx]

	avg := roundTo(sum/float64(len(regionOrder)), 2)
	spread := variances[mostIdx] - variances[leastIdx]

	return models.DepthReport{
		OverallFocus:    focusLevel(avg),
		AverageVariance: avg,
		DepthType:       depthType(spread),
		MostFocused:     most,
		LeastFocused:    least,
		Regions:         regions,
	}, nil
}

// regionSharpness is the population variance of the Laplacian response over
// the region interior.
func regionSharpness(m [][]float64, rect image.Rectangle) float64 {
	sub := make([][]float64, rect.Dy())
	for y := 0; y < rect.Dy(); y++ {
		sub[y] = m[rect.Min.Y+y][rect.Min.X:rect.Max.X]
	}
	lap := laplacian(sub)
	if lap == nil {
		return 0
	}
	return populationVariance(lap)
}

func focusLevel(variance float64) models.FocusLevel {
	switch {
	case variance > 100:
		return models.FocusHigh
	case variance > 50:
		return models.FocusMedium
	default:
		return models.FocusLow
	}
}

func depthType(spread float64) models.DepthType {
	switch {
	case spread > 200:
		return models.DepthShallow
	case spread > 100:
		return models.DepthModerate
	default:
		return models.DepthDeep
	}
}
