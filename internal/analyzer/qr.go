package analyzer

import "image"

// qrDetector flags probable QR codes by probing for the concentric
// finder-pattern squares in the usual corner positions. It is informational
// only; the CTA effectiveness contract does not depend on it.
type qrDetector struct{}

func newQRDetector() *qrDetector {
	return &qrDetector{}
}

// DetectQRCode reports whether the grayscale image likely contains a QR code.
func (qd *qrDetector) DetectQRCode(gray *image.Gray) bool {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	minSize := 7
	maxSize := minInt(width, height) / 3
	if maxSize < minSize {
		return false
	}

	// Finder patterns sit near three corners; probe those areas plus the
	// center and require at least two hits.
	probes := []image.Point{
		{X: width / 4, Y: height / 4},
		{X: 3 * width / 4, Y: height / 4},
		{X: width / 4, Y: 3 * height / 4},
		{X: width / 2, Y: height / 2},
	}

	hits := 0
	for _, p := range probes {
		if qd.finderPatternAt(gray, p.X, p.Y, minSize, maxSize) {
			hits++
			if hits >= 2 {
				return true
			}
		}
	}
	return false
}

func (qd *qrDetector) finderPatternAt(gray *image.Gray, cx, cy, minSize, maxSize int) bool {
	for size := minSize; size <= maxSize; size += 2 {
		if qd.concentricSquares(gray, cx, cy, size/2) {
			return true
		}
	}
	return false
}

// concentricSquares checks the black-white-black-white ring signature at
// increasing radii along several directions.
func (qd *qrDetector) concentricSquares(gray *image.Gray, cx, cy, radius int) bool {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if cx-radius < 0 || cx+radius >= width || cy-radius < 0 || cy+radius >= height {
		return false
	}

	samples := []int{radius / 4, radius / 2, 3 * radius / 4, radius}
	wantBlack := []bool{true, false, true, false}
	directions := []image.Point{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: -1, Y: 1}}

	matchingDirections := 0
	for _, dir := range directions {
		matches := 0
		for i, r := range samples {
			x := cx + r*dir.X
			y := cy + r*dir.Y
			if x < 0 || x >= width || y < 0 || y >= height {
				continue
			}
			isBlack := gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y < 128
			if isBlack == wantBlack[i] {
				matches++
			}
		}
		if matches >= len(samples)-1 {
			matchingDirections++
		}
	}
	return matchingDirections >= 2
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
