package analyzer

import (
	"image"
	"image/draw"
	"math"

	"gonum.org/v1/gonum/stat"
)

// grayscale converts an image to 8-bit grayscale using the standard library
// color model, matching the luma weights used across all engines.
func grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)
	return gray
}

// grayMatrix copies a grayscale image into a float64 grid indexed [y][x]
// with the origin shifted to (0,0).
func grayMatrix(gray *image.Gray) [][]float64 {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	m := make([][]float64, height)
	for y := 0; y < height; y++ {
		row := make([]float64, width)
		for x := 0; x < width; x++ {
			row[x] = float64(gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
		}
		m[y] = row
	}
	return m
}

// normalizeToGray min-max scales a float grid into an 8-bit grayscale image.
// A flat grid maps to all zeros.
func normalizeToGray(m [][]float64) *image.Gray {
	height := len(m)
	width := 0
	if height > 0 {
		width = len(m[0])
	}
	gray := image.NewGray(image.Rect(0, 0, width, height))
	if width == 0 || height == 0 {
		return gray
	}

	minV, maxV := m[0][0], m[0][0]
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := m[y][x]
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
	}
	if maxV <= minV {
		return gray
	}

	scale := 255.0 / (maxV - minV)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gray.Pix[y*gray.Stride+x] = uint8(math.Round((m[y][x] - minV) * scale))
		}
	}
	return gray
}

// boxFilter3 applies a 3x3 mean filter with edge clamping.
func boxFilter3(m [][]float64) [][]float64 {
	height := len(m)
	if height == 0 {
		return nil
	}
	width := len(m[0])

	out := make([][]float64, height)
	for y := 0; y < height; y++ {
		out[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var sum float64
			var count int
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					ny, nx := y+dy, x+dx
					if ny < 0 || ny >= height || nx < 0 || nx >= width {
						continue
					}
					sum += m[ny][nx]
					count++
				}
			}
			out[y][x] = sum / float64(count)
		}
	}
	return out
}

// gaussianKernel builds a normalized 1-D Gaussian kernel with the given
// radius, so the full width is 2*radius+1.
func gaussianKernel(sigma float64, radius int) []float64 {
	kernel := make([]float64, 2*radius+1)
	var sum float64
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// gaussianBlur applies a separable Gaussian filter with edge clamping.
func gaussianBlur(m [][]float64, sigma float64, radius int) [][]float64 {
	height := len(m)
	if height == 0 {
		return nil
	}
	width := len(m[0])
	kernel := gaussianKernel(sigma, radius)

	// Horizontal pass
	tmp := make([][]float64, height)
	for y := 0; y < height; y++ {
		tmp[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var sum float64
			for k := -radius; k <= radius; k++ {
				nx := clampInt(x+k, 0, width-1)
				sum += m[y][nx] * kernel[k+radius]
			}
			tmp[y][x] = sum
		}
	}

	// Vertical pass
	out := make([][]float64, height)
	for y := 0; y < height; y++ {
		out[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var sum float64
			for k := -radius; k <= radius; k++ {
				ny := clampInt(y+k, 0, height-1)
				sum += tmp[ny][x] * kernel[k+radius]
			}
			out[y][x] = sum
		}
	}
	return out
}

// laplacian convolves with the 4-neighbor Laplacian kernel over the grid
// interior, returning the (height-2)x(width-2) response.
func laplacian(m [][]float64) [][]float64 {
	height := len(m)
	if height < 3 {
		return nil
	}
	width := len(m[0])
	if width < 3 {
		return nil
	}

	out := make([][]float64, height-2)
	for y := 1; y < height-1; y++ {
		row := make([]float64, width-2)
		for x := 1; x < width-1; x++ {
			row[x-1] = -4*m[y][x] + m[y-1][x] + m[y+1][x] + m[y][x-1] + m[y][x+1]
		}
		out[y-1] = row
	}
	return out
}

// populationVariance computes the biased variance over a grid, matching the
// convention the tier thresholds were calibrated against.
func populationVariance(m [][]float64) float64 {
	var flat []float64
	for _, row := range m {
		flat = append(flat, row...)
	}
	if len(flat) == 0 {
		return 0
	}
	return stat.PopVariance(flat, nil)
}

// maxFilter applies a separable sliding-maximum filter with the given radius.
func maxFilter(m [][]float64, radius int) [][]float64 {
	height := len(m)
	if height == 0 {
		return nil
	}
	width := len(m[0])

	tmp := make([][]float64, height)
	for y := 0; y < height; y++ {
		tmp[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			maxV := math.Inf(-1)
			for k := -radius; k <= radius; k++ {
				nx := x + k
				if nx < 0 || nx >= width {
					continue
				}
				if m[y][nx] > maxV {
					maxV = m[y][nx]
				}
			}
			tmp[y][x] = maxV
		}
	}

	out := make([][]float64, height)
	for y := 0; y < height; y++ {
		out[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			maxV := math.Inf(-1)
			for k := -radius; k <= radius; k++ {
				ny := y + k
				if ny < 0 || ny >= height {
					continue
				}
				if tmp[ny][x] > maxV {
					maxV = tmp[ny][x]
				}
			}
			out[y][x] = maxV
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
