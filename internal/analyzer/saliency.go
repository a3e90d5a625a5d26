package analyzer

import (
	"fmt"
	"image"
	"math"
	"math/cmplx"
	"sort"

	"github.com/disintegration/imaging"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/leandrobosaipo/elroi-vision/pkg/models"
)

// SaliencyMethod selects the saliency-map primitive.
type SaliencyMethod string

const (
	// SaliencySpectralResidual is the frequency-domain method used by default.
	SaliencySpectralResidual SaliencyMethod = "spectral_residual"
	// SaliencyLaplacian is the blurred-Laplacian fallback.
	SaliencyLaplacian SaliencyMethod = "laplacian"
)

const (
	// spectralSize is the working resolution of the spectral-residual
	// transform; the map is scaled back to the input size afterwards.
	spectralSize = 64
	// attentionWindow is the sliding-max window for local-maxima extraction.
	attentionWindow = 20
)

// SaliencyAnalyzer estimates where the eye lands first: it builds a per-pixel
// conspicuousness map, extracts local maxima and derives the attention
// centroid with its rule-of-thirds alignment.
type SaliencyAnalyzer struct {
	method SaliencyMethod
}

func NewSaliencyAnalyzer(method SaliencyMethod) *SaliencyAnalyzer {
	if method == "" {
		method = SaliencySpectralResidual
	}
	return &SaliencyAnalyzer{method: method}
}

// ComputeSaliencyMap returns a grayscale conspicuousness map scaled to
// [0,255] with the same dimensions as the input image.
func (a *SaliencyAnalyzer) ComputeSaliencyMap(img image.Image) (*image.Gray, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width < 2 || height < 2 {
		return nil, fmt.Errorf("image too small for saliency analysis: %dx%d", width, height)
	}

	gray := grayscale(img)
	if isFlat(gray) {
		// Zero-variance input has no conspicuous region by definition.
		return image.NewGray(image.Rect(0, 0, width, height)), nil
	}
	if a.method == SaliencySpectralResidual {
		return spectralResidualMap(gray, width, height), nil
	}
	return laplacianSaliencyMap(gray), nil
}

// isFlat reports whether every pixel carries the same intensity.
func isFlat(gray *image.Gray) bool {
	bounds := gray.Bounds()
	first := gray.GrayAt(bounds.Min.X, bounds.Min.Y).Y
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if gray.GrayAt(x, y).Y != first {
				return false
			}
		}
	}
	return true
}

// spectralResidualMap implements the spectral-residual transform at a fixed
// small resolution: the difference between the log-amplitude spectrum and its
// local average isolates the statistically unexpected frequency content.
func spectralResidualMap(gray *image.Gray, width, height int) *image.Gray {
	small := imaging.Resize(gray, spectralSize, spectralSize, imaging.Linear)
	m := make([][]complex128, spectralSize)
	for y := 0; y < spectralSize; y++ {
		row := make([]complex128, spectralSize)
		for x := 0; x < spectralSize; x++ {
			row[x] = complex(float64(small.NRGBAAt(x, y).R), 0)
		}
		m[y] = row
	}

	fft := fourier.NewCmplxFFT(spectralSize)
	fft2D(fft, m, false)

	logAmp := make([][]float64, spectralSize)
	phase := make([][]float64, spectralSize)
	for y := 0; y < spectralSize; y++ {
		logAmp[y] = make([]float64, spectralSize)
		phase[y] = make([]float64, spectralSize)
		for x := 0; x < spectralSize; x++ {
			logAmp[y][x] = math.Log(cmplx.Abs(m[y][x]) + 1e-9)
			phase[y][x] = cmplx.Phase(m[y][x])
		}
	}

	smoothed := boxFilter3(logAmp)
	for y := 0; y < spectralSize; y++ {
		for x := 0; x < spectralSize; x++ {
			residual := logAmp[y][x] - smoothed[y][x]
			m[y][x] = cmplx.Rect(math.Exp(residual), phase[y][x])
		}
	}

	fft2D(fft, m, true)

	sal := make([][]float64, spectralSize)
	for y := 0; y < spectralSize; y++ {
		sal[y] = make([]float64, spectralSize)
		for x := 0; x < spectralSize; x++ {
			mag := cmplx.Abs(m[y][x])
			sal[y][x] = mag * mag
		}
	}
	sal = gaussianBlur(sal, 2.5, 4)

	return imagingToGray(imaging.Resize(normalizeToGray(sal), width, height, imaging.Linear))
}

// laplacianSaliencyMap is the fallback: Gaussian blur, Laplacian response
// magnitude, min-max normalized.
func laplacianSaliencyMap(gray *image.Gray) *image.Gray {
	m := gaussianBlur(grayMatrix(gray), 1.7, 4)
	lap := laplacian(m)
	if lap == nil {
		// Interior too small for the kernel; a flat map is the defined result.
		return image.NewGray(image.Rect(0, 0, len(m[0]), len(m)))
	}
	for y := range lap {
		for x := range lap[y] {
			lap[y][x] = math.Abs(lap[y][x])
		}
	}

	// Pad the interior response back to the full image size.
	height, width := len(m), len(m[0])
	full := make([][]float64, height)
	for y := 0; y < height; y++ {
		full[y] = make([]float64, width)
	}
	for y := range lap {
		copy(full[y+1][1:width-1], lap[y])
	}
	return normalizeToGray(full)
}

// fft2D applies a row-column complex FFT in place. The inverse pass divides
// by the sequence length on both axes since the transform is unnormalized.
func fft2D(fft *fourier.CmplxFFT, m [][]complex128, inverse bool) {
	n := len(m)
	buf := make([]complex128, n)

	for y := 0; y < n; y++ {
		if inverse {
			fft.Sequence(buf, m[y])
		} else {
			fft.Coefficients(buf, m[y])
		}
		copy(m[y], buf)
	}

	col := make([]complex128, n)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			col[y] = m[y][x]
		}
		if inverse {
			fft.Sequence(buf, col)
		} else {
			fft.Coefficients(buf, col)
		}
		for y := 0; y < n; y++ {
			m[y][x] = buf[y]
		}
	}

	if inverse {
		scale := complex(1/float64(n*n), 0)
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				m[y][x] *= scale
			}
		}
	}
}

// imagingToGray converts the NRGBA output of the imaging package back to an
// 8-bit grayscale image. The input is assumed achromatic, so the red channel
// carries the intensity.
func imagingToGray(img *image.NRGBA) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Pix[(y-bounds.Min.Y)*gray.Stride+(x-bounds.Min.X)] = img.NRGBAAt(x, y).R
		}
	}
	return gray
}

// FindAttentionPoints returns the top-n local saliency maxima ranked by
// score descending, then by row and column for determinism.
func (a *SaliencyAnalyzer) FindAttentionPoints(img image.Image, n int) ([]models.AttentionPoint, error) {
	salMap, err := a.ComputeSaliencyMap(img)
	if err != nil {
		return nil, err
	}
	return attentionPointsFromMap(salMap, n), nil
}

func attentionPointsFromMap(salMap *image.Gray, n int) []models.AttentionPoint {
	m := grayMatrix(salMap)
	height := len(m)
	if height == 0 || n <= 0 {
		return []models.AttentionPoint{}
	}
	width := len(m[0])

	windowMax := maxFilter(m, attentionWindow/2)
	points := make([]models.AttentionPoint, 0, 64)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := m[y][x]
			if v <= 0 || v < windowMax[y][x] {
				continue
			}
			points = append(points, models.AttentionPoint{
				X:           x,
				Y:           y,
				Score:       roundTo(v/255, 3),
				NormalizedX: roundTo(float64(x)/float64(width), 3),
				NormalizedY: roundTo(float64(y)/float64(height), 3),
			})
		}
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].Score != points[j].Score {
			return points[i].Score > points[j].Score
		}
		if points[i].Y != points[j].Y {
			return points[i].Y < points[j].Y
		}
		return points[i].X < points[j].X
	})
	if n < len(points) {
		points = points[:n]
	}
	return points
}

// AnalyzeAttentionDistribution derives the attention score, the
// saliency-weighted centroid with its rule-of-thirds alignment, and the top
// local maxima. An all-zero saliency map yields the defined empty result.
func (a *SaliencyAnalyzer) AnalyzeAttentionDistribution(img image.Image, nPoints int) (models.AttentionReport, error) {
	salMap, err := a.ComputeSaliencyMap(img)
	if err != nil {
		return models.AttentionReport{}, err
	}

	m := grayMatrix(salMap)
	height := len(m)
	width := len(m[0])

	var total, weightedX, weightedY float64
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := m[y][x]
			total += v
			weightedX += v * float64(x)
			weightedY += v * float64(y)
		}
	}

	if total == 0 {
		return models.AttentionReport{
			RuleOfThirdsAlignment: models.AlignmentUnknown,
			AttentionPoints:       []models.AttentionPoint{},
		}, nil
	}

	cx := weightedX / total
	cy := weightedY / total
	nx := cx / float64(width)
	ny := cy / float64(height)

	return models.AttentionReport{
		AttentionScore: roundTo(total/float64(width*height)/255, 3),
		FocusCenter: models.FocusCenter{
			X:           roundTo(cx, 1),
			Y:           roundTo(cy, 1),
			NormalizedX: roundTo(nx, 3),
			NormalizedY: roundTo(ny, 3),
		},
		RuleOfThirdsAlignment: thirdsAlignment(nx, ny),
		AttentionPoints:       attentionPointsFromMap(salMap, nPoints),
	}, nil
}

// thirdsAlignment reports "aligned" when the normalized centroid lies within
// 0.1 of a third line on either axis.
func thirdsAlignment(nx, ny float64) models.ThirdsAlignment {
	nearThird := func(v float64) bool {
		return math.Abs(v-1.0/3) < 0.1 || math.Abs(v-2.0/3) < 0.1
	}
	if nearThird(nx) || nearThird(ny) {
		return models.AlignmentAligned
	}
	return models.AlignmentCenter
}
