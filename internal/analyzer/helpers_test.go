package analyzer

import (
	"image"
	"image/color"
)

// createTestImage builds a uniformly colored RGBA image.
func createTestImage(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage builds an image from a per-pixel grayscale function.
func createPatternImage(width, height int, intensity func(x, y int) uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := intensity(x, y)
			img.Set(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}

// pseudoNoise is a deterministic stand-in for random pixel intensities.
func pseudoNoise(x, y int) uint8 {
	return uint8((x*37 + y*91 + x*y*13) % 251)
}

func testPool() *WorkerPool {
	pool := NewWorkerPool(2)
	pool.Start()
	return pool
}
