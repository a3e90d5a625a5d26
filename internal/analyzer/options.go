package analyzer

import (
	"time"

	"github.com/leandrobosaipo/elroi-vision/pkg/models"
)

// AnalysisOptions provides flexible configuration for one report run.
type AnalysisOptions struct {
	// Output sizing
	DominantColors  int
	AttentionPoints int

	// Engine primitives
	SaliencyMethod SaliencyMethod
	TextureMethod  models.TextureMethod

	// Feature toggles
	SkipQRDetection bool

	// Per-section deadline; a section exceeding it is reported unavailable.
	SectionTimeout time.Duration

	// Performance options
	MaxWorkers int
}

// DefaultOptions returns default analysis options.
func DefaultOptions() AnalysisOptions {
	return AnalysisOptions{
		DominantColors:  5,
		AttentionPoints: 5,
		SaliencyMethod:  SaliencySpectralResidual,
		TextureMethod:   models.TextureMethodLBP,
		SkipQRDetection: false,
		SectionTimeout:  10 * time.Second,
		MaxWorkers:      0, // Use default CPU count
	}
}

// FastOptions trades the frequency-domain saliency and LBP primitives for
// their cheaper fallbacks.
func FastOptions() AnalysisOptions {
	opts := DefaultOptions()
	opts.SaliencyMethod = SaliencyLaplacian
	opts.TextureMethod = models.TextureMethodGradient
	opts.SkipQRDetection = true
	return opts
}

// WithTimeout returns a copy with the per-section deadline.
func (o AnalysisOptions) WithTimeout(timeout time.Duration) AnalysisOptions {
	o.SectionTimeout = timeout
	return o
}

// normalized clamps nonsense values back to usable defaults.
func (o AnalysisOptions) normalized() AnalysisOptions {
	if o.DominantColors <= 0 {
		o.DominantColors = 5
	}
	if o.AttentionPoints <= 0 {
		o.AttentionPoints = 5
	}
	if o.SaliencyMethod == "" {
		o.SaliencyMethod = SaliencySpectralResidual
	}
	if o.TextureMethod == "" {
		o.TextureMethod = models.TextureMethodLBP
	}
	return o
}
