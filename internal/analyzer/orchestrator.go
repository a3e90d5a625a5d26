package analyzer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/leandrobosaipo/elroi-vision/internal/logger"
	"github.com/leandrobosaipo/elroi-vision/internal/vision"
	"github.com/leandrobosaipo/elroi-vision/pkg/models"
)

// socialSymbolNames are object-name substrings counted as social symbols in
// the report summary.
var socialSymbolNames = []string{"flag", "cross", "star", "crown", "money", "dollar"}

// Orchestrator fans one image out to every engine and collaborator, waits
// for all of them and merges the outcomes into a single report. A failing
// section never aborts the others.
type Orchestrator struct {
	colors    *ColorAnalyzer
	saliency  *SaliencyAnalyzer
	symmetry  *SymmetryAnalyzer
	texture   *TextureAnalyzer
	depth     *DepthAnalyzer
	lighting  *LightingAnalyzer
	cta       *CTAAnalyzer
	narrative *NarrativeAnalyzer

	collaborators vision.Collaborators
	pool          *WorkerPool
	opts          AnalysisOptions
}

// NewOrchestrator wires the engines with a shared worker pool and fills
// missing collaborators with unavailable stubs.
func NewOrchestrator(collaborators vision.Collaborators, opts AnalysisOptions) *Orchestrator {
	opts = opts.normalized()
	pool := NewWorkerPool(opts.MaxWorkers)
	pool.Start()

	return &Orchestrator{
		colors:        NewColorAnalyzer(),
		saliency:      NewSaliencyAnalyzer(opts.SaliencyMethod),
		symmetry:      NewSymmetryAnalyzer(),
		texture:       NewTextureAnalyzer(opts.TextureMethod),
		depth:         NewDepthAnalyzer(pool),
		lighting:      NewLightingAnalyzer(pool),
		cta:           NewCTAAnalyzer(opts.SkipQRDetection),
		narrative:     NewNarrativeAnalyzer(),
		collaborators: collaborators.WithDefaults(),
		pool:          pool,
		opts:          opts,
	}
}

// Close releases the shared worker pool.
func (o *Orchestrator) Close() {
	o.pool.Close()
}

// Analyze runs every engine and collaborator against one image and merges
// the results. Sections with upstream dependencies (CTA on OCR; narrative on
// objects, emotion, colors and OCR) run in a second phase, receiving empty
// or neutral substitutes for upstream sections that did not resolve.
func (o *Orchestrator) Analyze(ctx context.Context, img image.Image) *models.Report {
	started := time.Now()
	report := &models.Report{}

	// Phase one: mutually independent sections. Each goroutine writes a
	// distinct report field.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		report.Objects = runSection(gctx, o.opts.SectionTimeout, "objects", func(ctx context.Context) (models.ObjectsReport, error) {
			objects, err := o.collaborators.Objects.DetectObjects(ctx, img)
			if err != nil {
				return models.ObjectsReport{}, err
			}
			return buildObjectsReport(objects), nil
		})
		return nil
	})
	g.Go(func() error {
		report.OCR = runSection(gctx, o.opts.SectionTimeout, "ocr", func(ctx context.Context) (models.OCRReport, error) {
			text, err := o.collaborators.Text.ExtractText(ctx, img)
			if err != nil {
				return models.OCRReport{}, err
			}
			return models.OCRReport{TextResult: text}, nil
		})
		return nil
	})
	g.Go(func() error {
		report.Emotions = runSection(gctx, o.opts.SectionTimeout, "emotions", func(ctx context.Context) (models.EmotionReport, error) {
			result, err := o.collaborators.Emotions.DetectEmotions(ctx, img)
			if err != nil {
				return models.EmotionReport{}, err
			}
			return buildEmotionReport(result), nil
		})
		return nil
	})
	g.Go(func() error {
		report.Gaze = runSection(gctx, o.opts.SectionTimeout, "gaze", func(ctx context.Context) (models.GazeResult, error) {
			return o.collaborators.Gaze.EstimateGaze(ctx, img)
		})
		return nil
	})
	g.Go(func() error {
		report.Pose = runSection(gctx, o.opts.SectionTimeout, "pose", func(ctx context.Context) (models.PoseResult, error) {
			return o.collaborators.Pose.AnalyzePose(ctx, img)
		})
		return nil
	})
	g.Go(func() error {
		report.Caption = runSection(gctx, o.opts.SectionTimeout, "caption", func(ctx context.Context) (models.CaptionResult, error) {
			return o.collaborators.Caption.GenerateCaption(ctx, img)
		})
		return nil
	})
	g.Go(func() error {
		report.Scene = runSection(gctx, o.opts.SectionTimeout, "scene", func(ctx context.Context) (models.SceneResult, error) {
			return o.collaborators.Scene.ClassifyScene(ctx, img)
		})
		return nil
	})
	g.Go(func() error {
		report.Colors = runSection(gctx, o.opts.SectionTimeout, "colors", func(context.Context) (models.ColorReport, error) {
			return o.colors.AnalyzeImageColors(img, o.opts.DominantColors)
		})
		return nil
	})
	g.Go(func() error {
		report.Attention = runSection(gctx, o.opts.SectionTimeout, "attention", func(context.Context) (models.AttentionReport, error) {
			return o.saliency.AnalyzeAttentionDistribution(img, o.opts.AttentionPoints)
		})
		return nil
	})
	g.Go(func() error {
		report.Symmetry = runSection(gctx, o.opts.SectionTimeout, "symmetry", func(context.Context) (models.SymmetryReport, error) {
			return o.symmetry.AnalyzeSymmetry(img)
		})
		return nil
	})
	g.Go(func() error {
		report.Texture = runSection(gctx, o.opts.SectionTimeout, "texture", func(context.Context) (models.TextureReport, error) {
			return o.texture.AnalyzeTexture(img)
		})
		return nil
	})
	g.Go(func() error {
		report.Depth = runSection(gctx, o.opts.SectionTimeout, "depth_of_field", func(context.Context) (models.DepthReport, error) {
			return o.depth.AnalyzeDepthOfField(img)
		})
		return nil
	})
	g.Go(func() error {
		report.Lighting = runSection(gctx, o.opts.SectionTimeout, "lighting", func(context.Context) (models.LightingReport, error) {
			return o.lighting.AnalyzeLighting(img)
		})
		return nil
	})
	_ = g.Wait() // section funcs never return errors; failures live in the sections

	// Phase two: dependent sections receive empty/neutral substitutes for
	// upstream sections that did not resolve.
	colorReport, _ := report.Colors.Payload()
	textResult := models.TextResult{Segments: []models.TextSegment{}}
	if ocr, ok := report.OCR.Payload(); ok {
		textResult = ocr.TextResult
	}
	objects := []models.DetectedObject{}
	if objectsReport, ok := report.Objects.Payload(); ok {
		objects = objectsReport.Objects
	}
	emotionResult := models.EmotionResult{SceneEmotion: "neutral"}
	if emotionReport, ok := report.Emotions.Payload(); ok {
		emotionResult = emotionReport.EmotionResult
	}

	report.CTA = runSection(ctx, o.opts.SectionTimeout, "cta", func(context.Context) (models.CTAReport, error) {
		return o.cta.AnalyzeCTA(img, textResult.Segments, colorReport)
	})
	report.Narrative = runSection(ctx, o.opts.SectionTimeout, "narrative", func(context.Context) (models.NarrativeReport, error) {
		return o.narrative.AnalyzeNarrative(objects, emotionResult, textResult, colorReport)
	})

	report.Summary = buildSummary(report)

	logger.WithFields(logrus.Fields{
		"duration_ms":          time.Since(started).Milliseconds(),
		"sections_ok":          report.Summary.SectionsOK,
		"sections_unavailable": report.Summary.SectionsUnavailable,
		"sections_failed":      report.Summary.SectionsFailed,
	}).Info("image analysis completed")

	return report
}

// runSection executes one analyzer under the per-section deadline and
// normalizes its outcome: ErrUnavailable and deadline expiry become
// unavailable sections, panics and other errors become failed sections.
func runSection[T any](ctx context.Context, timeout time.Duration, name string, fn func(context.Context) (T, error)) models.Section[T] {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type outcome struct {
		data T
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("analyzer panicked: %v", r)}
			}
		}()
		data, err := fn(ctx)
		done <- outcome{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		logger.WithFields(logrus.Fields{"section": name, "reason": ctx.Err().Error()}).Warn("analysis section timed out")
		return models.Unavailable[T](ctx.Err().Error())
	case out := <-done:
		if out.err == nil {
			return models.OK(out.data)
		}
		if errors.Is(out.err, vision.ErrUnavailable) || errors.Is(out.err, context.DeadlineExceeded) || errors.Is(out.err, context.Canceled) {
			logger.WithFields(logrus.Fields{"section": name, "reason": out.err.Error()}).Debug("analysis section unavailable")
			return models.Unavailable[T](out.err.Error())
		}
		logger.WithFields(logrus.Fields{"section": name}).WithError(out.err).Error("analysis section failed")
		return models.Failed[T](out.err)
	}
}

func buildObjectsReport(objects []models.DetectedObject) models.ObjectsReport {
	if objects == nil {
		objects = []models.DetectedObject{}
	}
	people := 0
	for _, obj := range objects {
		if obj.Name == "person" {
			people++
		}
	}
	return models.ObjectsReport{Objects: objects, PeopleCount: people}
}

// buildEmotionReport annotates the raw result with valence and arousal
// dimensions derived from the scene emotion label.
func buildEmotionReport(result models.EmotionResult) models.EmotionReport {
	valence := models.ValenceNeutral
	arousal := models.ArousalLow
	switch result.SceneEmotion {
	case "happy", "surprise":
		valence = models.ValencePositive
		arousal = models.ArousalHigh
	case "angry", "fear", "disgust":
		valence = models.ValenceNegative
		arousal = models.ArousalHigh
	case "sad":
		valence = models.ValenceNegative
	}
	return models.EmotionReport{EmotionResult: result, Valence: valence, Arousal: arousal}
}

// buildSummary derives the cross-section summary purely from sections that
// completed successfully.
func buildSummary(report *models.Report) models.Summary {
	summary := models.Summary{
		Framing:        models.FramingUndefined,
		SocialSymbols:  []string{},
		EmotionPalette: models.EmotionNeutral,
		SurpriseLevel:  models.SurpriseLow,
	}

	statuses := []models.SectionStatus{
		report.Objects.Status, report.OCR.Status, report.Colors.Status,
		report.Emotions.Status, report.Gaze.Status, report.Pose.Status,
		report.Caption.Status, report.Scene.Status, report.Attention.Status,
		report.Symmetry.Status, report.Texture.Status, report.Depth.Status,
		report.Lighting.Status, report.CTA.Status, report.Narrative.Status,
	}
	for _, status := range statuses {
		switch status {
		case models.StatusOK:
			summary.SectionsOK++
		case models.StatusUnavailable:
			summary.SectionsUnavailable++
		default:
			summary.SectionsFailed++
		}
	}

	if objects, ok := report.Objects.Payload(); ok {
		summary.PeopleCount = objects.PeopleCount
		summary.Framing = classifyFraming(objects.Objects)
		summary.SocialSymbols = socialSymbols(objects.Objects)
	}
	if colors, ok := report.Colors.Payload(); ok {
		summary.EmotionPalette = colors.EmotionPalette
	}
	if attention, ok := report.Attention.Payload(); ok {
		summary.AttentionScore = attention.AttentionScore
	}
	if cta, ok := report.CTA.Payload(); ok {
		summary.CTAPresent = cta.Present
	}
	if narrative, ok := report.Narrative.Payload(); ok {
		summary.SurpriseLevel = narrative.SurpriseLevel
	}
	return summary
}

// classifyFraming estimates the shot type from the detected people.
func classifyFraming(objects []models.DetectedObject) models.Framing {
	people := make([]models.DetectedObject, 0, len(objects))
	for _, obj := range objects {
		if obj.Name == "person" {
			people = append(people, obj)
		}
	}
	switch {
	case len(people) == 0:
		return models.FramingUndefined
	case len(people) == 1 && people[0].Confidence > 0.8:
		return models.FramingCloseUp
	case len(people) <= 2:
		return models.FramingMedium
	default:
		return models.FramingOpen
	}
}

func socialSymbols(objects []models.DetectedObject) []string {
	symbols := make([]string, 0)
	for _, obj := range objects {
		lowered := strings.ToLower(obj.Name)
		for _, symbol := range socialSymbolNames {
			if strings.Contains(lowered, symbol) {
				symbols = append(symbols, obj.Name)
				break
			}
		}
	}
	return symbols
}
