package analyzer

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/leandrobosaipo/elroi-vision/internal/vision"
	"github.com/leandrobosaipo/elroi-vision/pkg/models"
)

type stubObjectDetector struct {
	objects []models.DetectedObject
	err     error
	delay   time.Duration
	panics  bool
}

func (s stubObjectDetector) DetectObjects(ctx context.Context, _ image.Image) ([]models.DetectedObject, error) {
	if s.panics {
		panic("model crashed")
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.objects, s.err
}

type stubTextExtractor struct {
	result models.TextResult
	err    error
}

func (s stubTextExtractor) ExtractText(_ context.Context, _ image.Image) (models.TextResult, error) {
	return s.result, s.err
}

type stubEmotionDetector struct {
	result models.EmotionResult
	err    error
}

func (s stubEmotionDetector) DetectEmotions(_ context.Context, _ image.Image) (models.EmotionResult, error) {
	return s.result, s.err
}

func testOptions() AnalysisOptions {
	opts := DefaultOptions()
	opts.SkipQRDetection = true
	opts.SaliencyMethod = SaliencyLaplacian
	return opts
}

func summaryTotal(s models.Summary) int {
	return s.SectionsOK + s.SectionsUnavailable + s.SectionsFailed
}

func TestAnalyze_AllCollaboratorsUnavailable(t *testing.T) {
	o := NewOrchestrator(vision.Collaborators{}, testOptions())
	defer o.Close()
	img := createPatternImage(64, 64, pseudoNoise)

	report := o.Analyze(context.Background(), img)

	collaboratorSections := []models.SectionStatus{
		report.Objects.Status, report.OCR.Status, report.Emotions.Status,
		report.Gaze.Status, report.Pose.Status, report.Caption.Status,
		report.Scene.Status,
	}
	for i, status := range collaboratorSections {
		if status != models.StatusUnavailable {
			t.Errorf("Expected collaborator section %d unavailable, got %s", i, status)
		}
	}

	engineSections := []models.SectionStatus{
		report.Colors.Status, report.Attention.Status, report.Symmetry.Status,
		report.Texture.Status, report.Depth.Status, report.Lighting.Status,
		report.CTA.Status, report.Narrative.Status,
	}
	for i, status := range engineSections {
		if status != models.StatusOK {
			t.Errorf("Expected engine section %d ok, got %s", i, status)
		}
	}

	if got := summaryTotal(report.Summary); got != 15 {
		t.Errorf("Expected summary counts to sum to 15 sections, got %d", got)
	}
	if report.Summary.SectionsUnavailable != 7 {
		t.Errorf("Expected 7 unavailable sections, got %d", report.Summary.SectionsUnavailable)
	}
	if report.Summary.SectionsFailed != 0 {
		t.Errorf("Expected no failed sections, got %d", report.Summary.SectionsFailed)
	}
}

func TestAnalyze_DependentSectionsUseCollaboratorData(t *testing.T) {
	collaborators := vision.Collaborators{
		Objects: stubObjectDetector{objects: []models.DetectedObject{
			{Name: "person", Confidence: 0.95},
		}},
		Text: stubTextExtractor{result: models.TextResult{
			FullText: "Compre Agora",
			Segments: []models.TextSegment{{
				Text:       "Compre Agora",
				Confidence: 0.9,
				BBox:       models.BoundingBox{XMin: 750, YMin: 800, XMax: 850, YMax: 900},
			}},
		}},
		Emotions: stubEmotionDetector{result: models.EmotionResult{
			FacesDetected: 1,
			SceneEmotion:  "happy",
		}},
	}

	o := NewOrchestrator(collaborators, testOptions())
	defer o.Close()
	img := createPatternImage(1000, 1000, pseudoNoise)

	report := o.Analyze(context.Background(), img)

	cta, ok := report.CTA.Payload()
	if !ok {
		t.Fatalf("Expected CTA section ok, got %s: %s", report.CTA.Status, report.CTA.Reason)
	}
	if !cta.Present || cta.Count != 1 {
		t.Errorf("Expected one CTA element from OCR segments, got present=%v count=%d", cta.Present, cta.Count)
	}
	if len(cta.Elements) == 1 && !cta.Elements[0].IsStrategicPosition {
		t.Error("Expected strategic position for bottom-right CTA")
	}

	narrative, ok := report.Narrative.Payload()
	if !ok {
		t.Fatalf("Expected narrative section ok, got %s", report.Narrative.Status)
	}
	if narrative.ImplicitStory != models.StoryHappyPerson {
		t.Errorf("Expected happy-person story, got %s", narrative.ImplicitStory)
	}
	if !narrative.ScarcityTrigger {
		t.Error("Expected scarcity trigger from 'agora' in OCR text")
	}

	emotions, ok := report.Emotions.Payload()
	if !ok {
		t.Fatalf("Expected emotions section ok, got %s", report.Emotions.Status)
	}
	if emotions.Valence != models.ValencePositive || emotions.Arousal != models.ArousalHigh {
		t.Errorf("Expected positive/high affect for happy, got %s/%s", emotions.Valence, emotions.Arousal)
	}

	if report.Summary.PeopleCount != 1 {
		t.Errorf("Expected one person in summary, got %d", report.Summary.PeopleCount)
	}
	if report.Summary.Framing != models.FramingCloseUp {
		t.Errorf("Expected close_up framing, got %s", report.Summary.Framing)
	}
	if !report.Summary.CTAPresent {
		t.Error("Expected CTA present in summary")
	}
}

func TestAnalyze_FailingCollaboratorDoesNotAbortOthers(t *testing.T) {
	collaborators := vision.Collaborators{
		Objects: stubObjectDetector{err: errors.New("model inference failed")},
	}
	o := NewOrchestrator(collaborators, testOptions())
	defer o.Close()
	img := createPatternImage(64, 64, pseudoNoise)

	report := o.Analyze(context.Background(), img)

	if report.Objects.Status != models.StatusFailed {
		t.Errorf("Expected failed objects section, got %s", report.Objects.Status)
	}
	if report.Objects.Error == "" {
		t.Error("Expected error detail on failed section")
	}
	if report.Colors.Status != models.StatusOK {
		t.Errorf("Expected colors section unaffected, got %s", report.Colors.Status)
	}
	if report.Summary.SectionsFailed != 1 {
		t.Errorf("Expected exactly one failed section, got %d", report.Summary.SectionsFailed)
	}
	// Narrative falls back to empty objects and still resolves.
	if report.Narrative.Status != models.StatusOK {
		t.Errorf("Expected narrative to resolve with substitutes, got %s", report.Narrative.Status)
	}
}

func TestAnalyze_PanickingCollaboratorBecomesFailedSection(t *testing.T) {
	collaborators := vision.Collaborators{
		Objects: stubObjectDetector{panics: true},
	}
	o := NewOrchestrator(collaborators, testOptions())
	defer o.Close()
	img := createPatternImage(64, 64, pseudoNoise)

	report := o.Analyze(context.Background(), img)

	if report.Objects.Status != models.StatusFailed {
		t.Errorf("Expected failed section after panic, got %s", report.Objects.Status)
	}
	if !strings.Contains(report.Objects.Error, "panicked") {
		t.Errorf("Expected panic detail in section error, got %q", report.Objects.Error)
	}
}

func TestAnalyze_SlowCollaboratorBecomesUnavailable(t *testing.T) {
	collaborators := vision.Collaborators{
		Objects: stubObjectDetector{delay: 2 * time.Second},
	}
	opts := testOptions().WithTimeout(50 * time.Millisecond)
	o := NewOrchestrator(collaborators, opts)
	defer o.Close()
	img := createPatternImage(64, 64, pseudoNoise)

	report := o.Analyze(context.Background(), img)

	if report.Objects.Status != models.StatusUnavailable {
		t.Errorf("Expected unavailable section after timeout, got %s", report.Objects.Status)
	}
}

func TestRunSection_UnavailableError(t *testing.T) {
	section := runSection(context.Background(), time.Second, "test", func(context.Context) (int, error) {
		return 0, vision.ErrUnavailable
	})
	if section.Status != models.StatusUnavailable {
		t.Errorf("Expected unavailable status, got %s", section.Status)
	}
	if section.Data != nil {
		t.Error("Expected nil data for unavailable section")
	}
}

func TestRunSection_Success(t *testing.T) {
	section := runSection(context.Background(), time.Second, "test", func(context.Context) (int, error) {
		return 42, nil
	})
	data, ok := section.Payload()
	if !ok || data != 42 {
		t.Errorf("Expected ok section with 42, got %v %v", data, ok)
	}
}

func TestBuildEmotionReport(t *testing.T) {
	tests := []struct {
		emotion string
		valence models.Valence
		arousal models.Arousal
	}{
		{"happy", models.ValencePositive, models.ArousalHigh},
		{"surprise", models.ValencePositive, models.ArousalHigh},
		{"angry", models.ValenceNegative, models.ArousalHigh},
		{"fear", models.ValenceNegative, models.ArousalHigh},
		{"disgust", models.ValenceNegative, models.ArousalHigh},
		{"sad", models.ValenceNegative, models.ArousalLow},
		{"neutral", models.ValenceNeutral, models.ArousalLow},
	}
	for _, tt := range tests {
		got := buildEmotionReport(models.EmotionResult{SceneEmotion: tt.emotion})
		if got.Valence != tt.valence || got.Arousal != tt.arousal {
			t.Errorf("buildEmotionReport(%s) = %s/%s, want %s/%s",
				tt.emotion, got.Valence, got.Arousal, tt.valence, tt.arousal)
		}
	}
}

func TestClassifyFraming(t *testing.T) {
	tests := []struct {
		name    string
		objects []models.DetectedObject
		want    models.Framing
	}{
		{"no people", objectsNamed("car"), models.FramingUndefined},
		{"confident single person", []models.DetectedObject{{Name: "person", Confidence: 0.9}}, models.FramingCloseUp},
		{"hesitant single person", []models.DetectedObject{{Name: "person", Confidence: 0.5}}, models.FramingMedium},
		{"pair", objectsNamed("person", "person"), models.FramingMedium},
		{"crowd", objectsNamed("person", "person", "person"), models.FramingOpen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyFraming(tt.objects); got != tt.want {
				t.Errorf("classifyFraming = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSocialSymbols(t *testing.T) {
	objects := objectsNamed("Brazilian flag", "dog", "dollar sign", "star")
	symbols := socialSymbols(objects)
	if len(symbols) != 3 {
		t.Fatalf("Expected 3 social symbols, got %v", symbols)
	}
}

func TestAnalyze_UniformImage(t *testing.T) {
	o := NewOrchestrator(vision.Collaborators{}, testOptions())
	defer o.Close()
	img := createTestImage(64, 64, color.RGBA{120, 120, 120, 255})

	report := o.Analyze(context.Background(), img)

	attention, ok := report.Attention.Payload()
	if !ok {
		t.Fatalf("Expected attention section ok, got %s", report.Attention.Status)
	}
	if attention.AttentionScore != 0 || len(attention.AttentionPoints) != 0 {
		t.Errorf("Expected empty attention for uniform image, got score=%f points=%d",
			attention.AttentionScore, len(attention.AttentionPoints))
	}
	if report.Summary.EmotionPalette == "" {
		t.Error("Expected emotion palette in summary")
	}
}
