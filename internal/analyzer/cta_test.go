package analyzer

import (
	"image/color"
	"testing"

	"github.com/leandrobosaipo/elroi-vision/pkg/models"
)

func segmentAt(text string, cx, cy, w, h float64, confidence float64) models.TextSegment {
	return models.TextSegment{
		Text:       text,
		Confidence: confidence,
		BBox: models.BoundingBox{
			XMin: cx - w/2,
			YMin: cy - h/2,
			XMax: cx + w/2,
			YMax: cy + h/2,
		},
	}
}

func TestDetectCTAElements_StrategicPosition(t *testing.T) {
	analyzer := NewCTAAnalyzer(true)
	img := createTestImage(1000, 1000, color.RGBA{255, 255, 255, 255})

	segments := []models.TextSegment{
		segmentAt("Compre Agora", 800, 850, 100, 40, 0.9),
	}
	elements := analyzer.DetectCTAElements(img, segments)
	if len(elements) != 1 {
		t.Fatalf("Expected 1 CTA element, got %d", len(elements))
	}

	el := elements[0]
	if !el.IsStrategicPosition {
		t.Error("Expected strategic position at (0.8, 0.85)")
	}
	if el.Position.NormalizedX != 0.8 || el.Position.NormalizedY != 0.85 {
		t.Errorf("Expected normalized position (0.8,0.85), got (%f,%f)",
			el.Position.NormalizedX, el.Position.NormalizedY)
	}
	if len(el.Keywords) < 2 {
		t.Errorf("Expected compre and agora matches, got %v", el.Keywords)
	}
}

func TestDetectCTAElements_NonStrategicPosition(t *testing.T) {
	analyzer := NewCTAAnalyzer(true)
	img := createTestImage(1000, 1000, color.RGBA{255, 255, 255, 255})

	segments := []models.TextSegment{
		segmentAt("Compre Agora", 100, 100, 100, 40, 0.9),
	}
	elements := analyzer.DetectCTAElements(img, segments)
	if len(elements) != 1 {
		t.Fatalf("Expected 1 CTA element, got %d", len(elements))
	}
	if elements[0].IsStrategicPosition {
		t.Error("Expected non-strategic position at (0.1, 0.1)")
	}
}

func TestDetectCTAElements_BottomCenterBand(t *testing.T) {
	if !isStrategicPosition(0.5, 0.8) {
		t.Error("Expected bottom-center band (0.5, 0.8) to be strategic")
	}
	if isStrategicPosition(0.5, 0.65) {
		t.Error("Expected (0.5, 0.65) outside the bottom-center band")
	}
}

func TestDetectCTAElements_NoKeywords(t *testing.T) {
	analyzer := NewCTAAnalyzer(true)
	img := createTestImage(1000, 1000, color.RGBA{255, 255, 255, 255})

	segments := []models.TextSegment{
		segmentAt("paisagem bonita", 500, 500, 100, 40, 0.9),
	}
	if elements := analyzer.DetectCTAElements(img, segments); len(elements) != 0 {
		t.Errorf("Expected no CTA elements, got %d", len(elements))
	}
}

func TestMatchKeywords_FuzzyOCRMisread(t *testing.T) {
	analyzer := NewCTAAnalyzer(true)

	// "c0mpre" is one edit away from "compre"
	matched := analyzer.matchKeywords("C0mpre tudo")
	found := false
	for _, kw := range matched {
		if kw == "compre" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected fuzzy match for misread keyword, got %v", matched)
	}
}

func TestAnalyzeEffectiveness_NoElements(t *testing.T) {
	analyzer := NewCTAAnalyzer(true)

	score, recommendations := analyzer.AnalyzeEffectiveness(nil, models.ColorReport{})
	if score != 0 {
		t.Errorf("Expected zero score without elements, got %f", score)
	}
	if len(recommendations) != 1 {
		t.Errorf("Expected single add-a-CTA recommendation, got %v", recommendations)
	}
}

func TestAnalyzeEffectiveness_AllFactorsStrong(t *testing.T) {
	analyzer := NewCTAAnalyzer(true)

	elements := []models.CTAElement{{
		Text:                "Compre Agora",
		IsStrategicPosition: true,
		RelativeSize:        3.0,
		Confidence:          1.0,
	}}
	colors := models.ColorReport{AverageContrast: 5.0}

	score, recommendations := analyzer.AnalyzeEffectiveness(elements, colors)
	if score != 1.0 {
		t.Errorf("Expected perfect score 1.0, got %f", score)
	}
	if len(recommendations) != 0 {
		t.Errorf("Expected no recommendations for strong CTA, got %v", recommendations)
	}
}

func TestAnalyzeEffectiveness_WeakFactors(t *testing.T) {
	analyzer := NewCTAAnalyzer(true)

	elements := []models.CTAElement{{
		Text:                "clique",
		IsStrategicPosition: false,
		RelativeSize:        0.2,
		Confidence:          0.5,
	}}

	score, recommendations := analyzer.AnalyzeEffectiveness(elements, models.ColorReport{AverageContrast: 2.0})
	if score >= 0.5 {
		t.Errorf("Expected weak score below 0.5, got %f", score)
	}
	// Position, size and overall-visibility recommendations
	if len(recommendations) != 3 {
		t.Errorf("Expected 3 recommendations, got %v", recommendations)
	}
}

func TestAnalyzeCTA_EmptySegments(t *testing.T) {
	analyzer := NewCTAAnalyzer(false)
	img := createTestImage(200, 200, color.RGBA{255, 255, 255, 255})

	report, err := analyzer.AnalyzeCTA(img, nil, models.ColorReport{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if report.Present {
		t.Error("Expected no CTA present")
	}
	if report.Count != 0 {
		t.Errorf("Expected zero count, got %d", report.Count)
	}
	if report.EffectivenessScore != 0 {
		t.Errorf("Expected zero effectiveness, got %f", report.EffectivenessScore)
	}
	if report.QRDetected {
		t.Error("Expected no QR code in uniform image")
	}
}

func TestAnalyzeCTA_RelativeSizePercent(t *testing.T) {
	analyzer := NewCTAAnalyzer(true)
	img := createTestImage(100, 100, color.RGBA{255, 255, 255, 255})

	// 20x10 box on a 100x100 image covers 2% of the area
	segments := []models.TextSegment{
		segmentAt("compre", 50, 50, 20, 10, 0.8),
	}
	elements := analyzer.DetectCTAElements(img, segments)
	if len(elements) != 1 {
		t.Fatalf("Expected 1 element, got %d", len(elements))
	}
	if elements[0].RelativeSize != 2.0 {
		t.Errorf("Expected relative size 2.0%%, got %f", elements[0].RelativeSize)
	}
}
