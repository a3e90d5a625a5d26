package analyzer

import (
	"testing"

	"github.com/leandrobosaipo/elroi-vision/pkg/models"
)

func objectsNamed(names ...string) []models.DetectedObject {
	objects := make([]models.DetectedObject, 0, len(names))
	for _, name := range names {
		objects = append(objects, models.DetectedObject{Name: name, Confidence: 0.9})
	}
	return objects
}

func TestAnalyzeNarrative_StoryRules(t *testing.T) {
	analyzer := NewNarrativeAnalyzer()

	tests := []struct {
		name    string
		objects []models.DetectedObject
		emotion string
		text    string
		want    models.StoryKind
	}{
		{
			name:    "happy person",
			objects: objectsNamed("person", "dog"),
			emotion: "happy",
			want:    models.StoryHappyPerson,
		},
		{
			name:    "complex scene",
			objects: objectsNamed("car", "tree", "dog", "house"),
			emotion: "neutral",
			want:    models.StoryComplexScene,
		},
		{
			name:    "urgency from text",
			objects: objectsNamed("car"),
			emotion: "neutral",
			text:    "Aproveite agora",
			want:    models.StoryUrgency,
		},
		{
			name:    "simple fallback",
			objects: objectsNamed("car"),
			emotion: "neutral",
			want:    models.StorySimple,
		},
		{
			name:    "happy person beats complex scene",
			objects: objectsNamed("person", "car", "tree", "dog", "house"),
			emotion: "happy",
			want:    models.StoryHappyPerson,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := analyzer.AnalyzeNarrative(
				tt.objects,
				models.EmotionResult{SceneEmotion: tt.emotion},
				models.TextResult{FullText: tt.text},
				models.ColorReport{},
			)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if report.ImplicitStory != tt.want {
				t.Errorf("Expected story %s, got %s", tt.want, report.ImplicitStory)
			}
			if report.StoryMeaning == "" {
				t.Error("Expected a story meaning for every story kind")
			}
		})
	}
}

func TestAnalyzeNarrative_ScarcityFromText(t *testing.T) {
	analyzer := NewNarrativeAnalyzer()

	report, err := analyzer.AnalyzeNarrative(
		nil,
		models.EmotionResult{SceneEmotion: "neutral"},
		models.TextResult{FullText: "Últimas unidades, aproveite!"},
		models.ColorReport{},
	)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !report.ScarcityTrigger {
		t.Error("Expected scarcity trigger from urgency keywords")
	}
	if len(report.ScarcityKeywords) != 2 {
		t.Errorf("Expected últimas and aproveite, got %v", report.ScarcityKeywords)
	}
	if report.SurpriseScore != 0.5 {
		t.Errorf("Expected surprise 0.5 for urgency, got %f", report.SurpriseScore)
	}
	if report.SurpriseLevel != models.SurpriseModerate {
		t.Errorf("Expected moderado surprise, got %s", report.SurpriseLevel)
	}
}

func TestAnalyzeNarrative_ScarcityFromTimeSymbols(t *testing.T) {
	analyzer := NewNarrativeAnalyzer()

	report, err := analyzer.AnalyzeNarrative(
		objectsNamed("clock", "person"),
		models.EmotionResult{SceneEmotion: "neutral"},
		models.TextResult{},
		models.ColorReport{},
	)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !report.ScarcityTrigger {
		t.Error("Expected scarcity trigger from time symbols")
	}
	if len(report.TimeSymbols) != 1 || report.TimeSymbols[0] != "clock" {
		t.Errorf("Expected clock time symbol, got %v", report.TimeSymbols)
	}
	if len(report.ScarcityKeywords) != 0 {
		t.Errorf("Expected no text keywords, got %v", report.ScarcityKeywords)
	}
}

func TestAnalyzeNarrative_Incongruence(t *testing.T) {
	analyzer := NewNarrativeAnalyzer()

	report, err := analyzer.AnalyzeNarrative(
		objectsNamed("person"),
		models.EmotionResult{SceneEmotion: "happy"},
		models.TextResult{},
		models.ColorReport{EmotionPalette: models.EmotionDark},
	)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !report.IncongruenceDetected {
		t.Error("Expected incongruence for happy emotion over dark palette")
	}
	if report.IncongruenceNote == "" {
		t.Error("Expected incongruence note")
	}
	if report.SurpriseScore != 0.7 {
		t.Errorf("Expected surprise 0.7, got %f", report.SurpriseScore)
	}
	if report.SurpriseLevel != models.SurpriseHigh {
		t.Errorf("Expected alto surprise, got %s", report.SurpriseLevel)
	}
}

func TestAnalyzeNarrative_ManyObjectsSurprise(t *testing.T) {
	analyzer := NewNarrativeAnalyzer()

	report, err := analyzer.AnalyzeNarrative(
		objectsNamed("car", "tree", "dog", "house", "bird", "bench"),
		models.EmotionResult{SceneEmotion: "neutral"},
		models.TextResult{},
		models.ColorReport{},
	)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if report.SurpriseScore != 0.3 {
		t.Errorf("Expected surprise 0.3 for crowded scene, got %f", report.SurpriseScore)
	}
	if report.SurpriseLevel != models.SurpriseLow {
		t.Errorf("Expected baixo surprise, got %s", report.SurpriseLevel)
	}
}

func TestAnalyzeNarrative_EmptyInputs(t *testing.T) {
	analyzer := NewNarrativeAnalyzer()

	report, err := analyzer.AnalyzeNarrative(nil, models.EmotionResult{}, models.TextResult{}, models.ColorReport{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if report.ImplicitStory != models.StorySimple {
		t.Errorf("Expected simples story for empty inputs, got %s", report.ImplicitStory)
	}
	if report.ScarcityTrigger || report.IncongruenceDetected {
		t.Error("Expected no triggers for empty inputs")
	}
	if report.SurpriseScore != 0 {
		t.Errorf("Expected zero surprise, got %f", report.SurpriseScore)
	}
}
