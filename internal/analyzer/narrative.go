package analyzer

import (
	"strings"

	"github.com/leandrobosaipo/elroi-vision/pkg/models"
)

// urgencyKeywords mark scarcity/urgency language in extracted text.
var urgencyKeywords = []string{
	"agora", "urgente", "limitado", "últimas", "restam", "aproveite", "corra", "rápido",
}

// timeObjects are detected-object names that read as time pressure.
var timeObjects = []string{"clock", "watch", "timer", "hourglass"}

var storyMeanings = map[models.StoryKind]string{
	models.StoryHappyPerson:  "imagem transmite felicidade e conexão humana",
	models.StoryComplexScene: "múltiplos elementos criam narrativa rica e envolvente",
	models.StoryUrgency:      "elementos de urgência despertam ação imediata",
	models.StorySimple:       "narrativa direta e clara",
}

// NarrativeAnalyzer is the rule-based cross-signal combiner: it reads
// detected objects, the scene emotion, extracted text and the color palette
// and judges the implicit story, scarcity triggers and incongruence.
type NarrativeAnalyzer struct{}

func NewNarrativeAnalyzer() *NarrativeAnalyzer {
	return &NarrativeAnalyzer{}
}

// AnalyzeNarrative applies the story rule table. Upstream sections that did
// not resolve arrive as empty/neutral substitutes, never as errors.
func (a *NarrativeAnalyzer) AnalyzeNarrative(
	objects []models.DetectedObject,
	emotion models.EmotionResult,
	text models.TextResult,
	colors models.ColorReport,
) (models.NarrativeReport, error) {
	names := make(map[string]bool, len(objects))
	for _, obj := range objects {
		names[obj.Name] = true
	}
	loweredText := strings.ToLower(text.FullText)
	sceneEmotion := emotion.SceneEmotion
	palette := string(colors.EmotionPalette)
	if palette == "" {
		palette = string(models.EmotionNeutral)
	}

	scarcityKeywords := make([]string, 0)
	for _, kw := range urgencyKeywords {
		if strings.Contains(loweredText, kw) {
			scarcityKeywords = append(scarcityKeywords, kw)
		}
	}
	timeSymbols := make([]string, 0)
	for _, obj := range timeObjects {
		if names[obj] {
			timeSymbols = append(timeSymbols, obj)
		}
	}
	urgency := len(scarcityKeywords) > 0 || len(timeSymbols) > 0

	// First matching story wins.
	var story models.StoryKind
	switch {
	case names["person"] && sceneEmotion == "happy":
		story = models.StoryHappyPerson
	case len(names) > 3:
		story = models.StoryComplexScene
	case urgency:
		story = models.StoryUrgency
	default:
		story = models.StorySimple
	}

	incongruence := sceneEmotion == "happy" && strings.Contains(palette, "dark")

	var surprise float64
	switch {
	case incongruence:
		surprise = 0.7
	case urgency:
		surprise = 0.5
	case len(objects) > 5:
		surprise = 0.3
	}

	report := models.NarrativeReport{
		ImplicitStory:        story,
		StoryMeaning:         storyMeanings[story],
		ScarcityTrigger:      urgency,
		ScarcityKeywords:     scarcityKeywords,
		TimeSymbols:          timeSymbols,
		IncongruenceDetected: incongruence,
		SurpriseScore:        roundTo(surprise, 2),
		SurpriseLevel:        surpriseLevel(surprise),
	}
	if incongruence {
		report.IncongruenceNote = "Contraste entre emoção positiva e paleta escura cria interesse"
	}
	return report, nil
}

func surpriseLevel(score float64) models.SurpriseLevel {
	switch {
	case score > 0.6:
		return models.SurpriseHigh
	case score > 0.3:
		return models.SurpriseModerate
	default:
		return models.SurpriseLow
	}
}
