package analyzer

import (
	"fmt"
	"image"
	"strings"
	"unicode"

	"github.com/arbovm/levenshtein"

	"github.com/leandrobosaipo/elroi-vision/pkg/models"
)

// ctaKeywords is the multilingual call-to-action vocabulary matched against
// OCR text segments.
var ctaKeywords = []string{
	"compre", "buy", "comprar", "adquira", "peça", "order",
	"saiba mais", "learn more", "descubra", "discover",
	"cadastre-se", "sign up", "registre-se", "register",
	"baixe", "download", "baixar",
	"clique", "click", "toque", "tap",
	"agora", "now", "já", "already",
	"grátis", "free", "gratuito",
	"oferta", "offer", "promoção", "promotion",
	"experimente", "try", "teste", "test",
}

// CTAAnalyzer finds call-to-action candidates among OCR text segments and
// scores their placement, size and contrast effectiveness.
type CTAAnalyzer struct {
	qr            *qrDetector
	skipQR        bool
	fuzzyMatching bool
}

func NewCTAAnalyzer(skipQR bool) *CTAAnalyzer {
	return &CTAAnalyzer{
		qr:            newQRDetector(),
		skipQR:        skipQR,
		fuzzyMatching: true,
	}
}

// DetectCTAElements matches each text segment against the keyword list and
// annotates candidates with position, strategic placement and relative size.
func (a *CTAAnalyzer) DetectCTAElements(img image.Image, segments []models.TextSegment) []models.CTAElement {
	bounds := img.Bounds()
	imgW := float64(bounds.Dx())
	imgH := float64(bounds.Dy())

	elements := make([]models.CTAElement, 0)
	for _, seg := range segments {
		if !seg.BBox.Valid() {
			continue
		}
		keywords := a.matchKeywords(seg.Text)
		if len(keywords) == 0 {
			continue
		}

		cx, cy := seg.BBox.Center()
		nx := cx / imgW
		ny := cy / imgH

		elements = append(elements, models.CTAElement{
			Text:     seg.Text,
			Keywords: keywords,
			BBox:     seg.BBox,
			Position: models.CTAPosition{
				X:           roundTo(cx, 1),
				Y:           roundTo(cy, 1),
				NormalizedX: roundTo(nx, 3),
				NormalizedY: roundTo(ny, 3),
			},
			IsStrategicPosition: isStrategicPosition(nx, ny),
			RelativeSize:        roundTo(seg.BBox.Area()/(imgW*imgH)*100, 2),
			Confidence:          seg.Confidence,
		})
	}
	return elements
}

// matchKeywords collects every keyword the lowered text contains. Single
// words of five or more characters also match within one edit, which absorbs
// common OCR misreads.
func (a *CTAAnalyzer) matchKeywords(text string) []string {
	lowered := strings.ToLower(text)
	words := strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})

	matched := make([]string, 0)
	for _, keyword := range ctaKeywords {
		if strings.Contains(lowered, keyword) {
			matched = append(matched, keyword)
			continue
		}
		if !a.fuzzyMatching || strings.ContainsRune(keyword, ' ') || len([]rune(keyword)) < 5 {
			continue
		}
		for _, word := range words {
			if levenshtein.Distance(word, keyword) <= 1 {
				matched = append(matched, keyword)
				break
			}
		}
	}
	return matched
}

// isStrategicPosition is true in the bottom-right sextant or the
// bottom-center band, the placements that convert best.
func isStrategicPosition(nx, ny float64) bool {
	if nx > 0.6 && ny > 0.6 {
		return true
	}
	return nx > 0.4 && nx < 0.6 && ny > 0.7
}

// AnalyzeEffectiveness scores the detected elements and emits targeted
// recommendations for the weak factors.
func (a *CTAAnalyzer) AnalyzeEffectiveness(elements []models.CTAElement, colors models.ColorReport) (float64, []string) {
	if len(elements) == 0 {
		return 0, []string{"Adicione um Call-to-Action claro e visível"}
	}

	recommendations := make([]string, 0)
	var sum float64
	for _, cta := range elements {
		var score float64

		if cta.IsStrategicPosition {
			score += 0.3
		} else {
			recommendations = append(recommendations,
				fmt.Sprintf("CTA %q poderia estar em posição mais estratégica (inferior direito)", cta.Text))
		}

		if cta.RelativeSize > 2.0 {
			score += 0.3
		} else if cta.RelativeSize < 0.5 {
			recommendations = append(recommendations,
				fmt.Sprintf("CTA %q é muito pequeno para ser facilmente notado", cta.Text))
		}

		score += cta.Confidence * 0.2
		if colors.AverageContrast > 4.5 {
			score += 0.2
		}
		sum += score
	}

	avg := roundTo(sum/float64(len(elements)), 2)
	if avg < 0.5 {
		recommendations = append(recommendations, "Melhore visibilidade do CTA aumentando contraste e tamanho")
	}
	return avg, recommendations
}

// AnalyzeCTA runs detection and effectiveness scoring, plus the informational
// QR-code probe.
func (a *CTAAnalyzer) AnalyzeCTA(img image.Image, segments []models.TextSegment, colors models.ColorReport) (models.CTAReport, error) {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return models.CTAReport{}, fmt.Errorf("image has no pixels")
	}

	elements := a.DetectCTAElements(img, segments)
	score, recommendations := a.AnalyzeEffectiveness(elements, colors)

	qrDetected := false
	if !a.skipQR {
		qrDetected = a.qr.DetectQRCode(grayscale(img))
	}

	return models.CTAReport{
		Present:            len(elements) > 0,
		Count:              len(elements),
		Elements:           elements,
		EffectivenessScore: score,
		Recommendations:    recommendations,
		QRDetected:         qrDetected,
	}, nil
}
