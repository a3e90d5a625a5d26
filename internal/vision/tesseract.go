package vision

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/leandrobosaipo/elroi-vision/internal/logger"
	"github.com/leandrobosaipo/elroi-vision/pkg/models"
)

// TesseractExtractor implements TextExtractor over a local Tesseract
// runtime. The client is initialized lazily once and guarded by a mutex
// since gosseract clients are not safe for concurrent use.
type TesseractExtractor struct {
	languages []string

	initOnce sync.Once
	initErr  error

	mu     sync.Mutex
	client *gosseract.Client
}

// NewTesseractExtractor builds an extractor for the given languages
// (e.g. "eng", "por"). The Tesseract runtime is probed on first use, not
// at construction.
func NewTesseractExtractor(languages ...string) *TesseractExtractor {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &TesseractExtractor{languages: languages}
}

func (t *TesseractExtractor) init() {
	client := gosseract.NewClient()
	if err := client.SetLanguage(t.languages...); err != nil {
		client.Close()
		t.initErr = fmt.Errorf("tesseract language setup (%s): %w: %v",
			strings.Join(t.languages, ","), ErrUnavailable, err)
		return
	}
	t.client = client
	logger.WithField("languages", strings.Join(t.languages, ",")).Debug("tesseract client initialized")
}

// ExtractText runs word-level OCR and returns the joined full text plus one
// segment per recognized word with its confidence and bounding box.
func (t *TesseractExtractor) ExtractText(ctx context.Context, img image.Image) (models.TextResult, error) {
	t.initOnce.Do(t.init)
	if t.initErr != nil {
		return models.TextResult{}, t.initErr
	}
	if err := ctx.Err(); err != nil {
		return models.TextResult{}, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return models.TextResult{}, fmt.Errorf("encoding image for ocr: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.client == nil {
		return models.TextResult{}, fmt.Errorf("text extractor closed: %w", ErrUnavailable)
	}

	if err := t.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return models.TextResult{}, fmt.Errorf("loading image into tesseract: %w", err)
	}
	boxes, err := t.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return models.TextResult{}, fmt.Errorf("tesseract recognition: %w", err)
	}

	segments := make([]models.TextSegment, 0, len(boxes))
	words := make([]string, 0, len(boxes))
	for _, box := range boxes {
		word := strings.TrimSpace(box.Word)
		if word == "" {
			continue
		}
		confidence := box.Confidence / 100
		if confidence < 0 {
			confidence = 0
		}
		if confidence > 1 {
			confidence = 1
		}
		segments = append(segments, models.TextSegment{
			Text:       word,
			Confidence: confidence,
			BBox: models.BoundingBox{
				XMin: float64(box.Box.Min.X),
				YMin: float64(box.Box.Min.Y),
				XMax: float64(box.Box.Max.X),
				YMax: float64(box.Box.Max.Y),
			},
		})
		words = append(words, word)
	}

	return models.TextResult{
		FullText: strings.Join(words, " "),
		Segments: segments,
	}, nil
}

// Close releases the Tesseract client if it was initialized.
func (t *TesseractExtractor) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.client == nil {
		return nil
	}
	err := t.client.Close()
	t.client = nil
	return err
}
