package vision

import (
	"context"
	"fmt"
	"image"

	"github.com/leandrobosaipo/elroi-vision/pkg/models"
)

func unavailable(capability string) error {
	return fmt.Errorf("%s: no pretrained model loaded: %w", capability, ErrUnavailable)
}

// UnavailableObjectDetector is the stub used when no detector is wired in.
type UnavailableObjectDetector struct{}

func (UnavailableObjectDetector) DetectObjects(context.Context, image.Image) ([]models.DetectedObject, error) {
	return nil, unavailable("object detector")
}

// UnavailableTextExtractor is the stub used when OCR is disabled.
type UnavailableTextExtractor struct{}

func (UnavailableTextExtractor) ExtractText(context.Context, image.Image) (models.TextResult, error) {
	return models.TextResult{}, unavailable("text extractor")
}

// UnavailableEmotionDetector is the stub used when no emotion model is wired in.
type UnavailableEmotionDetector struct{}

func (UnavailableEmotionDetector) DetectEmotions(context.Context, image.Image) (models.EmotionResult, error) {
	return models.EmotionResult{}, unavailable("emotion detector")
}

// UnavailableGazeEstimator is the stub used when no gaze model is wired in.
type UnavailableGazeEstimator struct{}

func (UnavailableGazeEstimator) EstimateGaze(context.Context, image.Image) (models.GazeResult, error) {
	return models.GazeResult{}, unavailable("gaze estimator")
}

// UnavailablePoseAnalyzer is the stub used when no pose model is wired in.
type UnavailablePoseAnalyzer struct{}

func (UnavailablePoseAnalyzer) AnalyzePose(context.Context, image.Image) (models.PoseResult, error) {
	return models.PoseResult{}, unavailable("pose analyzer")
}

// UnavailableCaptionGenerator is the stub used when no captioning model is wired in.
type UnavailableCaptionGenerator struct{}

func (UnavailableCaptionGenerator) GenerateCaption(context.Context, image.Image) (models.CaptionResult, error) {
	return models.CaptionResult{}, unavailable("caption generator")
}

// UnavailableSceneClassifier is the stub used when no scene model is wired in.
type UnavailableSceneClassifier struct{}

func (UnavailableSceneClassifier) ClassifyScene(context.Context, image.Image) (models.SceneResult, error) {
	return models.SceneResult{}, unavailable("scene classifier")
}
