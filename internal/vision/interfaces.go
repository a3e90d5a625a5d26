// Package vision defines the narrow contracts for the pretrained-model
// collaborators the report orchestrator consumes. Every implementation is a
// black box over one image; an absent capability is signaled with
// ErrUnavailable rather than a crash.
package vision

import (
	"context"
	"errors"
	"image"

	"github.com/leandrobosaipo/elroi-vision/pkg/models"
)

// ErrUnavailable marks a capability whose backing model or runtime is not
// loaded. The orchestrator maps it to an unavailable report section.
var ErrUnavailable = errors.New("capability unavailable")

// ObjectDetector locates and names objects in the image.
type ObjectDetector interface {
	DetectObjects(ctx context.Context, img image.Image) ([]models.DetectedObject, error)
}

// TextExtractor performs optical character recognition.
type TextExtractor interface {
	ExtractText(ctx context.Context, img image.Image) (models.TextResult, error)
}

// EmotionDetector classifies facial/scene emotion.
type EmotionDetector interface {
	DetectEmotions(ctx context.Context, img image.Image) (models.EmotionResult, error)
}

// GazeEstimator estimates the dominant gaze direction of depicted people.
type GazeEstimator interface {
	EstimateGaze(ctx context.Context, img image.Image) (models.GazeResult, error)
}

// PoseAnalyzer reads body language from pose landmarks.
type PoseAnalyzer interface {
	AnalyzePose(ctx context.Context, img image.Image) (models.PoseResult, error)
}

// CaptionGenerator produces a natural-language description of the image.
type CaptionGenerator interface {
	GenerateCaption(ctx context.Context, img image.Image) (models.CaptionResult, error)
}

// SceneClassifier labels the scene as natural or artificial.
type SceneClassifier interface {
	ClassifyScene(ctx context.Context, img image.Image) (models.SceneResult, error)
}

// Collaborators bundles every capability handed to the orchestrator at
// construction time. Nil fields are filled with unavailable stubs so the
// orchestrator never branches on presence.
type Collaborators struct {
	Objects  ObjectDetector
	Text     TextExtractor
	Emotions EmotionDetector
	Gaze     GazeEstimator
	Pose     PoseAnalyzer
	Caption  CaptionGenerator
	Scene    SceneClassifier
}

// WithDefaults returns a copy with every nil capability replaced by an
// unavailable stub.
func (c Collaborators) WithDefaults() Collaborators {
	if c.Objects == nil {
		c.Objects = UnavailableObjectDetector{}
	}
	if c.Text == nil {
		c.Text = UnavailableTextExtractor{}
	}
	if c.Emotions == nil {
		c.Emotions = UnavailableEmotionDetector{}
	}
	if c.Gaze == nil {
		c.Gaze = UnavailableGazeEstimator{}
	}
	if c.Pose == nil {
		c.Pose = UnavailablePoseAnalyzer{}
	}
	if c.Caption == nil {
		c.Caption = UnavailableCaptionGenerator{}
	}
	if c.Scene == nil {
		c.Scene = UnavailableSceneClassifier{}
	}
	return c
}
