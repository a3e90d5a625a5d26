package models

// BoundingBox is an axis-aligned box in pixel coordinates.
// Invariant: XMin <= XMax, YMin <= YMax.
type BoundingBox struct {
	XMin float64 `json:"xmin"`
	YMin float64 `json:"ymin"`
	XMax float64 `json:"xmax"`
	YMax float64 `json:"ymax"`
}

// Width returns the horizontal extent of the box.
func (b BoundingBox) Width() float64 { return b.XMax - b.XMin }

// Height returns the vertical extent of the box.
func (b BoundingBox) Height() float64 { return b.YMax - b.YMin }

// Area returns the box area in square pixels.
func (b BoundingBox) Area() float64 { return b.Width() * b.Height() }

// Center returns the box center point.
func (b BoundingBox) Center() (x, y float64) {
	return (b.XMin + b.XMax) / 2, (b.YMin + b.YMax) / 2
}

// Valid reports whether the box is well-formed.
func (b BoundingBox) Valid() bool {
	return b.XMin <= b.XMax && b.YMin <= b.YMax
}

// DetectedObject is one object returned by the detection collaborator.
type DetectedObject struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// TextSegment is one piece of text located by the OCR collaborator.
type TextSegment struct {
	Text       string      `json:"text"`
	Confidence float64     `json:"confidence"`
	BBox       BoundingBox `json:"bbox"`
}

// TextResult is the full OCR collaborator output.
type TextResult struct {
	FullText string        `json:"full_text"`
	Segments []TextSegment `json:"segments"`
}

// EmotionResult is the facial-emotion collaborator output.
type EmotionResult struct {
	FacesDetected     int     `json:"faces_detected"`
	SceneEmotion      string  `json:"scene_emotion"`
	AverageConfidence float64 `json:"average_confidence"`
}

// GazeResult is the gaze-estimation collaborator output.
type GazeResult struct {
	PrimaryDirection string `json:"primary_direction"`
	TargetRegion     string `json:"target_region"`
}

// PoseResult is the pose/body-language collaborator output.
type PoseResult struct {
	DominantPosture   string `json:"dominant_posture"`
	MovementSensation string `json:"movement_sensation"`
}

// CaptionResult is the image-captioning collaborator output.
type CaptionResult struct {
	Caption    string  `json:"caption"`
	Confidence float64 `json:"confidence"`
}

// SceneResult is the natural-vs-artificial scene classifier output.
type SceneResult struct {
	SceneType string `json:"scene_type"`
}
