package models

// EmotionTag classifies a color's emotional impact from its HSV components.
type EmotionTag string

const (
	EmotionDark          EmotionTag = "dark"
	EmotionLight         EmotionTag = "light"
	EmotionNeutral       EmotionTag = "neutral"
	EmotionWarmEnergetic EmotionTag = "warm-energetic"
	EmotionCheerful      EmotionTag = "cheerful"
	EmotionFresh         EmotionTag = "fresh"
	EmotionCalm          EmotionTag = "calm"
	EmotionTrustworthy   EmotionTag = "trustworthy"
	EmotionCreative      EmotionTag = "creative"
)

// HSV carries hue in degrees [0,360) and saturation/value as percentages.
type HSV struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// DominantColor is one quantized color bucket ranked by pixel count.
type DominantColor struct {
	RGB        [3]uint8   `json:"rgb"`
	Hex        string     `json:"hex"`
	Percentage float64    `json:"percentage"`
	HSV        HSV        `json:"hsv"`
	EmotionTag EmotionTag `json:"emotion_tag"`
}

// ColorReport is the color engine output.
type ColorReport struct {
	DominantColors  []DominantColor `json:"dominant_colors"`
	AverageContrast float64         `json:"average_contrast"`
	EmotionPalette  EmotionTag      `json:"emotion_palette"`
	ColorCount      int             `json:"color_count"`
}

// ThirdsAlignment classifies the attention centroid against the rule of thirds.
type ThirdsAlignment string

const (
	AlignmentAligned ThirdsAlignment = "aligned"
	AlignmentCenter  ThirdsAlignment = "center"
	AlignmentUnknown ThirdsAlignment = "unknown"
)

// AttentionPoint is a local saliency maximum.
type AttentionPoint struct {
	X           int     `json:"x"`
	Y           int     `json:"y"`
	Score       float64 `json:"score"`
	NormalizedX float64 `json:"normalized_x"`
	NormalizedY float64 `json:"normalized_y"`
}

// FocusCenter is the saliency-weighted centroid of the attention map.
type FocusCenter struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	NormalizedX float64 `json:"normalized_x"`
	NormalizedY float64 `json:"normalized_y"`
}

// AttentionReport is the saliency engine output.
type AttentionReport struct {
	AttentionScore        float64          `json:"attention_score"`
	FocusCenter           FocusCenter      `json:"focus_center"`
	RuleOfThirdsAlignment ThirdsAlignment  `json:"rule_of_thirds_alignment"`
	AttentionPoints       []AttentionPoint `json:"attention_points"`
}

// SymmetryLevel tiers the averaged mirror correlation.
type SymmetryLevel string

const (
	SymmetryVeryHigh SymmetryLevel = "muito_alto"
	SymmetryHigh     SymmetryLevel = "alto"
	SymmetryModerate SymmetryLevel = "moderado"
	SymmetryLow      SymmetryLevel = "baixo"
)

// SymmetryAxis names the dominant mirror axis.
type SymmetryAxis string

const (
	AxisHorizontal SymmetryAxis = "horizontal"
	AxisVertical   SymmetryAxis = "vertical"
	AxisBoth       SymmetryAxis = "ambas"
)

// SymmetryReport is the symmetry engine output.
type SymmetryReport struct {
	Level              SymmetryLevel `json:"symmetry_level"`
	Score              float64       `json:"symmetry_score"`
	HorizontalSymmetry float64       `json:"horizontal_symmetry"`
	VerticalSymmetry   float64       `json:"vertical_symmetry"`
	DominantAxis       SymmetryAxis  `json:"dominant_symmetry_type"`
}

// TextureType tiers local-pattern histogram entropy.
type TextureType string

const (
	TextureComplex  TextureType = "complexa"
	TextureModerate TextureType = "moderada"
	TextureSimple   TextureType = "simples"
)

// TactileSensation tiers texture-pattern variance.
type TactileSensation string

const (
	TactileRough      TactileSensation = "aspera"
	TactileTextured   TactileSensation = "texturizada"
	TactileSmooth     TactileSensation = "lisa"
	TactileVerySmooth TactileSensation = "muito_lisa"
)

// TextureMethod records which texture primitive produced the report.
type TextureMethod string

const (
	TextureMethodLBP      TextureMethod = "lbp"
	TextureMethodGradient TextureMethod = "gradient"
)

// TextureReport is the texture engine output. Entropy is nil when the
// gradient fallback was used.
type TextureReport struct {
	Type     TextureType      `json:"texture_type"`
	Entropy  *float64         `json:"texture_entropy"`
	Variance float64          `json:"texture_variance"`
	Tactile  TactileSensation `json:"tactile_sensation"`
	Method   TextureMethod    `json:"method"`
}

// FocusLevel tiers per-region Laplacian variance.
type FocusLevel string

const (
	FocusHigh   FocusLevel = "alto"
	FocusMedium FocusLevel = "medio"
	FocusLow    FocusLevel = "baixo"
)

// DepthType classifies the variance range across regions.
type DepthType string

const (
	DepthShallow  DepthType = "rasa"
	DepthModerate DepthType = "moderada"
	DepthDeep     DepthType = "profunda"
)

// RegionName identifies one of the five overlapping focus regions.
type RegionName string

const (
	RegionTopLeft     RegionName = "superior_esquerdo"
	RegionTopRight    RegionName = "superior_direito"
	RegionBottomLeft  RegionName = "inferior_esquerdo"
	RegionBottomRight RegionName = "inferior_direito"
	RegionCenter      RegionName = "centro"
)

// RegionFocus is the sharpness measurement for one region.
type RegionFocus struct {
	Variance   float64    `json:"variance"`
	FocusLevel FocusLevel `json:"focus_level"`
}

// DepthReport is the depth-of-field engine output.
type DepthReport struct {
	OverallFocus    FocusLevel                 `json:"overall_focus_level"`
	AverageVariance float64                    `json:"average_variance"`
	DepthType       DepthType                  `json:"depth_of_field_type"`
	MostFocused     RegionName                 `json:"most_focused_region"`
	LeastFocused    RegionName                 `json:"least_focused_region"`
	Regions         map[RegionName]RegionFocus `json:"quadrant_analysis"`
}

// LightingLevel tiers mean luminance on the 0-255 scale.
type LightingLevel string

const (
	LightingVeryHigh LightingLevel = "muito_alto"
	LightingHigh     LightingLevel = "alto"
	LightingModerate LightingLevel = "moderado"
	LightingLow      LightingLevel = "baixo"
	LightingVeryLow  LightingLevel = "muito_baixo"
)

// ContrastLevel tiers luminance standard deviation.
type ContrastLevel string

const (
	ContrastHigh     ContrastLevel = "alto"
	ContrastModerate ContrastLevel = "moderado"
	ContrastLow      ContrastLevel = "baixo"
)

// ColorTemperature classifies the red-to-blue channel ratio.
type ColorTemperature string

const (
	TemperatureWarm        ColorTemperature = "quente"
	TemperatureNeutralWarm ColorTemperature = "neutra_quente"
	TemperatureNeutral     ColorTemperature = "neutra"
	TemperatureCold        ColorTemperature = "fria"
	TemperatureUndefined   ColorTemperature = "indefinido"
)

// LightingReport is the lighting engine output.
type LightingReport struct {
	Level             LightingLevel    `json:"lighting_level"`
	AverageLuminance  float64          `json:"average_luminance"`
	LuminanceStd      float64          `json:"luminance_std"`
	Contrast          ContrastLevel    `json:"contrast_level"`
	ColorTemperature  ColorTemperature `json:"color_temperature"`
	TemperatureKelvin int              `json:"temperature_kelvin_approx"`
}

// CTAPosition is the center of a CTA candidate in pixel and normalized space.
type CTAPosition struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	NormalizedX float64 `json:"normalized_x"`
	NormalizedY float64 `json:"normalized_y"`
}

// CTAElement is one text segment matched against the CTA keyword list.
type CTAElement struct {
	Text                string      `json:"text"`
	Keywords            []string    `json:"keywords"`
	BBox                BoundingBox `json:"bbox"`
	Position            CTAPosition `json:"position"`
	IsStrategicPosition bool        `json:"is_strategic_position"`
	RelativeSize        float64     `json:"relative_size"`
	Confidence          float64     `json:"confidence"`
}

// CTAReport is the CTA engine output.
type CTAReport struct {
	Present            bool         `json:"cta_present"`
	Count              int          `json:"cta_count"`
	Elements           []CTAElement `json:"elements"`
	EffectivenessScore float64      `json:"effectiveness_score"`
	Recommendations    []string     `json:"recommendations"`
	QRDetected         bool         `json:"qr_detected"`
}

// StoryKind is the closed set of implicit-story classifications.
type StoryKind string

const (
	StoryHappyPerson  StoryKind = "pessoa_feliz"
	StoryComplexScene StoryKind = "cena_complexa"
	StoryUrgency      StoryKind = "urgencia_acao"
	StorySimple       StoryKind = "narrativa_simples"
)

// SurpriseLevel tiers the surprise score.
type SurpriseLevel string

const (
	SurpriseHigh     SurpriseLevel = "alto"
	SurpriseModerate SurpriseLevel = "moderado"
	SurpriseLow      SurpriseLevel = "baixo"
)

// NarrativeReport is the narrative/incongruence heuristic output.
type NarrativeReport struct {
	ImplicitStory        StoryKind     `json:"implicit_story"`
	StoryMeaning         string        `json:"story_meaning"`
	ScarcityTrigger      bool          `json:"scarcity_trigger_detected"`
	ScarcityKeywords     []string      `json:"scarcity_keywords"`
	TimeSymbols          []string      `json:"time_symbols"`
	IncongruenceDetected bool          `json:"incongruence_detected"`
	IncongruenceNote     string        `json:"incongruence_explanation,omitempty"`
	SurpriseScore        float64       `json:"surprise_score"`
	SurpriseLevel        SurpriseLevel `json:"surprise_level"`
}

// ObjectsReport is the object-detection collaborator section payload.
type ObjectsReport struct {
	Objects     []DetectedObject `json:"objects"`
	PeopleCount int              `json:"people_count"`
}

// TextMatch compares extracted OCR text against a caller-supplied expected
// text. Present only when the analyze request carried expected text.
type TextMatch struct {
	ExpectedText     string  `json:"expected_text"`
	LevenshteinRatio float64 `json:"levenshtein_ratio"`
	WordErrorRate    float64 `json:"word_error_rate"`
}

// OCRReport is the OCR collaborator section payload.
type OCRReport struct {
	TextResult
	Match *TextMatch `json:"match,omitempty"`
}

// Valence classifies the scene emotion as positive, negative or neutral.
type Valence string

const (
	ValencePositive Valence = "positive"
	ValenceNegative Valence = "negative"
	ValenceNeutral  Valence = "neutral"
)

// Arousal classifies the activation level of the scene emotion.
type Arousal string

const (
	ArousalHigh Arousal = "high"
	ArousalLow  Arousal = "low"
)

// EmotionReport is the facial-emotion collaborator section payload.
type EmotionReport struct {
	EmotionResult
	Valence Valence `json:"valence"`
	Arousal Arousal `json:"arousal"`
}

// Framing estimates the shot type from detected people.
type Framing string

const (
	FramingCloseUp   Framing = "close_up"
	FramingMedium    Framing = "medio"
	FramingOpen      Framing = "aberto"
	FramingUndefined Framing = "indefinido"
)

// Summary is derived purely from sections that completed successfully.
type Summary struct {
	SectionsOK          int           `json:"sections_ok"`
	SectionsUnavailable int           `json:"sections_unavailable"`
	SectionsFailed      int           `json:"sections_failed"`
	PeopleCount         int           `json:"people_count"`
	Framing             Framing       `json:"framing"`
	SocialSymbols       []string      `json:"social_symbols"`
	EmotionPalette      EmotionTag    `json:"emotion_palette"`
	AttentionScore      float64       `json:"attention_score"`
	CTAPresent          bool          `json:"cta_present"`
	SurpriseLevel       SurpriseLevel `json:"surprise_level"`
}

// Report is the aggregate visual-impact report. Its shape is fixed: every
// section is always present and independently signals its own status.
type Report struct {
	Objects   Section[ObjectsReport]   `json:"objects"`
	OCR       Section[OCRReport]       `json:"ocr"`
	Colors    Section[ColorReport]     `json:"colors"`
	Emotions  Section[EmotionReport]   `json:"emotions"`
	Gaze      Section[GazeResult]      `json:"gaze"`
	Pose      Section[PoseResult]      `json:"pose"`
	Caption   Section[CaptionResult]   `json:"caption"`
	Scene     Section[SceneResult]     `json:"scene"`
	Attention Section[AttentionReport] `json:"attention"`
	Symmetry  Section[SymmetryReport]  `json:"symmetry"`
	Texture   Section[TextureReport]   `json:"texture"`
	Depth     Section[DepthReport]     `json:"depth_of_field"`
	Lighting  Section[LightingReport]  `json:"lighting"`
	CTA       Section[CTAReport]       `json:"cta"`
	Narrative Section[NarrativeReport] `json:"narrative"`
	Summary   Summary                  `json:"summary"`
}
