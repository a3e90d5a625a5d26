package models

// AnalyzeRequest is the transport-level request for a visual-impact report.
// ExpectedText is optional; when set, the OCR section carries a match block
// comparing the extracted text against it.
type AnalyzeRequest struct {
	URL          string `json:"url" binding:"required,url"`
	ExpectedText string `json:"expected_text,omitempty"`
}

// ReportResponse wraps the aggregate report with request metadata.
type ReportResponse struct {
	ImageURL          string  `json:"image_url"`
	Timestamp         string  `json:"timestamp"`
	ProcessingTimeSec float64 `json:"processing_time_sec"`
	Report            *Report `json:"report"`
}
