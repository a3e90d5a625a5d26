package service

import (
	"context"
	"time"

	"github.com/leandrobosaipo/elroi-vision/internal/analyzer"
	"github.com/leandrobosaipo/elroi-vision/internal/observer"
	"github.com/leandrobosaipo/elroi-vision/internal/repository"
	"github.com/leandrobosaipo/elroi-vision/pkg/models"
)

// ReportService defines the interface for producing visual-impact reports.
type ReportService interface {
	AnalyzeImageURL(ctx context.Context, request models.AnalyzeRequest) (*models.ReportResponse, error)
	ValidateImageURL(imageURL string) error
}

// reportService fetches the image through the repository, runs the
// orchestrator and publishes lifecycle events.
type reportService struct {
	imageRepo    repository.ImageRepository
	orchestrator *analyzer.Orchestrator
	events       observer.Subject
}

// NewReportService creates a report service. A nil events subject disables
// lifecycle notifications.
func NewReportService(
	imageRepo repository.ImageRepository,
	orchestrator *analyzer.Orchestrator,
	events observer.Subject,
) ReportService {
	return &reportService{
		imageRepo:    imageRepo,
		orchestrator: orchestrator,
		events:       events,
	}
}

// AnalyzeImageURL resolves the image and builds the aggregate report. Only
// fetch/validation problems surface as errors; analyzer failures stay inside
// their report sections.
func (s *reportService) AnalyzeImageURL(ctx context.Context, request models.AnalyzeRequest) (*models.ReportResponse, error) {
	started := time.Now()
	s.notify(ctx, observer.ReportEvent{
		EventType: observer.ReportStarted,
		Timestamp: started,
		ImageURL:  request.URL,
	})

	img, err := s.imageRepo.FetchImage(ctx, request.URL)
	if err != nil {
		s.notify(ctx, observer.ReportEvent{
			EventType:    observer.ImageFetchFailed,
			Timestamp:    time.Now(),
			ImageURL:     request.URL,
			ErrorMessage: err.Error(),
		})
		s.notify(ctx, observer.ReportEvent{
			EventType:      observer.ReportFailed,
			Timestamp:      time.Now(),
			ImageURL:       request.URL,
			ProcessingTime: time.Since(started),
			ErrorMessage:   err.Error(),
		})
		return nil, err
	}
	s.notify(ctx, observer.ReportEvent{
		EventType: observer.ImageFetched,
		Timestamp: time.Now(),
		ImageURL:  request.URL,
		Success:   true,
	})

	report := s.orchestrator.Analyze(ctx, img)
	if request.ExpectedText != "" {
		attachTextMatch(report, request.ExpectedText)
	}

	elapsed := time.Since(started)
	s.notify(ctx, observer.ReportEvent{
		EventType:      observer.ReportCompleted,
		Timestamp:      time.Now(),
		ImageURL:       request.URL,
		ProcessingTime: elapsed,
		Success:        true,
		Metadata: map[string]interface{}{
			"sections_ok":     report.Summary.SectionsOK,
			"sections_failed": report.Summary.SectionsFailed,
		},
	})

	return &models.ReportResponse{
		ImageURL:          request.URL,
		Timestamp:         started.UTC().Format(time.RFC3339),
		ProcessingTimeSec: float64(elapsed) / float64(time.Second),
		Report:            report,
	}, nil
}

// ValidateImageURL validates the image URL.
func (s *reportService) ValidateImageURL(imageURL string) error {
	return s.imageRepo.ValidateImageURL(imageURL)
}

// attachTextMatch adds the expected-text comparison to a successful OCR
// section. An unresolved OCR section stays untouched.
func attachTextMatch(report *models.Report, expectedText string) {
	ocr, ok := report.OCR.Payload()
	if !ok {
		return
	}
	match := computeTextMatch(ocr.FullText, expectedText)
	ocr.Match = &match
	report.OCR = models.OK(ocr)
}

func (s *reportService) notify(ctx context.Context, event observer.ReportEvent) {
	if s.events != nil {
		s.events.NotifyObservers(ctx, event)
	}
}
