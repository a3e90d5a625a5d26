package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leandrobosaipo/elroi-vision/internal/config"
	apperrors "github.com/leandrobosaipo/elroi-vision/internal/errors"
	"github.com/leandrobosaipo/elroi-vision/pkg/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeReportService struct {
	response    *models.ReportResponse
	analyzeErr  error
	validateErr error
}

func (f *fakeReportService) AnalyzeImageURL(_ context.Context, request models.AnalyzeRequest) (*models.ReportResponse, error) {
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	response := f.response
	if response == nil {
		response = &models.ReportResponse{
			ImageURL:  request.URL,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Report:    &models.Report{},
		}
	}
	return response, nil
}

func (f *fakeReportService) ValidateImageURL(string) error {
	return f.validateErr
}

func testConfig() *config.Config {
	return &config.Config{
		Host:               "127.0.0.1",
		Port:               "8080",
		RequestTimeout:     5 * time.Second,
		ImageFetchTimeout:  5 * time.Second,
		AnalyzerTimeout:    5 * time.Second,
		MaxRequestBodySize: 1 << 20,
	}
}

func postAnalyze(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestAnalyzeEndpoint_Success(t *testing.T) {
	handler := NewHandler(&fakeReportService{}, testConfig())

	w := postAnalyze(t, handler, `{"url": "https://example.com/banner.jpg"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var response models.ReportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.ImageURL != "https://example.com/banner.jpg" {
		t.Errorf("Expected request URL echoed, got %s", response.ImageURL)
	}
}

func TestAnalyzeEndpoint_InvalidJSON(t *testing.T) {
	handler := NewHandler(&fakeReportService{}, testConfig())

	w := postAnalyze(t, handler, `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed JSON, got %d", w.Code)
	}
}

func TestAnalyzeEndpoint_MissingURL(t *testing.T) {
	handler := NewHandler(&fakeReportService{}, testConfig())

	w := postAnalyze(t, handler, `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing image_url, got %d", w.Code)
	}
}

func TestAnalyzeEndpoint_ValidationFailure(t *testing.T) {
	svc := &fakeReportService{
		validateErr: apperrors.NewValidationError("URL scheme not allowed", nil),
	}
	handler := NewHandler(svc, testConfig())

	w := postAnalyze(t, handler, `{"url": "https://example.com/banner.jpg"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for validation failure, got %d", w.Code)
	}

	var response ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if response.Error != "invalid image URL" {
		t.Errorf("Expected invalid image URL error, got %q", response.Error)
	}
}

func TestAnalyzeEndpoint_NetworkFailure(t *testing.T) {
	svc := &fakeReportService{
		analyzeErr: apperrors.NewNetworkError("image fetch failed", errors.New("connection refused")),
	}
	handler := NewHandler(svc, testConfig())

	w := postAnalyze(t, handler, `{"url": "https://example.com/banner.jpg"}`)
	if w.Code != http.StatusBadGateway {
		t.Errorf("Expected 502 for network failure, got %d", w.Code)
	}
}

func TestAnalyzeEndpoint_TimeoutMapsTo504(t *testing.T) {
	svc := &fakeReportService{analyzeErr: context.DeadlineExceeded}
	handler := NewHandler(svc, testConfig())

	w := postAnalyze(t, handler, `{"url": "https://example.com/banner.jpg"}`)
	if w.Code != http.StatusGatewayTimeout {
		t.Errorf("Expected 504 for timeout, got %d", w.Code)
	}
}

func TestAnalyzeEndpoint_UnknownErrorMapsTo500(t *testing.T) {
	svc := &fakeReportService{analyzeErr: errors.New("something unexpected")}
	handler := NewHandler(svc, testConfig())

	w := postAnalyze(t, handler, `{"url": "https://example.com/banner.jpg"}`)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500 for unknown error, got %d", w.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	handler := NewHandler(&fakeReportService{}, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 from health check, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode health response: %v", err)
	}
	if body["status"] != "available" {
		t.Errorf("Expected available status, got %v", body["status"])
	}
}
