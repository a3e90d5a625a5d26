package transport

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/leandrobosaipo/elroi-vision/internal/config"
	apperrors "github.com/leandrobosaipo/elroi-vision/internal/errors"
	"github.com/leandrobosaipo/elroi-vision/internal/logger"
	"github.com/leandrobosaipo/elroi-vision/internal/service"
	"github.com/leandrobosaipo/elroi-vision/pkg/models"
)

// ErrorResponse is the JSON body returned for every request failure.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NewHandler builds the HTTP router over the report service.
func NewHandler(reports service.ReportService, cfg *config.Config) http.Handler {
	r := gin.Default()

	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	r.GET("/health", healthCheck)
	r.POST("/analyze", analyzeImage(reports, cfg))

	return r
}

func analyzeImage(reports service.ReportService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		}).Info("Processing report request")

		var req models.AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).WithField("ip", c.ClientIP()).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		if err := reports.ValidateImageURL(req.URL); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"url": req.URL,
				"ip":  c.ClientIP(),
			}).Error("Invalid image URL")
			respondError(c, apperrors.GetStatusCode(err), "invalid image URL", err)
			return
		}

		response, err := reports.AnalyzeImageURL(ctx, req)
		if err != nil {
			appErr := normalizeRequestError(err)
			logger.WithError(appErr).WithFields(logrus.Fields{
				"url": req.URL,
				"ip":  c.ClientIP(),
			}).Error("Report request failed")
			respondError(c, appErr.StatusCode, "failed to analyze image", appErr)
			return
		}

		logger.WithFields(logrus.Fields{
			"url":                req.URL,
			"processing_time_ms": time.Since(startTime).Milliseconds(),
			"sections_ok":        response.Report.Summary.SectionsOK,
			"sections_failed":    response.Report.Summary.SectionsFailed,
		}).Info("Report request completed successfully")

		c.JSON(http.StatusOK, response)
	}
}

// normalizeRequestError maps arbitrary service errors onto the AppError
// taxonomy so the client always receives a meaningful status code.
func normalizeRequestError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewTimeoutError("request timed out", err)
	}
	return apperrors.NewInternalError("request processing failed", err)
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last()
			respondError(c, normalizeRequestError(err.Err).StatusCode, "request processing failed", err)
		}
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
	}).Debug("Responding with error")

	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:   message,
		Message: err.Error(),
	})
}
