package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ReportEvent describes one step of a report's lifecycle.
type ReportEvent struct {
	EventType      EventType              `json:"event_type"`
	Timestamp      time.Time              `json:"timestamp"`
	ImageURL       string                 `json:"image_url"`
	ProcessingTime time.Duration          `json:"processing_time"`
	Success        bool                   `json:"success"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// EventType represents the type of report lifecycle event
type EventType string

const (
	// ReportStarted when a report request begins
	ReportStarted EventType = "report_started"
	// ReportCompleted when the aggregate report is built
	ReportCompleted EventType = "report_completed"
	// ReportFailed when the request fails before a report exists
	ReportFailed EventType = "report_failed"
	// ImageFetched when the input image is successfully fetched
	ImageFetched EventType = "image_fetched"
	// ImageFetchFailed when the input image fetch fails
	ImageFetchFailed EventType = "image_fetch_failed"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event ReportEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event ReportEvent)
}

// LoggingObserver logs report lifecycle events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{logger: logger}
}

// OnEvent handles report events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event ReportEvent) {
	fields := logrus.Fields{
		"event_type":      event.EventType,
		"image_url":       event.ImageURL,
		"processing_time": event.ProcessingTime,
		"success":         event.Success,
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}
	for k, v := range event.Metadata {
		fields[k] = v
	}

	switch event.EventType {
	case ReportStarted:
		o.logger.WithFields(fields).Info("Visual impact report started")
	case ReportCompleted:
		o.logger.WithFields(fields).Info("Visual impact report completed")
	case ReportFailed:
		o.logger.WithFields(fields).Error("Visual impact report failed")
	case ImageFetched:
		o.logger.WithFields(fields).Debug("Image fetched successfully")
	case ImageFetchFailed:
		o.logger.WithFields(fields).Error("Image fetch failed")
	default:
		o.logger.WithFields(fields).Info("Report event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver collects counters from report events
type MetricsObserver struct {
	mu                  sync.RWMutex
	totalReports        int64
	completedReports    int64
	failedReports       int64
	totalProcessingTime time.Duration
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

// OnEvent handles report events by updating counters
func (o *MetricsObserver) OnEvent(ctx context.Context, event ReportEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case ReportStarted:
		o.totalReports++
	case ReportCompleted:
		o.completedReports++
		o.totalProcessingTime += event.ProcessingTime
	case ReportFailed:
		o.failedReports++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns current counters
func (o *MetricsObserver) GetMetrics() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	avgProcessingTime := time.Duration(0)
	if o.completedReports > 0 {
		avgProcessingTime = o.totalProcessingTime / time.Duration(o.completedReports)
	}

	return map[string]interface{}{
		"total_reports":         o.totalReports,
		"completed_reports":     o.completedReports,
		"failed_reports":        o.failedReports,
		"total_processing_time": o.totalProcessingTime,
		"avg_processing_time":   avgProcessingTime,
	}
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{observers: make([]Observer, 0)}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer by name
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers notifies all observers concurrently. A panicking observer
// is logged and never takes the request down with it.
func (p *EventPublisher) NotifyObservers(ctx context.Context, event ReportEvent) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	for _, observer := range observers {
		go func(obs Observer) {
			defer func() {
				if r := recover(); r != nil {
					logrus.WithField("observer", obs.GetObserverName()).
						WithField("panic", r).
						Error("Observer panicked while handling event")
				}
			}()
			obs.OnEvent(ctx, event)
		}(observer)
	}
}
