package container

import (
	"fmt"
	"net/http"

	"github.com/leandrobosaipo/elroi-vision/internal/analyzer"
	"github.com/leandrobosaipo/elroi-vision/internal/config"
	"github.com/leandrobosaipo/elroi-vision/internal/factory"
	"github.com/leandrobosaipo/elroi-vision/internal/logger"
	"github.com/leandrobosaipo/elroi-vision/internal/observer"
	"github.com/leandrobosaipo/elroi-vision/internal/repository"
	"github.com/leandrobosaipo/elroi-vision/internal/service"
	"github.com/leandrobosaipo/elroi-vision/internal/transport"
	"github.com/leandrobosaipo/elroi-vision/internal/vision"
	"github.com/leandrobosaipo/elroi-vision/pkg/validation"
)

// Container holds all application dependencies
type Container struct {
	config        *config.Config
	orchestrator  *analyzer.Orchestrator
	collaborators vision.Collaborators
	metrics       *observer.MetricsObserver
	handler       http.Handler
}

// NewContainer builds the dependency graph: config, storage backend,
// collaborators, orchestrator, service and transport.
func NewContainer() (*Container, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	factories := factory.NewComponentFactory()
	fetcher, err := factories.StorageFactory.CreateStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage: %w", err)
	}
	collaborators := factories.CollaboratorFactory.CreateCollaborators(cfg)

	opts := analyzer.DefaultOptions().WithTimeout(cfg.AnalyzerTimeout)
	orchestrator := analyzer.NewOrchestrator(collaborators, opts)

	metrics := observer.NewMetricsObserver()
	events := observer.NewEventPublisher()
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))
	events.Subscribe(metrics)

	imageRepository := repository.NewFetcherImageRepository(fetcher, validation.NewURLValidator())
	reportService := service.NewReportService(imageRepository, orchestrator, events)
	handler := transport.NewHandler(reportService, cfg)

	return &Container{
		config:        cfg,
		orchestrator:  orchestrator,
		collaborators: collaborators,
		metrics:       metrics,
		handler:       handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Metrics returns the report counters collected so far.
func (c *Container) Metrics() map[string]interface{} {
	return c.metrics.GetMetrics()
}

// Close releases the orchestrator pool and any collaborator runtimes.
func (c *Container) Close() error {
	c.orchestrator.Close()
	if closer, ok := c.collaborators.Text.(*vision.TesseractExtractor); ok {
		return closer.Close()
	}
	return nil
}
