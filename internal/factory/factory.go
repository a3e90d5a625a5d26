package factory

import (
	"fmt"

	"github.com/leandrobosaipo/elroi-vision/internal/config"
	"github.com/leandrobosaipo/elroi-vision/internal/storage"
	"github.com/leandrobosaipo/elroi-vision/internal/vision"
)

// StorageFactory creates the image-fetching backend selected by
// configuration.
type StorageFactory interface {
	CreateStorage(cfg *config.Config) (storage.ImageFetcher, error)
}

// CollaboratorFactory assembles the pretrained-model capabilities available
// in this deployment. Anything not wired stays an unavailable stub.
type CollaboratorFactory interface {
	CreateCollaborators(cfg *config.Config) vision.Collaborators
}

type storageFactory struct{}

// NewStorageFactory creates a new storage factory
func NewStorageFactory() StorageFactory {
	return &storageFactory{}
}

// CreateStorage builds the fetcher for the configured backend.
func (f *storageFactory) CreateStorage(cfg *config.Config) (storage.ImageFetcher, error) {
	switch cfg.StorageBackend {
	case config.StorageHTTP:
		return storage.NewHTTPImageFetcher(cfg.ImageFetchTimeout), nil
	case config.StorageAzure:
		return storage.NewAzureImageFetcher(cfg.AzureAccountName, cfg.AzureAccountKey)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
	}
}

type collaboratorFactory struct{}

// NewCollaboratorFactory creates a new collaborator factory
func NewCollaboratorFactory() CollaboratorFactory {
	return &collaboratorFactory{}
}

// CreateCollaborators wires the capabilities this build supports. OCR runs
// on the local Tesseract runtime when enabled; the neural collaborators
// (objects, emotion, gaze, pose, caption, scene) have no local backend and
// report themselves unavailable.
func (f *collaboratorFactory) CreateCollaborators(cfg *config.Config) vision.Collaborators {
	var collaborators vision.Collaborators
	if cfg.OCREnabled {
		collaborators.Text = vision.NewTesseractExtractor(cfg.OCRLanguages...)
	}
	return collaborators.WithDefaults()
}

// ComponentFactory combines all factories
type ComponentFactory struct {
	StorageFactory      StorageFactory
	CollaboratorFactory CollaboratorFactory
}

// NewComponentFactory creates a new component factory
func NewComponentFactory() *ComponentFactory {
	return &ComponentFactory{
		StorageFactory:      NewStorageFactory(),
		CollaboratorFactory: NewCollaboratorFactory(),
	}
}
