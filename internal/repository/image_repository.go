package repository

import (
	"context"
	"image"

	apperrors "github.com/leandrobosaipo/elroi-vision/internal/errors"
	"github.com/leandrobosaipo/elroi-vision/internal/storage"
	"github.com/leandrobosaipo/elroi-vision/pkg/validation"
)

// FetcherImageRepository implements ImageRepository over any storage fetcher
// (HTTP or Azure Blob), validating URLs before touching the network.
type FetcherImageRepository struct {
	fetcher   storage.ImageFetcher
	validator *validation.URLValidator
}

// NewFetcherImageRepository creates a repository backed by the given fetcher.
func NewFetcherImageRepository(fetcher storage.ImageFetcher, validator *validation.URLValidator) *FetcherImageRepository {
	if validator == nil {
		validator = validation.NewURLValidator()
	}
	return &FetcherImageRepository{
		fetcher:   fetcher,
		validator: validator,
	}
}

// FetchImage validates the URL and downloads the image.
func (r *FetcherImageRepository) FetchImage(ctx context.Context, imageURL string) (image.Image, error) {
	if err := r.ValidateImageURL(imageURL); err != nil {
		return nil, err
	}
	img, err := r.fetcher.FetchImage(ctx, imageURL)
	if err != nil {
		return nil, apperrors.NewNetworkError("failed to fetch image", err)
	}
	return img, nil
}

// ValidateImageURL checks the URL against the configured validator. The
// returned error carries its own HTTP status for the transport layer.
func (r *FetcherImageRepository) ValidateImageURL(imageURL string) error {
	return r.validator.ValidateImageURL(imageURL)
}
