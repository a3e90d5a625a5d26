package repository

import (
	"context"
	"image"
)

// ImageRepository defines the data-access contract for input images. Reports
// themselves are transient and never persisted, so images are the only thing
// the service layer fetches.
type ImageRepository interface {
	// FetchImage retrieves and decodes the image behind imageURL.
	FetchImage(ctx context.Context, imageURL string) (image.Image, error)

	// ValidateImageURL checks the URL before any network access.
	ValidateImageURL(imageURL string) error
}
