package storage

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	_ "golang.org/x/image/webp"
)

// AzureImageFetcher resolves images from Azure Blob Storage. The URL path
// selects the container and the `blob` query parameter selects the blob, so
// private containers work without SAS tokens in every request.
type AzureImageFetcher struct {
	client *azblob.Client
}

func NewAzureImageFetcher(accountName, accountKey string) (*AzureImageFetcher, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("azure credential: %w", err)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("azure client: %w", err)
	}
	return &AzureImageFetcher{client: client}, nil
}

// FetchImage downloads and decodes the referenced blob.
func (s *AzureImageFetcher) FetchImage(ctx context.Context, blobURL string) (image.Image, error) {
	parsed, err := url.Parse(blobURL)
	if err != nil {
		return nil, fmt.Errorf("invalid blob URL: %w", err)
	}

	container := strings.TrimPrefix(parsed.Path, "/")
	blobName := parsed.Query().Get("blob")
	if container == "" || blobName == "" {
		return nil, fmt.Errorf("blob URL must carry a container path and blob query parameter")
	}

	resp, err := s.client.DownloadStream(ctx, container, blobName, nil)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode blob image: %w", err)
	}
	return img, nil
}
