package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type cloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStore returns a BlobStore backed by Cloudinary raw assets.
// It expects CLOUDINARY_URL (or the individual CLOUDINARY_* variables) to be
// configured in the environment, per the Cloudinary Go SDK.
func NewCloudinaryStore(folder string) (BlobStore, error) {
	cld, err := cloudinary.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	cld.Config.URL.Secure = true

	return &cloudinaryStore{cld: cld, folder: folder}, nil
}

func (s *cloudinaryStore) publicID(key string) string {
	if s.folder == "" {
		return key
	}
	return s.folder + "/" + key
}

func (s *cloudinaryStore) Put(ctx context.Context, key string, r io.Reader) error {
	// Raw resource type: blobs are arbitrary files, not images.
	_, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:       s.publicID(key),
		ResourceType:   "raw",
		Overwrite:      api.Bool(false),
		UniqueFilename: api.Bool(false),
	})
	if err != nil {
		return fmt.Errorf("failed to upload blob to cloudinary: %w", err)
	}
	return nil
}

func (s *cloudinaryStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	// Raw asset delivery URL is derived from the key alone.
	url := fmt.Sprintf("https://res.cloudinary.com/%s/raw/upload/%s",
		s.cld.Config.Cloud.CloudName, s.publicID(key))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blob from cloudinary: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, ErrBlobNotFound
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("cloudinary returned status %d for key %s", resp.StatusCode, key)
	}

	return resp.Body, nil
}

func (s *cloudinaryStore) Delete(ctx context.Context, key string) error {
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     s.publicID(key),
		ResourceType: "raw",
		Invalidate:   api.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("failed to delete blob from cloudinary: %w", err)
	}

	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy returned result: %s", resp.Result)
	}

	return nil
}
