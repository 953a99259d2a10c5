package gcs

import (
	"bytes"
	"context"

	"cloud.google.com/go/storage"

	"github.com/clubware/server/pkg/helpers"
)

// ImageStore persists event images as public objects in a GCS bucket.
type ImageStore struct {
	Client *storage.Client
	Bucket string
}

func NewImageStore(client *storage.Client, bucket string) *ImageStore {
	return &ImageStore{Client: client, Bucket: bucket}
}

// Upload writes the image bytes under key and returns the public URL.
func (s *ImageStore) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	return helpers.UploadObject(ctx, s.Client, s.Bucket, key, contentType, bytes.NewReader(data))
}

// Delete removes the object behind a URL previously returned by Upload.
// URLs outside the bucket are ignored.
func (s *ImageStore) Delete(ctx context.Context, url string) error {
	objectPath, ok := helpers.ObjectPathFromURL(s.Bucket, url)
	if !ok {
		return nil
	}
	return helpers.DeleteObject(ctx, s.Client, s.Bucket, objectPath)
}
