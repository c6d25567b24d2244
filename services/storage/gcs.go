package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSStore implements BlobStore using Firebase Storage (a Google Cloud Storage bucket).
type GCSStore struct {
	client *gcs.Client
	bucket string
	folder string
}

func NewGCSStore(ctx context.Context, credentialsFile, bucket, folder string) (*GCSStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket, folder: folder}, nil
}

func (s *GCSStore) Put(ctx context.Context, name string, body io.Reader, contentType string) (string, error) {
	objectPath := objectKey(s.folder, name)
	w := s.client.Bucket(s.bucket).Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to copy file to storage: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media",
		s.bucket, url.PathEscape(objectPath)), nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
